package service

import (
	"time"

	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

// FilterTransactionsByRange returns the transactions whose created_at is
// non-nil and within [start, end] inclusive. The input is never mutated;
// applying the filter twice yields the same result.
func FilterTransactionsByRange(rows []datasetdomain.Transaction, start, end time.Time) []datasetdomain.Transaction {
	filtered := make([]datasetdomain.Transaction, 0, len(rows))
	for _, row := range rows {
		if inRange(row.CreatedAt, start, end) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FilterOnboardingByRange returns the onboarding records whose
// registration_date is non-nil and within [start, end] inclusive.
func FilterOnboardingByRange(rows []datasetdomain.OnboardingRecord, start, end time.Time) []datasetdomain.OnboardingRecord {
	filtered := make([]datasetdomain.OnboardingRecord, 0, len(rows))
	for _, row := range rows {
		if inRange(row.RegistrationDate, start, end) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func inRange(value *time.Time, start, end time.Time) bool {
	if value == nil {
		return false
	}
	return !value.Before(start) && !value.After(end)
}
