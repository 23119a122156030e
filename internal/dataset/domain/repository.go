package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository is the data-source collaborator. Both fetches return fully
// materialized row sets; there is no pagination contract.
type Repository interface {
	// FetchTransactions returns successful transaction rows whose
	// created_at falls within the inclusive range.
	FetchTransactions(ctx context.Context, db *gorm.DB, start, end time.Time) ([]TransactionRow, error)
	// FetchOnboarding returns onboarding rows whose registration_date
	// falls within the inclusive range.
	FetchOnboarding(ctx context.Context, db *gorm.DB, start, end time.Time) ([]OnboardingRow, error)
}
