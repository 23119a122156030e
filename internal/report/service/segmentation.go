package service

import (
	"time"

	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
)

// SegmentNewCustomers buckets the period's onboarding records by status and
// counts distinct users per bucket. Rows with an unrecognized status are
// excluded from every bucket. The Total bucket is the union of the three
// recognized buckets deduplicated by user id: a user appearing under two
// statuses in anomalous duplicate rows counts once.
func SegmentNewCustomers(records []datasetdomain.OnboardingRecord, start, end time.Time) domain.Segmentation {
	rows := FilterOnboardingByRange(records, start, end)

	seen := make(map[string]map[string]struct{}, len(domain.StatusBuckets)+1)
	users := make(map[string][]string, len(domain.StatusBuckets)+1)
	for _, bucket := range domain.StatusBuckets {
		seen[bucket] = make(map[string]struct{})
		users[bucket] = []string{}
	}
	seen[domain.BucketTotal] = make(map[string]struct{})
	users[domain.BucketTotal] = []string{}

	for _, row := range rows {
		switch row.Status {
		case domain.StatusActive, domain.StatusRegistered, domain.StatusTemporaryRegister:
		default:
			continue
		}
		if _, ok := seen[row.Status][row.UserID]; !ok {
			seen[row.Status][row.UserID] = struct{}{}
			users[row.Status] = append(users[row.Status], row.UserID)
		}
		if _, ok := seen[domain.BucketTotal][row.UserID]; !ok {
			seen[domain.BucketTotal][row.UserID] = struct{}{}
			users[domain.BucketTotal] = append(users[domain.BucketTotal], row.UserID)
		}
	}

	counts := make(map[string]int, len(users))
	for bucket, list := range users {
		counts[bucket] = len(list)
	}

	return domain.Segmentation{Counts: counts, Users: users}
}
