package domain

import (
	"errors"
	"strings"
	"time"
)

// PeriodType selects the activity threshold applied by the active-user
// classifier. Despite the WAU name, every bundle accepts any period type.
type PeriodType string

const (
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodRolling PeriodType = "rolling"
)

// ParsePeriodType normalizes a period type, defaulting to weekly when blank.
func ParsePeriodType(value string) (PeriodType, error) {
	switch PeriodType(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return PeriodWeekly, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodRolling:
		return PeriodRolling, nil
	default:
		return "", ErrInvalidPeriodType
	}
}

// Recognized onboarding status buckets. Rows with any other status are
// excluded from every bucket, including Total.
const (
	StatusActive            = "Active"
	StatusRegistered        = "Registered"
	StatusTemporaryRegister = "TemporaryRegister"

	// BucketTotal is the union of the three buckets deduplicated by user,
	// not their sum.
	BucketTotal = "Total"
)

var StatusBuckets = []string{StatusActive, StatusRegistered, StatusTemporaryRegister}

// Segmentation holds per-bucket distinct-user counts and lists for newly
// registered customers.
type Segmentation struct {
	Counts map[string]int      `json:"counts"`
	Users  map[string][]string `json:"users"`
}

// ProductStats is one row of the per-product aggregate table.
type ProductStats struct {
	Name             string  `json:"name"`
	Kind             string  `json:"kind"`
	TransactionCount int     `json:"transaction_count"`
	DistinctUsers    int     `json:"distinct_users"`
	ActiveUsers      int     `json:"active_users"`
	TotalAmount      float64 `json:"total_amount"`
	AverageAmount    float64 `json:"average_amount"`
}

// ExecutiveSnapshot is the headline bundle.
type ExecutiveSnapshot struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	PeriodType PeriodType `json:"period_type"`

	NewCustomers    map[string]int `json:"new_customers"`
	ActiveCustomers int            `json:"active_customers"`
	// SegmentWAU holds per-status active-user counts among the period's
	// new customers; TotalWAU is their sum (matching the historical
	// report, not a union).
	SegmentWAU map[string]int `json:"segment_wau"`
	TotalWAU   int            `json:"total_wau"`

	TopProduct    *ProductStats `json:"top_product"`
	LowestProduct *ProductStats `json:"lowest_product"`
}

// CustomerAcquisition covers registrations, KYC completion and conversion.
type CustomerAcquisition struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	NewRegistrations     map[string]int `json:"new_registrations"`
	KYCCompleted         int            `json:"kyc_completed"`
	FirstTimeTransactors int            `json:"first_time_transactors"`
}

// ProductUsage is the full per-product aggregate table, one row per catalog
// entry with at least one transaction in the period.
type ProductUsage struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	PeriodType PeriodType `json:"period_type"`

	Products []ProductStats `json:"products"`
}

// CustomerActivity covers engagement over the period.
type CustomerActivity struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	PeriodType PeriodType `json:"period_type"`

	ActiveUsers                  int     `json:"active_users"`
	TotalTransactions            int     `json:"total_transactions"`
	AvgTransactionsPerActiveUser float64 `json:"avg_transactions_per_active_user"`
	AvgProductsPerActiveUser     float64 `json:"avg_products_per_active_user"`
}

var (
	ErrInvalidPeriodType = errors.New("invalid_period_type")
	ErrNilSnapshot       = errors.New("nil_snapshot")
)
