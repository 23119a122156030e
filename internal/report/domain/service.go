package domain

import (
	"context"
	"time"

	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

// Request scopes a bundle computation to a date range and period type.
// PeriodType is ignored by CustomerAcquisition.
type Request struct {
	Start      time.Time
	End        time.Time
	PeriodType PeriodType
}

// Service computes the four metric bundles. Every operation is a pure
// function of the snapshot and the request; recomputing with the same inputs
// yields the same outputs.
type Service interface {
	ExecutiveSnapshot(ctx context.Context, snapshot *datasetdomain.Snapshot, req Request) (ExecutiveSnapshot, error)
	CustomerAcquisition(ctx context.Context, snapshot *datasetdomain.Snapshot, req Request) (CustomerAcquisition, error)
	ProductUsage(ctx context.Context, snapshot *datasetdomain.Snapshot, req Request) (ProductUsage, error)
	CustomerActivity(ctx context.Context, snapshot *datasetdomain.Snapshot, req Request) (CustomerActivity, error)

	// ProductTable returns the per-product aggregate rows for all catalog
	// entries, including those with zero transactions.
	ProductTable(ctx context.Context, snapshot *datasetdomain.Snapshot, req Request) ([]ProductStats, error)
}
