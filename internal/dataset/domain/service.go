package domain

import (
	"context"
	"errors"
	"time"
)

type LoadRequest struct {
	Start time.Time
	End   time.Time
	// ForceReload bypasses the snapshot cache and always fetches.
	ForceReload bool
}

// Loader loads a date-range snapshot, serving from cache when a fresh entry
// exists for the same range.
type Loader interface {
	Load(ctx context.Context, req LoadRequest) (*Snapshot, error)
}

var (
	ErrInvalidRange = errors.New("invalid_range")
	// ErrDataSourceUnavailable marks a failed or timed-out fetch. The load
	// fails outright; partial data is never served.
	ErrDataSourceUnavailable = errors.New("datasource_unavailable")
)
