package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/cache"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	txRows  []domain.TransactionRow
	obRows  []domain.OnboardingRow
	txErr   error
	obErr   error
	fetches int
}

func (f *fakeRepo) FetchTransactions(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.TransactionRow, error) {
	_ = ctx
	_ = db
	_ = start
	_ = end
	f.fetches++
	if f.txErr != nil {
		return nil, f.txErr
	}
	return f.txRows, nil
}

func (f *fakeRepo) FetchOnboarding(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.OnboardingRow, error) {
	_ = ctx
	_ = db
	_ = start
	_ = end
	if f.obErr != nil {
		return nil, f.obErr
	}
	return f.obRows, nil
}

func newTestLoader(t *testing.T, repo *fakeRepo) (domain.Loader, *clock.FakeClock) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{
		SnapshotTTL:  300 * time.Second,
		FetchTimeout: 10 * time.Second,
	}

	loader := New(Params{
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repo,
		Cache:  cache.NewSnapshotCache(cfg, clk),
		Clock:  clk,
		Config: cfg,
	})
	return loader, clk
}

func marchLoad() domain.LoadRequest {
	return domain.LoadRequest{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestLoadCleansRawRows(t *testing.T) {
	repo := &fakeRepo{
		txRows: []domain.TransactionRow{
			{
				UserIdentifier: sql.NullString{String: "  u1 ", Valid: true},
				Amount:         sql.NullString{String: "bogus", Valid: true},
			},
		},
		obRows: []domain.OnboardingRow{
			{Mobile: sql.NullString{String: " 2207001122 ", Valid: true}},
		},
	}
	loader, _ := newTestLoader(t, repo)

	snapshot, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snapshot.Transactions) != 1 {
		t.Fatalf("expected malformed row retained, got %d rows", len(snapshot.Transactions))
	}
	if snapshot.Transactions[0].UserID != "u1" {
		t.Fatalf("expected trimmed user id, got %q", snapshot.Transactions[0].UserID)
	}
	if snapshot.Transactions[0].Amount != nil {
		t.Fatal("expected malformed amount to clean to nil")
	}
	if snapshot.Onboarding[0].UserID != "2207001122" {
		t.Fatalf("expected onboarding user from mobile, got %q", snapshot.Onboarding[0].UserID)
	}
	if snapshot.LoadID == "" {
		t.Fatal("expected a load id")
	}
	if snapshot.FromCache {
		t.Fatal("expected first load not to come from cache")
	}
}

func TestLoadServesSecondCallFromCache(t *testing.T) {
	repo := &fakeRepo{}
	loader, _ := newTestLoader(t, repo)

	first, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	second, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if repo.fetches != 1 {
		t.Fatalf("expected a single fetch, got %d", repo.fetches)
	}
	if !second.FromCache {
		t.Fatal("expected second load to come from cache")
	}
	if second.LoadID != first.LoadID {
		t.Fatalf("expected same snapshot, got %q and %q", first.LoadID, second.LoadID)
	}
}

func TestLoadRefetchesAfterTTL(t *testing.T) {
	repo := &fakeRepo{}
	loader, clk := newTestLoader(t, repo)

	if _, err := loader.Load(context.Background(), marchLoad()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	clk.Advance(300 * time.Second)

	snapshot, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if repo.fetches != 2 {
		t.Fatalf("expected refetch after TTL, got %d fetches", repo.fetches)
	}
	if snapshot.FromCache {
		t.Fatal("expected stale entry to be bypassed")
	}
}

func TestLoadForceReloadBypassesFreshCache(t *testing.T) {
	repo := &fakeRepo{}
	loader, _ := newTestLoader(t, repo)

	if _, err := loader.Load(context.Background(), marchLoad()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	req := marchLoad()
	req.ForceReload = true
	snapshot, err := loader.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("forced reload: %v", err)
	}
	if repo.fetches != 2 {
		t.Fatalf("expected forced refetch, got %d fetches", repo.fetches)
	}
	if snapshot.FromCache {
		t.Fatal("expected forced reload not to come from cache")
	}

	// The forced reload replaces the cache entry.
	cached, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if cached.LoadID != snapshot.LoadID {
		t.Fatalf("expected cache refreshed by forced reload, got %q and %q", cached.LoadID, snapshot.LoadID)
	}
}

func TestLoadInvalidRange(t *testing.T) {
	loader, _ := newTestLoader(t, &fakeRepo{})

	req := domain.LoadRequest{
		Start: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := loader.Load(context.Background(), req); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestLoadFetchFailureIsFatal(t *testing.T) {
	repo := &fakeRepo{txErr: errors.New("connection refused")}
	loader, _ := newTestLoader(t, repo)

	_, err := loader.Load(context.Background(), marchLoad())
	if !errors.Is(err, domain.ErrDataSourceUnavailable) {
		t.Fatalf("expected ErrDataSourceUnavailable, got %v", err)
	}
}

func TestLoadOnboardingFailureIsFatal(t *testing.T) {
	repo := &fakeRepo{obErr: errors.New("timeout")}
	loader, _ := newTestLoader(t, repo)

	_, err := loader.Load(context.Background(), marchLoad())
	if !errors.Is(err, domain.ErrDataSourceUnavailable) {
		t.Fatalf("expected ErrDataSourceUnavailable, got %v", err)
	}
}

func TestLoadEmptyDataSucceeds(t *testing.T) {
	loader, _ := newTestLoader(t, &fakeRepo{})

	snapshot, err := loader.Load(context.Background(), marchLoad())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snapshot.Transactions) != 0 || len(snapshot.Onboarding) != 0 {
		t.Fatalf("expected empty record sets, got %d/%d", len(snapshot.Transactions), len(snapshot.Onboarding))
	}
}
