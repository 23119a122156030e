package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/cache"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Cache   cache.SnapshotCache
	Clock   clock.Clock
	Config  config.Config
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	cache   cache.SnapshotCache
	clock   clock.Clock
	cfg     config.Config
	metrics *metrics.Metrics
}

func New(p Params) domain.Loader {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("dataset.loader"),
		genID:   p.GenID,
		repo:    p.Repo,
		cache:   p.Cache,
		clock:   p.Clock,
		cfg:     p.Config,
		metrics: p.Metrics,
	}
}

func (s *Service) Load(ctx context.Context, req domain.LoadRequest) (*domain.Snapshot, error) {
	start := req.Start.UTC()
	end := req.End.UTC()
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	key := domain.CacheKey(start, end)
	if !req.ForceReload {
		if cached, ok := s.cache.Get(key); ok {
			s.metrics.RecordDatasetLoad(ctx, "cache")
			hit := *cached
			hit.FromCache = true
			return &hit, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	txRows, err := s.repo.FetchTransactions(fetchCtx, s.db, start, end)
	if err != nil {
		s.metrics.RecordDatasourceError(ctx, "transactions")
		return nil, fmt.Errorf("%w: fetch transactions: %v", domain.ErrDataSourceUnavailable, err)
	}

	obRows, err := s.repo.FetchOnboarding(fetchCtx, s.db, start, end)
	if err != nil {
		s.metrics.RecordDatasourceError(ctx, "onboarding")
		return nil, fmt.Errorf("%w: fetch onboarding: %v", domain.ErrDataSourceUnavailable, err)
	}

	transactions := make([]domain.Transaction, 0, len(txRows))
	for _, row := range txRows {
		transactions = append(transactions, domain.CleanTransaction(row))
	}
	onboarding := make([]domain.OnboardingRecord, 0, len(obRows))
	for _, row := range obRows {
		onboarding = append(onboarding, domain.CleanOnboarding(row))
	}

	snapshot := &domain.Snapshot{
		LoadID:       s.genID.Generate().String(),
		Start:        start,
		End:          end,
		Transactions: transactions,
		Onboarding:   onboarding,
		LoadedAt:     s.clock.Now(),
	}

	s.cache.Set(key, snapshot)
	s.metrics.RecordDatasetLoad(ctx, "datasource")
	s.log.Info("snapshot loaded",
		zap.String("load_id", snapshot.LoadID),
		zap.String("range", key),
		zap.Int("transactions", len(transactions)),
		zap.Int("onboarding", len(onboarding)),
	)

	return snapshot, nil
}
