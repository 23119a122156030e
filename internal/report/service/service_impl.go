package service

import (
	"context"
	"strings"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/observability/metrics"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const kycVerified = "VERIFIED"

type Params struct {
	fx.In

	Log     *zap.Logger
	Holder  *config.ReportConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	holder  *config.ReportConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("report.service"),
		holder:  p.Holder,
		metrics: p.Metrics,
	}
}

func (s *Service) ExecutiveSnapshot(ctx context.Context, snapshot *datasetdomain.Snapshot, req domain.Request) (domain.ExecutiveSnapshot, error) {
	if snapshot == nil {
		return domain.ExecutiveSnapshot{}, domain.ErrNilSnapshot
	}
	threshold, err := s.thresholdFor(req.PeriodType)
	if err != nil {
		return domain.ExecutiveSnapshot{}, err
	}
	s.metrics.RecordReportRequest(ctx, "executive_snapshot", string(req.PeriodType))

	segmentation := SegmentNewCustomers(snapshot.Onboarding, req.Start, req.End)
	transactions := FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)

	// Per-segment WAU restricts the classifier to each bucket's users.
	// The grand total is the sum of the segment counts, matching the
	// historical report; registration totals stay union-deduplicated.
	segmentWAU := make(map[string]int, len(domain.StatusBuckets))
	totalWAU := 0
	for _, bucket := range domain.StatusBuckets {
		restricted := RestrictToUsers(transactions, segmentation.Users[bucket])
		count := len(ActiveUsers(restricted, threshold))
		segmentWAU[bucket] = count
		totalWAU += count
	}

	products := AggregateProducts(transactions, s.holder.Get().Catalog, threshold)
	top, lowest := TopAndLowest(products)

	return domain.ExecutiveSnapshot{
		Start:           req.Start,
		End:             req.End,
		PeriodType:      req.PeriodType,
		NewCustomers:    segmentation.Counts,
		ActiveCustomers: len(ActiveUsers(transactions, threshold)),
		SegmentWAU:      segmentWAU,
		TotalWAU:        totalWAU,
		TopProduct:      top,
		LowestProduct:   lowest,
	}, nil
}

func (s *Service) CustomerAcquisition(ctx context.Context, snapshot *datasetdomain.Snapshot, req domain.Request) (domain.CustomerAcquisition, error) {
	if snapshot == nil {
		return domain.CustomerAcquisition{}, domain.ErrNilSnapshot
	}
	s.metrics.RecordReportRequest(ctx, "customer_acquisition", "")

	segmentation := SegmentNewCustomers(snapshot.Onboarding, req.Start, req.End)

	kycCompleted := make(map[string]struct{})
	for _, row := range FilterOnboardingByRange(snapshot.Onboarding, req.Start, req.End) {
		if row.Status != domain.StatusActive {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(row.KYCStatus), kycVerified) {
			continue
		}
		kycCompleted[row.UserID] = struct{}{}
	}

	// First-time transactors: new customers with at least one transaction
	// in the period. No activity threshold applies here.
	transactions := FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)
	transacted := make(map[string]struct{}, len(transactions))
	for _, tx := range transactions {
		transacted[tx.UserID] = struct{}{}
	}
	firstTime := 0
	for _, userID := range segmentation.Users[domain.BucketTotal] {
		if _, ok := transacted[userID]; ok {
			firstTime++
		}
	}

	return domain.CustomerAcquisition{
		Start:                req.Start,
		End:                  req.End,
		NewRegistrations:     segmentation.Counts,
		KYCCompleted:         len(kycCompleted),
		FirstTimeTransactors: firstTime,
	}, nil
}

func (s *Service) ProductUsage(ctx context.Context, snapshot *datasetdomain.Snapshot, req domain.Request) (domain.ProductUsage, error) {
	if snapshot == nil {
		return domain.ProductUsage{}, domain.ErrNilSnapshot
	}
	threshold, err := s.thresholdFor(req.PeriodType)
	if err != nil {
		return domain.ProductUsage{}, err
	}
	s.metrics.RecordReportRequest(ctx, "product_usage", string(req.PeriodType))

	transactions := FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)
	all := AggregateProducts(transactions, s.holder.Get().Catalog, threshold)

	products := make([]domain.ProductStats, 0, len(all))
	for _, row := range all {
		if row.TransactionCount > 0 {
			products = append(products, row)
		}
	}

	return domain.ProductUsage{
		Start:      req.Start,
		End:        req.End,
		PeriodType: req.PeriodType,
		Products:   products,
	}, nil
}

func (s *Service) CustomerActivity(ctx context.Context, snapshot *datasetdomain.Snapshot, req domain.Request) (domain.CustomerActivity, error) {
	if snapshot == nil {
		return domain.CustomerActivity{}, domain.ErrNilSnapshot
	}
	threshold, err := s.thresholdFor(req.PeriodType)
	if err != nil {
		return domain.CustomerActivity{}, err
	}
	s.metrics.RecordReportRequest(ctx, "customer_activity", string(req.PeriodType))

	transactions := FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)
	counts := TransactionCounts(transactions)
	active := ActiveUsers(transactions, threshold)

	avgTransactions := 0.0
	avgProducts := 0.0
	if len(active) > 0 {
		totalTx := 0
		totalProducts := 0
		productsByUser := distinctProductsByUser(transactions)
		for _, userID := range active {
			totalTx += counts[userID]
			totalProducts += productsByUser[userID]
		}
		avgTransactions = float64(totalTx) / float64(len(active))
		avgProducts = float64(totalProducts) / float64(len(active))
	}

	return domain.CustomerActivity{
		Start:                        req.Start,
		End:                          req.End,
		PeriodType:                   req.PeriodType,
		ActiveUsers:                  len(active),
		TotalTransactions:            len(transactions),
		AvgTransactionsPerActiveUser: avgTransactions,
		AvgProductsPerActiveUser:     avgProducts,
	}, nil
}

func (s *Service) ProductTable(ctx context.Context, snapshot *datasetdomain.Snapshot, req domain.Request) ([]domain.ProductStats, error) {
	if snapshot == nil {
		return nil, domain.ErrNilSnapshot
	}
	threshold, err := s.thresholdFor(req.PeriodType)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReportRequest(ctx, "product_table", string(req.PeriodType))

	transactions := FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)
	return AggregateProducts(transactions, s.holder.Get().Catalog, threshold), nil
}

func (s *Service) thresholdFor(periodType domain.PeriodType) (int, error) {
	thresholds := s.holder.Get().Thresholds
	switch periodType {
	case domain.PeriodWeekly:
		return thresholds.Weekly, nil
	case domain.PeriodMonthly:
		return thresholds.Monthly, nil
	case domain.PeriodRolling:
		return thresholds.Rolling, nil
	default:
		return 0, domain.ErrInvalidPeriodType
	}
}

func distinctProductsByUser(rows []datasetdomain.Transaction) map[string]int {
	seen := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row.ProductName == "" {
			continue
		}
		if _, ok := seen[row.UserID]; !ok {
			seen[row.UserID] = make(map[string]struct{})
		}
		seen[row.UserID][row.ProductName] = struct{}{}
	}

	counts := make(map[string]int, len(seen))
	for userID, products := range seen {
		counts[userID] = len(products)
	}
	return counts
}
