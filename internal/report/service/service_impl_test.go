package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
	"go.uber.org/zap"
)

func newTestService() domain.Service {
	return New(Params{
		Log:    zap.NewNop(),
		Holder: &config.ReportConfigHolder{},
	})
}

func emptySnapshot() *datasetdomain.Snapshot {
	start, end := marchRange()
	return &datasetdomain.Snapshot{
		LoadID: "load-1",
		Start:  start,
		End:    end,
	}
}

func marchRequest(periodType domain.PeriodType) domain.Request {
	start, end := marchRange()
	return domain.Request{Start: start, End: end, PeriodType: periodType}
}

func TestBundlesOverEmptySnapshotReturnZeroValues(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	snapshot := emptySnapshot()
	req := marchRequest(domain.PeriodWeekly)

	exec, err := svc.ExecutiveSnapshot(ctx, snapshot, req)
	if err != nil {
		t.Fatalf("executive snapshot: %v", err)
	}
	if exec.ActiveCustomers != 0 || exec.TotalWAU != 0 {
		t.Fatalf("expected zero activity, got %+v", exec)
	}
	if exec.NewCustomers[domain.BucketTotal] != 0 {
		t.Fatalf("expected zero new customers, got %d", exec.NewCustomers[domain.BucketTotal])
	}
	if exec.TopProduct != nil || exec.LowestProduct != nil {
		t.Fatal("expected no product ranking over empty data")
	}

	acq, err := svc.CustomerAcquisition(ctx, snapshot, req)
	if err != nil {
		t.Fatalf("customer acquisition: %v", err)
	}
	if acq.KYCCompleted != 0 || acq.FirstTimeTransactors != 0 {
		t.Fatalf("expected zero acquisition, got %+v", acq)
	}

	usage, err := svc.ProductUsage(ctx, snapshot, req)
	if err != nil {
		t.Fatalf("product usage: %v", err)
	}
	if len(usage.Products) != 0 {
		t.Fatalf("expected no product rows, got %d", len(usage.Products))
	}

	activity, err := svc.CustomerActivity(ctx, snapshot, req)
	if err != nil {
		t.Fatalf("customer activity: %v", err)
	}
	if activity.ActiveUsers != 0 || activity.TotalTransactions != 0 {
		t.Fatalf("expected zero activity, got %+v", activity)
	}
	if activity.AvgTransactionsPerActiveUser != 0 || activity.AvgProductsPerActiveUser != 0 {
		t.Fatalf("expected zero averages, got %+v", activity)
	}
}

func TestExecutiveSnapshotTotalWAUIsSumOfSegments(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()

	snapshot.Onboarding = []datasetdomain.OnboardingRecord{
		{UserID: "a1", Status: domain.StatusActive, RegistrationDate: ts(2)},
		{UserID: "r1", Status: domain.StatusRegistered, RegistrationDate: ts(3)},
	}
	snapshot.Transactions = append(
		txRows(map[string]int{"a1": 3, "r1": 2}),
		datasetdomain.Transaction{UserID: "outsider", CreatedAt: ts(4)},
	)

	exec, err := svc.ExecutiveSnapshot(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("executive snapshot: %v", err)
	}
	if exec.SegmentWAU[domain.StatusActive] != 1 {
		t.Fatalf("expected 1 active-segment WAU, got %d", exec.SegmentWAU[domain.StatusActive])
	}
	if exec.SegmentWAU[domain.StatusRegistered] != 1 {
		t.Fatalf("expected 1 registered-segment WAU, got %d", exec.SegmentWAU[domain.StatusRegistered])
	}
	if exec.TotalWAU != 2 {
		t.Fatalf("expected total WAU 2 as sum of segments, got %d", exec.TotalWAU)
	}
}

func TestExecutiveSnapshotInvalidPeriodType(t *testing.T) {
	svc := newTestService()

	_, err := svc.ExecutiveSnapshot(context.Background(), emptySnapshot(), marchRequest(domain.PeriodType("daily")))
	if !errors.Is(err, domain.ErrInvalidPeriodType) {
		t.Fatalf("expected ErrInvalidPeriodType, got %v", err)
	}
}

func TestExecutiveSnapshotNilSnapshot(t *testing.T) {
	svc := newTestService()

	_, err := svc.ExecutiveSnapshot(context.Background(), nil, marchRequest(domain.PeriodWeekly))
	if !errors.Is(err, domain.ErrNilSnapshot) {
		t.Fatalf("expected ErrNilSnapshot, got %v", err)
	}
}

func TestCustomerAcquisitionKYCRequiresActiveAndVerified(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()

	snapshot.Onboarding = []datasetdomain.OnboardingRecord{
		{UserID: "u1", Status: domain.StatusActive, KYCStatus: "VERIFIED", RegistrationDate: ts(2)},
		{UserID: "u2", Status: domain.StatusActive, KYCStatus: "verified ", RegistrationDate: ts(3)},
		{UserID: "u3", Status: domain.StatusRegistered, KYCStatus: "VERIFIED", RegistrationDate: ts(4)},
		{UserID: "u4", Status: domain.StatusActive, KYCStatus: "PENDING", RegistrationDate: ts(5)},
	}

	acq, err := svc.CustomerAcquisition(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("customer acquisition: %v", err)
	}
	if acq.KYCCompleted != 2 {
		t.Fatalf("expected 2 KYC completions, got %d", acq.KYCCompleted)
	}
}

func TestCustomerAcquisitionFirstTimeTransactors(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()

	snapshot.Onboarding = []datasetdomain.OnboardingRecord{
		{UserID: "new-active", Status: domain.StatusActive, RegistrationDate: ts(2)},
		{UserID: "new-idle", Status: domain.StatusRegistered, RegistrationDate: ts(3)},
	}
	// One transaction is enough; the activity threshold does not apply.
	snapshot.Transactions = txRows(map[string]int{"new-active": 1, "old-user": 4})

	acq, err := svc.CustomerAcquisition(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("customer acquisition: %v", err)
	}
	if acq.FirstTimeTransactors != 1 {
		t.Fatalf("expected 1 first-time transactor, got %d", acq.FirstTimeTransactors)
	}
}

func TestProductUsageOmitsIdleCatalogEntries(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()
	snapshot.Transactions = []datasetdomain.Transaction{
		{UserID: "u1", ProductName: "Cash Power", Amount: amount(25), CreatedAt: ts(10)},
	}

	usage, err := svc.ProductUsage(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("product usage: %v", err)
	}
	if len(usage.Products) != 1 || usage.Products[0].Name != "Cash Power" {
		t.Fatalf("expected only Cash Power, got %+v", usage.Products)
	}
}

func TestProductTableIncludesIdleCatalogEntries(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()

	table, err := svc.ProductTable(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("product table: %v", err)
	}
	catalogLen := len(config.DefaultReportConfig().Catalog)
	if len(table) != catalogLen {
		t.Fatalf("expected %d rows, got %d", catalogLen, len(table))
	}
}

func TestCustomerActivityAverages(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()

	day := func(d int, userID, product string) datasetdomain.Transaction {
		v := time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC)
		return datasetdomain.Transaction{UserID: userID, ProductName: product, CreatedAt: &v}
	}
	snapshot.Transactions = []datasetdomain.Transaction{
		day(1, "u1", "Cash Power"),
		day(2, "u1", "Merchant Payment"),
		day(3, "u1", "Cash Power"),
		day(4, "u2", "Cash Power"),
	}

	activity, err := svc.CustomerActivity(context.Background(), snapshot, marchRequest(domain.PeriodWeekly))
	if err != nil {
		t.Fatalf("customer activity: %v", err)
	}
	if activity.ActiveUsers != 1 {
		t.Fatalf("expected 1 active user at weekly threshold, got %d", activity.ActiveUsers)
	}
	if activity.TotalTransactions != 4 {
		t.Fatalf("expected 4 transactions, got %d", activity.TotalTransactions)
	}
	if activity.AvgTransactionsPerActiveUser != 3 {
		t.Fatalf("expected avg 3 transactions per active user, got %v", activity.AvgTransactionsPerActiveUser)
	}
	if activity.AvgProductsPerActiveUser != 2 {
		t.Fatalf("expected avg 2 products per active user, got %v", activity.AvgProductsPerActiveUser)
	}
}

func TestMonthlyThresholdClassification(t *testing.T) {
	svc := newTestService()
	snapshot := emptySnapshot()
	snapshot.Transactions = txRows(map[string]int{"heavy": 10, "light": 9})

	activity, err := svc.CustomerActivity(context.Background(), snapshot, marchRequest(domain.PeriodMonthly))
	if err != nil {
		t.Fatalf("customer activity: %v", err)
	}
	if activity.ActiveUsers != 1 {
		t.Fatalf("expected only the 10-transaction user active monthly, got %d", activity.ActiveUsers)
	}
}
