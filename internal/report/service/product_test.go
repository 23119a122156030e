package service

import (
	"testing"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
)

func amount(v float64) *float64 {
	return &v
}

func p2pEntry() config.CatalogEntry {
	return config.CatalogEntry{
		Name:                  "Internal Wallet Transfer",
		Kind:                  "product",
		DebitOnly:             true,
		ExcludeFeeCollections: true,
	}
}

func TestMatchesEntryP2PCountsOnlyDebitNonFeeLeg(t *testing.T) {
	entry := p2pEntry()

	// One transfer: DR leg, CR leg and the fee-collection row. Only the
	// DR leg counts.
	rows := []datasetdomain.Transaction{
		{UserID: "sender", ProductName: "Internal Wallet Transfer", TransactionType: "DR", UCPName: "Wallet", Amount: amount(100)},
		{UserID: "receiver", ProductName: "Internal Wallet Transfer", TransactionType: "CR", UCPName: "Wallet", Amount: amount(100)},
		{UserID: "sender", ProductName: "Internal Wallet Transfer", TransactionType: "DR", UCPName: "P2P Fee Collection", Amount: amount(1)},
	}

	matched := 0
	for _, tx := range rows {
		if MatchesEntry(entry, tx) {
			matched++
		}
	}
	if matched != 1 {
		t.Fatalf("expected exactly 1 matching row per transfer, got %d", matched)
	}
}

func TestMatchesEntryFeeExclusionIsCaseInsensitive(t *testing.T) {
	entry := p2pEntry()

	tx := datasetdomain.Transaction{
		ProductName:     "Internal Wallet Transfer",
		TransactionType: "DR",
		UCPName:         "TRANSFER FEE",
	}
	if MatchesEntry(entry, tx) {
		t.Fatal("expected fee-collection row to be excluded regardless of case")
	}
}

func TestMatchesEntryServiceKindMatchesServiceName(t *testing.T) {
	entry := config.CatalogEntry{Name: "Airtime Topup", Kind: "service", DebitOnly: true}

	match := datasetdomain.Transaction{ServiceName: "Airtime Topup", ProductName: "QCell Topup", TransactionType: "DR"}
	if !MatchesEntry(entry, match) {
		t.Fatal("expected service entry to match on service_name")
	}

	credit := datasetdomain.Transaction{ServiceName: "Airtime Topup", TransactionType: "CR"}
	if MatchesEntry(entry, credit) {
		t.Fatal("expected CR row to be excluded for debit-only entry")
	}
}

func TestAggregateProductsNilAmountContributesZero(t *testing.T) {
	catalog := []config.CatalogEntry{{Name: "Cash Power", Kind: "product"}}

	rows := []datasetdomain.Transaction{
		{UserID: "u1", ProductName: "Cash Power", Amount: amount(50)},
		{UserID: "u1", ProductName: "Cash Power", Amount: nil},
	}

	stats := AggregateProducts(rows, catalog, 2)
	if len(stats) != 1 {
		t.Fatalf("expected 1 product row, got %d", len(stats))
	}
	row := stats[0]
	if row.TransactionCount != 2 {
		t.Fatalf("expected transaction count 2, got %d", row.TransactionCount)
	}
	if row.TotalAmount != 50 {
		t.Fatalf("expected total 50, got %v", row.TotalAmount)
	}
	if row.AverageAmount != 25 {
		t.Fatalf("expected average 25, got %v", row.AverageAmount)
	}
	if row.DistinctUsers != 1 {
		t.Fatalf("expected 1 distinct user, got %d", row.DistinctUsers)
	}
	if row.ActiveUsers != 1 {
		t.Fatalf("expected 1 active user at threshold 2, got %d", row.ActiveUsers)
	}
}

func TestAggregateProductsIncludesZeroCountEntries(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Name: "Cash Power", Kind: "product"},
		{Name: "Merchant Payment", Kind: "product"},
	}

	rows := []datasetdomain.Transaction{
		{UserID: "u1", ProductName: "Cash Power", Amount: amount(10)},
	}

	stats := AggregateProducts(rows, catalog, 2)
	if len(stats) != 2 {
		t.Fatalf("expected a row per catalog entry, got %d", len(stats))
	}
	for _, row := range stats {
		if row.Name == "Merchant Payment" {
			if row.TransactionCount != 0 || row.TotalAmount != 0 || row.AverageAmount != 0 {
				t.Fatalf("expected zero-valued row for idle product, got %+v", row)
			}
		}
	}
}

func TestTopAndLowestSkipsZeroCountProducts(t *testing.T) {
	stats := []domain.ProductStats{
		{Name: "A", TransactionCount: 50},
		{Name: "B", TransactionCount: 0},
		{Name: "C", TransactionCount: 5},
	}

	top, lowest := TopAndLowest(stats)
	if top == nil || top.Name != "A" {
		t.Fatalf("expected top A, got %+v", top)
	}
	if lowest == nil || lowest.Name != "C" {
		t.Fatalf("expected lowest C, got %+v", lowest)
	}
}

func TestTopAndLowestAllZeroCounts(t *testing.T) {
	stats := []domain.ProductStats{
		{Name: "A", TransactionCount: 0},
		{Name: "B", TransactionCount: 0},
	}

	top, lowest := TopAndLowest(stats)
	if top != nil || lowest != nil {
		t.Fatalf("expected no ranking over idle products, got top=%+v lowest=%+v", top, lowest)
	}
}
