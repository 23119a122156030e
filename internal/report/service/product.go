package service

import (
	"strings"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
)

const debitType = "DR"

// MatchesEntry reports whether a transaction belongs to a catalog entry.
// Service entries match on service_name, product entries on product_name.
// DebitOnly entries count only the DR leg so a transfer is not counted
// twice; ExcludeFeeCollections drops fee-collection rows, which are not
// user-initiated activity.
func MatchesEntry(entry config.CatalogEntry, tx datasetdomain.Transaction) bool {
	switch entry.Kind {
	case "service":
		if tx.ServiceName != entry.Name {
			return false
		}
	default:
		if tx.ProductName != entry.Name {
			return false
		}
	}
	if entry.DebitOnly && tx.TransactionType != debitType {
		return false
	}
	if entry.ExcludeFeeCollections && strings.Contains(strings.ToLower(tx.UCPName), "fee") {
		return false
	}
	return true
}

// AggregateProducts computes the per-product aggregate row for every catalog
// entry, including entries with zero transactions. A nil amount contributes
// 0 to the total; the average is total over count, 0 when there are no rows.
func AggregateProducts(rows []datasetdomain.Transaction, catalog []config.CatalogEntry, threshold int) []domain.ProductStats {
	stats := make([]domain.ProductStats, 0, len(catalog))
	for _, entry := range catalog {
		matched := make([]datasetdomain.Transaction, 0)
		for _, tx := range rows {
			if MatchesEntry(entry, tx) {
				matched = append(matched, tx)
			}
		}

		distinct := make(map[string]struct{}, len(matched))
		var total float64
		for _, tx := range matched {
			distinct[tx.UserID] = struct{}{}
			if tx.Amount != nil {
				total += *tx.Amount
			}
		}

		average := 0.0
		if len(matched) > 0 {
			average = total / float64(len(matched))
		}

		stats = append(stats, domain.ProductStats{
			Name:             entry.Name,
			Kind:             entry.Kind,
			TransactionCount: len(matched),
			DistinctUsers:    len(distinct),
			ActiveUsers:      len(ActiveUsers(matched, threshold)),
			TotalAmount:      total,
			AverageAmount:    average,
		})
	}
	return stats
}

// TopAndLowest ranks products by transaction count. Top is the highest
// count; lowest is the smallest count among products with at least one
// transaction, so an idle product never ranks as lowest performer.
func TopAndLowest(stats []domain.ProductStats) (top, lowest *domain.ProductStats) {
	for i := range stats {
		row := &stats[i]
		if row.TransactionCount <= 0 {
			continue
		}
		if top == nil || row.TransactionCount > top.TransactionCount {
			top = row
		}
		if lowest == nil || row.TransactionCount < lowest.TransactionCount {
			lowest = row
		}
	}
	return top, lowest
}
