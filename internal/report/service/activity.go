package service

import (
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

// TransactionCounts returns the number of transactions per user over the
// given rows.
func TransactionCounts(rows []datasetdomain.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.UserID]++
	}
	return counts
}

// ActiveUsers classifies a user active when their transaction count over the
// given rows meets the threshold. The rows are expected to be filtered to
// the period already; restricting them to a segment or product yields
// segment- or product-specific active users with the same routine.
func ActiveUsers(rows []datasetdomain.Transaction, threshold int) []string {
	counts := TransactionCounts(rows)

	seen := make(map[string]struct{}, len(counts))
	active := make([]string, 0, len(counts))
	for _, row := range rows {
		if _, ok := seen[row.UserID]; ok {
			continue
		}
		seen[row.UserID] = struct{}{}
		if counts[row.UserID] >= threshold {
			active = append(active, row.UserID)
		}
	}
	return active
}

// RestrictToUsers returns the transactions belonging to the given user set.
func RestrictToUsers(rows []datasetdomain.Transaction, userIDs []string) []datasetdomain.Transaction {
	members := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		members[id] = struct{}{}
	}

	restricted := make([]datasetdomain.Transaction, 0, len(rows))
	for _, row := range rows {
		if _, ok := members[row.UserID]; ok {
			restricted = append(restricted, row)
		}
	}
	return restricted
}
