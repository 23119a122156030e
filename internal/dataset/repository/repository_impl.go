package repository

import (
	"context"
	"time"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"gorm.io/gorm"
)

type repo struct {
	debugQueries bool
}

func Provide(cfg config.Config) domain.Repository {
	return &repo{debugQueries: cfg.DebugQueries}
}

const transactionColumns = `user_identifier, entity_name, status, service_name, product_name, transaction_type, amount, ucp_name, created_at`

// Reduced column list for environments where the reporting view lags the
// transaction schema.
const transactionColumnsReduced = `user_identifier, status, service_name, product_name, transaction_type, amount, created_at`

func (r *repo) FetchTransactions(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.TransactionRow, error) {
	rows, err := r.fetchTransactions(ctx, db, transactionColumns, start, end)
	if err != nil && r.debugQueries {
		return r.fetchTransactions(ctx, db, transactionColumnsReduced, start, end)
	}
	return rows, err
}

func (r *repo) fetchTransactions(ctx context.Context, db *gorm.DB, columns string, start, end time.Time) ([]domain.TransactionRow, error) {
	var rows []domain.TransactionRow
	err := db.WithContext(ctx).Raw(
		`SELECT `+columns+`
		 FROM transactions
		 WHERE status = ? AND created_at BETWEEN ? AND ?
		 ORDER BY created_at ASC`,
		"SUCCESS",
		start,
		end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) FetchOnboarding(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.OnboardingRow, error) {
	var rows []domain.OnboardingRow
	err := db.WithContext(ctx).Raw(
		`SELECT account_id, full_name, mobile, email, region, district, town_village,
		        business_name, kyc_status, registration_date, updated_at, proof_of_id,
		        identification_number, customer_referrer_code, customer_referrer_mobile,
		        referrer_entity, entity, bank, bank_account_name, bank_account_number, status
		 FROM onboarding_registrations
		 WHERE registration_date BETWEEN ? AND ?
		 ORDER BY registration_date ASC`,
		start,
		end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
