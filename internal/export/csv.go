package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

// WriteTransactionsCSV serializes cleaned transaction rows. Nil amounts and
// timestamps serialize as empty cells.
func WriteTransactionsCSV(w io.Writer, rows []datasetdomain.Transaction) error {
	writer := csv.NewWriter(w)

	header := []string{
		"user_id", "entity_name", "status", "service_name", "product_name",
		"transaction_type", "amount", "ucp_name", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.UserID,
			row.EntityName,
			row.Status,
			row.ServiceName,
			row.ProductName,
			row.TransactionType,
			formatAmount(row.Amount),
			row.UCPName,
			formatTime(row.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteOnboardingCSV serializes cleaned onboarding rows.
func WriteOnboardingCSV(w io.Writer, rows []datasetdomain.OnboardingRecord) error {
	writer := csv.NewWriter(w)

	header := []string{
		"account_id", "full_name", "mobile", "email", "region", "district",
		"town_village", "business_name", "kyc_status", "registration_date",
		"updated_at", "proof_of_id", "identification_number",
		"customer_referrer_code", "customer_referrer_mobile", "referrer_entity",
		"entity", "bank", "bank_account_name", "bank_account_number", "status",
		"user_id",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.AccountID,
			row.FullName,
			row.Mobile,
			row.Email,
			row.Region,
			row.District,
			row.TownVillage,
			row.BusinessName,
			row.KYCStatus,
			formatTime(row.RegistrationDate),
			formatTime(row.UpdatedAt),
			row.ProofOfID,
			row.IdentificationNumber,
			row.CustomerReferrerCode,
			row.CustomerReferrerMobile,
			row.ReferrerEntity,
			row.Entity,
			row.Bank,
			row.BankAccountName,
			row.BankAccountNumber,
			row.Status,
			row.UserID,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
