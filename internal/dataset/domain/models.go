package domain

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// UnknownUser is the user identifier assigned to rows whose source column is
// blank or null. Such rows still count toward totals.
const UnknownUser = "unknown"

// Transaction is a cleaned transactional row. Amount and CreatedAt are nil
// when the source value failed to parse; the row itself is never dropped.
type Transaction struct {
	UserID          string     `json:"user_id"`
	EntityName      string     `json:"entity_name"`
	Status          string     `json:"status"`
	ServiceName     string     `json:"service_name"`
	ProductName     string     `json:"product_name"`
	TransactionType string     `json:"transaction_type"`
	Amount          *float64   `json:"amount"`
	UCPName         string     `json:"ucp_name"`
	CreatedAt       *time.Time `json:"created_at"`
}

// OnboardingRecord is a cleaned customer-onboarding row. UserID is derived
// from the trimmed mobile number.
type OnboardingRecord struct {
	AccountID              string     `json:"account_id"`
	FullName               string     `json:"full_name"`
	Mobile                 string     `json:"mobile"`
	Email                  string     `json:"email"`
	Region                 string     `json:"region"`
	District               string     `json:"district"`
	TownVillage            string     `json:"town_village"`
	BusinessName           string     `json:"business_name"`
	KYCStatus              string     `json:"kyc_status"`
	RegistrationDate       *time.Time `json:"registration_date"`
	UpdatedAt              *time.Time `json:"updated_at"`
	ProofOfID              string     `json:"proof_of_id"`
	IdentificationNumber   string     `json:"identification_number"`
	CustomerReferrerCode   string     `json:"customer_referrer_code"`
	CustomerReferrerMobile string     `json:"customer_referrer_mobile"`
	ReferrerEntity         string     `json:"referrer_entity"`
	Entity                 string     `json:"entity"`
	Bank                   string     `json:"bank"`
	BankAccountName        string     `json:"bank_account_name"`
	BankAccountNumber      string     `json:"bank_account_number"`
	Status                 string     `json:"status"`
	UserID                 string     `json:"user_id"`
}

// Snapshot is an immutable materialization of both record sets for one date
// range. Report bundles are pure functions over a Snapshot.
type Snapshot struct {
	LoadID       string             `json:"load_id"`
	Start        time.Time          `json:"start"`
	End          time.Time          `json:"end"`
	Transactions []Transaction      `json:"transactions"`
	Onboarding   []OnboardingRecord `json:"onboarding"`
	LoadedAt     time.Time          `json:"loaded_at"`
	FromCache    bool               `json:"from_cache"`
}

// TransactionRow is a raw data-source row. Amount arrives as text so that a
// malformed value coerces to a nil field instead of failing the scan.
type TransactionRow struct {
	UserIdentifier  sql.NullString `gorm:"column:user_identifier"`
	EntityName      sql.NullString `gorm:"column:entity_name"`
	Status          sql.NullString `gorm:"column:status"`
	ServiceName     sql.NullString `gorm:"column:service_name"`
	ProductName     sql.NullString `gorm:"column:product_name"`
	TransactionType sql.NullString `gorm:"column:transaction_type"`
	Amount          sql.NullString `gorm:"column:amount"`
	UCPName         sql.NullString `gorm:"column:ucp_name"`
	CreatedAt       sql.NullTime   `gorm:"column:created_at"`
}

// OnboardingRow is a raw onboarding-registration row.
type OnboardingRow struct {
	AccountID              sql.NullString `gorm:"column:account_id"`
	FullName               sql.NullString `gorm:"column:full_name"`
	Mobile                 sql.NullString `gorm:"column:mobile"`
	Email                  sql.NullString `gorm:"column:email"`
	Region                 sql.NullString `gorm:"column:region"`
	District               sql.NullString `gorm:"column:district"`
	TownVillage            sql.NullString `gorm:"column:town_village"`
	BusinessName           sql.NullString `gorm:"column:business_name"`
	KYCStatus              sql.NullString `gorm:"column:kyc_status"`
	RegistrationDate       sql.NullTime   `gorm:"column:registration_date"`
	UpdatedAt              sql.NullTime   `gorm:"column:updated_at"`
	ProofOfID              sql.NullString `gorm:"column:proof_of_id"`
	IdentificationNumber   sql.NullString `gorm:"column:identification_number"`
	CustomerReferrerCode   sql.NullString `gorm:"column:customer_referrer_code"`
	CustomerReferrerMobile sql.NullString `gorm:"column:customer_referrer_mobile"`
	ReferrerEntity         sql.NullString `gorm:"column:referrer_entity"`
	Entity                 sql.NullString `gorm:"column:entity"`
	Bank                   sql.NullString `gorm:"column:bank"`
	BankAccountName        sql.NullString `gorm:"column:bank_account_name"`
	BankAccountNumber      sql.NullString `gorm:"column:bank_account_number"`
	Status                 sql.NullString `gorm:"column:status"`
}

// CleanTransaction applies the row-cleaning invariants to a raw row.
func CleanTransaction(row TransactionRow) Transaction {
	return Transaction{
		UserID:          cleanUserID(row.UserIdentifier),
		EntityName:      trimmed(row.EntityName),
		Status:          trimmed(row.Status),
		ServiceName:     trimmed(row.ServiceName),
		ProductName:     trimmed(row.ProductName),
		TransactionType: trimmed(row.TransactionType),
		Amount:          parseAmount(row.Amount),
		UCPName:         trimmed(row.UCPName),
		CreatedAt:       timePtr(row.CreatedAt),
	}
}

// CleanOnboarding applies the row-cleaning invariants to a raw row.
func CleanOnboarding(row OnboardingRow) OnboardingRecord {
	mobile := trimmed(row.Mobile)
	return OnboardingRecord{
		AccountID:              trimmed(row.AccountID),
		FullName:               trimmed(row.FullName),
		Mobile:                 mobile,
		Email:                  trimmed(row.Email),
		Region:                 trimmed(row.Region),
		District:               trimmed(row.District),
		TownVillage:            trimmed(row.TownVillage),
		BusinessName:           trimmed(row.BusinessName),
		KYCStatus:              trimmed(row.KYCStatus),
		RegistrationDate:       timePtr(row.RegistrationDate),
		UpdatedAt:              timePtr(row.UpdatedAt),
		ProofOfID:              trimmed(row.ProofOfID),
		IdentificationNumber:   trimmed(row.IdentificationNumber),
		CustomerReferrerCode:   trimmed(row.CustomerReferrerCode),
		CustomerReferrerMobile: trimmed(row.CustomerReferrerMobile),
		ReferrerEntity:         trimmed(row.ReferrerEntity),
		Entity:                 trimmed(row.Entity),
		Bank:                   trimmed(row.Bank),
		BankAccountName:        trimmed(row.BankAccountName),
		BankAccountNumber:      trimmed(row.BankAccountNumber),
		Status:                 trimmed(row.Status),
		UserID:                 userIDFromMobile(mobile),
	}
}

// CacheKey derives the snapshot-cache key for a date range.
func CacheKey(start, end time.Time) string {
	return start.UTC().Format("20060102") + ":" + end.UTC().Format("20060102")
}

func cleanUserID(value sql.NullString) string {
	id := trimmed(value)
	if id == "" {
		return UnknownUser
	}
	return id
}

func userIDFromMobile(mobile string) string {
	if mobile == "" {
		return UnknownUser
	}
	return mobile
}

func trimmed(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return strings.TrimSpace(value.String)
}

func parseAmount(value sql.NullString) *float64 {
	if !value.Valid {
		return nil
	}
	raw := strings.ReplaceAll(strings.TrimSpace(value.String), ",", "")
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}
