package domain

import (
	"database/sql"
	"testing"
	"time"
)

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}

func TestCleanTransactionMalformedAmountBecomesNil(t *testing.T) {
	row := TransactionRow{
		UserIdentifier: nullStr("u1"),
		Amount:         nullStr("not-a-number"),
	}

	cleaned := CleanTransaction(row)
	if cleaned.Amount != nil {
		t.Fatalf("expected nil amount for malformed value, got %v", *cleaned.Amount)
	}
	if cleaned.UserID != "u1" {
		t.Fatalf("expected row retained with user u1, got %q", cleaned.UserID)
	}
}

func TestCleanTransactionParsesAmountWithThousandsSeparators(t *testing.T) {
	row := TransactionRow{
		UserIdentifier: nullStr("u1"),
		Amount:         nullStr(" 1,250.50 "),
	}

	cleaned := CleanTransaction(row)
	if cleaned.Amount == nil || *cleaned.Amount != 1250.50 {
		t.Fatalf("expected amount 1250.50, got %v", cleaned.Amount)
	}
}

func TestCleanTransactionBlankUserBecomesUnknown(t *testing.T) {
	for _, raw := range []sql.NullString{
		{},
		nullStr(""),
		nullStr("   "),
	} {
		cleaned := CleanTransaction(TransactionRow{UserIdentifier: raw})
		if cleaned.UserID != UnknownUser {
			t.Fatalf("expected %q for blank user, got %q", UnknownUser, cleaned.UserID)
		}
	}
}

func TestCleanTransactionTrimsUserID(t *testing.T) {
	cleaned := CleanTransaction(TransactionRow{UserIdentifier: nullStr("  u1  ")})
	if cleaned.UserID != "u1" {
		t.Fatalf("expected trimmed user id, got %q", cleaned.UserID)
	}
}

func TestCleanTransactionNullTimestampBecomesNil(t *testing.T) {
	cleaned := CleanTransaction(TransactionRow{
		UserIdentifier: nullStr("u1"),
		CreatedAt:      sql.NullTime{},
	})
	if cleaned.CreatedAt != nil {
		t.Fatalf("expected nil created_at, got %v", cleaned.CreatedAt)
	}
}

func TestCleanOnboardingUserIDFromMobile(t *testing.T) {
	row := OnboardingRow{
		Mobile: nullStr(" 2207001122 "),
		Status: nullStr("Active"),
	}

	cleaned := CleanOnboarding(row)
	if cleaned.UserID != "2207001122" {
		t.Fatalf("expected user id from trimmed mobile, got %q", cleaned.UserID)
	}
}

func TestCleanOnboardingBlankMobileBecomesUnknown(t *testing.T) {
	cleaned := CleanOnboarding(OnboardingRow{Mobile: nullStr("  ")})
	if cleaned.UserID != UnknownUser {
		t.Fatalf("expected %q, got %q", UnknownUser, cleaned.UserID)
	}
}

func TestCacheKeyFormat(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	if key := CacheKey(start, end); key != "20240301:20240331" {
		t.Fatalf("unexpected cache key %q", key)
	}
}
