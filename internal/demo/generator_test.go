package demo

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"finsight/internal/models"
)

var testRef = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestGenerateAtIsDeterministic(t *testing.T) {
	a := GenerateAt(testRef)
	b := GenerateAt(testRef)

	aJSON, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Error marshaling first dataset: %v", err)
	}
	bJSON, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Error marshaling second dataset: %v", err)
	}

	if !bytes.Equal(aJSON, bJSON) {
		t.Errorf("Expected two generations to be byte-identical, they differ")
	}
}

func TestTransactionCounts(t *testing.T) {
	ds := GenerateAt(testRef)

	counts := map[string]int{}
	for _, tx := range ds.Transactions {
		counts[tx.AccountID]++
	}

	expected := map[string]int{
		"demo_checking_001":   45,
		"demo_savings_001":    5,
		"demo_credit_001":     30,
		"demo_investment_001": 10,
	}
	for accountID, want := range expected {
		if counts[accountID] != want {
			t.Errorf("Expected %d transactions for %s, got %d", want, accountID, counts[accountID])
		}
	}
	if len(ds.Transactions) != 90 {
		t.Errorf("Expected 90 transactions total, got %d", len(ds.Transactions))
	}
}

func TestTransactionsWithinTrailingWindow(t *testing.T) {
	ds := GenerateAt(testRef)
	today := testRef.UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -30)

	for _, tx := range ds.Transactions {
		if tx.Date.Before(windowStart) || tx.Date.After(today) {
			t.Errorf("Transaction %s dated %s outside the trailing 30-day window", tx.ID, tx.Date)
		}
	}
}

func TestAmountsArePlausible(t *testing.T) {
	ds := GenerateAt(testRef)
	for _, tx := range ds.Transactions {
		if tx.Amount < 5 || tx.Amount >= 205 {
			t.Errorf("Expected amount in [5, 205) for %s, got %f", tx.ID, tx.Amount)
		}
	}
}

func TestPerAccountDateDescending(t *testing.T) {
	ds := GenerateAt(testRef)

	last := map[string]time.Time{}
	for _, tx := range ds.Transactions {
		if prev, ok := last[tx.AccountID]; ok && tx.Date.After(prev) {
			t.Errorf("Account %s transactions not sorted date-descending: %s after %s",
				tx.AccountID, tx.Date, prev)
		}
		last[tx.AccountID] = tx.Date
	}
}

func TestAccountCatalog(t *testing.T) {
	ds := GenerateAt(testRef)

	if len(ds.Accounts) != 4 {
		t.Fatalf("Expected 4 accounts, got %d", len(ds.Accounts))
	}

	types := map[models.AccountType]bool{}
	for _, a := range ds.Accounts {
		types[a.Type] = true
	}
	for _, want := range []models.AccountType{
		models.AccountTypeChecking,
		models.AccountTypeSavings,
		models.AccountTypeCredit,
		models.AccountTypeInvestment,
	} {
		if !types[want] {
			t.Errorf("Expected an account of type %s", want)
		}
	}

	if len(ds.Items) != 3 {
		t.Errorf("Expected 3 bank connections, got %d", len(ds.Items))
	}
}

func TestNetWorthDistinctFromTotalBalance(t *testing.T) {
	ds := GenerateAt(testRef)

	wantTotal := 2543.65 + 8750.00 + 1200.00 + 15420.50
	if ds.TotalBalance != round2(wantTotal) {
		t.Errorf("Expected total balance %f, got %f", round2(wantTotal), ds.TotalBalance)
	}

	wantNetWorth := round2(wantTotal - 1200.00)
	if ds.NetWorth != wantNetWorth {
		t.Errorf("Expected net worth %f, got %f", wantNetWorth, ds.NetWorth)
	}

	if ds.NetWorth == ds.TotalBalance {
		t.Errorf("Net worth and total balance must stay distinct figures")
	}
}

func TestTopCategoriesRankedDescending(t *testing.T) {
	ds := GenerateAt(testRef)

	if len(ds.TopCategories) == 0 || len(ds.TopCategories) > 5 {
		t.Fatalf("Expected 1..5 top categories, got %d", len(ds.TopCategories))
	}
	for i := 1; i < len(ds.TopCategories); i++ {
		if ds.TopCategories[i].Value > ds.TopCategories[i-1].Value {
			t.Errorf("Top categories not sorted descending at index %d", i)
		}
	}
}

func TestActivityGridShapeAndSigns(t *testing.T) {
	ds := GenerateAt(testRef)

	if len(ds.ActivityGrid) != 52 {
		t.Fatalf("Expected 52 weeks, got %d", len(ds.ActivityGrid))
	}
	for week, row := range ds.ActivityGrid {
		if len(row) != 7 {
			t.Fatalf("Expected 7 days in week %d, got %d", week, len(row))
		}
		for day, value := range row {
			s := week*7 + day
			if s%10 < 3 {
				if value >= 0 {
					t.Errorf("Cell (%d,%d) should be income-like (negative), got %d", week, day, value)
				}
			} else if value < 0 {
				t.Errorf("Cell (%d,%d) should be spend-like (non-negative), got %d", week, day, value)
			}
		}
	}
}

func TestSeriesCoverTwelveMonths(t *testing.T) {
	ds := GenerateAt(testRef)

	if len(ds.Cumulative) != 12 {
		t.Errorf("Expected 12 cumulative points, got %d", len(ds.Cumulative))
	}
	if len(ds.Monthly) != 12 {
		t.Errorf("Expected 12 monthly points, got %d", len(ds.Monthly))
	}
	for i := 1; i < len(ds.Cumulative); i++ {
		if ds.Cumulative[i].Spend <= ds.Cumulative[i-1].Spend-300 {
			t.Errorf("Cumulative spend should progress upward at index %d", i)
		}
	}
}

func TestAccountSeed(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"demo_checking_001", 1},
		{"demo_account_007", 7},
		{"plain", 1},
		{"acct_xyz", 1},
	}
	for _, tt := range tests {
		if got := accountSeed(tt.id); got != tt.want {
			t.Errorf("accountSeed(%q): expected %d, got %d", tt.id, tt.want, got)
		}
	}
}
