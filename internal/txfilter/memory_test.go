package txfilter

import (
	"testing"
	"time"

	"finsight/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:             "tx_001",
			AccountID:      "acc_checking",
			Amount:         42.50,
			Category:       []string{"Food and Drink", "Restaurants"},
			Name:           "Starbucks",
			MerchantName:   "Starbucks",
			PaymentChannel: models.ChannelInStore,
			Date:           day(2025, time.June, 10),
			PersonalFinanceCategory: &models.PersonalFinanceCategory{
				Primary: "FOOD_AND_DRINK",
			},
		},
		{
			ID:             "tx_002",
			AccountID:      "acc_checking",
			Amount:         -250.00,
			Category:       []string{"Transfer", "Deposit"},
			Name:           "Payroll",
			MerchantName:   "Employer Inc",
			PaymentChannel: models.ChannelOther,
			Date:           day(2025, time.June, 12),
		},
		{
			ID:             "tx_003",
			AccountID:      "acc_credit",
			Amount:         120.00,
			Category:       []string{"Shops", "Groceries"},
			Name:           "Whole Foods",
			MerchantName:   "Whole Foods",
			PaymentChannel: models.ChannelOnline,
			Date:           day(2025, time.June, 12),
		},
		{
			ID:             "tx_004",
			AccountID:      "acc_credit",
			Amount:         15.99,
			Category:       []string{"Service", "Subscription"},
			Name:           "Netflix",
			MerchantName:   "Netflix",
			PaymentChannel: models.ChannelOnline,
			Date:           day(2025, time.May, 2),
			PersonalFinanceCategory: &models.PersonalFinanceCategory{
				Primary: "ENTERTAINMENT",
			},
		},
		{
			ID:             "tx_005",
			AccountID:      "acc_savings",
			Amount:         300.00,
			Category:       []string{"Travel", "Airlines"},
			Name:           "United Airlines",
			MerchantName:   "United",
			PaymentChannel: models.ChannelOnline,
			Date:           day(2024, time.December, 20),
		},
	}
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{}.Normalize(true, day(2025, time.June, 15))

	total, page := Run(txs, f)
	if total != len(txs) {
		t.Errorf("Expected total %d, got %d", len(txs), total)
	}
	if len(page) != len(txs) {
		t.Errorf("Expected %d items on the first page, got %d", len(txs), len(page))
	}
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	txs := fixtureTransactions()
	start := day(2025, time.June, 10)
	end := day(2025, time.June, 12)
	f := Filter{DateRange: DateRange{Start: &start, End: &end}}.Normalize(true, day(2025, time.June, 15))

	total, _ := Run(txs, f)
	if total != 3 {
		t.Errorf("Expected 3 transactions inside inclusive range, got %d", total)
	}
}

func TestPriceRangeInclusiveBounds(t *testing.T) {
	txs := fixtureTransactions()
	min, max := 15.99, 120.00
	f := Filter{PriceRange: PriceRange{Min: &min, Max: &max}}.Normalize(true, day(2025, time.June, 15))

	total, _ := Run(txs, f)
	if total != 3 {
		t.Errorf("Expected 3 transactions inside inclusive price range, got %d", total)
	}
}

func TestMerchantSubstringCaseInsensitive(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{MerchantName: "starBUCKS"}.Normalize(true, day(2025, time.June, 15))

	total, page := Run(txs, f)
	if total != 1 || page[0].ID != "tx_001" {
		t.Errorf("Expected only tx_001 for case-insensitive merchant match, got total=%d", total)
	}

	// The alias field matches too.
	f = Filter{MerchantName: "employer"}.Normalize(true, day(2025, time.June, 15))
	total, page = Run(txs, f)
	if total != 1 || page[0].ID != "tx_002" {
		t.Errorf("Expected tx_002 via merchant alias, got total=%d", total)
	}
}

func TestMerchantMetacharactersMatchLiterally(t *testing.T) {
	txs := fixtureTransactions()

	// "%" and "_" are plain characters in the merchant needle, not wildcards:
	// "St%ks" must not match "Starbucks" on either backend.
	f := Filter{MerchantName: "St%ks"}.Normalize(true, day(2025, time.June, 15))
	total, _ := Run(txs, f)
	if total != 0 {
		t.Errorf("Expected no matches for a needle with a literal %%, got %d", total)
	}

	f = Filter{MerchantName: "St_rbucks"}.Normalize(true, day(2025, time.June, 15))
	total, _ = Run(txs, f)
	if total != 0 {
		t.Errorf("Expected no matches for a needle with a literal _, got %d", total)
	}
}

func TestChannelWildcardMeansNoFilter(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{PaymentChannel: models.ChannelAll}.Normalize(true, day(2025, time.June, 15))

	total, _ := Run(txs, f)
	if total != len(txs) {
		t.Errorf("Expected the wildcard channel to match everything, got %d", total)
	}

	f = Filter{PaymentChannel: models.ChannelOnline}.Normalize(true, day(2025, time.June, 15))
	total, _ = Run(txs, f)
	if total != 3 {
		t.Errorf("Expected 3 online transactions, got %d", total)
	}
}

func TestCategoryORSemantics(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{Categories: []string{"Food and Drink", "Travel"}}.Normalize(true, day(2025, time.June, 15))

	total, page := Run(txs, f)
	if total != 2 {
		t.Fatalf("Expected 2 matches for OR category filter, got %d", total)
	}
	for _, tx := range page {
		if tx.ID == "tx_003" {
			t.Errorf("Shops/Groceries transaction must not match Food and Drink or Travel")
		}
	}
}

func TestAccountMembership(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{AccountIDs: []string{"acc_credit"}}.Normalize(true, day(2025, time.June, 15))

	total, _ := Run(txs, f)
	if total != 2 {
		t.Errorf("Expected 2 credit-account transactions, got %d", total)
	}
}

func TestFinCategoryRequiresClassification(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{FinCategories: []string{"FOOD_AND_DRINK"}}.Normalize(true, day(2025, time.June, 15))

	total, page := Run(txs, f)
	if total != 1 || page[0].ID != "tx_001" {
		t.Errorf("Expected only the classified food transaction, got total=%d", total)
	}
}

func TestSortDateDescendingWithStableTieBreak(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{}.Normalize(true, day(2025, time.June, 15))

	_, page := Run(txs, f)

	wantOrder := []string{"tx_002", "tx_003", "tx_001", "tx_004", "tx_005"}
	if len(page) != len(wantOrder) {
		t.Fatalf("Expected %d items, got %d", len(wantOrder), len(page))
	}
	for i, want := range wantOrder {
		if page[i].ID != want {
			t.Errorf("Expected %s at position %d, got %s", want, i, page[i].ID)
		}
	}
}

func TestPaginationBeyondRange(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{Page: 1000, PageSize: 10}.Normalize(true, day(2025, time.June, 15))

	total, page := Run(txs, f)
	if total != 5 {
		t.Errorf("Expected total 5 for out-of-range page, got %d", total)
	}
	if len(page) != 0 {
		t.Errorf("Expected empty items for out-of-range page, got %d", len(page))
	}
}

func TestNormalizeClampsHistoryForUnentitledUsers(t *testing.T) {
	now := day(2025, time.June, 15)
	yearStart := day(2025, time.January, 1)

	// Requested start before the year boundary is clamped.
	early := day(2024, time.March, 1)
	f := Filter{DateRange: DateRange{Start: &early}}.Normalize(false, now)
	if f.DateRange.Start == nil || !f.DateRange.Start.Equal(yearStart) {
		t.Errorf("Expected start clamped to %s, got %v", yearStart, f.DateRange.Start)
	}

	// No requested start still gets the clamp.
	f = Filter{}.Normalize(false, now)
	if f.DateRange.Start == nil || !f.DateRange.Start.Equal(yearStart) {
		t.Errorf("Expected implicit clamp to %s, got %v", yearStart, f.DateRange.Start)
	}

	// A start inside the year passes through.
	inside := day(2025, time.April, 1)
	f = Filter{DateRange: DateRange{Start: &inside}}.Normalize(false, now)
	if !f.DateRange.Start.Equal(inside) {
		t.Errorf("Expected start %s kept, got %v", inside, f.DateRange.Start)
	}

	// Entitled users are never clamped.
	f = Filter{DateRange: DateRange{Start: &early}}.Normalize(true, now)
	if !f.DateRange.Start.Equal(early) {
		t.Errorf("Expected full-history start %s kept, got %v", early, f.DateRange.Start)
	}
}

func TestClampExcludesOldRows(t *testing.T) {
	txs := fixtureTransactions()
	f := Filter{}.Normalize(false, day(2025, time.June, 15))

	total, _ := Run(txs, f)
	if total != 4 {
		t.Errorf("Expected the December 2024 transaction clamped away, got total=%d", total)
	}
}
