package txfilter

import (
	"testing"
	"time"

	"finsight/internal/models"
)

func flowFixture() []models.Transaction {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{ID: "f1", Amount: 100.00, Category: []string{"Food and Drink", "Restaurants"}, Date: base},
		{ID: "f2", Amount: 50.50, Category: []string{"Food and Drink", "Coffee Shop"}, Date: base},
		{ID: "f3", Amount: -2000.00, Category: []string{"Income", "Payroll"}, Date: base},
		{ID: "f4", Amount: -500.00, Category: []string{"Transfer", "Deposit"}, Date: base},
		{ID: "f5", Amount: 300.00, Category: []string{"Credit", "Payment"}, Date: base},
		{ID: "f6", Amount: 25.00, Category: []string{"Overdraft"}, Date: base},
		{ID: "f7", Amount: 80.00, Category: []string{"Travel", "Airlines"}, Date: base},
		{ID: "f8", Amount: 12.00, Date: base},
	}
}

func TestMoneyInExcludesInternalMovement(t *testing.T) {
	got := MoneyIn(flowFixture())
	// Only the payroll inflow counts; the transfer deposit is internal.
	if got != 2000.00 {
		t.Errorf("Expected money in 2000.00, got %f", got)
	}
}

func TestMoneyOutExcludesInternalMovement(t *testing.T) {
	got := MoneyOut(flowFixture())
	// Restaurants + coffee + travel + uncategorized; credit payment and
	// overdraft fee are internal.
	want := 100.00 + 50.50 + 80.00 + 12.00
	if got != round2(want) {
		t.Errorf("Expected money out %f, got %f", round2(want), got)
	}
}

func TestTopCategoriesRanking(t *testing.T) {
	got := TopCategories(flowFixture(), 3)

	if len(got) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(got))
	}
	if got[0].Name != "Income" || got[0].Total != 2000.00 {
		t.Errorf("Expected Income first with 2000.00, got %s %f", got[0].Name, got[0].Total)
	}
	if got[1].Name != "Transfer" || got[1].Total != 500.00 {
		t.Errorf("Expected Transfer second with 500.00, got %s %f", got[1].Name, got[1].Total)
	}
	if got[2].Name != "Credit" || got[2].Total != 300.00 {
		t.Errorf("Expected Credit third with 300.00, got %s %f", got[2].Name, got[2].Total)
	}
}

func TestTopCategoriesNameTieBreak(t *testing.T) {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "t1", Amount: 50, Category: []string{"Zeta"}, Date: base},
		{ID: "t2", Amount: 50, Category: []string{"Alpha"}, Date: base},
	}

	got := TopCategories(txs, 5)
	if len(got) != 2 || got[0].Name != "Alpha" || got[1].Name != "Zeta" {
		t.Errorf("Expected equal totals ordered by name, got %v", got)
	}
}

func TestTopCategoriesUncategorizedBucket(t *testing.T) {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{{ID: "t1", Amount: 9.99, Date: base}}

	got := TopCategories(txs, 5)
	if len(got) != 1 || got[0].Name != "Other" {
		t.Errorf("Expected uncategorized rows in the Other bucket, got %v", got)
	}
}

func TestPaginateWindows(t *testing.T) {
	txs := flowFixture()

	total, page := Paginate(txs, 1, 3)
	if total != 8 || len(page) != 3 {
		t.Errorf("Expected total=8 with a 3-item first page, got total=%d len=%d", total, len(page))
	}

	total, page = Paginate(txs, 3, 3)
	if total != 8 || len(page) != 2 {
		t.Errorf("Expected a short final page of 2, got total=%d len=%d", total, len(page))
	}

	total, page = Paginate(txs, 1000, 3)
	if total != 8 || len(page) != 0 {
		t.Errorf("Expected an empty out-of-range page with total=8, got total=%d len=%d", total, len(page))
	}

	total, page = Paginate(txs, 0, 0)
	if total != 8 || len(page) != 8 {
		t.Errorf("Expected defaults for non-positive paging inputs, got total=%d len=%d", total, len(page))
	}
}
