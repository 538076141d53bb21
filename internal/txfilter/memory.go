package txfilter

import (
	"sort"
	"strings"

	"finsight/internal/models"
)

// Match reports whether a transaction satisfies the filter. This is the
// in-memory interpreter; it must stay field-for-field equivalent to Apply.
func (f Filter) Match(t models.Transaction) bool {
	if f.DateRange.Start != nil && t.Date.Before(*f.DateRange.Start) {
		return false
	}
	if f.DateRange.End != nil && t.Date.After(*f.DateRange.End) {
		return false
	}
	if f.PriceRange.Min != nil && t.Amount < *f.PriceRange.Min {
		return false
	}
	if f.PriceRange.Max != nil && t.Amount > *f.PriceRange.Max {
		return false
	}
	if f.MerchantName != "" {
		needle := strings.ToLower(f.MerchantName)
		if !strings.Contains(strings.ToLower(t.Name), needle) &&
			!strings.Contains(strings.ToLower(t.MerchantName), needle) {
			return false
		}
	}
	if f.hasChannel() && t.PaymentChannel != f.PaymentChannel {
		return false
	}
	if len(f.AccountIDs) > 0 && !containsString(f.AccountIDs, t.AccountID) {
		return false
	}
	if len(f.Categories) > 0 && !categoryOverlap(t.Category, f.Categories) {
		return false
	}
	if len(f.FinCategories) > 0 {
		if t.PersonalFinanceCategory == nil ||
			!containsString(f.FinCategories, t.PersonalFinanceCategory.Primary) {
			return false
		}
	}
	return true
}

// Run filters, sorts and pages a materialized transaction list. The returned
// total is the match count before slicing.
func Run(txs []models.Transaction, f Filter) (int, []models.Transaction) {
	var matched []models.Transaction
	for _, t := range txs {
		if f.Match(t) {
			matched = append(matched, t)
		}
	}
	SortResults(matched)
	return Paginate(matched, f.Page, f.PageSize)
}

// SortResults orders by date descending with ID ascending as the tie-break,
// so repeated calls with the same filter page identically.
func SortResults(txs []models.Transaction) {
	sort.SliceStable(txs, func(a, b int) bool {
		if !txs[a].Date.Equal(txs[b].Date) {
			return txs[a].Date.After(txs[b].Date)
		}
		return txs[a].ID < txs[b].ID
	})
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// categoryOverlap implements the OR semantics: the transaction matches when
// its category path contains any requested string.
func categoryOverlap(path, requested []string) bool {
	for _, want := range requested {
		for _, have := range path {
			if have == want {
				return true
			}
		}
	}
	return false
}
