package txfilter

import (
	"math"
	"sort"

	"finsight/internal/models"
)

// Category path entries that mark a transaction as internal movement rather
// than real income or spending.
var internalCategories = []string{"Transfer", "Credit", "Overdraft"}

// Paginate slices a filtered set. Pages are 1-based; an out-of-range page
// yields an empty slice with the correct total, never an error.
func Paginate(txs []models.Transaction, page, pageSize int) (int, []models.Transaction) {
	total := len(txs)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	start := (page - 1) * pageSize
	if start >= total {
		return total, []models.Transaction{}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return total, txs[start:end]
}

func isInternal(t models.Transaction) bool {
	return categoryOverlap(t.Category, internalCategories)
}

// MoneyIn sums inflows (negative amounts) over a filtered set, excluding
// internal transfers, as a positive figure.
func MoneyIn(txs []models.Transaction) float64 {
	var sum float64
	for _, t := range txs {
		if t.Amount < 0 && !isInternal(t) {
			sum += -t.Amount
		}
	}
	return round2(sum)
}

// MoneyOut sums outflows (positive amounts) over a filtered set, excluding
// internal transfers.
func MoneyOut(txs []models.Transaction) float64 {
	var sum float64
	for _, t := range txs {
		if t.Amount > 0 && !isInternal(t) {
			sum += t.Amount
		}
	}
	return round2(sum)
}

type CategoryTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// TopCategories ranks top-level categories by absolute spend, descending,
// keeping at most n entries.
func TopCategories(txs []models.Transaction, n int) []CategoryTotal {
	byName := map[string]float64{}
	for _, t := range txs {
		name := "Other"
		if len(t.Category) > 0 {
			name = t.Category[0]
		}
		byName[name] += math.Abs(t.Amount)
	}
	out := make([]CategoryTotal, 0, len(byName))
	for name, total := range byName {
		out = append(out, CategoryTotal{Name: name, Total: round2(total)})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Total != out[b].Total {
			return out[a].Total > out[b].Total
		}
		return out[a].Name < out[b].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
