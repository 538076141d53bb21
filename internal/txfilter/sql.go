package txfilter

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// likeEscaper neutralizes LIKE pattern metacharacters so the store matches
// the merchant needle literally, exactly as Match does. Postgres interprets
// backslash as the default ESCAPE character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Apply translates the filter into WHERE conditions on the transactions
// table. This is the store-native interpreter; the channel sentinel is never
// emitted as a literal condition, and empty sets add nothing.
func (f Filter) Apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.DateRange.Start != nil {
		b = b.Where(squirrel.GtOrEq{"date": *f.DateRange.Start})
	}
	if f.DateRange.End != nil {
		b = b.Where(squirrel.LtOrEq{"date": *f.DateRange.End})
	}
	if f.PriceRange.Min != nil {
		b = b.Where(squirrel.GtOrEq{"amount": *f.PriceRange.Min})
	}
	if f.PriceRange.Max != nil {
		b = b.Where(squirrel.LtOrEq{"amount": *f.PriceRange.Max})
	}
	if f.MerchantName != "" {
		needle := likeEscaper.Replace(f.MerchantName)
		b = b.Where(
			squirrel.Expr(
				"(name ILIKE '%' || ? || '%' OR merchant_name ILIKE '%' || ? || '%')",
				needle, needle,
			),
		)
	}
	if f.hasChannel() {
		b = b.Where(squirrel.Eq{"payment_channel": f.PaymentChannel})
	}
	if len(f.AccountIDs) > 0 {
		b = b.Where(squirrel.Eq{"account_id": f.AccountIDs})
	}
	if len(f.Categories) > 0 {
		// Array overlap: matches when the stored category path contains any
		// of the requested strings.
		b = b.Where(squirrel.Expr("category && ?", f.Categories))
	}
	if len(f.FinCategories) > 0 {
		b = b.Where(squirrel.Eq{"pfc_primary": f.FinCategories})
	}
	return b
}

// OrderAndPage appends the canonical sort order and the page window.
func (f Filter) OrderAndPage(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.OrderBy("date DESC", "id ASC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize))
}
