// Package txfilter is the filter compiler: one filter specification consumed
// by two interpreters, an in-memory predicate and a squirrel SQL builder,
// with identical observable semantics in both.
package txfilter

import (
	"time"

	"finsight/internal/models"
)

const DefaultPageSize = 10

type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type PriceRange struct {
	Min *float64
	Max *float64
}

// Filter describes one transaction query. Empty sets mean "no restriction";
// set membership is OR semantics. PaymentChannel equal to ChannelAll (or
// empty) means no channel condition.
type Filter struct {
	DateRange      DateRange
	PriceRange     PriceRange
	MerchantName   string
	PaymentChannel string
	AccountIDs     []string
	Categories     []string
	FinCategories  []string
	Page           int
	PageSize       int
}

func (f Filter) hasChannel() bool {
	return f.PaymentChannel != "" && f.PaymentChannel != models.ChannelAll
}

// Normalize applies paging defaults and the history entitlement clamp: a
// caller without full-history access never sees rows before January 1 of the
// current calendar year, whatever start date was requested.
func (f Filter) Normalize(fullHistory bool, now time.Time) Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if !fullHistory {
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		if f.DateRange.Start == nil || f.DateRange.Start.Before(yearStart) {
			f.DateRange.Start = &yearStart
		}
	}
	return f
}
