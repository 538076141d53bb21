package dto

import (
	"fmt"
	"strconv"
	"time"

	"finsight/internal/models"
	"finsight/internal/txfilter"
)

// FilterDate carries optional inclusive bounds as YYYY-MM-DD strings; an
// empty string means the bound is absent.
type FilterDate struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// PriceRange bounds arrive as strings straight from form inputs; empty means
// absent, anything non-numeric is a client error.
type PriceRange struct {
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
}

// TransactionFilter is the wire shape of a transaction query.
type TransactionFilter struct {
	CurrentPage            int        `json:"currentPage"`
	PageSize               int        `json:"pageSize"`
	FilterDate             FilterDate `json:"filterDate"`
	MerchantName           string     `json:"merchantName"`
	PriceRange             PriceRange `json:"priceRange"`
	SelectedAccounts       []string   `json:"selectedAccounts"`
	SelectedCategories     []string   `json:"selectedCategories"`
	SelectedPaymentChannel string     `json:"selectedPaymentChannel"`
	SelectedFinCategories  []string   `json:"selectedFinCategories"`
}

// Compile validates the wire filter and produces the specification the
// filter interpreters consume. Malformed input is rejected here, before it
// can reach either backend.
func (f TransactionFilter) Compile() (txfilter.Filter, error) {
	var out txfilter.Filter

	if f.FilterDate.StartDate != "" {
		start, err := parseDay(f.FilterDate.StartDate)
		if err != nil {
			return out, fmt.Errorf("invalid startDate %q", f.FilterDate.StartDate)
		}
		out.DateRange.Start = &start
	}
	if f.FilterDate.EndDate != "" {
		end, err := parseDay(f.FilterDate.EndDate)
		if err != nil {
			return out, fmt.Errorf("invalid endDate %q", f.FilterDate.EndDate)
		}
		out.DateRange.End = &end
	}

	if f.PriceRange.MinPrice != "" {
		min, err := strconv.ParseFloat(f.PriceRange.MinPrice, 64)
		if err != nil {
			return out, fmt.Errorf("invalid minPrice %q", f.PriceRange.MinPrice)
		}
		out.PriceRange.Min = &min
	}
	if f.PriceRange.MaxPrice != "" {
		max, err := strconv.ParseFloat(f.PriceRange.MaxPrice, 64)
		if err != nil {
			return out, fmt.Errorf("invalid maxPrice %q", f.PriceRange.MaxPrice)
		}
		out.PriceRange.Max = &max
	}

	channel := f.SelectedPaymentChannel
	switch channel {
	case "", models.ChannelAll, models.ChannelOnline, models.ChannelInStore, models.ChannelOther:
	default:
		return out, fmt.Errorf("invalid paymentChannel %q", channel)
	}

	out.MerchantName = f.MerchantName
	out.PaymentChannel = channel
	out.AccountIDs = f.SelectedAccounts
	out.Categories = f.SelectedCategories
	out.FinCategories = f.SelectedFinCategories
	out.Page = f.CurrentPage
	out.PageSize = f.PageSize
	return out, nil
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
