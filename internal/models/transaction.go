package models

import (
	"time"
)

// Payment channels as reported by the aggregation provider. ChannelAll is a
// filter sentinel only and is never stored on a transaction.
const (
	ChannelOnline  = "online"
	ChannelInStore = "in store"
	ChannelOther   = "other"
	ChannelAll     = "all"
)

// PersonalFinanceCategory is the provider's two-level classification.
type PersonalFinanceCategory struct {
	Primary  string `db:"pfc_primary" json:"primary"`
	Detailed string `db:"pfc_detailed" json:"detailed"`
}

// Transaction is immutable once fetched or synthesized. Sign convention:
// a negative amount is money received, a positive amount is money spent.
type Transaction struct {
	ID                      string                   `db:"id" json:"transaction_id"`
	AccountID               string                   `db:"account_id" json:"account_id"`
	Amount                  float64                  `db:"amount" json:"amount"`
	Currency                string                   `db:"iso_currency_code" json:"iso_currency_code"`
	Category                []string                 `db:"category" json:"category"`
	CategoryID              string                   `db:"category_id" json:"category_id"`
	Name                    string                   `db:"name" json:"name"`
	MerchantName            string                   `db:"merchant_name" json:"merchant_name"`
	PaymentChannel          string                   `db:"payment_channel" json:"payment_channel"`
	Date                    time.Time                `db:"date" json:"date"`
	Pending                 bool                     `db:"pending" json:"pending"`
	PersonalFinanceCategory *PersonalFinanceCategory `json:"personal_finance_category,omitempty"`
}
