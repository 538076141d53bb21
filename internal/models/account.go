package models

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// Balances holds the provider-reported balance figures. Available is nil when
// the institution does not report it (common for investment accounts). Limit
// is set only for credit accounts.
type Balances struct {
	Available *float64 `json:"available"`
	Current   float64  `json:"current"`
	Limit     *float64 `json:"limit"`
	Currency  string   `json:"iso_currency_code"`
}

type Account struct {
	ID           string      `db:"id" json:"account_id"`
	ItemID       string      `db:"item_id" json:"item_id"`
	Name         string      `db:"name" json:"name"`
	OfficialName string      `db:"official_name" json:"official_name"`
	Mask         string      `db:"mask" json:"mask"`
	Type         AccountType `db:"type" json:"type"`
	Balances     Balances    `json:"balances"`
}

// Item is a bank connection: one linked institution owning 1..N accounts.
type Item struct {
	ID              string    `db:"id" json:"id"`
	InstitutionID   string    `db:"institution_id" json:"institution_id"`
	InstitutionName string    `db:"institution_name" json:"institution_name"`
	Accounts        []Account `json:"accounts"`
}
