package demo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"finsight/internal/models"
)

// The generator is a pure function: every value is derived from fixed
// catalogs and modular arithmetic over a per-account seed and the
// transaction index. No RNG, no wall clock beyond the reference day.

var categoryCatalog = [][]string{
	{"Food and Drink", "Restaurants"},
	{"Shops", "Groceries"},
	{"Transportation", "Uber"},
	{"Service", "Subscription"},
	{"Transfer", "Deposit"},
	{"Recreation", "Entertainment"},
	{"Healthcare", "Pharmacy"},
	{"Service", "Utilities"},
}

var merchantCatalog = []string{
	"Starbucks", "Whole Foods", "Target", "Amazon", "Netflix",
	"Spotify", "Uber", "Shell Gas", "CVS Pharmacy", "Walmart",
	"Chipotle", "Apple Store", "Best Buy", "Home Depot", "Costco",
}

const demoSummary = "This is demo data for testing the dashboard. " +
	"Connect your real accounts to see your actual financial data."

type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type KPI struct {
	Title      string  `json:"title"`
	Metric     float64 `json:"metric"`
	MetricPrev float64 `json:"metricPrev"`
}

type SeriesPoint struct {
	Date         string  `json:"date"`
	Spend        float64 `json:"spend"`
	MoneyIn      float64 `json:"moneyIn"`
	Count        int     `json:"count"`
	MoneyInCount int     `json:"moneyInCount"`
}

type ChannelTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// AccountSummary backs the per-account dashboard cards.
type AccountSummary struct {
	Recent        []NameValue `json:"recentTransactions"`
	TopCategories []NameValue `json:"topCategories"`
}

// Dataset is a self-consistent synthetic bundle: accounts, bank connections,
// transactions and the aggregates the dashboard widgets read. It is
// disposable and rebuildable from nothing; it is never persisted.
type Dataset struct {
	Accounts      []models.Account           `json:"accounts"`
	Items         []models.Item              `json:"items"`
	Transactions  []models.Transaction       `json:"transactions"`
	KPIs          []KPI                      `json:"kpis"`
	TopCategories []NameValue                `json:"topCategories"`
	TotalBalance  float64                    `json:"totalBalance"`
	NetWorth      float64                    `json:"netWorth"`
	TotalSpending float64                    `json:"totalSpending"`
	DailyAverage  float64                    `json:"dailyAverage"`
	Cumulative    []SeriesPoint              `json:"cumulativeSpend"`
	Monthly       []SeriesPoint              `json:"monthlySpend"`
	ActivityGrid  [][]int                    `json:"activityGrid"`
	Channels      []ChannelTotal             `json:"paymentChannelData"`
	AccountInfo   map[string]AccountSummary  `json:"accountsInfo"`
	Summary       string                     `json:"summary"`
}

// Generate builds the dataset anchored at the current day.
func Generate() *Dataset {
	return GenerateAt(time.Now())
}

// GenerateAt builds the dataset anchored at ref. Calling it twice with the
// same ref yields identical output.
func GenerateAt(ref time.Time) *Dataset {
	today := ref.UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -30)

	accounts := demoAccounts()
	items := demoItems(accounts)

	var transactions []models.Transaction
	transactions = append(transactions, generateTransactions("demo_checking_001", 45, windowStart)...)
	transactions = append(transactions, generateTransactions("demo_savings_001", 5, windowStart)...)
	transactions = append(transactions, generateTransactions("demo_credit_001", 30, windowStart)...)
	transactions = append(transactions, generateTransactions("demo_investment_001", 10, windowStart)...)

	ds := &Dataset{
		Accounts:     accounts,
		Items:        items,
		Transactions: transactions,
		Summary:      demoSummary,
	}
	ds.computeAggregates(windowStart)
	ds.Cumulative = cumulativeSeries()
	ds.Monthly = monthlySeries()
	ds.ActivityGrid = activityGrid()
	return ds
}

// accountSeed derives the numeric seed from the trailing identifier segment,
// defaulting to 1 when it is absent or non-numeric.
func accountSeed(accountID string) int {
	parts := strings.Split(accountID, "_")
	if len(parts) < 2 {
		return 1
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n == 0 {
		return 1
	}
	return n
}

func generateTransactions(accountID string, count int, windowStart time.Time) []models.Transaction {
	seed := accountSeed(accountID)

	txs := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		dayOffset := (seed*7 + i*3) % 30
		date := windowStart.AddDate(0, 0, dayOffset)

		category := categoryCatalog[(seed+i*2)%len(categoryCatalog)]
		merchant := merchantCatalog[(seed*3+i*5)%len(merchantCatalog)]

		amount := float64((len(merchant)*10+i*15)%200 + 5)

		channel := models.ChannelInStore
		if (seed+i)%3 == 0 {
			channel = models.ChannelOnline
		}

		txs = append(txs, models.Transaction{
			ID:             fmt.Sprintf("demo_%s_%03d", accountID, i),
			AccountID:      accountID,
			Amount:         amount,
			Currency:       "USD",
			Category:       category,
			CategoryID:     strings.ToLower(category[0] + "_" + category[1]),
			Name:           merchant,
			MerchantName:   merchant,
			PaymentChannel: channel,
			Date:           date,
			Pending:        false,
			PersonalFinanceCategory: &models.PersonalFinanceCategory{
				Primary:  pfcToken(category[0]),
				Detailed: pfcToken(category[0]) + "_" + pfcToken(category[1]),
			},
		})
	}

	sort.SliceStable(txs, func(a, b int) bool {
		return txs[a].Date.After(txs[b].Date)
	})
	return txs
}

func pfcToken(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
}

func demoAccounts() []models.Account {
	f := func(v float64) *float64 { return &v }
	return []models.Account{
		{
			ID:           "demo_checking_001",
			ItemID:       "demo_item_001",
			Name:         "Demo Checking",
			OfficialName: "Demo Checking Account",
			Mask:         "4321",
			Type:         models.AccountTypeChecking,
			Balances:     models.Balances{Available: f(2543.65), Current: 2543.65, Currency: "USD"},
		},
		{
			ID:           "demo_savings_001",
			ItemID:       "demo_item_001",
			Name:         "Demo Savings",
			OfficialName: "Demo High-Yield Savings",
			Mask:         "9876",
			Type:         models.AccountTypeSavings,
			Balances:     models.Balances{Available: f(8750.00), Current: 8750.00, Currency: "USD"},
		},
		{
			ID:           "demo_credit_001",
			ItemID:       "demo_item_002",
			Name:         "Demo Credit Card",
			OfficialName: "Demo Rewards Credit Card",
			Mask:         "5678",
			Type:         models.AccountTypeCredit,
			Balances:     models.Balances{Available: f(2800.00), Current: 1200.00, Limit: f(4000.00), Currency: "USD"},
		},
		{
			ID:           "demo_investment_001",
			ItemID:       "demo_item_003",
			Name:         "Demo Investment",
			OfficialName: "Demo Brokerage Account",
			Mask:         "1234",
			Type:         models.AccountTypeInvestment,
			Balances:     models.Balances{Current: 15420.50, Currency: "USD"},
		},
	}
}

func demoItems(accounts []models.Account) []models.Item {
	return []models.Item{
		{
			ID:              "demo_item_001",
			InstitutionID:   "demo_bank",
			InstitutionName: "Demo Bank",
			Accounts:        []models.Account{accounts[0], accounts[1]},
		},
		{
			ID:              "demo_item_002",
			InstitutionID:   "demo_credit",
			InstitutionName: "Demo Credit Union",
			Accounts:        []models.Account{accounts[2]},
		},
		{
			ID:              "demo_item_003",
			InstitutionID:   "demo_invest",
			InstitutionName: "Demo Investments",
			Accounts:        []models.Account{accounts[3]},
		},
	}
}

// computeAggregates fills every figure derived from the transaction set.
// Only transactions inside the trailing 30-day window count toward spending.
func (d *Dataset) computeAggregates(windowStart time.Time) {
	var recent []models.Transaction
	for _, t := range d.Transactions {
		if !t.Date.Before(windowStart) {
			recent = append(recent, t)
		}
	}

	spendByCategory := map[string]float64{}
	var totalSpending float64
	for _, t := range recent {
		top := "Other"
		if len(t.Category) > 0 {
			top = t.Category[0]
		}
		spendByCategory[top] += t.Amount
		totalSpending += t.Amount
	}
	d.TopCategories = topNameValues(spendByCategory, 5)
	d.TotalSpending = round2(totalSpending)
	d.DailyAverage = round2(totalSpending / 30)

	var totalBalance, creditCurrent float64
	for _, a := range d.Accounts {
		totalBalance += a.Balances.Current
		if a.Type == models.AccountTypeCredit {
			creditCurrent += a.Balances.Current
		}
	}
	d.TotalBalance = round2(totalBalance)
	// Net worth subtracts credit balances; the total-balance KPI does not.
	// They are distinct figures, not duplicates.
	d.NetWorth = round2(totalBalance - creditCurrent)

	d.KPIs = []KPI{
		{Title: "Total Balance", Metric: d.TotalBalance, MetricPrev: round2(totalBalance * 0.95)},
		{Title: "Monthly Spending", Metric: d.TotalSpending, MetricPrev: round2(totalSpending * 1.1)},
		{Title: "Daily Average", Metric: d.DailyAverage, MetricPrev: round2(totalSpending / 30 * 1.05)},
		{Title: "Active Accounts", Metric: float64(len(d.Accounts)), MetricPrev: float64(len(d.Accounts))},
	}

	d.Channels = channelTotals(d.Transactions)
	d.AccountInfo = accountSummaries(d.Accounts, d.Transactions)
}

func channelTotals(txs []models.Transaction) []ChannelTotal {
	totals := []ChannelTotal{
		{Name: models.ChannelOnline},
		{Name: models.ChannelInStore},
	}
	for _, t := range txs {
		for i := range totals {
			if t.PaymentChannel == totals[i].Name {
				totals[i].Value += t.Amount
				totals[i].Count++
			}
		}
	}
	for i := range totals {
		totals[i].Value = math.Round(totals[i].Value)
	}
	return totals
}

func accountSummaries(accounts []models.Account, txs []models.Transaction) map[string]AccountSummary {
	info := make(map[string]AccountSummary, len(accounts))
	for _, a := range accounts {
		var recent []NameValue
		byCategory := map[string]float64{}
		for _, t := range txs {
			if t.AccountID != a.ID || len(recent) >= 5 {
				continue
			}
			recent = append(recent, NameValue{Name: t.MerchantName, Value: t.Amount})
			if len(t.Category) > 0 {
				byCategory[t.Category[0]] += t.Amount
			}
		}
		info[a.ID] = AccountSummary{
			Recent:        recent,
			TopCategories: topNameValues(byCategory, len(byCategory)),
		}
	}
	return info
}

func topNameValues(totals map[string]float64, n int) []NameValue {
	out := make([]NameValue, 0, len(totals))
	for name, value := range totals {
		out = append(out, NameValue{Name: name, Value: round2(value)})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value > out[b].Value
		}
		return out[a].Name < out[b].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// The chart series are synthetic progressions independent of the transaction
// set; the constants are fixed so the charts render identically every run.
func cumulativeSeries() []SeriesPoint {
	out := make([]SeriesPoint, 0, len(monthLabels))
	for i, m := range monthLabels {
		out = append(out, SeriesPoint{
			Date:         m,
			Spend:        float64((i+1)*850 + (i*47)%300),
			MoneyIn:      float64((i+1)*220 + (i*23)%80),
			Count:        (i+1)*16 + (i*7)%8,
			MoneyInCount: (i+1)*3 + i%3,
		})
	}
	return out
}

func monthlySeries() []SeriesPoint {
	out := make([]SeriesPoint, 0, len(monthLabels))
	for i, m := range monthLabels {
		out = append(out, SeriesPoint{
			Date:         m,
			Spend:        float64(1200 + (i*127)%800),
			MoneyIn:      float64(300 + (i*67)%400),
			Count:        18 + (i*13)%15,
			MoneyInCount: 3 + i%4,
		})
	}
	return out
}

// activityGrid builds the 52-week by 7-day contribution-style grid. Negative
// cells are income-like, positive cells are spend-like.
func activityGrid() [][]int {
	grid := make([][]int, 0, 52)
	for week := 0; week < 52; week++ {
		row := make([]int, 0, 7)
		for day := 0; day < 7; day++ {
			s := week*7 + day
			if s%10 < 3 {
				row = append(row, -((s*17)%250 + 50))
			} else {
				row = append(row, (s*23)%150)
			}
		}
		grid = append(grid, row)
	}
	return grid
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
