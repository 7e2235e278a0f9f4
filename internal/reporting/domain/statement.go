package reporting

import "time"

const (
	StatusDraft = "draft"
	StatusFinal = "final"

	// GeneratedBySystem marks rows produced by the generators.
	GeneratedBySystem = "system"
)

// StatementKey is the cache identity of a statement.
type StatementKey struct {
	Subject Subject
	Period  Period
}

// String returns a stable key for de-duplication maps.
func (k StatementKey) String() string {
	return k.Subject.String() + "|" + k.Period.Key()
}

// Statement is a persisted, period-scoped financial summary of one subject.
type Statement struct {
	ID            string      `json:"id"`
	SubjectID     string      `json:"subject_id"`
	SubjectKind   SubjectKind `json:"subject_kind"`
	StatementType PeriodKind  `json:"statement_type"`
	PeriodStart   time.Time   `json:"period_start"`
	PeriodEnd     time.Time   `json:"period_end"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
	GeneratedBy   string      `json:"generated_by"`
	GeneratedAt   time.Time   `json:"generated_at"`

	Metrics
}

// Subject returns the statement subject.
func (s *Statement) Subject() Subject {
	return Subject{ID: s.SubjectID, Kind: s.SubjectKind}
}

// Period returns the statement period.
func (s *Statement) Period() Period {
	return Period{Kind: s.StatementType, Start: s.PeriodStart, End: s.PeriodEnd}
}

// Key returns the cache identity.
func (s *Statement) Key() StatementKey {
	return StatementKey{Subject: s.Subject(), Period: s.Period()}
}

// Clone returns a detached copy.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}
	copy := *s
	return &copy
}

// Metrics is the flat metric set of a statement.
type Metrics struct {
	GrossRevenue           Amount `json:"gross_revenue"`
	RevenueDeductions      Amount `json:"revenue_deductions"`
	NetRevenue             Amount `json:"net_revenue"`
	CostOfRevenue          Amount `json:"cost_of_revenue"`
	GrossProfit            Amount `json:"gross_profit"`
	OperatingExpenses      Amount `json:"operating_expenses"`
	MarketingExpenses      Amount `json:"marketing_expenses"`
	AdministrativeExpenses Amount `json:"administrative_expenses"`
	OtherOperatingExpenses Amount `json:"other_operating_expenses"`
	OperatingIncome        Amount `json:"operating_income"`
	InterestIncome         Amount `json:"interest_income"`
	InterestExpense        Amount `json:"interest_expense"`
	OtherIncome            Amount `json:"other_income"`
	IncomeBeforeTax        Amount `json:"income_before_tax"`
	TaxExpense             Amount `json:"tax_expense"`
	NetIncome              Amount `json:"net_income"`

	Cash                    Amount `json:"cash"`
	AccountsReceivable      Amount `json:"accounts_receivable"`
	PrepaidExpenses         Amount `json:"prepaid_expenses"`
	TotalCurrentAssets      Amount `json:"total_current_assets"`
	FixedAssets             Amount `json:"fixed_assets"`
	TotalAssets             Amount `json:"total_assets"`
	AccountsPayable         Amount `json:"accounts_payable"`
	AccruedLiabilities      Amount `json:"accrued_liabilities"`
	TotalCurrentLiabilities Amount `json:"total_current_liabilities"`
	LongTermDebt            Amount `json:"long_term_debt"`
	TotalLiabilities        Amount `json:"total_liabilities"`
	RetainedEarnings        Amount `json:"retained_earnings"`
	TotalEquity             Amount `json:"total_equity"`

	OperatingCashFlow Amount `json:"operating_cash_flow"`
	InvestingCashFlow Amount `json:"investing_cash_flow"`
	FinancingCashFlow Amount `json:"financing_cash_flow"`
	NetCashFlow       Amount `json:"net_cash_flow"`

	GrossMargin     Amount `json:"gross_margin"`
	OperatingMargin Amount `json:"operating_margin"`
	NetMargin       Amount `json:"net_margin"`
	CurrentRatio    Amount `json:"current_ratio"`
	QuickRatio      Amount `json:"quick_ratio"`
	DebtToEquity    Amount `json:"debt_to_equity"`
	ReturnOnAssets  Amount `json:"return_on_assets"`
	ReturnOnEquity  Amount `json:"return_on_equity"`
	AssetTurnover   Amount `json:"asset_turnover"`

	InvoiceCount     int `json:"invoice_count"`
	TransactionCount int `json:"transaction_count"`
	CampaignCount    int `json:"campaign_count"`
}

// MetricField binds a persisted column to a metric.
type MetricField struct {
	Column string
	Amount *Amount
}

// AmountFields lists every monetary and ratio metric with its column name, in storage order.
func (m *Metrics) AmountFields() []MetricField {
	return []MetricField{
		{"gross_revenue", &m.GrossRevenue},
		{"revenue_deductions", &m.RevenueDeductions},
		{"net_revenue", &m.NetRevenue},
		{"cost_of_revenue", &m.CostOfRevenue},
		{"gross_profit", &m.GrossProfit},
		{"operating_expenses", &m.OperatingExpenses},
		{"marketing_expenses", &m.MarketingExpenses},
		{"administrative_expenses", &m.AdministrativeExpenses},
		{"other_operating_expenses", &m.OtherOperatingExpenses},
		{"operating_income", &m.OperatingIncome},
		{"interest_income", &m.InterestIncome},
		{"interest_expense", &m.InterestExpense},
		{"other_income", &m.OtherIncome},
		{"income_before_tax", &m.IncomeBeforeTax},
		{"tax_expense", &m.TaxExpense},
		{"net_income", &m.NetIncome},
		{"cash", &m.Cash},
		{"accounts_receivable", &m.AccountsReceivable},
		{"prepaid_expenses", &m.PrepaidExpenses},
		{"total_current_assets", &m.TotalCurrentAssets},
		{"fixed_assets", &m.FixedAssets},
		{"total_assets", &m.TotalAssets},
		{"accounts_payable", &m.AccountsPayable},
		{"accrued_liabilities", &m.AccruedLiabilities},
		{"total_current_liabilities", &m.TotalCurrentLiabilities},
		{"long_term_debt", &m.LongTermDebt},
		{"total_liabilities", &m.TotalLiabilities},
		{"retained_earnings", &m.RetainedEarnings},
		{"total_equity", &m.TotalEquity},
		{"operating_cash_flow", &m.OperatingCashFlow},
		{"investing_cash_flow", &m.InvestingCashFlow},
		{"financing_cash_flow", &m.FinancingCashFlow},
		{"net_cash_flow", &m.NetCashFlow},
		{"gross_margin", &m.GrossMargin},
		{"operating_margin", &m.OperatingMargin},
		{"net_margin", &m.NetMargin},
		{"current_ratio", &m.CurrentRatio},
		{"quick_ratio", &m.QuickRatio},
		{"debt_to_equity", &m.DebtToEquity},
		{"return_on_assets", &m.ReturnOnAssets},
		{"return_on_equity", &m.ReturnOnEquity},
		{"asset_turnover", &m.AssetTurnover},
	}
}

// CountFields lists the activity counters with their column names.
func (m *Metrics) CountFields() []struct {
	Column string
	Count  *int
} {
	return []struct {
		Column string
		Count  *int
	}{
		{"invoice_count", &m.InvoiceCount},
		{"transaction_count", &m.TransactionCount},
		{"campaign_count", &m.CampaignCount},
	}
}

// Balanced reports whether total assets equal total liabilities plus equity.
func (m Metrics) Balanced() bool {
	return m.TotalAssets.Equal(m.TotalLiabilities.Add(m.TotalEquity))
}

// LedgerTotals are the role-mapped ledger aggregates of one subject over one period.
type LedgerTotals struct {
	// Revenue is income earned by the subject (paid invoices received, platform fees collected).
	Revenue Amount
	// DirectCosts are costs directly tied to revenue (invoices paid, fees charged, refunds).
	DirectCosts Amount
	// OperatingExpense is the raw operating expense before the policy split.
	OperatingExpense Amount
	// Receivables are open invoices owed to the subject.
	Receivables Amount
	// Payables are open invoices owed by the subject.
	Payables Amount

	InvoiceCount     int
	TransactionCount int
	CampaignCount    int
}
