package reporting

import "time"

// StatementHeader identifies the statement a view was shaped from.
type StatementHeader struct {
	StatementID string      `json:"statement_id"`
	SubjectID   string      `json:"subject_id"`
	SubjectKind SubjectKind `json:"subject_kind"`
	PeriodKind  PeriodKind  `json:"period_kind"`
	PeriodStart time.Time   `json:"period_start"`
	PeriodEnd   time.Time   `json:"period_end"`
	Currency    string      `json:"currency"`
	GeneratedAt time.Time   `json:"generated_at"`
}

func headerOf(s *Statement) StatementHeader {
	return StatementHeader{
		StatementID: s.ID,
		SubjectID:   s.SubjectID,
		SubjectKind: s.SubjectKind,
		PeriodKind:  s.StatementType,
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		Currency:    s.Currency,
		GeneratedAt: s.GeneratedAt,
	}
}

// Subject returns the statement subject.
func (h StatementHeader) Subject() Subject { return Subject{ID: h.SubjectID, Kind: h.SubjectKind} }

// Period returns the statement period.
func (h StatementHeader) Period() Period {
	return Period{Kind: h.PeriodKind, Start: h.PeriodStart, End: h.PeriodEnd}
}

type RevenueSection struct {
	GrossRevenue      Amount `json:"gross_revenue"`
	RevenueDeductions Amount `json:"revenue_deductions"`
	NetRevenue        Amount `json:"net_revenue"`
}

type CostSection struct {
	CostOfRevenue Amount `json:"cost_of_revenue"`
	GrossProfit   Amount `json:"gross_profit"`
	GrossMargin   Amount `json:"gross_margin"`
}

type OperatingExpenseSection struct {
	Marketing      Amount `json:"marketing"`
	Administrative Amount `json:"administrative"`
	Other          Amount `json:"other"`
	Total          Amount `json:"total"`
}

type NonOperatingSection struct {
	InterestIncome  Amount `json:"interest_income"`
	InterestExpense Amount `json:"interest_expense"`
	OtherIncome     Amount `json:"other_income"`
}

// IncomeStatement reshapes a statement into the revenue to net income ladder.
type IncomeStatement struct {
	StatementHeader

	Revenue           RevenueSection          `json:"revenue"`
	CostOfRevenue     CostSection             `json:"cost_of_revenue"`
	OperatingExpenses OperatingExpenseSection `json:"operating_expenses"`
	OperatingIncome   Amount                  `json:"operating_income"`
	OperatingMargin   Amount                  `json:"operating_margin"`
	NonOperating      NonOperatingSection     `json:"non_operating"`
	IncomeBeforeTax   Amount                  `json:"income_before_tax"`
	TaxExpense        Amount                  `json:"tax_expense"`
	NetIncome         Amount                  `json:"net_income"`
	NetMargin         Amount                  `json:"net_margin"`
}

// NewIncomeStatement builds the income statement view of s.
func NewIncomeStatement(s *Statement) *IncomeStatement {
	return &IncomeStatement{
		StatementHeader: headerOf(s),
		Revenue: RevenueSection{
			GrossRevenue:      s.GrossRevenue,
			RevenueDeductions: s.RevenueDeductions,
			NetRevenue:        s.NetRevenue,
		},
		CostOfRevenue: CostSection{
			CostOfRevenue: s.CostOfRevenue,
			GrossProfit:   s.GrossProfit,
			GrossMargin:   s.GrossMargin,
		},
		OperatingExpenses: OperatingExpenseSection{
			Marketing:      s.MarketingExpenses,
			Administrative: s.AdministrativeExpenses,
			Other:          s.OtherOperatingExpenses,
			Total:          s.OperatingExpenses,
		},
		OperatingIncome: s.OperatingIncome,
		OperatingMargin: s.OperatingMargin,
		NonOperating: NonOperatingSection{
			InterestIncome:  s.InterestIncome,
			InterestExpense: s.InterestExpense,
			OtherIncome:     s.OtherIncome,
		},
		IncomeBeforeTax: s.IncomeBeforeTax,
		TaxExpense:      s.TaxExpense,
		NetIncome:       s.NetIncome,
		NetMargin:       s.NetMargin,
	}
}

type AssetSection struct {
	Cash               Amount `json:"cash"`
	AccountsReceivable Amount `json:"accounts_receivable"`
	PrepaidExpenses    Amount `json:"prepaid_expenses"`
	TotalCurrent       Amount `json:"total_current"`
	FixedAssets        Amount `json:"fixed_assets"`
	Total              Amount `json:"total"`
}

type LiabilitySection struct {
	AccountsPayable    Amount `json:"accounts_payable"`
	AccruedLiabilities Amount `json:"accrued_liabilities"`
	TotalCurrent       Amount `json:"total_current"`
	LongTermDebt       Amount `json:"long_term_debt"`
	Total              Amount `json:"total"`
}

type EquitySection struct {
	RetainedEarnings Amount `json:"retained_earnings"`
	Total            Amount `json:"total"`
}

// BalanceSheet reshapes a statement into assets, liabilities and equity.
type BalanceSheet struct {
	StatementHeader

	Assets                    AssetSection     `json:"assets"`
	Liabilities               LiabilitySection `json:"liabilities"`
	Equity                    EquitySection    `json:"equity"`
	TotalLiabilitiesAndEquity Amount           `json:"total_liabilities_and_equity"`
	BalanceCheck              bool             `json:"balance_check"`
}

// NewBalanceSheet builds the balance sheet view of s.
func NewBalanceSheet(s *Statement) *BalanceSheet {
	total := s.TotalLiabilities.Add(s.TotalEquity)
	return &BalanceSheet{
		StatementHeader: headerOf(s),
		Assets: AssetSection{
			Cash:               s.Cash,
			AccountsReceivable: s.AccountsReceivable,
			PrepaidExpenses:    s.PrepaidExpenses,
			TotalCurrent:       s.TotalCurrentAssets,
			FixedAssets:        s.FixedAssets,
			Total:              s.TotalAssets,
		},
		Liabilities: LiabilitySection{
			AccountsPayable:    s.AccountsPayable,
			AccruedLiabilities: s.AccruedLiabilities,
			TotalCurrent:       s.TotalCurrentLiabilities,
			LongTermDebt:       s.LongTermDebt,
			Total:              s.TotalLiabilities,
		},
		Equity: EquitySection{
			RetainedEarnings: s.RetainedEarnings,
			Total:            s.TotalEquity,
		},
		TotalLiabilitiesAndEquity: total,
		BalanceCheck:              s.TotalAssets.Equal(total),
	}
}

type OperatingActivities struct {
	NetIncome           Amount `json:"net_income"`
	PreviousNetIncome   Amount `json:"previous_net_income"`
	ChangeInReceivables Amount `json:"change_in_receivables"`
	ChangeInPayables    Amount `json:"change_in_payables"`
	NetCash             Amount `json:"net_cash"`
}

// CashFlowStatement compares a statement with the one of the preceding period.
type CashFlowStatement struct {
	StatementHeader

	PreviousStatementID string              `json:"previous_statement_id"`
	Operating           OperatingActivities `json:"operating"`
	InvestingCashFlow   Amount              `json:"investing_cash_flow"`
	FinancingCashFlow   Amount              `json:"financing_cash_flow"`
	NetChangeInCash     Amount              `json:"net_change_in_cash"`
	BeginningCash       Amount              `json:"beginning_cash"`
	EndingCash          Amount              `json:"ending_cash"`
}

// NewCashFlowStatement builds the cash flow view of current against previous.
// Statement cash is a per-period position, so the operating lines reconcile the
// previous position to the current one and EndingCash equals the balance sheet cash.
// An increase in receivables consumes cash; an increase in payables provides it.
func NewCashFlowStatement(current, previous *Statement) *CashFlowStatement {
	prev := previous
	if prev == nil {
		prev = &Statement{}
	}
	op := OperatingActivities{
		NetIncome:           current.NetIncome,
		PreviousNetIncome:   prev.NetIncome,
		ChangeInReceivables: prev.AccountsReceivable.Sub(current.AccountsReceivable),
		ChangeInPayables:    current.AccountsPayable.Sub(prev.AccountsPayable),
	}
	op.NetCash = SumAmounts(op.NetIncome.Sub(op.PreviousNetIncome), op.ChangeInReceivables, op.ChangeInPayables)

	view := &CashFlowStatement{
		StatementHeader:     headerOf(current),
		PreviousStatementID: prev.ID,
		Operating:           op,
		InvestingCashFlow:   current.InvestingCashFlow,
		FinancingCashFlow:   current.FinancingCashFlow,
		BeginningCash:       prev.Cash,
	}
	view.NetChangeInCash = SumAmounts(op.NetCash, view.InvestingCashFlow, view.FinancingCashFlow)
	view.EndingCash = view.BeginningCash.Add(view.NetChangeInCash)
	return view
}

type ProfitabilityRatios struct {
	GrossMargin     Amount `json:"gross_margin"`
	OperatingMargin Amount `json:"operating_margin"`
	NetMargin       Amount `json:"net_margin"`
	ReturnOnAssets  Amount `json:"return_on_assets"`
	ReturnOnEquity  Amount `json:"return_on_equity"`
}

type LiquidityRatios struct {
	CurrentRatio Amount `json:"current_ratio"`
	QuickRatio   Amount `json:"quick_ratio"`
}

type LeverageRatios struct {
	DebtToEquity Amount `json:"debt_to_equity"`
	DebtRatio    Amount `json:"debt_ratio"`
}

type EfficiencyRatios struct {
	AssetTurnover      Amount `json:"asset_turnover"`
	RevenuePerInvoice  Amount `json:"revenue_per_invoice"`
	RevenuePerCampaign Amount `json:"revenue_per_campaign"`
}

type GrowthRates struct {
	PreviousNetRevenue Amount `json:"previous_net_revenue"`
	PreviousNetIncome  Amount `json:"previous_net_income"`
	RevenueGrowth      Amount `json:"revenue_growth"`
	NetIncomeGrowth    Amount `json:"net_income_growth"`
}

// FinancialAnalysis groups the ratios of a statement and its growth over the preceding period.
type FinancialAnalysis struct {
	StatementHeader

	Profitability ProfitabilityRatios `json:"profitability"`
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Leverage      LeverageRatios      `json:"leverage"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
	Growth        GrowthRates         `json:"growth"`
}

// NewFinancialAnalysis builds the ratio analysis of current against previous.
func NewFinancialAnalysis(current, previous *Statement) *FinancialAnalysis {
	prev := previous
	if prev == nil {
		prev = &Statement{}
	}
	return &FinancialAnalysis{
		StatementHeader: headerOf(current),
		Profitability: ProfitabilityRatios{
			GrossMargin:     current.GrossMargin,
			OperatingMargin: current.OperatingMargin,
			NetMargin:       current.NetMargin,
			ReturnOnAssets:  current.ReturnOnAssets,
			ReturnOnEquity:  current.ReturnOnEquity,
		},
		Liquidity: LiquidityRatios{
			CurrentRatio: current.CurrentRatio,
			QuickRatio:   current.QuickRatio,
		},
		Leverage: LeverageRatios{
			DebtToEquity: current.DebtToEquity,
			DebtRatio:    current.TotalLiabilities.Percent(current.TotalAssets),
		},
		Efficiency: EfficiencyRatios{
			AssetTurnover:      current.AssetTurnover,
			RevenuePerInvoice:  current.NetRevenue.DivInt(current.InvoiceCount),
			RevenuePerCampaign: current.NetRevenue.DivInt(current.CampaignCount),
		},
		Growth: GrowthRates{
			PreviousNetRevenue: prev.NetRevenue,
			PreviousNetIncome:  prev.NetIncome,
			RevenueGrowth:      Growth(current.NetRevenue, prev.NetRevenue),
			NetIncomeGrowth:    Growth(current.NetIncome, prev.NetIncome),
		},
	}
}
