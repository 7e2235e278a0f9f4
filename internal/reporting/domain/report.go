package reporting

// ReportKind names a report variant.
type ReportKind string

const (
	KindStatement         ReportKind = "statement"
	KindIncomeStatement   ReportKind = "income_statement"
	KindBalanceSheet      ReportKind = "balance_sheet"
	KindCashFlow          ReportKind = "cash_flow"
	KindFinancialAnalysis ReportKind = "financial_analysis"
	KindCampaignPL        ReportKind = "campaign_pl"
	KindPlatformRevenue   ReportKind = "platform_revenue"
	KindEarningsSummary   ReportKind = "earnings_summary"
)

// Report is the closed set of renderable reports. Only types in this package implement it.
type Report interface {
	Kind() ReportKind
	Title() string
	Period() Period
	sealed()
}

var (
	_ Report = (*Statement)(nil)
	_ Report = (*IncomeStatement)(nil)
	_ Report = (*BalanceSheet)(nil)
	_ Report = (*CashFlowStatement)(nil)
	_ Report = (*FinancialAnalysis)(nil)
	_ Report = (*CampaignPLReport)(nil)
	_ Report = (*PlatformRevenueReport)(nil)
	_ Report = (*EarningsSummary)(nil)
)

func (*Statement) Kind() ReportKind             { return KindStatement }
func (*IncomeStatement) Kind() ReportKind       { return KindIncomeStatement }
func (*BalanceSheet) Kind() ReportKind          { return KindBalanceSheet }
func (*CashFlowStatement) Kind() ReportKind     { return KindCashFlow }
func (*FinancialAnalysis) Kind() ReportKind     { return KindFinancialAnalysis }
func (*CampaignPLReport) Kind() ReportKind      { return KindCampaignPL }
func (*PlatformRevenueReport) Kind() ReportKind { return KindPlatformRevenue }
func (*EarningsSummary) Kind() ReportKind       { return KindEarningsSummary }

func (*Statement) Title() string             { return "Financial Statement" }
func (*IncomeStatement) Title() string       { return "Income Statement" }
func (*BalanceSheet) Title() string          { return "Balance Sheet" }
func (*CashFlowStatement) Title() string     { return "Cash Flow Statement" }
func (*FinancialAnalysis) Title() string     { return "Financial Analysis" }
func (*CampaignPLReport) Title() string      { return "Campaign P&L Report" }
func (*PlatformRevenueReport) Title() string { return "Platform Revenue Report" }
func (*EarningsSummary) Title() string       { return "Earnings Summary" }

func (*Statement) sealed()             {}
func (*IncomeStatement) sealed()       {}
func (*BalanceSheet) sealed()          {}
func (*CashFlowStatement) sealed()     {}
func (*FinancialAnalysis) sealed()     {}
func (*CampaignPLReport) sealed()      {}
func (*PlatformRevenueReport) sealed() {}
func (*EarningsSummary) sealed()       {}
