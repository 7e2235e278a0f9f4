package interfaces

import (
	"fmt"
	"strconv"
	"time"

	reporting "creator-finance/internal/reporting/domain"
)

// maxTableRows bounds a table so it fits one block of a page.
const maxTableRows = 12

// Field is one label/value line of a document summary.
type Field struct {
	Label string
	Value string
}

// Table is a titled grid of preformatted cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Document is the renderer-neutral layout of a report.
type Document struct {
	Kind    reporting.ReportKind
	Title   string
	Period  string
	Subject string
	Summary []Field
	Tables  []Table
}

// BuildDocument lays out report as summary fields and tables.
func BuildDocument(report reporting.Report) Document {
	doc := Document{
		Kind:   report.Kind(),
		Title:  report.Title(),
		Period: periodLine(report.Period()),
	}
	switch r := report.(type) {
	case *reporting.Statement:
		statementDocument(&doc, r)
	case *reporting.IncomeStatement:
		incomeDocument(&doc, r)
	case *reporting.BalanceSheet:
		balanceDocument(&doc, r)
	case *reporting.CashFlowStatement:
		cashFlowDocument(&doc, r)
	case *reporting.FinancialAnalysis:
		analysisDocument(&doc, r)
	case *reporting.CampaignPLReport:
		campaignDocument(&doc, r)
	case *reporting.PlatformRevenueReport:
		platformDocument(&doc, r)
	case *reporting.EarningsSummary:
		earningsDocument(&doc, r)
	}
	return doc
}

func statementDocument(doc *Document, s *reporting.Statement) {
	doc.Subject = s.Subject().String()
	doc.Summary = []Field{
		{"Subject", s.Subject().String()},
		{"Statement type", string(s.StatementType)},
		{"Currency", s.Currency},
		{"Status", s.Status},
		{"Generated at", timestamp(s.GeneratedAt)},
		{"Net income", money(s.NetIncome)},
	}
	doc.Tables = append(doc.Tables, amountTables("Income", [][]string{
		{"Gross revenue", money(s.GrossRevenue)},
		{"Revenue deductions", money(s.RevenueDeductions)},
		{"Net revenue", money(s.NetRevenue)},
		{"Cost of revenue", money(s.CostOfRevenue)},
		{"Gross profit", money(s.GrossProfit)},
		{"Operating expenses", money(s.OperatingExpenses)},
		{"Operating income", money(s.OperatingIncome)},
		{"Interest income", money(s.InterestIncome)},
		{"Interest expense", money(s.InterestExpense)},
		{"Other income", money(s.OtherIncome)},
		{"Income before tax", money(s.IncomeBeforeTax)},
		{"Tax expense", money(s.TaxExpense)},
		{"Net income", money(s.NetIncome)},
	})...)
	doc.Tables = append(doc.Tables,
		amountTable("Assets", [][]string{
			{"Cash", money(s.Cash)},
			{"Accounts receivable", money(s.AccountsReceivable)},
			{"Prepaid expenses", money(s.PrepaidExpenses)},
			{"Total current assets", money(s.TotalCurrentAssets)},
			{"Fixed assets", money(s.FixedAssets)},
			{"Total assets", money(s.TotalAssets)},
		}),
		amountTable("Liabilities and Equity", [][]string{
			{"Accounts payable", money(s.AccountsPayable)},
			{"Accrued liabilities", money(s.AccruedLiabilities)},
			{"Total current liabilities", money(s.TotalCurrentLiabilities)},
			{"Long-term debt", money(s.LongTermDebt)},
			{"Total liabilities", money(s.TotalLiabilities)},
			{"Retained earnings", money(s.RetainedEarnings)},
			{"Total equity", money(s.TotalEquity)},
		}),
		amountTable("Cash Flow", [][]string{
			{"Operating cash flow", money(s.OperatingCashFlow)},
			{"Investing cash flow", money(s.InvestingCashFlow)},
			{"Financing cash flow", money(s.FinancingCashFlow)},
			{"Net cash flow", money(s.NetCashFlow)},
		}),
		ratioTable("Ratios", [][]string{
			{"Gross margin", percent(s.GrossMargin)},
			{"Operating margin", percent(s.OperatingMargin)},
			{"Net margin", percent(s.NetMargin)},
			{"Current ratio", ratio(s.CurrentRatio)},
			{"Quick ratio", ratio(s.QuickRatio)},
			{"Debt to equity", ratio(s.DebtToEquity)},
			{"Return on assets", percent(s.ReturnOnAssets)},
			{"Return on equity", percent(s.ReturnOnEquity)},
			{"Asset turnover", ratio(s.AssetTurnover)},
		}),
		countTable("Activity", [][]string{
			{"Invoices", count(s.InvoiceCount)},
			{"Transactions", count(s.TransactionCount)},
			{"Campaigns", count(s.CampaignCount)},
		}),
	)
}

func headerFields(h reporting.StatementHeader) []Field {
	return []Field{
		{"Subject", h.Subject().String()},
		{"Statement", h.StatementID},
		{"Currency", h.Currency},
		{"Generated at", timestamp(h.GeneratedAt)},
	}
}

func incomeDocument(doc *Document, v *reporting.IncomeStatement) {
	doc.Subject = v.Subject().String()
	doc.Summary = append(headerFields(v.StatementHeader), Field{"Net income", money(v.NetIncome)})
	doc.Tables = []Table{
		amountTable("Revenue", [][]string{
			{"Gross revenue", money(v.Revenue.GrossRevenue)},
			{"Revenue deductions", money(v.Revenue.RevenueDeductions)},
			{"Net revenue", money(v.Revenue.NetRevenue)},
		}),
		amountTable("Cost of Revenue", [][]string{
			{"Cost of revenue", money(v.CostOfRevenue.CostOfRevenue)},
			{"Gross profit", money(v.CostOfRevenue.GrossProfit)},
			{"Gross margin", percent(v.CostOfRevenue.GrossMargin)},
		}),
		amountTable("Operating Expenses", [][]string{
			{"Marketing", money(v.OperatingExpenses.Marketing)},
			{"Administrative", money(v.OperatingExpenses.Administrative)},
			{"Other", money(v.OperatingExpenses.Other)},
			{"Total operating expenses", money(v.OperatingExpenses.Total)},
		}),
		amountTable("Net Income", [][]string{
			{"Operating income", money(v.OperatingIncome)},
			{"Operating margin", percent(v.OperatingMargin)},
			{"Interest income", money(v.NonOperating.InterestIncome)},
			{"Interest expense", money(v.NonOperating.InterestExpense)},
			{"Other income", money(v.NonOperating.OtherIncome)},
			{"Income before tax", money(v.IncomeBeforeTax)},
			{"Tax expense", money(v.TaxExpense)},
			{"Net income", money(v.NetIncome)},
			{"Net margin", percent(v.NetMargin)},
		}),
	}
}

func balanceDocument(doc *Document, v *reporting.BalanceSheet) {
	doc.Subject = v.Subject().String()
	check := "Balanced"
	if !v.BalanceCheck {
		check = "Out of balance"
	}
	doc.Summary = append(headerFields(v.StatementHeader), Field{"Balance check", check})
	doc.Tables = []Table{
		amountTable("Assets", [][]string{
			{"Cash", money(v.Assets.Cash)},
			{"Accounts receivable", money(v.Assets.AccountsReceivable)},
			{"Prepaid expenses", money(v.Assets.PrepaidExpenses)},
			{"Total current assets", money(v.Assets.TotalCurrent)},
			{"Fixed assets", money(v.Assets.FixedAssets)},
			{"Total assets", money(v.Assets.Total)},
		}),
		amountTable("Liabilities", [][]string{
			{"Accounts payable", money(v.Liabilities.AccountsPayable)},
			{"Accrued liabilities", money(v.Liabilities.AccruedLiabilities)},
			{"Total current liabilities", money(v.Liabilities.TotalCurrent)},
			{"Long-term debt", money(v.Liabilities.LongTermDebt)},
			{"Total liabilities", money(v.Liabilities.Total)},
		}),
		amountTable("Equity", [][]string{
			{"Retained earnings", money(v.Equity.RetainedEarnings)},
			{"Total equity", money(v.Equity.Total)},
			{"Total liabilities and equity", money(v.TotalLiabilitiesAndEquity)},
		}),
	}
}

func cashFlowDocument(doc *Document, v *reporting.CashFlowStatement) {
	doc.Subject = v.Subject().String()
	previous := v.PreviousStatementID
	if previous == "" {
		previous = "none"
	}
	doc.Summary = append(headerFields(v.StatementHeader), Field{"Compared with", previous})
	doc.Tables = []Table{
		amountTable("Operating Activities", [][]string{
			{"Net income", money(v.Operating.NetIncome)},
			{"Less prior period net income", money(v.Operating.PreviousNetIncome.Neg())},
			{"Change in receivables", money(v.Operating.ChangeInReceivables)},
			{"Change in payables", money(v.Operating.ChangeInPayables)},
			{"Net cash from operations", money(v.Operating.NetCash)},
		}),
		amountTable("Cash Position", [][]string{
			{"Investing cash flow", money(v.InvestingCashFlow)},
			{"Financing cash flow", money(v.FinancingCashFlow)},
			{"Net change in cash", money(v.NetChangeInCash)},
			{"Beginning cash", money(v.BeginningCash)},
			{"Ending cash", money(v.EndingCash)},
		}),
	}
}

func analysisDocument(doc *Document, v *reporting.FinancialAnalysis) {
	doc.Subject = v.Subject().String()
	doc.Summary = headerFields(v.StatementHeader)
	doc.Tables = []Table{
		ratioTable("Profitability", [][]string{
			{"Gross margin", percent(v.Profitability.GrossMargin)},
			{"Operating margin", percent(v.Profitability.OperatingMargin)},
			{"Net margin", percent(v.Profitability.NetMargin)},
			{"Return on assets", percent(v.Profitability.ReturnOnAssets)},
			{"Return on equity", percent(v.Profitability.ReturnOnEquity)},
		}),
		ratioTable("Liquidity", [][]string{
			{"Current ratio", ratio(v.Liquidity.CurrentRatio)},
			{"Quick ratio", ratio(v.Liquidity.QuickRatio)},
		}),
		ratioTable("Leverage", [][]string{
			{"Debt to equity", ratio(v.Leverage.DebtToEquity)},
			{"Debt ratio", percent(v.Leverage.DebtRatio)},
		}),
		ratioTable("Efficiency", [][]string{
			{"Asset turnover", ratio(v.Efficiency.AssetTurnover)},
			{"Revenue per invoice", money(v.Efficiency.RevenuePerInvoice)},
			{"Revenue per campaign", money(v.Efficiency.RevenuePerCampaign)},
		}),
		ratioTable("Growth", [][]string{
			{"Previous net revenue", money(v.Growth.PreviousNetRevenue)},
			{"Previous net income", money(v.Growth.PreviousNetIncome)},
			{"Revenue growth", percent(v.Growth.RevenueGrowth)},
			{"Net income growth", percent(v.Growth.NetIncomeGrowth)},
		}),
	}
}

func campaignDocument(doc *Document, r *reporting.CampaignPLReport) {
	doc.Subject = "campaign:" + r.CampaignID
	title := r.CampaignTitle
	if title == "" {
		title = r.CampaignID
	}
	doc.Summary = []Field{
		{"Campaign", title},
		{"Brand", r.BrandID},
		{"Report period", string(r.ReportPeriod)},
		{"Ledger window", r.WindowStart.Format(dateLayout) + " to " + r.WindowEnd.Format(dateLayout)},
		{"Currency", r.Currency},
		{"Generated at", timestamp(r.GeneratedAt)},
	}
	doc.Tables = []Table{
		amountTable("Profit and Loss", [][]string{
			{"Budget", money(r.Budget)},
			{"Total revenue", money(r.TotalRevenue)},
			{"Influencer payouts", money(r.InfluencerPayouts)},
			{"Platform commission", money(r.PlatformCommission)},
			{"Total costs", money(r.TotalCosts)},
			{"Net profit", money(r.NetProfit)},
			{"Profit margin", percent(r.ProfitMargin)},
			{"ROI", percent(r.ROI)},
			{"Budget utilization", percent(r.BudgetUtilization)},
		}),
		countTable("Activity", [][]string{
			{"Brand payments", count(r.PaymentCount)},
			{"Paid invoices", count(r.InvoiceCount)},
			{"Influencers", count(r.InfluencerCount)},
		}),
	}
}

func platformDocument(doc *Document, r *reporting.PlatformRevenueReport) {
	doc.Subject = reporting.PlatformSubject().String()
	doc.Summary = []Field{
		{"Report type", string(r.ReportType)},
		{"Currency", r.Currency},
		{"Generated at", timestamp(r.GeneratedAt)},
		{"Net revenue", money(r.NetRevenue)},
	}
	doc.Tables = []Table{
		amountTable("Revenue", [][]string{
			{"Gross transaction volume", money(r.GrossTransactionVolume)},
			{"Platform commission", money(r.PlatformCommission)},
			{"Processing fees", money(r.ProcessingFees)},
			{"Total revenue", money(r.TotalRevenue)},
			{"Refunds", money(r.Refunds)},
			{"Net revenue", money(r.NetRevenue)},
			{"Average transaction value", money(r.AverageTransactionValue)},
			{"Take rate", percent(r.TakeRate)},
			{"Revenue growth", percent(r.RevenueGrowth)},
		}),
		countTable("Growth", [][]string{
			{"Paid invoices", count(r.PaidInvoiceCount)},
			{"New users", count(r.NewUsers)},
			{"New brands", count(r.NewBrands)},
			{"New influencers", count(r.NewInfluencers)},
			{"New campaigns", count(r.NewCampaigns)},
			{"Active campaigns", count(r.ActiveCampaigns)},
		}),
	}
}

func earningsDocument(doc *Document, s *reporting.EarningsSummary) {
	doc.Subject = "influencer:" + s.InfluencerID
	doc.Summary = []Field{
		{"Influencer", s.InfluencerID},
		{"Currency", s.Currency},
		{"Generated at", timestamp(s.GeneratedAt)},
		{"Total earnings", money(s.TotalEarnings)},
	}
	doc.Tables = []Table{
		amountTable("Overview", [][]string{
			{"Total earnings", money(s.TotalEarnings)},
			{"Paid invoices", count(s.InvoiceCount)},
			{"Average invoice", money(s.AverageInvoice)},
			{"Paid", money(s.PaymentStatus.Paid)},
			{"Pending", money(s.PaymentStatus.Pending)},
			{"Processing", money(s.PaymentStatus.Processing)},
		}),
	}

	campaigns := make([][]string, 0, len(s.CampaignBreakdown))
	for _, c := range s.CampaignBreakdown {
		title := c.CampaignTitle
		if title == "" {
			title = c.CampaignID
		}
		campaigns = append(campaigns, []string{title, c.Category, count(c.InvoiceCount), money(c.Earnings)})
	}
	doc.Tables = append(doc.Tables, splitTable("Campaigns", []string{"Campaign", "Category", "Invoices", "Earnings"}, campaigns)...)

	months := make([][]string, 0, len(s.MonthlyBreakdown))
	for _, m := range s.MonthlyBreakdown {
		months = append(months, []string{m.Label, count(m.InvoiceCount), money(m.Earnings)})
	}
	doc.Tables = append(doc.Tables, splitTable("Monthly Earnings", []string{"Month", "Invoices", "Earnings"}, months)...)

	categories := make([][]string, 0, len(s.TopCategories))
	for _, c := range s.TopCategories {
		categories = append(categories, []string{c.Category, money(c.Earnings), percent(c.Share)})
	}
	doc.Tables = append(doc.Tables, splitTable("Top Categories", []string{"Category", "Earnings", "Share"}, categories)...)
}

func amountTable(title string, rows [][]string) Table {
	return Table{Title: title, Columns: []string{"Item", "Amount"}, Rows: rows}
}

func amountTables(title string, rows [][]string) []Table {
	return splitTable(title, []string{"Item", "Amount"}, rows)
}

func ratioTable(title string, rows [][]string) Table {
	return Table{Title: title, Columns: []string{"Measure", "Value"}, Rows: rows}
}

func countTable(title string, rows [][]string) Table {
	return Table{Title: title, Columns: []string{"Measure", "Count"}, Rows: rows}
}

// splitTable breaks rows into tables of at most maxTableRows rows.
func splitTable(title string, columns []string, rows [][]string) []Table {
	if len(rows) == 0 {
		return []Table{{Title: title, Columns: columns}}
	}
	var tables []Table
	for start := 0; start < len(rows); start += maxTableRows {
		end := start + maxTableRows
		if end > len(rows) {
			end = len(rows)
		}
		name := title
		if start > 0 {
			name = title + " (cont.)"
		}
		tables = append(tables, Table{Title: name, Columns: columns, Rows: rows[start:end]})
	}
	return tables
}

const dateLayout = "2006-01-02"

func periodLine(p reporting.Period) string {
	if p.Start.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s to %s)", p.Label(), p.StartDate(), p.EndDate())
}

func money(a reporting.Amount) string { return a.String() }

func percent(a reporting.Amount) string { return a.String() + "%" }

func ratio(a reporting.Amount) string { return a.String() }

func count(n int) string { return strconv.Itoa(n) }

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
