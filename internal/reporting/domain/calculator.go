package reporting

// CalculateStatementMetrics turns role-mapped ledger totals into the full metric set.
// Values without a ledger source stay zero, and every figure is rounded to two places
// before it feeds the next one so the balance sheet identity holds exactly.
func CalculateStatementMetrics(policy Policy, totals LedgerTotals) Metrics {
	var m Metrics

	m.GrossRevenue = totals.Revenue
	m.RevenueDeductions = m.GrossRevenue.MulRate(policy.RevenueDeductionRate)
	m.NetRevenue = m.GrossRevenue.Sub(m.RevenueDeductions)
	m.CostOfRevenue = totals.DirectCosts
	m.GrossProfit = m.NetRevenue.Sub(m.CostOfRevenue)

	m.OperatingExpenses = totals.OperatingExpense
	m.MarketingExpenses = m.OperatingExpenses.MulRate(policy.MarketingExpenseShare)
	m.AdministrativeExpenses = m.OperatingExpenses.MulRate(policy.AdminExpenseShare)
	m.OtherOperatingExpenses = m.OperatingExpenses.Sub(m.MarketingExpenses).Sub(m.AdministrativeExpenses)
	m.OperatingIncome = m.GrossProfit.Sub(m.OperatingExpenses)

	m.InterestIncome = Zero
	m.InterestExpense = Zero
	m.OtherIncome = Zero
	m.IncomeBeforeTax = SumAmounts(m.OperatingIncome, m.InterestIncome, m.OtherIncome).Sub(m.InterestExpense)
	m.TaxExpense = m.IncomeBeforeTax.MulRate(policy.TaxRate).Max(Zero)
	m.NetIncome = m.IncomeBeforeTax.Sub(m.TaxExpense)

	m.AccountsReceivable = totals.Receivables
	m.AccountsPayable = totals.Payables
	m.Cash = m.NetIncome.Add(m.AccountsPayable).Sub(m.AccountsReceivable)
	m.PrepaidExpenses = Zero
	m.TotalCurrentAssets = SumAmounts(m.Cash, m.AccountsReceivable, m.PrepaidExpenses)
	m.FixedAssets = Zero
	m.TotalAssets = m.TotalCurrentAssets.Add(m.FixedAssets)

	m.AccruedLiabilities = Zero
	m.TotalCurrentLiabilities = m.AccountsPayable.Add(m.AccruedLiabilities)
	m.LongTermDebt = Zero
	m.TotalLiabilities = m.TotalCurrentLiabilities.Add(m.LongTermDebt)
	m.RetainedEarnings = m.NetIncome
	m.TotalEquity = m.RetainedEarnings

	m.OperatingCashFlow = m.Cash
	m.InvestingCashFlow = Zero
	m.FinancingCashFlow = Zero
	m.NetCashFlow = SumAmounts(m.OperatingCashFlow, m.InvestingCashFlow, m.FinancingCashFlow)

	m.GrossMargin = m.GrossProfit.Percent(m.NetRevenue)
	m.OperatingMargin = m.OperatingIncome.Percent(m.NetRevenue)
	m.NetMargin = m.NetIncome.Percent(m.NetRevenue)
	m.CurrentRatio = m.TotalCurrentAssets.Ratio(m.TotalCurrentLiabilities)
	m.QuickRatio = m.Cash.Add(m.AccountsReceivable).Ratio(m.TotalCurrentLiabilities)
	m.DebtToEquity = m.TotalLiabilities.Ratio(m.TotalEquity)
	m.ReturnOnAssets = m.NetIncome.Percent(m.TotalAssets)
	m.ReturnOnEquity = m.NetIncome.Percent(m.TotalEquity)
	m.AssetTurnover = m.NetRevenue.Ratio(m.TotalAssets)

	m.InvoiceCount = totals.InvoiceCount
	m.TransactionCount = totals.TransactionCount
	m.CampaignCount = totals.CampaignCount
	return m
}

// CampaignFigures are the computed profit and loss lines of a campaign.
type CampaignFigures struct {
	TotalRevenue       Amount
	InfluencerPayouts  Amount
	PlatformCommission Amount
	TotalCosts         Amount
	NetProfit          Amount
	ProfitMargin       Amount
	ROI                Amount
	BudgetUtilization  Amount
}

// CalculateCampaignPL derives campaign profit and loss lines from campaign ledger totals.
func CalculateCampaignPL(budget Amount, totals CampaignTotals) CampaignFigures {
	var f CampaignFigures
	f.TotalRevenue = totals.BrandPayments
	f.InfluencerPayouts = totals.InfluencerPayouts
	f.PlatformCommission = totals.PlatformCommission
	f.TotalCosts = f.InfluencerPayouts.Add(f.PlatformCommission)
	f.NetProfit = f.TotalRevenue.Sub(f.TotalCosts)
	f.ProfitMargin = f.NetProfit.Percent(f.TotalRevenue)
	f.ROI = f.NetProfit.Percent(f.TotalCosts)
	f.BudgetUtilization = f.TotalRevenue.Percent(budget)
	return f
}

// PlatformFigures are the computed revenue lines of a platform report.
type PlatformFigures struct {
	GrossTransactionVolume  Amount
	PlatformCommission      Amount
	ProcessingFees          Amount
	TotalRevenue            Amount
	Refunds                 Amount
	NetRevenue              Amount
	AverageTransactionValue Amount
	TakeRate                Amount
	RevenueGrowth           Amount
}

// CalculatePlatformRevenue derives platform revenue lines for current, with growth measured
// against previous.
func CalculatePlatformRevenue(current, previous PlatformTotals) PlatformFigures {
	var f PlatformFigures
	f.GrossTransactionVolume = current.GrossTransactionVolume
	f.PlatformCommission = current.PlatformCommission
	f.ProcessingFees = current.ProcessingFees
	f.TotalRevenue = f.PlatformCommission.Add(f.ProcessingFees)
	f.Refunds = current.Refunds
	f.NetRevenue = f.TotalRevenue.Sub(f.Refunds)
	f.AverageTransactionValue = f.GrossTransactionVolume.DivInt(current.PaidInvoiceCount)
	f.TakeRate = f.TotalRevenue.Percent(f.GrossTransactionVolume)

	prevRevenue := previous.PlatformCommission.Add(previous.ProcessingFees)
	f.RevenueGrowth = Growth(f.TotalRevenue, prevRevenue)
	return f
}

// Growth returns the percentage change from previous to current, or zero without a base.
func Growth(current, previous Amount) Amount {
	return current.Sub(previous).Percent(previous)
}
