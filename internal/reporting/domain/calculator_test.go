package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatementMetricsZeroLedger(t *testing.T) {
	metrics := CalculateStatementMetrics(DefaultPolicy(), LedgerTotals{})
	for _, field := range metrics.AmountFields() {
		assert.Equal(t, "0.00", field.Amount.String(), field.Column)
	}
	assert.True(t, metrics.Balanced())
}

func TestCalculateStatementMetrics(t *testing.T) {
	metrics := CalculateStatementMetrics(DefaultPolicy(), LedgerTotals{
		Revenue:          MustAmount("1000"),
		DirectCosts:      MustAmount("200"),
		OperatingExpense: MustAmount("100"),
		Receivables:      MustAmount("150"),
		Payables:         MustAmount("50"),
		InvoiceCount:     4,
	})

	assert.Equal(t, "20.00", metrics.RevenueDeductions.String())
	assert.Equal(t, "980.00", metrics.NetRevenue.String())
	assert.Equal(t, "780.00", metrics.GrossProfit.String())
	assert.Equal(t, "30.00", metrics.MarketingExpenses.String())
	assert.Equal(t, "20.00", metrics.AdministrativeExpenses.String())
	assert.Equal(t, "50.00", metrics.OtherOperatingExpenses.String())
	assert.Equal(t, "680.00", metrics.OperatingIncome.String())
	assert.Equal(t, "170.00", metrics.TaxExpense.String())
	assert.Equal(t, "510.00", metrics.NetIncome.String())
	assert.Equal(t, "410.00", metrics.Cash.String())
	assert.Equal(t, "560.00", metrics.TotalAssets.String())
	assert.Equal(t, "50.00", metrics.TotalLiabilities.String())
	assert.Equal(t, "510.00", metrics.TotalEquity.String())
	assert.True(t, metrics.Balanced())

	assert.Equal(t, "79.59", metrics.GrossMargin.String())
	assert.Equal(t, "69.39", metrics.OperatingMargin.String())
	assert.Equal(t, "52.04", metrics.NetMargin.String())
	assert.Equal(t, "11.20", metrics.CurrentRatio.String())
	assert.Equal(t, "11.20", metrics.QuickRatio.String())
	assert.Equal(t, "0.10", metrics.DebtToEquity.String())
	assert.Equal(t, "91.07", metrics.ReturnOnAssets.String())
	assert.Equal(t, "100.00", metrics.ReturnOnEquity.String())
	assert.Equal(t, "1.75", metrics.AssetTurnover.String())
	assert.Equal(t, 4, metrics.InvoiceCount)
}

func TestCalculateStatementMetricsLossHasNoNegativeTax(t *testing.T) {
	metrics := CalculateStatementMetrics(DefaultPolicy(), LedgerTotals{OperatingExpense: MustAmount("100")})
	assert.Equal(t, "-100.00", metrics.IncomeBeforeTax.String())
	assert.Equal(t, "0.00", metrics.TaxExpense.String())
	assert.Equal(t, "-100.00", metrics.NetIncome.String())
	assert.Equal(t, "0.00", metrics.CurrentRatio.String())
	assert.Equal(t, "0.00", metrics.GrossMargin.String())
	assert.True(t, metrics.Balanced())
}

func TestCalculateCampaignPLZeroGuards(t *testing.T) {
	figures := CalculateCampaignPL(Zero, CampaignTotals{})
	assert.Equal(t, "0.00", figures.ProfitMargin.String())
	assert.Equal(t, "0.00", figures.ROI.String())
	assert.Equal(t, "0.00", figures.BudgetUtilization.String())

	figures = CalculateCampaignPL(MustAmount("5000"), CampaignTotals{
		BrandPayments:      MustAmount("4000"),
		InfluencerPayouts:  MustAmount("2500"),
		PlatformCommission: MustAmount("500"),
	})
	assert.Equal(t, "3000.00", figures.TotalCosts.String())
	assert.Equal(t, "1000.00", figures.NetProfit.String())
	assert.Equal(t, "25.00", figures.ProfitMargin.String())
	assert.Equal(t, "33.33", figures.ROI.String())
	assert.Equal(t, "80.00", figures.BudgetUtilization.String())
}

func TestCalculatePlatformRevenue(t *testing.T) {
	figures := CalculatePlatformRevenue(
		PlatformTotals{
			GrossTransactionVolume: MustAmount("10000"),
			PlatformCommission:     MustAmount("1000"),
			ProcessingFees:         MustAmount("200"),
			Refunds:                MustAmount("100"),
			PaidInvoiceCount:       8,
		},
		PlatformTotals{PlatformCommission: MustAmount("800"), ProcessingFees: MustAmount("200")},
	)
	assert.Equal(t, "1200.00", figures.TotalRevenue.String())
	assert.Equal(t, "1100.00", figures.NetRevenue.String())
	assert.Equal(t, "1250.00", figures.AverageTransactionValue.String())
	assert.Equal(t, "12.00", figures.TakeRate.String())
	assert.Equal(t, "20.00", figures.RevenueGrowth.String())

	empty := CalculatePlatformRevenue(PlatformTotals{}, PlatformTotals{})
	assert.Equal(t, "0.00", empty.AverageTransactionValue.String())
	assert.Equal(t, "0.00", empty.RevenueGrowth.String())
}
