package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementFor(t *testing.T, month int, totals LedgerTotals) *Statement {
	t.Helper()
	period, err := ResolvePeriod(PeriodMonthly, 2025, month, time.UTC)
	require.NoError(t, err)
	return &Statement{
		ID:            "stmt-" + period.StartDate(),
		SubjectID:     "inf-1",
		SubjectKind:   SubjectInfluencer,
		StatementType: period.Kind,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		Currency:      "USD",
		Status:        StatusFinal,
		Metrics:       CalculateStatementMetrics(DefaultPolicy(), totals),
	}
}

func TestBalanceSheetBalanceCheck(t *testing.T) {
	stmt := statementFor(t, 3, LedgerTotals{Revenue: MustAmount("1000"), Receivables: MustAmount("300"), Payables: MustAmount("40")})
	sheet := NewBalanceSheet(stmt)
	assert.True(t, sheet.BalanceCheck)
	assert.Equal(t, sheet.Assets.Total.String(), sheet.TotalLiabilitiesAndEquity.String())
	assert.Equal(t, KindBalanceSheet, sheet.Kind())
	assert.Equal(t, "2025-03-01", sheet.Period().StartDate())
}

func TestCashFlowStatementAgainstPreviousPeriod(t *testing.T) {
	prev := statementFor(t, 2, LedgerTotals{Revenue: MustAmount("500"), Receivables: MustAmount("100")})
	cur := statementFor(t, 3, LedgerTotals{Revenue: MustAmount("1000"), Receivables: MustAmount("300"), Payables: MustAmount("40")})

	view := NewCashFlowStatement(cur, prev)
	assert.Equal(t, prev.ID, view.PreviousStatementID)
	assert.Equal(t, "-200.00", view.Operating.ChangeInReceivables.String())
	assert.Equal(t, "40.00", view.Operating.ChangeInPayables.String())
	assert.Equal(t, prev.Cash, view.BeginningCash)
	assert.Equal(t, view.BeginningCash.Add(view.NetChangeInCash).String(), view.EndingCash.String())
	assert.Equal(t, NewBalanceSheet(cur).Assets.Cash.String(), view.EndingCash.String())

	first := NewCashFlowStatement(cur, nil)
	assert.Equal(t, "0.00", first.BeginningCash.String())
	assert.Equal(t, cur.Cash.String(), first.EndingCash.String())
}

func TestCashFlowEndingCashMatchesBalanceSheetWhenIncomeFalls(t *testing.T) {
	jan := statementFor(t, 1, LedgerTotals{Revenue: MustAmount("1000")})
	feb := statementFor(t, 2, LedgerTotals{Revenue: MustAmount("500")})

	view := NewCashFlowStatement(feb, jan)
	sheet := NewBalanceSheet(feb)
	assert.Equal(t, sheet.Assets.Cash.String(), view.EndingCash.String())
	assert.Equal(t, jan.Cash.String(), view.BeginningCash.String())
	assert.Equal(t, feb.Cash.Sub(jan.Cash).String(), view.NetChangeInCash.String())
	assert.True(t, view.NetChangeInCash.IsNegative())
	assert.Equal(t, view.Operating.NetCash.String(), view.NetChangeInCash.String())
}

func TestFinancialAnalysisGrowth(t *testing.T) {
	prev := statementFor(t, 2, LedgerTotals{Revenue: MustAmount("500")})
	cur := statementFor(t, 3, LedgerTotals{Revenue: MustAmount("1000")})
	analysis := NewFinancialAnalysis(cur, prev)
	assert.Equal(t, "100.00", analysis.Growth.RevenueGrowth.String())
	assert.Equal(t, "100.00", analysis.Growth.NetIncomeGrowth.String())

	zero := NewFinancialAnalysis(statementFor(t, 3, LedgerTotals{}), nil)
	assert.Equal(t, "0.00", zero.Growth.RevenueGrowth.String())
	assert.Equal(t, "0.00", zero.Leverage.DebtRatio.String())
	assert.Equal(t, "0.00", zero.Efficiency.RevenuePerInvoice.String())
}

func TestIncomeStatementShape(t *testing.T) {
	stmt := statementFor(t, 1, LedgerTotals{Revenue: MustAmount("1000"), OperatingExpense: MustAmount("100")})
	view := NewIncomeStatement(stmt)
	assert.Equal(t, stmt.NetRevenue, view.Revenue.NetRevenue)
	assert.Equal(t, stmt.OperatingExpenses, view.OperatingExpenses.Total)
	assert.Equal(t, stmt.NetIncome, view.NetIncome)
	assert.Equal(t, "Income Statement", view.Title())
}
