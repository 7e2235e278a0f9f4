package interfaces

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reporting "creator-finance/internal/reporting/domain"
)

func allReports() []reporting.Report {
	march := reporting.Period{
		Kind:  reporting.PeriodMonthly,
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	stmt := &reporting.Statement{
		ID:            "stmt-1",
		SubjectID:     "brand-1",
		SubjectKind:   reporting.SubjectBrand,
		StatementType: march.Kind,
		PeriodStart:   march.Start,
		PeriodEnd:     march.End,
	}
	return []reporting.Report{
		stmt,
		reporting.NewIncomeStatement(stmt),
		reporting.NewBalanceSheet(stmt),
		reporting.NewCashFlowStatement(stmt, nil),
		reporting.NewFinancialAnalysis(stmt, nil),
		&reporting.CampaignPLReport{},
		&reporting.PlatformRevenueReport{},
		&reporting.EarningsSummary{},
	}
}

func TestRenderPDFZeroReports(t *testing.T) {
	for _, report := range allReports() {
		t.Run(string(report.Kind()), func(t *testing.T) {
			data, err := RenderPDF(report, "")
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestRenderXLSXZeroReports(t *testing.T) {
	for _, report := range allReports() {
		t.Run(string(report.Kind()), func(t *testing.T) {
			data, err := RenderXLSX(report)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("PK")))
		})
	}
}

func TestRenderNilReport(t *testing.T) {
	_, err := RenderPDF(nil, "someone")
	assert.ErrorIs(t, err, reporting.ErrNilReport)
	_, err = RenderXLSX(nil)
	assert.ErrorIs(t, err, reporting.ErrNilReport)
}

func TestBuildDocumentTablesStayWithinRowLimit(t *testing.T) {
	summary := &reporting.EarningsSummary{InfluencerID: "inf-1", Year: 2025}
	for i := 0; i < 14; i++ {
		summary.CampaignBreakdown = append(summary.CampaignBreakdown, reporting.CampaignEarnings{
			CampaignID: fmt.Sprintf("camp-%d", i),
			Earnings:   reporting.AmountFromInt(int64(100 * (i + 1))),
		})
	}
	reports := append(allReports(), summary)
	for _, report := range reports {
		doc := BuildDocument(report)
		assert.NotEmpty(t, doc.Tables, report.Kind())
		for _, table := range doc.Tables {
			assert.LessOrEqual(t, len(table.Rows), maxTableRows, table.Title)
		}
	}

	doc := BuildDocument(summary)
	var titles []string
	for _, table := range doc.Tables {
		titles = append(titles, table.Title)
	}
	assert.Contains(t, titles, "Campaigns")
	assert.Contains(t, titles, "Campaigns (cont.)")
}

func TestBuildDocumentFormatsMissingValuesAsZero(t *testing.T) {
	doc := BuildDocument(&reporting.PlatformRevenueReport{})
	require.NotEmpty(t, doc.Tables)
	assert.Equal(t, []string{"Gross transaction volume", "0.00"}, doc.Tables[0].Rows[0])
	assert.Equal(t, "0.00%", doc.Tables[0].Rows[7][1])
}

func TestBuildDocumentBalanceCheck(t *testing.T) {
	stmt := &reporting.Statement{SubjectID: "inf-1", SubjectKind: reporting.SubjectInfluencer}
	stmt.TotalAssets = reporting.MustAmount("100")
	stmt.TotalLiabilities = reporting.MustAmount("40")
	stmt.TotalEquity = reporting.MustAmount("50")
	doc := BuildDocument(reporting.NewBalanceSheet(stmt))
	assert.Contains(t, doc.Summary, Field{"Balance check", "Out of balance"})
}

func TestSheetNameSanitizesAndDeduplicates(t *testing.T) {
	used := map[string]int{summarySheet: 1}
	assert.Equal(t, "Profit and Loss", sheetName("Profit and Loss", used))
	assert.Equal(t, "Profit and Loss 2", sheetName("Profit and Loss", used))
	assert.Equal(t, "Summary 2", sheetName("Summary", used))
	assert.Equal(t, "a-b-c", sheetName("a/b:c", used))
	long := sheetName("A table title that is far longer than allowed", used)
	assert.LessOrEqual(t, len(long), maxSheetName)
}

func TestColumnWidthsFillContent(t *testing.T) {
	for n := 1; n <= 4; n++ {
		total := 0.0
		for _, w := range columnWidths(n) {
			total += w
		}
		assert.InDelta(t, contentWidthMM, total, 0.001)
	}
}
