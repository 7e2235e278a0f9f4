package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEarningsSummarySinglePaidInvoice(t *testing.T) {
	year, err := ResolvePeriod(PeriodYearly, 2025, 0, time.UTC)
	require.NoError(t, err)

	summary := BuildEarningsSummary("inf-1", 2025, 0, year, "USD", []EarningInvoice{{
		InvoiceID:     "inv-1",
		CampaignID:    "camp-1",
		CampaignTitle: "Spring launch",
		Category:      "beauty",
		Amount:        MustAmount("1000"),
		Status:        InvoiceStatusPaid,
		IssueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PaidAt:        time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}}, time.Now())

	assert.Equal(t, "1000.00", summary.TotalEarnings.String())
	require.Len(t, summary.MonthlyBreakdown, 12)
	for i, bucket := range summary.MonthlyBreakdown {
		if i == 2 {
			assert.Equal(t, "1000.00", bucket.Earnings.String())
			continue
		}
		assert.Equal(t, "0.00", bucket.Earnings.String(), "month %d", bucket.Month)
	}
	assert.Equal(t, "1000.00", summary.PaymentStatus.Paid.String())
	assert.Equal(t, "0.00", summary.PaymentStatus.Pending.String())
	assert.Equal(t, "0.00", summary.PaymentStatus.Processing.String())
	require.Len(t, summary.CampaignBreakdown, 1)
	require.Len(t, summary.TopCategories, 1)
	assert.Equal(t, "100.00", summary.TopCategories[0].Share.String())
}

func TestBuildEarningsSummaryStatusSplitAndTopCategories(t *testing.T) {
	month, err := ResolvePeriod(PeriodMonthly, 2025, 6, time.UTC)
	require.NoError(t, err)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	var invoices []EarningInvoice
	for i, category := range []string{"a", "b", "c", "d", "e", "f"} {
		invoices = append(invoices, EarningInvoice{
			CampaignID: category,
			Category:   category,
			Amount:     AmountFromInt(int64(100 * (i + 1))),
			Status:     InvoiceStatusPaid,
			IssueDate:  day,
		})
	}
	invoices = append(invoices,
		EarningInvoice{CampaignID: "a", Amount: MustAmount("50"), Status: InvoiceStatusSent, IssueDate: day},
		EarningInvoice{CampaignID: "a", Amount: MustAmount("25"), Status: InvoiceStatusDraft, IssueDate: day},
		EarningInvoice{CampaignID: "a", Amount: MustAmount("999"), Status: InvoiceStatusCancelled, IssueDate: day},
	)

	summary := BuildEarningsSummary("inf-1", 2025, 6, month, "USD", invoices, time.Now())
	assert.Equal(t, "2100.00", summary.TotalEarnings.String())
	assert.Equal(t, 6, summary.InvoiceCount)
	assert.Equal(t, "350.00", summary.AverageInvoice.String())
	require.Len(t, summary.MonthlyBreakdown, 1)
	assert.Equal(t, "2100.00", summary.MonthlyBreakdown[0].Earnings.String())
	assert.Equal(t, "50.00", summary.PaymentStatus.Pending.String())
	assert.Equal(t, "25.00", summary.PaymentStatus.Processing.String())

	require.Len(t, summary.TopCategories, 5)
	assert.Equal(t, "f", summary.TopCategories[0].Category)
	assert.Equal(t, "b", summary.TopCategories[4].Category)
	assert.Equal(t, "f", summary.CampaignBreakdown[0].CampaignID)
}
