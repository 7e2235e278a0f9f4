package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reporting "creator-finance/internal/reporting/domain"
	"creator-finance/internal/reporting/infrastructure/memory"
)

func campaignLedger() *memory.Ledger {
	ledger := seededLedger()
	ledger.AddCampaign(memory.CampaignRecord{
		Campaign: reporting.Campaign{
			ID: "camp-1", BrandID: "brand-1", Title: "Spring launch", Category: "beauty",
			Status: memory.CampaignActive, Budget: reporting.MustAmount("5000"),
			StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31),
		},
		CreatedAt: day(2025, 2, 20),
	})
	ledger.AddPayment(memory.CampaignPayment{ID: "p1", CampaignID: "camp-1", BrandID: "brand-1", Amount: reporting.MustAmount("3000"), Status: memory.StatusCompleted, PaidAt: day(2025, 3, 2)})
	ledger.AddPayment(memory.CampaignPayment{ID: "p2", BrandID: "brand-1", Amount: reporting.MustAmount("1000"), Status: memory.StatusCompleted, PaidAt: day(2025, 4, 3)})
	ledger.AddPayment(memory.CampaignPayment{ID: "p3", CampaignID: "camp-1", BrandID: "brand-1", Amount: reporting.MustAmount("700"), Status: memory.StatusPending, PaidAt: day(2025, 3, 9)})
	ledger.AddTransaction(memory.Transaction{ID: "c1", UserID: "inf-1", CampaignID: "camp-1", Type: memory.TxnPlatformCommission, Amount: reporting.MustAmount("500"), Status: memory.StatusCompleted, CreatedAt: day(2025, 3, 25)})
	ledger.AddInvoice(memory.Invoice{
		ID: "inv-1", InfluencerID: "inf-1", BrandID: "brand-1", CampaignID: "camp-1",
		Amount: reporting.MustAmount("2500"), Status: reporting.InvoiceStatusPaid,
		IssueDate: day(2025, 3, 10), PaidAt: day(2025, 3, 28),
	})
	return ledger
}

func newCampaignService(t *testing.T, ledger *memory.Ledger, opts ...Option) (*CampaignReportService, *memory.CampaignReportRepository) {
	t.Helper()
	repo := memory.NewCampaignReportRepository()
	opts = append([]Option{WithClock(fixedClock{now: day(2025, 6, 1)})}, opts...)
	svc, err := NewCampaignReportService(repo, ledger, ledger, opts...)
	require.NoError(t, err)
	return svc, repo
}

func TestGenerateCampaignPLReportLifetime(t *testing.T) {
	svc, repo := newCampaignService(t, campaignLedger())

	report, err := svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodLifetime)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", report.Period().StartDate())
	assert.Equal(t, "2025-03-31", report.Period().EndDate())
	assert.Equal(t, day(2025, 4, 7), report.WindowEnd)

	assert.Equal(t, "4000.00", report.TotalRevenue.String())
	assert.Equal(t, "2500.00", report.InfluencerPayouts.String())
	assert.Equal(t, "500.00", report.PlatformCommission.String())
	assert.Equal(t, "3000.00", report.TotalCosts.String())
	assert.Equal(t, "1000.00", report.NetProfit.String())
	assert.Equal(t, "25.00", report.ProfitMargin.String())
	assert.Equal(t, "33.33", report.ROI.String())
	assert.Equal(t, "80.00", report.BudgetUtilization.String())
	assert.Equal(t, 2, report.PaymentCount)
	assert.Equal(t, 1, report.InfluencerCount)

	again, err := svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodLifetime)
	require.NoError(t, err)
	assert.Equal(t, report.ID, again.ID)
	assert.Equal(t, 1, repo.Count())
}

func TestGenerateCampaignPLReportWithoutPadding(t *testing.T) {
	policy := reporting.DefaultPolicy()
	policy.CampaignWindowPaddingDays = 0
	svc, _ := newCampaignService(t, campaignLedger(), WithPolicy(policy))

	report, err := svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodLifetime)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", report.TotalRevenue.String())
	assert.Equal(t, report.PeriodEnd, report.WindowEnd)
}

func TestGenerateCampaignPLReportCalendarPeriods(t *testing.T) {
	svc, _ := newCampaignService(t, campaignLedger())

	quarterly, err := svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodQuarterly)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", quarterly.Period().StartDate())
	assert.Equal(t, "2025-03-31", quarterly.Period().EndDate())

	monthly, err := svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", monthly.Period().StartDate())
	assert.NotEqual(t, quarterly.ID, monthly.ID)

	_, err = svc.GenerateCampaignPLReport(context.Background(), "camp-1", "brand-1", reporting.PeriodWeekly)
	assert.ErrorIs(t, err, reporting.ErrInvalidPeriodKind)
}

func TestGenerateCampaignPLReportNotFound(t *testing.T) {
	svc, _ := newCampaignService(t, campaignLedger())
	ctx := context.Background()

	_, err := svc.GenerateCampaignPLReport(ctx, "camp-404", "brand-1", reporting.PeriodLifetime)
	assert.ErrorIs(t, err, reporting.ErrCampaignNotFound)

	_, err = svc.GenerateCampaignPLReport(ctx, "camp-1", "brand-2", reporting.PeriodLifetime)
	assert.ErrorIs(t, err, reporting.ErrCampaignNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, reporting.ErrReportNotFound)
}

func TestGenerateCampaignPLReportZeroRevenue(t *testing.T) {
	ledger := seededLedger()
	ledger.AddCampaign(memory.CampaignRecord{Campaign: reporting.Campaign{
		ID: "camp-2", BrandID: "brand-2", Title: "Quiet", StartDate: day(2025, 5, 1),
	}})
	svc, _ := newCampaignService(t, ledger)

	report, err := svc.GenerateCampaignPLReport(context.Background(), "camp-2", "brand-2", reporting.PeriodLifetime)
	require.NoError(t, err)
	assert.Equal(t, report.PeriodStart, report.PeriodEnd)
	assert.Equal(t, "0.00", report.ProfitMargin.String())
	assert.Equal(t, "0.00", report.ROI.String())
	assert.Equal(t, "0.00", report.BudgetUtilization.String())
}

func TestGeneratePlatformRevenueReport(t *testing.T) {
	ledger := campaignLedger()
	ledger.AddTransaction(memory.Transaction{ID: "f1", UserID: "brand-1", Type: memory.TxnProcessingFee, Amount: reporting.MustAmount("100"), Status: memory.StatusCompleted, CreatedAt: day(2025, 3, 4)})
	ledger.AddTransaction(memory.Transaction{ID: "c0", UserID: "inf-1", Type: memory.TxnPlatformCommission, Amount: reporting.MustAmount("300"), Status: memory.StatusCompleted, CreatedAt: day(2025, 2, 14)})
	repo := memory.NewPlatformReportRepository()
	publisher := &recordingPublisher{}
	svc, err := NewPlatformReportService(repo, ledger, WithPublisher(publisher), WithClock(fixedClock{now: day(2025, 6, 1)}))
	require.NoError(t, err)

	report, err := svc.GeneratePlatformRevenueReport(context.Background(), reporting.PeriodMonthly, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "2500.00", report.GrossTransactionVolume.String())
	assert.Equal(t, "600.00", report.TotalRevenue.String())
	assert.Equal(t, "100.00", report.RevenueGrowth.String())
	assert.Equal(t, "24.00", report.TakeRate.String())
	assert.Equal(t, "2500.00", report.AverageTransactionValue.String())
	assert.Equal(t, 1, report.NewUsers)
	assert.Equal(t, 1, report.NewBrands)
	assert.Equal(t, 1, report.ActiveCampaigns)

	again, err := svc.GeneratePlatformRevenueReport(context.Background(), reporting.PeriodMonthly, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, report.ID, again.ID)
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, 1, publisher.count())

	got, err := svc.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	_, err = svc.GeneratePlatformRevenueReport(context.Background(), reporting.PeriodLifetime, 2025, 0)
	assert.ErrorIs(t, err, reporting.ErrInvalidPeriodKind)
}

func TestGenerateInfluencerEarningsSummary(t *testing.T) {
	ledger := seededLedger()
	ledger.AddInvoice(memory.Invoice{
		ID: "inv-1", InfluencerID: "inf-1", BrandID: "brand-1",
		Amount: reporting.MustAmount("1000"), Status: reporting.InvoiceStatusPaid,
		IssueDate: day(2025, 3, 1), PaidAt: time.Date(2025, 3, 18, 14, 0, 0, 0, time.UTC),
	})
	svc, err := NewEarningsService(ledger, ledger)
	require.NoError(t, err)

	summary, err := svc.GenerateInfluencerEarningsSummary(context.Background(), "inf-1", 2025, 0)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", summary.TotalEarnings.String())
	require.Len(t, summary.MonthlyBreakdown, 12)
	assert.Equal(t, "1000.00", summary.MonthlyBreakdown[2].Earnings.String())
	for i, bucket := range summary.MonthlyBreakdown {
		if i != 2 {
			assert.Equal(t, "0.00", bucket.Earnings.String())
		}
	}
	assert.Equal(t, "1000.00", summary.PaymentStatus.Paid.String())
	assert.Equal(t, "0.00", summary.PaymentStatus.Pending.String())

	_, err = svc.GenerateInfluencerEarningsSummary(context.Background(), "brand-1", 2025, 0)
	assert.ErrorIs(t, err, reporting.ErrSubjectNotFound)
	_, err = svc.GenerateInfluencerEarningsSummary(context.Background(), "inf-1", 2025, 14)
	assert.ErrorIs(t, err, reporting.ErrInvalidPeriod)
}

func TestStatementViews(t *testing.T) {
	ledger := seededLedger()
	ledger.AddInvoice(memory.Invoice{
		ID: "inv-feb", InfluencerID: "inf-1", BrandID: "brand-1",
		Amount: reporting.MustAmount("500"), Status: reporting.InvoiceStatusPaid,
		IssueDate: day(2025, 2, 1), PaidAt: day(2025, 2, 10),
	})
	ledger.AddInvoice(memory.Invoice{
		ID: "inv-mar", InfluencerID: "inf-1", BrandID: "brand-1",
		Amount: reporting.MustAmount("1000"), Status: reporting.InvoiceStatusPaid,
		IssueDate: day(2025, 3, 1), PaidAt: day(2025, 3, 10),
	})
	ledger.AddInvoice(memory.Invoice{
		ID: "inv-open", InfluencerID: "inf-1", BrandID: "brand-1",
		Amount: reporting.MustAmount("200"), Status: reporting.InvoiceStatusSent,
		IssueDate: day(2025, 3, 12),
	})
	repo := memory.NewStatementRepository()
	views, err := NewStatementViews(newStatementService(t, repo, ledger))
	require.NoError(t, err)
	ctx := context.Background()
	subject := reporting.Subject{ID: "inf-1", Kind: reporting.SubjectInfluencer}

	sheet, err := views.BalanceSheet(ctx, subject, 2025, 3)
	require.NoError(t, err)
	assert.True(t, sheet.BalanceCheck)
	assert.Equal(t, "200.00", sheet.Assets.AccountsReceivable.String())

	cash, err := views.CashFlowStatement(ctx, subject, 2025, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, cash.PreviousStatementID)
	assert.Equal(t, "-200.00", cash.Operating.ChangeInReceivables.String())
	assert.Equal(t, 2, repo.Count())

	analysis, err := views.FinancialAnalysis(ctx, subject, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "100.00", analysis.Growth.RevenueGrowth.String())

	income, err := views.IncomeStatement(ctx, subject, 2025, 0)
	require.NoError(t, err)
	assert.Equal(t, reporting.PeriodYearly, income.PeriodKind)
	assert.Equal(t, "1470.00", income.Revenue.NetRevenue.String())
}

func TestMonthCloseSchedulerRunOnce(t *testing.T) {
	ledger := seededLedger()
	statements := newStatementService(t, memory.NewStatementRepository(), ledger)
	platformRepo := memory.NewPlatformReportRepository()
	platform, err := NewPlatformReportService(platformRepo, ledger)
	require.NoError(t, err)
	subjects := []reporting.Subject{
		{ID: "brand-1", Kind: reporting.SubjectBrand},
		{ID: "ghost", Kind: reporting.SubjectInfluencer},
	}
	scheduler, err := NewMonthCloseScheduler(statements, platform, subjects, "", nil)
	require.NoError(t, err)

	scheduler.RunOnce(context.Background(), time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC))

	platformStmts, err := statements.List(context.Background(), reporting.PlatformSubject(), 10)
	require.NoError(t, err)
	require.Len(t, platformStmts, 1)
	assert.Equal(t, "2025-06-01", platformStmts[0].Period().StartDate())

	brandStmts, err := statements.List(context.Background(), subjects[0], 10)
	require.NoError(t, err)
	assert.Len(t, brandStmts, 1)
	assert.Equal(t, 1, platformRepo.Count())
}
