package postgres

import (
	"context"
	"database/sql"
	"errors"

	reporting "creator-finance/internal/reporting/domain"
)

const campaignReportColumns = `id, campaign_id, brand_id, campaign_title, report_period,
	period_start, period_end, window_start, window_end, currency, status, generated_by, generated_at,
	budget, total_revenue, influencer_payouts, platform_commission, total_costs, net_profit,
	profit_margin, roi, budget_utilization, payment_count, invoice_count, influencer_count`

// CampaignReportRepository persists campaign P&L reports.
type CampaignReportRepository struct {
	db   *sql.DB
	opts options
}

// NewCampaignReportRepository constructs a repository.
func NewCampaignReportRepository(db *sql.DB, opts ...Option) *CampaignReportRepository {
	return &CampaignReportRepository{db: db, opts: buildOptions(opts)}
}

// FindByKey loads the report for key, or nil when none exists.
func (r *CampaignReportRepository) FindByKey(ctx context.Context, key reporting.CampaignReportKey) (*reporting.CampaignPLReport, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+campaignReportColumns+`
FROM campaign_pl_reports
WHERE campaign_id = $1 AND report_period = $2 AND period_start = $3 AND period_end = $4`,
		key.CampaignID, string(key.Period.Kind), key.Period.Start, key.Period.End,
	)
	return r.scan(row)
}

// Insert persists a report. A duplicate identity yields ErrReportExists.
func (r *CampaignReportRepository) Insert(ctx context.Context, report *reporting.CampaignPLReport) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if report == nil {
		return reporting.ErrNilReport
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO campaign_pl_reports (`+campaignReportColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
	$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		report.ID,
		report.CampaignID,
		report.BrandID,
		report.CampaignTitle,
		string(report.ReportPeriod),
		report.PeriodStart,
		report.PeriodEnd,
		report.WindowStart,
		report.WindowEnd,
		report.Currency,
		report.Status,
		report.GeneratedBy,
		report.GeneratedAt,
		report.Budget,
		report.TotalRevenue,
		report.InfluencerPayouts,
		report.PlatformCommission,
		report.TotalCosts,
		report.NetProfit,
		report.ProfitMargin,
		report.ROI,
		report.BudgetUtilization,
		report.PaymentCount,
		report.InvoiceCount,
		report.InfluencerCount,
	)
	if isUniqueViolation(err) {
		return reporting.ErrReportExists
	}
	return err
}

// GetByID loads a report by id, or nil when absent.
func (r *CampaignReportRepository) GetByID(ctx context.Context, id string) (*reporting.CampaignPLReport, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+campaignReportColumns+`
FROM campaign_pl_reports
WHERE id = $1`, id)
	return r.scan(row)
}

func (r *CampaignReportRepository) scan(row rowScanner) (*reporting.CampaignPLReport, error) {
	var (
		report     reporting.CampaignPLReport
		periodKind string
	)
	err := row.Scan(
		&report.ID,
		&report.CampaignID,
		&report.BrandID,
		&report.CampaignTitle,
		&periodKind,
		&report.PeriodStart,
		&report.PeriodEnd,
		&report.WindowStart,
		&report.WindowEnd,
		&report.Currency,
		&report.Status,
		&report.GeneratedBy,
		&report.GeneratedAt,
		&report.Budget,
		&report.TotalRevenue,
		&report.InfluencerPayouts,
		&report.PlatformCommission,
		&report.TotalCosts,
		&report.NetProfit,
		&report.ProfitMargin,
		&report.ROI,
		&report.BudgetUtilization,
		&report.PaymentCount,
		&report.InvoiceCount,
		&report.InfluencerCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	loc := r.opts.location
	report.ReportPeriod = reporting.PeriodKind(periodKind)
	report.PeriodStart = civil(report.PeriodStart, loc)
	report.PeriodEnd = civil(report.PeriodEnd, loc)
	report.WindowStart = civil(report.WindowStart, loc)
	report.WindowEnd = civil(report.WindowEnd, loc)
	report.GeneratedAt = report.GeneratedAt.UTC()
	return &report, nil
}
