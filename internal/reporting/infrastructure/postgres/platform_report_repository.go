package postgres

import (
	"context"
	"database/sql"
	"errors"

	reporting "creator-finance/internal/reporting/domain"
)

const platformReportColumns = `id, report_type, period_start, period_end, currency, status, generated_by, generated_at,
	gross_transaction_volume, platform_commission, processing_fees, total_revenue, refunds, net_revenue,
	average_transaction_value, take_rate, revenue_growth,
	paid_invoice_count, new_users, new_brands, new_influencers, new_campaigns, active_campaigns`

// PlatformReportRepository persists platform revenue reports.
type PlatformReportRepository struct {
	db   *sql.DB
	opts options
}

// NewPlatformReportRepository constructs a repository.
func NewPlatformReportRepository(db *sql.DB, opts ...Option) *PlatformReportRepository {
	return &PlatformReportRepository{db: db, opts: buildOptions(opts)}
}

// FindByKey loads the report for key, or nil when none exists.
func (r *PlatformReportRepository) FindByKey(ctx context.Context, key reporting.PlatformReportKey) (*reporting.PlatformRevenueReport, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+platformReportColumns+`
FROM platform_revenue_reports
WHERE report_type = $1 AND period_start = $2 AND period_end = $3`,
		string(key.Period.Kind), key.Period.Start, key.Period.End,
	)
	return r.scan(row)
}

// Insert persists a report. A duplicate identity yields ErrReportExists.
func (r *PlatformReportRepository) Insert(ctx context.Context, report *reporting.PlatformRevenueReport) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if report == nil {
		return reporting.ErrNilReport
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO platform_revenue_reports (`+platformReportColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		report.ID,
		string(report.ReportType),
		report.PeriodStart,
		report.PeriodEnd,
		report.Currency,
		report.Status,
		report.GeneratedBy,
		report.GeneratedAt,
		report.GrossTransactionVolume,
		report.PlatformCommission,
		report.ProcessingFees,
		report.TotalRevenue,
		report.Refunds,
		report.NetRevenue,
		report.AverageTransactionValue,
		report.TakeRate,
		report.RevenueGrowth,
		report.PaidInvoiceCount,
		report.NewUsers,
		report.NewBrands,
		report.NewInfluencers,
		report.NewCampaigns,
		report.ActiveCampaigns,
	)
	if isUniqueViolation(err) {
		return reporting.ErrReportExists
	}
	return err
}

// GetByID loads a report by id, or nil when absent.
func (r *PlatformReportRepository) GetByID(ctx context.Context, id string) (*reporting.PlatformRevenueReport, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+platformReportColumns+`
FROM platform_revenue_reports
WHERE id = $1`, id)
	return r.scan(row)
}

func (r *PlatformReportRepository) scan(row rowScanner) (*reporting.PlatformRevenueReport, error) {
	var (
		report     reporting.PlatformRevenueReport
		reportType string
	)
	err := row.Scan(
		&report.ID,
		&reportType,
		&report.PeriodStart,
		&report.PeriodEnd,
		&report.Currency,
		&report.Status,
		&report.GeneratedBy,
		&report.GeneratedAt,
		&report.GrossTransactionVolume,
		&report.PlatformCommission,
		&report.ProcessingFees,
		&report.TotalRevenue,
		&report.Refunds,
		&report.NetRevenue,
		&report.AverageTransactionValue,
		&report.TakeRate,
		&report.RevenueGrowth,
		&report.PaidInvoiceCount,
		&report.NewUsers,
		&report.NewBrands,
		&report.NewInfluencers,
		&report.NewCampaigns,
		&report.ActiveCampaigns,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	report.ReportType = reporting.PeriodKind(reportType)
	report.PeriodStart = civil(report.PeriodStart, r.opts.location)
	report.PeriodEnd = civil(report.PeriodEnd, r.opts.location)
	report.GeneratedAt = report.GeneratedAt.UTC()
	return &report, nil
}
