package postgres

import (
	"context"
	"database/sql"
	"fmt"

	reporting "creator-finance/internal/reporting/domain"
)

// LedgerReader aggregates the platform ledger tables for the report generators.
// TIMESTAMPTZ columns are bounded by [start, end+1 day) instants in the configured location;
// DATE columns are bounded by the civil days of the same range.
type LedgerReader struct {
	db   *sql.DB
	opts options
}

// NewLedgerReader constructs a reader.
func NewLedgerReader(db *sql.DB, opts ...Option) *LedgerReader {
	return &LedgerReader{db: db, opts: buildOptions(opts)}
}

// StatementTotals maps the subject's role onto revenue, costs and open balances.
func (r *LedgerReader) StatementTotals(ctx context.Context, subject reporting.Subject, period reporting.Period) (reporting.LedgerTotals, error) {
	if r == nil || r.db == nil {
		return reporting.LedgerTotals{}, errNilDB
	}
	if subject.IsPlatform() {
		return r.platformStatementTotals(ctx, period)
	}
	b := r.opts.bounds(period)

	var (
		totals     reporting.LedgerTotals
		earned     reporting.Amount
		spent      reporting.Amount
		receivable reporting.Amount
		payable    reporting.Amount
		campaigns  int
	)
	err := r.db.QueryRowContext(ctx, `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE influencer_id = $1 AND status = 'paid'
		AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $6::text) >= $2::timestamptz
		AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $6::text) < $3::timestamptz), 0),
	COALESCE(SUM(amount) FILTER (WHERE brand_id = $1 AND status = 'paid'
		AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $6::text) >= $2::timestamptz
		AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $6::text) < $3::timestamptz), 0),
	COALESCE(SUM(amount) FILTER (WHERE influencer_id = $1 AND status = 'sent'
		AND issue_date >= $4::date AND issue_date < $5::date), 0),
	COALESCE(SUM(amount) FILTER (WHERE brand_id = $1 AND status = 'sent'
		AND issue_date >= $4::date AND issue_date < $5::date), 0),
	COUNT(*) FILTER (WHERE issue_date >= $4::date AND issue_date < $5::date),
	COUNT(DISTINCT campaign_id) FILTER (WHERE influencer_id = $1
		AND issue_date >= $4::date AND issue_date < $5::date)
FROM invoices
WHERE influencer_id = $1 OR brand_id = $1`, subject.ID, b.start, b.end, b.startDay, b.endDay, b.zone).Scan(
		&earned, &spent, &receivable, &payable, &totals.InvoiceCount, &campaigns,
	)
	if err != nil {
		return reporting.LedgerTotals{}, fmt.Errorf("statement invoices: %w", err)
	}

	var fees, expenses reporting.Amount
	err = r.db.QueryRowContext(ctx, `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE type IN ('platform_commission', 'processing_fee')), 0),
	COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
	COUNT(*)
FROM financial_transactions
WHERE user_id = $1 AND status = 'completed'
	AND created_at >= $2::timestamptz AND created_at < $3::timestamptz`, subject.ID, b.start, b.end).Scan(
		&fees, &expenses, &totals.TransactionCount,
	)
	if err != nil {
		return reporting.LedgerTotals{}, fmt.Errorf("statement transactions: %w", err)
	}

	totals.Revenue = earned
	totals.DirectCosts = fees
	totals.OperatingExpense = expenses
	switch subject.Kind {
	case reporting.SubjectInfluencer:
		totals.Receivables = receivable
		totals.CampaignCount = campaigns
	case reporting.SubjectBrand:
		totals.DirectCosts = totals.DirectCosts.Add(spent)
		totals.Payables = payable
		count, err := r.overlappingCampaigns(ctx, subject.ID, period)
		if err != nil {
			return reporting.LedgerTotals{}, err
		}
		totals.CampaignCount = count
	}
	return totals, nil
}

func (r *LedgerReader) platformStatementTotals(ctx context.Context, period reporting.Period) (reporting.LedgerTotals, error) {
	b := r.opts.bounds(period)
	var totals reporting.LedgerTotals
	err := r.db.QueryRowContext(ctx, `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE type IN ('platform_commission', 'processing_fee')), 0),
	COALESCE(SUM(amount) FILTER (WHERE type = 'refund'), 0),
	COALESCE(SUM(amount) FILTER (WHERE type = 'expense' AND user_id IS NULL), 0),
	COUNT(*)
FROM financial_transactions
WHERE status = 'completed'
	AND created_at >= $1::timestamptz AND created_at < $2::timestamptz`, b.start, b.end).Scan(
		&totals.Revenue, &totals.DirectCosts, &totals.OperatingExpense, &totals.TransactionCount,
	)
	if err != nil {
		return reporting.LedgerTotals{}, fmt.Errorf("platform transactions: %w", err)
	}
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM invoices
WHERE issue_date >= $1::date AND issue_date < $2::date`, b.startDay, b.endDay).Scan(&totals.InvoiceCount)
	if err != nil {
		return reporting.LedgerTotals{}, fmt.Errorf("platform invoices: %w", err)
	}
	count, err := r.overlappingCampaigns(ctx, "", period)
	if err != nil {
		return reporting.LedgerTotals{}, err
	}
	totals.CampaignCount = count
	return totals, nil
}

// overlappingCampaigns counts campaigns running during period; an empty brandID counts all brands.
func (r *LedgerReader) overlappingCampaigns(ctx context.Context, brandID string, period reporting.Period) (int, error) {
	b := r.opts.bounds(period)
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM brand_campaigns
WHERE ($1::text = '' OR brand_id = $1)
	AND start_date IS NOT NULL
	AND start_date < $3::date
	AND (end_date IS NULL OR end_date >= $2::date)`, brandID, b.startDay, b.endDay).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("campaign count: %w", err)
	}
	return count, nil
}

// CampaignTotals aggregates payments, commissions and payouts of a campaign inside window.
func (r *LedgerReader) CampaignTotals(ctx context.Context, campaign reporting.Campaign, window reporting.Period, matchUnattributed bool) (reporting.CampaignTotals, error) {
	if r == nil || r.db == nil {
		return reporting.CampaignTotals{}, errNilDB
	}
	b := r.opts.bounds(window)
	var totals reporting.CampaignTotals

	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0), COUNT(*)
FROM campaign_payments
WHERE status = 'completed'
	AND COALESCE(paid_at, created_at) >= $3::timestamptz
	AND COALESCE(paid_at, created_at) < $4::timestamptz
	AND (campaign_id = $1 OR ($5::boolean AND campaign_id IS NULL AND brand_id = $2))`,
		campaign.ID, campaign.BrandID, b.start, b.end, matchUnattributed,
	).Scan(&totals.BrandPayments, &totals.PaymentCount)
	if err != nil {
		return reporting.CampaignTotals{}, fmt.Errorf("campaign payments: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0)
FROM financial_transactions
WHERE campaign_id = $1 AND type = 'platform_commission' AND status = 'completed'
	AND created_at >= $2::timestamptz AND created_at < $3::timestamptz`, campaign.ID, b.start, b.end).Scan(&totals.PlatformCommission)
	if err != nil {
		return reporting.CampaignTotals{}, fmt.Errorf("campaign commission: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0), COUNT(*), COUNT(DISTINCT influencer_id)
FROM invoices
WHERE campaign_id = $1 AND status = 'paid'
	AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $4::text) >= $2::timestamptz
	AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $4::text) < $3::timestamptz`, campaign.ID, b.start, b.end, b.zone).Scan(
		&totals.InfluencerPayouts, &totals.InvoiceCount, &totals.InfluencerCount,
	)
	if err != nil {
		return reporting.CampaignTotals{}, fmt.Errorf("campaign payouts: %w", err)
	}
	return totals, nil
}

// PlatformTotals aggregates platform revenue and growth counters for a period.
func (r *LedgerReader) PlatformTotals(ctx context.Context, period reporting.Period) (reporting.PlatformTotals, error) {
	if r == nil || r.db == nil {
		return reporting.PlatformTotals{}, errNilDB
	}
	b := r.opts.bounds(period)
	var totals reporting.PlatformTotals

	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0), COUNT(*)
FROM invoices
WHERE status = 'paid'
	AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $3::text) >= $1::timestamptz
	AND COALESCE(paid_at, issue_date::timestamp AT TIME ZONE $3::text) < $2::timestamptz`, b.start, b.end, b.zone).Scan(
		&totals.GrossTransactionVolume, &totals.PaidInvoiceCount,
	)
	if err != nil {
		return reporting.PlatformTotals{}, fmt.Errorf("platform volume: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE type = 'platform_commission'), 0),
	COALESCE(SUM(amount) FILTER (WHERE type = 'processing_fee'), 0),
	COALESCE(SUM(amount) FILTER (WHERE type = 'refund'), 0)
FROM financial_transactions
WHERE status = 'completed'
	AND created_at >= $1::timestamptz AND created_at < $2::timestamptz`, b.start, b.end).Scan(
		&totals.PlatformCommission, &totals.ProcessingFees, &totals.Refunds,
	)
	if err != nil {
		return reporting.PlatformTotals{}, fmt.Errorf("platform fees: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE role = 'brand'),
	COUNT(*) FILTER (WHERE role = 'influencer')
FROM users
WHERE created_at >= $1::timestamptz AND created_at < $2::timestamptz`, b.start, b.end).Scan(
		&totals.NewUsers, &totals.NewBrands, &totals.NewInfluencers,
	)
	if err != nil {
		return reporting.PlatformTotals{}, fmt.Errorf("platform users: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT
	COUNT(*) FILTER (WHERE created_at >= $1::timestamptz AND created_at < $2::timestamptz),
	COUNT(*) FILTER (WHERE status = 'active' AND start_date IS NOT NULL
		AND start_date < $4::date AND (end_date IS NULL OR end_date >= $3::date))
FROM brand_campaigns`, b.start, b.end, b.startDay, b.endDay).Scan(&totals.NewCampaigns, &totals.ActiveCampaigns)
	if err != nil {
		return reporting.PlatformTotals{}, fmt.Errorf("platform campaigns: %w", err)
	}
	return totals, nil
}

// InfluencerInvoices lists paid invoices by payment date and open invoices by issue date.
func (r *LedgerReader) InfluencerInvoices(ctx context.Context, influencerID string, period reporting.Period) ([]reporting.EarningInvoice, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	b := r.opts.bounds(period)
	rows, err := r.db.QueryContext(ctx, `
SELECT i.id, COALESCE(i.campaign_id, ''), COALESCE(c.title, ''), COALESCE(c.category, ''),
	i.amount, i.status, i.issue_date, i.paid_at
FROM invoices i
LEFT JOIN brand_campaigns c ON c.id = i.campaign_id
WHERE i.influencer_id = $1
	AND (
		(i.status = 'paid'
			AND COALESCE(i.paid_at, i.issue_date::timestamp AT TIME ZONE $6::text) >= $2::timestamptz
			AND COALESCE(i.paid_at, i.issue_date::timestamp AT TIME ZONE $6::text) < $3::timestamptz)
		OR (i.status IN ('sent', 'draft')
			AND i.issue_date >= $4::date AND i.issue_date < $5::date)
	)
ORDER BY i.issue_date, i.id`, influencerID, b.start, b.end, b.startDay, b.endDay, b.zone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reporting.EarningInvoice
	for rows.Next() {
		var (
			inv    reporting.EarningInvoice
			issued sql.NullTime
			paidAt sql.NullTime
		)
		if err := rows.Scan(
			&inv.InvoiceID,
			&inv.CampaignID,
			&inv.CampaignTitle,
			&inv.Category,
			&inv.Amount,
			&inv.Status,
			&issued,
			&paidAt,
		); err != nil {
			return nil, err
		}
		if issued.Valid {
			inv.IssueDate = civil(issued.Time, r.opts.location)
		}
		if paidAt.Valid {
			inv.PaidAt = paidAt.Time.In(r.opts.location)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
