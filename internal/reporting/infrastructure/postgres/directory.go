package postgres

import (
	"context"
	"database/sql"
	"errors"

	reporting "creator-finance/internal/reporting/domain"
)

// Directory resolves subjects and campaigns from the platform tables.
type Directory struct {
	db   *sql.DB
	opts options
}

// NewDirectory constructs a directory.
func NewDirectory(db *sql.DB, opts ...Option) *Directory {
	return &Directory{db: db, opts: buildOptions(opts)}
}

// SubjectExists reports whether a user exists with the subject's role.
func (d *Directory) SubjectExists(ctx context.Context, subject reporting.Subject) (bool, error) {
	if subject.IsPlatform() {
		return true, nil
	}
	if d == nil || d.db == nil {
		return false, errNilDB
	}
	var exists bool
	err := d.db.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = $2)`, subject.ID, string(subject.Kind)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// FindCampaign loads a campaign, or nil when absent.
func (d *Directory) FindCampaign(ctx context.Context, campaignID string) (*reporting.Campaign, error) {
	if d == nil || d.db == nil {
		return nil, errNilDB
	}
	var (
		campaign  reporting.Campaign
		startDate sql.NullTime
		endDate   sql.NullTime
	)
	err := d.db.QueryRowContext(ctx, `
SELECT id, brand_id, title, category, status, budget, start_date, end_date
FROM brand_campaigns
WHERE id = $1`, campaignID).Scan(
		&campaign.ID,
		&campaign.BrandID,
		&campaign.Title,
		&campaign.Category,
		&campaign.Status,
		&campaign.Budget,
		&startDate,
		&endDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		campaign.StartDate = civil(startDate.Time, d.opts.location)
	}
	if endDate.Valid {
		campaign.EndDate = civil(endDate.Time, d.opts.location)
	}
	return &campaign, nil
}
