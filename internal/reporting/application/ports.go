package application

import (
	"context"
	"time"

	reporting "creator-finance/internal/reporting/domain"
)

// LedgerReader aggregates the ledger rows of one subject over a period.
type LedgerReader interface {
	StatementTotals(ctx context.Context, subject reporting.Subject, period reporting.Period) (reporting.LedgerTotals, error)
}

// CampaignLedgerReader aggregates campaign payments, commissions and payouts over a window.
type CampaignLedgerReader interface {
	CampaignTotals(ctx context.Context, campaign reporting.Campaign, window reporting.Period, matchUnattributed bool) (reporting.CampaignTotals, error)
}

// PlatformLedgerReader aggregates platform-wide revenue and growth counters for a period.
type PlatformLedgerReader interface {
	PlatformTotals(ctx context.Context, period reporting.Period) (reporting.PlatformTotals, error)
}

// EarningsReader lists paid, sent and draft invoices of an influencer in a period.
type EarningsReader interface {
	InfluencerInvoices(ctx context.Context, influencerID string, period reporting.Period) ([]reporting.EarningInvoice, error)
}

// SubjectDirectory checks that a brand or influencer exists with the expected role.
type SubjectDirectory interface {
	SubjectExists(ctx context.Context, subject reporting.Subject) (bool, error)
}

// CampaignDirectory loads campaigns. FindCampaign returns nil, nil when absent.
type CampaignDirectory interface {
	FindCampaign(ctx context.Context, campaignID string) (*reporting.Campaign, error)
}

// ReportPublisher emits report generated events.
type ReportPublisher interface {
	PublishReportGenerated(ctx context.Context, event ReportGenerated) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
