package reporting

import "context"

// StatementRepository persists statements. Find and Get return nil, nil when absent.
// Insert returns ErrStatementExists when a final statement with the same key already exists.
type StatementRepository interface {
	FindFinal(ctx context.Context, key StatementKey) (*Statement, error)
	Insert(ctx context.Context, statement *Statement) error
	GetByID(ctx context.Context, id string) (*Statement, error)
	ListBySubject(ctx context.Context, subject Subject, limit int) ([]*Statement, error)
}

// CampaignReportRepository persists campaign P&L reports.
// Insert returns ErrReportExists when the key is taken.
type CampaignReportRepository interface {
	FindByKey(ctx context.Context, key CampaignReportKey) (*CampaignPLReport, error)
	Insert(ctx context.Context, report *CampaignPLReport) error
	GetByID(ctx context.Context, id string) (*CampaignPLReport, error)
}

// PlatformReportRepository persists platform revenue reports.
// Insert returns ErrReportExists when the key is taken.
type PlatformReportRepository interface {
	FindByKey(ctx context.Context, key PlatformReportKey) (*PlatformRevenueReport, error)
	Insert(ctx context.Context, report *PlatformRevenueReport) error
	GetByID(ctx context.Context, id string) (*PlatformRevenueReport, error)
}
