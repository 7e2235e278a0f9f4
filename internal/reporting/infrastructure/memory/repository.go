package memory

import (
	"context"
	"sort"
	"sync"

	reporting "creator-finance/internal/reporting/domain"
)

// StatementRepository is an in-memory statement store.
type StatementRepository struct {
	mu    sync.RWMutex
	final map[string]*reporting.Statement
	byID  map[string]*reporting.Statement
}

// NewStatementRepository constructs a repository.
func NewStatementRepository() *StatementRepository {
	return &StatementRepository{
		final: make(map[string]*reporting.Statement),
		byID:  make(map[string]*reporting.Statement),
	}
}

// FindFinal loads the final statement of key.
func (r *StatementRepository) FindFinal(_ context.Context, key reporting.StatementKey) (*reporting.Statement, error) {
	r.mu.RLock()
	stmt := r.final[key.String()]
	r.mu.RUnlock()
	return stmt.Clone(), nil
}

// Insert stores a statement, rejecting a second final statement for the same key.
func (r *StatementRepository) Insert(_ context.Context, statement *reporting.Statement) error {
	if statement == nil {
		return reporting.ErrNilReport
	}
	copy := statement.Clone()
	key := copy.Key().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if copy.Status == reporting.StatusFinal {
		if _, ok := r.final[key]; ok {
			return reporting.ErrStatementExists
		}
		r.final[key] = copy
	}
	r.byID[copy.ID] = copy
	return nil
}

// GetByID loads a statement by id.
func (r *StatementRepository) GetByID(_ context.Context, id string) (*reporting.Statement, error) {
	r.mu.RLock()
	stmt := r.byID[id]
	r.mu.RUnlock()
	return stmt.Clone(), nil
}

// ListBySubject returns the newest statements of a subject by period start.
func (r *StatementRepository) ListBySubject(_ context.Context, subject reporting.Subject, limit int) ([]*reporting.Statement, error) {
	r.mu.RLock()
	var out []*reporting.Statement
	for _, stmt := range r.byID {
		if stmt.Subject() == subject {
			out = append(out, stmt.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodStart.Equal(out[j].PeriodStart) {
			return out[i].PeriodStart.After(out[j].PeriodStart)
		}
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of stored statements.
func (r *StatementRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// CampaignReportRepository is an in-memory campaign report store.
type CampaignReportRepository struct {
	mu    sync.RWMutex
	byKey map[string]*reporting.CampaignPLReport
	byID  map[string]*reporting.CampaignPLReport
}

// NewCampaignReportRepository constructs a repository.
func NewCampaignReportRepository() *CampaignReportRepository {
	return &CampaignReportRepository{
		byKey: make(map[string]*reporting.CampaignPLReport),
		byID:  make(map[string]*reporting.CampaignPLReport),
	}
}

// FindByKey loads a report by identity.
func (r *CampaignReportRepository) FindByKey(_ context.Context, key reporting.CampaignReportKey) (*reporting.CampaignPLReport, error) {
	r.mu.RLock()
	report := r.byKey[key.String()]
	r.mu.RUnlock()
	return report.Clone(), nil
}

// Insert stores a report, rejecting duplicates.
func (r *CampaignReportRepository) Insert(_ context.Context, report *reporting.CampaignPLReport) error {
	if report == nil {
		return reporting.ErrNilReport
	}
	copy := report.Clone()
	key := copy.Key().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[key]; ok {
		return reporting.ErrReportExists
	}
	r.byKey[key] = copy
	r.byID[copy.ID] = copy
	return nil
}

// GetByID loads a report by id.
func (r *CampaignReportRepository) GetByID(_ context.Context, id string) (*reporting.CampaignPLReport, error) {
	r.mu.RLock()
	report := r.byID[id]
	r.mu.RUnlock()
	return report.Clone(), nil
}

// Count returns the number of stored reports.
func (r *CampaignReportRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// PlatformReportRepository is an in-memory platform report store.
type PlatformReportRepository struct {
	mu    sync.RWMutex
	byKey map[string]*reporting.PlatformRevenueReport
	byID  map[string]*reporting.PlatformRevenueReport
}

// NewPlatformReportRepository constructs a repository.
func NewPlatformReportRepository() *PlatformReportRepository {
	return &PlatformReportRepository{
		byKey: make(map[string]*reporting.PlatformRevenueReport),
		byID:  make(map[string]*reporting.PlatformRevenueReport),
	}
}

// FindByKey loads a report by identity.
func (r *PlatformReportRepository) FindByKey(_ context.Context, key reporting.PlatformReportKey) (*reporting.PlatformRevenueReport, error) {
	r.mu.RLock()
	report := r.byKey[key.String()]
	r.mu.RUnlock()
	return report.Clone(), nil
}

// Insert stores a report, rejecting duplicates.
func (r *PlatformReportRepository) Insert(_ context.Context, report *reporting.PlatformRevenueReport) error {
	if report == nil {
		return reporting.ErrNilReport
	}
	copy := report.Clone()
	key := copy.Key().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[key]; ok {
		return reporting.ErrReportExists
	}
	r.byKey[key] = copy
	r.byID[copy.ID] = copy
	return nil
}

// GetByID loads a report by id.
func (r *PlatformReportRepository) GetByID(_ context.Context, id string) (*reporting.PlatformRevenueReport, error) {
	r.mu.RLock()
	report := r.byID[id]
	r.mu.RUnlock()
	return report.Clone(), nil
}

// Count returns the number of stored reports.
func (r *PlatformReportRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
