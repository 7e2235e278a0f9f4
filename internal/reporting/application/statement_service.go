package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// StatementService generates and serves memoized financial statements.
type StatementService struct {
	repo     reporting.StatementRepository
	ledger   LedgerReader
	subjects SubjectDirectory
	opts     serviceOptions
	group    singleflight.Group
}

// NewStatementService constructs a service.
func NewStatementService(repo reporting.StatementRepository, ledger LedgerReader, subjects SubjectDirectory, opts ...Option) (*StatementService, error) {
	if repo == nil {
		return nil, errors.New("statement service: nil repo")
	}
	if ledger == nil {
		return nil, errors.New("statement service: nil ledger reader")
	}
	if subjects == nil {
		return nil, errors.New("statement service: nil subject directory")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("statement service: %w", err)
	}
	return &StatementService{repo: repo, ledger: ledger, subjects: subjects, opts: o}, nil
}

// Location returns the location periods are resolved in.
func (s *StatementService) Location() *time.Location { return s.opts.location }

// GenerateMonthlyStatement returns the monthly statement of a subject, generating it on first request.
func (s *StatementService) GenerateMonthlyStatement(ctx context.Context, subjectID string, kind reporting.SubjectKind, year, month int) (*reporting.Statement, error) {
	subject, err := reporting.NewSubject(subjectID, kind)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, subject, reporting.PeriodMonthly, year, month)
}

// Generate returns the statement of subject for (periodKind, year, index), generating it on first
// request. index is the month for monthly and the quarter for quarterly; yearly ignores it.
func (s *StatementService) Generate(ctx context.Context, subject reporting.Subject, periodKind reporting.PeriodKind, year, index int) (*reporting.Statement, error) {
	switch periodKind {
	case reporting.PeriodMonthly, reporting.PeriodQuarterly, reporting.PeriodYearly:
	default:
		return nil, fmt.Errorf("%w: statements support monthly, quarterly and yearly, got %q", reporting.ErrInvalidPeriodKind, periodKind)
	}
	period, err := reporting.ResolvePeriod(periodKind, year, index, s.opts.location)
	if err != nil {
		return nil, err
	}
	return s.GenerateForPeriod(ctx, subject, period)
}

// GenerateForPeriod returns the statement of subject for an already resolved period.
func (s *StatementService) GenerateForPeriod(ctx context.Context, subject reporting.Subject, period reporting.Period) (*reporting.Statement, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(string(reporting.KindStatement), result, time.Since(start))
	}()

	subject, err := reporting.NewSubject(subject.ID, subject.Kind)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.ensureSubject(ctx, subject); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	key := reporting.StatementKey{Subject: subject, Period: period}
	value, err := shareWork(ctx, &s.group, key.String(), func(ctx context.Context) (any, error) {
		return s.findOrCreate(ctx, key)
	})
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return value.(*reporting.Statement).Clone(), nil
}

func (s *StatementService) ensureSubject(ctx context.Context, subject reporting.Subject) error {
	if subject.IsPlatform() {
		return nil
	}
	ok, err := s.subjects.SubjectExists(ctx, subject)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", reporting.ErrSubjectNotFound, subject)
	}
	return nil
}

func (s *StatementService) findOrCreate(ctx context.Context, key reporting.StatementKey) (*reporting.Statement, error) {
	kind := string(reporting.KindStatement)
	existing, err := s.repo.FindFinal(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.IncReportCache(kind, metrics.CacheHit)
		return existing, nil
	}
	metrics.IncReportCache(kind, metrics.CacheMiss)

	totals, err := s.ledger.StatementTotals(ctx, key.Subject, key.Period)
	if err != nil {
		return nil, err
	}
	stmt := &reporting.Statement{
		ID:            s.opts.newID(),
		SubjectID:     key.Subject.ID,
		SubjectKind:   key.Subject.Kind,
		StatementType: key.Period.Kind,
		PeriodStart:   key.Period.Start,
		PeriodEnd:     key.Period.End,
		Currency:      s.opts.policy.Currency,
		Status:        reporting.StatusFinal,
		GeneratedBy:   reporting.GeneratedBySystem,
		GeneratedAt:   s.opts.clock.Now().UTC(),
		Metrics:       reporting.CalculateStatementMetrics(s.opts.policy, totals),
	}

	if err := s.repo.Insert(ctx, stmt); err != nil {
		if !errors.Is(err, reporting.ErrStatementExists) {
			return nil, err
		}
		metrics.IncReportCache(kind, metrics.CacheRace)
		winner, err := s.repo.FindFinal(ctx, key)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, fmt.Errorf("statement service: conflicting statement for %s not readable", key)
		}
		return winner, nil
	}

	s.opts.logger.WithFields(logrus.Fields{
		"statement_id": stmt.ID,
		"subject":      key.Subject.String(),
		"period":       key.Period.Key(),
	}).Info("statement generated")
	publish(ctx, s.opts, ReportGenerated{
		ReportKind:  reporting.KindStatement,
		ReportID:    stmt.ID,
		SubjectID:   stmt.SubjectID,
		SubjectKind: stmt.SubjectKind,
		PeriodKind:  stmt.StatementType,
		PeriodStart: stmt.PeriodStart,
		PeriodEnd:   stmt.PeriodEnd,
	})
	return stmt, nil
}

// Get returns a persisted statement.
func (s *StatementService) Get(ctx context.Context, id string) (*reporting.Statement, error) {
	if id == "" {
		return nil, reporting.ErrReportNotFound
	}
	stmt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, reporting.ErrReportNotFound
	}
	return stmt, nil
}

// List returns the newest statements of a subject.
func (s *StatementService) List(ctx context.Context, subject reporting.Subject, limit int) ([]*reporting.Statement, error) {
	subject, err := reporting.NewSubject(subject.ID, subject.Kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListBySubject(ctx, subject, limit)
}
