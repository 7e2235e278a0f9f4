package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

// EarningsService builds influencer earnings summaries on every call.
type EarningsService struct {
	reader   EarningsReader
	subjects SubjectDirectory
	opts     serviceOptions
}

// NewEarningsService constructs a service.
func NewEarningsService(reader EarningsReader, subjects SubjectDirectory, opts ...Option) (*EarningsService, error) {
	if reader == nil {
		return nil, errors.New("earnings service: nil earnings reader")
	}
	if subjects == nil {
		return nil, errors.New("earnings service: nil subject directory")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("earnings service: %w", err)
	}
	return &EarningsService{reader: reader, subjects: subjects, opts: o}, nil
}

// GenerateInfluencerEarningsSummary summarizes an influencer's invoices for a year, or for one
// month of it when month is non-zero.
func (s *EarningsService) GenerateInfluencerEarningsSummary(ctx context.Context, influencerID string, year, month int) (*reporting.EarningsSummary, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveEarningsSummary(result, time.Since(start))
	}()

	subject, err := reporting.NewSubject(influencerID, reporting.SubjectInfluencer)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	var period reporting.Period
	if month == 0 {
		period, err = reporting.ResolvePeriod(reporting.PeriodYearly, year, 0, s.opts.location)
	} else {
		period, err = reporting.ResolvePeriod(reporting.PeriodMonthly, year, month, s.opts.location)
	}
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	ok, err := s.subjects.SubjectExists(ctx, subject)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if !ok {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: %s", reporting.ErrSubjectNotFound, subject)
	}

	invoices, err := s.reader.InfluencerInvoices(ctx, subject.ID, period)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return reporting.BuildEarningsSummary(subject.ID, year, month, period, s.opts.policy.Currency, invoices, s.opts.clock.Now().UTC()), nil
}
