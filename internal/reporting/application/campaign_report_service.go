package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

// CampaignReportService generates memoized campaign P&L reports.
type CampaignReportService struct {
	repo      reporting.CampaignReportRepository
	ledger    CampaignLedgerReader
	campaigns CampaignDirectory
	opts      serviceOptions
	group     singleflight.Group
}

// NewCampaignReportService constructs a service.
func NewCampaignReportService(repo reporting.CampaignReportRepository, ledger CampaignLedgerReader, campaigns CampaignDirectory, opts ...Option) (*CampaignReportService, error) {
	if repo == nil {
		return nil, errors.New("campaign report service: nil repo")
	}
	if ledger == nil {
		return nil, errors.New("campaign report service: nil ledger reader")
	}
	if campaigns == nil {
		return nil, errors.New("campaign report service: nil campaign directory")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("campaign report service: %w", err)
	}
	return &CampaignReportService{repo: repo, ledger: ledger, campaigns: campaigns, opts: o}, nil
}

// GenerateCampaignPLReport returns the P&L report of a brand's campaign, generating it on first
// request. Lifetime covers the campaign dates; monthly and quarterly cover the calendar period
// containing the campaign end date.
func (s *CampaignReportService) GenerateCampaignPLReport(ctx context.Context, campaignID, brandID string, periodKind reporting.PeriodKind) (*reporting.CampaignPLReport, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(string(reporting.KindCampaignPL), result, time.Since(start))
	}()

	campaign, err := s.lookup(ctx, campaignID, brandID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	period, err := s.reportPeriod(campaign, periodKind)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	key := reporting.CampaignReportKey{CampaignID: campaign.ID, Period: period}
	value, err := shareWork(ctx, &s.group, key.String(), func(ctx context.Context) (any, error) {
		return s.findOrCreate(ctx, campaign, key)
	})
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return value.(*reporting.CampaignPLReport).Clone(), nil
}

func (s *CampaignReportService) lookup(ctx context.Context, campaignID, brandID string) (*reporting.Campaign, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, fmt.Errorf("%w: empty campaign id", reporting.ErrCampaignNotFound)
	}
	campaign, err := s.campaigns.FindCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil || campaign.BrandID != strings.TrimSpace(brandID) {
		return nil, fmt.Errorf("%w: %s", reporting.ErrCampaignNotFound, campaignID)
	}
	return campaign, nil
}

func (s *CampaignReportService) reportPeriod(campaign *reporting.Campaign, kind reporting.PeriodKind) (reporting.Period, error) {
	switch kind {
	case reporting.PeriodLifetime:
		return reporting.NewLifetimePeriod(campaign.StartDate, campaign.EndDate, s.opts.location)
	case reporting.PeriodMonthly, reporting.PeriodQuarterly:
		anchor := campaign.EndDate
		if anchor.IsZero() {
			anchor = campaign.StartDate
		}
		if anchor.IsZero() {
			anchor = s.opts.clock.Now().In(s.opts.location)
		}
		return reporting.PeriodContaining(kind, anchor, s.opts.location)
	default:
		return reporting.Period{}, fmt.Errorf("%w: campaign reports support lifetime, monthly and quarterly, got %q", reporting.ErrInvalidPeriodKind, kind)
	}
}

func (s *CampaignReportService) findOrCreate(ctx context.Context, campaign *reporting.Campaign, key reporting.CampaignReportKey) (*reporting.CampaignPLReport, error) {
	kind := string(reporting.KindCampaignPL)
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.IncReportCache(kind, metrics.CacheHit)
		return existing, nil
	}
	metrics.IncReportCache(kind, metrics.CacheMiss)

	window := key.Period.Pad(s.opts.policy.CampaignWindowPaddingDays)
	totals, err := s.ledger.CampaignTotals(ctx, *campaign, window, s.opts.policy.CampaignMatchUnattributed)
	if err != nil {
		return nil, err
	}
	figures := reporting.CalculateCampaignPL(campaign.Budget, totals)
	report := &reporting.CampaignPLReport{
		ID:                 s.opts.newID(),
		CampaignID:         campaign.ID,
		BrandID:            campaign.BrandID,
		CampaignTitle:      campaign.Title,
		ReportPeriod:       key.Period.Kind,
		PeriodStart:        key.Period.Start,
		PeriodEnd:          key.Period.End,
		WindowStart:        window.Start,
		WindowEnd:          window.End,
		Currency:           s.opts.policy.Currency,
		Status:             reporting.StatusFinal,
		GeneratedBy:        reporting.GeneratedBySystem,
		GeneratedAt:        s.opts.clock.Now().UTC(),
		Budget:             campaign.Budget,
		TotalRevenue:       figures.TotalRevenue,
		InfluencerPayouts:  figures.InfluencerPayouts,
		PlatformCommission: figures.PlatformCommission,
		TotalCosts:         figures.TotalCosts,
		NetProfit:          figures.NetProfit,
		ProfitMargin:       figures.ProfitMargin,
		ROI:                figures.ROI,
		BudgetUtilization:  figures.BudgetUtilization,
		PaymentCount:       totals.PaymentCount,
		InvoiceCount:       totals.InvoiceCount,
		InfluencerCount:    totals.InfluencerCount,
	}

	if err := s.repo.Insert(ctx, report); err != nil {
		if !errors.Is(err, reporting.ErrReportExists) {
			return nil, err
		}
		metrics.IncReportCache(kind, metrics.CacheRace)
		winner, err := s.repo.FindByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, fmt.Errorf("campaign report service: conflicting report for %s not readable", key)
		}
		return winner, nil
	}

	s.opts.logger.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"campaign_id": report.CampaignID,
		"period":      key.Period.Key(),
	}).Info("campaign report generated")
	publish(ctx, s.opts, ReportGenerated{
		ReportKind:  reporting.KindCampaignPL,
		ReportID:    report.ID,
		SubjectID:   report.CampaignID,
		PeriodKind:  report.ReportPeriod,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
	})
	return report, nil
}

// Get returns a persisted campaign report.
func (s *CampaignReportService) Get(ctx context.Context, id string) (*reporting.CampaignPLReport, error) {
	if id == "" {
		return nil, reporting.ErrReportNotFound
	}
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, reporting.ErrReportNotFound
	}
	return report, nil
}
