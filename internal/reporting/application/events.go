package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

// ReportGenerated is emitted once per freshly persisted report.
type ReportGenerated struct {
	ReportKind  reporting.ReportKind  `json:"report_kind"`
	ReportID    string                `json:"report_id"`
	SubjectID   string                `json:"subject_id"`
	SubjectKind reporting.SubjectKind `json:"subject_kind,omitempty"`
	PeriodKind  reporting.PeriodKind  `json:"period_kind"`
	PeriodStart time.Time             `json:"period_start"`
	PeriodEnd   time.Time             `json:"period_end"`
	OccurredAt  time.Time             `json:"occurred_at"`
}

func publish(ctx context.Context, o serviceOptions, event ReportGenerated) {
	if o.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = o.clock.Now().UTC()
	}
	if err := o.publisher.PublishReportGenerated(ctx, event); err != nil {
		metrics.IncEventPublish(metrics.ResultError)
		o.logger.WithError(err).WithFields(logrus.Fields{
			"report_kind": event.ReportKind,
			"report_id":   event.ReportID,
		}).Warn("publish report generated failed")
		return
	}
	metrics.IncEventPublish(metrics.ResultSuccess)
}
