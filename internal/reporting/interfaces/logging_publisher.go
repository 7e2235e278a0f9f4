package interfaces

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"creator-finance/internal/reporting/application"
)

// LoggingPublisher logs report generated events.
type LoggingPublisher struct {
	logger logrus.FieldLogger
}

// NewLoggingPublisher constructs a logging publisher.
func NewLoggingPublisher(logger logrus.FieldLogger) *LoggingPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoggingPublisher{logger: logger}
}

// PublishReportGenerated logs the event.
func (p *LoggingPublisher) PublishReportGenerated(_ context.Context, event application.ReportGenerated) error {
	if p == nil {
		return errors.New("report publisher: nil publisher")
	}
	p.logger.WithFields(logrus.Fields{
		"report_kind":  event.ReportKind,
		"report_id":    event.ReportID,
		"subject_id":   event.SubjectID,
		"subject_kind": event.SubjectKind,
		"period_start": event.PeriodStart.Format(dateLayout),
		"period_end":   event.PeriodEnd.Format(dateLayout),
	}).Info("report generated")
	return nil
}

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []application.ReportPublisher

// PublishReportGenerated publishes to all members.
func (m MultiPublisher) PublishReportGenerated(ctx context.Context, event application.ReportGenerated) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.PublishReportGenerated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
