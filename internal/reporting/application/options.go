package application

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	reporting "creator-finance/internal/reporting/domain"
)

type serviceOptions struct {
	policy    reporting.Policy
	location  *time.Location
	publisher ReportPublisher
	clock     Clock
	logger    logrus.FieldLogger
	newID     func() string
}

// Option configures a reporting service.
type Option func(*serviceOptions)

// WithPolicy sets the calculation policy.
func WithPolicy(policy reporting.Policy) Option {
	return func(o *serviceOptions) {
		o.policy = policy
	}
}

// WithLocation sets the location civil dates are built in.
func WithLocation(loc *time.Location) Option {
	return func(o *serviceOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithPublisher sets the report generated publisher.
func WithPublisher(publisher ReportPublisher) Option {
	return func(o *serviceOptions) {
		o.publisher = publisher
	}
}

// WithClock overrides the clock.
func WithClock(clock Clock) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIDGenerator overrides report id generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *serviceOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

func buildOptions(opts []Option) (serviceOptions, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := serviceOptions{
		policy:   reporting.DefaultPolicy(),
		location: time.UTC,
		clock:    SystemClock{},
		logger:   discard,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.policy.Validate(); err != nil {
		return serviceOptions{}, err
	}
	return o, nil
}
