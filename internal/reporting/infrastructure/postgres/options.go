package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	reporting "creator-finance/internal/reporting/domain"
)

const uniqueViolation = "23505"

var errNilDB = errors.New("reporting repo: nil db")

type options struct {
	location *time.Location
}

// Option configures the Postgres readers and repositories.
type Option func(*options)

// WithLocation sets the location DATE columns are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{location: time.UTC}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// bounds is a period as instants for TIMESTAMPTZ columns and as civil days for DATE columns.
// zone converts a DATE to midnight of the report location when both kinds are coalesced.
type bounds struct {
	start, end       time.Time
	startDay, endDay string
	zone             string
}

func (o options) bounds(period reporting.Period) bounds {
	return bounds{
		start:    period.Start,
		end:      period.EndExclusive(),
		startDay: period.StartDate(),
		endDay:   period.EndExclusive().In(o.location).Format(time.DateOnly),
		zone:     o.location.String(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func civil(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return reporting.CivilDate(t, loc)
}

type rowScanner interface {
	Scan(dest ...any) error
}
