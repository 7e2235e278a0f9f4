package reporting

import (
	"fmt"
	"strings"
	"time"
)

// PeriodKind is the granularity of a reporting period.
type PeriodKind string

const (
	PeriodDaily     PeriodKind = "daily"
	PeriodWeekly    PeriodKind = "weekly"
	PeriodMonthly   PeriodKind = "monthly"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodYearly    PeriodKind = "yearly"
	PeriodLifetime  PeriodKind = "lifetime"
)

const dateLayout = "2006-01-02"

// ParsePeriodKind normalizes a period kind string.
func ParsePeriodKind(value string) (PeriodKind, error) {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(value))) {
	case PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodQuarterly:
		return PeriodQuarterly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	case PeriodLifetime:
		return PeriodLifetime, nil
	default:
		return "", ErrInvalidPeriodKind
	}
}

// Period is a closed interval of civil dates. Start and End are midnights in the
// reporting location; End is the last day included.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// CivilDate truncates t to midnight of its own calendar date in loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ResolvePeriod builds the calendar period for (kind, year, index).
// index is the month (1-12) for monthly, quarter (1-4) for quarterly, ISO week for weekly,
// day of year for daily, and is ignored for yearly.
func ResolvePeriod(kind PeriodKind, year, index int, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	switch kind {
	case PeriodMonthly:
		if index < 1 || index > 12 {
			return Period{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, index)
		}
		start := time.Date(year, time.Month(index), 1, 0, 0, 0, 0, loc)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 1, -1)}, nil
	case PeriodQuarterly:
		if index < 1 || index > 4 {
			return Period{}, fmt.Errorf("%w: quarter %d", ErrInvalidPeriod, index)
		}
		start := time.Date(year, time.Month((index-1)*3+1), 1, 0, 0, 0, 0, loc)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 3, -1)}, nil
	case PeriodYearly:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return Period{Kind: kind, Start: start, End: start.AddDate(1, 0, -1)}, nil
	case PeriodWeekly:
		if index < 1 || index > isoWeeksInYear(year) {
			return Period{}, fmt.Errorf("%w: week %d", ErrInvalidPeriod, index)
		}
		start := isoWeekOneMonday(year, loc).AddDate(0, 0, (index-1)*7)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PeriodDaily:
		days := time.Date(year, time.December, 31, 0, 0, 0, 0, loc).YearDay()
		if index < 1 || index > days {
			return Period{}, fmt.Errorf("%w: day %d", ErrInvalidPeriod, index)
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).AddDate(0, 0, index-1)
		return Period{Kind: kind, Start: start, End: start}, nil
	default:
		return Period{}, ErrInvalidPeriodKind
	}
}

// PeriodContaining returns the calendar period of the given kind that contains day.
func PeriodContaining(kind PeriodKind, day time.Time, loc *time.Location) (Period, error) {
	day = CivilDate(day, loc)
	switch kind {
	case PeriodMonthly:
		return ResolvePeriod(kind, day.Year(), int(day.Month()), loc)
	case PeriodQuarterly:
		return ResolvePeriod(kind, day.Year(), (int(day.Month())-1)/3+1, loc)
	case PeriodYearly:
		return ResolvePeriod(kind, day.Year(), 0, loc)
	case PeriodWeekly:
		year, week := day.ISOWeek()
		return ResolvePeriod(kind, year, week, loc)
	case PeriodDaily:
		return ResolvePeriod(kind, day.Year(), day.YearDay(), loc)
	default:
		return Period{}, ErrInvalidPeriodKind
	}
}

// NewLifetimePeriod builds an arbitrary closed period from two dates.
func NewLifetimePeriod(start, end time.Time, loc *time.Location) (Period, error) {
	if start.IsZero() {
		return Period{}, fmt.Errorf("%w: empty start", ErrInvalidPeriod)
	}
	start = CivilDate(start, loc)
	if end.IsZero() {
		end = start
	}
	end = CivilDate(end, loc)
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod, end.Format(dateLayout), start.Format(dateLayout))
	}
	return Period{Kind: PeriodLifetime, Start: start, End: end}, nil
}

// EndExclusive returns midnight of the day after End.
func (p Period) EndExclusive() time.Time { return p.End.AddDate(0, 0, 1) }

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.EndExclusive())
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	days := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// Previous returns the period of the same kind immediately before p.
func (p Period) Previous() Period {
	switch p.Kind {
	case PeriodMonthly:
		start := p.Start.AddDate(0, -1, 0)
		return Period{Kind: p.Kind, Start: start, End: p.Start.AddDate(0, 0, -1)}
	case PeriodQuarterly:
		start := p.Start.AddDate(0, -3, 0)
		return Period{Kind: p.Kind, Start: start, End: p.Start.AddDate(0, 0, -1)}
	case PeriodYearly:
		start := p.Start.AddDate(-1, 0, 0)
		return Period{Kind: p.Kind, Start: start, End: p.Start.AddDate(0, 0, -1)}
	default:
		days := p.Days()
		return Period{Kind: p.Kind, Start: p.Start.AddDate(0, 0, -days), End: p.Start.AddDate(0, 0, -1)}
	}
}

// Pad widens the period by days on each side. Non-positive values return p unchanged.
func (p Period) Pad(days int) Period {
	if days <= 0 {
		return p
	}
	return Period{Kind: p.Kind, Start: p.Start.AddDate(0, 0, -days), End: p.End.AddDate(0, 0, days)}
}

// Months returns the monthly periods overlapping p, in order.
func (p Period) Months() []Period {
	loc := p.Start.Location()
	var months []Period
	cursor := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, loc)
	for !cursor.After(p.End) {
		months = append(months, Period{Kind: PeriodMonthly, Start: cursor, End: cursor.AddDate(0, 1, -1)})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// StartDate returns the start as YYYY-MM-DD.
func (p Period) StartDate() string { return p.Start.Format(dateLayout) }

// EndDate returns the end as YYYY-MM-DD.
func (p Period) EndDate() string { return p.End.Format(dateLayout) }

// Key is a stable string identity of the period.
func (p Period) Key() string {
	return string(p.Kind) + ":" + p.StartDate() + ":" + p.EndDate()
}

// Label renders a human readable period name.
func (p Period) Label() string {
	switch p.Kind {
	case PeriodMonthly:
		return p.Start.Format("January 2006")
	case PeriodQuarterly:
		return fmt.Sprintf("Q%d %d", (int(p.Start.Month())-1)/3+1, p.Start.Year())
	case PeriodYearly:
		return fmt.Sprintf("FY %d", p.Start.Year())
	case PeriodWeekly:
		year, week := p.Start.ISOWeek()
		return fmt.Sprintf("Week %d, %d", week, year)
	case PeriodDaily:
		return p.Start.Format("January 2, 2006")
	default:
		return p.StartDate() + " to " + p.EndDate()
	}
}

func isoWeekOneMonday(year int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset)
}

func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
