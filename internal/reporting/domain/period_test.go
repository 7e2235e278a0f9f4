package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	cases := []struct {
		kind  PeriodKind
		year  int
		index int
		start string
		end   string
	}{
		{PeriodMonthly, 2024, 2, "2024-02-01", "2024-02-29"},
		{PeriodMonthly, 2025, 12, "2025-12-01", "2025-12-31"},
		{PeriodQuarterly, 2025, 1, "2025-01-01", "2025-03-31"},
		{PeriodQuarterly, 2025, 4, "2025-10-01", "2025-12-31"},
		{PeriodYearly, 2025, 0, "2025-01-01", "2025-12-31"},
		{PeriodWeekly, 2025, 1, "2024-12-30", "2025-01-05"},
		{PeriodWeekly, 2020, 53, "2020-12-28", "2021-01-03"},
		{PeriodDaily, 2024, 60, "2024-02-29", "2024-02-29"},
	}
	for _, tc := range cases {
		period, err := ResolvePeriod(tc.kind, tc.year, tc.index, time.UTC)
		require.NoError(t, err, "%s %d/%d", tc.kind, tc.year, tc.index)
		assert.Equal(t, tc.start, period.StartDate(), "%s %d/%d", tc.kind, tc.year, tc.index)
		assert.Equal(t, tc.end, period.EndDate(), "%s %d/%d", tc.kind, tc.year, tc.index)
	}
}

func TestResolvePeriodRejectsBadIndex(t *testing.T) {
	for _, tc := range []struct {
		kind  PeriodKind
		index int
	}{
		{PeriodMonthly, 0},
		{PeriodMonthly, 13},
		{PeriodQuarterly, 5},
		{PeriodWeekly, 53},
		{PeriodDaily, 366},
	} {
		_, err := ResolvePeriod(tc.kind, 2025, tc.index, time.UTC)
		assert.True(t, errors.Is(err, ErrInvalidPeriod), "%s %d: %v", tc.kind, tc.index, err)
	}
	_, err := ResolvePeriod(PeriodLifetime, 2025, 1, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidPeriodKind)
}

func TestPeriodPreviousAndMonths(t *testing.T) {
	jan, err := ResolvePeriod(PeriodMonthly, 2025, 1, time.UTC)
	require.NoError(t, err)
	prev := jan.Previous()
	assert.Equal(t, "2024-12-01", prev.StartDate())
	assert.Equal(t, "2024-12-31", prev.EndDate())

	q1, err := ResolvePeriod(PeriodQuarterly, 2025, 1, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-01", q1.Previous().StartDate())
	assert.Len(t, q1.Months(), 3)

	year, err := ResolvePeriod(PeriodYearly, 2025, 0, time.UTC)
	require.NoError(t, err)
	months := year.Months()
	require.Len(t, months, 12)
	assert.Equal(t, "2025-03-01", months[2].StartDate())
	assert.Equal(t, "2024-01-01", year.Previous().StartDate())

	week, err := ResolvePeriod(PeriodWeekly, 2025, 2, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", week.Previous().StartDate())
}

func TestPeriodContainsIsInclusiveOfLastDay(t *testing.T) {
	feb, err := ResolvePeriod(PeriodMonthly, 2025, 2, time.UTC)
	require.NoError(t, err)
	assert.True(t, feb.Contains(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)))
	assert.False(t, feb.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, feb.Contains(time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)))
}

func TestPeriodContainingAndPad(t *testing.T) {
	day := time.Date(2025, 5, 17, 15, 0, 0, 0, time.UTC)
	quarter, err := PeriodContaining(PeriodQuarterly, day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", quarter.StartDate())
	assert.Equal(t, "Q2 2025", quarter.Label())

	padded := quarter.Pad(7)
	assert.Equal(t, "2025-03-25", padded.StartDate())
	assert.Equal(t, "2025-07-07", padded.EndDate())
	assert.Equal(t, quarter, quarter.Pad(0))
}

func TestNewLifetimePeriod(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	period, err := NewLifetimePeriod(start, time.Time{}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, period.Start, period.End)

	_, err = NewLifetimePeriod(start, start.AddDate(0, 0, -1), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
