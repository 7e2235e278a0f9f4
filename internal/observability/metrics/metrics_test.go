package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersRecordByLabel(t *testing.T) {
	Init(nil, nil)

	before := testutil.ToFloat64(reportGenerateTotal.WithLabelValues("statement", ResultSuccess))
	ObserveReportGenerate("statement", ResultSuccess, 25*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(reportGenerateTotal.WithLabelValues("statement", ResultSuccess)))

	hits := testutil.ToFloat64(reportCacheTotal.WithLabelValues("campaign_pl", CacheHit))
	IncReportCache("campaign_pl", CacheHit)
	assert.Equal(t, hits+1, testutil.ToFloat64(reportCacheTotal.WithLabelValues("campaign_pl", CacheHit)))

	unknown := testutil.ToFloat64(reportExportTotal.WithLabelValues("unknown", ResultError))
	ObserveReportExport("", ResultError, time.Millisecond)
	assert.Equal(t, unknown+1, testutil.ToFloat64(reportExportTotal.WithLabelValues("unknown", ResultError)))

	closes := testutil.ToFloat64(monthCloseTotal.WithLabelValues(ResultSuccess))
	IncMonthClose("")
	assert.Equal(t, closes+1, testutil.ToFloat64(monthCloseTotal.WithLabelValues(ResultSuccess)))
}
