package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	metricPrefix = "creator_finance_"

	resultSuccess = "success"
	resultError   = "error"

	cacheHit  = "hit"
	cacheMiss = "miss"
	cacheRace = "race"
)

var (
	registerOnce sync.Once

	reportGenerateTotal   *prometheus.CounterVec
	reportGenerateLatency *prometheus.HistogramVec
	reportCacheTotal      *prometheus.CounterVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	earningsSummaryTotal   *prometheus.CounterVec
	earningsSummaryLatency *prometheus.HistogramVec

	eventPublishTotal *prometheus.CounterVec
	monthCloseTotal   *prometheus.CounterVec
)

// Init registers reporting metrics and DB-backed gauges.
func Init(db *sql.DB, logger logrus.FieldLogger) {
	registerOnce.Do(func() {
		reportGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total report generate operations by kind and result",
			},
			[]string{"kind", "result"},
		)
		reportGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Report generate latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "result"},
		)
		reportCacheTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_cache_total",
				Help: "Report cache lookups by kind and outcome",
			},
			[]string{"kind", "outcome"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		earningsSummaryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "earnings_summary_total",
				Help: "Total influencer earnings summaries by result",
			},
			[]string{"result"},
		)
		earningsSummaryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "earnings_summary_latency_seconds",
				Help:    "Earnings summary latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		eventPublishTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "event_publish_total",
				Help: "Report generated events published by result",
			},
			[]string{"result"},
		)
		monthCloseTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "month_close_runs_total",
				Help: "Month close job runs by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			reportGenerateTotal,
			reportGenerateLatency,
			reportCacheTotal,
			reportExportTotal,
			reportExportLatency,
			earningsSummaryTotal,
			earningsSummaryLatency,
			eventPublishTotal,
			monthCloseTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveReportGenerate records generate latency and result for a report kind.
func ObserveReportGenerate(kind, result string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportGenerateTotal != nil {
		reportGenerateTotal.WithLabelValues(kind, result).Inc()
	}
	if reportGenerateLatency != nil {
		reportGenerateLatency.WithLabelValues(kind, result).Observe(duration.Seconds())
	}
}

// IncReportCache counts a cache lookup outcome.
func IncReportCache(kind, outcome string) {
	if kind == "" {
		kind = "unknown"
	}
	if outcome == "" {
		outcome = cacheMiss
	}
	if reportCacheTotal != nil {
		reportCacheTotal.WithLabelValues(kind, outcome).Inc()
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveEarningsSummary records earnings summary latency and result.
func ObserveEarningsSummary(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if earningsSummaryTotal != nil {
		earningsSummaryTotal.WithLabelValues(result).Inc()
	}
	if earningsSummaryLatency != nil {
		earningsSummaryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncEventPublish counts a published event.
func IncEventPublish(result string) {
	if result == "" {
		result = resultSuccess
	}
	if eventPublishTotal != nil {
		eventPublishTotal.WithLabelValues(result).Inc()
	}
}

// IncMonthClose counts a month close run.
func IncMonthClose(result string) {
	if result == "" {
		result = resultSuccess
	}
	if monthCloseTotal != nil {
		monthCloseTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	CacheHit  = cacheHit
	CacheMiss = cacheMiss
	CacheRace = cacheRace
)
