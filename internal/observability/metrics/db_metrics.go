package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func registerDBMetrics(db *sql.DB, logger logrus.FieldLogger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "financial_statements_final",
			Help: "Final financial statements persisted",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM financial_statements WHERE status = 'final'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "campaign_pl_reports",
			Help: "Campaign P&L reports persisted",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM campaign_pl_reports")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "platform_revenue_reports",
			Help: "Platform revenue reports persisted",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM platform_revenue_reports")
		},
	))
}

func queryCount(db *sql.DB, logger logrus.FieldLogger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.WithError(err).Warn("metrics query failed")
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
