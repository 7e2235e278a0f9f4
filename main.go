package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"creator-finance/internal/app"
	"creator-finance/internal/audit"
	"creator-finance/internal/auth"
	"creator-finance/internal/config"
	"creator-finance/internal/database"
	"creator-finance/internal/observability/metrics"
	"creator-finance/internal/reporting/interfaces"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("logger error: %v", err)
	}
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		logger.Warn("AUTH_JWT_SECRET is empty, API authentication disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("db error: %v", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := database.MigrateUp(db, logger); err != nil {
			logger.Fatalf("migrate error: %v", err)
		}
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	reports, err := app.New(db, cfg, logger)
	if err != nil {
		logger.Fatalf("wiring error: %v", err)
	}
	defer reports.Close()

	hopts := []interfaces.HandlerOption{
		interfaces.WithRenderer(reports.Renderer),
		interfaces.WithAuditLogger(auditRepo),
		interfaces.WithAuthEnforced(cfg.JWTSecret != ""),
		interfaces.WithHandlerLogger(logger),
	}
	statementHandler, err := interfaces.NewStatementHandler(reports.Statements, hopts...)
	if err != nil {
		logger.Fatalf("statement handler error: %v", err)
	}
	viewHandler, err := interfaces.NewViewHandler(reports.Views, hopts...)
	if err != nil {
		logger.Fatalf("view handler error: %v", err)
	}
	campaignHandler, err := interfaces.NewCampaignReportHandler(reports.Campaigns, hopts...)
	if err != nil {
		logger.Fatalf("campaign report handler error: %v", err)
	}
	platformHandler, err := interfaces.NewPlatformReportHandler(reports.Platform, hopts...)
	if err != nil {
		logger.Fatalf("platform report handler error: %v", err)
	}
	earningsHandler, err := interfaces.NewEarningsHandler(reports.Earnings, hopts...)
	if err != nil {
		logger.Fatalf("earnings handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/statements", statementHandler)
	mux.Handle("/api/v1/statements/", statementHandler)
	mux.Handle("/api/v1/reports/", viewHandler)
	mux.Handle("/api/v1/campaign-reports/", campaignHandler)
	mux.Handle("/api/v1/platform-reports/", platformHandler)
	mux.Handle("/api/v1/influencers/", earningsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if cfg.JWTSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
		handler = auth.NewMiddleware([]byte(cfg.JWTSecret), policy).Wrap(mux)
	}
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if cfg.Schedule.Enabled {
		scheduler, err := reports.MonthCloseScheduler(cfg, logger)
		if err != nil {
			logger.Fatalf("month close scheduler error: %v", err)
		}
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped")
		return
	}
	logger.Info("server stopped")
}

func loggingMiddleware(next http.Handler, logger logrus.FieldLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start).String(),
		}).Info("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
