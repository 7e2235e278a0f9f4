package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"creator-finance/internal/audit"
	"creator-finance/internal/auth"
	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
	formatXLSX = "xlsx"
)

type handlerOptions struct {
	renderer    *Renderer
	auditLogger audit.Logger
	enforceAuth bool
	logger      logrus.FieldLogger
}

// HandlerOption configures the report HTTP handlers.
type HandlerOption func(*handlerOptions)

// WithRenderer sets the document renderer.
func WithRenderer(renderer *Renderer) HandlerOption {
	return func(o *handlerOptions) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}

// WithAuditLogger records generate, view and export actions.
func WithAuditLogger(logger audit.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.auditLogger = logger
	}
}

// WithAuthEnforced rejects requests that reach a handler without an identity.
func WithAuthEnforced(enforce bool) HandlerOption {
	return func(o *handlerOptions) {
		o.enforceAuth = enforce
	}
}

// WithHandlerLogger sets the logger used for unexpected failures.
func WithHandlerLogger(logger logrus.FieldLogger) HandlerOption {
	return func(o *handlerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildHandlerOptions(opts []HandlerOption) handlerOptions {
	o := handlerOptions{renderer: defaultRenderer, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o handlerOptions) authorizeSubject(r *http.Request, subject reporting.Subject) error {
	return auth.AuthorizeSubject(r.Context(), subject, o.enforceAuth)
}

// writeReport serves report in the requested format and records the export.
func (o handlerOptions) writeReport(w http.ResponseWriter, r *http.Request, report reporting.Report, resourceID, subjectID string) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = formatJSON
	}
	o.writeFormat(w, r, report, format, resourceID, subjectID)
}

func (o handlerOptions) writeFormat(w http.ResponseWriter, r *http.Request, report reporting.Report, format, resourceID, subjectID string) {
	if format == formatJSON {
		writeJSON(w, http.StatusOK, report)
		o.logAudit(r, audit.ActionView, report.Kind(), resourceID, subjectID, map[string]any{"format": format})
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport(format, result, time.Since(start))
	}()

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case formatPDF:
		data, err = o.renderer.PDF(report, recipient(r, subjectID))
		contentType = "application/pdf"
	case formatXLSX:
		data, err = o.renderer.XLSX(report)
		contentType = xlsxMediaType
	default:
		result = metrics.ResultError
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}
	if err != nil {
		result = metrics.ResultError
		o.logger.WithError(err).WithField("format", format).Error("render report failed")
		http.Error(w, "export "+format+" error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName(report, resourceID, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	o.logAudit(r, audit.ActionExport, report.Kind(), resourceID, subjectID, map[string]any{"format": format})
}

func (o handlerOptions) logAudit(r *http.Request, action string, kind reporting.ReportKind, resourceID, subjectID string, meta map[string]any) {
	if o.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	entry := audit.WithRequest(audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: string(kind),
		ResourceID:   resourceID,
		SubjectID:    subjectID,
		Metadata:     payload,
	}, r)
	if err := o.auditLogger.Log(r.Context(), entry); err != nil {
		o.logger.WithError(err).WithField("action", action).Warn("audit log failed")
	}
}

func (o handlerOptions) respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, reporting.ErrReportNotFound),
		errors.Is(err, reporting.ErrSubjectNotFound),
		errors.Is(err, reporting.ErrCampaignNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, reporting.ErrInvalidSubjectKind),
		errors.Is(err, reporting.ErrEmptySubjectID),
		errors.Is(err, reporting.ErrInvalidPeriod),
		errors.Is(err, reporting.ErrInvalidPeriodKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		o.logger.WithError(err).Error("report request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func recipient(r *http.Request, fallback string) string {
	if subject := auth.SubjectFromContext(r.Context()); subject != "" {
		return subject
	}
	return fallback
}

func fileName(report reporting.Report, id, format string) string {
	name := string(report.Kind())
	if id != "" {
		name += "-" + id
	} else if p := report.Period(); !p.Start.IsZero() {
		name += "-" + p.StartDate()
	}
	return name + "." + format
}

// exportFormat maps an "export.<format>" path segment to its format.
func exportFormat(segment string) (string, bool) {
	switch segment {
	case "export.pdf":
		return formatPDF, true
	case "export.xlsx":
		return formatXLSX, true
	}
	return "", false
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", reporting.ErrInvalidPeriod, name)
	}
	return value, nil
}

func querySubject(r *http.Request) (reporting.Subject, error) {
	q := r.URL.Query()
	return reporting.NewSubject(q.Get("subject_id"), reporting.SubjectKind(q.Get("subject_kind")))
}
