package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"creator-finance/internal/audit"
	"creator-finance/internal/auth"
	"creator-finance/internal/reporting/application"
	reporting "creator-finance/internal/reporting/domain"
)

// ViewHandler serves statement views under /api/v1/reports/{view}.
type ViewHandler struct {
	views *application.StatementViews
	opts  handlerOptions
}

// NewViewHandler constructs a handler.
func NewViewHandler(views *application.StatementViews, opts ...HandlerOption) (*ViewHandler, error) {
	if views == nil {
		return nil, errors.New("view handler: nil views")
	}
	return &ViewHandler{views: views, opts: buildHandlerOptions(opts)}, nil
}

// ServeHTTP renders the requested view for subject_id, subject_kind, year and month.
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	view := strings.TrimPrefix(r.URL.Path, "/api/v1/reports/")
	subject, err := querySubject(r)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	if err := h.opts.authorizeSubject(r, subject); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}

	ctx := r.Context()
	var report reporting.Report
	switch view {
	case "income-statement":
		report, err = h.views.IncomeStatement(ctx, subject, year, month)
	case "balance-sheet":
		report, err = h.views.BalanceSheet(ctx, subject, year, month)
	case "cash-flow":
		report, err = h.views.CashFlowStatement(ctx, subject, year, month)
	case "financial-analysis":
		report, err = h.views.FinancialAnalysis(ctx, subject, year, month)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	h.opts.writeReport(w, r, report, "", subject.ID)
}

// CampaignReportHandler handles campaign P&L APIs under /api/v1/campaign-reports.
type CampaignReportHandler struct {
	service *application.CampaignReportService
	opts    handlerOptions
}

// NewCampaignReportHandler constructs a handler.
func NewCampaignReportHandler(service *application.CampaignReportService, opts ...HandlerOption) (*CampaignReportHandler, error) {
	if service == nil {
		return nil, errors.New("campaign report handler: nil service")
	}
	return &CampaignReportHandler{service: service, opts: buildHandlerOptions(opts)}, nil
}

// ServeHTTP routes campaign report requests.
func (h *CampaignReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/campaign-reports/generate" && r.Method == http.MethodPost {
		h.handleGenerate(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/campaign-reports/") && r.Method == http.MethodGet {
		id, format, ok := splitReportPath(strings.TrimPrefix(path, "/api/v1/campaign-reports/"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		report, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.opts.respondServiceError(w, err)
			return
		}
		if err := auth.AuthorizeBrand(r.Context(), report.BrandID, h.opts.enforceAuth); err != nil {
			h.opts.respondServiceError(w, err)
			return
		}
		h.opts.writeFormat(w, r, report, format, report.ID, report.BrandID)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CampaignReportHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID string `json:"campaign_id"`
		BrandID    string `json:"brand_id"`
		PeriodKind string `json:"period_kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.BrandID == "" && auth.RoleFromContext(r.Context()) == auth.RoleBrand {
		req.BrandID = auth.SubjectFromContext(r.Context())
	}
	if err := auth.AuthorizeBrand(r.Context(), req.BrandID, h.opts.enforceAuth); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	periodKind := reporting.PeriodLifetime
	if req.PeriodKind != "" {
		kind, err := reporting.ParsePeriodKind(req.PeriodKind)
		if err != nil {
			h.opts.respondServiceError(w, err)
			return
		}
		periodKind = kind
	}

	report, err := h.service.GenerateCampaignPLReport(r.Context(), req.CampaignID, req.BrandID, periodKind)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
	h.opts.logAudit(r, audit.ActionGenerate, reporting.KindCampaignPL, report.ID, report.BrandID, map[string]any{
		"campaign_id": report.CampaignID,
		"period":      report.Period().Key(),
	})
}

// PlatformReportHandler handles platform revenue APIs under /api/v1/platform-reports.
type PlatformReportHandler struct {
	service *application.PlatformReportService
	opts    handlerOptions
}

// NewPlatformReportHandler constructs a handler.
func NewPlatformReportHandler(service *application.PlatformReportService, opts ...HandlerOption) (*PlatformReportHandler, error) {
	if service == nil {
		return nil, errors.New("platform report handler: nil service")
	}
	return &PlatformReportHandler{service: service, opts: buildHandlerOptions(opts)}, nil
}

// ServeHTTP routes platform report requests.
func (h *PlatformReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.opts.authorizeSubject(r, reporting.PlatformSubject()); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	path := r.URL.Path
	if path == "/api/v1/platform-reports/generate" && r.Method == http.MethodPost {
		h.handleGenerate(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/platform-reports/") && r.Method == http.MethodGet {
		id, format, ok := splitReportPath(strings.TrimPrefix(path, "/api/v1/platform-reports/"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		report, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.opts.respondServiceError(w, err)
			return
		}
		h.opts.writeFormat(w, r, report, format, report.ID, reporting.PlatformSubjectID)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *PlatformReportHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportType string `json:"report_type"`
		Year       int    `json:"year"`
		Period     int    `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	reportType, err := reporting.ParsePeriodKind(req.ReportType)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	report, err := h.service.GeneratePlatformRevenueReport(r.Context(), reportType, req.Year, req.Period)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
	h.opts.logAudit(r, audit.ActionGenerate, reporting.KindPlatformRevenue, report.ID, reporting.PlatformSubjectID, map[string]any{
		"period": report.Period().Key(),
	})
}

// EarningsHandler serves /api/v1/influencers/{id}/earnings.
type EarningsHandler struct {
	service *application.EarningsService
	opts    handlerOptions
}

// NewEarningsHandler constructs a handler.
func NewEarningsHandler(service *application.EarningsService, opts ...HandlerOption) (*EarningsHandler, error) {
	if service == nil {
		return nil, errors.New("earnings handler: nil service")
	}
	return &EarningsHandler{service: service, opts: buildHandlerOptions(opts)}, nil
}

// ServeHTTP builds the earnings summary for year and optional month.
func (h *EarningsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/influencers/")
	influencerID, tail, found := strings.Cut(rest, "/")
	if !found || tail != "earnings" || influencerID == "" || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	subject := reporting.Subject{ID: influencerID, Kind: reporting.SubjectInfluencer}
	if err := h.opts.authorizeSubject(r, subject); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	summary, err := h.service.GenerateInfluencerEarningsSummary(r.Context(), influencerID, year, month)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	h.opts.writeReport(w, r, summary, "", influencerID)
}

// splitReportPath parses "{id}" or "{id}/export.{format}".
func splitReportPath(rest string) (id, format string, ok bool) {
	parts := strings.Split(rest, "/")
	if parts[0] == "" || len(parts) > 2 {
		return "", "", false
	}
	if len(parts) == 1 {
		return parts[0], formatJSON, true
	}
	format, ok = exportFormat(parts[1])
	return parts[0], format, ok
}
