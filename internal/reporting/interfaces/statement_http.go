package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"creator-finance/internal/audit"
	"creator-finance/internal/reporting/application"
	reporting "creator-finance/internal/reporting/domain"
)

// StatementHandler handles statement APIs under /api/v1/statements.
type StatementHandler struct {
	service *application.StatementService
	opts    handlerOptions
}

// NewStatementHandler constructs a handler.
func NewStatementHandler(service *application.StatementService, opts ...HandlerOption) (*StatementHandler, error) {
	if service == nil {
		return nil, errors.New("statement handler: nil service")
	}
	return &StatementHandler{service: service, opts: buildHandlerOptions(opts)}, nil
}

// ServeHTTP routes statement requests.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/statements/generate" && r.Method == http.MethodPost {
		h.handleGenerate(w, r)
		return
	}
	if path == "/api/v1/statements" && r.Method == http.MethodGet {
		h.handleList(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/statements/") && r.Method == http.MethodGet {
		h.handleByID(w, r, strings.TrimPrefix(path, "/api/v1/statements/"))
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

type generateStatementRequest struct {
	SubjectID   string `json:"subject_id"`
	SubjectKind string `json:"subject_kind"`
	PeriodKind  string `json:"period_kind"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Quarter     int    `json:"quarter"`
}

func (h *StatementHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	subject, err := reporting.NewSubject(req.SubjectID, reporting.SubjectKind(req.SubjectKind))
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	if err := h.opts.authorizeSubject(r, subject); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	periodKind := reporting.PeriodMonthly
	if req.PeriodKind != "" {
		periodKind, err = reporting.ParsePeriodKind(req.PeriodKind)
		if err != nil {
			h.opts.respondServiceError(w, err)
			return
		}
	}
	index := req.Month
	switch periodKind {
	case reporting.PeriodQuarterly:
		index = req.Quarter
	case reporting.PeriodYearly:
		index = 0
	}

	stmt, err := h.service.Generate(r.Context(), subject, periodKind, req.Year, index)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stmt)
	h.opts.logAudit(r, audit.ActionGenerate, reporting.KindStatement, stmt.ID, subject.ID, map[string]any{
		"subject_kind": subject.Kind,
		"period":       stmt.Period().Key(),
	})
}

func (h *StatementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	subject, err := querySubject(r)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	if err := h.opts.authorizeSubject(r, subject); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	list, err := h.service.List(r.Context(), subject, limit)
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []*reporting.Statement{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *StatementHandler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	format := formatJSON
	if len(parts) == 2 {
		var ok bool
		if format, ok = exportFormat(parts[1]); !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}

	stmt, err := h.service.Get(r.Context(), parts[0])
	if err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	if err := h.opts.authorizeSubject(r, stmt.Subject()); err != nil {
		h.opts.respondServiceError(w, err)
		return
	}
	h.opts.writeFormat(w, r, stmt, format, stmt.ID, stmt.SubjectID)
}
