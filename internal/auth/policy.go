package auth

import (
	"net/http"
	"strings"

	reporting "creator-finance/internal/reporting/domain"
)

// Policy determines required roles by request.
type Policy struct {
	ExemptPaths    map[string]struct{}
	ExemptPrefixes []string
}

// NewDefaultPolicy builds a default policy with exemptions.
func NewDefaultPolicy(exemptPaths []string, exemptPrefixes []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set, ExemptPrefixes: exemptPrefixes}
}

// IsExempt returns true when a request should skip auth/RBAC.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.ExemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.ExemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// RequiredRole resolves required role for the request. An empty role with ok=true means any
// authenticated caller.
func (p Policy) RequiredRole(r *http.Request) (Role, bool) {
	if r == nil {
		return "", false
	}
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/api/v1/platform-reports"):
		return RoleAdmin, true
	case strings.HasPrefix(path, "/api/v1/campaign-reports"):
		return RoleBrand, true
	case strings.HasPrefix(path, "/api/v1/influencers/"):
		return RoleInfluencer, true
	}

	if strings.HasPrefix(path, "/api/") {
		return "", true
	}
	return "", false
}

// RequestedSubject resolves the report subject named by the request, either the influencer of
// an /api/v1/influencers/{id} path or the subject_id and subject_kind query parameters.
// Campaign reports resolve their owner only after loading the campaign, so they are not covered.
func (p Policy) RequestedSubject(r *http.Request) (reporting.Subject, bool) {
	if r == nil {
		return reporting.Subject{}, false
	}
	if rest, ok := strings.CutPrefix(r.URL.Path, "/api/v1/influencers/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		if id == "" {
			return reporting.Subject{}, false
		}
		return reporting.Subject{ID: id, Kind: reporting.SubjectInfluencer}, true
	}
	q := r.URL.Query()
	if !q.Has("subject_kind") {
		return reporting.Subject{}, false
	}
	subject, err := reporting.NewSubject(q.Get("subject_id"), reporting.SubjectKind(q.Get("subject_kind")))
	if err != nil {
		return reporting.Subject{}, false
	}
	return subject, true
}
