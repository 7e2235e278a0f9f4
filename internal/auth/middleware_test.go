package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	reporting "creator-finance/internal/reporting/domain"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_InfluencerForbiddenPlatformReports(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "inf-1", "influencer")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/platform-reports/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddleware_BrandForbiddenEarnings(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "brand-1", "brand")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers/inf-1/earnings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddleware_AdminAllowedAndIdentityStored(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "admin-1", "admin")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))

	var gotRole Role
	var gotSubject string
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = RoleFromContext(r.Context())
		gotSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/platform-reports/rep-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotRole != RoleAdmin || gotSubject != "admin-1" {
		t.Fatalf("identity not stored: %q %q", gotRole, gotSubject)
	}
}

func TestAuthMiddleware_ExemptPath(t *testing.T) {
	mw := NewMiddleware([]byte("test-secret"), NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_SubjectOwnership(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	cases := []struct {
		name    string
		path    string
		subject string
		role    string
		want    int
	}{
		{"own statements", "/api/v1/statements?subject_id=inf-1&subject_kind=influencer", "inf-1", "influencer", http.StatusOK},
		{"other influencer statements", "/api/v1/statements?subject_id=inf-2&subject_kind=influencer", "inf-1", "influencer", http.StatusForbidden},
		{"other brand view", "/api/v1/reports/cash-flow?subject_id=brand-2&subject_kind=brand&year=2025", "brand-1", "brand", http.StatusForbidden},
		{"platform view for brand", "/api/v1/reports/income-statement?subject_kind=platform&year=2025", "brand-1", "brand", http.StatusForbidden},
		{"other influencer earnings", "/api/v1/influencers/inf-2/earnings", "inf-1", "influencer", http.StatusForbidden},
		{"own earnings", "/api/v1/influencers/inf-1/earnings", "inf-1", "influencer", http.StatusOK},
		{"admin any subject", "/api/v1/statements?subject_id=brand-2&subject_kind=brand", "admin-1", "admin", http.StatusOK},
		{"invalid kind left to handler", "/api/v1/statements?subject_id=x&subject_kind=agency", "brand-1", "brand", http.StatusOK},
		{"no subject", "/api/v1/statements/stmt-1", "brand-1", "brand", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+mustToken(t, secret, tc.subject, tc.role))
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestAuthorizeSubject(t *testing.T) {
	brand := reporting.Subject{ID: "brand-1", Kind: reporting.SubjectBrand}
	other := reporting.Subject{ID: "brand-2", Kind: reporting.SubjectBrand}

	brandCtx := WithIdentity(context.Background(), RoleBrand, "brand-1")
	if err := AuthorizeSubject(brandCtx, brand, true); err != nil {
		t.Fatalf("own subject: %v", err)
	}
	if err := AuthorizeSubject(brandCtx, other, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for other brand, got %v", err)
	}
	if err := AuthorizeSubject(brandCtx, reporting.PlatformSubject(), true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for platform, got %v", err)
	}
	infCtx := WithIdentity(context.Background(), RoleInfluencer, "brand-1")
	if err := AuthorizeSubject(infCtx, brand, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for role mismatch, got %v", err)
	}
	adminCtx := WithIdentity(context.Background(), RoleAdmin, "admin-1")
	if err := AuthorizeSubject(adminCtx, reporting.PlatformSubject(), true); err != nil {
		t.Fatalf("admin platform: %v", err)
	}
	if err := AuthorizeSubject(context.Background(), brand, true); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if err := AuthorizeSubject(context.Background(), brand, false); err != nil {
		t.Fatalf("unenforced: %v", err)
	}
}

func mustToken(t *testing.T, secret []byte, subject, role string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
