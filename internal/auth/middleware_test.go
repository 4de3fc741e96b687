package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthMiddleware_NoTokenOnQuoteList(t *testing.T) {
	secret := []byte("test-secret")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_CalculateIsPublic(t *testing.T) {
	secret := []byte("test-secret")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d", resp.Code)
	}
}

func TestAuthMiddleware_PublicRouteKeepsTokenIdentity(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-b", "agent", nil)
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	var seenTenant string
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTenant = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if seenTenant != "tenant-b" {
		t.Fatalf("expected token tenant to reach handler, got %q", seenTenant)
	}
}

func TestAuthMiddleware_PublicRouteIgnoresBadToken(t *testing.T) {
	secret := []byte("test-secret")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	var seenTenant string
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTenant = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if seenTenant != "" {
		t.Fatalf("expected anonymous request, got tenant %q", seenTenant)
	}
}

func TestAuthMiddleware_AgentForbiddenQuoteExport(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-a", "agent", nil)
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/q-1/export.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddleware_AgentAllowedQuoteGet(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-a", "agent", []string{"premium"})
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || identity.TenantID != "tenant-a" {
			t.Errorf("identity not propagated: %+v", identity)
		}
		if identity.AllowsCompany("budget") {
			t.Errorf("company scope not enforced")
		}
		if !identity.AllowsCompany("premium") {
			t.Errorf("scoped company rejected")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/q-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestParseStaffToken_RequiresExpiry(t *testing.T) {
	secret := []byte("test-secret")
	claims := StaffClaims{
		TenantID: "tenant-a",
		Role:     "agent",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ParseStaffToken(signed, secret); err == nil {
		t.Fatalf("expected error for token without expiry")
	}
}

func TestParseStaffToken_UnknownRole(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-a", "intern", nil)
	if _, err := ParseStaffToken(token, secret); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func mustToken(t *testing.T, secret []byte, tenantID, role string, companies []string) string {
	t.Helper()
	claims := StaffClaims{
		TenantID:  tenantID,
		Role:      role,
		Companies: companies,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
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
