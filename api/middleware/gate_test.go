package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/Amanshah2829/smart-society-sub000/pkg/auth"
	"github.com/Amanshah2829/smart-society-sub000/pkg/auth/session"
	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	"github.com/google/uuid"
)

type stubSessionChecker struct {
	live map[string]bool
	err  error
}

func (s *stubSessionChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.live == nil {
		return true, nil
	}
	return s.live[sessionID], nil
}

func gateTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "gate-secret",
			Issuer:            "smart-society",
			ExpirationMinutes: 30,
		},
		Session: config.SessionConfig{CookieName: "token"},
	}
}

func mintGateToken(t *testing.T, cfg *config.Config, role enums.Role, issued time.Time) string {
	t.Helper()
	token, err := pkgAuth.MintSessionToken(cfg.JWT, issued, pkgAuth.SessionTokenPayload{
		UserID: uuid.New(),
		Email:  string(role) + "@society.com",
		Role:   role,
		JTI:    "jti-" + string(role),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func serveGate(cfg *config.Config, verifier session.Checker, r *http.Request) *httptest.ResponseRecorder {
	handler := Gate(cfg, verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	cfg := gateTestConfig()
	r := httptest.NewRequest(http.MethodGet, "/admin/bills", nil)
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?redirectedFrom=%2Fadmin%2Fbills" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateTreatsMalformedTokenAsAnonymous(t *testing.T) {
	cfg := gateTestConfig()
	r := httptest.NewRequest(http.MethodGet, "/resident", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?redirectedFrom=%2Fresident" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateTreatsExpiredTokenAsAnonymous(t *testing.T) {
	cfg := gateTestConfig()
	token := mintGateToken(t, cfg, enums.RoleResident, time.Now().Add(-2*time.Hour))

	r := httptest.NewRequest(http.MethodGet, "/resident", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?redirectedFrom=%2Fresident" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateRedirectsWrongRoleToOwnDashboard(t *testing.T) {
	cfg := gateTestConfig()
	token := mintGateToken(t, cfg, enums.RoleResident, time.Now())

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/resident" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateAllowsMatchingRole(t *testing.T) {
	cfg := gateTestConfig()
	token := mintGateToken(t, cfg, enums.RoleSecurity, time.Now())

	r := httptest.NewRequest(http.MethodGet, "/security/visitors", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGateRejectsRevokedSession(t *testing.T) {
	cfg := gateTestConfig()
	token := mintGateToken(t, cfg, enums.RoleSecurity, time.Now())
	verifier := &stubSessionChecker{live: map[string]bool{}}

	r := httptest.NewRequest(http.MethodGet, "/security", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := serveGate(cfg, verifier, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?redirectedFrom=%2Fsecurity" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateRedirectsAuthenticatedAwayFromLogin(t *testing.T) {
	cfg := gateTestConfig()
	token := mintGateToken(t, cfg, enums.RoleAccountant, time.Now())

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := serveGate(cfg, nil, r)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/accountant" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGateIgnoresUnprotectedPaths(t *testing.T) {
	cfg := gateTestConfig()
	for _, path := range []string{"/", "/health", "/about", "/administrator"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := serveGate(cfg, nil, r)
		if w.Code != http.StatusOK {
			t.Fatalf("path %s: expected pass-through 200, got %d", path, w.Code)
		}
	}
}

func TestMatchGateRulePrefixBoundaries(t *testing.T) {
	if rule := matchGateRule("/administrator"); rule != nil {
		t.Fatalf("expected no match for /administrator, got %s", rule.prefix)
	}
	rule := matchGateRule("/admin/bills/123")
	if rule == nil || rule.role != enums.RoleAdmin {
		t.Fatalf("expected admin rule, got %+v", rule)
	}
	rule = matchGateRule("/superadmin")
	if rule == nil || rule.role != enums.RoleSuperAdmin {
		t.Fatalf("expected superadmin rule, got %+v", rule)
	}
}
