package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgAuth "github.com/Amanshah2829/smart-society-sub000/pkg/auth"
	"github.com/Amanshah2829/smart-society-sub000/pkg/auth/session"
	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

const loginPath = "/login"

// gateRule binds a dashboard path prefix to the role allowed under it.
type gateRule struct {
	prefix string
	role   enums.Role
}

// gateRules covers every dashboard surface. Matching picks the longest
// prefix, so a nested dashboard under another rule's prefix wins.
var gateRules = []gateRule{
	{prefix: "/admin", role: enums.RoleAdmin},
	{prefix: "/resident", role: enums.RoleResident},
	{prefix: "/security", role: enums.RoleSecurity},
	{prefix: "/receptionist", role: enums.RoleReceptionist},
	{prefix: "/accountant", role: enums.RoleAccountant},
	{prefix: "/superadmin", role: enums.RoleSuperAdmin},
}

func matchGateRule(path string) *gateRule {
	var best *gateRule
	for i := range gateRules {
		rule := &gateRules[i]
		if path != rule.prefix && !strings.HasPrefix(path, rule.prefix+"/") {
			continue
		}
		if best == nil || len(rule.prefix) > len(best.prefix) {
			best = rule
		}
	}
	return best
}

// Gate enforces dashboard access with browser redirects. Anonymous visitors
// on a protected prefix bounce to the login page carrying the original path;
// authenticated visitors on the wrong dashboard bounce to their own.
func Gate(cfg *config.Config, verifier session.Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			rule := matchGateRule(path)
			onLogin := path == loginPath

			if rule == nil && !onLogin {
				next.ServeHTTP(w, r)
				return
			}

			claims := sessionClaims(r, cfg, verifier)

			if onLogin {
				if claims != nil {
					http.Redirect(w, r, claims.Role.HomePath(), http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if claims == nil {
				target := loginPath + "?redirectedFrom=" + url.QueryEscape(path)
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			if claims.Role != rule.role {
				http.Redirect(w, r, claims.Role.HomePath(), http.StatusFound)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			if claims.SiteID != nil {
				ctx = WithSiteID(ctx, claims.SiteID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionClaims resolves the request to validated claims or nil. Malformed,
// expired, and revoked tokens all collapse to "no session".
func sessionClaims(r *http.Request, cfg *config.Config, verifier session.Checker) *pkgAuth.SessionClaims {
	token := extractToken(r, cfg.Session.CookieName)
	if token == "" {
		return nil
	}
	claims, err := pkgAuth.ParseSessionToken(cfg.JWT, token)
	if err != nil || claims.ID == "" || !claims.Role.IsValid() {
		return nil
	}
	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil || !ok {
			return nil
		}
	}
	return claims
}
