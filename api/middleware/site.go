package middleware

import (
	"net/http"

	"github.com/Amanshah2829/smart-society-sub000/api/responses"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

// SiteContext rejects requests with no tenant bound to the session. Superadmin
// routes are mounted without it.
func SiteContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SiteIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "site context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
