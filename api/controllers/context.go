package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/api/middleware"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
)

// siteIDFrom resolves the tenant bound to the session. Handlers mounted
// behind SiteContext can rely on it being present.
func siteIDFrom(r *http.Request) (uuid.UUID, error) {
	raw := middleware.SiteIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "site context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid site context")
	}
	return id, nil
}

func userIDFrom(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}
	return id, nil
}

func flatNumberFrom(r *http.Request) (string, error) {
	flat := middleware.FlatNumberFromContext(r.Context())
	if flat == "" {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "no flat bound to session")
	}
	return flat, nil
}
