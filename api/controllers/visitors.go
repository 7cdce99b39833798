package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/api/responses"
	"github.com/Amanshah2829/smart-society-sub000/api/validators"
	"github.com/Amanshah2829/smart-society-sub000/internal/visitors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

// LogVisitor records an expected or walk-in visitor at the gate.
func LogVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		createdBy, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body visitors.LogVisitorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visitor, err := svc.Log(r.Context(), siteID, createdBy, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, visitor)
	}
}

// ListVisitors returns a cursor page of the gate log.
func ListVisitors(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := visitors.ListVisitorsFilter{
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Limit = limit

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseVisitorStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown visitor status"))
				return
			}
			filter.Status = &status
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("flatNumber")); raw != "" {
			filter.FlatNumber = &raw
		}

		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !date.IsZero() {
			filter.Date = &date
		}

		page, err := svc.List(r.Context(), siteID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetVisitor returns one gate-log entry.
func GetVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visitor, err := svc.Get(r.Context(), siteID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visitor)
	}
}

// ApproveVisitor lets a resident pre-approve an expected visitor.
func ApproveVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return visitorTransition(logg, func(r *http.Request, siteID, id, actorID uuid.UUID) (*visitors.VisitorDTO, error) {
		return svc.Approve(r.Context(), siteID, id, actorID)
	})
}

// DenyVisitor lets a resident turn away an expected visitor.
func DenyVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return visitorTransition(logg, func(r *http.Request, siteID, id, actorID uuid.UUID) (*visitors.VisitorDTO, error) {
		return svc.Deny(r.Context(), siteID, id, actorID)
	})
}

// CheckInVisitor records arrival at the gate and alerts the flat.
func CheckInVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return visitorTransition(logg, func(r *http.Request, siteID, id, _ uuid.UUID) (*visitors.VisitorDTO, error) {
		return svc.CheckIn(r.Context(), siteID, id)
	})
}

// CheckOutVisitor records departure.
func CheckOutVisitor(svc visitors.Service, logg *logger.Logger) http.HandlerFunc {
	return visitorTransition(logg, func(r *http.Request, siteID, id, _ uuid.UUID) (*visitors.VisitorDTO, error) {
		return svc.CheckOut(r.Context(), siteID, id)
	})
}

func visitorTransition(logg *logger.Logger, apply func(r *http.Request, siteID, id, actorID uuid.UUID) (*visitors.VisitorDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visitor, err := apply(r, siteID, id, actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visitor)
	}
}
