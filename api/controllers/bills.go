package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Amanshah2829/smart-society-sub000/api/responses"
	"github.com/Amanshah2829/smart-society-sub000/api/validators"
	"github.com/Amanshah2829/smart-society-sub000/internal/bills"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

// CreateBill raises a one-off bill against a flat.
func CreateBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bills.CreateBillRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bill, err := svc.Create(r.Context(), siteID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bill)
	}
}

// ListBills returns a cursor page of the site's bills.
func ListBills(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := parseBillFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), siteID, *filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// MyBills returns the bills of the resident's own flat.
func MyBills(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flat, err := flatNumberFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		page, err := svc.ListForFlat(r.Context(), siteID, flat, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetBill returns one bill of the caller's site.
func GetBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
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

		bill, err := svc.Get(r.Context(), siteID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bill)
	}
}

// PayBill settles a bill belonging to the resident's flat.
func PayBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := siteIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payerID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flat, err := flatNumberFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bills.PayBillRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bill, err := svc.Pay(r.Context(), siteID, id, payerID, flat, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bill)
	}
}

func parseBillFilter(r *http.Request) (*bills.ListBillsFilter, error) {
	filter := bills.ListBillsFilter{
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}

	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseBillStatus(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown bill status")
		}
		filter.Status = &status
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseBillCategory(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown bill category")
		}
		filter.Category = &category
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("flatNumber")); raw != "" {
		filter.FlatNumber = &raw
	}

	if month, err := validators.ParseQueryInt(r, "month", 0, 1, 12); err != nil {
		return nil, err
	} else if month != 0 {
		filter.PeriodMonth = &month
	}

	if year, err := validators.ParseQueryInt(r, "year", 0, 2000, 2200); err != nil {
		return nil, err
	} else if year != 0 {
		filter.PeriodYear = &year
	}

	return &filter, nil
}
