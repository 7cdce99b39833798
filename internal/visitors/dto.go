package visitors

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// VisitorDTO is the transport shape for one gate-log entry.
type VisitorDTO struct {
	ID            uuid.UUID           `json:"id"`
	SiteID        uuid.UUID           `json:"site_id"`
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	FlatNumber    string              `json:"flat_number"`
	Purpose       string              `json:"purpose"`
	VehicleNumber *string             `json:"vehicle_number,omitempty"`
	Status        enums.VisitorStatus `json:"status"`
	ExpectedAt    *time.Time          `json:"expected_at,omitempty"`
	CheckedInAt   *time.Time          `json:"checked_in_at,omitempty"`
	CheckedOutAt  *time.Time          `json:"checked_out_at,omitempty"`
	ApprovedBy    *uuid.UUID          `json:"approved_by,omitempty"`
	CreatedBy     uuid.UUID           `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
}

// LogVisitorRequest registers an expected or walk-in visitor.
type LogVisitorRequest struct {
	Name          string     `json:"name" validate:"required,min=1,max=120"`
	Phone         string     `json:"phone" validate:"required,min=6,max=20"`
	FlatNumber    string     `json:"flat_number" validate:"required,min=1,max=20"`
	Purpose       string     `json:"purpose" validate:"required,min=1,max=200"`
	VehicleNumber *string    `json:"vehicle_number,omitempty" validate:"omitempty,max=20"`
	ExpectedAt    *time.Time `json:"expected_at,omitempty"`
}

// ListVisitorsFilter narrows the gate log listing.
type ListVisitorsFilter struct {
	Status     *enums.VisitorStatus
	FlatNumber *string
	Date       *time.Time
	Limit      int
	Cursor     string
}

// VisitorPage is one cursor page of gate-log entries.
type VisitorPage struct {
	Visitors   []VisitorDTO `json:"visitors"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func FromModel(v *models.Visitor) *VisitorDTO {
	if v == nil {
		return nil
	}
	return &VisitorDTO{
		ID:            v.ID,
		SiteID:        v.SiteID,
		Name:          v.Name,
		Phone:         v.Phone,
		FlatNumber:    v.FlatNumber,
		Purpose:       v.Purpose,
		VehicleNumber: v.VehicleNumber,
		Status:        v.Status,
		ExpectedAt:    v.ExpectedAt,
		CheckedInAt:   v.CheckedInAt,
		CheckedOutAt:  v.CheckedOutAt,
		ApprovedBy:    v.ApprovedBy,
		CreatedBy:     v.CreatedBy,
		CreatedAt:     v.CreatedAt,
	}
}

func FromModels(list []models.Visitor) []VisitorDTO {
	out := make([]VisitorDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
