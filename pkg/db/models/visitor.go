package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// Visitor is one gate-log entry for a site.
type Visitor struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SiteID        uuid.UUID           `gorm:"column:site_id;type:uuid;not null;index"`
	Name          string              `gorm:"column:name;not null"`
	Phone         string              `gorm:"column:phone;not null"`
	FlatNumber    string              `gorm:"column:flat_number;not null"`
	Purpose       string              `gorm:"column:purpose;not null"`
	VehicleNumber *string             `gorm:"column:vehicle_number"`
	Status        enums.VisitorStatus `gorm:"column:status;type:text;not null;default:'expected'"`
	ExpectedAt    *time.Time          `gorm:"column:expected_at"`
	CheckedInAt   *time.Time          `gorm:"column:checked_in_at"`
	CheckedOutAt  *time.Time          `gorm:"column:checked_out_at"`
	ApprovedBy    *uuid.UUID          `gorm:"column:approved_by;type:uuid"`
	CreatedBy     uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
