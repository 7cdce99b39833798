package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// Complaint is a resident-raised issue scoped to a site.
type Complaint struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SiteID      uuid.UUID               `gorm:"column:site_id;type:uuid;not null;index"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	FlatNumber  string                  `gorm:"column:flat_number;not null"`
	Title       string                  `gorm:"column:title;not null"`
	Description string                  `gorm:"column:description;not null"`
	Category    enums.ComplaintCategory `gorm:"column:category;type:text;not null"`
	Status      enums.ComplaintStatus   `gorm:"column:status;type:text;not null;default:'open'"`
	AssignedTo  *uuid.UUID              `gorm:"column:assigned_to;type:uuid"`
	PhotoURL    *string                 `gorm:"column:photo_url"`
	Resolution  *string                 `gorm:"column:resolution"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// ComplaintComment is one message on a complaint's thread.
type ComplaintComment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ComplaintID uuid.UUID `gorm:"column:complaint_id;type:uuid;not null;index"`
	AuthorID    uuid.UUID `gorm:"column:author_id;type:uuid;not null"`
	Body        string    `gorm:"column:body;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
