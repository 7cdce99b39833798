package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// Announcement is a site-wide notice published by an admin.
type Announcement struct {
	ID          uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SiteID      uuid.UUID                  `gorm:"column:site_id;type:uuid;not null;index"`
	AuthorID    uuid.UUID                  `gorm:"column:author_id;type:uuid;not null"`
	Title       string                     `gorm:"column:title;not null"`
	Body        string                     `gorm:"column:body;not null"`
	Category    enums.AnnouncementCategory `gorm:"column:category;type:text;not null;default:'general'"`
	Priority    enums.AnnouncementPriority `gorm:"column:priority;type:text;not null;default:'normal'"`
	PublishedAt time.Time                  `gorm:"column:published_at;not null"`
	ExpiresAt   *time.Time                 `gorm:"column:expires_at"`
	CreatedAt   time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}
