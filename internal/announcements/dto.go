package announcements

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// AnnouncementDTO is the transport shape for one notice.
type AnnouncementDTO struct {
	ID          uuid.UUID                  `json:"id"`
	SiteID      uuid.UUID                  `json:"site_id"`
	AuthorID    uuid.UUID                  `json:"author_id"`
	Title       string                     `json:"title"`
	Body        string                     `json:"body"`
	Category    enums.AnnouncementCategory `json:"category"`
	Priority    enums.AnnouncementPriority `json:"priority"`
	PublishedAt time.Time                  `json:"published_at"`
	ExpiresAt   *time.Time                 `json:"expires_at,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// CreateAnnouncementRequest publishes a site-wide notice.
type CreateAnnouncementRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Body        string     `json:"body" validate:"required,min=3"`
	Category    string     `json:"category" validate:"omitempty,oneof=general maintenance event emergency"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// UpdateAnnouncementRequest edits an existing notice.
type UpdateAnnouncementRequest struct {
	Title     *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Body      *string    `json:"body,omitempty" validate:"omitempty,min=3"`
	Category  *string    `json:"category,omitempty" validate:"omitempty,oneof=general maintenance event emergency"`
	Priority  *string    `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ListAnnouncementsFilter narrows the notice listing.
type ListAnnouncementsFilter struct {
	Category   *enums.AnnouncementCategory
	ActiveOnly bool
	Limit      int
	Cursor     string
}

// AnnouncementPage is one cursor page of notices.
type AnnouncementPage struct {
	Announcements []AnnouncementDTO `json:"announcements"`
	NextCursor    *string           `json:"next_cursor,omitempty"`
}

func FromModel(a *models.Announcement) *AnnouncementDTO {
	if a == nil {
		return nil
	}
	return &AnnouncementDTO{
		ID:          a.ID,
		SiteID:      a.SiteID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Body:        a.Body,
		Category:    a.Category,
		Priority:    a.Priority,
		PublishedAt: a.PublishedAt,
		ExpiresAt:   a.ExpiresAt,
		CreatedAt:   a.CreatedAt,
	}
}

func FromModels(list []models.Announcement) []AnnouncementDTO {
	out := make([]AnnouncementDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
