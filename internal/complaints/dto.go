package complaints

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// ComplaintDTO is the transport shape for one complaint.
type ComplaintDTO struct {
	ID          uuid.UUID               `json:"id"`
	SiteID      uuid.UUID               `json:"site_id"`
	UserID      uuid.UUID               `json:"user_id"`
	FlatNumber  string                  `json:"flat_number"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    enums.ComplaintCategory `json:"category"`
	Status      enums.ComplaintStatus   `json:"status"`
	AssignedTo  *uuid.UUID              `json:"assigned_to,omitempty"`
	PhotoURL    *string                 `json:"photo_url,omitempty"`
	Resolution  *string                 `json:"resolution,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// CommentDTO is one message on a complaint thread.
type CommentDTO struct {
	ID          uuid.UUID `json:"id"`
	ComplaintID uuid.UUID `json:"complaint_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateComplaintRequest is the resident payload for raising an issue.
type CreateComplaintRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required,min=3"`
	Category    string  `json:"category" validate:"required,oneof=plumbing electrical cleanliness security noise other"`
	PhotoURL    *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// UpdateStatusRequest moves a complaint through its lifecycle.
type UpdateStatusRequest struct {
	Status     string     `json:"status" validate:"required,oneof=open in_progress resolved rejected"`
	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`
	Resolution *string    `json:"resolution,omitempty" validate:"omitempty,min=3"`
}

// AddCommentRequest appends a message to a complaint thread.
type AddCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// ListComplaintsFilter narrows the complaint listing.
type ListComplaintsFilter struct {
	Status   *enums.ComplaintStatus
	Category *enums.ComplaintCategory
	UserID   *uuid.UUID
	Limit    int
	Cursor   string
}

// ComplaintPage is one cursor page of complaints.
type ComplaintPage struct {
	Complaints []ComplaintDTO `json:"complaints"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

func FromModel(c *models.Complaint) *ComplaintDTO {
	if c == nil {
		return nil
	}
	return &ComplaintDTO{
		ID:          c.ID,
		SiteID:      c.SiteID,
		UserID:      c.UserID,
		FlatNumber:  c.FlatNumber,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Status:      c.Status,
		AssignedTo:  c.AssignedTo,
		PhotoURL:    c.PhotoURL,
		Resolution:  c.Resolution,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromModels(list []models.Complaint) []ComplaintDTO {
	out := make([]ComplaintDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func commentFromModel(c *models.ComplaintComment) *CommentDTO {
	return &CommentDTO{
		ID:          c.ID,
		ComplaintID: c.ComplaintID,
		AuthorID:    c.AuthorID,
		Body:        c.Body,
		CreatedAt:   c.CreatedAt,
	}
}

func commentsFromModels(list []models.ComplaintComment) []CommentDTO {
	out := make([]CommentDTO, 0, len(list))
	for i := range list {
		out = append(out, *commentFromModel(&list[i]))
	}
	return out
}
