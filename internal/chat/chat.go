package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// MessageDTO is the transport shape for one chat message.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	SiteID    uuid.UUID `json:"site_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest posts to the site's common chat stream.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// MessagePage is one cursor page of chat messages.
type MessagePage struct {
	Messages   []MessageDTO `json:"messages"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// Service defines the common-chat operations.
type Service interface {
	Send(ctx context.Context, siteID, authorID uuid.UUID, req SendMessageRequest) (*MessageDTO, error)
	List(ctx context.Context, siteID uuid.UUID, limit int, cursor string) (*MessagePage, error)
}

type repository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	List(ctx context.Context, siteID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ChatMessage, error)
}

// Repository persists chat messages through GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// List pages messages newest-first so clients can render bottom-up.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ChatMessage, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.ChatMessage
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a chat service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a chat service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("chat repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Send(ctx context.Context, siteID, authorID uuid.UUID, req SendMessageRequest) (*MessageDTO, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}
	msg := &models.ChatMessage{
		SiteID:   siteID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send message")
	}
	return fromModel(msg), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, limit int, rawCursor string) (*MessagePage, error) {
	cursor, err := pagination.ParseCursor(rawCursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	normalized := pagination.NormalizeLimit(limit)
	rows, err := s.repo.List(ctx, siteID, cursor, normalized+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list messages")
	}

	page := &MessagePage{}
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	page.Messages = fromModels(rows)
	return page, nil
}

func fromModel(m *models.ChatMessage) *MessageDTO {
	return &MessageDTO{
		ID:        m.ID,
		SiteID:    m.SiteID,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func fromModels(list []models.ChatMessage) []MessageDTO {
	out := make([]MessageDTO, 0, len(list))
	for i := range list {
		out = append(out, *fromModel(&list[i]))
	}
	return out
}
