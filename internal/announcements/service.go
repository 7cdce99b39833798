package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Service defines announcement operations for admins and readers.
type Service interface {
	Create(ctx context.Context, siteID, authorID uuid.UUID, req CreateAnnouncementRequest) (*AnnouncementDTO, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListAnnouncementsFilter) (*AnnouncementPage, error)
	Get(ctx context.Context, siteID, id uuid.UUID) (*AnnouncementDTO, error)
	Update(ctx context.Context, siteID, id uuid.UUID, req UpdateAnnouncementRequest) (*AnnouncementDTO, error)
	Delete(ctx context.Context, siteID, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, a *models.Announcement) error
	CreateWithTx(ctx context.Context, tx *gorm.DB, a *models.Announcement) error
	FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Announcement, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListAnnouncementsFilter, cursor *pagination.Cursor, limit int, now time.Time) ([]models.Announcement, error)
	Updates(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, siteID, id uuid.UUID) error
}

type siteUserLister interface {
	ListBySite(ctx context.Context, siteID uuid.UUID, role *enums.Role) ([]models.User, error)
}

type notifier interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, n *models.Notification) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     repository
	users    siteUserLister
	notifier notifier
	tx       transactor
}

// ServiceParams bundles the dependencies required to build an announcements service.
type ServiceParams struct {
	Repo     repository
	Users    siteUserLister
	Notifier notifier
	Tx       transactor
}

// NewService constructs an announcements service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("announcements repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user lister is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{repo: params.Repo, users: params.Users, notifier: params.Notifier, tx: params.Tx}, nil
}

// Create publishes a notice. Urgent notices additionally push a notification
// to every active member of the site in the same transaction.
func (s *service) Create(ctx context.Context, siteID, authorID uuid.UUID, req CreateAnnouncementRequest) (*AnnouncementDTO, error) {
	category := enums.AnnouncementCategoryGeneral
	if req.Category != "" {
		parsed, err := enums.ParseAnnouncementCategory(req.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement category")
		}
		category = parsed
	}
	priority := enums.AnnouncementPriorityNormal
	if req.Priority != "" {
		parsed, err := enums.ParseAnnouncementPriority(req.Priority)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement priority")
		}
		priority = parsed
	}

	publishedAt := time.Now().UTC()
	if req.PublishedAt != nil {
		publishedAt = req.PublishedAt.UTC()
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(publishedAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be after publication")
	}

	notice := &models.Announcement{
		SiteID:      siteID,
		AuthorID:    authorID,
		Title:       strings.TrimSpace(req.Title),
		Body:        strings.TrimSpace(req.Body),
		Category:    category,
		Priority:    priority,
		PublishedAt: publishedAt,
		ExpiresAt:   req.ExpiresAt,
	}

	if priority != enums.AnnouncementPriorityUrgent {
		if err := s.repo.Create(ctx, notice); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create announcement")
		}
		return FromModel(notice), nil
	}

	members, err := s.users.ListBySite(ctx, siteID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list site members")
	}
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(ctx, tx, notice); err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
		for i := range members {
			m := &members[i]
			if !m.IsActive {
				continue
			}
			note := &models.Notification{
				SiteID:  siteID,
				UserID:  m.ID,
				Type:    enums.NotificationTypeAnnouncement,
				Title:   notice.Title,
				Message: notice.Body,
			}
			if err := s.notifier.CreateWithTx(ctx, tx, note); err != nil {
				return fmt.Errorf("notify member: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "publish urgent announcement")
	}
	return FromModel(notice), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, filter ListAnnouncementsFilter) (*AnnouncementPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	rows, err := s.repo.List(ctx, siteID, filter, cursor, limit+1, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list announcements")
	}

	page := &AnnouncementPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	page.Announcements = FromModels(rows)
	return page, nil
}

func (s *service) Get(ctx context.Context, siteID, id uuid.UUID) (*AnnouncementDTO, error) {
	notice, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(notice), nil
}

func (s *service) Update(ctx context.Context, siteID, id uuid.UUID, req UpdateAnnouncementRequest) (*AnnouncementDTO, error) {
	notice, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Title != nil {
		values["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		values["body"] = strings.TrimSpace(*req.Body)
	}
	if req.Category != nil {
		category, err := enums.ParseAnnouncementCategory(*req.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement category")
		}
		values["category"] = category
	}
	if req.Priority != nil {
		priority, err := enums.ParseAnnouncementPriority(*req.Priority)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement priority")
		}
		values["priority"] = priority
	}
	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(notice.PublishedAt) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be after publication")
		}
		values["expires_at"] = *req.ExpiresAt
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	values["updated_at"] = time.Now().UTC()

	if err := s.repo.Updates(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update announcement")
	}
	updated, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, siteID, id uuid.UUID) error {
	if _, err := s.find(ctx, siteID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, siteID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete announcement")
	}
	return nil
}

func (s *service) find(ctx context.Context, siteID, id uuid.UUID) (*models.Announcement, error) {
	notice, err := s.repo.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load announcement")
	}
	return notice, nil
}
