package announcements

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists announcements through GORM.
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

func (r *Repository) Create(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// CreateWithTx inserts a notice as part of an in-flight transaction.
func (r *Repository) CreateWithTx(ctx context.Context, tx *gorm.DB, a *models.Announcement) error {
	return r.WithTx(tx).Create(ctx, a)
}

func (r *Repository) FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND id = ?", siteID, id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List pages notices newest-published-first. ActiveOnly hides unpublished and
// expired notices, which is what residents see.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, filter ListAnnouncementsFilter, cursor *pagination.Cursor, limit int, now time.Time) ([]models.Announcement, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.ActiveOnly {
		q = q.Where("published_at <= ?", now).
			Where("expires_at IS NULL OR expires_at > ?", now)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.Announcement
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Updates(ctx context.Context, id uuid.UUID, values map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *Repository) Delete(ctx context.Context, siteID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&models.Announcement{}, "id = ?", id).Error
}
