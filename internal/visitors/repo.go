package visitors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists gate-log entries through GORM.
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

func (r *Repository) Create(ctx context.Context, visitor *models.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *Repository) FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND id = ?", siteID, id).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// List pages gate-log entries newest-first. A date filter matches the whole
// calendar day in UTC.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, filter ListVisitorsFilter, cursor *pagination.Cursor, limit int) ([]models.Visitor, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.FlatNumber != nil {
		q = q.Where("flat_number = ?", *filter.FlatNumber)
	}
	if filter.Date != nil {
		dayStart := filter.Date.UTC().Truncate(24 * time.Hour)
		q = q.Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.Visitor
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateWithTx applies a gate transition inside a transaction.
func (r *Repository) UpdateWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, values map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("id = ?", id).
		Updates(values).Error
}

// Update applies a gate transition outside of any transaction.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("id = ?", id).
		Updates(values).Error
}

// CountSince reports entries created after since for a site.
func (r *Repository) CountSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visitor{}).
		Where("site_id = ? AND created_at >= ?", siteID, since).
		Count(&count).Error
	return count, err
}
