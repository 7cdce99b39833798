package sites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
)

// Repository persists sites through GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository onto an in-flight transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, site *models.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

// CreateWithTx inserts a site as part of an in-flight transaction.
func (r *Repository) CreateWithTx(ctx context.Context, tx *gorm.DB, site *models.Site) error {
	return r.WithTx(tx).Create(ctx, site)
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	var site models.Site
	if err := r.db.WithContext(ctx).First(&site, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Site, error) {
	q := r.db.WithContext(ctx).Model(&models.Site{}).Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Site
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Updates(ctx context.Context, id uuid.UUID, values map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Site{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Site{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Site{}, "id = ?", id).Error
}
