package complaints

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists complaints and their comment threads through GORM.
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

func (r *Repository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *Repository) FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND id = ?", siteID, id).
		First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List pages complaints newest-first with the optional filters applied.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, filter ListComplaintsFilter, cursor *pagination.Cursor, limit int) ([]models.Complaint, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.Complaint
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusWithTx applies a lifecycle change inside a transaction.
func (r *Repository) UpdateStatusWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, values map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *Repository) AddComment(ctx context.Context, comment *models.ComplaintComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *Repository) ListComments(ctx context.Context, complaintID uuid.UUID) ([]models.ComplaintComment, error) {
	var out []models.ComplaintComment
	err := r.db.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountOpenSince reports open or in-progress complaints created after since.
func (r *Repository) CountOpenSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("site_id = ? AND status IN ? AND created_at >= ?", siteID, []string{"open", "in_progress"}, since).
		Count(&count).Error
	return count, err
}
