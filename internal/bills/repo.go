package bills

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists bills through GORM.
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

func (r *Repository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// CreateWithTx inserts a bill as part of an in-flight transaction.
func (r *Repository) CreateWithTx(ctx context.Context, tx *gorm.DB, bill *models.Bill) error {
	return r.WithTx(tx).Create(ctx, bill)
}

func (r *Repository) FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND id = ?", siteID, id).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// List pages bills newest-first, applying the optional filters and cursor.
// The caller passes limit+1 rows worth of budget to detect the next page.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, filter ListBillsFilter, cursor *pagination.Cursor, limit int) ([]models.Bill, error) {
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
	if filter.FlatNumber != nil {
		q = q.Where("flat_number = ?", *filter.FlatNumber)
	}
	if filter.PeriodMonth != nil {
		q = q.Where("period_month = ?", *filter.PeriodMonth)
	}
	if filter.PeriodYear != nil {
		q = q.Where("period_year = ?", *filter.PeriodYear)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.Bill
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFlat pages a single flat's bills newest-first.
func (r *Repository) ListByFlat(ctx context.Context, siteID uuid.UUID, flatNumber string, cursor *pagination.Cursor, limit int) ([]models.Bill, error) {
	flat := flatNumber
	return r.List(ctx, siteID, ListBillsFilter{FlatNumber: &flat}, cursor, limit)
}

// ExistsForPeriod reports whether a bill already covers the flat and period.
func (r *Repository) ExistsForPeriod(ctx context.Context, siteID uuid.UUID, flatNumber string, category string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("site_id = ? AND flat_number = ? AND category = ? AND period_month = ? AND period_year = ?",
			siteID, flatNumber, category, month, year).
		Count(&count).Error
	return count > 0, err
}

// MarkPaidWithTx settles a bill inside an in-flight transaction.
func (r *Repository) MarkPaidWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, paidAt time.Time, method string) error {
	return tx.WithContext(ctx).Model(&models.Bill{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         "paid",
			"paid_at":        paidAt,
			"payment_method": method,
			"updated_at":     paidAt,
		}).Error
}

// ListDuePending returns pending bills whose due date has passed.
func (r *Repository) ListDuePending(ctx context.Context, now time.Time) ([]models.Bill, error) {
	var out []models.Bill
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", "pending", now).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkOverdueWithTx flips a bill to overdue and records the accrued late fee.
func (r *Repository) MarkOverdueWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, lateFee decimal.Decimal, now time.Time) error {
	return tx.WithContext(ctx).Model(&models.Bill{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]any{
			"status":     "overdue",
			"late_fee":   lateFee,
			"updated_at": now,
		}).Error
}
