package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists ledger entries through GORM. Entries are append-only.
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

func (r *Repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateWithTx appends an entry as part of an in-flight transaction.
func (r *Repository) CreateWithTx(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error {
	return r.WithTx(tx).Create(ctx, entry)
}

// List pages entries newest-first with the optional filters applied.
func (r *Repository) List(ctx context.Context, siteID uuid.UUID, filter ListEntriesFilter, cursor *pagination.Cursor, limit int) ([]models.LedgerEntry, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.From != nil {
		q = q.Where("entry_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("entry_date < ?", *filter.To)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.LedgerEntry
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SumSignedThrough returns income minus expense across every entry recorded
// up to and including the given row, following the listing order. Listing
// filters are deliberately ignored so the balance reflects the whole ledger.
func (r *Repository) SumSignedThrough(ctx context.Context, siteID uuid.UUID, at time.Time, id uuid.UUID) (decimal.Decimal, error) {
	var rows []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Where("created_at < ? OR (created_at = ? AND id <= ?)", at, at, id).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range rows {
		total = total.Add(rows[i].Signed())
	}
	return total, nil
}

// ListWindow returns every entry for a site inside [from, to).
func (r *Repository) ListWindow(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND entry_date >= ? AND entry_date < ?", siteID, from, to).
		Order("entry_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
