package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
)

// Repository runs the aggregate queries behind the dashboards. It reads the
// same tables the domain repos write; it never mutates anything.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountResidents(ctx context.Context, siteID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("site_id = ? AND role = ? AND is_active = ?", siteID, "resident", true).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountBillsByStatus(ctx context.Context, siteID uuid.UUID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("site_id = ? AND status = ?", siteID, status).
		Count(&count).Error
	return count, err
}

// SumPaidSince totals bills settled after since, late fees included.
func (r *Repository) SumPaidSince(ctx context.Context, siteID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND status = ? AND paid_at >= ?", siteID, "paid", since).
		Find(&bills).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range bills {
		total = total.Add(bills[i].Total())
	}
	return total, nil
}

// SumOutstanding totals unpaid bills, late fees included.
func (r *Repository) SumOutstanding(ctx context.Context, siteID uuid.UUID) (decimal.Decimal, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND status IN ?", siteID, []string{"pending", "overdue"}).
		Find(&bills).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range bills {
		total = total.Add(bills[i].Total())
	}
	return total, nil
}

func (r *Repository) CountOpenComplaints(ctx context.Context, siteID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("site_id = ? AND status IN ?", siteID, []string{"open", "in_progress"}).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountVisitorsSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visitor{}).
		Where("site_id = ? AND created_at >= ?", siteID, since).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountActiveAnnouncements(ctx context.Context, siteID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("site_id = ? AND published_at <= ?", siteID, now).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&count).Error
	return count, err
}

// SumLedgerSince totals income and expense lines dated after since.
func (r *Repository) SumLedgerSince(ctx context.Context, siteID uuid.UUID, since time.Time) (income, expense decimal.Decimal, err error) {
	var entries []models.LedgerEntry
	err = r.db.WithContext(ctx).
		Where("site_id = ? AND entry_date >= ?", siteID, since).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	income, expense = decimal.Zero, decimal.Zero
	for i := range entries {
		if entries[i].Type == "expense" {
			expense = expense.Add(entries[i].Amount)
		} else {
			income = income.Add(entries[i].Amount)
		}
	}
	return income, expense, nil
}

func (r *Repository) CountSites(ctx context.Context) (total, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.Site{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&models.Site{}).
		Where("is_active = ?", true).
		Count(&active).Error
	return total, active, err
}

func (r *Repository) CountAllUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// SumSubscriptionFees totals the subscription fee of every active site.
func (r *Repository) SumSubscriptionFees(ctx context.Context) (decimal.Decimal, error) {
	var sites []models.Site
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&sites).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range sites {
		total = total.Add(sites[i].SubscriptionFee)
	}
	return total, nil
}
