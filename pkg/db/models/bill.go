package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// Bill is one charge against a flat for a billing period. One bill exists per
// flat, category, and period (enforced by a unique index).
type Bill struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SiteID        uuid.UUID          `gorm:"column:site_id;type:uuid;not null;index;uniqueIndex:idx_bills_flat_period,priority:1"`
	UserID        *uuid.UUID         `gorm:"column:user_id;type:uuid;index"`
	FlatNumber    string             `gorm:"column:flat_number;not null;uniqueIndex:idx_bills_flat_period,priority:2"`
	Category      enums.BillCategory `gorm:"column:category;type:text;not null;uniqueIndex:idx_bills_flat_period,priority:3"`
	Amount        decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	LateFee       decimal.Decimal    `gorm:"column:late_fee;type:numeric(12,2);not null;default:0"`
	Status        enums.BillStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PeriodMonth   int                `gorm:"column:period_month;not null;uniqueIndex:idx_bills_flat_period,priority:4"`
	PeriodYear    int                `gorm:"column:period_year;not null;uniqueIndex:idx_bills_flat_period,priority:5"`
	DueDate       time.Time          `gorm:"column:due_date;not null"`
	PaidAt        *time.Time         `gorm:"column:paid_at"`
	PaymentMethod *string            `gorm:"column:payment_method"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Total returns the amount owed including any accrued late fee.
func (b Bill) Total() decimal.Decimal {
	return b.Amount.Add(b.LateFee)
}
