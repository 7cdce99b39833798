package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// LedgerEntry records one income or expense line for a site. Entries are
// immutable once written; corrections are new entries.
type LedgerEntry struct {
	ID          uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SiteID      uuid.UUID             `gorm:"column:site_id;type:uuid;not null;index"`
	Type        enums.LedgerEntryType `gorm:"column:type;type:text;not null"`
	Category    string                `gorm:"column:category;not null"`
	Description string                `gorm:"column:description;not null"`
	Amount      decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	EntryDate   time.Time             `gorm:"column:entry_date;not null"`
	RecordedBy  uuid.UUID             `gorm:"column:recorded_by;type:uuid;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}

// Signed returns the entry amount with expenses negated.
func (l LedgerEntry) Signed() decimal.Decimal {
	if l.Type == enums.LedgerEntryTypeExpense {
		return l.Amount.Neg()
	}
	return l.Amount
}
