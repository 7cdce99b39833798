package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// EntryDTO is the transport shape for one ledger line.
type EntryDTO struct {
	ID          uuid.UUID             `json:"id"`
	SiteID      uuid.UUID             `json:"site_id"`
	Type        enums.LedgerEntryType `json:"type"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Amount      decimal.Decimal       `json:"amount"`
	EntryDate   time.Time             `json:"entry_date"`
	RecordedBy  uuid.UUID             `json:"recorded_by"`
	CreatedAt   time.Time             `json:"created_at"`
	// Balance is the site-wide running balance as of this entry. Populated
	// on listings only.
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// CreateEntryRequest records one income or expense line.
type CreateEntryRequest struct {
	Type        string     `json:"type" validate:"required,oneof=income expense"`
	Category    string     `json:"category" validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"required,min=1,max=500"`
	Amount      string     `json:"amount" validate:"required"`
	EntryDate   *time.Time `json:"entry_date,omitempty"`
}

// ListEntriesFilter narrows the ledger listing.
type ListEntriesFilter struct {
	Type     *enums.LedgerEntryType
	Category *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Cursor   string
}

func (f ListEntriesFilter) unfiltered() bool {
	return f.Type == nil && f.Category == nil && f.From == nil && f.To == nil
}

// EntryPage is one cursor page of ledger lines.
type EntryPage struct {
	Entries    []EntryDTO `json:"entries"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// Summary aggregates a site's ledger over a window.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	EntryCount   int64           `json:"entry_count"`
}

func FromModel(e *models.LedgerEntry) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:          e.ID,
		SiteID:      e.SiteID,
		Type:        e.Type,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		EntryDate:   e.EntryDate,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func FromModels(list []models.LedgerEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
