package bills

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// BillDTO is the transport shape for one bill.
type BillDTO struct {
	ID            uuid.UUID          `json:"id"`
	SiteID        uuid.UUID          `json:"site_id"`
	UserID        *uuid.UUID         `json:"user_id,omitempty"`
	FlatNumber    string             `json:"flat_number"`
	Category      enums.BillCategory `json:"category"`
	Amount        decimal.Decimal    `json:"amount"`
	LateFee       decimal.Decimal    `json:"late_fee"`
	Total         decimal.Decimal    `json:"total"`
	Status        enums.BillStatus   `json:"status"`
	PeriodMonth   int                `json:"period_month"`
	PeriodYear    int                `json:"period_year"`
	DueDate       time.Time          `json:"due_date"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CreateBillRequest is the admin payload for raising a one-off bill.
type CreateBillRequest struct {
	FlatNumber  string     `json:"flat_number" validate:"required,min=1,max=20"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Category    string     `json:"category" validate:"required,oneof=maintenance water electricity parking other"`
	Amount      string     `json:"amount" validate:"required"`
	PeriodMonth int        `json:"period_month" validate:"required,min=1,max=12"`
	PeriodYear  int        `json:"period_year" validate:"required,min=2000,max=2200"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// PayBillRequest records how a resident settled a bill.
type PayBillRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card upi netbanking cash"`
}

// ListBillsFilter narrows the admin bill listing.
type ListBillsFilter struct {
	Status      *enums.BillStatus
	Category    *enums.BillCategory
	FlatNumber  *string
	PeriodMonth *int
	PeriodYear  *int
	Limit       int
	Cursor      string
}

// BillPage is one cursor page of bills.
type BillPage struct {
	Bills      []BillDTO `json:"bills"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

func FromModel(b *models.Bill) *BillDTO {
	if b == nil {
		return nil
	}
	return &BillDTO{
		ID:            b.ID,
		SiteID:        b.SiteID,
		UserID:        b.UserID,
		FlatNumber:    b.FlatNumber,
		Category:      b.Category,
		Amount:        b.Amount,
		LateFee:       b.LateFee,
		Total:         b.Total(),
		Status:        b.Status,
		PeriodMonth:   b.PeriodMonth,
		PeriodYear:    b.PeriodYear,
		DueDate:       b.DueDate,
		PaidAt:        b.PaidAt,
		PaymentMethod: b.PaymentMethod,
		CreatedAt:     b.CreatedAt,
	}
}

func FromModels(list []models.Bill) []BillDTO {
	out := make([]BillDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
