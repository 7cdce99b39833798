package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Service defines the accountant-facing ledger operations.
type Service interface {
	Record(ctx context.Context, siteID, recordedBy uuid.UUID, req CreateEntryRequest) (*EntryDTO, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListEntriesFilter) (*EntryPage, error)
	Summarize(ctx context.Context, siteID uuid.UUID, from, to time.Time) (*Summary, error)
}

type repository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	List(ctx context.Context, siteID uuid.UUID, filter ListEntriesFilter, cursor *pagination.Cursor, limit int) ([]models.LedgerEntry, error)
	ListWindow(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]models.LedgerEntry, error)
	SumSignedThrough(ctx context.Context, siteID uuid.UUID, at time.Time, id uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a ledger service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a ledger service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Record appends an immutable ledger line. Corrections are new entries with
// the opposite type.
func (s *service) Record(ctx context.Context, siteID, recordedBy uuid.UUID, req CreateEntryRequest) (*EntryDTO, error) {
	entryType, err := enums.ParseLedgerEntryType(req.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown entry type").
			WithDetails(map[string]any{"type": req.Type})
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number")
	}

	entryDate := time.Now().UTC()
	if req.EntryDate != nil {
		entryDate = req.EntryDate.UTC()
	}

	entry := &models.LedgerEntry{
		SiteID:      siteID,
		Type:        entryType,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		EntryDate:   entryDate,
		RecordedBy:  recordedBy,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record ledger entry")
	}
	return FromModel(entry), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, filter ListEntriesFilter) (*EntryPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	rows, err := s.repo.List(ctx, siteID, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ledger entries")
	}

	page := &EntryPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	page.Entries = FromModels(rows)

	// Attach the site-wide running balance as of each entry. One aggregate
	// anchors the newest row of the page; the rest walk down from it. The
	// walk is only valid when no filter hides interleaved entries, so
	// filtered listings carry no balances.
	if len(rows) > 0 && filter.unfiltered() {
		balance, err := s.repo.SumSignedThrough(ctx, siteID, rows[0].CreatedAt, rows[0].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compute running balance")
		}
		for i := range rows {
			at := balance
			page.Entries[i].Balance = &at
			balance = balance.Sub(rows[i].Signed())
		}
	}
	return page, nil
}

// Summarize totals a window of entries. The balance is income minus expense.
func (s *service) Summarize(ctx context.Context, siteID uuid.UUID, from, to time.Time) (*Summary, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window end must be after start")
	}
	entries, err := s.repo.ListWindow(ctx, siteID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ledger window")
	}

	summary := &Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
		EntryCount:   int64(len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Type == enums.LedgerEntryTypeExpense {
			summary.TotalExpense = summary.TotalExpense.Add(e.Amount)
		} else {
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
		}
		summary.Balance = summary.Balance.Add(e.Signed())
	}
	return summary, nil
}
