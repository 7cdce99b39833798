package bills

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Service defines billing operations for admins, residents and the scheduler.
type Service interface {
	Create(ctx context.Context, siteID uuid.UUID, req CreateBillRequest) (*BillDTO, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListBillsFilter) (*BillPage, error)
	ListForFlat(ctx context.Context, siteID uuid.UUID, flatNumber string, limit int, cursor string) (*BillPage, error)
	Get(ctx context.Context, siteID, id uuid.UUID) (*BillDTO, error)
	Pay(ctx context.Context, siteID, billID, payerID uuid.UUID, payerFlat string, req PayBillRequest) (*BillDTO, error)
	GenerateMonthly(ctx context.Context, now time.Time) (int, error)
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

type repository interface {
	Create(ctx context.Context, bill *models.Bill) error
	CreateWithTx(ctx context.Context, tx *gorm.DB, bill *models.Bill) error
	FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Bill, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListBillsFilter, cursor *pagination.Cursor, limit int) ([]models.Bill, error)
	ExistsForPeriod(ctx context.Context, siteID uuid.UUID, flatNumber string, category string, month, year int) (bool, error)
	MarkPaidWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, paidAt time.Time, method string) error
	ListDuePending(ctx context.Context, now time.Time) ([]models.Bill, error)
	MarkOverdueWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, lateFee decimal.Decimal, now time.Time) error
}

type siteLister interface {
	List(ctx context.Context, activeOnly bool) ([]models.Site, error)
}

type residentLister interface {
	ListBySite(ctx context.Context, siteID uuid.UUID, role *enums.Role) ([]models.User, error)
}

type notifier interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, n *models.Notification) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     repository
	sites    siteLister
	users    residentLister
	notifier notifier
	tx       transactor
	billing  config.BillingConfig
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build a bills service.
type ServiceParams struct {
	Repo     repository
	Sites    siteLister
	Users    residentLister
	Notifier notifier
	Tx       transactor
	Billing  config.BillingConfig
	Logger   *logger.Logger
}

// NewService constructs a bills service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("bills repository is required")
	}
	if params.Sites == nil {
		return nil, fmt.Errorf("site lister is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("resident lister is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{
		repo:     params.Repo,
		sites:    params.Sites,
		users:    params.Users,
		notifier: params.Notifier,
		tx:       params.Tx,
		billing:  params.Billing,
		logg:     params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, siteID uuid.UUID, req CreateBillRequest) (*BillDTO, error) {
	category, err := enums.ParseBillCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown bill category").
			WithDetails(map[string]any{"category": req.Category})
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number")
	}

	dueDate := s.dueDateFor(req.PeriodMonth, req.PeriodYear)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	bill := &models.Bill{
		SiteID:      siteID,
		UserID:      req.UserID,
		FlatNumber:  strings.TrimSpace(req.FlatNumber),
		Category:    category,
		Amount:      amount,
		LateFee:     decimal.Zero,
		Status:      enums.BillStatusPending,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		DueDate:     dueDate,
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "flat already billed for this period")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bill")
	}
	return FromModel(bill), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, filter ListBillsFilter) (*BillPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	rows, err := s.repo.List(ctx, siteID, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bills")
	}
	return buildPage(rows, limit), nil
}

func (s *service) ListForFlat(ctx context.Context, siteID uuid.UUID, flatNumber string, limit int, rawCursor string) (*BillPage, error) {
	if strings.TrimSpace(flatNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flat number is required")
	}
	flat := flatNumber
	return s.List(ctx, siteID, ListBillsFilter{FlatNumber: &flat, Limit: limit, Cursor: rawCursor})
}

func (s *service) Get(ctx context.Context, siteID, id uuid.UUID) (*BillDTO, error) {
	bill, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(bill), nil
}

// Pay settles a bill on behalf of the resident who owns the flat. Bills of
// other flats surface as not found rather than forbidden.
func (s *service) Pay(ctx context.Context, siteID, billID, payerID uuid.UUID, payerFlat string, req PayBillRequest) (*BillDTO, error) {
	bill, err := s.find(ctx, siteID, billID)
	if err != nil {
		return nil, err
	}
	if bill.FlatNumber != payerFlat {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
	}
	if bill.Status == enums.BillStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "bill is already paid")
	}

	paidAt := time.Now().UTC()
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.MarkPaidWithTx(ctx, tx, bill.ID, paidAt, req.PaymentMethod); err != nil {
			return fmt.Errorf("mark bill paid: %w", err)
		}
		note := &models.Notification{
			SiteID:  siteID,
			UserID:  payerID,
			Type:    enums.NotificationTypeBillPaid,
			Title:   "Payment received",
			Message: fmt.Sprintf("Payment of %s received for flat %s (%s %d/%d).", bill.Total().StringFixed(2), bill.FlatNumber, bill.Category, bill.PeriodMonth, bill.PeriodYear),
		}
		if err := s.notifier.CreateWithTx(ctx, tx, note); err != nil {
			return fmt.Errorf("record payment notification: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "pay bill")
	}

	bill.Status = enums.BillStatusPaid
	bill.PaidAt = &paidAt
	bill.PaymentMethod = &req.PaymentMethod
	return FromModel(bill), nil
}

// GenerateMonthly raises the maintenance bill for every occupied flat of every
// active site for the period containing now. Existing bills are skipped, so
// the job is safe to rerun within the same period.
func (s *service) GenerateMonthly(ctx context.Context, now time.Time) (int, error) {
	sites, err := s.sites.List(ctx, true)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sites")
	}

	month := int(now.Month())
	year := now.Year()
	dueDate := now.UTC().AddDate(0, 0, s.dueDays())
	created := 0

	for i := range sites {
		site := &sites[i]
		flats, err := s.occupiedFlats(ctx, site.ID)
		if err != nil {
			return created, err
		}
		for flat, residentID := range flats {
			exists, err := s.repo.ExistsForPeriod(ctx, site.ID, flat, enums.BillCategoryMaintenance.String(), month, year)
			if err != nil {
				return created, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing bill")
			}
			if exists {
				continue
			}

			resident := residentID
			bill := &models.Bill{
				SiteID:      site.ID,
				UserID:      &resident,
				FlatNumber:  flat,
				Category:    enums.BillCategoryMaintenance,
				Amount:      site.MaintenanceFee,
				LateFee:     decimal.Zero,
				Status:      enums.BillStatusPending,
				PeriodMonth: month,
				PeriodYear:  year,
				DueDate:     dueDate,
			}
			txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
				if err := s.repo.CreateWithTx(ctx, tx, bill); err != nil {
					return err
				}
				note := &models.Notification{
					SiteID:  site.ID,
					UserID:  resident,
					Type:    enums.NotificationTypeBillCreated,
					Title:   "New maintenance bill",
					Message: fmt.Sprintf("Maintenance bill of %s raised for flat %s, due %s.", site.MaintenanceFee.StringFixed(2), flat, dueDate.Format("02 Jan 2006")),
				}
				return s.notifier.CreateWithTx(ctx, tx, note)
			})
			if txErr != nil {
				if db.IsUniqueViolation(txErr) {
					continue
				}
				return created, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "generate bill")
			}
			created++
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "created", created), "billing.generate.complete")
	}
	return created, nil
}

// MarkOverdue flips pending bills past their due date to overdue and accrues
// the configured late fee percentage once.
func (s *service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListDuePending(ctx, now)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list due bills")
	}

	marked := 0
	for i := range due {
		bill := &due[i]
		lateFee := bill.Amount.Mul(decimal.NewFromInt(int64(s.lateFeePercent()))).Div(decimal.NewFromInt(100)).Round(2)
		txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			if err := s.repo.MarkOverdueWithTx(ctx, tx, bill.ID, lateFee, now); err != nil {
				return fmt.Errorf("mark overdue: %w", err)
			}
			if bill.UserID == nil {
				return nil
			}
			note := &models.Notification{
				SiteID:  bill.SiteID,
				UserID:  *bill.UserID,
				Type:    enums.NotificationTypeBillOverdue,
				Title:   "Bill overdue",
				Message: fmt.Sprintf("The %s bill for flat %s is overdue. A late fee of %s has been applied.", bill.Category, bill.FlatNumber, lateFee.StringFixed(2)),
			}
			return s.notifier.CreateWithTx(ctx, tx, note)
		})
		if txErr != nil {
			return marked, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "mark bill overdue")
		}
		marked++
	}

	if s.logg != nil && marked > 0 {
		s.logg.Info(s.logg.WithField(ctx, "marked", marked), "billing.overdue.complete")
	}
	return marked, nil
}

func (s *service) find(ctx context.Context, siteID, id uuid.UUID) (*models.Bill, error) {
	bill, err := s.repo.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bill")
	}
	return bill, nil
}

// occupiedFlats maps each flat with at least one active resident to one of
// its residents, used as the notification target for generated bills.
func (s *service) occupiedFlats(ctx context.Context, siteID uuid.UUID) (map[string]uuid.UUID, error) {
	role := enums.RoleResident
	residents, err := s.users.ListBySite(ctx, siteID, &role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list residents")
	}
	flats := make(map[string]uuid.UUID)
	for i := range residents {
		r := &residents[i]
		if !r.IsActive || r.FlatNumber == nil || *r.FlatNumber == "" {
			continue
		}
		if _, ok := flats[*r.FlatNumber]; !ok {
			flats[*r.FlatNumber] = r.ID
		}
	}
	return flats, nil
}

func (s *service) dueDateFor(month, year int) time.Time {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return periodStart.AddDate(0, 0, s.dueDays())
}

func (s *service) dueDays() int {
	if s.billing.DueDays > 0 {
		return s.billing.DueDays
	}
	return 15
}

func (s *service) lateFeePercent() int {
	if s.billing.LateFeePercent > 0 {
		return s.billing.LateFeePercent
	}
	return 5
}

func buildPage(rows []models.Bill, limit int) *BillPage {
	page := &BillPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	page.Bills = FromModels(rows)
	return page
}
