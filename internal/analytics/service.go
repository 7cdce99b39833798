package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
)

// Service assembles the role dashboards from aggregate queries.
type Service interface {
	AdminDashboard(ctx context.Context, siteID uuid.UUID, now time.Time) (*AdminDashboard, error)
	AccountantDashboard(ctx context.Context, siteID uuid.UUID, now time.Time) (*AccountantDashboard, error)
	SuperAdminDashboard(ctx context.Context) (*SuperAdminDashboard, error)
}

type repository interface {
	CountResidents(ctx context.Context, siteID uuid.UUID) (int64, error)
	CountBillsByStatus(ctx context.Context, siteID uuid.UUID, status string) (int64, error)
	SumPaidSince(ctx context.Context, siteID uuid.UUID, since time.Time) (decimal.Decimal, error)
	SumOutstanding(ctx context.Context, siteID uuid.UUID) (decimal.Decimal, error)
	CountOpenComplaints(ctx context.Context, siteID uuid.UUID) (int64, error)
	CountVisitorsSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error)
	CountActiveAnnouncements(ctx context.Context, siteID uuid.UUID, now time.Time) (int64, error)
	SumLedgerSince(ctx context.Context, siteID uuid.UUID, since time.Time) (income, expense decimal.Decimal, err error)
	CountSites(ctx context.Context) (total, active int64, err error)
	CountAllUsers(ctx context.Context) (int64, error)
	SumSubscriptionFees(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build an analytics service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs an analytics service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("analytics repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) AdminDashboard(ctx context.Context, siteID uuid.UUID, now time.Time) (*AdminDashboard, error) {
	dash := &AdminDashboard{}

	var err error
	if dash.TotalResidents, err = s.repo.CountResidents(ctx, siteID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count residents")
	}
	if dash.PendingBills, err = s.repo.CountBillsByStatus(ctx, siteID, "pending"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending bills")
	}
	if dash.OverdueBills, err = s.repo.CountBillsByStatus(ctx, siteID, "overdue"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count overdue bills")
	}
	if dash.CollectedThisMonth, err = s.repo.SumPaidSince(ctx, siteID, monthStart(now)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum collections")
	}
	if dash.OpenComplaints, err = s.repo.CountOpenComplaints(ctx, siteID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count complaints")
	}
	if dash.VisitorsToday, err = s.repo.CountVisitorsSince(ctx, siteID, dayStart(now)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count visitors")
	}
	if dash.ActiveAnnouncements, err = s.repo.CountActiveAnnouncements(ctx, siteID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count announcements")
	}
	return dash, nil
}

func (s *service) AccountantDashboard(ctx context.Context, siteID uuid.UUID, now time.Time) (*AccountantDashboard, error) {
	dash := &AccountantDashboard{}
	since := monthStart(now)

	var err error
	if dash.CollectedThisMonth, err = s.repo.SumPaidSince(ctx, siteID, since); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum collections")
	}
	if dash.OutstandingAmount, err = s.repo.SumOutstanding(ctx, siteID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum outstanding")
	}
	if dash.IncomeThisMonth, dash.ExpenseThisMonth, err = s.repo.SumLedgerSince(ctx, siteID, since); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum ledger")
	}

	billed := dash.CollectedThisMonth.Add(dash.OutstandingAmount)
	if billed.IsPositive() {
		rate, _ := dash.CollectedThisMonth.Div(billed).Float64()
		dash.CollectionRate = rate
	}
	return dash, nil
}

func (s *service) SuperAdminDashboard(ctx context.Context) (*SuperAdminDashboard, error) {
	dash := &SuperAdminDashboard{}

	total, active, err := s.repo.CountSites(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count sites")
	}
	dash.TotalSites, dash.ActiveSites = total, active

	if dash.TotalUsers, err = s.repo.CountAllUsers(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	if dash.SubscriptionRevenue, err = s.repo.SumSubscriptionFees(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum subscriptions")
	}
	return dash, nil
}

func monthStart(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayStart(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
