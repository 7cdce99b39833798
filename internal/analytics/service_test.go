package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubAnalyticsRepo struct {
	residents     int64
	pending       int64
	overdue       int64
	collected     decimal.Decimal
	outstanding   decimal.Decimal
	complaints    int64
	visitors      int64
	announcements int64
	income        decimal.Decimal
	expense       decimal.Decimal

	paidSince   time.Time
	ledgerSince time.Time
}

func (s *stubAnalyticsRepo) CountResidents(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.residents, nil
}

func (s *stubAnalyticsRepo) CountBillsByStatus(_ context.Context, _ uuid.UUID, status string) (int64, error) {
	if status == "pending" {
		return s.pending, nil
	}
	return s.overdue, nil
}

func (s *stubAnalyticsRepo) SumPaidSince(_ context.Context, _ uuid.UUID, since time.Time) (decimal.Decimal, error) {
	s.paidSince = since
	return s.collected, nil
}

func (s *stubAnalyticsRepo) SumOutstanding(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.outstanding, nil
}

func (s *stubAnalyticsRepo) CountOpenComplaints(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.complaints, nil
}

func (s *stubAnalyticsRepo) CountVisitorsSince(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	return s.visitors, nil
}

func (s *stubAnalyticsRepo) CountActiveAnnouncements(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	return s.announcements, nil
}

func (s *stubAnalyticsRepo) SumLedgerSince(_ context.Context, _ uuid.UUID, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.ledgerSince = since
	return s.income, s.expense, nil
}

func (s *stubAnalyticsRepo) CountSites(_ context.Context) (int64, int64, error) {
	return 12, 10, nil
}

func (s *stubAnalyticsRepo) CountAllUsers(_ context.Context) (int64, error) {
	return 4800, nil
}

func (s *stubAnalyticsRepo) SumSubscriptionFees(_ context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("50000"), nil
}

func newAnalyticsService(t *testing.T, repo *stubAnalyticsRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAdminDashboardWindowsStartOfMonth(t *testing.T) {
	repo := &stubAnalyticsRepo{
		residents:     120,
		pending:       30,
		overdue:       5,
		collected:     decimal.RequireFromString("250000"),
		complaints:    7,
		visitors:      14,
		announcements: 3,
	}
	svc := newAnalyticsService(t, repo)
	now := time.Date(2026, 4, 18, 15, 30, 0, 0, time.UTC)

	dash, err := svc.AdminDashboard(context.Background(), uuid.New(), now)
	if err != nil {
		t.Fatalf("AdminDashboard: %v", err)
	}
	if dash.TotalResidents != 120 || dash.PendingBills != 30 || dash.OverdueBills != 5 {
		t.Fatalf("counts wrong: %+v", dash)
	}
	wantSince := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if !repo.paidSince.Equal(wantSince) {
		t.Fatalf("collections window should start at month start, got %s", repo.paidSince)
	}
}

func TestAccountantDashboardCollectionRate(t *testing.T) {
	repo := &stubAnalyticsRepo{
		collected:   decimal.RequireFromString("75000"),
		outstanding: decimal.RequireFromString("25000"),
		income:      decimal.RequireFromString("80000"),
		expense:     decimal.RequireFromString("30000"),
	}
	svc := newAnalyticsService(t, repo)

	dash, err := svc.AccountantDashboard(context.Background(), uuid.New(), time.Now().UTC())
	if err != nil {
		t.Fatalf("AccountantDashboard: %v", err)
	}
	if dash.CollectionRate != 0.75 {
		t.Fatalf("collection rate = %f, want 0.75", dash.CollectionRate)
	}
}

func TestAccountantDashboardZeroBilled(t *testing.T) {
	repo := &stubAnalyticsRepo{
		collected:   decimal.Zero,
		outstanding: decimal.Zero,
	}
	svc := newAnalyticsService(t, repo)

	dash, err := svc.AccountantDashboard(context.Background(), uuid.New(), time.Now().UTC())
	if err != nil {
		t.Fatalf("AccountantDashboard: %v", err)
	}
	if dash.CollectionRate != 0 {
		t.Fatalf("rate must stay zero with nothing billed, got %f", dash.CollectionRate)
	}
}

func TestSuperAdminDashboard(t *testing.T) {
	svc := newAnalyticsService(t, &stubAnalyticsRepo{})

	dash, err := svc.SuperAdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("SuperAdminDashboard: %v", err)
	}
	if dash.TotalSites != 12 || dash.ActiveSites != 10 || dash.TotalUsers != 4800 {
		t.Fatalf("aggregates wrong: %+v", dash)
	}
	if !dash.SubscriptionRevenue.Equal(decimal.RequireFromString("50000")) {
		t.Fatalf("revenue = %s", dash.SubscriptionRevenue)
	}
}
