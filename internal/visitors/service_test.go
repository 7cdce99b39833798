package visitors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

type stubVisitorRepo struct {
	visitors map[uuid.UUID]*models.Visitor
}

func newStubVisitorRepo() *stubVisitorRepo {
	return &stubVisitorRepo{visitors: map[uuid.UUID]*models.Visitor{}}
}

func (s *stubVisitorRepo) Create(_ context.Context, v *models.Visitor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now().UTC()
	s.visitors[v.ID] = v
	return nil
}

func (s *stubVisitorRepo) FindByID(_ context.Context, siteID, id uuid.UUID) (*models.Visitor, error) {
	v, ok := s.visitors[id]
	if !ok || v.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (s *stubVisitorRepo) List(_ context.Context, siteID uuid.UUID, filter ListVisitorsFilter, _ *pagination.Cursor, limit int) ([]models.Visitor, error) {
	var out []models.Visitor
	for _, v := range s.visitors {
		if v.SiteID != siteID {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		out = append(out, *v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubVisitorRepo) applyValues(id uuid.UUID, values map[string]any) {
	v, ok := s.visitors[id]
	if !ok {
		return
	}
	if status, ok := values["status"].(enums.VisitorStatus); ok {
		v.Status = status
	}
	if by, ok := values["approved_by"].(uuid.UUID); ok {
		v.ApprovedBy = &by
	}
	if at, ok := values["checked_in_at"].(time.Time); ok {
		v.CheckedInAt = &at
	}
	if at, ok := values["checked_out_at"].(time.Time); ok {
		v.CheckedOutAt = &at
	}
}

func (s *stubVisitorRepo) Update(_ context.Context, id uuid.UUID, values map[string]any) error {
	s.applyValues(id, values)
	return nil
}

func (s *stubVisitorRepo) UpdateWithTx(_ context.Context, _ *gorm.DB, id uuid.UUID, values map[string]any) error {
	s.applyValues(id, values)
	return nil
}

type stubVisitorResidents struct {
	residents []models.User
}

func (s *stubVisitorResidents) ListBySite(_ context.Context, _ uuid.UUID, role *enums.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range s.residents {
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type stubVisitorNotifier struct {
	notes []*models.Notification
}

func (s *stubVisitorNotifier) CreateWithTx(_ context.Context, _ *gorm.DB, n *models.Notification) error {
	s.notes = append(s.notes, n)
	return nil
}

type stubVisitorTx struct{}

func (stubVisitorTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func visitorFlatPtr(v string) *string { return &v }

func newVisitorService(t *testing.T, repo *stubVisitorRepo, residents *stubVisitorResidents, notifier *stubVisitorNotifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Residents: residents, Notifier: notifier, Tx: stubVisitorTx{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedVisitor(repo *stubVisitorRepo, siteID uuid.UUID, status enums.VisitorStatus) *models.Visitor {
	v := &models.Visitor{
		ID:         uuid.New(),
		SiteID:     siteID,
		Name:       "Ravi Kumar",
		Phone:      "9876543210",
		FlatNumber: "B-304",
		Purpose:    "Courier delivery",
		Status:     status,
		CreatedBy:  uuid.New(),
	}
	repo.visitors[v.ID] = v
	return v
}

func TestLogVisitorStartsExpected(t *testing.T) {
	repo := newStubVisitorRepo()
	svc := newVisitorService(t, repo, &stubVisitorResidents{}, &stubVisitorNotifier{})
	siteID := uuid.New()

	dto, err := svc.Log(context.Background(), siteID, uuid.New(), LogVisitorRequest{
		Name:       "Ravi Kumar",
		Phone:      "9876543210",
		FlatNumber: "B-304",
		Purpose:    "Courier delivery",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if dto.Status != enums.VisitorStatusExpected {
		t.Fatalf("new entry must start expected, got %s", dto.Status)
	}
}

func TestCheckInNotifiesFlatResidentsOnly(t *testing.T) {
	repo := newStubVisitorRepo()
	siteID := uuid.New()
	v := seedVisitor(repo, siteID, enums.VisitorStatusExpected)

	target := models.User{ID: uuid.New(), Role: enums.RoleResident, IsActive: true, FlatNumber: visitorFlatPtr("B-304")}
	otherFlat := models.User{ID: uuid.New(), Role: enums.RoleResident, IsActive: true, FlatNumber: visitorFlatPtr("A-101")}
	inactive := models.User{ID: uuid.New(), Role: enums.RoleResident, IsActive: false, FlatNumber: visitorFlatPtr("B-304")}
	residents := &stubVisitorResidents{residents: []models.User{target, otherFlat, inactive}}
	notifier := &stubVisitorNotifier{}
	svc := newVisitorService(t, repo, residents, notifier)

	dto, err := svc.CheckIn(context.Background(), siteID, v.ID)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if dto.Status != enums.VisitorStatusCheckedIn || dto.CheckedInAt == nil {
		t.Fatalf("visitor not checked in: %+v", dto)
	}
	if len(notifier.notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.notes))
	}
	if notifier.notes[0].UserID != target.ID || notifier.notes[0].Type != enums.NotificationTypeVisitorArrived {
		t.Fatalf("notification should target the flat's active resident")
	}
}

func TestCheckInRejectsDeniedVisitor(t *testing.T) {
	repo := newStubVisitorRepo()
	siteID := uuid.New()
	v := seedVisitor(repo, siteID, enums.VisitorStatusDenied)
	svc := newVisitorService(t, repo, &stubVisitorResidents{}, &stubVisitorNotifier{})

	_, err := svc.CheckIn(context.Background(), siteID, v.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("denied visitors cannot check in, got %v", err)
	}
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	repo := newStubVisitorRepo()
	siteID := uuid.New()
	svc := newVisitorService(t, repo, &stubVisitorResidents{}, &stubVisitorNotifier{})

	expected := seedVisitor(repo, siteID, enums.VisitorStatusExpected)
	_, err := svc.CheckOut(context.Background(), siteID, expected.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected visitors cannot check out, got %v", err)
	}

	checkedIn := seedVisitor(repo, siteID, enums.VisitorStatusCheckedIn)
	dto, err := svc.CheckOut(context.Background(), siteID, checkedIn.ID)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if dto.Status != enums.VisitorStatusCheckedOut || dto.CheckedOutAt == nil {
		t.Fatalf("visitor not checked out: %+v", dto)
	}
}

func TestApproveAndDenyOnlyFromExpected(t *testing.T) {
	repo := newStubVisitorRepo()
	siteID := uuid.New()
	svc := newVisitorService(t, repo, &stubVisitorResidents{}, &stubVisitorNotifier{})

	v := seedVisitor(repo, siteID, enums.VisitorStatusExpected)
	approver := uuid.New()
	dto, err := svc.Approve(context.Background(), siteID, v.ID, approver)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if dto.ApprovedBy == nil || *dto.ApprovedBy != approver {
		t.Fatalf("approver not recorded")
	}

	denied := seedVisitor(repo, siteID, enums.VisitorStatusExpected)
	if _, err := svc.Deny(context.Background(), siteID, denied.ID, approver); err != nil {
		t.Fatalf("Deny: %v", err)
	}
	if repo.visitors[denied.ID].Status != enums.VisitorStatusDenied {
		t.Fatalf("visitor should be denied")
	}

	_, err = svc.Deny(context.Background(), siteID, denied.ID, approver)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("denied visitor cannot be denied again, got %v", err)
	}
}

func TestVisitorHiddenAcrossSites(t *testing.T) {
	repo := newStubVisitorRepo()
	siteID := uuid.New()
	v := seedVisitor(repo, siteID, enums.VisitorStatusExpected)
	svc := newVisitorService(t, repo, &stubVisitorResidents{}, &stubVisitorNotifier{})

	_, err := svc.Get(context.Background(), uuid.New(), v.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("cross-site visitor must read as not found, got %v", err)
	}
}
