package complaints

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

type stubComplaintRepo struct {
	complaints map[uuid.UUID]*models.Complaint
	comments   map[uuid.UUID][]models.ComplaintComment
	updates    map[uuid.UUID]map[string]any
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{
		complaints: map[uuid.UUID]*models.Complaint{},
		comments:   map[uuid.UUID][]models.ComplaintComment{},
		updates:    map[uuid.UUID]map[string]any{},
	}
}

func (s *stubComplaintRepo) Create(_ context.Context, c *models.Complaint) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	s.complaints[c.ID] = c
	return nil
}

func (s *stubComplaintRepo) FindByID(_ context.Context, siteID, id uuid.UUID) (*models.Complaint, error) {
	c, ok := s.complaints[id]
	if !ok || c.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubComplaintRepo) List(_ context.Context, siteID uuid.UUID, filter ListComplaintsFilter, _ *pagination.Cursor, limit int) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range s.complaints {
		if c.SiteID != siteID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		out = append(out, *c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubComplaintRepo) UpdateStatusWithTx(_ context.Context, _ *gorm.DB, id uuid.UUID, values map[string]any) error {
	s.updates[id] = values
	return nil
}

func (s *stubComplaintRepo) AddComment(_ context.Context, c *models.ComplaintComment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.comments[c.ComplaintID] = append(s.comments[c.ComplaintID], *c)
	return nil
}

func (s *stubComplaintRepo) ListComments(_ context.Context, complaintID uuid.UUID) ([]models.ComplaintComment, error) {
	return s.comments[complaintID], nil
}

type stubComplaintNotifier struct {
	notes []*models.Notification
}

func (s *stubComplaintNotifier) CreateWithTx(_ context.Context, _ *gorm.DB, n *models.Notification) error {
	s.notes = append(s.notes, n)
	return nil
}

type stubComplaintTx struct{}

func (stubComplaintTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newComplaintService(t *testing.T, repo *stubComplaintRepo, notifier *stubComplaintNotifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Notifier: notifier, Tx: stubComplaintTx{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedComplaint(repo *stubComplaintRepo, siteID uuid.UUID, status enums.ComplaintStatus) *models.Complaint {
	c := &models.Complaint{
		ID:         uuid.New(),
		SiteID:     siteID,
		UserID:     uuid.New(),
		FlatNumber: "B-304",
		Title:      "Leaking pipe",
		Category:   enums.ComplaintCategoryPlumbing,
		Status:     status,
	}
	repo.complaints[c.ID] = c
	return c
}

func TestCreateComplaintStartsOpen(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(t, repo, &stubComplaintNotifier{})
	siteID := uuid.New()
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), siteID, userID, "B-304", CreateComplaintRequest{
		Title:       "Leaking pipe",
		Description: "Water leaking under the kitchen sink.",
		Category:    "plumbing",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Status != enums.ComplaintStatusOpen {
		t.Fatalf("new complaint must be open, got %s", dto.Status)
	}
	if dto.SiteID != siteID || dto.UserID != userID || dto.FlatNumber != "B-304" {
		t.Fatalf("complaint not scoped to reporter: %+v", dto)
	}
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	repo := newStubComplaintRepo()
	notifier := &stubComplaintNotifier{}
	svc := newComplaintService(t, repo, notifier)
	siteID := uuid.New()
	c := seedComplaint(repo, siteID, enums.ComplaintStatusOpen)

	dto, err := svc.UpdateStatus(context.Background(), siteID, c.ID, UpdateStatusRequest{Status: "in_progress"})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.Status != enums.ComplaintStatusInProgress {
		t.Fatalf("expected in_progress, got %s", dto.Status)
	}
	if len(notifier.notes) != 1 || notifier.notes[0].Type != enums.NotificationTypeComplaintUpdated {
		t.Fatalf("reporter should be notified of the change")
	}
	if notifier.notes[0].UserID != c.UserID {
		t.Fatalf("notification must target the reporter")
	}
}

func TestUpdateStatusRejectsTerminalTransitions(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(t, repo, &stubComplaintNotifier{})
	siteID := uuid.New()
	c := seedComplaint(repo, siteID, enums.ComplaintStatusResolved)

	_, err := svc.UpdateStatus(context.Background(), siteID, c.ID, UpdateStatusRequest{Status: "in_progress"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("resolved complaints must not reopen, got %v", err)
	}
}

func TestUpdateStatusRequiresResolutionWhenResolving(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(t, repo, &stubComplaintNotifier{})
	siteID := uuid.New()
	c := seedComplaint(repo, siteID, enums.ComplaintStatusInProgress)

	_, err := svc.UpdateStatus(context.Background(), siteID, c.ID, UpdateStatusRequest{Status: "resolved"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	resolution := "Replaced the pipe joint."
	dto, err := svc.UpdateStatus(context.Background(), siteID, c.ID, UpdateStatusRequest{Status: "resolved", Resolution: &resolution})
	if err != nil {
		t.Fatalf("UpdateStatus with resolution: %v", err)
	}
	if dto.Resolution == nil || *dto.Resolution != resolution {
		t.Fatalf("resolution not recorded: %+v", dto)
	}
}

func TestCommentsHiddenAcrossSites(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(t, repo, &stubComplaintNotifier{})
	siteID := uuid.New()
	c := seedComplaint(repo, siteID, enums.ComplaintStatusOpen)

	if _, err := svc.AddComment(context.Background(), siteID, c.ID, uuid.New(), AddCommentRequest{Body: "Looking into it."}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	comments, err := svc.ListComments(context.Background(), siteID, c.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("expected one comment, got %v err %v", comments, err)
	}

	_, err = svc.ListComments(context.Background(), uuid.New(), c.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("cross-site complaint must read as not found, got %v", err)
	}
}
