package complaints

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// allowedTransitions encodes the complaint lifecycle. Resolved and rejected
// are terminal.
var allowedTransitions = map[enums.ComplaintStatus][]enums.ComplaintStatus{
	enums.ComplaintStatusOpen:       {enums.ComplaintStatusInProgress, enums.ComplaintStatusResolved, enums.ComplaintStatusRejected},
	enums.ComplaintStatusInProgress: {enums.ComplaintStatusResolved, enums.ComplaintStatusRejected},
}

// Service defines complaint operations for residents and staff.
type Service interface {
	Create(ctx context.Context, siteID, userID uuid.UUID, flatNumber string, req CreateComplaintRequest) (*ComplaintDTO, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListComplaintsFilter) (*ComplaintPage, error)
	Get(ctx context.Context, siteID, id uuid.UUID) (*ComplaintDTO, error)
	UpdateStatus(ctx context.Context, siteID, id uuid.UUID, req UpdateStatusRequest) (*ComplaintDTO, error)
	AddComment(ctx context.Context, siteID, complaintID, authorID uuid.UUID, req AddCommentRequest) (*CommentDTO, error)
	ListComments(ctx context.Context, siteID, complaintID uuid.UUID) ([]CommentDTO, error)
}

type repository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Complaint, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListComplaintsFilter, cursor *pagination.Cursor, limit int) ([]models.Complaint, error)
	UpdateStatusWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, values map[string]any) error
	AddComment(ctx context.Context, comment *models.ComplaintComment) error
	ListComments(ctx context.Context, complaintID uuid.UUID) ([]models.ComplaintComment, error)
}

type notifier interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, n *models.Notification) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     repository
	notifier notifier
	tx       transactor
}

// ServiceParams bundles the dependencies required to build a complaints service.
type ServiceParams struct {
	Repo     repository
	Notifier notifier
	Tx       transactor
}

// NewService constructs a complaints service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("complaints repository is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{repo: params.Repo, notifier: params.Notifier, tx: params.Tx}, nil
}

func (s *service) Create(ctx context.Context, siteID, userID uuid.UUID, flatNumber string, req CreateComplaintRequest) (*ComplaintDTO, error) {
	category, err := enums.ParseComplaintCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown complaint category").
			WithDetails(map[string]any{"category": req.Category})
	}
	if strings.TrimSpace(flatNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flat number is required")
	}

	complaint := &models.Complaint{
		SiteID:      siteID,
		UserID:      userID,
		FlatNumber:  flatNumber,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Status:      enums.ComplaintStatusOpen,
		PhotoURL:    req.PhotoURL,
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create complaint")
	}
	return FromModel(complaint), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, filter ListComplaintsFilter) (*ComplaintPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	rows, err := s.repo.List(ctx, siteID, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list complaints")
	}

	page := &ComplaintPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	page.Complaints = FromModels(rows)
	return page, nil
}

func (s *service) Get(ctx context.Context, siteID, id uuid.UUID) (*ComplaintDTO, error) {
	complaint, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(complaint), nil
}

// UpdateStatus moves the complaint through its lifecycle and notifies the
// reporter inside the same transaction.
func (s *service) UpdateStatus(ctx context.Context, siteID, id uuid.UUID, req UpdateStatusRequest) (*ComplaintDTO, error) {
	next, err := enums.ParseComplaintStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown complaint status").
			WithDetails(map[string]any{"status": req.Status})
	}

	complaint, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(complaint.Status, next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition").
			WithDetails(map[string]any{"from": complaint.Status, "to": next})
	}
	if next == enums.ComplaintStatusResolved && (req.Resolution == nil || strings.TrimSpace(*req.Resolution) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resolution is required when resolving")
	}

	values := map[string]any{"status": next}
	if req.AssignedTo != nil {
		values["assigned_to"] = *req.AssignedTo
	}
	if req.Resolution != nil {
		values["resolution"] = strings.TrimSpace(*req.Resolution)
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusWithTx(ctx, tx, complaint.ID, values); err != nil {
			return fmt.Errorf("update complaint status: %w", err)
		}
		note := &models.Notification{
			SiteID:  siteID,
			UserID:  complaint.UserID,
			Type:    enums.NotificationTypeComplaintUpdated,
			Title:   "Complaint updated",
			Message: fmt.Sprintf("Your complaint %q is now %s.", complaint.Title, next),
		}
		return s.notifier.CreateWithTx(ctx, tx, note)
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "update complaint")
	}

	complaint.Status = next
	if req.AssignedTo != nil {
		complaint.AssignedTo = req.AssignedTo
	}
	if req.Resolution != nil {
		complaint.Resolution = req.Resolution
	}
	return FromModel(complaint), nil
}

func (s *service) AddComment(ctx context.Context, siteID, complaintID, authorID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	if _, err := s.find(ctx, siteID, complaintID); err != nil {
		return nil, err
	}
	comment := &models.ComplaintComment{
		ComplaintID: complaintID,
		AuthorID:    authorID,
		Body:        strings.TrimSpace(req.Body),
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add comment")
	}
	return commentFromModel(comment), nil
}

func (s *service) ListComments(ctx context.Context, siteID, complaintID uuid.UUID) ([]CommentDTO, error) {
	if _, err := s.find(ctx, siteID, complaintID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, complaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list comments")
	}
	return commentsFromModels(comments), nil
}

func (s *service) find(ctx context.Context, siteID, id uuid.UUID) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load complaint")
	}
	return complaint, nil
}

func transitionAllowed(from, to enums.ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
