package visitors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Service defines the gate-log operations for security and residents.
type Service interface {
	Log(ctx context.Context, siteID, createdBy uuid.UUID, req LogVisitorRequest) (*VisitorDTO, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListVisitorsFilter) (*VisitorPage, error)
	Get(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error)
	Approve(ctx context.Context, siteID, id, approverID uuid.UUID) (*VisitorDTO, error)
	Deny(ctx context.Context, siteID, id, deniedBy uuid.UUID) (*VisitorDTO, error)
	CheckIn(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error)
	CheckOut(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error)
}

type repository interface {
	Create(ctx context.Context, visitor *models.Visitor) error
	FindByID(ctx context.Context, siteID, id uuid.UUID) (*models.Visitor, error)
	List(ctx context.Context, siteID uuid.UUID, filter ListVisitorsFilter, cursor *pagination.Cursor, limit int) ([]models.Visitor, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	UpdateWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, values map[string]any) error
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
	repo      repository
	residents residentLister
	notifier  notifier
	tx        transactor
}

// ServiceParams bundles the dependencies required to build a visitors service.
type ServiceParams struct {
	Repo      repository
	Residents residentLister
	Notifier  notifier
	Tx        transactor
}

// NewService constructs a visitors service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("visitors repository is required")
	}
	if params.Residents == nil {
		return nil, fmt.Errorf("resident lister is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{
		repo:      params.Repo,
		residents: params.Residents,
		notifier:  params.Notifier,
		tx:        params.Tx,
	}, nil
}

func (s *service) Log(ctx context.Context, siteID, createdBy uuid.UUID, req LogVisitorRequest) (*VisitorDTO, error) {
	visitor := &models.Visitor{
		SiteID:        siteID,
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		FlatNumber:    strings.TrimSpace(req.FlatNumber),
		Purpose:       strings.TrimSpace(req.Purpose),
		VehicleNumber: req.VehicleNumber,
		Status:        enums.VisitorStatusExpected,
		ExpectedAt:    req.ExpectedAt,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, visitor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "log visitor")
	}
	return FromModel(visitor), nil
}

func (s *service) List(ctx context.Context, siteID uuid.UUID, filter ListVisitorsFilter) (*VisitorPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	rows, err := s.repo.List(ctx, siteID, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list visitors")
	}

	page := &VisitorPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	page.Visitors = FromModels(rows)
	return page, nil
}

func (s *service) Get(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error) {
	visitor, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(visitor), nil
}

// Approve records which resident cleared the visitor. Only expected visitors
// can be approved.
func (s *service) Approve(ctx context.Context, siteID, id, approverID uuid.UUID) (*VisitorDTO, error) {
	visitor, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != enums.VisitorStatusExpected {
		return nil, transitionError(visitor.Status, enums.VisitorStatusExpected)
	}
	if err := s.repo.Update(ctx, visitor.ID, map[string]any{"approved_by": approverID}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve visitor")
	}
	visitor.ApprovedBy = &approverID
	return FromModel(visitor), nil
}

func (s *service) Deny(ctx context.Context, siteID, id, deniedBy uuid.UUID) (*VisitorDTO, error) {
	visitor, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != enums.VisitorStatusExpected {
		return nil, transitionError(visitor.Status, enums.VisitorStatusDenied)
	}
	if err := s.repo.Update(ctx, visitor.ID, map[string]any{"approved_by": deniedBy, "status": enums.VisitorStatusDenied}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deny visitor")
	}
	visitor.Status = enums.VisitorStatusDenied
	visitor.ApprovedBy = &deniedBy
	return FromModel(visitor), nil
}

// CheckIn admits an expected visitor and notifies the flat's residents in the
// same transaction.
func (s *service) CheckIn(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error) {
	visitor, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != enums.VisitorStatusExpected {
		return nil, transitionError(visitor.Status, enums.VisitorStatusCheckedIn)
	}

	role := enums.RoleResident
	residents, err := s.residents.ListBySite(ctx, siteID, &role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list residents")
	}

	now := time.Now().UTC()
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		values := map[string]any{
			"status":        enums.VisitorStatusCheckedIn,
			"checked_in_at": now,
			"updated_at":    now,
		}
		if err := s.repo.UpdateWithTx(ctx, tx, visitor.ID, values); err != nil {
			return fmt.Errorf("check in visitor: %w", err)
		}
		for i := range residents {
			r := &residents[i]
			if !r.IsActive || r.FlatNumber == nil || *r.FlatNumber != visitor.FlatNumber {
				continue
			}
			note := &models.Notification{
				SiteID:  siteID,
				UserID:  r.ID,
				Type:    enums.NotificationTypeVisitorArrived,
				Title:   "Visitor at the gate",
				Message: fmt.Sprintf("%s has checked in for flat %s (%s).", visitor.Name, visitor.FlatNumber, visitor.Purpose),
			}
			if err := s.notifier.CreateWithTx(ctx, tx, note); err != nil {
				return fmt.Errorf("notify resident: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "check in visitor")
	}

	visitor.Status = enums.VisitorStatusCheckedIn
	visitor.CheckedInAt = &now
	return FromModel(visitor), nil
}

func (s *service) CheckOut(ctx context.Context, siteID, id uuid.UUID) (*VisitorDTO, error) {
	visitor, err := s.find(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != enums.VisitorStatusCheckedIn {
		return nil, transitionError(visitor.Status, enums.VisitorStatusCheckedOut)
	}

	now := time.Now().UTC()
	values := map[string]any{
		"status":         enums.VisitorStatusCheckedOut,
		"checked_out_at": now,
		"updated_at":     now,
	}
	if err := s.repo.Update(ctx, visitor.ID, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check out visitor")
	}
	visitor.Status = enums.VisitorStatusCheckedOut
	visitor.CheckedOutAt = &now
	return FromModel(visitor), nil
}

func (s *service) find(ctx context.Context, siteID, id uuid.UUID) (*models.Visitor, error) {
	visitor, err := s.repo.FindByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "visitor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load visitor")
	}
	return visitor, nil
}

func transitionError(from, to enums.VisitorStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "invalid visitor transition").
		WithDetails(map[string]any{"from": from, "to": to})
}
