package sites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/internal/users"
	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/security"
)

// Service defines the superadmin-facing site operations.
type Service interface {
	Create(ctx context.Context, req CreateSiteRequest) (*CreateSiteResponse, error)
	List(ctx context.Context, activeOnly bool) ([]SiteDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*SiteDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateSiteRequest) (*SiteDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, site *models.Site) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error)
	List(ctx context.Context, activeOnly bool) ([]models.Site, error)
	Updates(ctx context.Context, id uuid.UUID, values map[string]any) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepository interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        repository
	userRepo    userRepository
	tx          transactor
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a sites service.
type ServiceParams struct {
	Repo           repository
	UserRepo       userRepository
	Tx             transactor
	PasswordConfig config.PasswordConfig
}

// NewService constructs a sites service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sites repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{
		repo:        params.Repo,
		userRepo:    params.UserRepo,
		tx:          params.Tx,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Create provisions a site together with its first admin account in one
// transaction. The admin email must not already exist anywhere in the system.
func (s *service) Create(ctx context.Context, req CreateSiteRequest) (*CreateSiteResponse, error) {
	maintenanceFee, err := parseFee(req.MaintenanceFee, "maintenance_fee")
	if err != nil {
		return nil, err
	}
	subscriptionFee := decimal.Zero
	if req.SubscriptionFee != "" {
		if subscriptionFee, err = parseFee(req.SubscriptionFee, "subscription_fee"); err != nil {
			return nil, err
		}
	}

	tier := enums.SubscriptionTierBasic
	if req.SubscriptionTier != "" {
		parsed, err := enums.ParseSubscriptionTier(req.SubscriptionTier)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown subscription tier").
				WithDetails(map[string]any{"subscription_tier": req.SubscriptionTier})
		}
		tier = parsed
	}

	adminEmail := strings.ToLower(strings.TrimSpace(req.AdminEmail))
	if existing, err := s.userRepo.FindByEmail(ctx, adminEmail); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin email")
	}

	hash, err := security.HashPassword(req.AdminPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
	}

	site := &models.Site{
		Name:             strings.TrimSpace(req.Name),
		Address:          strings.TrimSpace(req.Address),
		City:             strings.TrimSpace(req.City),
		State:            strings.TrimSpace(req.State),
		Pincode:          strings.TrimSpace(req.Pincode),
		Blocks:           pq.StringArray(req.Blocks),
		FloorsPerBlock:   req.FloorsPerBlock,
		UnitsPerFloor:    req.UnitsPerFloor,
		AdminName:        strings.TrimSpace(req.AdminName),
		AdminEmail:       adminEmail,
		AdminPhone:       req.AdminPhone,
		MaintenanceFee:   maintenanceFee,
		SubscriptionTier: tier,
		SubscriptionFee:  subscriptionFee,
		IsActive:         true,
	}

	var admin *models.User
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(ctx, tx, site); err != nil {
			return fmt.Errorf("create site: %w", err)
		}
		created, err := s.userRepo.CreateWithTx(ctx, tx, users.CreateUserDTO{
			Email:        adminEmail,
			PasswordHash: hash,
			Name:         site.AdminName,
			Phone:        req.AdminPhone,
			Role:         enums.RoleAdmin,
			SiteID:       &site.ID,
		})
		if err != nil {
			return fmt.Errorf("create site admin: %w", err)
		}
		admin = created
		return nil
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "provision site")
	}

	return &CreateSiteResponse{
		Site:  FromModel(site),
		Admin: users.FromModel(admin),
	}, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]SiteDTO, error) {
	list, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sites")
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SiteDTO, error) {
	site, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(site), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateSiteRequest) (*SiteDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Name != nil {
		values["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		values["address"] = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		values["city"] = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		values["state"] = strings.TrimSpace(*req.State)
	}
	if req.Pincode != nil {
		values["pincode"] = strings.TrimSpace(*req.Pincode)
	}
	if req.MaintenanceFee != nil {
		fee, err := parseFee(*req.MaintenanceFee, "maintenance_fee")
		if err != nil {
			return nil, err
		}
		values["maintenance_fee"] = fee
	}
	if req.SubscriptionTier != nil {
		tier, err := enums.ParseSubscriptionTier(*req.SubscriptionTier)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown subscription tier").
				WithDetails(map[string]any{"subscription_tier": *req.SubscriptionTier})
		}
		values["subscription_tier"] = tier
	}
	if req.SubscriptionFee != nil {
		fee, err := parseFee(*req.SubscriptionFee, "subscription_fee")
		if err != nil {
			return nil, err
		}
		values["subscription_fee"] = fee
	}
	if req.SubscriptionExpiresAt != nil {
		values["subscription_expires_at"] = *req.SubscriptionExpiresAt
	}
	if req.IsActive != nil {
		values["is_active"] = *req.IsActive
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	values["updated_at"] = time.Now().UTC()

	if err := s.repo.Updates(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update site")
	}
	site, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(site), nil
}

// Deactivate soft-disables a site. Rows are never deleted because bills,
// complaints and ledger entries keep referencing the site for audit history.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate site")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load site")
	}
	return site, nil
}

func parseFee(raw, field string) (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || fee.IsNegative() {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "fee must be a non-negative amount").
			WithDetails(map[string]any{"field": field})
	}
	return fee, nil
}
