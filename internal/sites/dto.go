package sites

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/internal/users"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// SiteDTO is the transport shape for one managed society.
type SiteDTO struct {
	ID                    uuid.UUID              `json:"id"`
	Name                  string                 `json:"name"`
	Address               string                 `json:"address"`
	City                  string                 `json:"city"`
	State                 string                 `json:"state"`
	Pincode               string                 `json:"pincode"`
	Blocks                []string               `json:"blocks"`
	FloorsPerBlock        int                    `json:"floors_per_block"`
	UnitsPerFloor         int                    `json:"units_per_floor"`
	AdminName             string                 `json:"admin_name"`
	AdminEmail            string                 `json:"admin_email"`
	AdminPhone            *string                `json:"admin_phone,omitempty"`
	MaintenanceFee        decimal.Decimal        `json:"maintenance_fee"`
	SubscriptionTier      enums.SubscriptionTier `json:"subscription_tier"`
	SubscriptionFee       decimal.Decimal        `json:"subscription_fee"`
	SubscriptionExpiresAt *time.Time             `json:"subscription_expires_at,omitempty"`
	IsActive              bool                   `json:"is_active"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// CreateSiteRequest provisions a new society together with its first admin.
type CreateSiteRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	Address          string   `json:"address" validate:"required"`
	City             string   `json:"city" validate:"required"`
	State            string   `json:"state" validate:"required"`
	Pincode          string   `json:"pincode" validate:"required,min=4,max=10"`
	Blocks           []string `json:"blocks" validate:"required,min=1,dive,required"`
	FloorsPerBlock   int      `json:"floors_per_block" validate:"required,min=1,max=200"`
	UnitsPerFloor    int      `json:"units_per_floor" validate:"required,min=1,max=100"`
	AdminName        string   `json:"admin_name" validate:"required,min=1,max=120"`
	AdminEmail       string   `json:"admin_email" validate:"required,email"`
	AdminPhone       *string  `json:"admin_phone,omitempty" validate:"omitempty,max=20"`
	AdminPassword    string   `json:"admin_password" validate:"required,min=8"`
	MaintenanceFee   string   `json:"maintenance_fee" validate:"required"`
	SubscriptionTier string   `json:"subscription_tier" validate:"omitempty,oneof=basic standard premium enterprise"`
	SubscriptionFee  string   `json:"subscription_fee,omitempty"`
}

// UpdateSiteRequest carries partial edits to site metadata.
type UpdateSiteRequest struct {
	Name                  *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address               *string    `json:"address,omitempty"`
	City                  *string    `json:"city,omitempty"`
	State                 *string    `json:"state,omitempty"`
	Pincode               *string    `json:"pincode,omitempty" validate:"omitempty,min=4,max=10"`
	MaintenanceFee        *string    `json:"maintenance_fee,omitempty"`
	SubscriptionTier      *string    `json:"subscription_tier,omitempty" validate:"omitempty,oneof=basic standard premium enterprise"`
	SubscriptionFee       *string    `json:"subscription_fee,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	IsActive              *bool      `json:"is_active,omitempty"`
}

// CreateSiteResponse returns the site plus the provisioned admin account.
type CreateSiteResponse struct {
	Site  *SiteDTO       `json:"site"`
	Admin *users.UserDTO `json:"admin"`
}

func FromModel(s *models.Site) *SiteDTO {
	if s == nil {
		return nil
	}
	return &SiteDTO{
		ID:                    s.ID,
		Name:                  s.Name,
		Address:               s.Address,
		City:                  s.City,
		State:                 s.State,
		Pincode:               s.Pincode,
		Blocks:                append([]string(nil), s.Blocks...),
		FloorsPerBlock:        s.FloorsPerBlock,
		UnitsPerFloor:         s.UnitsPerFloor,
		AdminName:             s.AdminName,
		AdminEmail:            s.AdminEmail,
		AdminPhone:            s.AdminPhone,
		MaintenanceFee:        s.MaintenanceFee,
		SubscriptionTier:      s.SubscriptionTier,
		SubscriptionFee:       s.SubscriptionFee,
		SubscriptionExpiresAt: s.SubscriptionExpiresAt,
		IsActive:              s.IsActive,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func FromModels(list []models.Site) []SiteDTO {
	out := make([]SiteDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
