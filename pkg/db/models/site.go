package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// Site represents one managed residential society, the unit of tenancy.
type Site struct {
	ID                    uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                  string                 `gorm:"column:name;not null"`
	Address               string                 `gorm:"column:address;not null"`
	City                  string                 `gorm:"column:city;not null"`
	State                 string                 `gorm:"column:state;not null"`
	Pincode               string                 `gorm:"column:pincode;not null"`
	Blocks                pq.StringArray         `gorm:"column:blocks;type:text[]"`
	FloorsPerBlock        int                    `gorm:"column:floors_per_block;not null;default:0"`
	UnitsPerFloor         int                    `gorm:"column:units_per_floor;not null;default:0"`
	AdminName             string                 `gorm:"column:admin_name;not null"`
	AdminEmail            string                 `gorm:"column:admin_email;not null"`
	AdminPhone            *string                `gorm:"column:admin_phone"`
	MaintenanceFee        decimal.Decimal        `gorm:"column:maintenance_fee;type:numeric(12,2);not null"`
	SubscriptionTier      enums.SubscriptionTier `gorm:"column:subscription_tier;type:text;not null;default:'basic'"`
	SubscriptionFee       decimal.Decimal        `gorm:"column:subscription_fee;type:numeric(12,2);not null;default:0"`
	SubscriptionExpiresAt *time.Time             `gorm:"column:subscription_expires_at"`
	IsActive              bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt             time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
