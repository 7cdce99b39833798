package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	Role        enums.Role `json:"role"`
	SiteID      *uuid.UUID `json:"site_id,omitempty"`
	FlatNumber  *string    `json:"flat_number,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         enums.Role
	SiteID       *uuid.UUID
	FlatNumber   *string
	IsActive     *bool
}

// CreateUserRequest is the admin-facing payload for provisioning an account.
type CreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role       string  `json:"role" validate:"required,oneof=admin resident security receptionist accountant"`
	FlatNumber *string `json:"flat_number,omitempty" validate:"omitempty,max=20"`
}

// UpdateUserRequest carries partial profile edits.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	FlatNumber *string `json:"flat_number,omitempty" validate:"omitempty,max=20"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// ChangePasswordRequest carries a self-service password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Role:        u.Role,
		SiteID:      u.SiteID,
		FlatNumber:  u.FlatNumber,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		Phone:        c.Phone,
		Role:         c.Role,
		SiteID:       c.SiteID,
		FlatNumber:   c.FlatNumber,
		IsActive:     isActive,
	}
}
