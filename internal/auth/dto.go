package auth

import (
	"github.com/Amanshah2829/smart-society-sub000/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the session token and user produced by a successful login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}

// RefreshResponse carries the rotated session token.
type RefreshResponse struct {
	Token string `json:"token"`
}
