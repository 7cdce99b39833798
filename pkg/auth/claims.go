package auth

import (
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	UserID     uuid.UUID
	Email      string
	Name       string
	Role       enums.Role
	SiteID     *uuid.UUID
	FlatNumber *string
	JTI        string
}

// SessionClaims represents the typed JWT carried in the session cookie.
type SessionClaims struct {
	UserID     uuid.UUID  `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       enums.Role `json:"role"`
	SiteID     *uuid.UUID `json:"site_id,omitempty"`
	FlatNumber *string    `json:"flat_number,omitempty"`
	jwt.RegisteredClaims
}
