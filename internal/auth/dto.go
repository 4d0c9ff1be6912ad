package auth

import (
	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/users"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// RegisterRequest contains the payload for creating a couple or vendor
// account. Vendor fields are required only when role is vendor.
type RegisterRequest struct {
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,min=8"`
	Phone     *string        `json:"phone,omitempty"`
	Role      enums.UserRole `json:"role" validate:"required"`

	BusinessName string     `json:"business_name,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Location     *string    `json:"location,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token and the refresh token that
// proves session ownership.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
