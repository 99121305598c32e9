// api/models/auth_models.go
package models

import (
	"time"

	"github.com/versehub/versehub/internal/domain"
)

// --- Auth Request/Response Structs ---

// LoginRequest defines the form fields for the login request
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest defines the structure for the registration request body
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// ChangePasswordRequest defines the structure for the password change body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds until expiry
}

// UserResponse is the public-safe view of a credential (never carries the
// password hash)
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Scopes    []string  `json:"scopes"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse builds the public view of a credential record.
func NewUserResponse(record *domain.Credential) UserResponse {
	return UserResponse{
		ID:        record.ID,
		Username:  record.Username,
		Email:     record.Email,
		FullName:  record.FullName,
		Scopes:    append([]string(nil), record.Scopes...),
		IsActive:  record.IsActive,
		CreatedAt: record.CreatedAt,
	}
}
