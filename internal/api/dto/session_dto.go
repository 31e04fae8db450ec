package dto

import (
	"time"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// SignUpRequest payload for new accounts.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest payload for login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SessionResponse is returned by sign-up and sign-in.
type SessionResponse struct {
	Account  AccountResponse `json:"account"`
	Auth     AuthResponse    `json:"auth"`
	Redirect string          `json:"redirect"`
}

// IdentityResponse describes the current caller.
type IdentityResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	Account       *AccountResponse `json:"account,omitempty"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
	}
}
