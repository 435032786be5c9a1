package handler

import (
	"time"

	identityapp "github.com/harborstay/backend/internal/application/identity"
	"github.com/harborstay/backend/internal/domain/identity"
)

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200" example:"owner@harborview.example"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"s3cret-passw0rd"`
	FullName string `json:"full_name" binding:"required,min=1,max=200" example:"Alex Morgan"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"owner@harborview.example"`
	Password string `json:"password" binding:"required" example:"s3cret-passw0rd"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse represents the issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// SessionResponse represents the resolved session returned to clients
type SessionResponse struct {
	State       identity.SessionState `json:"state"`
	UserID      string                `json:"user_id"`
	Email       string                `json:"email"`
	FullName    string                `json:"full_name,omitempty"`
	Role        identity.Role         `json:"role,omitempty"`
	CompanyID   *string               `json:"company_id,omitempty"`
	Permissions identity.Permissions  `json:"permissions"`
}

// LoginResponse represents a successful login or registration
type LoginResponse struct {
	Token   TokenResponse   `json:"token"`
	Session SessionResponse `json:"session"`
}

// RefreshTokenResponse represents a successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

func toSessionResponse(info identityapp.SessionInfo) SessionResponse {
	resp := SessionResponse{
		State:       info.State,
		UserID:      info.UserID.String(),
		Email:       info.Email,
		FullName:    info.FullName,
		Role:        info.Role,
		Permissions: info.Permissions,
	}
	if info.CompanyID != nil {
		id := info.CompanyID.String()
		resp.CompanyID = &id
	}
	return resp
}

func toLoginResponse(result *identityapp.LoginResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		Session: toSessionResponse(result.Session),
	}
}
