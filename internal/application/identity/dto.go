package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Session               SessionInfo
}

// SessionInfo is the resolved authorization context returned to callers
type SessionInfo struct {
	State       identity.SessionState
	UserID      uuid.UUID
	Email       string
	FullName    string
	Role        identity.Role
	CompanyID   *uuid.UUID
	Permissions identity.Permissions
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID for blacklisting
	TokenTTL time.Duration // Remaining token lifetime
}

// SessionInput contains the input for session resolution
type SessionInput struct {
	UserID uuid.UUID
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}
