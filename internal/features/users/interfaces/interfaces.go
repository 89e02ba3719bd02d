package users_interfaces

import (
	"time"

	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
)

type OAuthProvider string

const (
	OAuthProviderGoogle OAuthProvider = "google"
	OAuthProviderGitHub OAuthProvider = "github"
)

// UserStore is the credential store. Lookup methods return (nil, nil) when no
// row matches, so callers can distinguish absence from storage failure.
type UserStore interface {
	CreateUser(user *users_models.User) error
	GetUserByEmail(email string) (*users_models.User, error)
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
	GetActiveUserByID(userID uuid.UUID) (*users_models.User, error)
	GetUserByOAuthID(provider OAuthProvider, oauthID string) (*users_models.User, error)
	UpdateLastLogin(userID uuid.UUID, at time.Time) error
	UpdateUserPassword(userID uuid.UUID, hashedPassword string) error
	UpdateUserProfile(userID uuid.UUID, name *string, avatar *string) error
	LinkOAuthID(userID uuid.UUID, provider OAuthProvider, oauthID string) error
}

type RefreshTokenStore interface {
	CreateRefreshToken(token *users_models.RefreshToken) error
	GetRefreshToken(token string) (*users_models.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteUserRefreshTokens(userID uuid.UUID) error
	DeleteExpiredRefreshTokens(before time.Time) (int64, error)
}

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}
