package users_services

import (
	"errors"
	"fmt"
	"time"

	"taskplane-backend/internal/cache"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"
	"taskplane-backend/internal/util/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var log = logger.GetLogger()

const tokenIssuer = "taskplane"

// AccessTokenClaims is the verified payload of an access token.
type AccessTokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService issues and validates the signed, time-bounded credentials.
// Access tokens are stateless; refresh tokens are additionally persisted so
// deleting the row revokes them.
type TokenService struct {
	refreshTokenStore users_interfaces.RefreshTokenStore
	userStore         users_interfaces.UserStore
	sessionCache      cache.Cache

	accessSecret    []byte
	refreshSecret   []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func NewTokenService(
	refreshTokenStore users_interfaces.RefreshTokenStore,
	userStore users_interfaces.UserStore,
	sessionCache cache.Cache,
	accessSecret, refreshSecret string,
	accessLifetime, refreshLifetime time.Duration,
) *TokenService {
	return &TokenService{
		refreshTokenStore: refreshTokenStore,
		userStore:         userStore,
		sessionCache:      sessionCache,
		accessSecret:      []byte(accessSecret),
		refreshSecret:     []byte(refreshSecret),
		accessLifetime:    accessLifetime,
		refreshLifetime:   refreshLifetime,
	}
}

func (s *TokenService) IssueAccessToken(user *users_models.User) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.String(),
		"email":  user.Email,
		"iss":    tokenIssuer,
		"iat":    now.Unix(),
		"exp":    now.Add(s.accessLifetime).Unix(),
	})

	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// IssueRefreshToken signs a refresh token and persists one row per call, so
// concurrent sessions across devices each hold an independently revocable
// credential.
func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.refreshLifetime)

	// The jti keeps tokens issued within the same second distinct, the token
	// column is unique.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.String(),
		"jti":    uuid.NewString(),
		"iss":    tokenIssuer,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	stored := &users_models.RefreshToken{
		Token:     signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	if err := s.refreshTokenStore.CreateRefreshToken(stored); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return signed, nil
}

func (s *TokenService) VerifyAccessToken(token string) (*AccessTokenClaims, error) {
	userID, claims, err := s.parseToken(token, s.accessSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &AccessTokenClaims{UserID: userID, Email: email}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a fresh access
// token. The refresh token is not rotated.
func (s *TokenService) RefreshAccessToken(refreshToken string) (string, error) {
	if _, _, err := s.parseToken(refreshToken, s.refreshSecret); err != nil {
		return "", ErrInvalidRefreshToken
	}

	stored, err := s.refreshTokenStore.GetRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to load refresh token: %w", err)
	}

	if stored == nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userStore.GetUserByID(stored.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to load token owner: %w", err)
	}

	if user == nil || !user.IsActive {
		return "", ErrInvalidRefreshToken
	}

	if stored.IsExpired(time.Now().UTC()) {
		// Stale rows are removed eagerly; the scheduled sweep is only a
		// backstop.
		if err := s.refreshTokenStore.DeleteRefreshToken(refreshToken); err != nil {
			log.Error("Failed to delete expired refresh token", "error", err)
		}

		return "", ErrRefreshTokenExpired
	}

	return s.IssueAccessToken(user)
}

// Revoke deletes a single refresh token row (logout of one device).
func (s *TokenService) Revoke(refreshToken string) error {
	return s.refreshTokenStore.DeleteRefreshToken(refreshToken)
}

// RevokeAll deletes every refresh token of a user and drops the cached
// session (logout everywhere; also invoked after a password change).
func (s *TokenService) RevokeAll(userID uuid.UUID) error {
	if err := s.refreshTokenStore.DeleteUserRefreshTokens(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	s.sessionCache.Delete(cache.SessionKey(userID))

	return nil
}

// CleanupExpiredTokens removes every refresh token past its expiry. It is
// best-effort: failures are logged and swallowed so the scheduled sweep never
// takes the process down.
func (s *TokenService) CleanupExpiredTokens() {
	deleted, err := s.refreshTokenStore.DeleteExpiredRefreshTokens(time.Now().UTC())
	if err != nil {
		log.Error("Refresh token cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		log.Info("Expired refresh tokens cleaned up", "deletedCount", deleted)
	}
}

func (s *TokenService) parseToken(
	token string,
	secret []byte,
) (uuid.UUID, jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, nil, errors.New("invalid token claims")
	}

	userIDStr, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, nil, errors.New("invalid token claims")
	}

	return userID, claims, nil
}
