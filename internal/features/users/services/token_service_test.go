package users_services

import (
	"testing"
	"time"

	"taskplane-backend/internal/cache"
	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(
	refreshTokenStore *fakeRefreshTokenStore,
	userStore *fakeUserStore,
	sessionCache *fakeCache,
	accessLifetime, refreshLifetime time.Duration,
) *TokenService {
	return NewTokenService(
		refreshTokenStore,
		userStore,
		sessionCache,
		"test-access-secret",
		"test-refresh-secret",
		accessLifetime,
		refreshLifetime,
	)
}

func newActiveUser() *users_models.User {
	return &users_models.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		Name:      "Test User",
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestTokenService_AccessTokenRoundtrip(t *testing.T) {
	service := newTestTokenService(
		newFakeRefreshTokenStore(), newFakeUserStore(), newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)
	user := newActiveUser()

	signed, err := service.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := service.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestTokenService_VerifyAccessToken_Rejections(t *testing.T) {
	service := newTestTokenService(
		newFakeRefreshTokenStore(), newFakeUserStore(), newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, err := service.VerifyAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expiring := newTestTokenService(
			newFakeRefreshTokenStore(), newFakeUserStore(), newFakeCache(),
			-time.Minute, 7*24*time.Hour,
		)

		signed, err := expiring.IssueAccessToken(newActiveUser())
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Refresh token is not accepted as access token", func(t *testing.T) {
		refreshToken, err := service.IssueRefreshToken(uuid.New())
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(refreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_RefreshAccessToken(t *testing.T) {
	refreshTokenStore := newFakeRefreshTokenStore()
	userStore := newFakeUserStore()
	service := newTestTokenService(
		refreshTokenStore, userStore, newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)

	user := newActiveUser()
	require.NoError(t, userStore.CreateUser(user))

	refreshToken, err := service.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	t.Run("Valid refresh token yields a usable access token", func(t *testing.T) {
		accessToken, err := service.RefreshAccessToken(refreshToken)
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Refresh token is not rotated", func(t *testing.T) {
		_, err := service.RefreshAccessToken(refreshToken)
		require.NoError(t, err)

		stored, err := refreshTokenStore.GetRefreshToken(refreshToken)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("Revoked refresh token is rejected", func(t *testing.T) {
		require.NoError(t, service.Revoke(refreshToken))

		_, err := service.RefreshAccessToken(refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("Inactive owner cannot refresh", func(t *testing.T) {
		inactive := newActiveUser()
		inactive.Email = "inactive@example.com"
		inactive.IsActive = false
		require.NoError(t, userStore.CreateUser(inactive))

		token, err := service.IssueRefreshToken(inactive.ID)
		require.NoError(t, err)

		_, err = service.RefreshAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestTokenService_RefreshAccessToken_ExpiredRowIsDeleted(t *testing.T) {
	refreshTokenStore := newFakeRefreshTokenStore()
	userStore := newFakeUserStore()

	// Refresh lifetime in the past so the stored row is immediately stale
	// while the signature itself still parses.
	service := newTestTokenService(
		refreshTokenStore, userStore, newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)
	user := newActiveUser()
	require.NoError(t, userStore.CreateUser(user))

	refreshToken, err := service.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	stored, err := refreshTokenStore.GetRefreshToken(refreshToken)
	require.NoError(t, err)
	stored.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, refreshTokenStore.CreateRefreshToken(stored))

	_, err = service.RefreshAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)

	remaining, err := refreshTokenStore.GetRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Nil(t, remaining, "expired row should be deleted eagerly")
}

func TestTokenService_RevokeAll(t *testing.T) {
	refreshTokenStore := newFakeRefreshTokenStore()
	userStore := newFakeUserStore()
	sessionCache := newFakeCache()
	service := newTestTokenService(
		refreshTokenStore, userStore, sessionCache,
		15*time.Minute, 7*24*time.Hour,
	)

	user := newActiveUser()
	require.NoError(t, userStore.CreateUser(user))

	// Two devices, two independent rows.
	first, err := service.IssueRefreshToken(user.ID)
	require.NoError(t, err)
	second, err := service.IssueRefreshToken(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Equal(t, 2, refreshTokenStore.count())

	sessionCache.Set(cache.SessionKey(user.ID), "session", time.Minute)

	require.NoError(t, service.RevokeAll(user.ID))

	assert.Equal(t, 0, refreshTokenStore.count())

	_, found := sessionCache.Get(cache.SessionKey(user.ID))
	assert.False(t, found, "cached session should be dropped")
}

func TestTokenService_Revoke_IsIdempotent(t *testing.T) {
	service := newTestTokenService(
		newFakeRefreshTokenStore(), newFakeUserStore(), newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)

	token, err := service.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	assert.NoError(t, service.Revoke(token))
	assert.NoError(t, service.Revoke(token))
}

func TestTokenService_CleanupExpiredTokens(t *testing.T) {
	refreshTokenStore := newFakeRefreshTokenStore()
	service := newTestTokenService(
		refreshTokenStore, newFakeUserStore(), newFakeCache(),
		15*time.Minute, 7*24*time.Hour,
	)

	now := time.Now().UTC()

	require.NoError(t, refreshTokenStore.CreateRefreshToken(&users_models.RefreshToken{
		Token:     "stale",
		UserID:    uuid.New(),
		ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, refreshTokenStore.CreateRefreshToken(&users_models.RefreshToken{
		Token:     "fresh",
		UserID:    uuid.New(),
		ExpiresAt: now.Add(time.Hour),
	}))

	service.CleanupExpiredTokens()

	stale, err := refreshTokenStore.GetRefreshToken("stale")
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := refreshTokenStore.GetRefreshToken("fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
