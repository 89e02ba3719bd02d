package users_middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"
	users_services "taskplane-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserStore struct {
	users map[uuid.UUID]*users_models.User
}

func (s *memUserStore) CreateUser(user *users_models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) GetUserByEmail(string) (*users_models.User, error) { return nil, nil }

func (s *memUserStore) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.users[userID], nil
}

func (s *memUserStore) GetActiveUserByID(userID uuid.UUID) (*users_models.User, error) {
	user := s.users[userID]
	if user == nil || !user.IsActive {
		return nil, nil
	}

	return user, nil
}

func (s *memUserStore) GetUserByOAuthID(
	users_interfaces.OAuthProvider, string,
) (*users_models.User, error) {
	return nil, nil
}

func (s *memUserStore) UpdateLastLogin(uuid.UUID, time.Time) error           { return nil }
func (s *memUserStore) UpdateUserPassword(uuid.UUID, string) error           { return nil }
func (s *memUserStore) UpdateUserProfile(uuid.UUID, *string, *string) error  { return nil }
func (s *memUserStore) LinkOAuthID(uuid.UUID, users_interfaces.OAuthProvider, string) error {
	return nil
}

type memRefreshTokenStore struct{}

func (memRefreshTokenStore) CreateRefreshToken(*users_models.RefreshToken) error { return nil }
func (memRefreshTokenStore) GetRefreshToken(string) (*users_models.RefreshToken, error) {
	return nil, nil
}
func (memRefreshTokenStore) DeleteRefreshToken(string) error             { return nil }
func (memRefreshTokenStore) DeleteUserRefreshTokens(uuid.UUID) error     { return nil }
func (memRefreshTokenStore) DeleteExpiredRefreshTokens(time.Time) (int64, error) {
	return 0, nil
}

type noopCache struct{}

func (noopCache) Get(string) (any, bool)            { return nil, false }
func (noopCache) Set(string, any, time.Duration)    {}
func (noopCache) Delete(string)                     {}
func (noopCache) DeletePrefix(string)               {}

type noopAuditLog struct{}

func (noopAuditLog) WriteAuditLog(string, *uuid.UUID, *uuid.UUID) {}

func newAuthTestRig(t *testing.T) (*gin.Engine, *users_services.TokenService, *memUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userStore := &memUserStore{users: map[uuid.UUID]*users_models.User{}}

	tokenService := users_services.NewTokenService(
		memRefreshTokenStore{},
		userStore,
		noopCache{},
		"access-secret",
		"refresh-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	userService := users_services.NewUserService(
		userStore, tokenService, noopCache{}, noopAuditLog{}, bcrypt.MinCost,
	)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokenService, userService), func(ctx *gin.Context) {
		user, ok := GetUserFromContext(ctx)
		require.True(t, ok)
		ctx.String(http.StatusOK, user.Email)
	})
	router.GET("/optional", OptionalAuthMiddleware(tokenService, userService), func(ctx *gin.Context) {
		if user, ok := GetUserFromContext(ctx); ok {
			ctx.String(http.StatusOK, user.Email)
			return
		}
		ctx.String(http.StatusOK, "anonymous")
	})

	return router, tokenService, userStore
}

func signIn(t *testing.T, tokenService *users_services.TokenService, store *memUserStore, active bool) (*users_models.User, string) {
	t.Helper()

	user := &users_models.User{
		ID:       uuid.New(),
		Email:    "middleware@example.com",
		Name:     "Middleware User",
		IsActive: active,
	}
	require.NoError(t, store.CreateUser(user))

	token, err := tokenService.IssueAccessToken(user)
	require.NoError(t, err)

	return user, token
}

func TestAuthMiddleware(t *testing.T) {
	router, tokenService, userStore := newAuthTestRig(t)

	t.Run("Missing Authorization header: 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Malformed Authorization header: 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Basic abc123")

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Garbage token: 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer not-a-token")

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Valid token: user attached to the request", func(t *testing.T) {
		user, token := signIn(t, tokenService, userStore, true)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, user.Email, recorder.Body.String())
	})

	t.Run("Bearer scheme is case-insensitive", func(t *testing.T) {
		_, token := signIn(t, tokenService, userStore, true)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "bearer "+token)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Valid token of a deactivated user: 401", func(t *testing.T) {
		_, token := signIn(t, tokenService, userStore, false)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	router, tokenService, userStore := newAuthTestRig(t)

	t.Run("No token: request proceeds anonymously", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/optional", nil)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("Invalid token: request proceeds anonymously", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/optional", nil)
		request.Header.Set("Authorization", "Bearer broken")

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("Valid token: user attached", func(t *testing.T) {
		user, token := signIn(t, tokenService, userStore, true)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/optional", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, user.Email, recorder.Body.String())
	})
}
