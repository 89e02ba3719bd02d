package users_services

import (
	"strings"
	"sync"
	"time"

	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
)

// In-memory stores backing the service tests. They honor the (nil, nil)
// absence convention of the real repositories.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*users_models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*users_models.User{}}
}

func (s *fakeUserStore) CreateUser(user *users_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.users[user.ID] = &copied

	return nil
}

func (s *fakeUserStore) GetUserByEmail(email string) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			copied := *user
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *fakeUserStore) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	copied := *user

	return &copied, nil
}

func (s *fakeUserStore) GetActiveUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil || user == nil || !user.IsActive {
		return nil, err
	}

	return user, nil
}

func (s *fakeUserStore) GetUserByOAuthID(
	provider users_interfaces.OAuthProvider,
	oauthID string,
) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		var linked *string

		switch provider {
		case users_interfaces.OAuthProviderGoogle:
			linked = user.GoogleID
		case users_interfaces.OAuthProviderGitHub:
			linked = user.GitHubID
		}

		if linked != nil && *linked == oauthID {
			copied := *user
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *fakeUserStore) UpdateLastLogin(userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.LastLogin = &at
	}

	return nil
}

func (s *fakeUserStore) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.HashedPassword = hashedPassword
	}

	return nil
}

func (s *fakeUserStore) UpdateUserProfile(userID uuid.UUID, name *string, avatar *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		if name != nil {
			user.Name = *name
		}
		if avatar != nil {
			user.Avatar = avatar
		}
	}

	return nil
}

func (s *fakeUserStore) LinkOAuthID(
	userID uuid.UUID,
	provider users_interfaces.OAuthProvider,
	oauthID string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		switch provider {
		case users_interfaces.OAuthProviderGoogle:
			user.GoogleID = &oauthID
		case users_interfaces.OAuthProviderGitHub:
			user.GitHubID = &oauthID
		}
	}

	return nil
}

type fakeRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*users_models.RefreshToken
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{tokens: map[string]*users_models.RefreshToken{}}
}

func (s *fakeRefreshTokenStore) CreateRefreshToken(token *users_models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.tokens[token.Token] = &copied

	return nil
}

func (s *fakeRefreshTokenStore) GetRefreshToken(token string) (*users_models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}

	copied := *stored

	return &copied, nil
}

func (s *fakeRefreshTokenStore) DeleteRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)

	return nil
}

func (s *fakeRefreshTokenStore) DeleteUserRefreshTokens(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, stored := range s.tokens {
		if stored.UserID == userID {
			delete(s.tokens, key)
		}
	}

	return nil
}

func (s *fakeRefreshTokenStore) DeleteExpiredRefreshTokens(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	for key, stored := range s.tokens {
		if stored.ExpiresAt.Before(before) {
			delete(s.tokens, key)
			deleted++
		}
	}

	return deleted, nil
}

func (s *fakeRefreshTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tokens)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]any{}}
}

func (c *fakeCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]

	return value, ok
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

func (c *fakeCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *fakeCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

type fakeAuditLogWriter struct {
	mu       sync.Mutex
	messages []string
}

func (w *fakeAuditLogWriter) WriteAuditLog(message string, _ *uuid.UUID, _ *uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, message)
}
