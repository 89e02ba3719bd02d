package workspaces_services

import (
	"strings"
	"sync"
	"time"

	users_enums "taskplane-backend/internal/features/users/enums"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"
	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// The store fakes count their lookups so the cache tests can assert how many
// times resolution actually hit storage.

type fakeWorkspaceStore struct {
	mu          sync.Mutex
	workspaces  map[uuid.UUID]*workspaces_models.Workspace
	slugLookups int
}

func newFakeWorkspaceStore() *fakeWorkspaceStore {
	return &fakeWorkspaceStore{workspaces: map[uuid.UUID]*workspaces_models.Workspace{}}
}

func (s *fakeWorkspaceStore) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *workspace
	s.workspaces[workspace.ID] = &copied

	return nil
}

func (s *fakeWorkspaceStore) GetWorkspaceByID(id uuid.UUID) (*workspaces_models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workspace, ok := s.workspaces[id]
	if !ok {
		return nil, nil
	}

	copied := *workspace

	return &copied, nil
}

func (s *fakeWorkspaceStore) GetWorkspaceBySlug(slug string) (*workspaces_models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, workspace := range s.workspaces {
		if workspace.Slug == slug {
			copied := *workspace
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *fakeWorkspaceStore) GetActiveWorkspaceBySlug(
	slug string,
) (*workspaces_models.Workspace, error) {
	s.mu.Lock()
	s.slugLookups++
	s.mu.Unlock()

	workspace, err := s.GetWorkspaceBySlug(slug)
	if err != nil || workspace == nil || !workspace.IsActive {
		return nil, err
	}

	return workspace, nil
}

func (s *fakeWorkspaceStore) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	return s.CreateWorkspace(workspace)
}

func (s *fakeWorkspaceStore) slugLookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slugLookups
}

type fakeMembershipStore struct {
	mu                sync.Mutex
	memberships       map[uuid.UUID]*workspaces_models.WorkspaceMembership
	membershipLookups int
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{
		memberships: map[uuid.UUID]*workspaces_models.WorkspaceMembership{},
	}
}

func (s *fakeMembershipStore) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	copied := *membership
	s.memberships[membership.ID] = &copied

	return nil
}

func (s *fakeMembershipStore) GetActiveMembership(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.membershipLookups++

	for _, membership := range s.memberships {
		if membership.WorkspaceID == workspaceID &&
			membership.UserID == userID &&
			membership.IsActive {
			copied := *membership
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *fakeMembershipStore) GetUserMemberships(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*workspaces_models.WorkspaceMembership

	for _, membership := range s.memberships {
		if membership.UserID == userID && membership.IsActive {
			copied := *membership
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (s *fakeMembershipStore) ListActiveMemberships(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*workspaces_models.WorkspaceMembership

	for _, membership := range s.memberships {
		if membership.WorkspaceID == workspaceID && membership.IsActive {
			copied := *membership
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (s *fakeMembershipStore) CountActiveByRole(
	workspaceID uuid.UUID,
	role users_enums.WorkspaceRole,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64

	for _, membership := range s.memberships {
		if membership.WorkspaceID == workspaceID &&
			membership.Role == role &&
			membership.IsActive {
			count++
		}
	}

	return count, nil
}

func (s *fakeMembershipStore) UpdateMembershipRole(
	membershipID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if membership, ok := s.memberships[membershipID]; ok {
		membership.Role = role
	}

	return nil
}

func (s *fakeMembershipStore) DeactivateMembership(membershipID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if membership, ok := s.memberships[membershipID]; ok {
		membership.IsActive = false
	}

	return nil
}

func (s *fakeMembershipStore) membershipLookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.membershipLookups
}

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
	users_interfaces.OAuthProvider, string,
) (*users_models.User, error) {
	return nil, nil
}

func (s *fakeUserStore) UpdateLastLogin(uuid.UUID, time.Time) error          { return nil }
func (s *fakeUserStore) UpdateUserPassword(uuid.UUID, string) error          { return nil }
func (s *fakeUserStore) UpdateUserProfile(uuid.UUID, *string, *string) error { return nil }
func (s *fakeUserStore) LinkOAuthID(uuid.UUID, users_interfaces.OAuthProvider, string) error {
	return nil
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
