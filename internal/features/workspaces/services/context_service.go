package workspaces_services

import (
	"time"

	"taskplane-backend/internal/cache"
	users_enums "taskplane-backend/internal/features/users/enums"
	workspaces_dto "taskplane-backend/internal/features/workspaces/dto"
	workspaces_interfaces "taskplane-backend/internal/features/workspaces/interfaces"

	"github.com/google/uuid"
)

// ContextService resolves the workspace a request runs under. Resolution is
// cache-aside: the cache only saves the two lookups, correctness must hold
// with the cache cold on every call.
type ContextService struct {
	workspaceStore  workspaces_interfaces.WorkspaceStore
	membershipStore workspaces_interfaces.MembershipStore
	contextCache    cache.Cache
	cacheTTL        time.Duration
}

func NewContextService(
	workspaceStore workspaces_interfaces.WorkspaceStore,
	membershipStore workspaces_interfaces.MembershipStore,
	contextCache cache.Cache,
	cacheTTL time.Duration,
) *ContextService {
	return &ContextService{workspaceStore, membershipStore, contextCache, cacheTTL}
}

// ResolveWorkspaceContext returns the cached context for (userID, slug), or
// resolves it from storage: the workspace must be active and the user must
// hold an active membership, otherwise ErrAccessDenied.
func (s *ContextService) ResolveWorkspaceContext(
	userID uuid.UUID,
	slug string,
) (*workspaces_dto.WorkspaceContextDTO, error) {
	cacheKey := cache.WorkspaceContextKey(userID, slug)

	if cached, found := s.contextCache.Get(cacheKey); found {
		if context, ok := cached.(*workspaces_dto.WorkspaceContextDTO); ok {
			return context, nil
		}
	}

	workspace, err := s.workspaceStore.GetActiveWorkspaceBySlug(slug)
	if err != nil {
		return nil, err
	}

	if workspace == nil {
		return nil, ErrAccessDenied
	}

	membership, err := s.membershipStore.GetActiveMembership(workspace.ID, userID)
	if err != nil {
		return nil, err
	}

	if membership == nil {
		return nil, ErrAccessDenied
	}

	context := &workspaces_dto.WorkspaceContextDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Slug:        workspace.Slug,
		Role:        membership.Role,
		Permissions: users_enums.PermissionsForRole(membership.Role),
	}

	s.contextCache.Set(cacheKey, context, s.cacheTTL)

	return context, nil
}

// Invalidate drops the cached context for one user in one workspace. Used
// after a role change or removal so the stale permission list does not
// survive until the TTL.
func (s *ContextService) Invalidate(userID uuid.UUID, slug string) {
	s.contextCache.Delete(cache.WorkspaceContextKey(userID, slug))
}

// InvalidateUser drops every cached workspace context for the user.
func (s *ContextService) InvalidateUser(userID uuid.UUID) {
	s.contextCache.DeletePrefix(cache.WorkspaceContextPrefix(userID))
}
