package workspaces_interfaces

import (
	users_enums "taskplane-backend/internal/features/users/enums"
	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// WorkspaceStore persists workspaces. Lookups return (nil, nil) when no
// matching row exists.
type WorkspaceStore interface {
	CreateWorkspace(workspace *workspaces_models.Workspace) error
	GetWorkspaceByID(id uuid.UUID) (*workspaces_models.Workspace, error)
	GetWorkspaceBySlug(slug string) (*workspaces_models.Workspace, error)
	GetActiveWorkspaceBySlug(slug string) (*workspaces_models.Workspace, error)
	UpdateWorkspace(workspace *workspaces_models.Workspace) error
}

// MembershipStore persists workspace memberships.
type MembershipStore interface {
	CreateMembership(membership *workspaces_models.WorkspaceMembership) error
	GetActiveMembership(
		workspaceID uuid.UUID,
		userID uuid.UUID,
	) (*workspaces_models.WorkspaceMembership, error)
	GetUserMemberships(userID uuid.UUID) ([]*workspaces_models.WorkspaceMembership, error)
	ListActiveMemberships(workspaceID uuid.UUID) ([]*workspaces_models.WorkspaceMembership, error)
	CountActiveByRole(workspaceID uuid.UUID, role users_enums.WorkspaceRole) (int64, error)
	UpdateMembershipRole(membershipID uuid.UUID, role users_enums.WorkspaceRole) error
	DeactivateMembership(membershipID uuid.UUID) error
}
