package workspaces_dto

import (
	"time"

	users_enums "taskplane-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Slug string `json:"slug" binding:"required,min=2,max=50,lowercase"`
}

type UpdateWorkspaceRequestDTO struct {
	Name   *string `json:"name"   binding:"omitempty,min=2,max=100"`
	Avatar *string `json:"avatar" binding:"omitempty,url"`
}

type WorkspaceResponseDTO struct {
	ID        uuid.UUID                  `json:"id"`
	Slug      string                     `json:"slug"`
	Name      string                     `json:"name"`
	Avatar    *string                    `json:"avatar"`
	CreatedAt time.Time                  `json:"createdAt"`
	UserRole  *users_enums.WorkspaceRole `json:"userRole,omitempty"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []*WorkspaceResponseDTO `json:"workspaces"`
}

// WorkspaceContextDTO is the resolved membership view a scoped request runs
// under. Permissions are derived from the role at resolve time and cached
// alongside it.
type WorkspaceContextDTO struct {
	ID          uuid.UUID                 `json:"id"`
	Name        string                    `json:"name"`
	Slug        string                    `json:"slug"`
	Role        users_enums.WorkspaceRole `json:"role"`
	Permissions []users_enums.Permission  `json:"permissions"`
}

// HasPermission reports whether the cached permission list contains the
// requested permission.
func (c *WorkspaceContextDTO) HasPermission(permission users_enums.Permission) bool {
	for _, granted := range c.Permissions {
		if granted == permission {
			return true
		}
	}

	return false
}

type MemberResponseDTO struct {
	UserID   uuid.UUID                 `json:"userId"`
	Email    string                    `json:"email"`
	Name     string                    `json:"name"`
	Avatar   *string                   `json:"avatar"`
	Role     users_enums.WorkspaceRole `json:"role"`
	JoinedAt time.Time                 `json:"joinedAt"`
}

type ListMembersResponseDTO struct {
	Members []*MemberResponseDTO `json:"members"`
}

type AddMemberRequestDTO struct {
	Email string                    `json:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.WorkspaceRole `json:"role" binding:"required"`
}
