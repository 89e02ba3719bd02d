package users_enums

// Permission is a string capability granted wholesale per workspace role.
type Permission string

const (
	PermissionWorkspaceRead          Permission = "workspace:read"
	PermissionWorkspaceWrite         Permission = "workspace:write"
	PermissionWorkspaceDelete        Permission = "workspace:delete"
	PermissionWorkspaceManageMembers Permission = "workspace:manage_members"
	PermissionProjectRead            Permission = "project:read"
	PermissionProjectWrite           Permission = "project:write"
	PermissionProjectDelete          Permission = "project:delete"
	PermissionTaskRead               Permission = "task:read"
	PermissionTaskWrite              Permission = "task:write"
	PermissionTaskDelete             Permission = "task:delete"
	PermissionTaskAssign             Permission = "task:assign"
	PermissionCommentRead            Permission = "comment:read"
	PermissionCommentWrite           Permission = "comment:write"
	PermissionCommentDelete          Permission = "comment:delete"
	PermissionFileUpload             Permission = "file:upload"
	PermissionFileDelete             Permission = "file:delete"
	PermissionAnalyticsRead          Permission = "analytics:read"
)

// PermissionsForRole maps a workspace role to its fixed permission set. The
// switch is exhaustive over the closed role enum; each role's list is
// independently declared even where one happens to be a superset of another.
func PermissionsForRole(role WorkspaceRole) []Permission {
	switch role {
	case WorkspaceRoleOwner:
		return []Permission{
			PermissionWorkspaceRead,
			PermissionWorkspaceWrite,
			PermissionWorkspaceDelete,
			PermissionWorkspaceManageMembers,
			PermissionProjectRead,
			PermissionProjectWrite,
			PermissionProjectDelete,
			PermissionTaskRead,
			PermissionTaskWrite,
			PermissionTaskDelete,
			PermissionTaskAssign,
			PermissionCommentRead,
			PermissionCommentWrite,
			PermissionCommentDelete,
			PermissionFileUpload,
			PermissionFileDelete,
			PermissionAnalyticsRead,
		}
	case WorkspaceRoleAdmin:
		return []Permission{
			PermissionWorkspaceRead,
			PermissionWorkspaceWrite,
			PermissionWorkspaceManageMembers,
			PermissionProjectRead,
			PermissionProjectWrite,
			PermissionProjectDelete,
			PermissionTaskRead,
			PermissionTaskWrite,
			PermissionTaskDelete,
			PermissionTaskAssign,
			PermissionCommentRead,
			PermissionCommentWrite,
			PermissionCommentDelete,
			PermissionFileUpload,
			PermissionFileDelete,
			PermissionAnalyticsRead,
		}
	case WorkspaceRoleMember:
		return []Permission{
			PermissionWorkspaceRead,
			PermissionProjectRead,
			PermissionProjectWrite,
			PermissionTaskRead,
			PermissionTaskWrite,
			PermissionTaskAssign,
			PermissionCommentRead,
			PermissionCommentWrite,
			PermissionFileUpload,
		}
	case WorkspaceRoleViewer:
		return []Permission{
			PermissionWorkspaceRead,
			PermissionProjectRead,
			PermissionTaskRead,
			PermissionCommentRead,
		}
	default:
		return nil
	}
}
