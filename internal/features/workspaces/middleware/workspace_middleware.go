package workspaces_middleware

import (
	"errors"
	"net/http"

	users_enums "taskplane-backend/internal/features/users/enums"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	workspaces_dto "taskplane-backend/internal/features/workspaces/dto"
	workspaces_services "taskplane-backend/internal/features/workspaces/services"
	"taskplane-backend/internal/util/logger"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

var log = logger.GetLogger()

const workspaceContextKey = "workspaceContext"

// WorkspaceMiddleware resolves the workspace scope for a request. It must
// run after the auth middleware. The slug comes from the route param or the
// x-workspace-slug header; a missing slug is a 400, a denied resolution a
// 403.
func WorkspaceMiddleware(contextService *workspaces_services.ContextService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
			ctx.Abort()
			return
		}

		slug := ctx.Param("workspaceSlug")
		if slug == "" {
			slug = ctx.GetHeader("x-workspace-slug")
		}

		if slug == "" {
			response.Fail(ctx, http.StatusBadRequest, "Workspace slug required")
			ctx.Abort()
			return
		}

		workspaceContext, err := contextService.ResolveWorkspaceContext(user.ID, slug)
		if err != nil {
			if errors.Is(err, workspaces_services.ErrAccessDenied) {
				response.Fail(ctx, http.StatusForbidden, "Access to workspace denied")
				ctx.Abort()
				return
			}

			log.Error("Workspace resolution failed", "slug", slug, "error", err)
			response.Fail(ctx, http.StatusInternalServerError, "Failed to resolve workspace")
			ctx.Abort()

			return
		}

		ctx.Set(workspaceContextKey, workspaceContext)
		ctx.Next()
	}
}

// PermissionMiddleware rejects requests whose resolved workspace context
// does not grant the permission. It must run after WorkspaceMiddleware.
func PermissionMiddleware(permission users_enums.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		workspaceContext, ok := GetWorkspaceFromContext(ctx)
		if !ok {
			response.Fail(ctx, http.StatusForbidden, "Workspace context required")
			ctx.Abort()
			return
		}

		if !workspaceContext.HasPermission(permission) {
			response.Fail(ctx, http.StatusForbidden, "Insufficient permissions")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// RoleMiddleware rejects requests unless the resolved role is one of the
// allowed roles.
func RoleMiddleware(roles ...users_enums.WorkspaceRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		workspaceContext, ok := GetWorkspaceFromContext(ctx)
		if !ok {
			response.Fail(ctx, http.StatusForbidden, "Workspace context required")
			ctx.Abort()
			return
		}

		for _, role := range roles {
			if workspaceContext.Role == role {
				ctx.Next()
				return
			}
		}

		response.Fail(ctx, http.StatusForbidden, "Insufficient role")
		ctx.Abort()
	}
}

// GetWorkspaceFromContext returns the workspace context attached by
// WorkspaceMiddleware.
func GetWorkspaceFromContext(ctx *gin.Context) (*workspaces_dto.WorkspaceContextDTO, bool) {
	value, exists := ctx.Get(workspaceContextKey)
	if !exists {
		return nil, false
	}

	workspaceContext, ok := value.(*workspaces_dto.WorkspaceContextDTO)

	return workspaceContext, ok
}
