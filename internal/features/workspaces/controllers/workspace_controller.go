package workspaces_controllers

import (
	"errors"
	"net/http"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_enums "taskplane-backend/internal/features/users/enums"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	workspaces_dto "taskplane-backend/internal/features/workspaces/dto"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	workspaces_services "taskplane-backend/internal/features/workspaces/services"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
}

func NewWorkspaceController(
	workspaceService *workspaces_services.WorkspaceService,
) *WorkspaceController {
	return &WorkspaceController{workspaceService}
}

func (c *WorkspaceController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	workspaceRoutes := router.Group("/workspaces", authenticate)

	workspaceRoutes.POST("", c.CreateWorkspace)
	workspaceRoutes.GET("", c.GetWorkspaces)

	scoped := workspaceRoutes.Group("/:workspaceSlug", workspaceScope)

	scoped.GET("", c.GetWorkspaceContext)
	scoped.PUT("",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceWrite),
		c.UpdateWorkspace)
	scoped.DELETE("",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceDelete),
		c.DeactivateWorkspace)

	scoped.GET("/members",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceRead),
		c.ListMembers)
	scoped.POST("/members",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceManageMembers),
		c.AddMember)
	scoped.PUT("/members/:userId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceManageMembers),
		c.ChangeMemberRole)
	scoped.DELETE("/members/:userId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceManageMembers),
		c.RemoveMember)
}

// CreateWorkspace
// @Summary Create a new workspace
// @Description Create a workspace with a unique slug; the creator becomes its owner
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body workspaces_dto.CreateWorkspaceRequestDTO true "Workspace creation data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /workspaces [post]
func (c *WorkspaceController) CreateWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request workspaces_dto.CreateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	workspace, err := c.workspaceService.CreateWorkspace(&request, user)
	if err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "Workspace created", workspace)
}

// GetWorkspaces
// @Summary List the user's workspaces
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /workspaces [get]
func (c *WorkspaceController) GetWorkspaces(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaces, err := c.workspaceService.GetUserWorkspaces(user.ID)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to retrieve workspaces")
		return
	}

	response.OK(ctx, http.StatusOK, "Workspaces retrieved", workspaces)
}

// GetWorkspaceContext
// @Summary Get the resolved workspace context
// @Description Returns the workspace with the caller's role and permissions
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug} [get]
func (c *WorkspaceController) GetWorkspaceContext(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	response.OK(ctx, http.StatusOK, "Workspace retrieved", workspaceContext)
}

// UpdateWorkspace
// @Summary Update workspace settings
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param request body workspaces_dto.UpdateWorkspaceRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug} [put]
func (c *WorkspaceController) UpdateWorkspace(ctx *gin.Context) {
	user, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	var request workspaces_dto.UpdateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	workspace, err := c.workspaceService.UpdateWorkspace(workspaceContext.ID, &request, user.ID)
	if err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Workspace updated", workspace)
}

// DeactivateWorkspace
// @Summary Deactivate a workspace
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug} [delete]
func (c *WorkspaceController) DeactivateWorkspace(ctx *gin.Context) {
	user, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	if err := c.workspaceService.DeactivateWorkspace(workspaceContext.ID, user.ID); err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Workspace deactivated", nil)
}

// ListMembers
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/members [get]
func (c *WorkspaceController) ListMembers(ctx *gin.Context) {
	_, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	members, err := c.workspaceService.ListMembers(workspaceContext.ID)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to list members")
		return
	}

	response.OK(ctx, http.StatusOK, "Members retrieved", members)
}

// AddMember
// @Summary Add a member to the workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param request body workspaces_dto.AddMemberRequestDTO true "Member email and role"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/members [post]
func (c *WorkspaceController) AddMember(ctx *gin.Context) {
	user, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	var request workspaces_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	member, err := c.workspaceService.AddMember(workspaceContext.ID, &request, user.ID)
	if err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "Member added", member)
}

// ChangeMemberRole
// @Summary Change a member's role
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param userId path string true "Member user ID"
// @Param request body workspaces_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/members/{userId} [put]
func (c *WorkspaceController) ChangeMemberRole(ctx *gin.Context) {
	user, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var request workspaces_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := c.workspaceService.ChangeMemberRole(
		workspaceContext.ID, memberUserID, &request, user.ID,
	); err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Member role updated", nil)
}

// RemoveMember
// @Summary Remove a member from the workspace
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param userId path string true "Member user ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/members/{userId} [delete]
func (c *WorkspaceController) RemoveMember(ctx *gin.Context) {
	user, workspaceContext, ok := c.requireScope(ctx)
	if !ok {
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.workspaceService.RemoveMember(
		workspaceContext.ID, memberUserID, user.ID,
	); err != nil {
		c.respondWorkspaceError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Member removed", nil)
}

func (c *WorkspaceController) requireScope(ctx *gin.Context) (
	*users_dto.UserDTO,
	*workspaces_dto.WorkspaceContextDTO,
	bool,
) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return nil, nil, false
	}

	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return nil, nil, false
	}

	return user, workspaceContext, true
}

func (c *WorkspaceController) respondWorkspaceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, workspaces_services.ErrWorkspaceExists):
		response.Fail(ctx, http.StatusConflict, "Workspace with this slug already exists")
	case errors.Is(err, workspaces_services.ErrMemberExists):
		response.Fail(ctx, http.StatusConflict, "User is already a member of this workspace")
	case errors.Is(err, workspaces_services.ErrWorkspaceNotFound):
		response.Fail(ctx, http.StatusNotFound, "Workspace not found")
	case errors.Is(err, workspaces_services.ErrMemberNotFound):
		response.Fail(ctx, http.StatusNotFound, "Member not found in workspace")
	case errors.Is(err, workspaces_services.ErrLastOwner):
		response.Fail(ctx, http.StatusBadRequest, "Workspace must keep at least one owner")
	case errors.Is(err, workspaces_services.ErrAccessDenied):
		response.Fail(ctx, http.StatusForbidden, "Access to workspace denied")
	default:
		response.Fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
