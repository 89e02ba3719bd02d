package projects

import (
	"errors"
	"net/http"

	users_enums "taskplane-backend/internal/features/users/enums"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService *ProjectService
}

func NewProjectController(projectService *ProjectService) *ProjectController {
	return &ProjectController{projectService}
}

func (c *ProjectController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	projectRoutes := router.Group(
		"/workspaces/:workspaceSlug/projects",
		authenticate,
		workspaceScope,
	)

	projectRoutes.GET("",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionProjectRead),
		c.GetProjects)
	projectRoutes.POST("",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionProjectWrite),
		c.CreateProject)
	projectRoutes.GET("/:projectId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionProjectRead),
		c.GetProject)
	projectRoutes.PUT("/:projectId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionProjectWrite),
		c.UpdateProject)
	projectRoutes.DELETE("/:projectId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionProjectDelete),
		c.DeleteProject)
}

// GetProjects
// @Summary List projects in the workspace
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	projects, err := c.projectService.GetWorkspaceProjects(workspaceContext.ID)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	response.OK(ctx, http.StatusOK, "Projects retrieved", projects)
}

// CreateProject
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param request body CreateProjectRequestDTO true "Project data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	var request CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := c.projectService.CreateProject(workspaceContext.ID, user.ID, &request)
	if err != nil {
		c.respondProjectError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "Project created", project)
}

// GetProject
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects/{projectId} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := c.projectService.GetProject(workspaceContext.ID, projectID)
	if err != nil {
		c.respondProjectError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Project retrieved", project)
}

// UpdateProject
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param projectId path string true "Project ID"
// @Param request body UpdateProjectRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects/{projectId} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var request UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := c.projectService.UpdateProject(
		workspaceContext.ID, projectID, &request, user.ID,
	)
	if err != nil {
		c.respondProjectError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Project updated", project)
}

// DeleteProject
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects/{projectId} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := c.projectService.DeleteProject(workspaceContext.ID, projectID, user.ID); err != nil {
		c.respondProjectError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Project deleted", nil)
}

func (c *ProjectController) respondProjectError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		response.Fail(ctx, http.StatusNotFound, "Project not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Fail(ctx, http.StatusBadRequest, "Invalid project status")
	default:
		response.Fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
