package tasks

import (
	"errors"
	"net/http"

	"taskplane-backend/internal/features/projects"
	users_enums "taskplane-backend/internal/features/users/enums"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *TaskService
}

func NewTaskController(taskService *TaskService) *TaskController {
	return &TaskController{taskService}
}

func (c *TaskController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	scoped := router.Group("/workspaces/:workspaceSlug", authenticate, workspaceScope)

	scoped.GET("/projects/:projectId/tasks",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskRead),
		c.GetProjectTasks)
	scoped.POST("/tasks",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskWrite),
		c.CreateTask)
	scoped.GET("/tasks/:taskId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskRead),
		c.GetTask)
	scoped.PUT("/tasks/:taskId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskWrite),
		c.UpdateTask)
	scoped.PUT("/tasks/:taskId/assignee",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskAssign),
		c.AssignTask)
	scoped.DELETE("/tasks/:taskId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskDelete),
		c.DeleteTask)
}

// GetProjectTasks
// @Summary List tasks in a project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/projects/{projectId}/tasks [get]
func (c *TaskController) GetProjectTasks(ctx *gin.Context) {
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

	tasks, err := c.taskService.GetProjectTasks(workspaceContext.ID, projectID)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Tasks retrieved", tasks)
}

// CreateTask
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param request body CreateTaskRequestDTO true "Task data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.CreateTask(workspaceContext.ID, user.ID, &request)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "Task created", task)
}

// GetTask
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := c.taskService.GetTask(workspaceContext.ID, taskID)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Task retrieved", task)
}

// UpdateTask
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Param request body UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.UpdateTask(workspaceContext.ID, taskID, &request, user.ID)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Task updated", task)
}

// AssignTask
// @Summary Assign or unassign a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Param request body AssignTaskRequestDTO true "Assignee (null to unassign)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId}/assignee [put]
func (c *TaskController) AssignTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request AssignTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.AssignTask(workspaceContext.ID, taskID, &request, user.ID)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Task assignment updated", task)
}

// DeleteTask
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := c.taskService.DeleteTask(workspaceContext.ID, taskID, user.ID); err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Task deleted", nil)
}

func (c *TaskController) respondTaskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, projects.ErrProjectNotFound):
		response.Fail(ctx, http.StatusNotFound, "Task or project not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Fail(ctx, http.StatusBadRequest, "Invalid task status")
	case errors.Is(err, ErrInvalidPriority):
		response.Fail(ctx, http.StatusBadRequest, "Invalid task priority")
	default:
		response.Fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
