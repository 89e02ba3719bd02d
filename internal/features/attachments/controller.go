package attachments

import (
	"errors"
	"net/http"

	"taskplane-backend/internal/features/tasks"
	users_enums "taskplane-backend/internal/features/users/enums"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *AttachmentService
}

func NewAttachmentController(attachmentService *AttachmentService) *AttachmentController {
	return &AttachmentController{attachmentService}
}

func (c *AttachmentController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	scoped := router.Group("/workspaces/:workspaceSlug", authenticate, workspaceScope)

	scoped.POST("/tasks/:taskId/attachments",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionFileUpload),
		c.UploadAttachment)
	scoped.GET("/tasks/:taskId/attachments",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskRead),
		c.GetTaskAttachments)
	scoped.GET("/attachments/:attachmentId/download",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionTaskRead),
		c.GetDownloadURL)
	scoped.DELETE("/attachments/:attachmentId",
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionFileDelete),
		c.DeleteAttachment)
}

// UploadAttachment
// @Summary Upload a file to a task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId}/attachments [post]
func (c *AttachmentController) UploadAttachment(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := c.attachmentService.Upload(
		ctx.Request.Context(),
		workspaceContext.ID,
		taskID,
		user.ID,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		c.respondAttachmentError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "File uploaded", attachment)
}

// GetTaskAttachments
// @Summary List a task's attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/tasks/{taskId}/attachments [get]
func (c *AttachmentController) GetTaskAttachments(ctx *gin.Context) {
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

	attachmentList, err := c.attachmentService.GetTaskAttachments(workspaceContext.ID, taskID)
	if err != nil {
		c.respondAttachmentError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Attachments retrieved", attachmentList)
}

// GetDownloadURL
// @Summary Get a presigned download URL for an attachment
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/attachments/{attachmentId}/download [get]
func (c *AttachmentController) GetDownloadURL(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid attachment ID")
		return
	}

	url, err := c.attachmentService.GetDownloadURL(
		ctx.Request.Context(), workspaceContext.ID, attachmentID,
	)
	if err != nil {
		c.respondAttachmentError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Download URL generated", gin.H{"url": url})
}

// DeleteAttachment
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/attachments/{attachmentId} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
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

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid attachment ID")
		return
	}

	if err := c.attachmentService.Delete(
		ctx.Request.Context(), workspaceContext.ID, attachmentID, user.ID,
	); err != nil {
		c.respondAttachmentError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Attachment deleted", nil)
}

func (c *AttachmentController) respondAttachmentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAttachmentNotFound), errors.Is(err, tasks.ErrTaskNotFound):
		response.Fail(ctx, http.StatusNotFound, "Attachment or task not found")
	case errors.Is(err, ErrFileTooLarge):
		response.Fail(ctx, http.StatusBadRequest, "File exceeds the maximum allowed size")
	default:
		response.Fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
