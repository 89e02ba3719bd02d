package audit_logs

import (
	"net/http"

	users_enums "taskplane-backend/internal/features/users/enums"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func NewAuditLogController(auditLogService *AuditLogService) *AuditLogController {
	return &AuditLogController{auditLogService}
}

func (c *AuditLogController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	router.GET("/workspaces/:workspaceSlug/audit-logs",
		authenticate,
		workspaceScope,
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionWorkspaceRead),
		c.GetWorkspaceAuditLogs)
}

// GetWorkspaceAuditLogs
// @Summary Get workspace audit logs
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Only logs created before this date (RFC3339)" format(date-time)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/audit-logs [get]
func (c *AuditLogController) GetWorkspaceAuditLogs(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	request := &GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	logs, err := c.auditLogService.GetWorkspaceAuditLogs(workspaceContext.ID, request)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to retrieve audit logs")
		return
	}

	response.OK(ctx, http.StatusOK, "Audit logs retrieved", logs)
}
