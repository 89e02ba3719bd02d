package analytics

import (
	"net/http"

	users_enums "taskplane-backend/internal/features/users/enums"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService *AnalyticsService
}

func NewAnalyticsController(analyticsService *AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService}
}

func (c *AnalyticsController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	workspaceScope gin.HandlerFunc,
) {
	router.GET("/workspaces/:workspaceSlug/analytics/dashboard",
		authenticate,
		workspaceScope,
		workspaces_middleware.PermissionMiddleware(users_enums.PermissionAnalyticsRead),
		c.GetDashboardMetrics)
}

// GetDashboardMetrics
// @Summary Get workspace dashboard metrics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param workspaceSlug path string true "Workspace slug"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceSlug}/analytics/dashboard [get]
func (c *AnalyticsController) GetDashboardMetrics(ctx *gin.Context) {
	workspaceContext, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusForbidden, "Workspace context required")
		return
	}

	metrics, err := c.analyticsService.GetDashboardMetrics(workspaceContext.ID)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to compute metrics")
		return
	}

	response.OK(ctx, http.StatusOK, "Dashboard metrics retrieved", metrics)
}
