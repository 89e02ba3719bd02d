package system

import (
	"net/http"

	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	healthService *HealthService
}

func NewHealthController(healthService *HealthService) *HealthController {
	return &HealthController{healthService}
}

func (c *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

// GetHealth
// @Summary Service health status
// @Tags system
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (c *HealthController) GetHealth(ctx *gin.Context) {
	response.OK(ctx, http.StatusOK, "Service is healthy", c.healthService.GetHealthStatus())
}
