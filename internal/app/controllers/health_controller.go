package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// HealthCheckController handles the operational endpoints
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthCheckController creates a health check controller
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
	}
}

// Health runs SELECT 1 through the pool
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthCheckController) Health() {
	if err := h.Container.GetPool().HealthCheck(h.Ctx.Request.Context()); err != nil {
		logger.Warning("health check failed: %v", err)
		h.Ctx.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "error"})
		return
	}
	h.Ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// DBInfo reports the database connection with the password masked
// @Summary      Database info
// @Tags         Health
// @Produce      json
// @Success      200  {object}  database.Info
// @Router       /db [get]
func (h *HealthCheckController) DBInfo() {
	h.Ctx.JSON(http.StatusOK, h.Container.GetPool().Info(h.Ctx.Request.Context()))
}

// HandleHealthFunc returns the gin handler for an operational method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "health":
			controller.Health()
		case "db":
			controller.DBInfo()
		default:
			unknownMethod(ctx)
		}
	}
}
