package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// SOSController handles SOS requests
type SOSController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSOSController creates an SOS controller
func NewSOSController(ctx *gin.Context, container *container.ServiceContainer) *SOSController {
	return &SOSController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *SOSController) service() services.InterfaceSOSService {
	return c.Container.GetService("sos").(services.InterfaceSOSService)
}

func (c *SOSController) write(view models.StatusView, err error) {
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewSOSResource(c.Ctx.Param("user_id"), view))
}

// GetStatus returns the current SOS state
// @Summary      Get SOS status
// @Tags         SOS
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  models.SOSResource
// @Router       /v1/users/{user_id}/sos [get]
func (c *SOSController) GetStatus() {
	c.write(c.service().GetStatus(c.Ctx.Request.Context(), c.Ctx.Param("user_id")))
}

// Activate raises an SOS or refreshes the open one
// @Summary      Activate SOS
// @Description  A second activation reuses the open session and only overwrites the supplied values.
// @Tags         SOS
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body services.ActivateSOSInput false "Message and location"
// @Success      200  {object}  models.SOSResource
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/sos:activate [post]
func (c *SOSController) Activate() {
	var req services.ActivateSOSInput
	if !bindOptional(c.Ctx, &req) {
		return
	}
	c.write(c.service().Activate(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), req))
}

// Cancel closes the open SOS session
// @Summary      Cancel SOS
// @Tags         SOS
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  models.SOSResource
// @Router       /v1/users/{user_id}/sos:cancel [post]
func (c *SOSController) Cancel() {
	c.write(c.service().Cancel(c.Ctx.Request.Context(), c.Ctx.Param("user_id")))
}

// HandleSOSFunc returns the gin handler for an SOS method
func HandleSOSFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSOSController(ctx, container)

		switch method {
		case "getStatus":
			controller.GetStatus()
		case "activate":
			controller.Activate()
		case "cancel":
			controller.Cancel()
		default:
			unknownMethod(ctx)
		}
	}
}
