package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// SettingsController handles settings requests
type SettingsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSettingsController creates a settings controller
func NewSettingsController(ctx *gin.Context, container *container.ServiceContainer) *SettingsController {
	return &SettingsController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetSettings returns the settings, creating the defaults on first read
// @Summary      Get settings
// @Tags         Settings
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  models.SettingsResource
// @Router       /v1/users/{user_id}/settings [get]
func (c *SettingsController) GetSettings() {
	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)

	settings, err := settingsService.GetOrCreateDefault(c.Ctx.Request.Context(), c.Ctx.Param("user_id"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewSettingsResource(settings))
}

// PatchSettings updates the masked settings
// @Summary      Update settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        updateMask query string false "Comma separated field names"
// @Param        request body models.SettingsPayload true "Candidate values"
// @Success      200  {object}  models.SettingsResource
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/settings [patch]
func (c *SettingsController) PatchSettings() {
	var payload models.SettingsPayload
	if !bind(c.Ctx, &payload) {
		return
	}

	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.Patch(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), &payload, c.Ctx.Query("updateMask"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewSettingsResource(settings))
}

// HandleSettingsFunc returns the gin handler for a settings method
func HandleSettingsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSettingsController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "patchSettings":
			controller.PatchSettings()
		default:
			unknownMethod(ctx)
		}
	}
}
