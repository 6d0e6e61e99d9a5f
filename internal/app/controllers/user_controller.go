package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// UserController handles user requests
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetUser returns one user
// @Summary      Get user
// @Tags         Users
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  models.UserResource
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id} [get]
func (c *UserController) GetUser() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	user, err := userService.Get(c.Ctx.Request.Context(), c.Ctx.Param("user_id"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewUserResource(user))
}

// HandleUserFunc returns the gin handler for a user method
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUser":
			controller.GetUser()
		default:
			unknownMethod(ctx)
		}
	}
}
