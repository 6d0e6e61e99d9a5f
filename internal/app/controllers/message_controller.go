package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// MessageController handles message requests
type MessageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMessageController creates a message controller
func NewMessageController(ctx *gin.Context, container *container.ServiceContainer) *MessageController {
	return &MessageController{
		Ctx:       ctx,
		Container: container,
	}
}

// ListMessages lists messages, newest first
// @Summary      List messages
// @Tags         Messages
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        pageSize query int false "clamped into 1 to 200, default 50"
// @Success      200  {object}  ListMessagesResponse
// @Router       /v1/users/{user_id}/messages [get]
func (c *MessageController) ListMessages() {
	size, ok := pageSize(c.Ctx, models.MessagePageSize)
	if !ok {
		return
	}

	messageService := c.Container.GetService("message").(services.InterfaceMessageService)
	rows, err := messageService.List(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), size)
	if err != nil {
		fail(c.Ctx, err)
		return
	}

	resp := ListMessagesResponse{Messages: make([]models.MessageResource, 0, len(rows))}
	for i := range rows {
		resp.Messages = append(resp.Messages, models.NewMessageResource(&rows[i]))
	}
	response.OK(c.Ctx, resp)
}

// CreateMessage posts a message
// @Summary      Create message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body services.MessageInput true "Message"
// @Success      201  {object}  models.MessageResource
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/messages [post]
func (c *MessageController) CreateMessage() {
	var req services.MessageInput
	if !bind(c.Ctx, &req) {
		return
	}

	messageService := c.Container.GetService("message").(services.InterfaceMessageService)
	row, err := messageService.Create(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), req)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, models.NewMessageResource(row))
}

// HandleMessageFunc returns the gin handler for a message method
func HandleMessageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMessageController(ctx, container)

		switch method {
		case "listMessages":
			controller.ListMessages()
		case "createMessage":
			controller.CreateMessage()
		default:
			unknownMethod(ctx)
		}
	}
}
