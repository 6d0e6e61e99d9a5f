package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// CreateCheckInRequest wraps a check-in.
type CreateCheckInRequest struct {
	CheckIn *services.CheckInInput `json:"checkIn" binding:"required"`
}

// CheckInController handles check-in requests
type CheckInController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCheckInController creates a check-in controller
func NewCheckInController(ctx *gin.Context, container *container.ServiceContainer) *CheckInController {
	return &CheckInController{
		Ctx:       ctx,
		Container: container,
	}
}

// ListCheckIns lists check-ins, newest first
// @Summary      List check-ins
// @Description  pageSize is clamped into 1 to 200.
// @Tags         CheckIns
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        pageSize query int false "default 50"
// @Success      200  {object}  ListCheckInsResponse
// @Router       /v1/users/{user_id}/checkIns [get]
func (c *CheckInController) ListCheckIns() {
	size, ok := pageSize(c.Ctx, models.CheckInPageSize)
	if !ok {
		return
	}

	checkInService := c.Container.GetService("checkin").(services.InterfaceCheckInService)
	rows, err := checkInService.List(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), size)
	if err != nil {
		fail(c.Ctx, err)
		return
	}

	resp := ListCheckInsResponse{CheckIns: make([]models.CheckInResource, 0, len(rows))}
	for i := range rows {
		resp.CheckIns = append(resp.CheckIns, models.NewCheckInResource(&rows[i]))
	}
	response.OK(c.Ctx, resp)
}

// CreateCheckIn records a check-in
// @Summary      Create check-in
// @Tags         CheckIns
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body CreateCheckInRequest true "Check-in"
// @Success      201  {object}  models.CheckInResource
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/checkIns [post]
func (c *CheckInController) CreateCheckIn() {
	var req CreateCheckInRequest
	if !bind(c.Ctx, &req) {
		return
	}

	checkInService := c.Container.GetService("checkin").(services.InterfaceCheckInService)
	row, err := checkInService.Create(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), *req.CheckIn)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, models.NewCheckInResource(row))
}

// HandleCheckInFunc returns the gin handler for a check-in method
func HandleCheckInFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCheckInController(ctx, container)

		switch method {
		case "listCheckIns":
			controller.ListCheckIns()
		case "createCheckIn":
			controller.CreateCheckIn()
		default:
			unknownMethod(ctx)
		}
	}
}
