package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// CreateBreadcrumbRequest wraps a single breadcrumb.
type CreateBreadcrumbRequest struct {
	Breadcrumb *models.BreadcrumbInput `json:"breadcrumb" binding:"required"`
}

// BatchCreateBreadcrumbsRequest carries many breadcrumbs.
type BatchCreateBreadcrumbsRequest struct {
	Breadcrumbs []models.BreadcrumbInput `json:"breadcrumbs" binding:"dive"`
}

// BatchCreateBreadcrumbsResponse reports how many rows were written.
type BatchCreateBreadcrumbsResponse struct {
	CreatedCount int `json:"createdCount" example:"3"`
}

// BreadcrumbController handles breadcrumb requests
type BreadcrumbController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBreadcrumbController creates a breadcrumb controller
func NewBreadcrumbController(ctx *gin.Context, container *container.ServiceContainer) *BreadcrumbController {
	return &BreadcrumbController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *BreadcrumbController) service() services.InterfaceBreadcrumbService {
	return c.Container.GetService("breadcrumb").(services.InterfaceBreadcrumbService)
}

// ListBreadcrumbs lists a device track, most recent first
// @Summary      List breadcrumbs
// @Tags         Breadcrumbs
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Param        pageSize query int false "1 to 5000, default 1000"
// @Success      200  {object}  ListBreadcrumbsResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id}/breadcrumbs [get]
func (c *BreadcrumbController) ListBreadcrumbs() {
	size, ok := pageSize(c.Ctx, models.BreadcrumbPageSize)
	if !ok {
		return
	}

	userID := c.Ctx.Param("user_id")
	rows, err := c.service().List(c.Ctx.Request.Context(), userID, c.Ctx.Param("device_id"), size)
	if err != nil {
		fail(c.Ctx, err)
		return
	}

	resp := ListBreadcrumbsResponse{Breadcrumbs: make([]models.BreadcrumbResource, 0, len(rows))}
	for i := range rows {
		resp.Breadcrumbs = append(resp.Breadcrumbs, models.NewBreadcrumbResource(userID, &rows[i]))
	}
	response.OK(c.Ctx, resp)
}

// CreateBreadcrumb records one position
// @Summary      Create breadcrumb
// @Tags         Breadcrumbs
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Param        request body CreateBreadcrumbRequest true "Breadcrumb"
// @Success      201  {object}  models.BreadcrumbResource
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id}/breadcrumbs [post]
func (c *BreadcrumbController) CreateBreadcrumb() {
	var req CreateBreadcrumbRequest
	if !bind(c.Ctx, &req) {
		return
	}

	userID := c.Ctx.Param("user_id")
	row, err := c.service().Create(c.Ctx.Request.Context(), userID, c.Ctx.Param("device_id"), *req.Breadcrumb)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, models.NewBreadcrumbResource(userID, row))
}

// BatchCreateBreadcrumbs records up to 5000 positions in one transaction
// @Summary      Batch create breadcrumbs
// @Tags         Breadcrumbs
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Param        request body BatchCreateBreadcrumbsRequest true "Breadcrumbs"
// @Success      200  {object}  BatchCreateBreadcrumbsResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id}/breadcrumbs:batchCreate [post]
func (c *BreadcrumbController) BatchCreateBreadcrumbs() {
	var req BatchCreateBreadcrumbsRequest
	if !bind(c.Ctx, &req) {
		return
	}

	n, err := c.service().BatchCreate(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), c.Ctx.Param("device_id"), req.Breadcrumbs)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, BatchCreateBreadcrumbsResponse{CreatedCount: n})
}

// HandleBreadcrumbFunc returns the gin handler for a breadcrumb method
func HandleBreadcrumbFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBreadcrumbController(ctx, container)

		switch method {
		case "listBreadcrumbs":
			controller.ListBreadcrumbs()
		case "createBreadcrumb":
			controller.CreateBreadcrumb()
		case "batchCreateBreadcrumbs":
			controller.BatchCreateBreadcrumbs()
		default:
			unknownMethod(ctx)
		}
	}
}
