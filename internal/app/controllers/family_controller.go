package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// FamilyController handles family member requests
type FamilyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFamilyController creates a family controller
func NewFamilyController(ctx *gin.Context, container *container.ServiceContainer) *FamilyController {
	return &FamilyController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *FamilyController) service() services.InterfaceFamilyService {
	return c.Container.GetService("family").(services.InterfaceFamilyService)
}

// ListFamilyMembers lists the user's contacts
// @Summary      List family members
// @Tags         Family
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  ListFamilyMembersResponse
// @Router       /v1/users/{user_id}/familyMembers [get]
func (c *FamilyController) ListFamilyMembers() {
	rows, err := c.service().List(c.Ctx.Request.Context(), c.Ctx.Param("user_id"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}

	resp := ListFamilyMembersResponse{FamilyMembers: make([]models.FamilyMemberResource, 0, len(rows))}
	for i := range rows {
		resp.FamilyMembers = append(resp.FamilyMembers, models.NewFamilyMemberResource(&rows[i]))
	}
	response.OK(c.Ctx, resp)
}

// CreateFamilyMember adds a contact
// @Summary      Create family member
// @Tags         Family
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body services.FamilyMemberInput true "Family member"
// @Success      201  {object}  models.FamilyMemberResource
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/familyMembers [post]
func (c *FamilyController) CreateFamilyMember() {
	var req services.FamilyMemberInput
	if !bind(c.Ctx, &req) {
		return
	}

	member, err := c.service().Create(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), req)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, models.NewFamilyMemberResource(member))
}

// DeleteFamilyMember removes a contact
// @Summary      Delete family member
// @Tags         Family
// @Param        user_id path string true "User ID"
// @Param        member_id path string true "Family member ID"
// @Success      204
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/familyMembers/{member_id} [delete]
func (c *FamilyController) DeleteFamilyMember() {
	if err := c.service().Delete(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), c.Ctx.Param("member_id")); err != nil {
		fail(c.Ctx, err)
		return
	}
	response.NoContent(c.Ctx)
}

// HandleFamilyFunc returns the gin handler for a family member method
func HandleFamilyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFamilyController(ctx, container)

		switch method {
		case "listFamilyMembers":
			controller.ListFamilyMembers()
		case "createFamilyMember":
			controller.CreateFamilyMember()
		case "deleteFamilyMember":
			controller.DeleteFamilyMember()
		default:
			unknownMethod(ctx)
		}
	}
}
