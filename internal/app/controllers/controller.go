package controllers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/fieldmask"
	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/error/code"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// ListDevicesResponse is the body of a device list.
type ListDevicesResponse struct {
	Devices       []models.DeviceResource `json:"devices"`
	NextPageToken *string                 `json:"nextPageToken"`
}

// ListBreadcrumbsResponse is the body of a breadcrumb list.
type ListBreadcrumbsResponse struct {
	Breadcrumbs   []models.BreadcrumbResource `json:"breadcrumbs"`
	NextPageToken *string                     `json:"nextPageToken"`
}

// ListCheckInsResponse is the body of a check-in list.
type ListCheckInsResponse struct {
	CheckIns      []models.CheckInResource `json:"checkIns"`
	NextPageToken *string                  `json:"nextPageToken"`
}

// ListFamilyMembersResponse is the body of a family member list.
type ListFamilyMembersResponse struct {
	FamilyMembers []models.FamilyMemberResource `json:"familyMembers"`
}

// ListMessagesResponse is the body of a message list.
type ListMessagesResponse struct {
	Messages      []models.MessageResource `json:"messages"`
	NextPageToken *string                  `json:"nextPageToken"`
}

// fail maps a service error onto its error code and writes it.
func fail(c *gin.Context, err error) {
	var maskErr *fieldmask.InvalidMaskError
	switch {
	case errors.As(err, &maskErr):
		response.FailWithMessage(c, code.ErrInvalidUpdateMask, maskErr.Error())
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(c, code.ErrUserNotFound)
	case errors.Is(err, services.ErrDeviceNotFound):
		response.Fail(c, code.ErrDeviceNotFound)
	case errors.Is(err, services.ErrDeviceAlreadyExist):
		response.Fail(c, code.ErrDeviceAlreadyExist)
	case errors.Is(err, services.ErrInvalidPairingCode):
		response.Fail(c, code.ErrInvalidPairingCode)
	case errors.Is(err, services.ErrFamilyMemberNotFound):
		response.Fail(c, code.ErrFamilyMemberNotFound)
	case errors.Is(err, services.ErrIncompleteLocation),
		errors.Is(err, services.ErrTooManyBreadcrumbs),
		errors.Is(err, services.ErrEmptyText):
		response.ParamError(c, err.Error())
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.Fail(c, code.ErrDatabase)
	}
}

// bind decodes and validates the JSON body, answering 400 on failure.
func bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.ParamError(c, err.Error())
		return false
	}
	return true
}

// bindOptional is bind for endpoints whose body may be omitted.
func bindOptional(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c, err.Error())
		return false
	}
	return true
}

// pageSize resolves ?pageSize= against rule, answering 400 when rejected.
func pageSize(c *gin.Context, rule models.PageSizeRule) (int, bool) {
	n, err := rule.Resolve(c.Query("pageSize"))
	if err != nil {
		response.ParamError(c, err.Error())
		return 0, false
	}
	return n, true
}

func unknownMethod(c *gin.Context) {
	response.NotFound(c, "")
}
