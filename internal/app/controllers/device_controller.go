package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
)

// InterfaceDeviceController lists the device endpoints
type InterfaceDeviceController interface {
	PairDevice()
	ListDevices()
	GetDevice()
	PatchDevice()
	CheckFirmware()
}

// DeviceController handles device requests
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController creates a device controller
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *DeviceController) service() services.InterfaceDeviceService {
	return c.Container.GetService("device").(services.InterfaceDeviceService)
}

// PairDevice pairs a tracker with the user
// @Summary      Pair device
// @Description  Registers a tracker under its pairing code. The optional device sets its initial state.
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body services.PairDeviceInput true "Pairing request"
// @Success      201  {object}  models.DeviceResource
// @Failure      400  {object}  response.ErrorResponse
// @Failure      409  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices [post]
func (c *DeviceController) PairDevice() {
	var req services.PairDeviceInput
	if !bind(c.Ctx, &req) {
		return
	}

	device, err := c.service().Pair(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), req)
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, models.NewDeviceResource(device))
}

// ListDevices lists the user's devices, newest first
// @Summary      List devices
// @Tags         Devices
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        pageSize query int false "1 to 200, default 50"
// @Success      200  {object}  ListDevicesResponse
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices [get]
func (c *DeviceController) ListDevices() {
	size, ok := pageSize(c.Ctx, models.DevicePageSize)
	if !ok {
		return
	}

	devices, err := c.service().List(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), size)
	if err != nil {
		fail(c.Ctx, err)
		return
	}

	resp := ListDevicesResponse{Devices: make([]models.DeviceResource, 0, len(devices))}
	for i := range devices {
		resp.Devices = append(resp.Devices, models.NewDeviceResource(&devices[i]))
	}
	response.OK(c.Ctx, resp)
}

// GetDevice returns one device
// @Summary      Get device
// @Tags         Devices
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Success      200  {object}  models.DeviceResource
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id} [get]
func (c *DeviceController) GetDevice() {
	device, err := c.service().Get(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), c.Ctx.Param("device_id"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewDeviceResource(device))
}

// PatchDevice updates the masked fields of a device
// @Summary      Update device
// @Description  Without updateMask every supplied field is written.
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Param        updateMask query string false "Comma separated field names"
// @Param        request body models.DevicePayload true "Candidate values"
// @Success      200  {object}  models.DeviceResource
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id} [patch]
func (c *DeviceController) PatchDevice() {
	var payload models.DevicePayload
	if !bind(c.Ctx, &payload) {
		return
	}

	device, err := c.service().Patch(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), c.Ctx.Param("device_id"), &payload, c.Ctx.Query("updateMask"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, models.NewDeviceResource(device))
}

// CheckFirmware compares the device firmware with the latest release
// @Summary      Check firmware
// @Tags         Devices
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        device_id path string true "Device ID"
// @Success      200  {object}  models.FirmwareInfo
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/users/{user_id}/devices/{device_id}:checkFirmware [get]
func (c *DeviceController) CheckFirmware() {
	info, err := c.service().CheckFirmware(c.Ctx.Request.Context(), c.Ctx.Param("user_id"), c.Ctx.Param("device_id"))
	if err != nil {
		fail(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, info)
}

// HandleDeviceFunc returns the gin handler for a device method
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "pairDevice":
			controller.PairDevice()
		case "listDevices":
			controller.ListDevices()
		case "getDevice":
			controller.GetDevice()
		case "patchDevice":
			controller.PatchDevice()
		case "checkFirmware":
			controller.CheckFirmware()
		default:
			unknownMethod(ctx)
		}
	}
}
