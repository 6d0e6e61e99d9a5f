package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/error/code"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code" example:"102000"`
	Message string `json:"message" example:"Device not found"`
}

// OK writes a resource with 200.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a newly created resource with 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent answers 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes the default message of errorCode.
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage writes errorCode with a custom message.
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.AbortWithStatusJSON(code.GetStatus(errorCode), ErrorResponse{
		Code:    errorCode,
		Message: message,
	})
}

// ParamError 400 for a request that failed validation.
func ParamError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrValidation)
	}
	FailWithMessage(c, code.ErrValidation, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrNotFound)
	}
	FailWithMessage(c, code.ErrNotFound, message)
}

// ServerError 500
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown)
}
