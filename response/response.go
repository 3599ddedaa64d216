package response

import (
	"net/http"

	"unibordima/errors"
	"unibordima/services/logger"

	"github.com/gin-gonic/gin"
)

// ErrorBody là cấu trúc response lỗi
type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageBody is returned by writes that have nothing else to report.
type MessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success trả về response thành công (200) với các field bổ sung
func Success(c *gin.Context, fields gin.H) {
	write(c, http.StatusOK, fields)
}

// Created trả về response 201
func Created(c *gin.Context, fields gin.H) {
	write(c, http.StatusCreated, fields)
}

// Message trả về {success, message}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Success: true, Message: message})
}

func write(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error ghi lỗi theo status của AppError. Lỗi không xác định trả về 500 và được log lại.
func Error(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	appErr := errors.GetAppError(err)

	if appErr == nil || status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Code:    string(errors.ErrCodeInternal),
			Message: "Server error",
		})
		return
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Code:    string(appErr.Code),
		Message: appErr.Message,
	})
}

// BadRequest trả về response lỗi validation
func BadRequest(c *gin.Context, message string) {
	Error(c, errors.Validation(message))
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context, message string) {
	Error(c, errors.Unauthorized(message))
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Error(c, errors.Forbidden("Not authorized to access this resource"))
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, resource string) {
	Error(c, errors.NotFound(resource))
}
