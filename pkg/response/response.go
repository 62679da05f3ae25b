package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 业务字段（schedule、schedules、changes 等）与 success/message 平铺在同一层
type Response struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应，fields 中的键与 success/message 合并输出
func OK(c *gin.Context, message string, fields gin.H) {
	write(c, http.StatusOK, true, 0, message, fields)
}

// Created 201 创建成功
func Created(c *gin.Context, message string, fields gin.H) {
	write(c, http.StatusCreated, true, 0, message, fields)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	write(c, httpStatus, false, code, message, nil)
}

// ErrorWithFields 带附加字段的错误响应（如批量操作的部分结果）
func ErrorWithFields(c *gin.Context, httpStatus int, code int, message string, fields gin.H) {
	write(c, httpStatus, false, code, message, fields)
}

func write(c *gin.Context, httpStatus int, success bool, code int, message string, fields gin.H) {
	body := gin.H{"success": success}
	if code != 0 {
		body["code"] = code
	}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, code int, message string) {
	Error(c, http.StatusTooManyRequests, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "Internal server error")
}
