package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/api/middleware"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// MustGetCaller 从 Gin 上下文中提取调用者身份。
// 认证中间件未注入或角色无法识别时写入 401 响应并返回 false，调用方应直接 return。
func MustGetCaller(c *gin.Context) (access.Caller, bool) {
	userID := c.GetString(middleware.ContextUserID)
	role, err := access.ParseRole(c.GetString(middleware.ContextRole))
	if userID == "" || err != nil {
		response.Unauthorized(c, 10002, "Not authenticated")
		return access.Caller{}, false
	}
	return access.Caller{UserID: userID, Role: role}, true
}

// tokenFromContext 当前 Access Token 的 jti 与过期时间
func tokenFromContext(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.ContextTokenJTI)
	exp, _ := c.Get(middleware.ContextTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}
