package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/pkg/jwt"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// 上下文键，与 handler 包中的读取保持一致
const (
	ContextUserID   = "user_id"
	ContextRole     = "role"
	ContextTokenJTI = "token_jti"
	ContextTokenExp = "token_exp"
)

// TokenChecker 查询 Token 是否已注销
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// blacklist 为 nil 时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Not authenticated")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token is invalid or expired")
			c.Abort()
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 不可用时降级放行
				logger.Warn("黑名单查询失败", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "Token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireAction 权限中间件：当前角色须被允许执行 action
func RequireAction(action access.Action, deniedMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextRole)
		if !exists {
			response.Unauthorized(c, 10002, "Not authenticated")
			c.Abort()
			return
		}

		roleStr, _ := v.(string)
		role, err := access.ParseRole(roleStr)
		if err != nil || !access.Can(role, action) {
			response.Forbidden(c, 10003, deniedMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}
