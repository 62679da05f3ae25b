package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11002, "Email and password are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "Invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token": result.AccessToken,
		"expires_in":   result.ExpiresIn,
		"user":         result.User,
	})
}

// Logout 用户登出，当前 Token 加入黑名单直至过期
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenFromContext(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Logged out successfully", nil)
}
