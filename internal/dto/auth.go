package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest 创建用户（命令行 useradd 使用）
type CreateUserRequest struct {
	FirstName     string
	Surname       string
	Email         string
	Password      string
	Role          string
	StudentNumber string
	YearLevel     int
	Section       string
}
