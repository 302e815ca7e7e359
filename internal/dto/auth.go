package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email      string `json:"email"       binding:"required,email,max=255"`
	Password   string `json:"password"    binding:"required,min=6,max=72"`
	Name       string `json:"name"        binding:"required,min=1,max=100"`
	Role       string `json:"role"        binding:"required,oneof=student teacher"`
	StudentID  string `json:"student_id"  binding:"omitempty,max=50"`
	EmployeeID string `json:"employee_id" binding:"omitempty,max=50"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录/注册成功响应
// session 模式下 AccessToken 为会话 ID，同时以 HttpOnly Cookie 下发
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   string       `json:"expires_at"`
	User        UserResponse `json:"user"`
}
