package dto

// RegisterRequest HTTP注册请求
// 密码强度(8-20位,字母+数字)由领域服务校验,binding只做长度约束
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"passw0rd"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd"`
}
