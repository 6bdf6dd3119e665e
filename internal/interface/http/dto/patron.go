package dto

// CreatePatronRequest HTTP登记读者请求
type CreatePatronRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"张三"`
	ContactInfo string `json:"contact_info" binding:"required,max=200" example:"13800138000"`
	Email       string `json:"email" binding:"required,email,max=100" example:"zhangsan@example.com"`
}

// UpdatePatronRequest HTTP更新读者请求
type UpdatePatronRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"张三"`
	ContactInfo string `json:"contact_info" binding:"required,max=200" example:"13800138000"`
	Email       string `json:"email" binding:"required,email,max=100" example:"zhangsan@example.com"`
}
