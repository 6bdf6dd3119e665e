package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调多个领域服务
// 2. 当前注册用例比较简单，只调用一个领域服务
// 3. 未来可能扩展：发送欢迎邮件、记录审计日志等
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User UserInfo `json:"user"`
}

// UserInfo 用户信息（不含密码哈希）
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		User: UserInfo{
			ID:    u.ID,
			Email: u.Email,
			Role:  string(u.Role),
		},
	}, nil
}
