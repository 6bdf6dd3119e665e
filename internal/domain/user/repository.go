package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail 检查邮箱是否已被注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
