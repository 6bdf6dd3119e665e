package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RolePatron Role = "PATRON" // 普通读者账号
	RoleAdmin  Role = "ADMIN"  // 管理员账号
)

// User 系统用户实体(聚合根)
// 说明:User是登录账号,与Patron(读者档案)是两个概念,
// 读者档案由管理端维护,账号用于API鉴权
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值,不暴露明文
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
