package patron

import (
	"context"
)

// Repository 读者仓储接口
type Repository interface {
	// Create 创建读者
	Create(ctx context.Context, patron *Patron) error

	// FindByID 根据ID查找读者
	FindByID(ctx context.Context, id uint) (*Patron, error)

	// ExistsByID 检查读者是否存在
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// ExistsByEmail 检查邮箱是否已被注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update 更新读者信息
	Update(ctx context.Context, patron *Patron) error

	// Delete 删除读者
	Delete(ctx context.Context, id uint) error

	// FindAll 查询全部读者(按ID升序)
	FindAll(ctx context.Context) ([]*Patron, error)
}
