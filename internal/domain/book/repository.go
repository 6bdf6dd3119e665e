package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// ExistsByISBN 检查ISBN是否已存在
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// FindAll 查询全部图书(按ID升序)
	FindAll(ctx context.Context) ([]*Book, error)

	// LockByID 悲观锁查询图书(借阅引擎用)
	// 使用SELECT FOR UPDATE锁定行,锁在事务提交前不释放,
	// 同一图书的并发借阅事务在此串行化
	LockByID(ctx context.Context, id uint) (*Book, error)

	// SetAvailability 更新可借状态(借阅引擎专用,事务内调用)
	SetAvailability(ctx context.Context, id uint, available bool) error
}
