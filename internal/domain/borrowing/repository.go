package borrowing

import (
	"context"
)

// Repository 借阅记录仓储接口
// 设计说明:
// 1. 活动记录(ReturnDate为nil)的查询是借阅引擎的并发关键路径,
//    必须在持有图书行锁的事务内调用才有隔离意义
// 2. 记录只增改不删
type Repository interface {
	// Create 创建借阅记录(借出)
	Create(ctx context.Context, record *Record) error

	// Update 更新借阅记录(归还时写ReturnDate)
	Update(ctx context.Context, record *Record) error

	// ExistsActiveByBookID 图书是否存在在借记录
	ExistsActiveByBookID(ctx context.Context, bookID uint) (bool, error)

	// ExistsActiveByPatronID 读者是否存在在借记录
	ExistsActiveByPatronID(ctx context.Context, patronID uint) (bool, error)

	// FindActiveForUpdate 查找(图书,读者)的在借记录并加行锁
	// 未找到返回ErrLoanNotFound
	FindActiveForUpdate(ctx context.Context, bookID, patronID uint) (*Record, error)

	// HistoryByPatronID 读者的全部借阅历史
	// 按借出日期降序(最近的在前),联表取书名与读者姓名
	HistoryByPatronID(ctx context.Context, patronID uint) ([]*HistoryEntry, error)
}
