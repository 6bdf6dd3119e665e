package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/pkg/cache"
)

// DeleteBookUseCase 删除图书用例
// 跨聚合守卫:在借的图书不能删除(否则借阅记录悬空,读者还不了书)
type DeleteBookUseCase struct {
	bookRepo   book.Repository
	recordRepo borrowing.Repository
	txManager  TxManager
	cache      cache.ReadCache
}

// TxManager 事务管理契约（与借阅引擎一致）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	recordRepo borrowing.Repository,
	txManager TxManager,
	rc cache.ReadCache,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:   bookRepo,
		recordRepo: recordRepo,
		txManager:  txManager,
		cache:      rc,
	}
}

// Execute 执行删除图书
// 守卫检查和删除在同一事务内,并持图书行锁:
// 防止检查通过后、删除执行前,并发借阅插入在借记录
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行,与借阅引擎互斥
		if _, err := uc.bookRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		active, err := uc.recordRepo.ExistsActiveByBookID(txCtx, id)
		if err != nil {
			return err
		}
		if active {
			return book.ErrBookOnLoan
		}

		return uc.bookRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixBooks); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return nil
}
