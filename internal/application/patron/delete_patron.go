package patron

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/pkg/cache"
)

// TxManager 事务管理契约（与借阅引擎一致）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeletePatronUseCase 注销读者用例
// 跨聚合守卫:有在借图书的读者不能注销(书还没还)
type DeletePatronUseCase struct {
	patronRepo patron.Repository
	recordRepo borrowing.Repository
	txManager  TxManager
	cache      cache.ReadCache
}

// NewDeletePatronUseCase 创建注销读者用例
func NewDeletePatronUseCase(
	patronRepo patron.Repository,
	recordRepo borrowing.Repository,
	txManager TxManager,
	rc cache.ReadCache,
) *DeletePatronUseCase {
	return &DeletePatronUseCase{
		patronRepo: patronRepo,
		recordRepo: recordRepo,
		txManager:  txManager,
		cache:      rc,
	}
}

// Execute 执行注销读者
// 守卫检查和删除放在同一事务内保证原子性
func (uc *DeletePatronUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.patronRepo.ExistsByID(txCtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return patron.ErrPatronNotFound
		}

		active, err := uc.recordRepo.ExistsActiveByPatronID(txCtx, id)
		if err != nil {
			return err
		}
		if active {
			return patron.ErrPatronHasLoan
		}

		return uc.patronRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixPatrons); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return nil
}
