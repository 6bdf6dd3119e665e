package borrowing

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/pkg/cache"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// TxManager 事务管理契约
// 由mysql.TxManager实现,单测中可用串行执行的假实现替代
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BorrowBookUseCase 借书用例
// 教学要点:这是整个项目最核心的用例
// 涉及:事务处理、并发控制、业务规则校验、缓存失效
//
// 核心不变量:每本书同一时刻最多一条在借记录
// 场景:同一本书,两个读者同时点"借阅"
// 错误实现:
//  1. 查询图书 → Available=true
//  2. 创建借阅记录
//  3. 更新Available=false
//     结果:两个请求都通过了步骤1,产生两条在借记录(双借!)
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 检查前置条件(读者存在、图书可借、无在借记录)
//  3. 创建借阅记录
//  4. 更新Available=false
//  5. COMMIT释放锁
type BorrowBookUseCase struct {
	bookRepo   book.Repository
	patronRepo patron.Repository
	recordRepo borrowing.Repository
	txManager  TxManager
	cache      cache.ReadCache
	now        func() time.Time
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	patronRepo patron.Repository,
	recordRepo borrowing.Repository,
	txManager TxManager,
	rc cache.ReadCache,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo:   bookRepo,
		patronRepo: patronRepo,
		recordRepo: recordRepo,
		txManager:  txManager,
		cache:      rc,
		now:        time.Now,
	}
}

// BorrowBookResponse 借书响应DTO
type BorrowBookResponse struct {
	RecordID   uint      `json:"record_id"`
	BookID     uint      `json:"book_id"`
	PatronID   uint      `json:"patron_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}

// Execute 执行借书用例
// 前置条件检查顺序(全部在持图书行锁的事务内):
//  1. 图书存在(锁定失败即不存在)
//  2. 读者存在
//  3. 图书可借
//  4. 该图书无在借记录(与Available的交叉校验,数据错乱时兜底)
func (uc *BorrowBookUseCase) Execute(ctx context.Context, bookID, patronID uint) (*BorrowBookResponse, error) {
	record, err := uc.borrowTx(ctx, bookID, patronID)
	if apperrors.IsCode(err, apperrors.ErrCodeLockConflict) {
		// 死锁:MySQL已回滚其中一个事务,在事务边界重试一次
		record, err = uc.borrowTx(ctx, bookID, patronID)
		if apperrors.IsCode(err, apperrors.ErrCodeLockConflict) {
			// 重试仍然冲突:说明该图书的借阅竞争激烈,当作已被他人借走
			return nil, borrowing.ErrBorrowedByAnother
		}
	}
	if err != nil {
		return nil, err
	}

	// 缓存失效必须在COMMIT之后:
	// 事务内失效的话,其他请求可能在COMMIT前用旧数据回填缓存
	uc.invalidateCache(ctx)

	return &BorrowBookResponse{
		RecordID:   record.ID,
		BookID:     record.BookID,
		PatronID:   record.PatronID,
		BorrowDate: record.BorrowDate,
		DueDate:    record.DueDate,
	}, nil
}

// borrowTx 单次借书事务
func (uc *BorrowBookUseCase) borrowTx(ctx context.Context, bookID, patronID uint) (*borrowing.Record, error) {
	var record *borrowing.Record

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:锁定图书行(SELECT FOR UPDATE)
		// 同一图书的并发借阅事务从这里开始排队
		b, err := uc.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err // 图书不存在
		}

		// 步骤2:检查读者存在
		exists, err := uc.patronRepo.ExistsByID(txCtx, patronID)
		if err != nil {
			return err
		}
		if !exists {
			return patron.ErrPatronNotFound
		}

		// 步骤3:检查图书可借
		if err := b.MarkBorrowed(); err != nil {
			return err // ErrAlreadyBorrowed
		}

		// 步骤4:交叉校验无在借记录
		// Available与在借记录理论上同步变化,但它们是两张表的两个字段,
		// 不一致时宁可拒绝借阅也不能产生第二条在借记录
		active, err := uc.recordRepo.ExistsActiveByBookID(txCtx, bookID)
		if err != nil {
			return err
		}
		if active {
			return borrowing.ErrBorrowedByAnother
		}

		// 步骤5:创建借阅记录(借出日期=当前时间,应还日期=+14天)
		record = borrowing.NewRecord(bookID, patronID, uc.now())
		if err := uc.recordRepo.Create(txCtx, record); err != nil {
			return err
		}

		// 步骤6:置为不可借(事务自动COMMIT)
		return uc.bookRepo.SetAvailability(txCtx, bookID, false)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// invalidateCache 失效图书类和读者类缓存视图
// 借书同时改变了图书可借状态和读者借阅历史,两类视图整体清除。
// 缓存失效失败不影响已提交的借阅(缓存有TTL兜底),只记录日志
func (uc *BorrowBookUseCase) invalidateCache(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.PrefixBooks, cache.PrefixPatrons); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}
}
