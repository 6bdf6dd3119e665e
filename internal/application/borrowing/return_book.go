package borrowing

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/pkg/cache"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ReturnBookUseCase 还书用例
// 与借书用例构成借阅引擎的另一半:
// 归还在一个事务内关闭在借记录并恢复图书可借状态,
// 两个写入要么同时生效要么都不生效
type ReturnBookUseCase struct {
	bookRepo   book.Repository
	recordRepo borrowing.Repository
	txManager  TxManager
	cache      cache.ReadCache
	now        func() time.Time
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	bookRepo book.Repository,
	recordRepo borrowing.Repository,
	txManager TxManager,
	rc cache.ReadCache,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		bookRepo:   bookRepo,
		recordRepo: recordRepo,
		txManager:  txManager,
		cache:      rc,
		now:        time.Now,
	}
}

// ReturnBookResponse 还书响应DTO
type ReturnBookResponse struct {
	RecordID   uint      `json:"record_id"`
	BookID     uint      `json:"book_id"`
	PatronID   uint      `json:"patron_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
	ReturnDate time.Time `json:"return_date"`
}

// Execute 执行还书用例
// (图书,读者)没有在借记录时返回404:
// 包括图书不存在、读者不存在、书不是这个读者借的、重复归还,
// 这些情况对调用方是同一个事实——"没有可归还的借阅"
func (uc *ReturnBookUseCase) Execute(ctx context.Context, bookID, patronID uint) (*ReturnBookResponse, error) {
	record, err := uc.returnTx(ctx, bookID, patronID)
	if apperrors.IsCode(err, apperrors.ErrCodeLockConflict) {
		// 与借书事务死锁时重试一次
		record, err = uc.returnTx(ctx, bookID, patronID)
		if apperrors.IsCode(err, apperrors.ErrCodeLockConflict) {
			// 重试仍然冲突:对调用方是可重试的业务冲突,不是服务端故障
			return nil, borrowing.ErrReturnConflict
		}
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)

	return &ReturnBookResponse{
		RecordID:   record.ID,
		BookID:     record.BookID,
		PatronID:   record.PatronID,
		BorrowDate: record.BorrowDate,
		DueDate:    record.DueDate,
		ReturnDate: *record.ReturnDate,
	}, nil
}

// returnTx 单次还书事务
func (uc *ReturnBookUseCase) returnTx(ctx context.Context, bookID, patronID uint) (*borrowing.Record, error) {
	var record *borrowing.Record

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:锁定在借记录(SELECT FOR UPDATE)
		// 并发的重复归还在此排队,后到者看到记录已关闭
		rec, err := uc.recordRepo.FindActiveForUpdate(txCtx, bookID, patronID)
		if err != nil {
			return err // ErrLoanNotFound
		}

		// 步骤2:关闭记录(写归还日期)
		if err := rec.Close(uc.now()); err != nil {
			return err
		}
		if err := uc.recordRepo.Update(txCtx, rec); err != nil {
			return err
		}

		// 步骤3:恢复可借状态
		if err := uc.bookRepo.SetAvailability(txCtx, bookID, true); err != nil {
			return err
		}

		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (uc *ReturnBookUseCase) invalidateCache(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.PrefixBooks, cache.PrefixPatrons); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}
}
