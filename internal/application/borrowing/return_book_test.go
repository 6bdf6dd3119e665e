package borrowing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
)

// TestReturnBook_Success 测试正常还书
func TestReturnBook_Success(t *testing.T) {
	f := newEngineFixture()
	b := f.addBook()
	p := f.addPatron()

	ctx := context.Background()
	_, err := f.borrowUC.Execute(ctx, b.ID, p.ID)
	require.NoError(t, err)

	returnedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f.returnUC.now = func() time.Time { return returnedAt }

	resp, err := f.returnUC.Execute(ctx, b.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, returnedAt, resp.ReturnDate)

	// 图书恢复可借
	got, err := f.bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)

	// 在借记录已关闭
	assert.Equal(t, 0, f.recordRepo.activeCount(b.ID))
}

// TestReturnBook_LockConflictRetry 锁冲突重试一次
func TestReturnBook_LockConflictRetry(t *testing.T) {
	t.Run("重试后成功", func(t *testing.T) {
		f := newEngineFixture()
		b := f.addBook()
		p := f.addPatron()

		ctx := context.Background()
		_, err := f.borrowUC.Execute(ctx, b.ID, p.ID)
		require.NoError(t, err)

		f.returnUC.txManager = &conflictTxManager{inner: &serialTxManager{}, conflicts: 1}

		_, err = f.returnUC.Execute(ctx, b.ID, p.ID)
		require.NoError(t, err, "第一次锁冲突后重试应该成功")
		assert.Equal(t, 0, f.recordRepo.activeCount(b.ID))
	})

	t.Run("重试仍冲突则返回归还冲突", func(t *testing.T) {
		f := newEngineFixture()
		b := f.addBook()
		p := f.addPatron()

		ctx := context.Background()
		_, err := f.borrowUC.Execute(ctx, b.ID, p.ID)
		require.NoError(t, err)

		f.returnUC.txManager = &conflictTxManager{inner: &serialTxManager{}, conflicts: 2}

		_, err = f.returnUC.Execute(ctx, b.ID, p.ID)
		require.ErrorIs(t, err, borrowing.ErrReturnConflict)

		// 两次都被回滚,记录仍在借,可以再次归还
		assert.Equal(t, 1, f.recordRepo.activeCount(b.ID))
	})
}

// TestReturnBook_NoActiveLoan 没有可归还的借阅
func TestReturnBook_NoActiveLoan(t *testing.T) {
	t.Run("从未借出", func(t *testing.T) {
		f := newEngineFixture()
		b := f.addBook()
		p := f.addPatron()

		_, err := f.returnUC.Execute(context.Background(), b.ID, p.ID)
		require.ErrorIs(t, err, borrowing.ErrLoanNotFound)
	})

	t.Run("重复归还", func(t *testing.T) {
		f := newEngineFixture()
		b := f.addBook()
		p := f.addPatron()

		ctx := context.Background()
		_, err := f.borrowUC.Execute(ctx, b.ID, p.ID)
		require.NoError(t, err)
		_, err = f.returnUC.Execute(ctx, b.ID, p.ID)
		require.NoError(t, err)

		_, err = f.returnUC.Execute(ctx, b.ID, p.ID)
		require.ErrorIs(t, err, borrowing.ErrLoanNotFound)
	})

	t.Run("他人借的书不能归还", func(t *testing.T) {
		f := newEngineFixture()
		b := f.addBook()
		p1 := f.addPatron()
		p2 := f.patronRepo.add(patron.NewPatron("李四", "13900139000", "lisi@example.com"))

		ctx := context.Background()
		_, err := f.borrowUC.Execute(ctx, b.ID, p1.ID)
		require.NoError(t, err)

		_, err = f.returnUC.Execute(ctx, b.ID, p2.ID)
		require.ErrorIs(t, err, borrowing.ErrLoanNotFound)

		// p1的在借记录不受影响
		assert.Equal(t, 1, f.recordRepo.activeCount(b.ID))
	})
}

// TestReturnBook_ConcurrentDoubleReturn 并发重复归还只有一次成功
func TestReturnBook_ConcurrentDoubleReturn(t *testing.T) {
	f := newEngineFixture()
	b := f.addBook()
	p := f.addPatron()

	ctx := context.Background()
	_, err := f.borrowUC.Execute(ctx, b.ID, p.ID)
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.returnUC.Execute(ctx, b.ID, p.ID)
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
		} else {
			assert.ErrorIs(t, err, borrowing.ErrLoanNotFound)
		}
	}
	assert.Equal(t, 1, success, "并发归还只能成功一次")
}

// TestBorrowReturnRoundTrip 借-还-再借的完整闭环
func TestBorrowReturnRoundTrip(t *testing.T) {
	f := newEngineFixture()
	b := f.addBook()
	p1 := f.addPatron()
	p2 := f.patronRepo.add(patron.NewPatron("李四", "13900139000", "lisi@example.com"))

	ctx := context.Background()

	// p1借出并归还
	_, err := f.borrowUC.Execute(ctx, b.ID, p1.ID)
	require.NoError(t, err)
	_, err = f.returnUC.Execute(ctx, b.ID, p1.ID)
	require.NoError(t, err)

	// 归还后p2可以再借
	resp, err := f.borrowUC.Execute(ctx, b.ID, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, p2.ID, resp.PatronID)
	assert.Equal(t, 1, f.recordRepo.activeCount(b.ID))

	// 历史保留两条记录
	history, err := f.recordRepo.HistoryByPatronID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.NotNil(t, history[0].ReturnDate, "已归还记录的归还日期不为空")
}
