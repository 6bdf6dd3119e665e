package borrowing

import (
	"context"
	"sync"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 测试用内存实现
// 事务语义由serialTxManager模拟:整个事务函数持全局锁串行执行,
// 相当于把"图书行锁"放大为全局锁,并发正确性断言依然成立

// serialTxManager 串行执行的事务管理器
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// conflictTxManager 前N次返回锁冲突错误,之后委托给内层事务管理器
// 模拟MySQL死锁回滚(错误码1213)
type conflictTxManager struct {
	inner     TxManager
	mu        sync.Mutex
	conflicts int
}

func (m *conflictTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	if m.conflicts > 0 {
		m.conflicts--
		m.mu.Unlock()
		return apperrors.New(apperrors.ErrCodeLockConflict, "事务锁冲突")
	}
	m.mu.Unlock()
	return m.inner.Transaction(ctx, fn)
}

// memBookRepo 内存图书仓储
type memBookRepo struct {
	books  map[uint]*book.Book
	nextID uint
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: make(map[uint]*book.Book), nextID: 1}
}

func (r *memBookRepo) add(b *book.Book) *book.Book {
	b.ID = r.nextID
	r.nextID++
	c := *b
	r.books[b.ID] = &c
	return b
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.add(b)
	return nil
}

func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	c := *b
	return &c, nil
}

func (r *memBookRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	c := *b
	r.books[b.ID] = &c
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memBookRepo) FindAll(ctx context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		c := *b
		out = append(out, &c)
	}
	return out, nil
}

func (r *memBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *memBookRepo) SetAvailability(ctx context.Context, id uint, available bool) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Available = available
	return nil
}

// memPatronRepo 内存读者仓储
type memPatronRepo struct {
	patrons map[uint]*patron.Patron
	nextID  uint
}

func newMemPatronRepo() *memPatronRepo {
	return &memPatronRepo{patrons: make(map[uint]*patron.Patron), nextID: 1}
}

func (r *memPatronRepo) add(p *patron.Patron) *patron.Patron {
	p.ID = r.nextID
	r.nextID++
	c := *p
	r.patrons[p.ID] = &c
	return p
}

func (r *memPatronRepo) Create(ctx context.Context, p *patron.Patron) error {
	r.add(p)
	return nil
}

func (r *memPatronRepo) FindByID(ctx context.Context, id uint) (*patron.Patron, error) {
	p, ok := r.patrons[id]
	if !ok {
		return nil, patron.ErrPatronNotFound
	}
	c := *p
	return &c, nil
}

func (r *memPatronRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.patrons[id]
	return ok, nil
}

func (r *memPatronRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, p := range r.patrons {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPatronRepo) Update(ctx context.Context, p *patron.Patron) error {
	if _, ok := r.patrons[p.ID]; !ok {
		return patron.ErrPatronNotFound
	}
	c := *p
	r.patrons[p.ID] = &c
	return nil
}

func (r *memPatronRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.patrons[id]; !ok {
		return patron.ErrPatronNotFound
	}
	delete(r.patrons, id)
	return nil
}

func (r *memPatronRepo) FindAll(ctx context.Context) ([]*patron.Patron, error) {
	out := make([]*patron.Patron, 0, len(r.patrons))
	for _, p := range r.patrons {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

// memRecordRepo 内存借阅记录仓储
type memRecordRepo struct {
	records map[uint]*borrowing.Record
	nextID  uint
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[uint]*borrowing.Record), nextID: 1}
}

func (r *memRecordRepo) Create(ctx context.Context, rec *borrowing.Record) error {
	rec.ID = r.nextID
	r.nextID++
	c := *rec
	r.records[rec.ID] = &c
	return nil
}

func (r *memRecordRepo) Update(ctx context.Context, rec *borrowing.Record) error {
	if _, ok := r.records[rec.ID]; !ok {
		return borrowing.ErrLoanNotFound
	}
	c := *rec
	r.records[rec.ID] = &c
	return nil
}

func (r *memRecordRepo) ExistsActiveByBookID(ctx context.Context, bookID uint) (bool, error) {
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRecordRepo) ExistsActiveByPatronID(ctx context.Context, patronID uint) (bool, error) {
	for _, rec := range r.records {
		if rec.PatronID == patronID && rec.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRecordRepo) FindActiveForUpdate(ctx context.Context, bookID, patronID uint) (*borrowing.Record, error) {
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.PatronID == patronID && rec.IsActive() {
			c := *rec
			return &c, nil
		}
	}
	return nil, borrowing.ErrLoanNotFound
}

func (r *memRecordRepo) HistoryByPatronID(ctx context.Context, patronID uint) ([]*borrowing.HistoryEntry, error) {
	out := make([]*borrowing.HistoryEntry, 0)
	for _, rec := range r.records {
		if rec.PatronID != patronID {
			continue
		}
		out = append(out, &borrowing.HistoryEntry{
			ID:         rec.ID,
			BookID:     rec.BookID,
			PatronID:   rec.PatronID,
			BorrowDate: rec.BorrowDate,
			DueDate:    rec.DueDate,
			ReturnDate: rec.ReturnDate,
		})
	}
	return out, nil
}

// activeCount 图书的在借记录数(不变量断言用)
func (r *memRecordRepo) activeCount(bookID uint) int {
	n := 0
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.IsActive() {
			n++
		}
	}
	return n
}
