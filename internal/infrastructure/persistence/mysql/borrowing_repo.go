package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

// borrowingRepository MySQL借阅记录仓储实现
//
// 教学要点：
// 1. "在借"的判定是return_date IS NULL
//   - MySQL没有部分唯一索引,不能靠索引保证"每本书至多一条在借记录"
//   - 该不变量由借阅引擎持图书行锁的事务保证
//   - (book_id, return_date)复合索引只负责查询效率
//
// 2. 借阅历史用JOIN一次取齐书名和读者姓名
//   - 避免N+1查询
//   - 投影到HistoryEntry(非规范化视图)
type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository 创建借阅记录仓储实例
func NewBorrowingRepository(db *gorm.DB) borrowing.Repository {
	return &borrowingRepository{db: db}
}

func toRecordModel(rec *borrowing.Record) *BorrowingRecordModel {
	return &BorrowingRecordModel{
		ID:         rec.ID,
		BookID:     rec.BookID,
		PatronID:   rec.PatronID,
		BorrowDate: rec.BorrowDate,
		DueDate:    rec.DueDate,
		ReturnDate: rec.ReturnDate,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func toRecordEntity(m *BorrowingRecordModel) *borrowing.Record {
	return &borrowing.Record{
		ID:         m.ID,
		BookID:     m.BookID,
		PatronID:   m.PatronID,
		BorrowDate: m.BorrowDate,
		DueDate:    m.DueDate,
		ReturnDate: m.ReturnDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// Create 创建借阅记录
func (r *borrowingRepository) Create(ctx context.Context, rec *borrowing.Record) error {
	model := toRecordModel(rec)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("创建借阅记录失败: %w", err)
	}

	rec.ID = model.ID
	return nil
}

// Update 更新借阅记录（归还时写return_date）
func (r *borrowingRepository) Update(ctx context.Context, rec *borrowing.Record) error {
	result := getDB(ctx, r.db).Model(&BorrowingRecordModel{}).
		Where("id = ?", rec.ID).
		Select("return_date", "updated_at").
		Updates(toRecordModel(rec))

	if err := result.Error; err != nil {
		return fmt.Errorf("更新借阅记录失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return borrowing.ErrLoanNotFound
	}

	return nil
}

// ExistsActiveByBookID 图书是否存在在借记录
// 必须在持有该图书行锁的事务内调用才有隔离意义
func (r *borrowingRepository) ExistsActiveByBookID(ctx context.Context, bookID uint) (bool, error) {
	var count int64

	if err := getDB(ctx, r.db).Model(&BorrowingRecordModel{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询在借记录失败: %w", err)
	}

	return count > 0, nil
}

// ExistsActiveByPatronID 读者是否存在在借记录
func (r *borrowingRepository) ExistsActiveByPatronID(ctx context.Context, patronID uint) (bool, error) {
	var count int64

	if err := getDB(ctx, r.db).Model(&BorrowingRecordModel{}).
		Where("patron_id = ? AND return_date IS NULL", patronID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询在借记录失败: %w", err)
	}

	return count > 0, nil
}

// FindActiveForUpdate 查找(图书,读者)的在借记录并加行锁
func (r *borrowingRepository) FindActiveForUpdate(ctx context.Context, bookID, patronID uint) (*borrowing.Record, error) {
	var model BorrowingRecordModel

	if err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ? AND patron_id = ? AND return_date IS NULL", bookID, patronID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowing.ErrLoanNotFound
		}
		return nil, fmt.Errorf("锁定借阅记录失败: %w", err)
	}

	return toRecordEntity(&model), nil
}

// HistoryByPatronID 读者的全部借阅历史（借出日期降序）
func (r *borrowingRepository) HistoryByPatronID(ctx context.Context, patronID uint) ([]*borrowing.HistoryEntry, error) {
	var entries []*borrowing.HistoryEntry

	err := getDB(ctx, r.db).Model(&BorrowingRecordModel{}).
		Select(`borrowing_records.id,
			borrowing_records.book_id,
			books.title AS book_title,
			borrowing_records.patron_id,
			patrons.name AS patron_name,
			borrowing_records.borrow_date,
			borrowing_records.due_date,
			borrowing_records.return_date`).
		// 图书归还后可能被删除,LEFT JOIN保证历史记录不丢行
		Joins("LEFT JOIN books ON books.id = borrowing_records.book_id").
		Joins("JOIN patrons ON patrons.id = borrowing_records.patron_id").
		Where("borrowing_records.patron_id = ?", patronID).
		Order("borrowing_records.borrow_date DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询借阅历史失败: %w", err)
	}

	if entries == nil {
		entries = make([]*borrowing.HistoryEntry, 0)
	}

	return entries, nil
}
