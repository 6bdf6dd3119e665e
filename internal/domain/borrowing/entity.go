package borrowing

import (
	"time"
)

// LoanPeriodDays 借阅期限:固定14天
// 到期日 = 借出日 + 14天,不做续借
const LoanPeriodDays = 14

// Record 借阅记录实体(聚合根)
// DDD设计说明:
// 1. 只保存BookID/PatronID外键,不持有跨聚合的对象引用
// 2. ReturnDate为nil表示在借;仅允许从nil变为具体时间,且只变一次
// 3. 记录只增不删:归还后保留为历史
// 不变量:同一图书同一时刻最多存在一条ReturnDate为nil的记录
type Record struct {
	ID         uint
	BookID     uint       // 图书ID
	PatronID   uint       // 读者ID
	BorrowDate time.Time  // 借出日期(创建时间)
	DueDate    time.Time  // 应还日期(借出日期+14天)
	ReturnDate *time.Time // 归还日期,nil表示在借
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewRecord 创建借阅记录(工厂方法,仅借阅引擎调用)
func NewRecord(bookID, patronID uint, borrowedAt time.Time) *Record {
	return &Record{
		BookID:     bookID,
		PatronID:   patronID,
		BorrowDate: borrowedAt,
		DueDate:    borrowedAt.AddDate(0, 0, LoanPeriodDays),
		ReturnDate: nil,
		CreatedAt:  borrowedAt,
		UpdatedAt:  borrowedAt,
	}
}

// IsActive 是否在借
func (r *Record) IsActive() bool {
	return r.ReturnDate == nil
}

// Close 归还,关闭记录
// ReturnDate只允许写一次,重复归还是非法状态迁移
func (r *Record) Close(returnedAt time.Time) error {
	if r.ReturnDate != nil {
		return ErrLoanNotFound
	}
	r.ReturnDate = &returnedAt
	r.UpdatedAt = returnedAt
	return nil
}

// HistoryEntry 借阅历史视图(读取时联表的非规范化投影)
// 书名和读者姓名取查询时刻的值,之后的改名不回溯
type HistoryEntry struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	PatronID   uint       `json:"patron_id"`
	PatronName string     `json:"patron_name"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}
