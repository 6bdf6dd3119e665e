package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含馆藏图书的核心属性
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. Available是派生状态:当且仅当不存在未归还的借阅记录时为true
//    除创建时的默认值外,只有借阅引擎允许改写该字段
type Book struct {
	ID              uint
	Title           string // 书名
	Author          string // 作者
	PublicationYear int    // 出版年份
	ISBN            string // ISBN号(国际标准书号)
	Available       bool   // 是否可借
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新入馆图书默认可借
func NewBook(title, author string, publicationYear int, isbn string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		ISBN:            isbn,
		Available:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateInfo 更新图书基本信息
// 注意:不修改Available,可借状态只属于借阅引擎
func (b *Book) UpdateInfo(title, author string, publicationYear int, isbn string) {
	b.Title = title
	b.Author = author
	b.PublicationYear = publicationYear
	b.ISBN = isbn
	b.UpdatedAt = time.Now()
}

// MarkBorrowed 标记为已借出(借阅引擎专用)
func (b *Book) MarkBorrowed() error {
	if !b.Available {
		return ErrAlreadyBorrowed
	}
	b.Available = false
	b.UpdatedAt = time.Now()
	return nil
}

// MarkReturned 标记为已归还(借阅引擎专用)
func (b *Book) MarkReturned() {
	b.Available = true
	b.UpdatedAt = time.Now()
}
