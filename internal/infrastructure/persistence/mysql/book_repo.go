package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository MySQL图书仓储实现
//
// 教学要点：
// 1. 领域实体与GORM模型分离
//   - domain.Book不依赖GORM tag
//   - BookModel负责表结构映射
//   - Repository负责两者转换
//
// 2. getDB从context提取事务DB
//   - 借阅引擎的事务内调用走同一个事务
//   - 普通调用走默认连接池
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储实例
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		Available:       b.Available,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:              m.ID,
		Title:           m.Title,
		Author:          m.Author,
		PublicationYear: m.PublicationYear,
		ISBN:            m.ISBN,
		Available:       m.Available,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// ISBN唯一索引冲突：并发创建同一ISBN时Service层的预检查会漏过，
		// 数据库唯一索引是最后一道防线
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return fmt.Errorf("创建图书失败: %w", err)
	}

	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel

	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("查询图书失败: %w", err)
	}

	return toBookEntity(&model), nil
}

// ExistsByISBN 检查ISBN是否已存在
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64

	if err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("isbn = ?", isbn).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询ISBN失败: %w", err)
	}

	return count > 0, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Select("title", "author", "publication_year", "isbn", "updated_at").
		Updates(model)

	if err := result.Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return fmt.Errorf("更新图书失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if err := result.Error; err != nil {
		return fmt.Errorf("删除图书失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindAll 查询全部图书
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []*BookModel

	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("查询图书列表失败: %w", err)
	}

	books := make([]*book.Book, 0, len(models))
	for _, m := range models {
		books = append(books, toBookEntity(m))
	}

	return books, nil
}

// LockByID 悲观锁查询图书（SELECT FOR UPDATE）
//
// 教学要点：
// 1. 锁定图书行后，同一图书的并发借阅/归还事务在此排队
// 2. 锁在事务提交/回滚时释放，必须在TxManager.Transaction内调用
// 3. DO vs DON'T
//   - ✅ DO：锁图书行，再检查在借记录（检查和写入之间无并发窗口）
//   - ❌ DON'T：先查询再更新（两步之间其他事务可插入在借记录）
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel

	if err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("锁定图书失败: %w", err)
	}

	return toBookEntity(&model), nil
}

// SetAvailability 更新可借状态（借阅引擎专用）
func (r *bookRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("available", available)

	if err := result.Error; err != nil {
		return fmt.Errorf("更新可借状态失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}
