package book

import (
	"context"
	"time"

	"github.com/xiebiao/library/pkg/isbn"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装单聚合内的业务规则校验(格式、唯一性)
// 2. 跨聚合的规则(如删除前检查在借记录)由应用层用例编排
// 3. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 新增图书
	// 业务规则:
	// - 书名、作者非空
	// - 出版年份不晚于当前年份
	// - ISBN格式合法(10位或13位数字,允许连字符)且不重复
	CreateBook(ctx context.Context, title, author string, publicationYear int, isbnStr string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// UpdateBook 更新图书信息
	// 业务规则:新ISBN与当前不同且已被其他图书占用时拒绝
	// 不修改可借状态
	UpdateBook(ctx context.Context, id uint, title, author string, publicationYear int, isbnStr string) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
	now  func() int // 当前年份,可注入便于测试
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  func() int { return time.Now().Year() },
	}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, title, author string, publicationYear int, isbnStr string) (*Book, error) {
	if err := s.validate(title, author, publicationYear, isbnStr); err != nil {
		return nil, err
	}

	// 以规范形式(去连字符)存储和比较,"978-7-..."与"9787..."是同一本书
	isbnStr = isbn.Normalize(isbnStr)

	// ISBN唯一性预检(数据库唯一索引兜底,并发插入由仓储转换为ErrISBNDuplicate)
	exists, err := s.repo.ExistsByISBN(ctx, isbnStr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNDuplicate
	}

	b := NewBook(title, author, publicationYear, isbnStr)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, publicationYear int, isbnStr string) (*Book, error) {
	if err := s.validate(title, author, publicationYear, isbnStr); err != nil {
		return nil, err
	}

	isbnStr = isbn.Normalize(isbnStr)

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ISBN变更时检查与其他图书的冲突
	if b.ISBN != isbnStr {
		exists, err := s.repo.ExistsByISBN(ctx, isbnStr)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrISBNDuplicate
		}
	}

	b.UpdateInfo(title, author, publicationYear, isbnStr)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// validate 单聚合业务规则校验
// HTTP层的DTO binding已做一轮校验,这里兜底保证非HTTP调用方也受约束
func (s *service) validate(title, author string, publicationYear int, isbnStr string) error {
	if title == "" {
		return ErrInvalidTitle
	}
	if author == "" {
		return ErrInvalidAuthor
	}
	if publicationYear > s.now() {
		return ErrInvalidYear
	}
	if !isbn.IsValid(isbnStr) {
		return ErrInvalidISBN
	}
	return nil
}
