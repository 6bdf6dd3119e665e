package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/cache"
)

// CreateBookUseCase 新增图书用例
type CreateBookUseCase struct {
	bookService book.Service
	cache       cache.ReadCache
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, rc cache.ReadCache) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, cache: rc}
}

// CreateBookRequest 新增图书请求DTO
type CreateBookRequest struct {
	Title           string
	Author          string
	PublicationYear int
	ISBN            string
}

// Execute 执行新增图书
// 新书会出现在列表视图里,提交后整类失效图书缓存
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.PublicationYear, req.ISBN)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixBooks); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return toBookResponse(b), nil
}
