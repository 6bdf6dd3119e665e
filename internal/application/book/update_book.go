package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/cache"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
	cache       cache.ReadCache
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, rc cache.ReadCache) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: rc}
}

// UpdateBookRequest 更新图书请求DTO
type UpdateBookRequest struct {
	Title           string
	Author          string
	PublicationYear int
	ISBN            string
}

// Execute 执行更新图书
// 详情和列表视图都包含被改字段,整类失效
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, req.Title, req.Author, req.PublicationYear, req.ISBN)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixBooks); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return toBookResponse(b), nil
}
