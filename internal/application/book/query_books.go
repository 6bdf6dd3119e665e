package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/cache"
)

// QueryBooksUseCase 图书查询用例（详情 + 列表）
//
// 教学要点：Cache-Aside（旁路缓存）
// 1. 先查缓存,命中直接返回
// 2. 未命中查数据库,把结果回填缓存
// 3. 写路径不更新缓存,只做失效(下次读取时重新加载)
//
// 缓存故障降级:读写缓存出错时记录日志并直接走数据库,
// 缓存永远不能成为读路径的单点
type QueryBooksUseCase struct {
	bookService book.Service
	cache       cache.ReadCache
}

// NewQueryBooksUseCase 创建图书查询用例
func NewQueryBooksUseCase(bookService book.Service, rc cache.ReadCache) *QueryBooksUseCase {
	return &QueryBooksUseCase{bookService: bookService, cache: rc}
}

// GetByID 获取图书详情
func (uc *QueryBooksUseCase) GetByID(ctx context.Context, id uint) (*BookResponse, error) {
	key := cache.BookKey(id)

	var cached BookResponse
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("读缓存失败,降级查库: %v", err)
	}
	if hit {
		return &cached, nil
	}

	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toBookResponse(b)
	if err := uc.cache.Set(ctx, key, resp); err != nil {
		log.Printf("写缓存失败: %v", err)
	}

	return resp, nil
}

// List 查询全部图书
func (uc *QueryBooksUseCase) List(ctx context.Context) ([]*BookResponse, error) {
	var cached []*BookResponse
	hit, err := uc.cache.Get(ctx, cache.KeyBooksAll, &cached)
	if err != nil {
		log.Printf("读缓存失败,降级查库: %v", err)
	}
	if hit {
		return cached, nil
	}

	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	resp := toBookResponses(books)
	if err := uc.cache.Set(ctx, cache.KeyBooksAll, resp); err != nil {
		log.Printf("写缓存失败: %v", err)
	}

	return resp, nil
}
