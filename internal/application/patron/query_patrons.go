package patron

import (
	"context"
	"log"
	"sort"

	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/pkg/cache"
)

// QueryPatronsUseCase 读者查询用例（详情 + 列表 + 借阅历史）
// 读路径与图书查询对称:Cache-Aside + 缓存故障降级
type QueryPatronsUseCase struct {
	patronService patron.Service
	patronRepo    patron.Repository
	recordRepo    borrowing.Repository
	cache         cache.ReadCache
}

// NewQueryPatronsUseCase 创建读者查询用例
func NewQueryPatronsUseCase(
	patronService patron.Service,
	patronRepo patron.Repository,
	recordRepo borrowing.Repository,
	rc cache.ReadCache,
) *QueryPatronsUseCase {
	return &QueryPatronsUseCase{
		patronService: patronService,
		patronRepo:    patronRepo,
		recordRepo:    recordRepo,
		cache:         rc,
	}
}

// GetByID 获取读者详情
func (uc *QueryPatronsUseCase) GetByID(ctx context.Context, id uint) (*PatronResponse, error) {
	key := cache.PatronKey(id)

	var cached PatronResponse
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("读缓存失败,降级查库: %v", err)
	}
	if hit {
		return &cached, nil
	}

	p, err := uc.patronService.GetPatronByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toPatronResponse(p)
	if err := uc.cache.Set(ctx, key, resp); err != nil {
		log.Printf("写缓存失败: %v", err)
	}

	return resp, nil
}

// List 查询全部读者
func (uc *QueryPatronsUseCase) List(ctx context.Context) ([]*PatronResponse, error) {
	var cached []*PatronResponse
	hit, err := uc.cache.Get(ctx, cache.KeyPatronsAll, &cached)
	if err != nil {
		log.Printf("读缓存失败,降级查库: %v", err)
	}
	if hit {
		return cached, nil
	}

	patrons, err := uc.patronService.ListPatrons(ctx)
	if err != nil {
		return nil, err
	}

	resp := toPatronResponses(patrons)
	if err := uc.cache.Set(ctx, cache.KeyPatronsAll, resp); err != nil {
		log.Printf("写缓存失败: %v", err)
	}

	return resp, nil
}

// History 查询读者借阅历史(借出日期降序,含在借和已归还)
// 读者不存在返回404,与"读者存在但没有历史"(200 + 空数组)区分开
func (uc *QueryPatronsUseCase) History(ctx context.Context, patronID uint) ([]*borrowing.HistoryEntry, error) {
	exists, err := uc.patronRepo.ExistsByID(ctx, patronID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, patron.ErrPatronNotFound
	}

	key := cache.HistoryKey(patronID)

	var cached []*borrowing.HistoryEntry
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("读缓存失败,降级查库: %v", err)
	}
	if hit {
		return cached, nil
	}

	entries, err := uc.recordRepo.HistoryByPatronID(ctx, patronID)
	if err != nil {
		return nil, err
	}

	// 降序排序不依赖存储实现的返回顺序
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].BorrowDate.After(entries[j].BorrowDate)
	})

	if err := uc.cache.Set(ctx, key, entries); err != nil {
		log.Printf("写缓存失败: %v", err)
	}

	return entries, nil
}
