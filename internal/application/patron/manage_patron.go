package patron

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/pkg/cache"
)

// CreatePatronUseCase 登记读者用例
type CreatePatronUseCase struct {
	patronService patron.Service
	cache         cache.ReadCache
}

// NewCreatePatronUseCase 创建登记读者用例
func NewCreatePatronUseCase(patronService patron.Service, rc cache.ReadCache) *CreatePatronUseCase {
	return &CreatePatronUseCase{patronService: patronService, cache: rc}
}

// CreatePatronRequest 登记读者请求DTO
type CreatePatronRequest struct {
	Name        string
	ContactInfo string
	Email       string
}

// Execute 执行登记读者
func (uc *CreatePatronUseCase) Execute(ctx context.Context, req CreatePatronRequest) (*PatronResponse, error) {
	p, err := uc.patronService.CreatePatron(ctx, req.Name, req.ContactInfo, req.Email)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixPatrons); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return toPatronResponse(p), nil
}

// UpdatePatronUseCase 更新读者用例
type UpdatePatronUseCase struct {
	patronService patron.Service
	cache         cache.ReadCache
}

// NewUpdatePatronUseCase 创建更新读者用例
func NewUpdatePatronUseCase(patronService patron.Service, rc cache.ReadCache) *UpdatePatronUseCase {
	return &UpdatePatronUseCase{patronService: patronService, cache: rc}
}

// UpdatePatronRequest 更新读者请求DTO
type UpdatePatronRequest struct {
	Name        string
	ContactInfo string
	Email       string
}

// Execute 执行更新读者
// 借阅历史视图里有读者姓名,读者类视图(含历史)整类失效
func (uc *UpdatePatronUseCase) Execute(ctx context.Context, id uint, req UpdatePatronRequest) (*PatronResponse, error) {
	p, err := uc.patronService.UpdatePatron(ctx, id, req.Name, req.ContactInfo, req.Email)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.PrefixPatrons); err != nil {
		log.Printf("缓存失效失败: %v", err)
	}

	return toPatronResponse(p), nil
}
