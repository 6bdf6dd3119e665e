package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/patron"
)

// patronRepository MySQL读者仓储实现
type patronRepository struct {
	db *gorm.DB
}

// NewPatronRepository 创建读者仓储实例
func NewPatronRepository(db *gorm.DB) patron.Repository {
	return &patronRepository{db: db}
}

func toPatronModel(p *patron.Patron) *PatronModel {
	return &PatronModel{
		ID:          p.ID,
		Name:        p.Name,
		ContactInfo: p.ContactInfo,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPatronEntity(m *PatronModel) *patron.Patron {
	return &patron.Patron{
		ID:          m.ID,
		Name:        m.Name,
		ContactInfo: m.ContactInfo,
		Email:       m.Email,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create 创建读者
func (r *patronRepository) Create(ctx context.Context, p *patron.Patron) error {
	model := toPatronModel(p)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return patron.ErrEmailDuplicate
		}
		return fmt.Errorf("创建读者失败: %w", err)
	}

	p.ID = model.ID
	return nil
}

// FindByID 根据ID查找读者
func (r *patronRepository) FindByID(ctx context.Context, id uint) (*patron.Patron, error) {
	var model PatronModel

	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patron.ErrPatronNotFound
		}
		return nil, fmt.Errorf("查询读者失败: %w", err)
	}

	return toPatronEntity(&model), nil
}

// ExistsByID 检查读者是否存在
func (r *patronRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64

	if err := getDB(ctx, r.db).Model(&PatronModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询读者失败: %w", err)
	}

	return count > 0, nil
}

// ExistsByEmail 检查邮箱是否已被注册
func (r *patronRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	if err := getDB(ctx, r.db).Model(&PatronModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询邮箱失败: %w", err)
	}

	return count > 0, nil
}

// Update 更新读者信息
func (r *patronRepository) Update(ctx context.Context, p *patron.Patron) error {
	model := toPatronModel(p)

	result := getDB(ctx, r.db).Model(&PatronModel{}).
		Where("id = ?", p.ID).
		Select("name", "contact_info", "email", "updated_at").
		Updates(model)

	if err := result.Error; err != nil {
		if isDuplicateError(err) {
			return patron.ErrEmailDuplicate
		}
		return fmt.Errorf("更新读者失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return patron.ErrPatronNotFound
	}

	return nil
}

// Delete 删除读者
func (r *patronRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PatronModel{}, id)

	if err := result.Error; err != nil {
		return fmt.Errorf("删除读者失败: %w", err)
	}

	if result.RowsAffected == 0 {
		return patron.ErrPatronNotFound
	}

	return nil
}

// FindAll 查询全部读者
func (r *patronRepository) FindAll(ctx context.Context) ([]*patron.Patron, error) {
	var models []*PatronModel

	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("查询读者列表失败: %w", err)
	}

	patrons := make([]*patron.Patron, 0, len(models))
	for _, m := range models {
		patrons = append(patrons, toPatronEntity(m))
	}

	return patrons, nil
}
