package patron

import (
	"context"
	"regexp"
)

// Service 读者领域服务接口
// 业务规则与图书领域服务对称:格式校验 + 邮箱唯一性
type Service interface {
	// CreatePatron 登记新读者
	CreatePatron(ctx context.Context, name, contactInfo, email string) (*Patron, error)

	// GetPatronByID 根据ID获取读者
	GetPatronByID(ctx context.Context, id uint) (*Patron, error)

	// ListPatrons 查询全部读者
	ListPatrons(ctx context.Context) ([]*Patron, error)

	// UpdatePatron 更新读者信息
	// 业务规则:新邮箱与当前不同且已被其他读者占用时拒绝
	UpdatePatron(ctx context.Context, id uint, name, contactInfo, email string) (*Patron, error)
}

type service struct {
	repo Repository
}

// NewService 创建读者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreatePatron 登记新读者
func (s *service) CreatePatron(ctx context.Context, name, contactInfo, email string) (*Patron, error) {
	if err := validate(name, contactInfo, email); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailDuplicate
	}

	p := NewPatron(name, contactInfo, email)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetPatronByID 根据ID获取读者
func (s *service) GetPatronByID(ctx context.Context, id uint) (*Patron, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPatrons 查询全部读者
func (s *service) ListPatrons(ctx context.Context) ([]*Patron, error) {
	return s.repo.FindAll(ctx)
}

// UpdatePatron 更新读者信息
func (s *service) UpdatePatron(ctx context.Context, id uint, name, contactInfo, email string) (*Patron, error) {
	if err := validate(name, contactInfo, email); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Email != email {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailDuplicate
		}
	}

	p.UpdateInfo(name, contactInfo, email)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// emailPattern 简化的邮箱格式校验(完整校验交给HTTP层的binding)
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validate 读者字段校验
func validate(name, contactInfo, email string) error {
	if name == "" {
		return ErrInvalidName
	}
	if contactInfo == "" {
		return ErrInvalidContact
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
