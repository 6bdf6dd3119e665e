package patron

import (
	"time"
)

// Patron 读者实体(聚合根)
// DDD设计说明:
// 1. 邮箱作为业务唯一标识(数据库层保证唯一性)
// 2. 读者没有"可借状态"的概念,在借数量不设上限
//    (是否限制借阅数量属于业务策略,当前不做)
type Patron struct {
	ID          uint
	Name        string // 姓名
	ContactInfo string // 联系方式
	Email       string // 邮箱(全局唯一)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPatron 创建新读者(工厂方法)
func NewPatron(name, contactInfo, email string) *Patron {
	now := time.Now()
	return &Patron{
		Name:        name,
		ContactInfo: contactInfo,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新读者信息
func (p *Patron) UpdateInfo(name, contactInfo, email string) {
	p.Name = name
	p.ContactInfo = contactInfo
	p.Email = email
	p.UpdatedAt = time.Now()
}
