package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 把MySQL 1062等错误翻译为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&PatronModel{},
		&BorrowingRecordModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string    `gorm:"size:20;not null;default:PATRON;comment:角色"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,防止重复
// 2. Available是派生状态,只由借阅引擎在事务内改写
// 3. 不做软删除:删除受"无在借记录"守卫保护,删了就是删了
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:200;not null;comment:书名"`
	Author          string    `gorm:"size:100;not null;comment:作者"`
	PublicationYear int       `gorm:"not null;comment:出版年份"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Available       bool      `gorm:"not null;default:true;comment:是否可借"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// PatronModel GORM读者模型
type PatronModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;comment:姓名"`
	ContactInfo string    `gorm:"size:200;not null;comment:联系方式"`
	Email       string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PatronModel) TableName() string {
	return "patrons"
}

// BorrowingRecordModel GORM借阅记录模型
// 设计说明:
// 1. (book_id, return_date)复合索引服务"图书是否在借"查询
// 2. MySQL没有部分唯一索引,"每本书至多一条在借记录"由
//    借阅引擎持图书行锁的事务保证,索引只负责查询效率
// 3. 记录只增改不删,归还即写return_date
type BorrowingRecordModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index:idx_book_active;not null;comment:图书ID"`
	PatronID   uint       `gorm:"index;not null;comment:读者ID"`
	BorrowDate time.Time  `gorm:"index;not null;comment:借出日期"`
	DueDate    time.Time  `gorm:"not null;comment:应还日期"`
	ReturnDate *time.Time `gorm:"index:idx_book_active;comment:归还日期,NULL表示在借"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BorrowingRecordModel) TableName() string {
	return "borrowing_records"
}
