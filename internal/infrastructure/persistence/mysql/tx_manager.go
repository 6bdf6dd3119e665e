package mysql

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// txKey 事务DB在context中的key(非导出类型避免冲突)
type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn函数内通过同一个context调用的所有Repository操作在同一事务中执行
//
// 使用示例(借阅引擎):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 行锁锁定图书
//	    b, err := bookRepo.LockByID(ctx, bookID)
//	    if err != nil {
//	        return err
//	    }
//	    // 2. 创建借阅记录
//	    if err := recordRepo.Create(ctx, rec); err != nil {
//	        return err // 自动回滚
//	    }
//	    // 3. 置为不可借
//	    return bookRepo.SetAvailability(ctx, bookID, false)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入Context,Repository的getDB方法从context提取
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
	if err != nil && isLockConflictError(err) {
		// 死锁/锁等待超时:MySQL已回滚本事务,调用方可在事务边界重试
		return apperrors.WrapCode(apperrors.ErrCodeLockConflict, err, "事务锁冲突")
	}
	return err
}

// getDB 从context获取事务DB,没有则使用默认DB
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
