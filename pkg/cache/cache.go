package cache

import (
	"context"
	"strconv"
)

// ReadCache 读缓存契约（Cache-Aside模式）
// 设计说明：
// 1. 服务层显式调用：读路径先Get，未命中查库后Set；写路径提交后Invalidate
// 2. 失效采用粗粒度策略：按key前缀整类清除，而不是逐条删除
//    （精确到单条key只是优化，不是正确性要求）
// 3. 两个实现：Memory（进程内，默认）、redis.CacheStore（可配置切换）
type ReadCache interface {
	// Get 按key查询缓存，命中时反序列化到dest并返回true
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set 写入缓存（序列化为JSON）
	Set(ctx context.Context, key string, value interface{}) error

	// Invalidate 按前缀批量失效
	// 任何可能改变某类视图的写操作，提交后必须清除该类的全部前缀
	Invalidate(ctx context.Context, prefixes ...string) error
}

// 缓存key规范
// 使用冒号分隔命名空间，便于按前缀批量失效
const (
	// 图书类视图
	KeyBooksAll  = "books:all"
	PrefixBooks  = "books:"
	PrefixBookID = "books:id:"

	// 读者类视图（含借阅历史，任何读者或借阅记录的写入都整类失效）
	KeyPatronsAll     = "patrons:all"
	PrefixPatrons     = "patrons:"
	PrefixPatronID    = "patrons:id:"
	PrefixHistoryByID = "patrons:history:"
)

// BookKey 图书详情缓存key
func BookKey(id uint) string {
	return PrefixBookID + strconv.FormatUint(uint64(id), 10)
}

// PatronKey 读者详情缓存key
func PatronKey(id uint) string {
	return PrefixPatronID + strconv.FormatUint(uint64(id), 10)
}

// HistoryKey 读者借阅历史缓存key
func HistoryKey(patronID uint) string {
	return PrefixHistoryByID + strconv.FormatUint(uint64(patronID), 10)
}
