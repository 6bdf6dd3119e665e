package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// keyPrefix 所有缓存key的业务前缀，避免与会话key混淆
const keyPrefix = "library:"

// CacheStore Redis读缓存实现
//
// 教学要点：
// 1. 实现cache.ReadCache接口，与进程内Memory缓存可互换
//   - 单实例部署用Memory（零依赖）
//   - 多实例部署用Redis（集中式，所有实例看到同一份缓存）
//
// 2. 失效用SCAN+UNLINK按前缀批量删除
//   - SCAN游标遍历，不阻塞Redis（KEYS命令会阻塞）
//   - UNLINK异步回收内存，不阻塞当前请求
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore 创建Redis缓存实例
// ttl为0时表示不设置过期时间（完全依赖显式失效）
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	return &CacheStore{client: client, ttl: ttl}
}

// Get 按key查询缓存，命中时反序列化到dest并返回true
func (c *CacheStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // 缓存未命中
		}
		return false, apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "获取缓存失败")
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "反序列化缓存失败")
	}

	return true, nil
}

// Set 写入缓存（序列化为JSON）
func (c *CacheStore) Set(ctx context.Context, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "序列化缓存失败")
	}

	if err := c.client.Set(ctx, keyPrefix+key, val, c.ttl).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "设置缓存失败")
	}

	return nil
}

// Invalidate 按前缀批量失效
func (c *CacheStore) Invalidate(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		// SCAN游标遍历匹配的key
		iter := c.client.Scan(ctx, 0, keyPrefix+prefix+"*", 0).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}

		if err := iter.Err(); err != nil {
			return apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "扫描缓存key失败")
		}

		// UNLINK异步删除
		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				return apperrors.WrapCode(apperrors.ErrCodeCacheError, err, "删除缓存失败")
			}
		}
	}

	return nil
}
