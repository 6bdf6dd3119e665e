package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Memory 进程内读缓存
// 设计说明：
// 1. 单进程部署下的默认实现，RWMutex保护的map即可满足一致性要求
// 2. 值以JSON字节存储，与Redis实现保持同一序列化语义
//    （读方拿到的是副本，不会与写方共享可变对象）
// 3. 失效是持锁的整类删除，写写之间天然串行
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory 创建进程内缓存
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string][]byte),
	}
}

// Get 查询缓存
func (m *Memory) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, apperrors.Wrap(err, "缓存反序列化失败")
	}

	return true, nil
}

// Set 写入缓存
func (m *Memory) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, "缓存序列化失败")
	}

	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()

	return nil
}

// Invalidate 按前缀批量失效
func (m *Memory) Invalidate(_ context.Context, prefixes ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(m.entries, key)
				break
			}
		}
	}

	return nil
}

// Len 当前缓存条目数（测试用）
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
