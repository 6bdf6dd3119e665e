package cache

import (
	"context"
	"testing"
)

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	// 未命中
	var out payload
	hit, err := m.Get(ctx, BookKey(1), &out)
	if err != nil {
		t.Fatalf("Get失败: %v", err)
	}
	if hit {
		t.Fatal("空缓存不应命中")
	}

	// 写入后命中,且读到的是副本
	in := payload{ID: 1, Name: "围城"}
	if err := m.Set(ctx, BookKey(1), in); err != nil {
		t.Fatalf("Set失败: %v", err)
	}

	hit, err = m.Get(ctx, BookKey(1), &out)
	if err != nil {
		t.Fatalf("Get失败: %v", err)
	}
	if !hit {
		t.Fatal("写入后应命中")
	}
	if out != in {
		t.Errorf("读到的值不正确: %+v", out)
	}
}

func TestMemoryInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	keys := []string{KeyBooksAll, BookKey(1), KeyPatronsAll, PatronKey(1), HistoryKey(1)}
	for _, k := range keys {
		if err := m.Set(ctx, k, payload{ID: 1}); err != nil {
			t.Fatalf("Set失败: %v", err)
		}
	}

	// 只清图书类,读者类不受影响
	if err := m.Invalidate(ctx, PrefixBooks); err != nil {
		t.Fatalf("Invalidate失败: %v", err)
	}
	if m.Len() != 3 {
		t.Errorf("图书类失效后应剩3条, 实际 %d", m.Len())
	}

	var out payload
	if hit, _ := m.Get(ctx, BookKey(1), &out); hit {
		t.Error("图书详情应已失效")
	}
	if hit, _ := m.Get(ctx, PatronKey(1), &out); !hit {
		t.Error("读者详情不应受图书类失效影响")
	}

	// 读者前缀覆盖历史key(patrons:history:也以patrons:开头)
	if err := m.Invalidate(ctx, PrefixPatrons); err != nil {
		t.Fatalf("Invalidate失败: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("全部失效后应为空, 实际 %d", m.Len())
	}
}
