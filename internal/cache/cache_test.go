package cache

import (
	"testing"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// TestCacheSetGet 测试基本读写
func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k1", []byte("v1"))
	got, ok := c.Get("k1")
	if !ok || string(got) != "v1" {
		t.Errorf("期望读到 v1, 实际 %q, ok=%v", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("不存在的键不应命中")
	}
}

// TestCacheExpiry 过期键按未找到处理
func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.SetWithTTL("k1", []byte("v1"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k1"); ok {
		t.Error("过期键不应命中")
	}
}

// TestCacheDelete 删除后不可读
func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k1", []byte("v1"))
	c.Delete("k1")
	if _, ok := c.Get("k1"); ok {
		t.Error("删除后的键不应命中")
	}
}

// TestCheckpointStoreRoundTrip 检查点保存后可按键恢复
func TestCheckpointStoreRoundTrip(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()
	store := NewCheckpointStore(c)

	cp := &define.Checkpoint{
		SessionID: "s1",
		QueueIDs:  []uint{2, 1},
		Current:   1,
		Done:      []define.Strategy{define.StrategyLargestFirst},
		SavedAt:   time.Now(),
	}
	if err := store.Save(cp, time.Minute); err != nil {
		t.Fatalf("保存检查点失败: %v", err)
	}

	loaded, ok := store.Load(define.CheckpointKey("s1", []uint{1, 2}))
	if !ok {
		t.Fatal("期望按排序后的键命中检查点")
	}
	if loaded.SessionID != "s1" || loaded.Current != 1 {
		t.Errorf("恢复的检查点不完整: %+v", loaded)
	}
	if len(loaded.Done) != 1 || loaded.Done[0] != define.StrategyLargestFirst {
		t.Errorf("恢复的已完成策略不正确: %+v", loaded.Done)
	}
}

// TestCheckpointStoreCorrupted 损坏的检查点按未找到处理并被清除
func TestCheckpointStoreCorrupted(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()
	store := NewCheckpointStore(c)

	c.Set("s1:1", []byte("{不是合法的JSON"))
	if _, ok := store.Load("s1:1"); ok {
		t.Error("损坏的检查点不应命中")
	}
	if _, ok := c.Get("s1:1"); ok {
		t.Error("损坏的检查点应被清除")
	}
}

// TestCheckpointStoreIncomplete 结构不完整的检查点按未找到处理
func TestCheckpointStoreIncomplete(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()
	store := NewCheckpointStore(c)

	// 缺少当前单元的检查点
	c.Set("s1:1", []byte(`{"session_id":"s1","queue_ids":[1]}`))
	if _, ok := store.Load("s1:1"); ok {
		t.Error("结构不完整的检查点不应命中")
	}
}
