package cache

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// CheckpointStore 检查点存储
// 把控制器的部分进度以JSON形式放进TTL缓存
// 损坏或过期的检查点一律按"未找到"处理,由控制器从头重算
type CheckpointStore struct {
	cache *Cache
}

// NewCheckpointStore 创建检查点存储
func NewCheckpointStore(cache *Cache) *CheckpointStore {
	return &CheckpointStore{cache: cache}
}

// Save 序列化并保存检查点
func (s *CheckpointStore) Save(cp *define.Checkpoint, ttl time.Duration) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	s.cache.SetWithTTL(cp.Key(), data, ttl)
	return nil
}

// Load 读取并反序列化检查点
// 反序列化失败或结构不完整按未找到处理
func (s *CheckpointStore) Load(key string) (*define.Checkpoint, bool) {
	data, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	var cp define.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		log.Printf("[警告] 检查点反序列化失败,按未找到处理: %s: %v", key, err)
		s.cache.Delete(key)
		return nil, false
	}
	if err := cp.Validate(); err != nil {
		log.Printf("[警告] 检查点结构不完整,按未找到处理: %s: %v", key, err)
		s.cache.Delete(key)
		return nil, false
	}
	return &cp, true
}

// Delete 删除检查点
func (s *CheckpointStore) Delete(key string) {
	s.cache.Delete(key)
}
