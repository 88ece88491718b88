package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore 内存键值存储
// 值同样经过 JSON 序列化，行为与 SQLite 版一致，主要用于测试
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get 读取键值并反序列化到 out
func (s *MemoryStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("failed to decode value for %s: %w", key, err)
	}
	return true, nil
}

// Set 序列化并写入键值
func (s *MemoryStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = string(data)
	s.mu.Unlock()
	return nil
}

// Delete 删除键
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Count 获取键数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Clear 清空所有键值
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()
}
