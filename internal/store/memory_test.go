package store_test

import (
	"sync"
	"testing"

	"github.com/yxlinfo/yxl-info/internal/store"
)

// TestMemoryStoreGetSet 内存存储与 SQLite 版行为一致
func TestMemoryStoreGetSet(t *testing.T) {
	s := store.NewMemoryStore()

	if err := s.Set("k", map[string]int{"a": 1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got map[string]int
	ok, err := s.Get("k", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got["a"] != 1 {
		t.Errorf("got %v", got)
	}

	ok, err = s.Get("missing", &got)
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if ok {
		t.Error("ok = true for missing key")
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d after Delete", s.Count())
	}
}

// TestMemoryStoreConcurrent 并发读写不竞争
func TestMemoryStoreConcurrent(t *testing.T) {
	s := store.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Set("shared", n)
				var out int
				_, _ = s.Get("shared", &out)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
}
