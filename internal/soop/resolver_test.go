package soop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/store"
)

// fakeClient 计数版假客户端
type fakeClient struct {
	candidates []BJCandidate
	searchErr  error
	entries    []LiveEntry
	liveErr    error

	mu        sync.Mutex
	bjCalls   int
	liveCalls int
}

func (f *fakeClient) SearchBJ(ctx context.Context, keyword string) ([]BJCandidate, error) {
	f.mu.Lock()
	f.bjCalls++
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func (f *fakeClient) SearchLive(ctx context.Context, keyword string) ([]LiveEntry, error) {
	f.mu.Lock()
	f.liveCalls++
	f.mu.Unlock()
	if f.liveErr != nil {
		return nil, f.liveErr
	}
	return f.entries, nil
}

// TestResolveOverridePrecedence 覆盖表命中时不发远端请求
func TestResolveOverridePrecedence(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{{UserID: "wrong", UserNick: "은우"}},
	}
	overrides := map[string]string{" 은우♥ ": "eunwoo_official"}
	r := NewResolver(client, store.NewMemoryStore(), overrides, 0)

	id, err := r.Resolve(context.Background(), "은우♥")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "eunwoo_official" {
		t.Errorf("id = %q, want eunwoo_official", id)
	}
	if client.bjCalls != 0 {
		t.Errorf("bjCalls = %d, want 0", client.bjCalls)
	}
}

// TestResolveCacheHit 第二次解析走缓存
func TestResolveCacheHit(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{{UserID: "eunwoo123", UserNick: "은우"}},
	}
	r := NewResolver(client, store.NewMemoryStore(), nil, time.Hour)

	for i := 0; i < 3; i++ {
		id, err := r.Resolve(context.Background(), "은우♥")
		if err != nil {
			t.Fatalf("Resolve #%d failed: %v", i+1, err)
		}
		if id != "eunwoo123" {
			t.Errorf("Resolve #%d: id = %q", i+1, id)
		}
	}

	if client.bjCalls != 1 {
		t.Errorf("bjCalls = %d, want 1", client.bjCalls)
	}
}

// TestResolveCacheExpiry 缓存过期后重新检索
func TestResolveCacheExpiry(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{{UserID: "eunwoo123", UserNick: "은우"}},
	}
	r := NewResolver(client, store.NewMemoryStore(), nil, time.Hour)

	current := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	if _, err := r.Resolve(context.Background(), "은우"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// TTL 内走缓存
	current = current.Add(30 * time.Minute)
	if _, err := r.Resolve(context.Background(), "은우"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if client.bjCalls != 1 {
		t.Errorf("bjCalls = %d, want 1 within ttl", client.bjCalls)
	}

	// TTL 过后重新检索
	current = current.Add(2 * time.Hour)
	if _, err := r.Resolve(context.Background(), "은우"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if client.bjCalls != 2 {
		t.Errorf("bjCalls = %d, want 2 after ttl", client.bjCalls)
	}
}

// TestResolveScoring 精确归一匹配优先于先到候选
func TestResolveScoring(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{
			{UserID: "fanclub", UserNick: "은우팬클럽"},
			{UserID: "eunwoo123", UserNick: "은우♥"},
		},
	}
	r := NewResolver(client, nil, nil, 0)

	id, err := r.Resolve(context.Background(), "은우♥")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "eunwoo123" {
		t.Errorf("id = %q, want eunwoo123", id)
	}
}

// TestResolveDefaultFirst 无正分时取第一个候选兜底
func TestResolveDefaultFirst(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{
			{UserID: "first", UserNick: "♥"},
			{UserID: "second", UserNick: "♡"},
		},
	}
	r := NewResolver(client, nil, nil, 0)

	// 候选昵称归一后为空，全部 0 分
	id, err := r.Resolve(context.Background(), "아주아주아주아주아주아주아주아주긴이름의스트리머")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "first" {
		t.Errorf("id = %q, want first", id)
	}
}

// TestResolveFailures 远端失败、空结果、空名都归并为 ErrNotFound
func TestResolveFailures(t *testing.T) {
	r := NewResolver(&fakeClient{searchErr: errors.New("boom")}, nil, nil, 0)
	if _, err := r.Resolve(context.Background(), "은우"); !errors.Is(err, ErrNotFound) {
		t.Errorf("search error: err = %v, want ErrNotFound", err)
	}

	r = NewResolver(&fakeClient{}, nil, nil, 0)
	if _, err := r.Resolve(context.Background(), "은우"); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty result: err = %v, want ErrNotFound", err)
	}

	if _, err := r.Resolve(context.Background(), " ♥♡ "); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty name: err = %v, want ErrNotFound", err)
	}
}

// TestResolveCacheWrite 远端命中后回写缓存供下次使用
func TestResolveCacheWrite(t *testing.T) {
	client := &fakeClient{
		candidates: []BJCandidate{{UserID: "eunwoo123", UserNick: "은우", StationLogo: "logo.png"}},
	}
	kv := store.NewMemoryStore()
	r := NewResolver(client, kv, nil, time.Hour)

	if _, err := r.Resolve(context.Background(), "은우♥"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var cached model.IdentityRecord
	ok, err := kv.Get("soop_identity:은우", &cached)
	if err != nil || !ok {
		t.Fatalf("cache read: ok=%v err=%v", ok, err)
	}
	if cached.UserID != "eunwoo123" || cached.StationLogo != "logo.png" {
		t.Errorf("cached = %+v", cached)
	}
	if cached.ResolvedAt.IsZero() {
		t.Error("ResolvedAt not set")
	}
}
