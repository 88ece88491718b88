package soop

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/util"
)

// ErrNotFound 名字解析不到 SOOP 账号
// 网络或解析失败也归并到这个错误，调用方按"未知"降级即可
var ErrNotFound = errors.New("soop: streamer not found")

// DefaultIdentityTTL 身份缓存有效期
const DefaultIdentityTTL = 72 * time.Hour

// Store 身份缓存需要的最小 KV 接口
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
}

// Resolver 展示名到 SOOP 账号的解析器
// 解析顺序：静态覆盖表 -> TTL 缓存 -> 远端模糊检索，先命中先定，
// 命中覆盖表时绝不发远端请求
type Resolver struct {
	client    SearchClient
	store     Store
	overrides map[string]string // 归一名 -> user_id
	ttl       time.Duration
	now       func() time.Time
}

// NewResolver 创建解析器
// overrides 的 key 可以是任意写法，构造时统一归一
func NewResolver(client SearchClient, store Store, overrides map[string]string, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultIdentityTTL
	}

	normalized := make(map[string]string, len(overrides))
	for name, id := range overrides {
		if key := util.NormalizeName(name); key != "" && id != "" {
			normalized[key] = id
		}
	}

	return &Resolver{
		client:    client,
		store:     store,
		overrides: normalized,
		ttl:       ttl,
		now:       time.Now,
	}
}

func identityKey(nameKey string) string {
	return "soop_identity:" + nameKey
}

// Resolve 解析展示名，返回 SOOP user_id
func (r *Resolver) Resolve(ctx context.Context, displayName string) (string, error) {
	key := util.NormalizeName(displayName)
	if key == "" {
		return "", ErrNotFound
	}

	// 1. 静态覆盖表
	if id, ok := r.overrides[key]; ok {
		return id, nil
	}

	// 2. TTL 缓存
	var cached model.IdentityRecord
	if r.store != nil {
		if ok, err := r.store.Get(identityKey(key), &cached); err == nil && ok {
			if r.now().Sub(cached.ResolvedAt) < r.ttl && cached.UserID != "" {
				return cached.UserID, nil
			}
		}
	}

	// 3. 远端检索，任何失败都归并为 ErrNotFound
	keyword := util.StripDecorations(displayName)
	candidates, err := r.client.SearchBJ(ctx, keyword)
	if err != nil || len(candidates) == 0 {
		return "", ErrNotFound
	}

	best := pickBestCandidate(candidates, key)
	if best == nil {
		return "", ErrNotFound
	}

	// 4. 回写缓存，尽力而为
	if r.store != nil {
		record := model.IdentityRecord{
			UserID:      best.UserID,
			UserNick:    best.UserNick,
			StationLogo: best.StationLogo,
			ResolvedAt:  r.now(),
		}
		_ = r.store.Set(identityKey(key), record)
	}

	return best.UserID, nil
}

// pickBestCandidate 候选打分
// 精确归一匹配 +100；双向包含 +25；再加长度差惩罚后的 0~20 分。
// 无正分时取第一个候选兜底
func pickBestCandidate(candidates []BJCandidate, targetKey string) *BJCandidate {
	if len(candidates) == 0 {
		return nil
	}

	bestIdx := -1
	bestScore := 0
	for i, cand := range candidates {
		score := scoreCandidate(cand.UserNick, targetKey)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		bestIdx = 0
	}
	return &candidates[bestIdx]
}

func scoreCandidate(nick, targetKey string) int {
	nickKey := util.NormalizeName(nick)
	if nickKey == "" || targetKey == "" {
		return 0
	}

	score := 0
	if nickKey == targetKey {
		score += 100
	}
	if strings.Contains(nickKey, targetKey) || strings.Contains(targetKey, nickKey) {
		score += 25
	}
	if diff := runeLenDiff(nickKey, targetKey); diff < 20 {
		score += 20 - diff
	}
	return score
}

func runeLenDiff(a, b string) int {
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff < 0 {
		return -diff
	}
	return diff
}
