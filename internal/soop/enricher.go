package soop

import (
	"context"
	"sync"
	"time"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/util"
)

const (
	// DefaultWorkers 并发上限：限制对外请求的同时在途数
	DefaultWorkers = 3
	// DefaultRequestDelay 单个 worker 处理完一项后的间隔，协作式节流
	DefaultRequestDelay = 120 * time.Millisecond
	// DefaultLiveTTL 直播状态短缓存，一次补充周期内有效
	DefaultLiveTTL = 90 * time.Second
)

type liveCacheEntry struct {
	status    *model.LiveStatus
	fetchedAt time.Time
}

// Enricher 直播状态补充器
// 固定大小的 worker 池从共享队列抢活（同名只查一次），
// 单条失败只影响那一条，整批照常返回
type Enricher struct {
	client   SearchClient
	resolver *Resolver
	workers  int
	delay    time.Duration
	liveTTL  time.Duration

	mu    sync.Mutex
	cache map[string]liveCacheEntry
	now   func() time.Time
}

// NewEnricher 创建补充器，非正参数取默认值
func NewEnricher(client SearchClient, resolver *Resolver, workers int, delay, liveTTL time.Duration) *Enricher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if delay < 0 {
		delay = DefaultRequestDelay
	}
	if liveTTL <= 0 {
		liveTTL = DefaultLiveTTL
	}
	return &Enricher{
		client:   client,
		resolver: resolver,
		workers:  workers,
		delay:    delay,
		liveTTL:  liveTTL,
		cache:    make(map[string]liveCacheEntry),
		now:      time.Now,
	}
}

type enrichJob struct {
	nameKey string
	display string
}

// Enrich 为每条排名记录补充直播状态
// 输出与输入一一对应；ctx 取消后未处理的条目保持未知状态返回
func (e *Enricher) Enrich(ctx context.Context, entities []model.RankedEntity) []model.EnrichedEntity {
	results := make([]model.EnrichedEntity, len(entities))
	for i, entity := range entities {
		results[i] = model.EnrichedEntity{RankedEntity: entity}
	}
	if len(entities) == 0 {
		return results
	}

	// 去重建队列：同一个名字整批只查一次
	jobs := make([]enrichJob, 0, len(entities))
	seen := make(map[string]bool, len(entities))
	for _, entity := range entities {
		key := util.NormalizeName(entity.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if e.freshStatus(key) == nil {
			jobs = append(jobs, enrichJob{nameKey: key, display: entity.Name})
		}
	}

	if len(jobs) > 0 {
		queue := make(chan enrichJob)
		var wg sync.WaitGroup

		workers := e.workers
		if workers > len(jobs) {
			workers = len(jobs)
		}
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.runWorker(ctx, queue)
			}()
		}

	feed:
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-ctx.Done():
				break feed
			}
		}
		close(queue)
		wg.Wait()
	}

	for i := range results {
		key := util.NormalizeName(results[i].Name)
		results[i].Live = e.freshStatus(key)
	}
	return results
}

// runWorker 从共享队列逐项处理，项与项之间插入固定间隔
func (e *Enricher) runWorker(ctx context.Context, queue <-chan enrichJob) {
	for job := range queue {
		if ctx.Err() != nil {
			return
		}

		status := e.lookup(ctx, job.display)
		e.mu.Lock()
		e.cache[job.nameKey] = liveCacheEntry{status: status, fetchedAt: e.now()}
		e.mu.Unlock()

		if e.delay > 0 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
				return
			}
		}
	}
}

// lookup 单人查询：解析身份 -> 在播检索
// 任何一步失败返回 nil（未知状态），不中断整批
func (e *Enricher) lookup(ctx context.Context, displayName string) *model.LiveStatus {
	userID, err := e.resolver.Resolve(ctx, displayName)
	if err != nil {
		return nil
	}

	keyword := util.StripDecorations(displayName)
	entries, err := e.client.SearchLive(ctx, keyword)
	if err != nil {
		return nil
	}

	status := &model.LiveStatus{
		UserID: userID,
		URL:    "https://ch.sooplive.co.kr/" + userID,
	}

	picked := pickLiveEntry(entries, userID)
	if picked != nil && picked.BroadNo != "" {
		status.IsLive = true
		status.BroadNo = picked.BroadNo
		status.Thumbnail = picked.BroadImg
		status.Title = picked.BroadTitle
		if picked.URL != "" {
			status.URL = picked.URL
		}
	}

	return status
}

// pickLiveEntry 优先取 user_id 精确匹配的条目，没有精确命中时取第一条兜底
func pickLiveEntry(entries []LiveEntry, userID string) *LiveEntry {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i]
		}
	}
	return &entries[0]
}

func (e *Enricher) freshStatus(nameKey string) *model.LiveStatus {
	if nameKey == "" {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.cache[nameKey]
	if !ok || entry.status == nil {
		return nil
	}
	if e.now().Sub(entry.fetchedAt) >= e.liveTTL {
		return nil
	}
	return entry.status
}
