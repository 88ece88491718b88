package pipeline

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultRefreshInterval 定时刷新周期
const DefaultRefreshInterval = 3 * time.Hour

// Service 持有最近一次刷新结果并按周期自动刷新
// 手动刷新与定时刷新可能重叠，存储层按后写覆盖处理，这里只做串行化
type Service struct {
	pipeline *Pipeline
	interval time.Duration

	mu       sync.RWMutex
	latest   *Result
	lastErr  error
	inFlight bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService 创建刷新服务，interval 非正时取默认周期
func NewService(p *Pipeline, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Service{
		pipeline: p,
		interval: interval,
	}
}

// Start 先同步刷一轮，然后启动定时刷新
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	if _, err := s.RefreshNow(ctx); err != nil {
		log.Printf("initial refresh failed: %v", err)
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.RefreshNow(ctx); err != nil {
					log.Printf("scheduled refresh failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop 取消在途刷新并等待后台退出
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
}

// RefreshNow 立即刷新；已有一轮在途时直接返回当前结果，不叠加请求
func (s *Service) RefreshNow(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.inFlight {
		latest, lastErr := s.latest, s.lastErr
		s.mu.Unlock()
		return latest, lastErr
	}
	s.inFlight = true
	s.mu.Unlock()

	result, err := s.pipeline.Refresh(ctx)

	s.mu.Lock()
	s.inFlight = false
	s.lastErr = err
	if err == nil {
		s.latest = result
	}
	latest := s.latest
	s.mu.Unlock()

	if err != nil {
		return latest, err
	}
	return result, nil
}

// Latest 最近一次成功的刷新结果，可能为 nil
func (s *Service) Latest() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// LastError 最近一次刷新的错误
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
