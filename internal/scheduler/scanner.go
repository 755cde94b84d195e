package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/config"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// StaleMessage 长时间停在 publishing 的条目的失败原因
const StaleMessage = "publish interrupted"

// Scanner 到期条目扫描器
type Scanner struct {
	dispatcher

	interval   time.Duration
	batchSize  int
	staleAfter time.Duration

	stopCh  chan struct{}
	done    chan struct{}
	started bool
	stopped bool
	mu      sync.Mutex
}

// NewScanner 创建扫描器
func NewScanner(posts repository.ScheduledPostRepository, tasks repository.TaskRepository, pub Publisher, cfg config.SchedulerConfig) *Scanner {
	s := &Scanner{
		dispatcher: dispatcher{posts: posts, tasks: tasks, pub: pub, now: time.Now},
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		staleAfter: cfg.StaleAfter,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	if s.interval <= 0 {
		s.interval = time.Minute
	}
	if s.batchSize <= 0 {
		s.batchSize = 20
	}
	return s
}

// Start 启动后台循环（立即执行一轮），重复调用无效
func (s *Scanner) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.loop(ctx)
	logger.L.Info().Dur("interval", s.interval).Int("batch_size", s.batchSize).Msg("定时发布扫描器已启动")
}

func (s *Scanner) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// Stop 停止扫描器并等待当前一轮结束
func (s *Scanner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	started := s.started
	s.mu.Unlock()

	if started {
		<-s.done
	}
	logger.L.Info().Msg("定时发布扫描器已停止")
}

// RunOnce 执行一轮扫描，返回本轮认领的条目数
func (s *Scanner) RunOnce(ctx context.Context) int {
	metrics.RecordScanCycle()

	if s.staleAfter > 0 {
		n, err := s.posts.FailStale(ctx, s.now().Add(-s.staleAfter), StaleMessage)
		if err != nil {
			logger.L.Error().Err(err).Msg("清理超时条目失败")
			metrics.RecordError("scheduler", "db")
		} else if n > 0 {
			logger.L.Warn().Int64("count", n).Msg("已将超时未完成的发布标记为失败")
		}
	}

	claimed, err := s.posts.ClaimDue(ctx, s.now(), s.batchSize)
	if err != nil {
		logger.L.Error().Err(err).Msg("认领到期条目失败")
		metrics.RecordError("scheduler", "db")
		return 0
	}
	if len(claimed) == 0 {
		return 0
	}

	logger.L.Info().Int("count", len(claimed)).Msg("认领到期条目")
	for _, p := range claimed {
		if ctx.Err() != nil {
			// 已认领但未处理的条目会在 StaleAfter 之后被标记失败
			break
		}
		_ = s.dispatch(ctx, p)
	}
	return len(claimed)
}
