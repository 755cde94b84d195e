package asynqx

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/azhengyongqin/brandpilot/internal/logger"
)

// Refresher 推进一次任务状态，返回是否已到终态
type Refresher interface {
	Refresh(ctx context.Context, taskID uint64) (bool, error)
}

// Requeuer 续期下一轮刷新
type Requeuer interface {
	Requeue(ctx context.Context, p RefreshPayload) error
}

// RefreshHandler generation:refresh 处理器
type RefreshHandler struct {
	svc Refresher
	rq  Requeuer
	now func() time.Time
}

func NewRefreshHandler(svc Refresher, rq Requeuer) *RefreshHandler {
	return &RefreshHandler{svc: svc, rq: rq, now: time.Now}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	p, err := ParseRefreshPayload(t)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	log := logger.WithTaskID(p.TaskID)

	done, err := h.svc.Refresh(ctx, p.TaskID)
	if done {
		if err != nil {
			log.Warn().Err(err).Msg("后台刷新结束")
		}
		return nil
	}
	if err != nil {
		// 远端暂时不可用，下一轮再试
		log.Warn().Err(err).Int("attempt", p.Attempt).Msg("后台刷新失败")
	}

	if !h.now().Before(p.Deadline) {
		log.Info().Int("attempt", p.Attempt).Msg("后台刷新超出预算，停止续期")
		return nil
	}

	next := p
	next.Attempt++
	if err := h.rq.Requeue(ctx, next); err != nil {
		log.Error().Err(err).Msg("后台刷新续期失败")
		return err
	}
	return nil
}

// NewServer 后台刷新 worker
func NewServer(opt asynq.RedisClientOpt, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 5
	}
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueGeneration: 1},
	})
}

// NewServeMux 注册处理器
func NewServeMux(h *RefreshHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeGenerationRefresh, h)
	return mux
}
