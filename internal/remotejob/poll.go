package remotejob

import (
	"context"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

// PollConfig 轮询预算
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// Budget 轮询的最长等待时间
func (c PollConfig) Budget() time.Duration {
	return c.Interval * time.Duration(c.MaxAttempts)
}

// PollUntil 每隔 Interval 调用一次 fn，直到返回终态。
// 每次调用前先等待一个间隔（刚提交的任务不可能立即完成）。
// 次数用尽返回 TimeoutError；fn 出错或 ctx 取消立即返回。
func PollUntil(ctx context.Context, cfg PollConfig, op string, fn func(ctx context.Context) (Outcome, error)) (Outcome, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	start := time.Now()
	timer := time.NewTimer(cfg.Interval)
	defer timer.Stop()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-timer.C:
		}

		out, err := fn(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if out.Terminal() {
			return out, nil
		}
		timer.Reset(cfg.Interval)
	}

	return Outcome{}, apperr.Timeout(op, cfg.MaxAttempts, time.Since(start))
}
