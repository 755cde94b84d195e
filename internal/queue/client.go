package asynqx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/azhengyongqin/brandpilot/internal/remotejob"
)

type Client struct {
	*asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{Client: asynq.NewClient(opt)}
}

// EnqueueRefresh 提交后开始一条刷新链，预算与客户端轮询一致
func (c *Client) EnqueueRefresh(ctx context.Context, taskID uint64, poll remotejob.PollConfig) error {
	return c.Requeue(ctx, RefreshPayload{
		TaskID:   taskID,
		Attempt:  1,
		Interval: poll.Interval,
		Deadline: time.Now().Add(poll.Budget()),
	})
}

// Requeue 在 Interval 之后执行下一轮刷新
func (c *Client) Requeue(ctx context.Context, p RefreshPayload) error {
	t, err := NewRefreshTask(p)
	if err != nil {
		return err
	}

	opts := EnqueueOptions(EnqueueParams{
		TaskKey:  RefreshTaskKey(p),
		Queue:    QueueGeneration,
		MaxRetry: 0,
		Timeout:  30 * time.Second,
		Delay:    p.Interval,
	})
	if _, err := c.EnqueueContext(ctx, t, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue refresh: %w", err)
	}
	return nil
}
