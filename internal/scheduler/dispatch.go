// Package scheduler 定时发布：到期条目扫描器与发布入口。
package scheduler

import (
	"context"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/publisher"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// Publisher 发布适配器
type Publisher interface {
	Publish(ctx context.Context, assetURL, caption string) (publisher.Receipt, error)
}

// dispatcher 处理一个已认领（publishing）的条目，扫描器与立即发布共用
type dispatcher struct {
	posts repository.ScheduledPostRepository
	tasks repository.TaskRepository
	pub   Publisher
	now   func() time.Time
}

// dispatch 发布并把条目推进到 posted/failed；返回发布失败的原因
func (d *dispatcher) dispatch(ctx context.Context, p repository.ScheduledPost) error {
	log := logger.WithPostID(p.ID)

	assetURL, err := d.assetURL(ctx, p)
	if err != nil {
		log.Warn().Err(err).Uint64("content_id", p.ContentID).Msg("条目缺少素材，直接标记失败")
		d.finish(ctx, p.ID, func() (bool, error) {
			return d.posts.MarkFailed(ctx, p.ID, model.MissingImageMessage)
		}, model.PostStatusFailed)
		return apperr.Validation(model.MissingImageMessage)
	}

	receipt, pubErr := d.pub.Publish(ctx, assetURL, p.Caption)
	if pubErr != nil {
		log.Error().Err(pubErr).Msg("发布失败")
		d.finish(ctx, p.ID, func() (bool, error) {
			return d.posts.MarkFailed(ctx, p.ID, pubErr.Error())
		}, model.PostStatusFailed)
		return pubErr
	}

	d.finish(ctx, p.ID, func() (bool, error) {
		return d.posts.MarkPosted(ctx, p.ID, receipt.URL, d.now())
	}, model.PostStatusPosted)
	log.Info().Str("remote_id", receipt.PostID).Str("post_url", receipt.URL).Msg("发布成功")
	return nil
}

// assetURL 解析条目引用的生成内容；内容不存在或没有结果地址都视为缺图
func (d *dispatcher) assetURL(ctx context.Context, p repository.ScheduledPost) (string, error) {
	if p.ContentID == 0 {
		return "", apperr.NotFound("content")
	}
	task, err := d.tasks.Get(ctx, p.ContentID)
	if err != nil {
		return "", err
	}
	if task.ResultURL == "" {
		return "", apperr.Validation("content has no result url")
	}
	return task.ResultURL, nil
}

func (d *dispatcher) finish(ctx context.Context, id uint64, mark func() (bool, error), status model.PostStatus) {
	log := logger.WithPostID(id)

	applied, err := mark()
	if err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("更新条目状态失败")
		metrics.RecordError("scheduler", "db")
		return
	}
	if !applied {
		// 条目已被其他路径推进（例如超时清理），不再重复计数
		log.Warn().Str("status", string(status)).Msg("条目已不在 publishing，忽略")
		return
	}
	metrics.RecordPostProcessed(string(status))
}
