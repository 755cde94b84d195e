// Package generation 负责生成任务的提交与状态推进（任务注册表的读路径）。
package generation

import (
	"context"
	"errors"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/remotejob"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// Refresher 后台刷新任务的入队方（可选）
type Refresher interface {
	EnqueueRefresh(ctx context.Context, taskID uint64, poll remotejob.PollConfig) error
}

// SubmitRequest 提交参数
type SubmitRequest struct {
	Kind           model.TaskKind
	Prompt         string
	ImageURLs      []string
	Format         string
	UserID         uint64
	BrandID        uint64
	ConversationID string
}

// Service 生成任务服务
type Service struct {
	tasks     repository.TaskRepository
	client    remotejob.Client
	polls     map[model.TaskKind]remotejob.PollConfig
	refresher Refresher
}

// NewService 创建服务；image/video 为各自的轮询预算
func NewService(tasks repository.TaskRepository, client remotejob.Client, image, video remotejob.PollConfig) *Service {
	return &Service{
		tasks:  tasks,
		client: client,
		polls: map[model.TaskKind]remotejob.PollConfig{
			model.TaskKindImage: image,
			model.TaskKindVideo: video,
		},
	}
}

// SetRefresher 启用后台刷新
func (s *Service) SetRefresher(r Refresher) {
	s.refresher = r
}

// PollConfig 某类任务的轮询预算
func (s *Service) PollConfig(kind model.TaskKind) remotejob.PollConfig {
	return s.polls[kind]
}

// Submit 远端提交成功后在注册表登记（pending）
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*repository.RemoteTask, error) {
	if !req.Kind.Valid() {
		return nil, apperr.Validation("invalid task kind")
	}
	if req.Prompt == "" {
		return nil, apperr.Validation("prompt is required")
	}
	if len(req.ImageURLs) == 0 {
		return nil, apperr.Validation("source image is required")
	}

	payload := remotejob.Payload{
		Prompt:    req.Prompt,
		ImageURLs: req.ImageURLs,
		Format:    req.Format,
	}
	h, err := s.client.Submit(ctx, req.Kind, payload)
	if err != nil {
		metrics.RecordError("generation", "submit")
		return nil, err
	}

	task, err := s.tasks.Create(ctx, repository.RemoteTask{
		RemoteID: h.RemoteID,
		Kind:     req.Kind,
		Payload: repository.TaskPayload{
			Prompt:    req.Prompt,
			ImageURLs: req.ImageURLs,
			Format:    req.Format,
		},
		Status:         model.TaskStatusPending,
		UserID:         req.UserID,
		BrandID:        req.BrandID,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordGenerationSubmitted(string(req.Kind))
	log := logger.WithTaskID(task.ID)
	log.Info().
		Str("kind", string(task.Kind)).
		Str("remote_id", task.RemoteID).
		Msg("生成任务已提交")

	if s.refresher != nil {
		if err := s.refresher.EnqueueRefresh(ctx, task.ID, s.polls[req.Kind]); err != nil {
			// 后台刷新只是补充，客户端轮询仍然可用
			log.Warn().Err(err).Msg("后台刷新入队失败")
		}
	}

	return task, nil
}

// Status 读路径：终态直接返回；否则查询一次远端并推进状态后重新读取
func (s *Service) Status(ctx context.Context, id uint64) (*repository.RemoteTask, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return task, nil
	}

	out, err := s.client.Poll(ctx, remotejob.Handle{RemoteID: task.RemoteID, Kind: task.Kind})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindMalformed {
			return nil, err
		}
		// 成功但没有结果地址，无法再恢复，按失败落库
		s.advance(ctx, task, model.TaskStatusFailed, "", err.Error())
		return nil, err
	}

	switch out.State {
	case remotejob.StateSucceeded:
		s.advance(ctx, task, model.TaskStatusCompleted, out.ResultURL, "")
	case remotejob.StateFailed:
		s.advance(ctx, task, model.TaskStatusFailed, "", out.Reason)
	default:
		s.advance(ctx, task, model.TaskStatusGenerating, "", "")
	}

	return s.tasks.Get(ctx, id)
}

func (s *Service) advance(ctx context.Context, task *repository.RemoteTask, status model.TaskStatus, resultURL, errMsg string) {
	if task.Status == status {
		return
	}

	log := logger.WithTaskID(task.ID)
	applied, err := s.tasks.UpdateStatus(ctx, task.ID, status, resultURL, errMsg)
	if err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("更新任务状态失败")
		return
	}
	if !applied || !status.Terminal() {
		return
	}

	metrics.RecordGenerationFinished(string(task.Kind), string(status), time.Since(task.CreatedAt).Seconds())
	ev := log.Info().Str("kind", string(task.Kind)).Str("status", string(status))
	if errMsg != "" {
		ev = ev.Str("errors", errMsg)
	}
	ev.Msg("生成任务结束")
}

// Wait 在请求内阻塞轮询直到终态；超出预算返回 TimeoutError（任务仍可能在远端完成）
func (s *Service) Wait(ctx context.Context, id uint64) (*repository.RemoteTask, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return task, nil
	}

	cfg := s.polls[task.Kind]
	var last *repository.RemoteTask
	_, err = remotejob.PollUntil(ctx, cfg, "wait "+string(task.Kind), func(ctx context.Context) (remotejob.Outcome, error) {
		t, err := s.Status(ctx, id)
		if err != nil {
			return remotejob.Outcome{}, err
		}
		last = t
		return outcomeOf(t), nil
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// Refresh 后台刷新：推进一次状态，返回是否已到终态
func (s *Service) Refresh(ctx context.Context, id uint64) (bool, error) {
	task, err := s.Status(ctx, id)
	if err != nil {
		// 任务不存在或已按失败落库，都不需要继续刷新
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrMalformed) {
			return true, err
		}
		return false, err
	}
	return task.Status.Terminal(), nil
}

func outcomeOf(t *repository.RemoteTask) remotejob.Outcome {
	switch t.Status {
	case model.TaskStatusCompleted:
		return remotejob.Succeeded(t.ResultURL)
	case model.TaskStatusFailed:
		return remotejob.Failed(t.ErrorMessage)
	default:
		return remotejob.Pending()
	}
}
