package scheduler

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/caption"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// PostRequest 定时/立即发布请求
type PostRequest struct {
	ContentID      uint64
	ConversationID string
	Caption        string
	ScheduledTime  time.Time
	Platform       string
}

// Service 发布相关的用户操作
type Service struct {
	dispatcher
}

func NewService(posts repository.ScheduledPostRepository, tasks repository.TaskRepository, pub Publisher) *Service {
	return &Service{dispatcher: dispatcher{posts: posts, tasks: tasks, pub: pub, now: time.Now}}
}

// Schedule 创建定时条目，由扫描器在到期后发布
func (s *Service) Schedule(ctx context.Context, userID uint64, req PostRequest) (*repository.ScheduledPost, error) {
	if req.ScheduledTime.IsZero() {
		return nil, apperr.Validation("scheduled_time is required")
	}
	p, err := s.prepare(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	p.ScheduledTime = req.ScheduledTime.UTC()
	p.Status = model.PostStatusScheduled

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	log := logger.WithPostID(created.ID)
	log.Info().Time("scheduled_time", created.ScheduledTime).Uint64("content_id", created.ContentID).Msg("已创建定时发布")
	return created, nil
}

// PostNow 直接以 publishing 状态落库并走与扫描器相同的发布流程，返回最终条目
func (s *Service) PostNow(ctx context.Context, userID uint64, req PostRequest) (*repository.ScheduledPost, error) {
	p, err := s.prepare(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	p.ScheduledTime = s.now().UTC()
	p.Status = model.PostStatusPublishing

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	pubErr := s.dispatch(ctx, *created)

	final, err := s.posts.Get(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	return final, pubErr
}

// List 对话下的发布条目
func (s *Service) List(ctx context.Context, userID uint64, conversationID string) ([]repository.ScheduledPost, error) {
	return s.posts.List(ctx, repository.PostFilter{UserID: userID, ConversationID: conversationID})
}

func (s *Service) prepare(ctx context.Context, userID uint64, req PostRequest) (repository.ScheduledPost, error) {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		platform = model.PlatformTwitter
	}
	if platform != model.PlatformTwitter {
		return repository.ScheduledPost{}, apperr.Validation("unsupported platform: " + req.Platform)
	}
	text := strings.TrimSpace(req.Caption)
	if utf8.RuneCountInString(text) > caption.MaxLength {
		return repository.ScheduledPost{}, apperr.Validation("caption exceeds 280 characters")
	}
	if req.ContentID == 0 {
		return repository.ScheduledPost{}, apperr.Validation("content_id is required")
	}

	task, err := s.tasks.Get(ctx, req.ContentID)
	if err != nil {
		return repository.ScheduledPost{}, err
	}
	if task.UserID != userID {
		return repository.ScheduledPost{}, apperr.NotFound("content")
	}

	return repository.ScheduledPost{
		ContentID:      req.ContentID,
		UserID:         userID,
		ConversationID: req.ConversationID,
		Platform:       platform,
		Caption:        text,
	}, nil
}
