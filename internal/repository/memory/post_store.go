package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// PostStore 定时发布仓储（内存版）
type PostStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]repository.ScheduledPost
}

func NewPostStore() *PostStore {
	return &PostStore{items: map[uint64]repository.ScheduledPost{}}
}

func (s *PostStore) Create(_ context.Context, p repository.ScheduledPost) (*repository.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	p.ID = s.nextID
	if p.Status == "" {
		p.Status = model.PostStatusScheduled
	}
	if p.Platform == "" {
		p.Platform = model.PlatformTwitter
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	s.items[p.ID] = p
	return &p, nil
}

func (s *PostStore) Get(_ context.Context, id uint64) (*repository.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("scheduled post")
	}
	return &p, nil
}

// ClaimDue 持锁完成选择与标记，等价于 Postgres 版本的单语句认领
func (s *PostStore) ClaimDue(_ context.Context, now time.Time, limit int) ([]repository.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]repository.ScheduledPost, 0)
	for _, p := range s.items {
		if p.Status == model.PostStatusScheduled && !p.ScheduledTime.After(now) {
			due = append(due, p)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledTime.Before(due[j].ScheduledTime) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	for i := range due {
		due[i].Status = model.PostStatusPublishing
		due[i].UpdatedAt = time.Now()
		s.items[due[i].ID] = due[i]
	}
	return due, nil
}

func (s *PostStore) MarkPosted(_ context.Context, id uint64, postURL string, postedAt time.Time) (bool, error) {
	return s.finish(id, func(p *repository.ScheduledPost) {
		p.Status = model.PostStatusPosted
		p.PostURL = postURL
		p.PostedAt = &postedAt
		p.ErrorMessage = ""
	})
}

func (s *PostStore) MarkFailed(_ context.Context, id uint64, errMsg string) (bool, error) {
	return s.finish(id, func(p *repository.ScheduledPost) {
		p.Status = model.PostStatusFailed
		p.ErrorMessage = errMsg
	})
}

func (s *PostStore) finish(id uint64, apply func(p *repository.ScheduledPost)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok || p.Status != model.PostStatusPublishing {
		return false, nil
	}
	apply(&p)
	p.UpdatedAt = time.Now()
	s.items[id] = p
	return true, nil
}

func (s *PostStore) FailStale(_ context.Context, before time.Time, errMsg string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.items {
		if p.Status == model.PostStatusPublishing && p.UpdatedAt.Before(before) {
			p.Status = model.PostStatusFailed
			p.ErrorMessage = errMsg
			p.UpdatedAt = time.Now()
			s.items[id] = p
			n++
		}
	}
	return n, nil
}

func (s *PostStore) List(_ context.Context, f repository.PostFilter) ([]repository.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]repository.ScheduledPost, 0)
	for _, p := range s.items {
		if f.UserID != 0 && p.UserID != f.UserID {
			continue
		}
		if f.ConversationID != "" && p.ConversationID != f.ConversationID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.After(out[j].ScheduledTime) })
	return paginate(out, 0, f.Limit), nil
}

// SetUpdatedAt 测试辅助：模拟长时间停留在 publishing 的条目
func (s *PostStore) SetUpdatedAt(id uint64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.items[id]; ok {
		p.UpdatedAt = at
		s.items[id] = p
	}
}
