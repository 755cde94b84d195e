// Package memory 提供仓储接口的内存实现，语义与 Postgres 实现保持一致，
// 用于单元测试以及无数据库的本地调试。
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

// TaskStore 生成任务注册表（内存版）
type TaskStore struct {
	mu     sync.RWMutex
	nextID uint64
	items  map[uint64]repository.RemoteTask
}

func NewTaskStore() *TaskStore {
	return &TaskStore{items: map[uint64]repository.RemoteTask{}}
}

func (s *TaskStore) Create(_ context.Context, t repository.RemoteTask) (*repository.RemoteTask, error) {
	if t.RemoteID == "" {
		return nil, apperr.Validation("remote_id 不能为空")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.RemoteID == t.RemoteID {
			return nil, apperr.Conflict("task already exists")
		}
	}

	s.nextID++
	now := time.Now()
	t.ID = s.nextID
	if t.Status == "" {
		t.Status = model.TaskStatusPending
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	s.items[t.ID] = t
	return &t, nil
}

func (s *TaskStore) Get(_ context.Context, id uint64) (*repository.RemoteTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("task")
	}
	return &t, nil
}

func (s *TaskStore) UpdateStatus(_ context.Context, id uint64, status model.TaskStatus, resultURL, errMsg string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.items[id]
	if !ok {
		return false, apperr.NotFound("task")
	}
	if !model.CanTransition(t.Status, status) {
		return false, nil
	}

	t.Status = status
	if resultURL != "" {
		t.ResultURL = resultURL
	}
	if errMsg != "" {
		t.ErrorMessage = errMsg
	}
	t.UpdatedAt = time.Now()
	s.items[id] = t
	return true, nil
}

func (s *TaskStore) List(_ context.Context, f repository.TaskFilter) ([]repository.RemoteTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.RemoteTask, 0)
	for _, t := range s.items {
		if f.UserID != 0 && t.UserID != f.UserID {
			continue
		}
		if f.BrandID != 0 && t.BrandID != f.BrandID {
			continue
		}
		if f.ConversationID != "" && t.ConversationID != f.ConversationID {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		out = append(out, t)
	}

	// 最新的在前
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, f.Offset, f.Limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
