package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// 编译期检查接口实现
var (
	_ repository.TaskRepository          = (*TaskStore)(nil)
	_ repository.ScheduledPostRepository = (*PostStore)(nil)
	_ repository.BrandRepository         = (*BrandStore)(nil)
	_ repository.ConversationRepository  = (*ConversationStore)(nil)
	_ repository.UserRepository          = (*UserStore)(nil)
)

func TestTaskStore_MonotonicUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	task, err := store.Create(ctx, repository.RemoteTask{RemoteID: "r1", Kind: model.TaskKindImage})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, task.Status)

	applied, err := store.UpdateStatus(ctx, task.ID, model.TaskStatusCompleted, "https://x/y.png", "")
	require.NoError(t, err)
	assert.True(t, applied)

	// 终态之后的回退更新被忽略
	applied, err = store.UpdateStatus(ctx, task.ID, model.TaskStatusGenerating, "", "")
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
	assert.Equal(t, "https://x/y.png", got.ResultURL)
}

func TestTaskStore_NotFound(t *testing.T) {
	store := NewTaskStore()

	_, err := store.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = store.UpdateStatus(context.Background(), 99, model.TaskStatusGenerating, "", "")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTaskStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	_, _ = store.Create(ctx, repository.RemoteTask{RemoteID: "a", Kind: model.TaskKindImage, UserID: 1, ConversationID: "conv_1"})
	_, _ = store.Create(ctx, repository.RemoteTask{RemoteID: "b", Kind: model.TaskKindVideo, UserID: 1, ConversationID: "conv_1"})
	_, _ = store.Create(ctx, repository.RemoteTask{RemoteID: "c", Kind: model.TaskKindImage, UserID: 2})

	tests := []struct {
		name   string
		filter repository.TaskFilter
		want   []string
	}{
		{"by user", repository.TaskFilter{UserID: 1}, []string{"b", "a"}},
		{"by conversation and kind", repository.TaskFilter{ConversationID: "conv_1", Kind: model.TaskKindImage}, []string{"a"}},
		{"limit", repository.TaskFilter{Limit: 1}, []string{"c"}},
		{"offset past end", repository.TaskFilter{Offset: 10}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.RemoteID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPostStore_ClaimDueOnce(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore()
	now := time.Now()

	due, _ := store.Create(ctx, repository.ScheduledPost{Caption: "due", ScheduledTime: now.Add(-time.Minute)})
	_, _ = store.Create(ctx, repository.ScheduledPost{Caption: "later", ScheduledTime: now.Add(time.Hour)})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed []repository.ScheduledPost
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := store.ClaimDue(ctx, now, 10)
			assert.NoError(t, err)
			mu.Lock()
			claimed = append(claimed, items...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, claimed, 1)
	assert.Equal(t, due.ID, claimed[0].ID)
	assert.Equal(t, model.PostStatusPublishing, claimed[0].Status)
}

func TestPostStore_FinishOnlyFromPublishing(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore()

	p, _ := store.Create(ctx, repository.ScheduledPost{ScheduledTime: time.Now().Add(-time.Second)})

	// 未认领前不能直接完成
	ok, err := store.MarkPosted(ctx, p.ID, "https://x.com/i/web/status/1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	_, _ = store.ClaimDue(ctx, time.Now(), 10)
	ok, _ = store.MarkPosted(ctx, p.ID, "https://x.com/i/web/status/1", time.Now())
	assert.True(t, ok)

	// 已完成的条目不再变化
	ok, _ = store.MarkFailed(ctx, p.ID, "boom")
	assert.False(t, ok)

	got, _ := store.Get(ctx, p.ID)
	assert.Equal(t, model.PostStatusPosted, got.Status)
	assert.Empty(t, got.ErrorMessage)
	require.NotNil(t, got.PostedAt)
}

func TestPostStore_FailStale(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore()

	p, _ := store.Create(ctx, repository.ScheduledPost{ScheduledTime: time.Now().Add(-time.Hour)})
	_, _ = store.ClaimDue(ctx, time.Now(), 10)
	store.SetUpdatedAt(p.ID, time.Now().Add(-time.Hour))

	n, err := store.FailStale(ctx, time.Now().Add(-15*time.Minute), "publish interrupted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := store.Get(ctx, p.ID)
	assert.Equal(t, model.PostStatusFailed, got.Status)
	assert.Equal(t, "publish interrupted", got.ErrorMessage)
}

func TestBrandStore_UpsertByOwnerAndDomain(t *testing.T) {
	ctx := context.Background()
	store := NewBrandStore()

	first, err := store.Save(ctx, repository.Brand{UserID: 1, BrandName: "Nike", Domain: " Nike.com "})
	require.NoError(t, err)
	assert.Equal(t, "nike.com", first.Domain)

	second, err := store.Save(ctx, repository.Brand{
		UserID:    1,
		BrandName: "Nike Inc",
		Domain:    "nike.com",
		Colors:    []repository.BrandColor{{Hex: "#111111"}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Nike Inc", second.BrandName)
	assert.Len(t, second.Colors, 1)

	// 不同用户同域名是独立记录
	other, err := store.Save(ctx, repository.Brand{UserID: 2, BrandName: "Nike", Domain: "nike.com"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	latest, err := store.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)

	_, err = store.Latest(ctx, 3)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestBrandStore_Validation(t *testing.T) {
	store := NewBrandStore()

	_, err := store.Save(context.Background(), repository.Brand{Domain: "x.com"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = store.Save(context.Background(), repository.Brand{BrandName: "X"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestConversationStore(t *testing.T) {
	ctx := context.Background()
	store := NewConversationStore()

	_, err := store.Ensure(ctx, "conv_1", 1)
	require.NoError(t, err)

	// 其他用户不可见
	_, err = store.Ensure(ctx, "conv_1", 2)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	for _, content := range []string{"a", "b", "c"} {
		require.NoError(t, store.AppendMessage(ctx, repository.Message{ConversationID: "conv_1", Role: "user", Content: content}))
	}

	msgs, err := store.ListMessages(ctx, "conv_1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "b", msgs[0].Content)
	assert.Equal(t, "c", msgs[1].Content)

	require.NoError(t, store.LinkXAccount(ctx, "conv_1", "nike", "123"))
	c, _ := store.Get(ctx, "conv_1")
	assert.Equal(t, "nike", c.XUsername)
}

func TestUserStore_Conflict(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.Create(ctx, "alice", "hash")
	require.NoError(t, err)

	_, err = store.Create(ctx, "alice", "hash2")
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	u, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
}
