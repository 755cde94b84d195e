package asynqx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

type fakeRefresher struct {
	done bool
	err  error
	ids  []uint64
}

func (f *fakeRefresher) Refresh(_ context.Context, id uint64) (bool, error) {
	f.ids = append(f.ids, id)
	return f.done, f.err
}

type fakeRequeuer struct {
	payloads []RefreshPayload
}

func (f *fakeRequeuer) Requeue(_ context.Context, p RefreshPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

func mustTask(t *testing.T, p RefreshPayload) *asynq.Task {
	t.Helper()
	task, err := NewRefreshTask(p)
	require.NoError(t, err)
	return task
}

func TestRefreshHandler(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	base := RefreshPayload{TaskID: 7, Attempt: 1, Interval: 2 * time.Second, Deadline: now.Add(time.Minute)}

	tests := []struct {
		name        string
		refresher   *fakeRefresher
		payload     RefreshPayload
		wantRequeue bool
	}{
		{"terminal stops", &fakeRefresher{done: true}, base, false},
		{"not found stops", &fakeRefresher{done: true, err: apperr.NotFound("task")}, base, false},
		{"pending requeues", &fakeRefresher{}, base, true},
		{"transport error still requeues", &fakeRefresher{err: apperr.Transport("kie", errors.New("reset"))}, base, true},
		{"deadline passed stops", &fakeRefresher{}, RefreshPayload{TaskID: 7, Attempt: 30, Deadline: now.Add(-time.Second)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := &fakeRequeuer{}
			h := NewRefreshHandler(tt.refresher, rq)
			h.now = func() time.Time { return now }

			err := h.ProcessTask(context.Background(), mustTask(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, []uint64{7}, tt.refresher.ids)

			if tt.wantRequeue {
				require.Len(t, rq.payloads, 1)
				assert.Equal(t, tt.payload.Attempt+1, rq.payloads[0].Attempt)
				assert.Equal(t, tt.payload.Interval, rq.payloads[0].Interval)
			} else {
				assert.Empty(t, rq.payloads)
			}
		})
	}
}

func TestRefreshHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewRefreshHandler(&fakeRefresher{}, &fakeRequeuer{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeGenerationRefresh, []byte(`{"task_id":0}`)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestEnqueueOptionsAndKey(t *testing.T) {
	p := RefreshPayload{TaskID: 3, Attempt: 2}
	assert.Equal(t, "generation-refresh-3-2", RefreshTaskKey(p))

	opts := EnqueueOptions(EnqueueParams{TaskKey: "k", Queue: QueueGeneration, Delay: time.Second, Timeout: time.Second})
	assert.Len(t, opts, 5)
}

func TestNewRedisConnOpt(t *testing.T) {
	opt, err := NewRedisConnOpt("redis://:secret@localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opt.Addr)
	assert.Equal(t, 2, opt.DB)
	assert.Equal(t, "secret", opt.Password)

	_, err = NewRedisConnOpt("http://nope")
	assert.Error(t, err)
}
