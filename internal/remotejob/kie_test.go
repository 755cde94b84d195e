package remotejob

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *KieClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewKieClient(srv.URL, "test-key", "google/nano-banana-edit", "veo3_fast")
}

func writeEnvelope(w http.ResponseWriter, code int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": msg, "data": data})
}

func TestKieClient_SubmitImage(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, imageCreatePath, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(w, 200, "success", map[string]any{"taskId": "task_123"})
	})

	h, err := c.Submit(context.Background(), model.TaskKindImage, Payload{
		Prompt:    "make it pop",
		ImageURLs: []string{"https://cdn/p.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, Handle{RemoteID: "task_123", Kind: model.TaskKindImage}, h)

	assert.Equal(t, "google/nano-banana-edit", got["model"])
	input := got["input"].(map[string]any)
	assert.Equal(t, "make it pop", input["prompt"])
	assert.Equal(t, "png", input["output_format"])
	assert.Equal(t, "1:1", input["image_size"])
}

func TestKieClient_SubmitVideo(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, videoCreatePath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(w, 200, "success", map[string]any{"taskId": "veo_1"})
	})

	h, err := c.Submit(context.Background(), model.TaskKindVideo, Payload{Prompt: "p", ImageURLs: []string{"https://x/y.png"}})
	require.NoError(t, err)
	assert.Equal(t, "veo_1", h.RemoteID)
	assert.Equal(t, "veo3_fast", got["model"])
	assert.Equal(t, "9:16", got["aspectRatio"])
	assert.Equal(t, videoGenerationMode, got["generationType"])
	assert.Equal(t, true, got["enableTranslation"])
}

func TestKieClient_SubmitErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind apperr.Kind
		wantCode int
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantKind: apperr.KindRemoteAPI,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "envelope code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, 402, "insufficient credits", nil)
			},
			wantKind: apperr.KindRemoteAPI,
			wantCode: http.StatusPaymentRequired,
		},
		{
			name: "missing task id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, 200, "success", map[string]any{})
			},
			wantKind: apperr.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Submit(context.Background(), model.TaskKindImage, Payload{Prompt: "p"})
			require.Error(t, err)

			var subErr *SubmissionError
			require.True(t, errors.As(err, &subErr))
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))

			if tt.wantCode != 0 {
				var ae *apperr.Error
				require.True(t, errors.As(err, &ae))
				assert.Equal(t, tt.wantCode, ae.Code)
			}
		})
	}
}

func TestKieClient_SubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewKieClient(srv.URL, "k", "", "")
	_, err := c.Submit(context.Background(), model.TaskKindImage, Payload{Prompt: "p"})

	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.True(t, errors.Is(err, apperr.ErrTransport))
	assert.True(t, apperr.Retryable(err))
}

func TestKieClient_PollImage(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		want    Outcome
		wantErr apperr.Kind
	}{
		{
			name: "waiting",
			data: map[string]any{"state": "waiting"},
			want: Pending(),
		},
		{
			name: "unknown state",
			data: map[string]any{"state": "somethingNew"},
			want: Pending(),
		},
		{
			name: "success with object resultJson",
			data: map[string]any{"state": "success", "resultJson": map[string]any{"resultUrls": []string{"https://x/y.png"}}},
			want: Succeeded("https://x/y.png"),
		},
		{
			name: "success with string resultJson",
			data: map[string]any{"state": "success", "resultJson": `{"resultUrls":["https://x/z.png"]}`},
			want: Succeeded("https://x/z.png"),
		},
		{
			name: "fail with code",
			data: map[string]any{"state": "fail", "failMsg": "bad prompt", "failCode": 42},
			want: Failed("[42] bad prompt"),
		},
		{
			name: "fail without code",
			data: map[string]any{"state": "fail"},
			want: Failed("[N/A] Unknown error"),
		},
		{
			name:    "success without urls",
			data:    map[string]any{"state": "success", "resultJson": `{"resultUrls":[]}`},
			wantErr: apperr.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, imageStatusPath, r.URL.Path)
				assert.Equal(t, "task_1", r.URL.Query().Get("taskId"))
				writeEnvelope(w, 200, "success", tt.data)
			})

			out, err := c.Poll(context.Background(), Handle{RemoteID: "task_1", Kind: model.TaskKindImage})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestKieClient_PollVideo(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		want    Outcome
		wantErr apperr.Kind
	}{
		{"generating", map[string]any{"successFlag": 0}, Pending(), ""},
		{"success", map[string]any{"successFlag": 1, "response": map[string]any{"resultUrls": []string{"https://v/1.mp4"}}}, Succeeded("https://v/1.mp4"), ""},
		{"failed with code", map[string]any{"successFlag": 2, "errorCode": 400, "errorMessage": "nsfw"}, Failed("[400] nsfw"), ""},
		{"generation failed", map[string]any{"successFlag": 3, "errorMessage": "timeout"}, Failed("timeout"), ""},
		{"success without urls", map[string]any{"successFlag": 1}, Outcome{}, apperr.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, videoStatusPath, r.URL.Path)
				writeEnvelope(w, 200, "success", tt.data)
			})

			out, err := c.Poll(context.Background(), Handle{RemoteID: "veo_1", Kind: model.TaskKindVideo})
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPollUntil(t *testing.T) {
	cfg := PollConfig{Interval: time.Millisecond, MaxAttempts: 5}

	t.Run("terminal after pending", func(t *testing.T) {
		var calls int32
		out, err := PollUntil(context.Background(), cfg, "image", func(context.Context) (Outcome, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return Pending(), nil
			}
			return Succeeded("https://x/y.png"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "https://x/y.png", out.ResultURL)
		assert.Equal(t, int32(3), calls)
	})

	t.Run("timeout after max attempts", func(t *testing.T) {
		var calls int32
		_, err := PollUntil(context.Background(), cfg, "image", func(context.Context) (Outcome, error) {
			atomic.AddInt32(&calls, 1)
			return Pending(), nil
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrTimeout))
		assert.Equal(t, int32(5), calls)
	})

	t.Run("failed is not a timeout", func(t *testing.T) {
		out, err := PollUntil(context.Background(), cfg, "image", func(context.Context) (Outcome, error) {
			return Failed("[42] bad prompt"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, StateFailed, out.State)
	})

	t.Run("error stops loop", func(t *testing.T) {
		boom := apperr.Transport("poll", errors.New("reset"))
		_, err := PollUntil(context.Background(), cfg, "image", func(context.Context) (Outcome, error) {
			return Outcome{}, boom
		})
		assert.Equal(t, boom, err)
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := PollUntil(ctx, PollConfig{Interval: time.Hour, MaxAttempts: 3}, "video", func(context.Context) (Outcome, error) {
			t.Fatal("should not poll")
			return Outcome{}, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
