package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/generation"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/repository/memory"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// fakeGenerator 直接写入内存注册表，不访问远端
type fakeGenerator struct {
	mu       sync.Mutex
	tasks    *memory.TaskStore
	requests []generation.SubmitRequest
	statuses int
	waitErr  error
}

func (f *fakeGenerator) Submit(ctx context.Context, req generation.SubmitRequest) (*repository.RemoteTask, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	n := len(f.requests)
	f.mu.Unlock()
	return f.tasks.Create(ctx, repository.RemoteTask{
		RemoteID:       fmt.Sprintf("remote_%d", n),
		Kind:           req.Kind,
		Payload:        repository.TaskPayload{Prompt: req.Prompt, ImageURLs: req.ImageURLs, Format: req.Format},
		UserID:         req.UserID,
		BrandID:        req.BrandID,
		ConversationID: req.ConversationID,
	})
}

func (f *fakeGenerator) Status(ctx context.Context, id uint64) (*repository.RemoteTask, error) {
	f.mu.Lock()
	f.statuses++
	f.mu.Unlock()
	return f.tasks.Get(ctx, id)
}

func (f *fakeGenerator) Wait(ctx context.Context, id uint64) (*repository.RemoteTask, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	if _, err := f.tasks.UpdateStatus(ctx, id, model.TaskStatusCompleted, "https://cdn/out.png", ""); err != nil {
		return nil, err
	}
	return f.tasks.Get(ctx, id)
}

// memStore 记录上传的素材
type memStore struct {
	saved map[string][]byte
}

func (s *memStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[filename] = b
	return "https://assets.test/" + filename, nil
}

type contentFixture struct {
	brands *memory.BrandStore
	tasks  *memory.TaskStore
	gen    *fakeGenerator
	store  *memStore
	router *gin.Engine
	brand  *repository.Brand
}

func newContentFixture(t *testing.T, uid uint64) *contentFixture {
	f := &contentFixture{
		brands: memory.NewBrandStore(),
		tasks:  memory.NewTaskStore(),
		store:  &memStore{},
	}
	f.gen = &fakeGenerator{tasks: f.tasks}
	f.brand = seedBrand(t, f.brands, 7, "conv_a", "acme.com")

	h := NewContentHandler(f.gen, f.brands, f.tasks, f.store)
	f.router = newTestRouter(uid)
	f.router.POST("/content/image", h.GenerateImage)
	f.router.POST("/content/video", h.GenerateVideo)
	f.router.GET("/content/conversation/:conversation_id", h.ListConversationContent)
	f.router.GET("/content/:content_id", h.GetContent)
	return f
}

type imageForm struct {
	brandID     string
	contentType string
	wait        string
	noFile      bool
}

func postImage(r http.Handler, form imageForm) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("brand_id", form.brandID)
	_ = mw.WriteField("conversation_id", "conv_a")
	if form.wait != "" {
		_ = mw.WriteField("wait", form.wait)
	}
	if !form.noFile {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="product_image"; filename="shoe.png"`)
		h.Set("Content-Type", form.contentType)
		part, _ := mw.CreatePart(h)
		_, _ = part.Write([]byte("pngdata"))
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/content/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContentHandler_GenerateImage(t *testing.T) {
	f := newContentFixture(t, 7)

	w := postImage(f.router, imageForm{brandID: "1", contentType: "image/png"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	resp := decode[dto.ContentResponse](t, w)
	assert.Equal(t, model.TaskStatusPending, resp.Content.Status)
	assert.Equal(t, "conv_a", resp.Content.ConversationID)
	assert.Equal(t, []byte("pngdata"), f.store.saved["shoe.png"])

	require.Len(t, f.gen.requests, 1)
	req := f.gen.requests[0]
	assert.Equal(t, model.TaskKindImage, req.Kind)
	assert.Equal(t, []string{"https://assets.test/shoe.png"}, req.ImageURLs)
	assert.Equal(t, "png", req.Format)
	assert.Contains(t, req.Prompt, "Acme")
}

func TestContentHandler_GenerateImageWait(t *testing.T) {
	f := newContentFixture(t, 7)
	w := postImage(f.router, imageForm{brandID: "1", contentType: "image/png", wait: "true"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.ContentResponse](t, w)
	assert.Equal(t, model.TaskStatusCompleted, resp.Content.Status)
	assert.Equal(t, "https://cdn/out.png", resp.Content.ResultURL)

	f.gen.waitErr = apperr.Timeout("wait image", 30, 0)
	w = postImage(f.router, imageForm{brandID: "1", contentType: "image/png", wait: "true"})
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.True(t, decode[dto.ErrorResponse](t, w).Retryable)
}

func TestContentHandler_GenerateImageRejects(t *testing.T) {
	tests := []struct {
		name   string
		uid    uint64
		form   imageForm
		status int
	}{
		{"bad brand id", 7, imageForm{brandID: "x", contentType: "image/png"}, http.StatusBadRequest},
		{"missing file", 7, imageForm{brandID: "1", noFile: true}, http.StatusBadRequest},
		{"not an image", 7, imageForm{brandID: "1", contentType: "application/pdf"}, http.StatusBadRequest},
		{"unknown brand", 7, imageForm{brandID: "9", contentType: "image/png"}, http.StatusNotFound},
		{"foreign brand", 8, imageForm{brandID: "1", contentType: "image/png"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContentFixture(t, tt.uid)
			w := postImage(f.router, tt.form)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Empty(t, f.gen.requests)
			assert.Empty(t, f.store.saved)
		})
	}
}

func TestContentHandler_GenerateVideo(t *testing.T) {
	f := newContentFixture(t, 7)
	ctx := context.Background()
	img, err := f.tasks.Create(ctx, repository.RemoteTask{RemoteID: "img", Kind: model.TaskKindImage, UserID: 7})
	require.NoError(t, err)

	// 图片尚未完成
	w := doJSON(f.router, http.MethodPost, "/content/video", dto.VideoRequest{BrandID: 1, ContentID: img.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err = f.tasks.UpdateStatus(ctx, img.ID, model.TaskStatusCompleted, "https://cdn/img.png", "")
	require.NoError(t, err)

	w = doJSON(f.router, http.MethodPost, "/content/video", dto.VideoRequest{
		BrandID:   1,
		ContentID: img.ID,
		ImageURL:  "https://cdn/extra.png",
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	require.Len(t, f.gen.requests, 1)
	req := f.gen.requests[0]
	assert.Equal(t, model.TaskKindVideo, req.Kind)
	assert.Equal(t, []string{"https://cdn/img.png", "https://cdn/extra.png"}, req.ImageURLs)
	assert.Equal(t, uint64(1), req.BrandID)
}

func TestContentHandler_GenerateVideoRejects(t *testing.T) {
	f := newContentFixture(t, 7)
	foreign, err := f.tasks.Create(context.Background(), repository.RemoteTask{
		RemoteID: "other", Kind: model.TaskKindImage, UserID: 8, Status: model.TaskStatusCompleted, ResultURL: "https://cdn/o.png",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"no source", dto.VideoRequest{BrandID: 1}, http.StatusBadRequest},
		{"missing brand", map[string]any{"image_url": "https://cdn/a.png"}, http.StatusBadRequest},
		{"bad conversation", dto.VideoRequest{BrandID: 1, ImageURL: "https://cdn/a.png", ConversationID: "bad id!"}, http.StatusBadRequest},
		{"foreign content", dto.VideoRequest{BrandID: 1, ContentID: foreign.ID}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(f.router, http.MethodPost, "/content/video", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, f.gen.requests)
}

func TestContentHandler_GetAndList(t *testing.T) {
	f := newContentFixture(t, 7)
	ctx := context.Background()
	mine, err := f.tasks.Create(ctx, repository.RemoteTask{RemoteID: "a", Kind: model.TaskKindImage, UserID: 7, ConversationID: "conv_a"})
	require.NoError(t, err)
	theirs, err := f.tasks.Create(ctx, repository.RemoteTask{RemoteID: "b", Kind: model.TaskKindImage, UserID: 8, ConversationID: "conv_a"})
	require.NoError(t, err)

	w := doJSON(f.router, http.MethodGet, fmt.Sprintf("/content/%d", mine.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a", decode[dto.ContentResponse](t, w).Content.RemoteID)

	w = doJSON(f.router, http.MethodGet, fmt.Sprintf("/content/%d", theirs.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, f.gen.statuses)

	w = doJSON(f.router, http.MethodGet, "/content/conversation/conv_a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ContentListResponse](t, w)
	require.Len(t, list.Content, 1)
	assert.Equal(t, mine.ID, list.Content[0].ID)
}
