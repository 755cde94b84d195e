package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/repository/memory"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

func newBrandRouter(uid uint64, brands *memory.BrandStore, tasks *memory.TaskStore) *gin.Engine {
	h := NewBrandHandler(brands, tasks)
	r := newTestRouter(uid)
	r.GET("/brands", h.ListBrands)
	r.POST("/brands", h.SaveBrand)
	r.GET("/brands/me", h.LatestBrand)
	r.GET("/brands/domain/:domain", h.GetBrandByDomain)
	r.GET("/brands/conversation/:conversation_id", h.ListConversationBrands)
	r.GET("/brands/:brand_id", h.GetBrand)
	r.GET("/brands/:brand_id/content", h.ListBrandContent)
	return r
}

func seedBrand(t *testing.T, brands *memory.BrandStore, uid uint64, conv, domain string) *repository.Brand {
	t.Helper()
	b, err := brands.Save(context.Background(), repository.Brand{
		UserID:         uid,
		ConversationID: conv,
		BrandName:      "Acme",
		Domain:         domain,
		Colors:         []repository.BrandColor{{Name: "Orange", Hex: "#FF6B00"}},
	})
	require.NoError(t, err)
	return b
}

func TestBrandHandler_SaveAndGet(t *testing.T) {
	brands := memory.NewBrandStore()
	r := newBrandRouter(7, brands, memory.NewTaskStore())

	w := doJSON(r, http.MethodPost, "/brands", dto.SaveBrandRequest{
		ConversationID: "conv_1",
		BrandName:      "Nike",
		Domain:         "Nike.com",
		Colors:         []repository.BrandColor{{Name: "Black", Hex: "#000000"}},
		SocialLinks:    []repository.SocialLink{{Platform: "x", URL: "https://x.com/nike"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[repository.Brand](t, w)
	assert.Equal(t, uint64(7), saved.UserID)
	assert.Equal(t, "nike.com", saved.Domain)

	w = doJSON(r, http.MethodGet, "/brands/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[repository.Brand](t, w)
	assert.Equal(t, "Nike", got.BrandName)
	assert.Len(t, got.Colors, 1)
	assert.Len(t, got.SocialLinks, 1)

	// 同一对话同一域名再次保存是更新
	w = doJSON(r, http.MethodPost, "/brands", dto.SaveBrandRequest{ConversationID: "conv_1", BrandName: "Nike Inc", Domain: "nike.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, saved.ID, decode[repository.Brand](t, w).ID)
}

func TestBrandHandler_SaveValidation(t *testing.T) {
	r := newBrandRouter(7, memory.NewBrandStore(), memory.NewTaskStore())

	tests := []struct {
		name string
		body any
	}{
		{"missing name", map[string]any{"domain": "nike.com"}},
		{"missing domain", map[string]any{"brand_name": "Nike"}},
		{"blank name", map[string]any{"brand_name": "  ", "domain": "nike.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/brands", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBrandHandler_Ownership(t *testing.T) {
	brands := memory.NewBrandStore()
	seedBrand(t, brands, 1, "conv_a", "acme.com")
	r := newBrandRouter(2, brands, memory.NewTaskStore())

	for _, path := range []string{"/brands/1", "/brands/domain/acme.com", "/brands/1/content", "/brands/me"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	w := doJSON(r, http.MethodGet, "/brands", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.BrandListResponse](t, w).Brands)
}

func TestBrandHandler_Lookups(t *testing.T) {
	brands := memory.NewBrandStore()
	seedBrand(t, brands, 7, "conv_a", "acme.com")
	latest := seedBrand(t, brands, 7, "conv_b", "globex.com")
	r := newBrandRouter(7, brands, memory.NewTaskStore())

	w := doJSON(r, http.MethodGet, "/brands/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, latest.ID, decode[repository.Brand](t, w).ID)

	w = doJSON(r, http.MethodGet, "/brands/domain/ACME.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme.com", decode[repository.Brand](t, w).Domain)

	w = doJSON(r, http.MethodGet, "/brands/conversation/conv_b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.BrandListResponse](t, w)
	assert.Equal(t, "conv_b", list.ConversationID)
	require.Len(t, list.Brands, 1)
	assert.Equal(t, "globex.com", list.Brands[0].Domain)

	w = doJSON(r, http.MethodGet, "/brands", nil)
	assert.Len(t, decode[dto.BrandListResponse](t, w).Brands, 2)
}

func TestBrandHandler_Content(t *testing.T) {
	brands := memory.NewBrandStore()
	tasks := memory.NewTaskStore()
	b := seedBrand(t, brands, 7, "", "acme.com")
	ctx := context.Background()
	_, err := tasks.Create(ctx, repository.RemoteTask{RemoteID: "r1", Kind: model.TaskKindImage, UserID: 7, BrandID: b.ID})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, repository.RemoteTask{RemoteID: "r2", Kind: model.TaskKindImage, UserID: 7, BrandID: b.ID + 1})
	require.NoError(t, err)

	r := newBrandRouter(7, brands, tasks)
	w := doJSON(r, http.MethodGet, "/brands/1/content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.ContentListResponse](t, w)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "r1", resp.Content[0].RemoteID)

	w = doJSON(r, http.MethodGet, "/brands/abc/content", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
