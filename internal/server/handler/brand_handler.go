package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// BrandHandler 品牌档案
type BrandHandler struct {
	brands repository.BrandRepository
	tasks  repository.TaskRepository
}

func NewBrandHandler(brands repository.BrandRepository, tasks repository.TaskRepository) *BrandHandler {
	return &BrandHandler{brands: brands, tasks: tasks}
}

// ownedBrand 品牌不存在或不属于当前用户都返回 NotFound
func ownedBrand(ctx context.Context, brands repository.BrandRepository, uid, id uint64) (*repository.Brand, error) {
	b, err := brands.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != uid {
		return nil, apperr.NotFound("brand")
	}
	return b, nil
}

// ListBrands godoc
// @Summary 当前用户的品牌
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BrandListResponse
// @Router /brands [get]
func (h *BrandHandler) ListBrands(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	brands, err := h.brands.List(c.Request.Context(), repository.BrandFilter{UserID: uid})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BrandListResponse{Brands: brands})
}

// LatestBrand godoc
// @Summary 当前用户最近更新的品牌
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repository.Brand
// @Failure 404 {object} dto.ErrorResponse
// @Router /brands/me [get]
func (h *BrandHandler) LatestBrand(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := h.brands.Latest(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SaveBrand godoc
// @Summary 手动保存品牌
// @Description 按 (conversation_id, domain) upsert，颜色与社交链接整体替换
// @Tags Brands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveBrandRequest true "品牌档案"
// @Success 200 {object} repository.Brand
// @Failure 400 {object} dto.ErrorResponse
// @Router /brands [post]
func (h *BrandHandler) SaveBrand(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SaveBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	b, err := h.brands.Save(c.Request.Context(), req.ToBrand(uid))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBrand godoc
// @Summary 品牌详情（含颜色与社交链接）
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Param brand_id path int true "品牌 ID"
// @Success 200 {object} repository.Brand
// @Failure 404 {object} dto.ErrorResponse
// @Router /brands/{brand_id} [get]
func (h *BrandHandler) GetBrand(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "brand_id")
	if !ok {
		return
	}
	b, err := ownedBrand(c.Request.Context(), h.brands, uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBrandByDomain godoc
// @Summary 按域名查询品牌
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Param domain path string true "域名" example(nike.com)
// @Success 200 {object} repository.Brand
// @Failure 404 {object} dto.ErrorResponse
// @Router /brands/domain/{domain} [get]
func (h *BrandHandler) GetBrandByDomain(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	domain := strings.ToLower(c.Param("domain"))
	brands, err := h.brands.List(c.Request.Context(), repository.BrandFilter{UserID: uid, Domain: domain, Limit: 1})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(brands) == 0 {
		respondError(c, apperr.NotFound("brand "+domain))
		return
	}
	c.JSON(http.StatusOK, brands[0])
}

// ListConversationBrands godoc
// @Summary 对话下的品牌
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Param conversation_id path string true "对话 ID"
// @Success 200 {object} dto.BrandListResponse
// @Router /brands/conversation/{conversation_id} [get]
func (h *BrandHandler) ListConversationBrands(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversation_id")
	brands, err := h.brands.List(c.Request.Context(), repository.BrandFilter{UserID: uid, ConversationID: conversationID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BrandListResponse{Brands: brands, ConversationID: conversationID})
}

// ListBrandContent godoc
// @Summary 品牌下的生成内容
// @Tags Brands
// @Produce json
// @Security BearerAuth
// @Param brand_id path int true "品牌 ID"
// @Success 200 {object} dto.ContentListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /brands/{brand_id}/content [get]
func (h *BrandHandler) ListBrandContent(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "brand_id")
	if !ok {
		return
	}
	if _, err := ownedBrand(c.Request.Context(), h.brands, uid, id); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.tasks.List(c.Request.Context(), repository.TaskFilter{UserID: uid, BrandID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContentListResponse{Content: items, BrandID: id})
}
