package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// CaptionGenerator 文案生成
type CaptionGenerator interface {
	Generate(ctx context.Context, brand repository.Brand) (string, error)
}

// CaptionHandler 帖子文案
type CaptionHandler struct {
	captions CaptionGenerator
	brands   repository.BrandRepository
	tasks    repository.TaskRepository
}

func NewCaptionHandler(captions CaptionGenerator, brands repository.BrandRepository, tasks repository.TaskRepository) *CaptionHandler {
	return &CaptionHandler{captions: captions, brands: brands, tasks: tasks}
}

// GenerateCaption godoc
// @Summary 为生成内容撰写 X 文案
// @Description 文案不含 hashtag，长度不超过 280 字符
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CaptionRequest true "内容与品牌"
// @Success 200 {object} dto.CaptionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /captions [post]
func (h *CaptionHandler) GenerateCaption(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := ownedContent(ctx, h.tasks, uid, req.ContentID); err != nil {
		respondError(c, err)
		return
	}
	brand, err := ownedBrand(ctx, h.brands, uid, req.BrandID)
	if err != nil {
		respondError(c, err)
		return
	}

	text, err := h.captions.Generate(ctx, *brand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CaptionResponse{Caption: text})
}
