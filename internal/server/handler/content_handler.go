package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/assets"
	"github.com/azhengyongqin/brandpilot/internal/generation"
	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/model"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// ContentGenerator 生成任务的提交与读取
type ContentGenerator interface {
	Submit(ctx context.Context, req generation.SubmitRequest) (*repository.RemoteTask, error)
	Status(ctx context.Context, id uint64) (*repository.RemoteTask, error)
	Wait(ctx context.Context, id uint64) (*repository.RemoteTask, error)
}

// ContentHandler 图片/视频生成
type ContentHandler struct {
	gen    ContentGenerator
	brands repository.BrandRepository
	tasks  repository.TaskRepository
	store  assets.Store
}

func NewContentHandler(gen ContentGenerator, brands repository.BrandRepository, tasks repository.TaskRepository, store assets.Store) *ContentHandler {
	return &ContentHandler{gen: gen, brands: brands, tasks: tasks, store: store}
}

// ownedContent 任务不存在或不属于当前用户都返回 NotFound
func ownedContent(ctx context.Context, tasks repository.TaskRepository, uid, id uint64) (*repository.RemoteTask, error) {
	t, err := tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != uid {
		return nil, apperr.NotFound("content")
	}
	return t, nil
}

// GenerateImage godoc
// @Summary 上传产品图并生成营销图片
// @Description 默认提交后立即返回 202；wait=true 时在请求内轮询直到终态，超出预算返回 504
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param brand_id formData int true "品牌 ID"
// @Param conversation_id formData string false "对话 ID"
// @Param product_image formData file true "产品图片（png/jpeg/webp/gif，≤10MB）"
// @Param wait formData bool false "是否等待生成完成"
// @Success 202 {object} dto.ContentResponse
// @Success 200 {object} dto.ContentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /content/image [post]
func (h *ContentHandler) GenerateImage(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	brandID, err := strconv.ParseUint(c.PostForm("brand_id"), 10, 64)
	if err != nil || brandID == 0 {
		badRequest(c, "brand_id must be a positive integer")
		return
	}
	conversationID := c.PostForm("conversation_id")
	if conversationID != "" && !middleware.ValidateConversationID(conversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	fh, err := c.FormFile("product_image")
	if err != nil {
		badRequest(c, "product_image is required")
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !assets.AllowedImage(contentType) {
		badRequest(c, "product_image must be a png, jpeg, webp or gif image")
		return
	}
	if fh.Size > assets.MaxUploadSize {
		badRequest(c, "product_image exceeds 10MB")
		return
	}

	ctx := c.Request.Context()
	brand, err := ownedBrand(ctx, h.brands, uid, brandID)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot read product_image")
		return
	}
	defer f.Close()

	imageURL, err := h.store.Save(ctx, fh.Filename, contentType, f)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.gen.Submit(ctx, generation.SubmitRequest{
		Kind:           model.TaskKindImage,
		Prompt:         generation.MarketingImagePrompt(*brand),
		ImageURLs:      []string{imageURL},
		Format:         "png",
		UserID:         uid,
		BrandID:        brand.ID,
		ConversationID: conversationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if wait, _ := strconv.ParseBool(c.PostForm("wait")); !wait {
		c.JSON(http.StatusAccepted, dto.ContentResponse{Content: *task})
		return
	}

	done, err := h.gen.Wait(ctx, task.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContentResponse{Content: *done})
}

// GenerateVideo godoc
// @Summary 生成营销视频
// @Description 源图取 image_url 或已完成图片内容的结果地址，两者都给时依次作为首尾帧
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VideoRequest true "视频生成参数"
// @Success 202 {object} dto.ContentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /content/video [post]
func (h *ContentHandler) GenerateVideo(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ConversationID != "" && !middleware.ValidateConversationID(req.ConversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	ctx := c.Request.Context()
	brand, err := ownedBrand(ctx, h.brands, uid, req.BrandID)
	if err != nil {
		respondError(c, err)
		return
	}

	var sources []string
	if req.ContentID != 0 {
		src, err := ownedContent(ctx, h.tasks, uid, req.ContentID)
		if err != nil {
			respondError(c, err)
			return
		}
		if src.Status != model.TaskStatusCompleted || src.ResultURL == "" {
			badRequest(c, "content is not completed yet")
			return
		}
		sources = append(sources, src.ResultURL)
	}
	if req.ImageURL != "" {
		sources = append(sources, req.ImageURL)
	}
	if len(sources) == 0 {
		badRequest(c, "image_url or content_id is required")
		return
	}

	task, err := h.gen.Submit(ctx, generation.SubmitRequest{
		Kind:           model.TaskKindVideo,
		Prompt:         generation.VideoPrompt(*brand),
		ImageURLs:      sources,
		UserID:         uid,
		BrandID:        brand.ID,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ContentResponse{Content: *task})
}

// GetContent godoc
// @Summary 查询生成内容状态
// @Description 非终态时查询一次远端并推进状态；终态直接返回，不再访问远端
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param content_id path int true "内容 ID"
// @Success 200 {object} dto.ContentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /content/{content_id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "content_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := ownedContent(ctx, h.tasks, uid, id); err != nil {
		respondError(c, err)
		return
	}
	task, err := h.gen.Status(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContentResponse{Content: *task})
}

// ListConversationContent godoc
// @Summary 对话下的生成内容
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param conversation_id path string true "对话 ID"
// @Success 200 {object} dto.ContentListResponse
// @Router /content/conversation/{conversation_id} [get]
func (h *ContentHandler) ListConversationContent(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversation_id")
	items, err := h.tasks.List(c.Request.Context(), repository.TaskFilter{UserID: uid, ConversationID: conversationID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContentListResponse{Content: items, ConversationID: conversationID})
}
