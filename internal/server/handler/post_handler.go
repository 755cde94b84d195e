package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/scheduler"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// PostScheduler 定时/立即发布
type PostScheduler interface {
	Schedule(ctx context.Context, userID uint64, req scheduler.PostRequest) (*repository.ScheduledPost, error)
	PostNow(ctx context.Context, userID uint64, req scheduler.PostRequest) (*repository.ScheduledPost, error)
	List(ctx context.Context, userID uint64, conversationID string) ([]repository.ScheduledPost, error)
}

// PostHandler 发布
type PostHandler struct {
	posts PostScheduler
}

func NewPostHandler(posts PostScheduler) *PostHandler {
	return &PostHandler{posts: posts}
}

// SchedulePost godoc
// @Summary 定时发布
// @Description 到点后由扫描器发布到 X；caption 不超过 280 字符
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SchedulePostRequest true "发布参数"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/schedule [post]
func (h *PostHandler) SchedulePost(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SchedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ConversationID != "" && !middleware.ValidateConversationID(req.ConversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	p, err := h.posts.Schedule(c.Request.Context(), uid, scheduler.PostRequest{
		ContentID:      req.ContentID,
		ConversationID: req.ConversationID,
		Caption:        req.Caption,
		ScheduledTime:  req.ScheduledTime,
		Platform:       req.Platform,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PostResponse{Post: *p})
}

// PostNow godoc
// @Summary 立即发布
// @Description 与扫描器走同一发布路径，返回最终状态的条目；发布失败时条目已标记 failed
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostNowRequest true "发布参数"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /posts/now [post]
func (h *PostHandler) PostNow(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PostNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ConversationID != "" && !middleware.ValidateConversationID(req.ConversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	p, err := h.posts.PostNow(c.Request.Context(), uid, scheduler.PostRequest{
		ContentID:      req.ContentID,
		ConversationID: req.ConversationID,
		Caption:        req.Caption,
	})
	if err != nil {
		respondPublishError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostResponse{Post: *p})
}

// ListConversationPosts godoc
// @Summary 对话下的发布条目
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param conversation_id path string true "对话 ID"
// @Success 200 {object} dto.PostListResponse
// @Router /posts/conversation/{conversation_id} [get]
func (h *PostHandler) ListConversationPosts(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversation_id")
	posts, err := h.posts.List(c.Request.Context(), uid, conversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostListResponse{Posts: posts, ConversationID: conversationID})
}
