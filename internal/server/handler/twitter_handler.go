package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/publisher"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// Insights X 公开数据查询（TweetAPI）
type Insights interface {
	UserByUsername(ctx context.Context, username string) (json.RawMessage, error)
	UserTweets(ctx context.Context, userID string) (json.RawMessage, error)
}

// TwitterHandler X 账号关联与数据查询
type TwitterHandler struct {
	pub      publisher.Publisher
	convs    repository.ConversationRepository
	insights Insights
}

func NewTwitterHandler(pub publisher.Publisher, convs repository.ConversationRepository, insights Insights) *TwitterHandler {
	return &TwitterHandler{pub: pub, convs: convs, insights: insights}
}

// Connect godoc
// @Summary 验证 X 凭据并关联到对话
// @Tags Twitter
// @Produce json
// @Security BearerAuth
// @Param conversation_id query string false "对话 ID"
// @Success 200 {object} dto.TwitterConnectResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /twitter/connect [get]
func (h *TwitterHandler) Connect(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	conversationID := c.Query("conversation_id")
	if conversationID != "" && !middleware.ValidateConversationID(conversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	ctx := c.Request.Context()
	acct, err := h.pub.VerifyCredentials(ctx)
	if err != nil {
		respondPublishError(c, err)
		return
	}

	if conversationID != "" {
		if _, err := h.convs.Ensure(ctx, conversationID, uid); err != nil {
			respondError(c, err)
			return
		}
		if err := h.convs.LinkXAccount(ctx, conversationID, acct.Username, acct.UserID); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.TwitterConnectResponse{
		Success:  true,
		Username: acct.Username,
		Name:     acct.Name,
		UserID:   acct.UserID,
	})
}

// Connection godoc
// @Summary 对话关联的 X 账号
// @Tags Twitter
// @Produce json
// @Security BearerAuth
// @Param conversation_id query string true "对话 ID"
// @Success 200 {object} dto.TwitterConnectionResponse
// @Router /twitter/connection [get]
func (h *TwitterHandler) Connection(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	conversationID := c.Query("conversation_id")
	if !middleware.ValidateConversationID(conversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	conv, err := h.convs.Get(c.Request.Context(), conversationID)
	if err != nil || conv.UserID != uid || conv.XUsername == "" {
		c.JSON(http.StatusOK, dto.TwitterConnectionResponse{Connected: false})
		return
	}
	c.JSON(http.StatusOK, dto.TwitterConnectionResponse{
		Connected: true,
		Username:  conv.XUsername,
		UserID:    conv.XUserID,
	})
}

// UserInsights godoc
// @Summary 查询 X 用户资料
// @Description TweetAPI 原样透传
// @Tags Twitter
// @Produce json
// @Security BearerAuth
// @Param username query string true "X 用户名"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse
// @Router /twitter/user-insights [get]
func (h *TwitterHandler) UserInsights(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	raw, err := h.insights.UserByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// UserTweets godoc
// @Summary 查询 X 用户最近的帖子
// @Description TweetAPI 原样透传
// @Tags Twitter
// @Produce json
// @Security BearerAuth
// @Param user_id query string true "X 用户 ID"
// @Success 200 {object} map[string]interface{}
// @Router /twitter/user-tweets [get]
func (h *TwitterHandler) UserTweets(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	raw, err := h.insights.UserTweets(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
