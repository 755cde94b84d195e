package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/agent"
	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// ChatHandler 对话
type ChatHandler struct {
	agent *agent.Agent
}

func NewChatHandler(a *agent.Agent) *ChatHandler {
	return &ChatHandler{agent: a}
}

// Chat godoc
// @Summary 与品牌助手对话
// @Description 识别品牌并保存品牌档案；不传 conversation_id 时新建对话
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "消息"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ConversationID != "" && !middleware.ValidateConversationID(req.ConversationID) {
		badRequest(c, "invalid conversation_id")
		return
	}

	reply, err := h.agent.Respond(c.Request.Context(), uid, req.ConversationID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ChatResponse{
		Response:       reply.Text,
		ConversationID: reply.ConversationID,
	}
	if reply.Brand != nil {
		id := reply.Brand.ID
		resp.BrandSynced = true
		resp.BrandID = &id
	}
	c.JSON(http.StatusOK, resp)
}
