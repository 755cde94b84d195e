package dto

import (
	"time"

	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// SchedulePostRequest 定时发布请求
type SchedulePostRequest struct {
	ContentID      uint64    `json:"content_id" binding:"required" example:"12"`
	ConversationID string    `json:"conversation_id" example:"conv_3f2a9c0d1e4b5a67"`
	Caption        string    `json:"caption" example:"New drop is live 🔥"`
	ScheduledTime  time.Time `json:"scheduled_time" binding:"required" example:"2026-05-01T09:00:00Z"`
	Platform       string    `json:"platform" example:"twitter"`
}

// PostNowRequest 立即发布请求
type PostNowRequest struct {
	ContentID      uint64 `json:"content_id" binding:"required" example:"12"`
	ConversationID string `json:"conversation_id" example:"conv_3f2a9c0d1e4b5a67"`
	Caption        string `json:"caption" example:"New drop is live 🔥"`
}

// PostResponse 单个发布条目
type PostResponse struct {
	Post repository.ScheduledPost `json:"post"`
}

// PostListResponse 发布条目列表
type PostListResponse struct {
	Posts          []repository.ScheduledPost `json:"posts"`
	ConversationID string                     `json:"conversation_id"`
}
