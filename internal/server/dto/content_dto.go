package dto

import "github.com/azhengyongqin/brandpilot/internal/repository"

// VideoRequest 视频生成请求；image_url 与 content_id 至少提供一个
type VideoRequest struct {
	BrandID        uint64 `json:"brand_id" binding:"required" example:"1"`
	ImageURL       string `json:"image_url,omitempty" example:"https://cdn.example.com/product.png"`
	ContentID      uint64 `json:"content_id,omitempty" example:"12"`
	ConversationID string `json:"conversation_id,omitempty" example:"conv_3f2a9c0d1e4b5a67"`
}

// ContentResponse 生成内容（任务）详情
type ContentResponse struct {
	Content repository.RemoteTask `json:"content"`
}

// ContentListResponse 生成内容列表
type ContentListResponse struct {
	Content        []repository.RemoteTask `json:"content"`
	BrandID        uint64                  `json:"brand_id,omitempty"`
	ConversationID string                  `json:"conversation_id,omitempty"`
}

// CaptionRequest 文案生成请求
type CaptionRequest struct {
	ContentID uint64 `json:"content_id" binding:"required" example:"12"`
	BrandID   uint64 `json:"brand_id" binding:"required" example:"1"`
}

// CaptionResponse 文案
type CaptionResponse struct {
	Caption string `json:"caption" example:"Step into your best run yet 🏃‍♀️✨"`
}
