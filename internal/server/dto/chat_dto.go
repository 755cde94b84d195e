package dto

// ChatRequest 对话请求
type ChatRequest struct {
	Message        string `json:"message" binding:"required" example:"nike.com"`
	ConversationID string `json:"conversation_id,omitempty" example:"conv_3f2a9c0d1e4b5a67"`
}

// ChatResponse 对话响应
type ChatResponse struct {
	Response       string  `json:"response"`
	ConversationID string  `json:"conversation_id" example:"conv_3f2a9c0d1e4b5a67"`
	BrandSynced    bool    `json:"brand_synced"`
	BrandID        *uint64 `json:"brand_id,omitempty" example:"1"`
}
