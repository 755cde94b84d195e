package dto

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error     string `json:"error" example:"brand not found"`
	Code      string `json:"code,omitempty" example:"not_found"`
	Retryable bool   `json:"retryable,omitempty" example:"false"`
}

// SuccessResponse 通用成功响应
type SuccessResponse struct {
	Status  string      `json:"status" example:"ok"`
	Message string      `json:"message,omitempty" example:"操作成功"`
	Data    interface{} `json:"data,omitempty"`
}
