package dto

// TwitterConnectResponse 验证 X 凭据的结果
type TwitterConnectResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty" example:"acme"`
	Name     string `json:"name,omitempty" example:"Acme Inc"`
	UserID   string `json:"user_id,omitempty" example:"1234567890"`
}

// TwitterConnectionResponse 对话关联的 X 账号
type TwitterConnectionResponse struct {
	Connected bool   `json:"connected"`
	Username  string `json:"username,omitempty" example:"acme"`
	UserID    string `json:"user_id,omitempty" example:"1234567890"`
}
