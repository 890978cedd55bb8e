package api

// LoginRequest は/loginエンドポイントのリクエストボディです。
type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse はログイン成功時のJSONレスポンスボディです。
type TokenResponse struct {
	Token string `json:"token"`
}
