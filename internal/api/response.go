// Package api はHTTPレスポンスの共有DTOを定義します。
package api

// ErrorResponse はエラー時のJSONレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// CandleResponse はローソク足1本分のJSON表現です。
type CandleResponse struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HeadlineResponse はニュース見出し1件分のJSON表現です。
type HeadlineResponse struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ResolutionResponse は名前解決結果のJSON表現です。
type ResolutionResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// AnalysisResponse はLLM分析結果のJSON表現です。
type AnalysisResponse struct {
	Symbol       string             `json:"symbol"`
	Period       string             `json:"period"`
	Signal       string             `json:"signal"`
	Headlines    []HeadlineResponse `json:"headlines"`
	LastClose    float64            `json:"last_close"`
	LastCloseJPY float64            `json:"last_close_jpy"`
	Rate         float64            `json:"rate"`
	GeneratedAt  string             `json:"generated_at"`
}

// AnalysisStateResponse はセッションに保存された直近の分析状態のJSON表現です。
type AnalysisStateResponse struct {
	Symbol    string  `json:"symbol"`
	Period    string  `json:"period"`
	Analysis  string  `json:"analysis"`
	Rate      float64 `json:"rate"`
	UpdatedAt string  `json:"updated_at"`
}
