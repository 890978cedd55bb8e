// Package entity はanalysisフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	marketentity "stock_agent/internal/feature/market/domain/entity"
)

// Analysis はLLMが生成したトレーディングシグナルの分析結果です。
type Analysis struct {
	Symbol       string
	Period       marketentity.Period
	Signal       string
	Headlines    []marketentity.Headline
	LastClose    float64
	LastCloseJPY float64
	Rate         float64
	GeneratedAt  time.Time
}

// SessionState は1セッションが排他的に所有する表示用の状態です。
// 直近に取得した価格系列・分析テキスト・為替レートを保持し、
// セッションをまたいで共有されることはありません。
// JSONタグはRedisに保存する際のシリアライズ形式を定義します。
type SessionState struct {
	Symbol    string                 `json:"symbol"`
	Period    marketentity.Period    `json:"period"`
	Series    []marketentity.Candle  `json:"series"`
	Analysis  string                 `json:"analysis"`
	Rate      float64                `json:"rate"`
	UpdatedAt time.Time              `json:"updated_at"`
}
