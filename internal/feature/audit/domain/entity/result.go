// Package entity はauditフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	indentity "stock_agent/internal/feature/indicator/domain/entity"
)

// SignalRecord はバックテストで検出された1件のBUYシグナルの記録です。
// FutureCloseはシグナルからHセッション後の終値で、系列の末尾を超える
// 場合は未定義となり、的中率の分母から除外されます。
type SignalRecord struct {
	Time        time.Time           `json:"time"`
	Close       float64             `json:"close"`
	RSI         float64             `json:"rsi"`
	FutureClose indentity.OptFloat  `json:"future_close"`
	Hit         bool                `json:"hit"`
}

// Result はバックテストの集計結果です。
// シグナルが1件も無い場合はNoSignalsがtrueとなり、HitRateは未定義です
// （0%と区別されます）。
type Result struct {
	Signals   []SignalRecord     `json:"signals"`
	Evaluated int                `json:"evaluated"`
	Hits      int                `json:"hits"`
	HitRate   indentity.OptFloat `json:"hit_rate"`
	NoSignals bool               `json:"no_signals"`
}
