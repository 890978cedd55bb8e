// Package entity はmarketフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Candle は1取引セッション分の四本値（OHLCV）を表します。
// Time は取引セッションのタイムスタンプで、系列内では昇順・一意です。
// 週末・祝日による日付の飛びは正常なデータとして扱います。
type Candle struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Headline は銘柄に関連するニュース見出しを表します。
type Headline struct {
	Title string
	Link  string
}
