// Package entity はindicatorフィーチャーのドメインモデルを定義します。
package entity

import (
	"encoding/json"

	marketentity "stock_agent/internal/feature/market/domain/entity"
)

// OptFloat は未定義になり得る数値を表します。ウォームアップ区間など
// 値が定義されない位置を、ゼロ値と区別して明示的に表現します。
// JSONでは未定義をnullとして出力します。
type OptFloat struct {
	Value float64
	Valid bool
}

// Some は定義済みのOptFloatを生成します。
func Some(v float64) OptFloat {
	return OptFloat{Value: v, Valid: true}
}

// None は未定義のOptFloatを返します。
func None() OptFloat {
	return OptFloat{}
}

// MarshalJSON は定義済みなら数値、未定義ならnullを出力します。
func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON はnullを未定義として読み込みます。
func (o *OptFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = OptFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = OptFloat{Value: v, Valid: true}
	return nil
}

// Frame は価格系列に派生列（トレンド平均・モメンタム指標）を加えたものです。
// SMAとRSIは元の系列と同じ長さで、各位置は末尾を含む後方ウィンドウのみから
// 計算されます（未来のバーは参照しません）。ウォームアップ区間は未定義です。
type Frame struct {
	Candles []marketentity.Candle
	SMA     []OptFloat
	RSI     []OptFloat
}

// Len は系列の長さを返します。
func (f *Frame) Len() int {
	return len(f.Candles)
}
