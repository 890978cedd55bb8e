// Package usecase はRSIの売られ過ぎルールを過去データに対して検証する
// バックテストロジックを実装します。
package usecase

import (
	"errors"
	"fmt"

	"stock_agent/internal/feature/audit/domain/entity"
	indentity "stock_agent/internal/feature/indicator/domain/entity"
	indusecase "stock_agent/internal/feature/indicator/usecase"
	marketentity "stock_agent/internal/feature/market/domain/entity"
)

const (
	// DefaultThreshold はBUYシグナルとみなすRSIの閾値です。
	DefaultThreshold = 35.0
	// DefaultHorizon はシグナルの成否を判定する先読みセッション数です。
	DefaultHorizon = 5
)

var (
	// ErrInsufficientData は入力系列が空でバックテストを実行できないことを示します。
	ErrInsufficientData = errors.New("insufficient data for audit")
)

// Config はバックテストのパラメータです。RSIの計算方式（ウィンドウ幅・
// 平滑化方式）はそのままindicator側の設定を使用します。
type Config struct {
	Threshold float64
	Horizon   int
	RSI       indusecase.Config
}

// DefaultConfig はデフォルトのバックテストパラメータ（閾値35 / 5セッション先読み）を返します。
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Horizon:   DefaultHorizon,
		RSI:       indusecase.DefaultConfig(),
	}
}

// Run は「RSIが閾値を下回ったらBUY」という機械的ルールを過去の価格系列に
// 適用し、各シグナルのHセッション後の実現リターンから経験的な的中率を集計します。
//
// RSIが定義されている各バーiについて、RSI[i] < threshold ならBUYシグナルと
// みなし、close[i+H] > close[i] を的中と判定します。i+H が系列の範囲外となる
// シグナルは結果に記録されますが、的中率の分母には含まれません。
//
// 入力系列は変更されず、同じ入力とパラメータに対して常に同じ結果を返します。
func Run(series []marketentity.Candle, cfg Config) (*entity.Result, error) {
	if len(series) == 0 {
		return nil, ErrInsufficientData
	}
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", cfg.Horizon)
	}

	frame, err := indusecase.Compute(series, cfg.RSI)
	if err != nil {
		return nil, fmt.Errorf("compute rsi: %w", err)
	}

	result := &entity.Result{Signals: []entity.SignalRecord{}}
	for i := range series {
		if !frame.RSI[i].Valid || frame.RSI[i].Value >= cfg.Threshold {
			continue // WAIT
		}

		rec := entity.SignalRecord{
			Time:  series[i].Time,
			Close: series[i].Close,
			RSI:   frame.RSI[i].Value,
		}
		if j := i + cfg.Horizon; j < len(series) {
			rec.FutureClose = indentity.Some(series[j].Close)
			rec.Hit = series[j].Close > series[i].Close
			result.Evaluated++
			if rec.Hit {
				result.Hits++
			}
		}
		result.Signals = append(result.Signals, rec)
	}

	if len(result.Signals) == 0 {
		result.NoSignals = true
		return result, nil
	}
	// 的中率は判定可能なシグナルのみで算出する（ゼロ除算を避ける）
	if result.Evaluated > 0 {
		result.HitRate = indentity.Some(100.0 * float64(result.Hits) / float64(result.Evaluated))
	}
	return result, nil
}
