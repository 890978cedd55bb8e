// Package usecase は価格系列からテクニカル指標を導出する純粋な計算ロジックを実装します。
package usecase

import (
	"errors"
	"fmt"

	"stock_agent/internal/feature/indicator/domain/entity"
	marketentity "stock_agent/internal/feature/market/domain/entity"
)

const (
	// DefaultSMAWindow はトレンド平均（単純移動平均）のデフォルトウィンドウ幅です。
	DefaultSMAWindow = 20
	// DefaultRSIWindow はモメンタム指標（RSI）のデフォルトウィンドウ幅です。
	DefaultRSIWindow = 14
)

// Smoothing はRSIの平滑化方式を表す列挙型です。
type Smoothing string

const (
	// SmoothingSimple はゲイン・ロスの単純移動平均によるRSIです。
	SmoothingSimple Smoothing = "simple"
	// SmoothingWilder は最初のウィンドウ平均をシードとし、以降を
	// α = 1/(com+1)（com = ウィンドウ幅-1）の指数平滑で更新するRSIです。
	SmoothingWilder Smoothing = "wilder"
)

var (
	// ErrNoData は入力系列が空であることを示します。
	ErrNoData = errors.New("empty price series")
)

// Config は指標計算のパラメータです。
type Config struct {
	SMAWindow    int
	RSIWindow    int
	RSISmoothing Smoothing
}

// DefaultConfig はデフォルトの指標計算パラメータ（SMA 20 / RSI 14 / simple）を返します。
func DefaultConfig() Config {
	return Config{
		SMAWindow:    DefaultSMAWindow,
		RSIWindow:    DefaultRSIWindow,
		RSISmoothing: SmoothingSimple,
	}
}

// validate は設定値の妥当性を検証します。
func (c Config) validate() error {
	if c.SMAWindow <= 0 {
		return fmt.Errorf("sma window must be positive, got %d", c.SMAWindow)
	}
	if c.RSIWindow <= 0 {
		return fmt.Errorf("rsi window must be positive, got %d", c.RSIWindow)
	}
	switch c.RSISmoothing {
	case SmoothingSimple, SmoothingWilder:
		return nil
	default:
		return fmt.Errorf("unknown rsi smoothing %q", c.RSISmoothing)
	}
}

// Compute は価格系列からFrame（SMA・RSIの派生列付き）を計算します。
// 入力系列は変更されません。同じ入力と設定に対して常に同じ結果を返します。
// ウォームアップ区間（ウィンドウ幅に満たない先頭部分）は未定義としてマークされます。
func Compute(series []marketentity.Candle, cfg Config) (*entity.Frame, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	closes := make([]float64, len(series))
	for i, c := range series {
		closes[i] = c.Close
	}

	frame := &entity.Frame{
		Candles: series,
		SMA:     rollingMean(closes, cfg.SMAWindow),
		RSI:     computeRSI(closes, cfg.RSIWindow, cfg.RSISmoothing),
	}
	return frame, nil
}

// rollingMean は末尾を含む後方ウィンドウの算術平均を返します。
// インデックスi < window-1 の位置は未定義です。
func rollingMean(values []float64, window int) []entity.OptFloat {
	out := make([]entity.OptFloat, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = entity.Some(sum / float64(window))
		}
	}
	return out
}

// computeRSI は終値の前日比からRSI列を計算します。
// 変化量はi=1から定義されるため、RSIはウィンドウ幅分の変化量が
// 揃うインデックスwindow以降でのみ定義されます。
func computeRSI(closes []float64, window int, smoothing Smoothing) []entity.OptFloat {
	n := len(closes)
	out := make([]entity.OptFloat, n)
	if n <= window {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	switch smoothing {
	case SmoothingWilder:
		// 最初のウィンドウの平均をシードにして以降を指数平滑で更新する。
		// α = 1/(com+1)、com = window-1 なので α = 1/window。
		var avgGain, avgLoss float64
		for i := 1; i <= window; i++ {
			avgGain += gains[i]
			avgLoss += losses[i]
		}
		avgGain /= float64(window)
		avgLoss /= float64(window)
		out[window] = entity.Some(rsiFromAverages(avgGain, avgLoss))

		alpha := 1.0 / float64(window)
		for i := window + 1; i < n; i++ {
			avgGain = avgGain*(1-alpha) + gains[i]*alpha
			avgLoss = avgLoss*(1-alpha) + losses[i]*alpha
			out[i] = entity.Some(rsiFromAverages(avgGain, avgLoss))
		}
	default: // SmoothingSimple
		var sumGain, sumLoss float64
		for i := 1; i < n; i++ {
			sumGain += gains[i]
			sumLoss += losses[i]
			if i > window {
				sumGain -= gains[i-window]
				sumLoss -= losses[i-window]
			}
			if i >= window {
				out[i] = entity.Some(rsiFromAverages(sumGain/float64(window), sumLoss/float64(window)))
			}
		}
	}
	return out
}

// rsiFromAverages は平均ゲインと平均ロスからRSI値を導出します。
// 平均ロスが0かつ平均ゲインが正の場合はRSI=100（NaNにしない）。
// 両方0（ウィンドウ全体で価格が不変）の場合は中立値50を採用します。
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
