// Package handler はindicatorフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_agent/internal/api"
	indentity "stock_agent/internal/feature/indicator/domain/entity"
	indusecase "stock_agent/internal/feature/indicator/usecase"
	marketentity "stock_agent/internal/feature/market/domain/entity"
	marketusecase "stock_agent/internal/feature/market/usecase"
)

// HistoryUsecase は価格履歴取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
}

// IndicatorHandler はテクニカル指標のHTTPリクエストを処理します。
type IndicatorHandler struct {
	history HistoryUsecase
}

// NewIndicatorHandler は指定されたusecaseでIndicatorHandlerの新しいインスタンスを生成します。
func NewIndicatorHandler(history HistoryUsecase) *IndicatorHandler {
	return &IndicatorHandler{history: history}
}

// indicatorRow は指標フレーム1行分のJSON表現です。未定義値はnullで出力されます。
type indicatorRow struct {
	Time  string             `json:"time"`
	Close float64            `json:"close"`
	SMA   indentity.OptFloat `json:"sma"`
	RSI   indentity.OptFloat `json:"rsi"`
}

// GetIndicatorsHandler は価格履歴を取得し、SMA・RSIの派生列付きでJSONを返します。
// ウォームアップ区間の未定義値はnullとして出力されます。
//
// エンドポイント例:
// GET /indicators/:symbol?period=3mo&sma=20&rsi=14&smoothing=simple
func (h *IndicatorHandler) GetIndicatorsHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := marketentity.ParsePeriod(c.DefaultQuery("period", ""))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	cfg, err := parseIndicatorConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	series, err := h.history.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		writeHistoryError(c, err)
		return
	}

	frame, err := indusecase.Compute(series, cfg)
	if err != nil {
		// 系列は非空を確認済みのため、ここでのエラーは設定値の問題
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]indicatorRow, 0, frame.Len())
	for i, cd := range frame.Candles {
		out = append(out, indicatorRow{
			Time:  cd.Time.UTC().Format("2006-01-02"),
			Close: cd.Close,
			SMA:   frame.SMA[i],
			RSI:   frame.RSI[i],
		})
	}
	c.JSON(http.StatusOK, out)
}

// parseIndicatorConfig はクエリパラメータから指標設定を組み立てます。
func parseIndicatorConfig(c *gin.Context) (indusecase.Config, error) {
	cfg := indusecase.DefaultConfig()
	if s := c.Query("sma"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, errors.New("sma must be an integer")
		}
		cfg.SMAWindow = n
	}
	if s := c.Query("rsi"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, errors.New("rsi must be an integer")
		}
		cfg.RSIWindow = n
	}
	if s := c.Query("smoothing"); s != "" {
		cfg.RSISmoothing = indusecase.Smoothing(s)
	}
	return cfg, nil
}

// writeHistoryError は履歴取得のエラーをHTTPステータスに対応付けます。
func writeHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, marketusecase.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, marketusecase.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	}
}
