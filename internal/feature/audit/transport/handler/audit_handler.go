// Package handler はauditフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_agent/internal/api"
	auditusecase "stock_agent/internal/feature/audit/usecase"
	indusecase "stock_agent/internal/feature/indicator/usecase"
	marketentity "stock_agent/internal/feature/market/domain/entity"
	marketusecase "stock_agent/internal/feature/market/usecase"
)

// HistoryUsecase は価格履歴取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
}

// AuditHandler はシグナルバックテストのHTTPリクエストを処理します。
type AuditHandler struct {
	history HistoryUsecase
}

// NewAuditHandler は指定されたusecaseでAuditHandlerの新しいインスタンスを生成します。
func NewAuditHandler(history HistoryUsecase) *AuditHandler {
	return &AuditHandler{history: history}
}

// GetAuditHandler は指定銘柄の過去データに対して売られ過ぎルールのバックテストを
// 実行し、シグナル記録と的中率を返します。シグナルが1件も無い場合は
// no_signals=true の正常なレスポンスとなります（エラーではありません）。
//
// エンドポイント例:
// GET /audit/:symbol?period=1y&threshold=35&horizon=5&smoothing=simple
func (h *AuditHandler) GetAuditHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := marketentity.ParsePeriod(c.DefaultQuery("period", "1y"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	cfg, err := parseAuditConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	series, err := h.history.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		writeAuditError(c, err)
		return
	}

	result, err := auditusecase.Run(series, cfg)
	if err != nil {
		if errors.Is(err, auditusecase.ErrInsufficientData) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseAuditConfig はクエリパラメータからバックテスト設定を組み立てます。
func parseAuditConfig(c *gin.Context) (auditusecase.Config, error) {
	cfg := auditusecase.DefaultConfig()
	if s := c.Query("threshold"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfg, errors.New("threshold must be a number")
		}
		cfg.Threshold = v
	}
	if s := c.Query("horizon"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, errors.New("horizon must be an integer")
		}
		cfg.Horizon = n
	}
	if s := c.Query("rsi"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, errors.New("rsi must be an integer")
		}
		cfg.RSI.RSIWindow = n
	}
	if s := c.Query("smoothing"); s != "" {
		cfg.RSI.RSISmoothing = indusecase.Smoothing(s)
	}
	return cfg, nil
}

// writeAuditError は履歴取得のエラーをHTTPステータスに対応付けます。
func writeAuditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, marketusecase.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, marketusecase.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	}
}
