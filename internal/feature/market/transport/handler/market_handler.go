// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_agent/internal/api"
	"stock_agent/internal/feature/market/domain/entity"
	"stock_agent/internal/feature/market/usecase"
)

// MarketUsecase は市場データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error)
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]entity.Headline, error)
	Resolve(ctx context.Context, query string) (*entity.Resolution, error)
}

// MarketHandler は市場データのHTTPリクエストを処理します。
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetHistoryHandler は銘柄コードと取得ウィンドウを受け取り、価格履歴をJSONで返します。
//
// エンドポイント例:
// GET /history/:symbol?period=3mo
func (h *MarketHandler) GetHistoryHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := entity.ParsePeriod(c.DefaultQuery("period", ""))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	candles, err := h.uc.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		writeMarketError(c, err)
		return
	}

	out := make([]api.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.CandleResponse{
			Time:   x.Time.UTC().Format("2006-01-02"),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetHeadlinesHandler は銘柄に関連するニュース見出しをJSONで返します。
//
// エンドポイント例:
// GET /headlines/:symbol?limit=5
func (h *MarketHandler) GetHeadlinesHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	limitStr := c.DefaultQuery("limit", "5")
	limit, _ := strconv.Atoi(limitStr)

	heads, err := h.uc.GetHeadlines(c.Request.Context(), symbol, limit)
	if err != nil {
		writeMarketError(c, err)
		return
	}

	out := make([]api.HeadlineResponse, 0, len(heads))
	for _, x := range heads {
		out = append(out, api.HeadlineResponse{Title: x.Title, Link: x.Link})
	}
	c.JSON(http.StatusOK, out)
}

// ResolveHandler は自由入力テキストを銘柄コードに解決します。
// 銘柄が存在しない場合は404、外部サービスの一時的な障害は502を返します。
//
// エンドポイント例:
// GET /resolve?q=nvidia
func (h *MarketHandler) ResolveHandler(c *gin.Context) {
	query := c.Query("q")

	res, err := h.uc.Resolve(c.Request.Context(), query)
	if err != nil {
		writeMarketError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ResolutionResponse{
		Symbol:   res.Symbol,
		Name:     res.Name,
		Exchange: res.Exchange,
	})
}

// writeMarketError はユースケースのエラーをHTTPステータスに対応付けます。
// 入力エラーは400、銘柄・データなしは404、それ以外（上流障害）は502とします。
func writeMarketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrSymbolNotFound), errors.Is(err, usecase.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	}
}
