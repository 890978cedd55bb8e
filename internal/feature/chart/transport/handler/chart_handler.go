// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
// go-echartsでローソク足・SMA・RSIを描画したHTMLページを返します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"stock_agent/internal/api"
	indentity "stock_agent/internal/feature/indicator/domain/entity"
	indusecase "stock_agent/internal/feature/indicator/usecase"
	marketentity "stock_agent/internal/feature/market/domain/entity"
	marketusecase "stock_agent/internal/feature/market/usecase"
)

// HistoryUsecase は価格履歴取得のユースケースインターフェースを定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
}

// ChartHandler はチャート描画のHTTPリクエストを処理します。
type ChartHandler struct {
	history HistoryUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(history HistoryUsecase) *ChartHandler {
	return &ChartHandler{history: history}
}

// GetChartHandler はローソク足にSMAを重ね、RSIを下段に並べたHTMLページを返します。
//
// エンドポイント例:
// GET /chart/:symbol?period=6mo&sma=20&rsi=14
func (h *ChartHandler) GetChartHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := marketentity.ParsePeriod(c.DefaultQuery("period", "6mo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	cfg, err := parseChartConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	series, err := h.history.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		writeChartError(c, err)
		return
	}

	frame, err := indusecase.Compute(series, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := renderKline(&buf, symbol, frame); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := renderRSI(&buf, frame, cfg.RSIWindow); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// parseChartConfig はクエリパラメータから指標設定を組み立てます。
func parseChartConfig(c *gin.Context) (indusecase.Config, error) {
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

// renderKline はローソク足チャートにSMAの折れ線を重ねて描画します。
// 未定義のSMA値はシンボルサイズ0のダミー点として描画から除外します。
func renderKline(buf *bytes.Buffer, symbol string, frame *indentity.Frame) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "1280px",
			Height:    "600px",
			PageTitle: symbol,
			Theme:     types.ThemeInfographic,
		}),
		charts.WithTitleOpts(opts.Title{Title: symbol}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
			Type:       "inside",
		}),
	)

	x := make([]string, 0, frame.Len())
	klineY := make([]opts.KlineData, 0, frame.Len())
	smaY := make([]opts.LineData, 0, frame.Len())
	for i, cd := range frame.Candles {
		x = append(x, cd.Time.UTC().Format("2006-01-02"))
		klineY = append(klineY, opts.KlineData{Value: []float64{cd.Open, cd.Close, cd.Low, cd.High}})
		if frame.SMA[i].Valid {
			smaY = append(smaY, opts.LineData{Value: frame.SMA[i].Value})
		} else {
			smaY = append(smaY, opts.LineData{SymbolSize: 0})
		}
	}

	kline.SetXAxis(x).
		AddSeries("Price", klineY).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        "#00DA3C",
				Color0:       "#EC0000",
				BorderColor:  "#008F28",
				BorderColor0: "#8A0000",
			}),
		)

	sma := charts.NewLine()
	sma.SetGlobalOptions(
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
	)
	sma.SetXAxis(x).AddSeries("SMA", smaY)
	kline.Overlap(sma)

	return kline.Render(buf)
}

// renderRSI はRSIの折れ線チャートを描画します。
func renderRSI(buf *bytes.Buffer, frame *indentity.Frame, window int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1280px",
			Height: "300px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "RSI " + strconv.Itoa(window)}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
			Type:       "inside",
		}),
	)

	x := make([]string, 0, frame.Len())
	rsiY := make([]opts.LineData, 0, frame.Len())
	for i, cd := range frame.Candles {
		x = append(x, cd.Time.UTC().Format("2006-01-02"))
		if frame.RSI[i].Valid {
			rsiY = append(rsiY, opts.LineData{Value: frame.RSI[i].Value})
		} else {
			rsiY = append(rsiY, opts.LineData{SymbolSize: 0})
		}
	}

	line.SetXAxis(x).AddSeries("RSI", rsiY)
	return line.Render(buf)
}

// writeChartError は履歴取得のエラーをHTTPステータスに対応付けます。
func writeChartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, marketusecase.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, marketusecase.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	}
}
