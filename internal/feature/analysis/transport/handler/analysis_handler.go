// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_agent/internal/api"
	"stock_agent/internal/feature/analysis/domain/entity"
	"stock_agent/internal/feature/analysis/usecase"
	marketentity "stock_agent/internal/feature/market/domain/entity"
	marketusecase "stock_agent/internal/feature/market/usecase"
	jwtmw "stock_agent/internal/platform/jwt"
)

// AnalysisUsecase は分析操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, sessionID, symbol string, period marketentity.Period) (*entity.Analysis, error)
	Last(ctx context.Context, sessionID string) (*entity.SessionState, error)
	Report(ctx context.Context, sessionID string) ([]byte, error)
}

// AnalysisHandler は分析パイプラインのHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// AnalyzeHandler は銘柄の分析パイプラインを実行し、結果をJSONで返します。
// 結果はリクエスト元セッションの状態として保存されます。
//
// エンドポイント例:
// POST /analysis/:symbol?period=3mo
func (h *AnalysisHandler) AnalyzeHandler(c *gin.Context) {
	sessionID, ok := sessionIDFrom(c)
	if !ok {
		return
	}

	symbol := c.Param("symbol")
	period, err := marketentity.ParsePeriod(c.DefaultQuery("period", ""))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.uc.Analyze(c.Request.Context(), sessionID, symbol, period)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}

	heads := make([]api.HeadlineResponse, 0, len(result.Headlines))
	for _, x := range result.Headlines {
		heads = append(heads, api.HeadlineResponse{Title: x.Title, Link: x.Link})
	}
	c.JSON(http.StatusOK, api.AnalysisResponse{
		Symbol:       result.Symbol,
		Period:       string(result.Period),
		Signal:       result.Signal,
		Headlines:    heads,
		LastClose:    result.LastClose,
		LastCloseJPY: result.LastCloseJPY,
		Rate:         result.Rate,
		GeneratedAt:  result.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

// LastHandler はこのセッションで直近に生成された分析状態を返します。
//
// エンドポイント例:
// GET /analysis
func (h *AnalysisHandler) LastHandler(c *gin.Context) {
	sessionID, ok := sessionIDFrom(c)
	if !ok {
		return
	}

	state, err := h.uc.Last(c.Request.Context(), sessionID)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.AnalysisStateResponse{
		Symbol:    state.Symbol,
		Period:    string(state.Period),
		Analysis:  state.Analysis,
		Rate:      state.Rate,
		UpdatedAt: state.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// ReportHandler は直近の分析テキストをPDFドキュメントとして返します。
//
// エンドポイント例:
// GET /report
func (h *AnalysisHandler) ReportHandler(c *gin.Context) {
	sessionID, ok := sessionIDFrom(c)
	if !ok {
		return
	}

	doc, err := h.uc.Report(c.Request.Context(), sessionID)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analysis_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// sessionIDFrom は認証ミドルウェアが格納したセッションIDを取り出します。
// 見つからない場合は401を書き込み、falseを返します。
func sessionIDFrom(c *gin.Context) (string, bool) {
	sessionID := c.GetString(jwtmw.ContextSessionID)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing session"})
		return "", false
	}
	return sessionID, true
}

// writeAnalysisError はユースケースのエラーをHTTPステータスに対応付けます。
// 分析未実施・セッションやデータなしは404、それ以外（上流障害）は502とします。
func writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNoAnalysis),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, marketusecase.ErrNoData),
		errors.Is(err, marketusecase.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	}
}
