package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "stock_agent/internal/feature/analysis/transport/handler"
	audithandler "stock_agent/internal/feature/audit/transport/handler"
	authhandler "stock_agent/internal/feature/auth/transport/handler"
	charthandler "stock_agent/internal/feature/chart/transport/handler"
	indicatorhandler "stock_agent/internal/feature/indicator/transport/handler"
	markethandler "stock_agent/internal/feature/market/transport/handler"
	"stock_agent/internal/platform/http/handler"
	jwtmw "stock_agent/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, market *markethandler.MarketHandler,
	indicator *indicatorhandler.IndicatorHandler, audit *audithandler.AuditHandler,
	chart *charthandler.ChartHandler, analysis *analysishandler.AnalysisHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// 市場データ
		auth.GET("/history/:symbol", market.GetHistoryHandler)
		auth.GET("/headlines/:symbol", market.GetHeadlinesHandler)
		auth.GET("/resolve", market.ResolveHandler)

		// 指標・バックテスト・チャート
		auth.GET("/indicators/:symbol", indicator.GetIndicatorsHandler)
		auth.GET("/audit/:symbol", audit.GetAuditHandler)
		auth.GET("/chart/:symbol", chart.GetChartHandler)

		// LLM分析とレポート
		auth.POST("/analysis/:symbol", analysis.AnalyzeHandler)
		auth.GET("/analysis", analysis.LastHandler)
		auth.GET("/report", analysis.ReportHandler)
	}

	return r
}
