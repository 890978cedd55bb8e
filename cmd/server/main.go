package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_agent/internal/app/di"
	"stock_agent/internal/app/router"
	"stock_agent/internal/feature/analysis/adapters/gemini"
	"stock_agent/internal/feature/analysis/adapters/report"
	analysishandler "stock_agent/internal/feature/analysis/transport/handler"
	analysisusecase "stock_agent/internal/feature/analysis/usecase"
	audithandler "stock_agent/internal/feature/audit/transport/handler"
	authhandler "stock_agent/internal/feature/auth/transport/handler"
	authusecase "stock_agent/internal/feature/auth/usecase"
	charthandler "stock_agent/internal/feature/chart/transport/handler"
	indicatorhandler "stock_agent/internal/feature/indicator/transport/handler"
	indicatorusecase "stock_agent/internal/feature/indicator/usecase"
	marketadapters "stock_agent/internal/feature/market/adapters"
	markethandler "stock_agent/internal/feature/market/transport/handler"
	marketusecase "stock_agent/internal/feature/market/usecase"
	infradb "stock_agent/internal/platform/db"
	jwtmw "stock_agent/internal/platform/jwt"
	infraredis "stock_agent/internal/platform/redis"
	"stock_agent/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 外部API
	td := di.NewTwelveData()
	yh := di.NewYahoo()

	// Twelve Dataの無料枠に合わせた送信レート制限（1分に8回まで）
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)

	// Market usecase（履歴はRedisキャッシュでラップ）
	marketUC := marketusecase.NewMarketUsecase(
		di.NewHistoryRepository(rdb, td),
		yh,
		yh,
		marketadapters.NewSymbolDirectory(db),
		td,
		limiter,
	)

	// 認証（シングルユーザー・静的認証情報）
	creds := authusecase.Credentials{
		User:         os.Getenv("API_USER"),
		PasswordHash: os.Getenv("API_PASSWORD_HASH"),
	}
	if creds.User == "" || creds.PasswordHash == "" {
		log.Println("[WARN] API_USER / API_PASSWORD_HASH are not set. Login will always fail.")
	}
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(creds, jwtGen)

	// LLM分析パイプライン
	generator, err := gemini.NewGeminiGenerator(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize gemini client: %v", err)
	}
	analysisUC := analysisusecase.NewAnalysisUsecase(
		marketUC,
		generator,
		di.NewSessionStore(rdb),
		report.NewPDFRenderer(),
		indicatorusecase.DefaultConfig(),
	)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	marketH := markethandler.NewMarketHandler(marketUC)
	indicatorH := indicatorhandler.NewIndicatorHandler(marketUC)
	auditH := audithandler.NewAuditHandler(marketUC)
	chartH := charthandler.NewChartHandler(marketUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)

	// ルータ生成
	router := router.NewRouter(authH, marketH, indicatorH, auditH, chartH, analysisH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
