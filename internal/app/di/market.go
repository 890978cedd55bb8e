// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	marketusecase "stock_agent/internal/feature/market/usecase"
	"stock_agent/internal/platform/cache"
	"stock_agent/internal/platform/externalapi/twelvedata"
	"stock_agent/internal/platform/externalapi/yahoo"
	infrahttp "stock_agent/internal/platform/http"
)

// NewTwelveData creates a fully configured TwelveDataMarket with HTTP client.
func NewTwelveData() *twelvedata.TwelveDataMarket {
	cfg := twelvedata.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient)
}

// NewYahoo creates a fully configured YahooFinance client.
func NewYahoo() *yahoo.YahooFinance {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooFinance(cfg, httpClient)
}

// NewHistoryRepository wraps the Twelve Data history source with a Redis
// cache that expires at the next market-data refresh. A nil Redis client
// disables caching transparently.
func NewHistoryRepository(rdb *redis.Client, td *twelvedata.TwelveDataMarket) marketusecase.HistoryRepository {
	return cache.NewCachingHistoryRepository(rdb, cache.TimeUntilNext8AM(), td, "history")
}
