// Package usecase はmarketフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"stock_agent/internal/feature/market/domain/entity"
	"stock_agent/internal/shared/ratelimiter"
)

const (
	// DefaultHeadlineLimit はニュース見出しのデフォルト取得件数です。
	DefaultHeadlineLimit = 5
	// MaxHeadlineLimit はニュース見出しの最大取得件数です。
	MaxHeadlineLimit = 20
	// HistoryInterval は価格履歴の取得に使用する時間足です。
	HistoryInterval = "1day"
	// FallbackRate は為替レート取得に失敗した場合のフォールバック値（USD/JPY）です。
	FallbackRate = 150.0
)

// HistoryRepository は株価の時系列データを取得するリポジトリを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// NewsRepository は銘柄に関連するニュース見出しを取得するリポジトリを抽象化します。
type NewsRepository interface {
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]entity.Headline, error)
}

// SymbolSearcher は自由入力テキストから銘柄を検索する外部サービスを抽象化します。
// 銘柄が存在しない場合はErrSymbolNotFoundを返します。
type SymbolSearcher interface {
	Search(ctx context.Context, query string) (*entity.Resolution, error)
}

// SymbolDirectory は解決済み銘柄のローカルディレクトリを抽象化します。
type SymbolDirectory interface {
	// FindByQuery は検索語に一致するエントリを返します。存在しない場合はErrSymbolNotFoundを返します。
	FindByQuery(ctx context.Context, query string) (*entity.Symbol, error)
	// Save はエントリを挿入または更新します。
	Save(ctx context.Context, sym *entity.Symbol) error
}

// RateRepository は為替レートを取得するリポジトリを抽象化します。
type RateRepository interface {
	GetRate(ctx context.Context, pair string) (float64, error)
}

// marketUsecase は価格履歴・ニュース・名前解決・為替レートのユースケースを実装します。
type marketUsecase struct {
	history   HistoryRepository
	news      NewsRepository
	searcher  SymbolSearcher
	directory SymbolDirectory
	rates     RateRepository
	limiter   ratelimiter.RateLimiterInterface
}

// NewMarketUsecase はmarketUsecaseの新しいインスタンスを生成します。
func NewMarketUsecase(history HistoryRepository, news NewsRepository, searcher SymbolSearcher,
	directory SymbolDirectory, rates RateRepository, limiter ratelimiter.RateLimiterInterface) *marketUsecase {
	return &marketUsecase{
		history:   history,
		news:      news,
		searcher:  searcher,
		directory: directory,
		rates:     rates,
		limiter:   limiter,
	}
}

// GetHistory は指定銘柄の日足の価格履歴を取得します。
// 取得結果が空の場合はErrNoDataを返し、以降の計算に空系列が渡らないことを保証します。
func (mu *marketUsecase) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptyQuery
	}

	mu.limiter.WaitIfNeeded()
	cs, err := mu.history.GetTimeSeries(ctx, symbol, HistoryInterval, period.Bars())
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return cs, nil
}

// GetHeadlines は指定銘柄の直近ニュース見出しを取得します。見出しが無い場合は空スライスを返します。
func (mu *marketUsecase) GetHeadlines(ctx context.Context, symbol string, limit int) ([]entity.Headline, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > MaxHeadlineLimit {
		limit = DefaultHeadlineLimit
	}
	return mu.news.GetHeadlines(ctx, symbol, limit)
}

// Resolve は自由入力テキスト（企業名など）を銘柄コードに解決します。
// まずローカルディレクトリを検索し、ヒットしない場合のみ外部サービスに問い合わせます。
// 外部サービスでの解決結果はディレクトリにベストエフォートで保存されます。
func (mu *marketUsecase) Resolve(ctx context.Context, query string) (*entity.Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	// 1) ローカルディレクトリ
	if sym, err := mu.directory.FindByQuery(ctx, strings.ToLower(query)); err == nil {
		return &entity.Resolution{Symbol: sym.Code, Name: sym.Name, Exchange: sym.Exchange}, nil
	}

	// 2) 外部検索サービス
	mu.limiter.WaitIfNeeded()
	res, err := mu.searcher.Search(ctx, query)
	if err != nil {
		// ErrSymbolNotFound（銘柄が存在しない）と一時的な障害はそのまま区別して伝播する
		return nil, err
	}

	// 3) 解決結果をディレクトリに保存（失敗しても解決自体は成功とする）
	sym := &entity.Symbol{
		Query:    strings.ToLower(query),
		Code:     res.Symbol,
		Name:     res.Name,
		Exchange: res.Exchange,
	}
	if err := mu.directory.Save(ctx, sym); err != nil {
		slog.Warn("failed to save resolved symbol", "query", query, "error", err)
	}

	return res, nil
}

// GetRate は為替レートを取得します。外部サービスが失敗した場合は
// フォールバック定数を返し、このメソッドは決して失敗しません。
func (mu *marketUsecase) GetRate(ctx context.Context, pair string) float64 {
	rate, err := mu.rates.GetRate(ctx, pair)
	if err != nil || rate <= 0 {
		slog.Warn("exchange rate unavailable, using fallback", "pair", pair, "fallback", FallbackRate, "error", err)
		return FallbackRate
	}
	return rate
}
