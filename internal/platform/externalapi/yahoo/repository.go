package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"stock_agent/internal/feature/market/domain/entity"
	"stock_agent/internal/feature/market/usecase"
	"stock_agent/internal/platform/externalapi/yahoo/dto"
)

// YahooFinance はYahoo Financeの検索APIを使って銘柄解決とニュース見出し取得を行います。
type YahooFinance struct {
	cfg    Config
	client *http.Client
}

// YahooFinanceが各リポジトリを実装していることをコンパイル時に検証します。
var (
	_ usecase.SymbolSearcher = (*YahooFinance)(nil)
	_ usecase.NewsRepository = (*YahooFinance)(nil)
)

// NewYahooFinance は指定された設定とHTTPクライアントでYahooFinanceの新しいインスタンスを生成します。
func NewYahooFinance(cfg Config, client *http.Client) *YahooFinance {
	return &YahooFinance{cfg: cfg, client: client}
}

// search は検索エンドポイントを呼び出し、デコード済みレスポンスを返します。
func (y *YahooFinance) search(ctx context.Context, query string, quotesCount, newsCount int) (*dto.SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(quotesCount))
	q.Set("newsCount", strconv.Itoa(newsCount))

	u := fmt.Sprintf("%s/v1/finance/search?%s", y.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// 公開エンドポイントはUA無しのリクエストを拒否する
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	return &body, nil
}

// Search は自由入力テキストから銘柄を検索します。
// 株式（EQUITY）の候補が1件も無い場合はErrSymbolNotFoundを返します。
func (y *YahooFinance) Search(ctx context.Context, query string) (*entity.Resolution, error) {
	body, err := y.search(ctx, query, 5, 0)
	if err != nil {
		return nil, err
	}

	for _, q := range body.Quotes {
		if q.QuoteType != "EQUITY" || q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		return &entity.Resolution{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", usecase.ErrSymbolNotFound, query)
}

// GetHeadlines は銘柄に関連する直近のニュース見出しを返します。
// 見出しが無い場合は空スライスを返します（エラーではありません）。
func (y *YahooFinance) GetHeadlines(ctx context.Context, symbol string, limit int) ([]entity.Headline, error) {
	body, err := y.search(ctx, symbol, 0, limit)
	if err != nil {
		return nil, err
	}

	heads := make([]entity.Headline, 0, len(body.News))
	for _, n := range body.News {
		if n.Title == "" {
			continue
		}
		heads = append(heads, entity.Headline{Title: n.Title, Link: n.Link})
		if len(heads) == limit {
			break
		}
	}
	return heads, nil
}
