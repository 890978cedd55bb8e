// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
// 価格履歴の取得、指標計算、ニュース収集、LLMによるシグナル生成を
// 1つの同期的なパイプラインとして編成します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	indentity "stock_agent/internal/feature/indicator/domain/entity"
	indusecase "stock_agent/internal/feature/indicator/usecase"
	"stock_agent/internal/feature/analysis/domain/entity"
	marketentity "stock_agent/internal/feature/market/domain/entity"
)

const (
	// promptTailRows はプロンプトに含める直近データの行数です。
	promptTailRows = 5
	// headlineLimit はプロンプトに含めるニュース見出しの件数です。
	headlineLimit = 5
	// ratePair は表示用換算に使用する通貨ペアです。
	ratePair = "USD/JPY"
)

// MarketService は価格履歴・ニュース・為替レートの取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketService interface {
	GetHistory(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]marketentity.Headline, error)
	GetRate(ctx context.Context, pair string) float64
}

// TextGenerator はプロンプトから自然言語の分析テキストを生成するサービスを抽象化します。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SessionStore はセッションごとの表示状態の永続化を抽象化します。
// 状態が存在しない場合、FindはErrSessionNotFoundを返します。
type SessionStore interface {
	Save(ctx context.Context, sessionID string, state *entity.SessionState) error
	Find(ctx context.Context, sessionID string) (*entity.SessionState, error)
}

// ReportRenderer は分析テキストをダウンロード可能なドキュメントに変換します。
type ReportRenderer interface {
	Render(title, body string) ([]byte, error)
}

// analysisUsecase は分析パイプラインのユースケースを実装します。
type analysisUsecase struct {
	market   MarketService
	generator TextGenerator
	sessions SessionStore
	renderer ReportRenderer
	indCfg   indusecase.Config
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(market MarketService, generator TextGenerator,
	sessions SessionStore, renderer ReportRenderer, indCfg indusecase.Config) *analysisUsecase {
	return &analysisUsecase{
		market:    market,
		generator: generator,
		sessions:  sessions,
		renderer:  renderer,
		indCfg:    indCfg,
	}
}

// Analyze は分析パイプライン全体を実行します:
// 履歴取得 → 指標計算 → ニュース取得 → プロンプト構築 → LLM生成 → セッション保存。
// 系列が空の場合は派生データを一切生成せずに中断するため、
// 不整合な途中状態がセッションに残ることはありません。
func (au *analysisUsecase) Analyze(ctx context.Context, sessionID, symbol string, period marketentity.Period) (*entity.Analysis, error) {
	series, err := au.market.GetHistory(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	frame, err := indusecase.Compute(series, au.indCfg)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	headlines, err := au.market.GetHeadlines(ctx, symbol, headlineLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	prompt := buildPrompt(symbol, headlines, frame)
	signal, err := au.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate signal: %w", err)
	}

	rate := au.market.GetRate(ctx, ratePair)
	lastClose := series[len(series)-1].Close

	state := &entity.SessionState{
		Symbol:    symbol,
		Period:    period,
		Series:    series,
		Analysis:  signal,
		Rate:      rate,
		UpdatedAt: time.Now().UTC(),
	}
	if err := au.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("save session state: %w", err)
	}

	return &entity.Analysis{
		Symbol:       symbol,
		Period:       period,
		Signal:       signal,
		Headlines:    headlines,
		LastClose:    lastClose,
		LastCloseJPY: lastClose * rate,
		Rate:         rate,
		GeneratedAt:  state.UpdatedAt,
	}, nil
}

// Last はこのセッションで直近に保存された分析状態を返します。
func (au *analysisUsecase) Last(ctx context.Context, sessionID string) (*entity.SessionState, error) {
	state, err := au.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Analysis == "" {
		return nil, ErrNoAnalysis
	}
	return state, nil
}

// Report は直近の分析テキストをドキュメント（PDF）として描画します。
func (au *analysisUsecase) Report(ctx context.Context, sessionID string) ([]byte, error) {
	state, err := au.Last(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("%s Analysis Report", state.Symbol)
	doc, err := au.renderer.Render(title, state.Analysis)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return doc, nil
}

// buildPrompt はLLMに渡すアナリストプロンプトを構築します。
// ニュース見出しと、指標フレームの直近数行（未定義値はn/a表記）を含めます。
func buildPrompt(symbol string, headlines []marketentity.Headline, frame *indentity.Frame) string {
	var news strings.Builder
	for _, h := range headlines {
		news.WriteString("- ")
		news.WriteString(h.Title)
		news.WriteString("\n")
	}
	if news.Len() == 0 {
		news.WriteString("(no recent news)\n")
	}

	var rows strings.Builder
	start := frame.Len() - promptTailRows
	if start < 0 {
		start = 0
	}
	rows.WriteString("date close sma rsi\n")
	for i := start; i < frame.Len(); i++ {
		c := frame.Candles[i]
		rows.WriteString(fmt.Sprintf("%s %.2f %s %s\n",
			c.Time.UTC().Format("2006-01-02"), c.Close,
			formatOpt(frame.SMA[i]), formatOpt(frame.RSI[i])))
	}

	return fmt.Sprintf(`Identify as a Wall Street analyst.
Stock: %s
Recent news:
%s
Recent technical data:
%s
Instructions: Provide a clear 'Signal' (BUY/SELL/HOLD) and 3 bullet points on the 'Why' considering both technicals and sentiment.`,
		symbol, news.String(), rows.String())
}

// formatOpt は未定義値を"n/a"として表記します。
func formatOpt(v indentity.OptFloat) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v.Value)
}
