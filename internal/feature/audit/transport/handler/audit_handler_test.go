package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_agent/internal/feature/audit/transport/handler"
	marketentity "stock_agent/internal/feature/market/domain/entity"
	marketusecase "stock_agent/internal/feature/market/usecase"
)

// mockHistoryUsecase はHistoryUsecaseインターフェースのモック実装です。
type mockHistoryUsecase struct {
	GetHistoryFunc func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
}

func (m *mockHistoryUsecase) GetHistory(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
	return m.GetHistoryFunc(ctx, symbol, period)
}

func makeCandles(closes []float64) []marketentity.Candle {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	cs := make([]marketentity.Candle, len(closes))
	for i, c := range closes {
		cs[i] = marketentity.Candle{Time: base.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return cs
}

func newRouter(mock *mockHistoryUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAuditHandler(mock)
	r := gin.New()
	r.GET("/audit/:symbol", h.GetAuditHandler)
	return r
}

// TestAuditHandler_GetAuditHandler はバックテスト結果のレスポンスを検証します。
func TestAuditHandler_GetAuditHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockGetHistory func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: single evaluated hit",
			url:  "/audit/NVDA?rsi=2&horizon=2",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				assert.Equal(t, "NVDA", symbol)
				assert.Equal(t, marketentity.Period1Year, period)
				return makeCandles([]float64{3, 2, 1, 4, 5, 6}), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"signals":[{"time":"2023-01-04T00:00:00Z","close":1,"rsi":0,"future_close":5,"hit":true}],
				"evaluated":1,"hits":1,"hit_rate":100,"no_signals":false
			}`,
		},
		{
			name: "success: no signals is a valid payload, not an error",
			url:  "/audit/NVDA?rsi=2",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return makeCandles([]float64{100, 100, 100, 100, 100, 100}), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"signals":[],"evaluated":0,"hits":0,"hit_rate":null,"no_signals":true}`,
		},
		{
			name: "success: unevaluable signal has null outcome and undefined hit rate",
			url:  "/audit/NVDA?rsi=2&horizon=5",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return makeCandles([]float64{3, 2, 1}), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"signals":[{"time":"2023-01-04T00:00:00Z","close":1,"rsi":0,"future_close":null,"hit":false}],
				"evaluated":0,"hits":0,"hit_rate":null,"no_signals":false
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockHistoryUsecase{GetHistoryFunc: tt.mockGetHistory})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestAuditHandler_GetAuditHandler_Errors はエラー時のステータスコードを検証します。
func TestAuditHandler_GetAuditHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockGetHistory func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error)
		expectedStatus int
	}{
		{
			name:           "invalid period",
			url:            "/audit/NVDA?period=bad",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid threshold parameter",
			url:            "/audit/NVDA?threshold=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid horizon parameter",
			url:            "/audit/NVDA?horizon=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "non-positive horizon rejected",
			url:  "/audit/NVDA?horizon=0",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return makeCandles([]float64{1, 2, 3}), nil
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty series maps to 404",
			url:  "/audit/ZZZZ",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return []marketentity.Candle{}, nil
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "no data maps to 404",
			url:  "/audit/ZZZZ",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return nil, marketusecase.ErrNoData
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "upstream failure maps to 502",
			url:  "/audit/NVDA",
			mockGetHistory: func(ctx context.Context, symbol string, period marketentity.Period) ([]marketentity.Candle, error) {
				return nil, errors.New("twelvedata http 500")
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockHistoryUsecase{GetHistoryFunc: tt.mockGetHistory})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
