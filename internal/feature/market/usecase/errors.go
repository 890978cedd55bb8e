package usecase

import "errors"

var (
	// ErrNoData は指定銘柄の価格データが1件も得られなかったことを示します。
	ErrNoData = errors.New("no price data")
	// ErrSymbolNotFound は名前解決で銘柄が見つからなかったことを示します。
	// 外部サービスの一時的な障害とは区別されます（その場合は別のエラーが返ります）。
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrEmptyQuery は検索語が空であることを示します。
	ErrEmptyQuery = errors.New("query is empty")
)
