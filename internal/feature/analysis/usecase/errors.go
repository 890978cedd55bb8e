package usecase

import "errors"

var (
	// ErrNoAnalysis はこのセッションで保存済みの分析が存在しないことを示します。
	ErrNoAnalysis = errors.New("no analysis stored for session")
	// ErrSessionNotFound はセッション状態が見つからないことを示します。
	ErrSessionNotFound = errors.New("session not found")
)
