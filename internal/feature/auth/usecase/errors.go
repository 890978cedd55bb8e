// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidCredentials はユーザー名またはパスワードが一致しないことを示します。
	ErrInvalidCredentials = errors.New("invalid user or password")
)
