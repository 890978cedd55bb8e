// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// sessionIDBytes はセッションID生成に使用する乱数のバイト長です。
const sessionIDBytes = 16

// Credentials はシングルユーザー構成の静的な認証情報です。
// パスワードは平文ではなくbcryptハッシュで保持します。
type Credentials struct {
	User         string
	PasswordHash string
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken はセッションIDを含む署名済みJWTトークンを生成します。
	GenerateToken(sessionID, user string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	creds        Credentials
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(creds Credentials, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		creds:        creds,
		jwtGenerator: jwtGenerator,
	}
}

// Login は静的な認証情報と照合し、成功時に新しいセッションIDを持つ
// JWTトークンを返します。
// タイミング攻撃を防止するため、ユーザー名が一致しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, user, password string) (string, error) {
	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(u.creds.User)) == 1

	// ユーザー名が一致しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if userMatch {
		passwordHash = u.creds.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if !userMatch || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	sessionID, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	token, err := u.jwtGenerator.GenerateToken(sessionID, user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// newSessionID は暗号論的乱数から16進表現のセッションIDを生成します。
func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
