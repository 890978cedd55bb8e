// Package adapters はmarketフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_agent/internal/feature/market/domain/entity"
	"stock_agent/internal/feature/market/usecase"
)

// symbolGorm はSymbolDirectoryインターフェースのリレーショナルDB実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolDirectory = (*symbolGorm)(nil)

// NewSymbolDirectory は指定されたDB接続でsymbolGormディレクトリの新しいインスタンスを生成します。
func NewSymbolDirectory(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// FindByQuery は検索語に一致するエントリを返します。
// エントリが存在しない場合はErrSymbolNotFoundを返します。
func (r *symbolGorm) FindByQuery(ctx context.Context, query string) (*entity.Symbol, error) {
	var sym entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("query = ?", query).
		First(&sym).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, err
	}
	return &sym, nil
}

// Save は検索語をキーにエントリを挿入または更新します。
func (r *symbolGorm) Save(ctx context.Context, sym *entity.Symbol) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "name", "exchange", "updated_at"}),
		}).
		Create(sym).Error
}
