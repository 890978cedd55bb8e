package entity

import "time"

// Symbol はローカルの銘柄ディレクトリに保存される銘柄情報です。
// 外部の名前解決APIで解決した結果をキャッシュし、同じ検索語の
// 再解決をローカルで完結させるために使用します。
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Query     string    `gorm:"size:255;not null;uniqueIndex"`
	Code      string    `gorm:"size:20;not null"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:100"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Resolution は自由入力テキストの名前解決の結果を表します。
type Resolution struct {
	Symbol   string
	Name     string
	Exchange string
}
