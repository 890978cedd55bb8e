package entity

import "fmt"

// Period は価格履歴の取得ウィンドウを表す列挙型です。
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
	Period2Years  Period = "2y"
)

// periodBars は各ウィンドウに対応する日足のおおよその本数です。
// 1ヶ月あたり約22営業日として換算します。
var periodBars = map[Period]int{
	Period1Month:  22,
	Period3Months: 66,
	Period6Months: 132,
	Period1Year:   260,
	Period2Years:  520,
}

// ParsePeriod は文字列をPeriodに変換します。空文字列は3ヶ月にフォールバックします。
// 未知の値はエラーを返します。
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return Period3Months, nil
	}
	p := Period(s)
	if _, ok := periodBars[p]; !ok {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}

// Bars はこのウィンドウに対応する日足の本数を返します。
func (p Period) Bars() int {
	if n, ok := periodBars[p]; ok {
		return n
	}
	return periodBars[Period3Months]
}
