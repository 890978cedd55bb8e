// Package report は分析テキストをPDFドキュメントに変換するレンダラを提供します。
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"stock_agent/internal/feature/analysis/usecase"
)

// PDFRenderer は分析テキストをA4縦のPDFとして描画します。
type PDFRenderer struct{}

// PDFRendererがReportRendererを実装していることをコンパイル時に検証します。
var _ usecase.ReportRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer はPDFRendererの新しいインスタンスを生成します。
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render はタイトルと本文からPDFバイト列を生成します。
func (r *PDFRenderer) Render(title, body string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, line := range strings.Split(body, "\n") {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}
