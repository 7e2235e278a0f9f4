package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	reporting "creator-finance/internal/reporting/domain"
)

const (
	pageMarginMM   = 15.0
	contentWidthMM = 180.0
	rowHeightMM    = 7.0
	valueColumnMM  = 45.0
	footerSpaceMM  = 28.0
)

// RenderOptions holds the fixed texts stamped on every document.
type RenderOptions struct {
	PlatformName    string `yaml:"platform_name"`
	Disclaimer      string `yaml:"disclaimer"`
	Confidentiality string `yaml:"confidentiality"`
}

// DefaultRenderOptions returns the standard document texts.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		PlatformName:    "Creator Finance",
		Disclaimer:      "Prepared on a GAAP-style basis from platform ledger data. Unaudited.",
		Confidentiality: "Confidential. Intended solely for the named recipient.",
	}
}

func (o RenderOptions) withDefaults() RenderOptions {
	def := DefaultRenderOptions()
	if o.PlatformName == "" {
		o.PlatformName = def.PlatformName
	}
	if o.Disclaimer == "" {
		o.Disclaimer = def.Disclaimer
	}
	if o.Confidentiality == "" {
		o.Confidentiality = def.Confidentiality
	}
	return o
}

// Renderer produces PDF and XLSX documents of reports.
type Renderer struct {
	opts RenderOptions
}

// NewRenderer constructs a renderer. Empty texts fall back to the defaults.
func NewRenderer(opts RenderOptions) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

var defaultRenderer = NewRenderer(RenderOptions{})

// RenderPDF renders report with the default texts.
func RenderPDF(report reporting.Report, recipient string) ([]byte, error) {
	return defaultRenderer.PDF(report, recipient)
}

// PDF renders report as an A4 document addressed to recipient.
func (r *Renderer) PDF(report reporting.Report, recipient string) ([]byte, error) {
	if report == nil {
		return nil, reporting.ErrNilReport
	}
	doc := BuildDocument(report)
	if recipient == "" {
		recipient = doc.Subject
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, footerSpaceMM)
	pdf.AliasNbPages("")
	pdf.SetTitle(tr(doc.Title), false)
	pdf.SetAuthor(tr(r.opts.PlatformName), false)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 7, tr(r.opts.PlatformName), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 4, tr(r.opts.Disclaimer), "", "L", false)
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 7, tr(doc.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		if doc.Period != "" {
			pdf.CellFormat(0, 6, tr("Period: "+doc.Period), "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(0, 6, tr("Prepared for: "+recipient), "", 1, "L", false, 0, "")
		y := pdf.GetY() + 1
		pdf.Line(pageMarginMM, y, pageMarginMM+contentWidthMM, y)
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerSpaceMM + 6)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, tr(r.opts.Confidentiality), "", 1, "C", false, 0, "")
		pdf.MultiCell(0, 4, tr(r.opts.Disclaimer), "", "C", false)
	})

	pdf.AddPage()
	writeSummary(pdf, tr, doc.Summary)
	for _, table := range doc.Tables {
		writeTable(pdf, tr, table)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, fields []Field) {
	if len(fields) == 0 {
		return
	}
	labelWidth := contentWidthMM - 2*valueColumnMM
	for _, f := range fields {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelWidth, rowHeightMM, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(2*valueColumnMM, rowHeightMM, tr(f.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// columnWidths gives every value column a fixed width and the rest to the first column.
func columnWidths(n int) []float64 {
	if n <= 0 {
		return nil
	}
	widths := make([]float64, n)
	widths[0] = contentWidthMM - valueColumnMM*float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = valueColumnMM
	}
	return widths
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, table Table) {
	_, pageHeight := pdf.GetPageSize()
	needed := rowHeightMM * float64(len(table.Rows)+2)
	if pdf.GetY()+needed > pageHeight-footerSpaceMM {
		pdf.AddPage()
	}
	widths := columnWidths(len(table.Columns))

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, rowHeightMM, tr(table.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, col := range table.Columns {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], rowHeightMM, tr(col), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(table.Rows) == 0 {
		pdf.CellFormat(contentWidthMM, rowHeightMM, "No entries", "1", 1, "C", false, 0, "")
	}
	for _, row := range table.Rows {
		for i := range widths {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], rowHeightMM, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
