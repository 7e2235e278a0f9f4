package interfaces

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	reporting "creator-finance/internal/reporting/domain"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	defaultSheet  = "Sheet1"
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RenderXLSX renders report with the default texts.
func RenderXLSX(report reporting.Report) ([]byte, error) {
	return defaultRenderer.XLSX(report)
}

// XLSX renders report as a workbook: a summary sheet plus one sheet per table.
func (r *Renderer) XLSX(report reporting.Report) ([]byte, error) {
	if report == nil {
		return nil, reporting.ErrNilReport
	}
	doc := BuildDocument(report)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", r.opts.PlatformName)
	_ = f.SetCellValue(summarySheet, "A2", doc.Title)
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", doc.Period)
	_ = f.SetCellStyle(summarySheet, "A1", "A2", bold)
	row := 5
	for _, field := range doc.Summary {
		setRow(f, summarySheet, row, []string{field.Label, field.Value})
		row++
	}
	row++
	_ = f.SetCellValue(summarySheet, cellName(1, row), r.opts.Disclaimer)
	_ = f.SetCellValue(summarySheet, cellName(1, row+1), r.opts.Confidentiality)
	_ = f.SetColWidth(summarySheet, "A", "A", 32)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	used := map[string]int{summarySheet: 1}
	for _, table := range doc.Tables {
		name := sheetName(table.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		setRow(f, name, 1, table.Columns)
		if len(table.Columns) > 0 {
			_ = f.SetCellStyle(name, "A1", cellName(len(table.Columns), 1), bold)
		}
		for i, values := range table.Rows {
			setRow(f, name, i+2, values)
		}
		_ = f.SetColWidth(name, "A", "A", 32)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setRow writes values into row; plain decimals are stored as numbers.
func setRow(f *excelize.File, sheet string, row int, values []string) {
	for i, value := range values {
		cell := cellName(i+1, row)
		if i > 0 {
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				_ = f.SetCellFloat(sheet, cell, n, 2, 64)
				continue
			}
		}
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}

// sheetName sanitizes title into a unique worksheet name.
func sheetName(title string, used map[string]int) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, title)
	if name == "" {
		name = "Table"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	base := name
	for used[name] > 0 {
		used[base]++
		suffix := " " + strconv.Itoa(used[base])
		if len(base)+len(suffix) > maxSheetName {
			name = base[:maxSheetName-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	used[name]++
	return name
}
