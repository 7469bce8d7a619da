// Package export renders tabular reports as spreadsheet and PDF files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a title row, a header row and data rows.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]any
}

// XLSX renders the sheet as an .xlsx workbook.
func XLSX(sheet Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet.Name); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet.Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}
	index, err := f.GetSheetIndex(sheet.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	row := 1
	if sheet.Title != "" {
		f.SetCellValue(sheet.Name, "A1", sheet.Title)
		f.SetCellStyle(sheet.Name, "A1", "A1", titleStyle)
		row = 3
	}

	for i, h := range sheet.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet.Name, cell, h)
	}
	if len(sheet.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), row)
		f.SetCellStyle(sheet.Name, first, last, headerStyle)
		row++
	}

	for _, values := range sheet.Rows {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet.Name, cell, v)
		}
		row++
	}

	for i, w := range sheet.Widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet.Name, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
