package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const PDFContentType = "application/pdf"

// Field is a labelled value printed above the tables.
type Field struct {
	Label string
	Value string
}

// Table is a titled grid of text cells.
type Table struct {
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// Document is a single-column A4 report.
type Document struct {
	Title  string
	Fields []Field
	Tables []Table
	Totals []Field
	Footer string
}

// PDF renders the document.
func PDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	for _, f := range doc.Fields {
		pdf.Cell(45, 7, f.Label)
		pdf.Cell(0, 7, f.Value)
		pdf.Ln(7)
	}

	for _, t := range doc.Tables {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, t.Title)
		pdf.Ln(9)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Headers {
			pdf.CellFormat(width(t.Widths, i), 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		if len(t.Rows) == 0 {
			pdf.CellFormat(sum(t.Widths, len(t.Headers)), 7, "No entries", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		for _, row := range t.Rows {
			for i, v := range row {
				pdf.CellFormat(width(t.Widths, i), 6, v, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(doc.Totals) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		for _, f := range doc.Totals {
			pdf.Cell(60, 7, f.Label)
			pdf.Cell(0, 7, f.Value)
			pdf.Ln(7)
		}
	}

	if doc.Footer != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 8, doc.Footer)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func width(widths []float64, i int) float64 {
	if i < len(widths) {
		return widths[i]
	}
	return 30
}

func sum(widths []float64, n int) float64 {
	total := 0.0
	for i := 0; i < n; i++ {
		total += width(widths, i)
	}
	return total
}
