package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX(t *testing.T) {
	content, err := XLSX(Sheet{
		Name:    "Salary",
		Title:   "Monthly Salary Report",
		Headers: []string{"Name", "Salary"},
		Widths:  []float64{20, 12},
		Rows: [][]any{
			{"Ali", "888.89"},
			{"Sara", "1000.00"},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Salary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Monthly Salary Report", title)

	header, err := f.GetCellValue("Salary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Salary", header)

	last, err := f.GetCellValue("Salary", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Sara", last)
}

func TestPDF(t *testing.T) {
	content, err := PDF(Document{
		Title:  "Salary Slip",
		Fields: []Field{{Label: "Employee", Value: "Ali"}},
		Tables: []Table{{
			Title:   "Attendance",
			Headers: []string{"Date", "Worked"},
			Widths:  []float64{40, 30},
			Rows:    [][]string{{"2025-03-03", "480"}},
		}},
		Totals: []Field{{Label: "Net Salary", Value: "888.89"}},
		Footer: "Generated",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}
