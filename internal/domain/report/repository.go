package report

import (
	"context"
	"time"
)

// ReportRepository reads the aggregates the salary reports are built from.
type ReportRepository interface {
	// GetMonthlySalaryRows returns every non-deleted employee ordered by
	// name, joined with their summary for the month.
	GetMonthlySalaryRows(ctx context.Context, year int, month time.Month) ([]MonthlySalaryRow, error)
}
