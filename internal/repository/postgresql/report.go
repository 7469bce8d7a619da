package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetMonthlySalaryRows implements report.ReportRepository. Employees with no
// summary for the month come back with zero totals.
func (r *reportRepositoryImpl) GetMonthlySalaryRows(ctx context.Context, year int, month time.Month) ([]report.MonthlySalaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.full_name,
			COALESCE(u.email, '') AS email,
			e.designation,
			e.daily_salary,
			COALESCE(s.total_worked_minutes, 0) AS total_worked_minutes,
			COALESCE(s.total_short_minutes, 0) AS total_short_minutes,
			COALESCE(s.total_salary_earned, 0) AS total_salary_earned
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		LEFT JOIN monthly_attendance_summaries s
			ON s.employee_id = e.id AND s.year = $1 AND s.month = $2
		WHERE e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly salary report: %w", err)
	}
	defer rows.Close()

	var result []report.MonthlySalaryRow
	for rows.Next() {
		var row report.MonthlySalaryRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.FullName,
			&row.Email,
			&row.Designation,
			&row.DailySalary,
			&row.TotalWorkedMinutes,
			&row.TotalShortMinutes,
			&row.TotalSalaryEarned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly salary row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly salary rows: %w", err)
	}
	return result, nil
}
