package report

import (
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PERIOD
// ========================================

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// MONTHLY SALARY REPORT
// ========================================

// MonthlySalaryRow is one employee's summary for the period. Employees with
// no summary row report zero totals.
type MonthlySalaryRow struct {
	EmployeeID         string          `json:"employee_id"`
	FullName           string          `json:"full_name"`
	Email              string          `json:"email"`
	Designation        string          `json:"designation"`
	DailySalary        decimal.Decimal `json:"daily_salary"`
	TotalWorkedMinutes int             `json:"total_worked_minutes"`
	TotalShortMinutes  int             `json:"total_short_minutes"`
	TotalWorkedHours   string          `json:"total_worked_hours"`
	TotalShortHours    string          `json:"total_short_hours"`
	TotalSalaryEarned  decimal.Decimal `json:"total_salary_earned"`
}

type MonthlySalaryReport struct {
	Month       int                `json:"month"`
	Year        int                `json:"year"`
	GeneratedAt string             `json:"generated_at"`
	TotalPayout decimal.Decimal    `json:"total_payout"`
	Rows        []MonthlySalaryRow `json:"rows"`
}

// ========================================
// EMPLOYEE SALARY REPORT
// ========================================

type EmployeeInfo struct {
	ID          string          `json:"id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Designation string          `json:"designation"`
	DailySalary decimal.Decimal `json:"daily_salary"`
}

type DeductionRow struct {
	ID              string          `json:"id"`
	AttendanceID    string          `json:"attendance_id"`
	Date            *string         `json:"date"`
	DeductedMinutes int             `json:"deducted_minutes"`
	DeductedAmount  decimal.Decimal `json:"deducted_amount"`
	Reason          string          `json:"reason"`
	CreatedAt       time.Time       `json:"created_at"`
}

type EmployeeSalaryReport struct {
	Month           int                             `json:"month"`
	Year            int                             `json:"year"`
	GeneratedAt     string                          `json:"generated_at"`
	Employee        EmployeeInfo                    `json:"employee"`
	Attendances     []attendance.AttendanceResponse `json:"attendances"`
	Deductions      []DeductionRow                  `json:"deductions"`
	TotalSalary     decimal.Decimal                 `json:"total_salary"`
	TotalDeductions decimal.Decimal                 `json:"total_deductions"`
	NetSalary       decimal.Decimal                 `json:"net_salary"`
}

// Export is a rendered file ready to be streamed to the client.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

// MinutesToHours renders minutes as hours with two decimals.
func MinutesToHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).StringFixed(2)
}

func NewDeductionRow(d attendance.Deduction) DeductionRow {
	row := DeductionRow{
		ID:              d.ID,
		AttendanceID:    d.AttendanceID,
		DeductedMinutes: d.DeductedMinutes,
		DeductedAmount:  d.DeductedAmount,
		Reason:          d.Reason,
		CreatedAt:       d.CreatedAt,
	}
	if d.AttendanceDate != nil {
		date := d.AttendanceDate.Format("2006-01-02")
		row.Date = &date
	}
	return row
}
