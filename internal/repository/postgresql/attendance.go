package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
		   a.total_worked_minutes, a.short_minutes, a.salary_earned,
		   a.is_late, a.is_half_day, a.is_public_holiday, a.unpaid_leave, a.is_active,
		   a.deleted_at, a.created_at, a.updated_at, e.full_name
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.TotalWorkedMinutes, &att.ShortMinutes, &att.SalaryEarned,
		&att.IsLate, &att.IsHalfDay, &att.IsPublicHoliday, &att.UnpaidLeave, &att.IsActive,
		&att.DeletedAt, &att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_time, check_out_time,
			total_worked_minutes, short_minutes, salary_earned,
			is_late, is_half_day, is_public_holiday, unpaid_leave, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckInTime,
		newAttendance.CheckOutTime,
		newAttendance.TotalWorkedMinutes,
		newAttendance.ShortMinutes,
		newAttendance.SalaryEarned,
		newAttendance.IsLate,
		newAttendance.IsHalfDay,
		newAttendance.IsPublicHoliday,
		newAttendance.UnpaidLeave,
		newAttendance.IsActive,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return a.getByID(ctx, id, "")
}

// GetByIDForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (attendance.Attendance, error) {
	return a.getByID(ctx, id, " FOR UPDATE OF a")
}

func (a *attendanceRepositoryImpl) getByID(ctx context.Context, id string, lock string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + ` WHERE a.id = $1 AND a.deleted_at IS NULL` + lock

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, "")
}

// GetByEmployeeAndDateForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, " FOR UPDATE OF a")
}

func (a *attendanceRepositoryImpl) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, lock string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.deleted_at IS NULL
		LIMIT 1` + lock

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1,
			check_out_time = $2,
			total_worked_minutes = $3,
			short_minutes = $4,
			salary_earned = $5,
			is_late = $6,
			is_half_day = $7,
			is_public_holiday = $8,
			unpaid_leave = $9,
			is_active = $10,
			updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		att.CheckInTime,
		att.CheckOutTime,
		att.TotalWorkedMinutes,
		att.ShortMinutes,
		att.SalaryEarned,
		att.IsLate,
		att.IsHalfDay,
		att.IsPublicHoliday,
		att.UnpaidLeave,
		att.IsActive,
		att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// SoftDelete implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) SoftDelete(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `UPDATE attendances SET deleted_at = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	query := attendanceSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY a.date DESC, a.employee_id`

	return a.query(ctx, q, query, args...)
}

// ListOpenByDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.date = $1
		  AND a.check_in_time IS NOT NULL
		  AND a.check_out_time IS NULL
		  AND a.deleted_at IS NULL`

	return a.query(ctx, q, query, date)
}

// ActivatePlaceholdersBefore implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ActivatePlaceholdersBefore(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET is_active = TRUE, updated_at = NOW()
		WHERE is_active = FALSE AND date < $1 AND deleted_at IS NULL`, date)
	if err != nil {
		return 0, fmt.Errorf("failed to activate placeholders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (a *attendanceRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return out, nil
}

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// Get implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) Get(ctx context.Context, employeeID string, year int, month time.Month) (*attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, total_worked_minutes, total_short_minutes,
			   total_salary_earned, created_at, updated_at
		FROM monthly_attendance_summaries
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var (
		s          attendance.MonthlySummary
		monthValue int
	)
	err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(
		&s.ID, &s.EmployeeID, &monthValue, &s.Year, &s.TotalWorkedMinutes, &s.TotalShortMinutes,
		&s.TotalSalaryEarned, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly summary: %w", err)
	}
	s.Month = time.Month(monthValue)
	return &s, nil
}

// Upsert implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, s attendance.MonthlySummary) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_attendance_summaries (
			employee_id, month, year, total_worked_minutes, total_short_minutes, total_salary_earned
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, month, year) DO UPDATE
		SET total_worked_minutes = EXCLUDED.total_worked_minutes,
			total_short_minutes = EXCLUDED.total_short_minutes,
			total_salary_earned = EXCLUDED.total_salary_earned,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, int(s.Month), s.Year, s.TotalWorkedMinutes, s.TotalShortMinutes, s.TotalSalaryEarned,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}
	return s, nil
}

type deductionRepositoryImpl struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) attendance.DeductionRepository {
	return &deductionRepositoryImpl{db: db}
}

// Create implements attendance.DeductionRepository.
func (r *deductionRepositoryImpl) Create(ctx context.Context, d attendance.Deduction) (attendance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_deduction_ledgers (employee_id, attendance_id, deducted_minutes, deducted_amount, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, d.EmployeeID, d.AttendanceID, d.DeductedMinutes, d.DeductedAmount, d.Reason).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return attendance.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}
	return d, nil
}

// DeleteByAttendanceID implements attendance.DeductionRepository.
func (r *deductionRepositoryImpl) DeleteByAttendanceID(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_deduction_ledgers WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("failed to delete deductions: %w", err)
	}
	return nil
}

// ListByEmployee implements attendance.DeductionRepository. The range applies
// to the date of the attendance record.
func (r *deductionRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.attendance_id, d.deducted_minutes, d.deducted_amount,
			   d.reason, d.created_at, a.date
		FROM salary_deduction_ledgers d
		JOIN attendances a ON a.id = d.attendance_id AND a.deleted_at IS NULL
		WHERE d.employee_id = $1
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var out []attendance.Deduction
	for rows.Next() {
		var d attendance.Deduction
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.AttendanceID, &d.DeductedMinutes, &d.DeductedAmount,
			&d.Reason, &d.CreatedAt, &d.AttendanceDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deductions: %w", err)
	}
	return out, nil
}
