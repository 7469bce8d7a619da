package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

// ensurePlaceholder returns the record of the day, creating an inactive
// placeholder when there is none.
func (s *AttendanceServiceImpl) ensurePlaceholder(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
	})
	if errors.Is(err, attendance.ErrAttendanceExists) {
		// Lost a race with another writer; theirs wins.
		existing, err = s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
		}
		if existing != nil {
			return *existing, nil
		}
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create placeholder: %w", err)
	}
	return created, nil
}

// backfillPlaceholders creates placeholders for the working days in [from, to]
// on or after the employee's joining date.
func (s *AttendanceServiceImpl) backfillPlaceholders(ctx context.Context, emp employee.Employee, from, to time.Time) error {
	from = maxDate(from, emp.JoiningDate)
	if to.Before(from) {
		return nil
	}
	holidays, err := s.holidaysBetween(ctx, from, to)
	if err != nil {
		return err
	}
	for _, day := range workday.Between(from, to, holidays) {
		if _, err := s.ensurePlaceholder(ctx, emp.ID, day); err != nil {
			return err
		}
	}
	return nil
}

// backfillAbsences charges every past working day of the current month that
// has no record, or only a placeholder, as a full unpaid day.
func (s *AttendanceServiceImpl) backfillAbsences(ctx context.Context, emp employee.Employee, today time.Time) error {
	if !emp.IsActive {
		return nil
	}
	first, _ := workday.MonthBounds(today.Year(), today.Month())
	from := maxDate(first, emp.JoiningDate)
	to := today.AddDate(0, 0, -1)
	if to.Before(from) {
		return nil
	}
	holidays, err := s.holidaysBetween(ctx, from, to)
	if err != nil {
		return err
	}
	days := workday.Between(from, to, holidays)
	if len(days) == 0 {
		return nil
	}

	required := s.rules.RequiredMinutes(false)
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		changed := 0
		for _, day := range days {
			ok, err := s.writeAbsence(ctx, emp.ID, day, required)
			if err != nil {
				return err
			}
			if ok {
				changed++
			}
		}
		if changed == 0 {
			return nil
		}
		_, err := s.RecalculateSummary(ctx, emp.ID, today.Year(), today.Month())
		return err
	})
}

// writeAbsence records a day without work carrying shortMinutes. It leaves
// any record other than a placeholder untouched and reports whether it wrote.
func (s *AttendanceServiceImpl) writeAbsence(ctx context.Context, employeeID string, date time.Time, shortMinutes int) (bool, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing != nil && !existing.IsPlaceholder() {
		return false, nil
	}

	record := attendance.Attendance{EmployeeID: employeeID, Date: date}
	if existing != nil {
		record = *existing
	}
	record.ShortMinutes = shortMinutes
	record.TotalWorkedMinutes = 0
	record.SalaryEarned = decimal.NewNullDecimal(decimal.Zero)
	record.UnpaidLeave = shortMinutes > 0
	record.IsActive = true

	if existing == nil {
		if _, err := s.AttendanceRepository.Create(ctx, record); err != nil {
			return false, fmt.Errorf("failed to create absence: %w", err)
		}
		return true, nil
	}
	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return false, fmt.Errorf("failed to update absence: %w", err)
	}
	return true, nil
}

// ProcessMissingDays implements attendance.AttendanceService. Each past
// working day without a record is covered from leave first; the uncovered
// remainder becomes short minutes on an unpaid absence.
func (s *AttendanceServiceImpl) ProcessMissingDays(ctx context.Context, employeeID string, year int, month time.Month) (attendance.ProcessMissingResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.ProcessMissingResponse{}, err
	}

	resp := attendance.ProcessMissingResponse{EmployeeID: emp.ID}

	today := clock.Today(s.clock)
	first, last := workday.MonthBounds(year, month)
	from := maxDate(first, emp.JoiningDate)
	to := minDate(last, today.AddDate(0, 0, -1))
	if to.Before(from) {
		return resp, nil
	}
	holidays, err := s.holidaysBetween(ctx, from, to)
	if err != nil {
		return attendance.ProcessMissingResponse{}, err
	}
	days := workday.Between(from, to, holidays)

	required := s.rules.RequiredMinutes(false)
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		resp = attendance.ProcessMissingResponse{EmployeeID: emp.ID}
		for _, day := range days {
			existing, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, emp.ID, day)
			if err != nil {
				return fmt.Errorf("failed to get attendance: %w", err)
			}
			if existing != nil && !existing.IsPlaceholder() {
				continue
			}

			balance, err := s.ledger.CurrentBalance(ctx, emp.ID, year, month, &emp.JoiningDate)
			if err != nil {
				return fmt.Errorf("failed to get leave balance: %w", err)
			}
			covered := min(required, balance.AvailableMinutes)
			if covered > 0 {
				used, err := s.ledger.Utilize(ctx, emp.ID, year, month, covered)
				if err != nil {
					return fmt.Errorf("failed to utilize leave: %w", err)
				}
				if !used.Success {
					covered = 0
				}
			}
			remainder := required - covered

			if _, err := s.writeAbsence(ctx, emp.ID, day, remainder); err != nil {
				return err
			}
			resp.ProcessedDays++
			resp.LeaveDeductedMinutes += covered
			resp.ShortMinutesAdded += remainder
		}
		if resp.ProcessedDays == 0 {
			return nil
		}
		_, err := s.RecalculateSummary(ctx, emp.ID, year, month)
		return err
	})
	if err != nil {
		return attendance.ProcessMissingResponse{}, err
	}
	return resp, nil
}

// ProcessMissingDaysForAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ProcessMissingDaysForAll(ctx context.Context, year int, month time.Month) ([]attendance.ProcessMissingResponse, attendance.BatchResult, error) {
	employees, err := s.EmployeeRepository.List(ctx, true)
	if err != nil {
		return nil, attendance.BatchResult{}, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		results []attendance.ProcessMissingResponse
		batch   attendance.BatchResult
	)
	for _, emp := range employees {
		resp, err := s.ProcessMissingDays(ctx, emp.ID, year, month)
		if err != nil {
			slog.ErrorContext(ctx, "failed to process missing days", "employee_id", emp.ID, "error", err)
			batch.Failed++
			continue
		}
		batch.Processed++
		results = append(results, resp)
	}
	return results, batch, nil
}

// RunAutoCheckout implements attendance.AttendanceService. It closes the
// records of yesterday that were never checked out.
func (s *AttendanceServiceImpl) RunAutoCheckout(ctx context.Context) (attendance.BatchResult, error) {
	yesterday := clock.Today(s.clock).AddDate(0, 0, -1)

	open, err := s.AttendanceRepository.ListOpenByDate(ctx, yesterday)
	if err != nil {
		return attendance.BatchResult{}, fmt.Errorf("failed to list open attendance: %w", err)
	}

	var batch attendance.BatchResult
	for _, record := range open {
		closed, err := s.AutoCheckout(ctx, record.EmployeeID, yesterday)
		if err != nil {
			slog.ErrorContext(ctx, "auto checkout failed",
				"employee_id", record.EmployeeID,
				"date", workday.Key(yesterday),
				"error", err,
			)
			batch.Failed++
			continue
		}
		if closed {
			batch.Processed++
		}
	}

	slog.InfoContext(ctx, "auto checkout finished",
		"date", workday.Key(yesterday),
		"processed", batch.Processed,
		"failed", batch.Failed,
	)
	return batch, nil
}

// RunDailyBackfill implements attendance.AttendanceService. On working days
// it creates today's placeholders, then activates earlier ones.
func (s *AttendanceServiceImpl) RunDailyBackfill(ctx context.Context) (attendance.BatchResult, error) {
	today := clock.Today(s.clock)

	holidays, err := s.holidaysBetween(ctx, today, today)
	if err != nil {
		return attendance.BatchResult{}, err
	}

	var batch attendance.BatchResult
	if workday.IsWorkingDay(today, holidays) {
		employees, err := s.EmployeeRepository.List(ctx, true)
		if err != nil {
			return attendance.BatchResult{}, fmt.Errorf("failed to list employees: %w", err)
		}
		for _, emp := range employees {
			if emp.JoiningDate.After(today) {
				continue
			}
			if _, err := s.ensurePlaceholder(ctx, emp.ID, today); err != nil {
				slog.ErrorContext(ctx, "failed to create placeholder", "employee_id", emp.ID, "error", err)
				batch.Failed++
				continue
			}
			batch.Processed++
		}
	}

	activated, err := s.AttendanceRepository.ActivatePlaceholdersBefore(ctx, today)
	if err != nil {
		return batch, fmt.Errorf("failed to activate placeholders: %w", err)
	}

	slog.InfoContext(ctx, "daily backfill finished",
		"date", workday.Key(today),
		"created", batch.Processed,
		"failed", batch.Failed,
		"activated", activated,
	)
	return batch, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
