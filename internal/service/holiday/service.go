package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type HolidayServiceImpl struct {
	db database.Transactor
	holiday.HolidayRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	deductions attendance.DeductionRepository
	summaries  attendance.SummaryRecalculator
}

func NewHolidayService(
	db database.Transactor,
	holidayRepository holiday.HolidayRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	deductionRepository attendance.DeductionRepository,
	summaries attendance.SummaryRecalculator,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                   db,
		HolidayRepository:    holidayRepository,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		deductions:           deductionRepository,
		summaries:            summaries,
	}
}

// Create implements holiday.HolidayService. Every active employee's record
// for the date is stamped as a holiday, created when missing. An employee
// whose stamping fails is logged and skipped.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.CreateHolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.CreateHolidayResponse{}, err
	}
	date, _ := workday.ParseDate(req.Date)

	var (
		created holiday.PublicHoliday
		stamped int
	)
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.HolidayRepository.Create(ctx, holiday.PublicHoliday{
			Date:        date,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
		})
		if err != nil {
			return err
		}

		employees, err := s.EmployeeRepository.List(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		for _, emp := range employees {
			if emp.JoiningDate.After(date) {
				continue
			}
			err := s.db.WithinTx(ctx, func(ctx context.Context) error {
				return s.stamp(ctx, emp.ID, date)
			})
			if err != nil {
				slog.ErrorContext(ctx, "failed to stamp public holiday",
					"employee_id", emp.ID,
					"date", req.Date,
					"error", err,
				)
				continue
			}
			stamped++
		}
		return nil
	})
	if err != nil {
		return holiday.CreateHolidayResponse{}, err
	}

	return holiday.CreateHolidayResponse{
		HolidayResponse: holiday.NewHolidayResponse(created),
		StampedRecords:  stamped,
	}, nil
}

// stamp overwrites the employee's record for date as a zero-impact holiday.
// Worked values are discarded and not restored by deleting the holiday. A
// record that counted toward the month loses its deduction and the summary
// is rebuilt.
func (s *HolidayServiceImpl) stamp(ctx context.Context, employeeID string, date time.Time) error {
	record, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to get attendance: %w", err)
	}

	if record == nil {
		_, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:      employeeID,
			Date:            date,
			SalaryEarned:    decimal.NewNullDecimal(decimal.Zero),
			IsPublicHoliday: true,
			IsActive:        true,
		})
		return err
	}
	if record.IsPublicHoliday {
		return nil
	}

	counted := record.CountsTowardSummary()
	record.CheckInTime = nil
	record.CheckOutTime = nil
	record.TotalWorkedMinutes = 0
	record.ShortMinutes = 0
	record.SalaryEarned = decimal.NewNullDecimal(decimal.Zero)
	record.IsLate = false
	record.IsHalfDay = false
	record.UnpaidLeave = false
	record.IsPublicHoliday = true
	record.IsActive = true
	if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
		return fmt.Errorf("failed to stamp attendance: %w", err)
	}
	if err := s.deductions.DeleteByAttendanceID(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to clear deductions: %w", err)
	}

	if counted {
		if _, err := s.summaries.RecalculateSummary(ctx, employeeID, date.Year(), date.Month()); err != nil {
			return err
		}
	}
	return nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.NewHolidayResponse(h))
	}
	return out, nil
}

// GetByID implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetByID(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(h), nil
}

// Update implements holiday.HolidayService.
func (s *HolidayServiceImpl) Update(ctx context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	if err := s.HolidayRepository.Update(ctx, h); err != nil {
		return holiday.HolidayResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// Delete implements holiday.HolidayService. Stamped records become
// placeholders; their worked values were discarded when stamped.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) (holiday.DeleteHolidayResponse, error) {
	var unstamped int
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		h, err := s.HolidayRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}

		records, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{From: &h.Date, To: &h.Date})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		for _, record := range records {
			if !record.IsPublicHoliday {
				continue
			}
			record.IsPublicHoliday = false
			if record.CheckInTime == nil {
				record.SalaryEarned = decimal.NullDecimal{}
			}
			if err := s.AttendanceRepository.Update(ctx, record); err != nil {
				return fmt.Errorf("failed to unstamp attendance: %w", err)
			}
			unstamped++
		}

		return s.HolidayRepository.Delete(ctx, id)
	})
	if err != nil {
		return holiday.DeleteHolidayResponse{}, err
	}
	return holiday.DeleteHolidayResponse{UnstampedRecords: unstamped}, nil
}
