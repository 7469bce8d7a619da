package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/qrcode"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db database.Transactor
	attendance.AttendanceRepository
	attendance.SummaryRepository
	attendance.DeductionRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	leave.LeaveRequestRepository
	ledger     leave.BalanceLedger
	rules      *Rules
	calculator SalaryCalculator
	qr         *qrcode.Validator
	clock      clock.Clock
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	summaryRepository attendance.SummaryRepository,
	deductionRepository attendance.DeductionRepository,
	employeeRepository employee.EmployeeRepository,
	holidayRepository holiday.HolidayRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	ledger leave.BalanceLedger,
	rules *Rules,
	qr *qrcode.Validator,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                     db,
		AttendanceRepository:   attendanceRepository,
		SummaryRepository:      summaryRepository,
		DeductionRepository:    deductionRepository,
		EmployeeRepository:     employeeRepository,
		HolidayRepository:      holidayRepository,
		LeaveRequestRepository: leaveRequestRepository,
		ledger:                 ledger,
		rules:                  rules,
		calculator:             NewSalaryCalculator(rules),
		qr:                     qr,
		clock:                  clk,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}
	checkIn, _ := validator.IsValidDateTime(req.CheckInDateTime)
	if _, err := s.qr.Validate(req.QRCode, checkIn); err != nil {
		return attendance.CheckInResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !emp.IsActive {
		return attendance.CheckInResponse{}, attendance.ErrAccountInactive
	}

	date := s.rules.DateOf(checkIn)
	class := s.rules.Classify(checkIn, date)

	var record attendance.Attendance
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if existing == nil {
			record, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID:  emp.ID,
				Date:        date,
				CheckInTime: &checkIn,
				IsLate:      class.IsLate,
				IsHalfDay:   class.IsHalfDay,
				IsActive:    true,
			})
			if errors.Is(err, attendance.ErrAttendanceExists) {
				return attendance.ErrAlreadyCheckedIn
			}
			return err
		}

		if existing.CheckInTime != nil {
			return attendance.ErrAlreadyCheckedIn
		}
		if !existing.IsPlaceholder() {
			return attendance.ErrDayNotWorkable
		}

		record = *existing
		record.CheckInTime = &checkIn
		record.IsLate = class.IsLate
		record.IsHalfDay = class.IsHalfDay
		record.IsActive = true
		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	message := "Checked in successfully"
	switch {
	case class.IsHalfDay:
		message = "Checked in successfully. Marked as half day"
	case class.IsLate:
		message = "Checked in successfully. Marked as late"
	}

	return attendance.CheckInResponse{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID,
		Date:        workday.Key(record.Date),
		CheckInTime: checkIn,
		IsLate:      class.IsLate,
		IsHalfDay:   class.IsHalfDay,
		Message:     message,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}
	checkOut, _ := validator.IsValidDateTime(req.CheckOutDateTime)
	if _, err := s.qr.Validate(req.QRCode, checkOut); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	date := s.rules.DateOf(checkOut)

	var settled settlement
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if record == nil || record.CheckInTime == nil {
			return attendance.ErrNoCheckIn
		}
		if record.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if !checkOut.After(*record.CheckInTime) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		settled, err = s.settle(ctx, emp, *record, *record.CheckInTime, checkOut, true)
		return err
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return newCheckOutResponse(settled, "Checked out successfully"), nil
}

// AdminCreate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdminCreate(ctx context.Context, req attendance.AdminCreateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := workday.ParseDate(req.Date)
	checkIn, _ := validator.IsValidDateTime(req.CheckInTime)
	checkOut, _ := validator.IsValidDateTime(req.CheckOutTime)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var settled settlement
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		var record attendance.Attendance
		switch {
		case existing == nil:
			record, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID:  emp.ID,
				Date:        date,
				CheckInTime: &checkIn,
				IsActive:    true,
			})
			if err != nil {
				return err
			}
		case existing.IsPlaceholder():
			record = *existing
		default:
			return attendance.ErrAttendanceExists
		}

		settled, err = s.settle(ctx, emp, record, checkIn, checkOut, true)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(settled.record), nil
}

// AdminCorrect implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdminCorrect(ctx context.Context, id string, req attendance.AdminCorrectRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var settled settlement
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.AttendanceRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		checkIn, checkOut := record.CheckInTime, record.CheckOutTime
		if req.CheckInTime != nil {
			t, _ := validator.IsValidDateTime(*req.CheckInTime)
			checkIn = &t
		}
		if req.CheckOutTime != nil {
			t, _ := validator.IsValidDateTime(*req.CheckOutTime)
			checkOut = &t
		}
		if checkIn == nil || checkOut == nil {
			return attendance.ErrIncompleteTimes
		}
		if !checkOut.After(*checkIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		emp, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID)
		if err != nil {
			return err
		}

		settled, err = s.settle(ctx, emp, record, *checkIn, *checkOut, !record.IsCheckedOut())
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(settled.record), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.AttendanceRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.AttendanceRepository.SoftDelete(ctx, id, s.clock.Now()); err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		if err := s.DeductionRepository.DeleteByAttendanceID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete deductions: %w", err)
		}
		if !record.CountsTowardSummary() {
			return nil
		}
		_, err = s.RecalculateSummary(ctx, record.EmployeeID, record.Date.Year(), record.Date.Month())
		return err
	})
}

// AutoCheckout implements attendance.AttendanceService. It reports whether
// a record was closed.
func (s *AttendanceServiceImpl) AutoCheckout(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	closed := false
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if record == nil || !record.IsCheckedIn() {
			return nil
		}

		checkOut := s.rules.EndOfDay(date)
		if !checkOut.After(*record.CheckInTime) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if _, err := s.settle(ctx, emp, *record, *record.CheckInTime, checkOut, true); err != nil {
			return err
		}
		closed = true
		return nil
	})
	return closed, err
}

// settlement is the outcome of pricing one closed day.
type settlement struct {
	record        attendance.Attendance
	result        attendance.SalaryResult
	leaveUtilized int
}

// settle finalizes a record with the given times: salary, leave utilization,
// deduction ledger and monthly summary. It must run inside a transaction.
// With utilizeLeave false the day is repriced against the current balance
// without drawing on it again.
func (s *AttendanceServiceImpl) settle(ctx context.Context, emp employee.Employee, record attendance.Attendance, checkIn, checkOut time.Time, utilizeLeave bool) (settlement, error) {
	if record.IsPublicHoliday {
		return settlement{}, attendance.ErrDayNotWorkable
	}
	year, month := record.Date.Year(), record.Date.Month()
	class := s.rules.Classify(checkIn, record.Date)

	shortSoFar, err := s.monthlyShortSoFar(ctx, emp.ID, record.Date, record.ID)
	if err != nil {
		return settlement{}, err
	}

	balance, err := s.ledger.CurrentBalance(ctx, emp.ID, year, month, &emp.JoiningDate)
	if err != nil {
		return settlement{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	input := attendance.SalaryInput{
		CheckIn:                  checkIn,
		CheckOut:                 checkOut,
		Date:                     record.Date,
		IsHalfDay:                class.IsHalfDay,
		DailySalary:              emp.DailySalary,
		MonthlyShortMinutesSoFar: shortSoFar,
		AvailableLeaveMinutes:    balance.AvailableMinutes,
	}

	var (
		result   attendance.SalaryResult
		utilized int
	)
	if utilizeLeave {
		result, utilized, err = s.utilizeShortfall(ctx, emp.ID, year, month, input)
		if err != nil {
			return settlement{}, err
		}
	} else {
		result = s.calculator.Calculate(input)
	}

	record.CheckInTime = &checkIn
	record.CheckOutTime = &checkOut
	record.TotalWorkedMinutes = result.WorkedMinutes
	record.ShortMinutes = result.ShortMinutes
	record.SalaryEarned = decimal.NewNullDecimal(result.SalaryEarned)
	record.IsLate = class.IsLate
	record.IsHalfDay = class.IsHalfDay
	record.UnpaidLeave = false
	record.IsActive = true
	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return settlement{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	if err := s.DeductionRepository.DeleteByAttendanceID(ctx, record.ID); err != nil {
		return settlement{}, fmt.Errorf("failed to clear deductions: %w", err)
	}
	if result.DeductionMinutes > 0 {
		_, err := s.DeductionRepository.Create(ctx, attendance.Deduction{
			EmployeeID:      emp.ID,
			AttendanceID:    record.ID,
			DeductedMinutes: result.DeductionMinutes,
			DeductedAmount:  result.DeductedAmount,
			Reason:          fmt.Sprintf("Short hours deduction for %s", workday.Key(record.Date)),
		})
		if err != nil {
			return settlement{}, fmt.Errorf("failed to create deduction: %w", err)
		}
	}

	if _, err := s.RecalculateSummary(ctx, emp.ID, year, month); err != nil {
		return settlement{}, err
	}

	slog.DebugContext(ctx, "attendance settled",
		"attendance_id", record.ID,
		"employee_id", emp.ID,
		"worked_minutes", result.WorkedMinutes,
		"short_minutes", result.ShortMinutes,
		"leave_utilized_minutes", utilized,
		"deduction_minutes", result.DeductionMinutes,
	)

	return settlement{record: record, result: result, leaveUtilized: utilized}, nil
}

// utilizeShortfall prices the day and draws its shortfall from leave. When
// the pool shrank after it was read, the day is repriced against what is left
// and the smaller amount drawn, so every short minute ends up either covered
// or deducted.
func (s *AttendanceServiceImpl) utilizeShortfall(ctx context.Context, employeeID string, year int, month time.Month, input attendance.SalaryInput) (attendance.SalaryResult, int, error) {
	for {
		result := s.calculator.Calculate(input)
		use := min(result.ShortMinutes, input.AvailableLeaveMinutes)
		if use <= 0 {
			return result, 0, nil
		}

		used, err := s.ledger.Utilize(ctx, employeeID, year, month, use)
		if err != nil {
			return attendance.SalaryResult{}, 0, fmt.Errorf("failed to utilize leave: %w", err)
		}
		if used.Success {
			return result, use, nil
		}
		// RemainingMinutes < use <= AvailableLeaveMinutes, so this terminates.
		input.AvailableLeaveMinutes = used.RemainingMinutes
	}
}

// monthlyShortSoFar sums short minutes of the other checked-out days of the month.
func (s *AttendanceServiceImpl) monthlyShortSoFar(ctx context.Context, employeeID string, date time.Time, excludeID string) (int, error) {
	records, err := s.monthRecords(ctx, employeeID, date.Year(), date.Month())
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range records {
		if r.ID != excludeID && r.IsCheckedOut() {
			total += r.ShortMinutes
		}
	}
	return total, nil
}

func (s *AttendanceServiceImpl) monthRecords(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	first, last := workday.MonthBounds(year, month)
	records, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{
		EmployeeID: &employeeID,
		From:       &first,
		To:         &last,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func newCheckOutResponse(s settlement, message string) attendance.CheckOutResponse {
	return attendance.CheckOutResponse{
		ID:                   s.record.ID,
		EmployeeID:           s.record.EmployeeID,
		Date:                 workday.Key(s.record.Date),
		CheckInTime:          *s.record.CheckInTime,
		CheckOutTime:         *s.record.CheckOutTime,
		TotalWorkedMinutes:   s.result.WorkedMinutes,
		ShortMinutes:         s.result.ShortMinutes,
		LeaveUtilizedMinutes: s.leaveUtilized,
		DeductionMinutes:     s.result.DeductionMinutes,
		DeductedAmount:       s.result.DeductedAmount,
		SalaryEarned:         s.result.SalaryEarned,
		Message:              message,
	}
}
