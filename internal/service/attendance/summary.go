package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// workingDaysPerMonth is the nominal month used to present a monthly salary.
const workingDaysPerMonth = 22

// RecalculateSummary implements attendance.SummaryRecalculator.
func (s *AttendanceServiceImpl) RecalculateSummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	records, err := s.monthRecords(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	summary := attendance.MonthlySummary{
		EmployeeID:        employeeID,
		Month:             month,
		Year:              year,
		TotalSalaryEarned: decimal.Zero,
	}
	for _, r := range records {
		if !r.CountsTowardSummary() {
			continue
		}
		summary.TotalWorkedMinutes += r.TotalWorkedMinutes
		summary.TotalShortMinutes += r.ShortMinutes
		if r.SalaryEarned.Valid {
			summary.TotalSalaryEarned = summary.TotalSalaryEarned.Add(r.SalaryEarned.Decimal)
		}
	}

	summary, err = s.SummaryRepository.Upsert(ctx, summary)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}
	return summary, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := clock.Today(s.clock)
	holidays, err := s.holidaysBetween(ctx, today, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	isWorkingDay := workday.IsWorkingDay(today, holidays)

	var record *attendance.Attendance
	if isWorkingDay && emp.IsActive {
		r, err := s.ensurePlaceholder(ctx, emp.ID, today)
		if err != nil {
			return attendance.TodayResponse{}, err
		}
		record = &r
	} else {
		record, err = s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			return attendance.TodayResponse{}, fmt.Errorf("failed to get attendance: %w", err)
		}
	}

	resp := attendance.TodayResponse{
		Date:         workday.Key(today),
		IsWorkingDay: isWorkingDay,
		NextAction:   attendance.ActionNone,
	}
	switch {
	case record == nil || record.IsPlaceholder():
		resp.NextAction = attendance.ActionCheckIn
	case record.IsCheckedIn():
		resp.NextAction = attendance.ActionCheckOut
	}
	if record != nil {
		r := attendance.NewAttendanceResponse(*record)
		resp.Attendance = &r
	}
	return resp, nil
}

// GetMyHistory implements attendance.AttendanceService. Date-range reads
// create placeholders for missing working days; current-month reads turn
// past missing days into unpaid absences.
func (s *AttendanceServiceImpl) GetMyHistory(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	today := clock.Today(s.clock)

	var from, to time.Time
	if filter.IsRange() {
		from, _ = workday.ParseDate(*filter.StartDate)
		to, _ = workday.ParseDate(*filter.EndDate)
		if err := s.backfillPlaceholders(ctx, emp, from, minDate(to, today)); err != nil {
			return nil, err
		}
	} else {
		year, month := today.Year(), today.Month()
		if filter.Year != nil {
			year = *filter.Year
		}
		if filter.Month != nil {
			month = time.Month(*filter.Month)
		}
		from, to = workday.MonthBounds(year, month)
		if year == today.Year() && month == today.Month() {
			if err := s.backfillAbsences(ctx, emp, today); err != nil {
				return nil, err
			}
		}
	}

	records, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{
		EmployeeID: &emp.ID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var filter attendance.ListFilter
	if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}
	if req.StartDate != "" {
		from, _ := workday.ParseDate(req.StartDate)
		filter.From = &from
	}
	if req.EndDate != "" {
		to, _ := workday.ParseDate(req.EndDate)
		filter.To = &to
	}

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// GetDashboard implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDashboard(ctx context.Context, employeeID string) (attendance.DashboardResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.DashboardResponse{}, err
	}

	today := clock.Today(s.clock)
	year, month := today.Year(), today.Month()
	first, last := workday.MonthBounds(year, month)

	if err := s.backfillAbsences(ctx, emp, today); err != nil {
		return attendance.DashboardResponse{}, err
	}

	var (
		records     []attendance.Attendance
		allRecords  []attendance.Attendance
		deductions  []attendance.Deduction
		balance     leave.BalanceView
		requests    []leave.LeaveRequest
		workingDays int
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.monthRecords(gCtx, emp.ID, year, month)
		return err
	})

	g.Go(func() error {
		var err error
		allRecords, err = s.AttendanceRepository.List(gCtx, attendance.ListFilter{EmployeeID: &emp.ID})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		deductions, err = s.DeductionRepository.ListByEmployee(gCtx, emp.ID, &first, &last)
		if err != nil {
			return fmt.Errorf("failed to list deductions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		balance, err = s.ledger.CurrentBalance(gCtx, emp.ID, year, month, &emp.JoiningDate)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		requests, err = s.LeaveRequestRepository.List(gCtx, leave.LeaveRequestFilter{
			EmployeeID: &emp.ID,
			From:       &first,
			To:         &last,
		})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		holidays, err := s.holidaysBetween(gCtx, first, last)
		if err != nil {
			return err
		}
		workingDays = workday.CountInMonth(year, month, holidays)
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.DashboardResponse{}, err
	}

	current := attendance.DashboardMonth{
		Month:                 int(month),
		Year:                  year,
		SalaryEarnedThisMonth: decimal.Zero,
		TotalDeductions:       decimal.Zero,
		WorkingDays:           workingDays,
		LeaveBalance: attendance.DashboardLeaveBalance{
			TotalHours:     minutesToHours(balance.BalanceMinutes),
			UtilizedHours:  minutesToHours(balance.UtilizedMinutes),
			AvailableHours: minutesToHours(balance.AvailableMinutes),
			CarryoverHours: minutesToHours(balance.CarryoverMinutes),
		},
		LeaveRequests: make([]leave.LeaveRequestResponse, 0, len(requests)),
	}
	for _, r := range records {
		if !r.CountsTowardSummary() {
			continue
		}
		current.TotalWorkedMinutes += r.TotalWorkedMinutes
		current.TotalShortMinutes += r.ShortMinutes
		if r.SalaryEarned.Valid {
			current.SalaryEarnedThisMonth = current.SalaryEarnedThisMonth.Add(r.SalaryEarned.Decimal)
		}
		if r.IsCheckedOut() {
			current.DaysWorked++
		}
	}
	for _, d := range deductions {
		current.TotalDeductions = current.TotalDeductions.Add(d.DeductedAmount)
	}
	leaveHours := 0
	for _, r := range requests {
		if r.Status == leave.LeaveRequestStatusApproved {
			leaveHours += r.Hours - r.UnpaidHours
		}
		current.LeaveRequests = append(current.LeaveRequests, leave.NewLeaveRequestResponse(r))
	}
	current.LeavesInHours = float64(leaveHours)

	total := decimal.Zero
	for _, r := range allRecords {
		if r.CountsTowardSummary() && r.SalaryEarned.Valid {
			total = total.Add(r.SalaryEarned.Decimal)
		}
	}

	return attendance.DashboardResponse{
		Employee:     s.dashboardEmployee(emp),
		CurrentMonth: current,
		TotalSalary:  total,
	}, nil
}

func (s *AttendanceServiceImpl) dashboardEmployee(emp employee.Employee) attendance.DashboardEmployee {
	required := int64(s.rules.RequiredMinutes(false))
	hourly := decimal.Zero
	if required > 0 {
		hourly = emp.DailySalary.Mul(decimal.NewFromInt(60)).Div(decimal.NewFromInt(required)).Round(2)
	}
	return attendance.DashboardEmployee{
		ID:            emp.ID,
		FullName:      emp.FullName,
		Designation:   emp.Designation,
		DailySalary:   emp.DailySalary,
		SalaryPerHour: hourly,
		MonthlySalary: emp.DailySalary.Mul(decimal.NewFromInt(workingDaysPerMonth)),
		JoiningDate:   workday.Key(emp.JoiningDate),
	}
}

func (s *AttendanceServiceImpl) holidaysBetween(ctx context.Context, from, to time.Time) (workday.Holidays, error) {
	list, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	dates := make([]time.Time, 0, len(list))
	for _, h := range list {
		dates = append(dates, h.Date)
	}
	return workday.NewHolidays(dates...), nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.NewAttendanceResponse(r))
	}
	return out
}

func minutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
