package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	db database.Transactor
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	ledger        leave.BalanceLedger
	summaries     attendance.SummaryRecalculator
	minutesPerDay int
	clock         clock.Clock
}

func NewLeaveService(
	db database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	ledger leave.BalanceLedger,
	summaries attendance.SummaryRecalculator,
	minutesPerDay int,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		AttendanceRepository:   attendanceRepository,
		EmployeeRepository:     employeeRepository,
		ledger:                 ledger,
		summaries:              summaries,
		minutesPerDay:          minutesPerDay,
		clock:                  clk,
	}
}

// RequestLeave implements leave.LeaveService. The paid/unpaid split is a
// projection; balance is only consumed on approval.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.RequestLeaveRequest) (leave.RequestLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestLeaveResponse{}, err
	}
	date, _ := workday.ParseDate(req.Date)
	days := req.RequestedDays()

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.RequestLeaveResponse{}, err
	}
	if !emp.IsActive {
		return leave.RequestLeaveResponse{}, attendance.ErrAccountInactive
	}

	today := clock.Today(s.clock)
	if date.Before(today) {
		return leave.RequestLeaveResponse{}, leave.ErrPastDate
	}

	exists, err := s.LeaveRequestRepository.ExistsForDate(ctx, emp.ID, date)
	if err != nil {
		return leave.RequestLeaveResponse{}, fmt.Errorf("failed to check leave requests: %w", err)
	}
	if exists {
		return leave.RequestLeaveResponse{}, leave.ErrLeaveRequestExists
	}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return leave.RequestLeaveResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record != nil && !record.IsPlaceholder() {
		return leave.RequestLeaveResponse{}, leave.ErrAttendanceExistsForDate
	}

	balance, err := s.ledger.CurrentBalance(ctx, emp.ID, date.Year(), date.Month(), &emp.JoiningDate)
	if err != nil {
		return leave.RequestLeaveResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	requested := s.daysToMinutes(days)
	split := leave.NewSplit(requested, balance.AvailableMinutes)

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:  emp.ID,
		Date:        date,
		Days:        days,
		Hours:       minutesToHours(requested),
		Status:      leave.LeaveRequestStatusPending,
		Reason:      req.Reason,
		UnpaidDays:  s.minutesToDays(split.UnpaidMinutes),
		UnpaidHours: minutesToHours(split.UnpaidMinutes),
	})
	if err != nil {
		return leave.RequestLeaveResponse{}, err
	}

	message := "Leave request submitted successfully."
	if split.UnpaidMinutes > 0 {
		message = fmt.Sprintf("Leave request submitted successfully. %s day(s) exceed your available balance and will be unpaid.",
			s.minutesToDays(split.UnpaidMinutes).String())
	}

	return leave.RequestLeaveResponse{
		LeaveRequestResponse: leave.NewLeaveRequestResponse(created),
		Message:              message,
		Breakdown: leave.LeaveBreakdown{
			AvailableBalanceDays: s.minutesToDays(balance.AvailableMinutes),
			RequestedDays:        days,
			PaidDays:             s.minutesToDays(split.PaidMinutes),
			UnpaidDays:           s.minutesToDays(split.UnpaidMinutes),
			IsNextMonth:          isLaterMonth(date, today),
		},
	}, nil
}

// ApproveLeave implements leave.LeaveService. The split is recomputed against
// the balance at approval time and the day's attendance record is written as
// a leave day, unpaid for the uncovered remainder.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, id string) (leave.ApproveLeaveResponse, error) {
	var (
		approved leave.LeaveRequest
		split    leave.Split
		recordID string
	)

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
		if err != nil {
			return err
		}

		existing, err := s.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, emp.ID, request.Date)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if existing != nil && !existing.IsPlaceholder() {
			return leave.ErrAttendanceExistsForDate
		}

		year, month := request.Date.Year(), request.Date.Month()
		balance, err := s.ledger.CurrentBalance(ctx, emp.ID, year, month, &emp.JoiningDate)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}

		requested := s.daysToMinutes(request.Days)
		split = leave.NewSplit(requested, balance.AvailableMinutes)
		if split.PaidMinutes > 0 {
			used, err := s.ledger.Utilize(ctx, emp.ID, year, month, split.PaidMinutes)
			if err != nil {
				return err
			}
			if !used.Success {
				// The balance shrank since it was read; settle for what is left.
				split = leave.NewSplit(requested, used.RemainingMinutes)
				if split.PaidMinutes > 0 {
					if used, err = s.ledger.Utilize(ctx, emp.ID, year, month, split.PaidMinutes); err != nil {
						return err
					}
					if !used.Success {
						split = leave.NewSplit(requested, 0)
					}
				}
			}
		}

		record := attendance.Attendance{EmployeeID: emp.ID, Date: request.Date}
		if existing != nil {
			record = *existing
		}
		record.ShortMinutes = split.UnpaidMinutes
		record.TotalWorkedMinutes = 0
		record.SalaryEarned = decimal.NewNullDecimal(decimal.Zero)
		record.UnpaidLeave = split.UnpaidMinutes > 0
		record.IsActive = true

		if existing == nil {
			created, err := s.AttendanceRepository.Create(ctx, record)
			if err != nil {
				return fmt.Errorf("failed to create leave attendance: %w", err)
			}
			recordID = created.ID
		} else {
			if err := s.AttendanceRepository.Update(ctx, record); err != nil {
				return fmt.Errorf("failed to update leave attendance: %w", err)
			}
			recordID = record.ID
		}

		if record.UnpaidLeave {
			if _, err := s.summaries.RecalculateSummary(ctx, emp.ID, year, month); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		request.Status = leave.LeaveRequestStatusApproved
		request.UnpaidDays = s.minutesToDays(split.UnpaidMinutes)
		request.UnpaidHours = minutesToHours(split.UnpaidMinutes)
		request.ProcessedAt = &now
		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return err
		}
		approved = request
		return nil
	})
	if err != nil {
		return leave.ApproveLeaveResponse{}, err
	}

	slog.InfoContext(ctx, "leave request approved",
		"leave_request_id", approved.ID,
		"employee_id", approved.EmployeeID,
		"paid_minutes", split.PaidMinutes,
		"unpaid_minutes", split.UnpaidMinutes,
	)

	return leave.ApproveLeaveResponse{
		LeaveRequestResponse: leave.NewLeaveRequestResponse(approved),
		PaidMinutes:          split.PaidMinutes,
		UnpaidMinutes:        split.UnpaidMinutes,
		AttendanceID:         recordID,
	}, nil
}

// RejectLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeave(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	var rejected leave.LeaveRequest
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		now := s.clock.Now()
		request.Status = leave.LeaveRequestStatusRejected
		request.ProcessedAt = &now
		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return err
		}
		rejected = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(rejected), nil
}

// GetMyRequests implements leave.LeaveService. Without a month and year it
// lists every request of the employee.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, employeeID string, year *int, month *int) ([]leave.LeaveRequestResponse, error) {
	filter := leave.LeaveRequestFilter{EmployeeID: &employeeID}
	if year != nil && month != nil {
		first, last := workday.MonthBounds(*year, time.Month(*month))
		filter.From, filter.To = &first, &last
	}
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, leave.NewLeaveRequestResponse(r))
	}
	return out, nil
}

// GetBalance implements leave.LeaveService. The month defaults to the current one.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string, year *int, month *int) (leave.BalanceResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	today := clock.Today(s.clock)
	y, m := today.Year(), today.Month()
	if year != nil {
		y = *year
	}
	if month != nil {
		m = time.Month(*month)
	}

	view, err := s.ledger.CurrentBalance(ctx, emp.ID, y, m, &emp.JoiningDate)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.BalanceResponse{
		EmployeeID:       emp.ID,
		Month:            int(m),
		Year:             y,
		BalanceMinutes:   view.BalanceMinutes,
		UtilizedMinutes:  view.UtilizedMinutes,
		AvailableMinutes: view.AvailableMinutes,
		CarryoverMinutes: view.CarryoverMinutes,
		AvailableHours:   math.Round(float64(view.AvailableMinutes)/60*100) / 100,
		AvailableDays:    math.Round(float64(view.AvailableMinutes)/float64(s.minutesPerDay)*100) / 100,
	}, nil
}

func (s *LeaveServiceImpl) daysToMinutes(days decimal.Decimal) int {
	return int(days.Mul(decimal.NewFromInt(int64(s.minutesPerDay))).IntPart())
}

func (s *LeaveServiceImpl) minutesToDays(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(int64(s.minutesPerDay))).Round(2)
}

func minutesToHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60))
}

// isLaterMonth reports whether date falls in a month after today's.
func isLaterMonth(date, today time.Time) bool {
	return date.Year()*12+int(date.Month()) > today.Year()*12+int(today.Month())
}
