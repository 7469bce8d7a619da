package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/config"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
)

// Ledger grants a fixed monthly leave pool plus capped carryover of the
// previous month's unused minutes.
type Ledger struct {
	leave.LeaveBalanceRepository
	monthlyGrantMinutes int
	maxCarryoverMinutes int
}

func NewLedger(leaveBalanceRepository leave.LeaveBalanceRepository, cfg config.AttendanceConfig) *Ledger {
	return &Ledger{
		LeaveBalanceRepository: leaveBalanceRepository,
		monthlyGrantMinutes:    cfg.PaidLeavesPerMonthDays * cfg.MinutesPerWorkDay,
		maxCarryoverMinutes:    cfg.MaxCarryoverLeaveDays * cfg.MinutesPerWorkDay,
	}
}

// GetOrCreate returns the month's balance, creating it with the monthly grant
// and folding in the previous month's carryover on first use. joiningDate is
// accepted for proration of the joining month, which is not applied.
func (l *Ledger) GetOrCreate(ctx context.Context, employeeID string, year int, month time.Month, joiningDate *time.Time) (leave.LeaveBalance, error) {
	balance, err := l.LeaveBalanceRepository.Get(ctx, employeeID, year, month)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	if balance == nil {
		created, err := l.LeaveBalanceRepository.CreateIfAbsent(ctx, leave.LeaveBalance{
			EmployeeID:     employeeID,
			Month:          month,
			Year:           year,
			BalanceMinutes: l.monthlyGrantMinutes,
		})
		if err != nil {
			return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
		}
		balance = &created
	}

	if balance.CarryoverMinutes > 0 {
		return *balance, nil
	}

	carryover, err := l.CarryoverFrom(ctx, employeeID, year, month)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if carryover == 0 {
		return *balance, nil
	}

	updated, err := l.LeaveBalanceRepository.ApplyCarryover(ctx, balance.ID, carryover)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to apply leave carryover: %w", err)
	}
	return updated, nil
}

// CarryoverFrom returns the previous month's unused minutes, capped.
func (l *Ledger) CarryoverFrom(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	balance, err := l.LeaveBalanceRepository.Get(ctx, employeeID, prev.Year(), prev.Month())
	if err != nil {
		return 0, fmt.Errorf("failed to get previous leave balance: %w", err)
	}
	if balance == nil {
		return 0, nil
	}
	return min(balance.Available(), l.maxCarryoverMinutes), nil
}

// Utilize consumes minutes from the month's balance. An insufficient balance
// leaves it untouched and reports Success false.
func (l *Ledger) Utilize(ctx context.Context, employeeID string, year int, month time.Month, minutes int) (leave.UtilizeResult, error) {
	balance, err := l.GetOrCreate(ctx, employeeID, year, month, nil)
	if err != nil {
		return leave.UtilizeResult{}, err
	}
	if minutes <= 0 {
		return leave.UtilizeResult{Success: true, RemainingMinutes: balance.Available()}, nil
	}

	ok, remaining, err := l.LeaveBalanceRepository.Utilize(ctx, balance.ID, minutes)
	if err != nil {
		return leave.UtilizeResult{}, fmt.Errorf("failed to utilize leave balance: %w", err)
	}
	return leave.UtilizeResult{Success: ok, RemainingMinutes: max(0, remaining)}, nil
}

func (l *Ledger) CurrentBalance(ctx context.Context, employeeID string, year int, month time.Month, joiningDate *time.Time) (leave.BalanceView, error) {
	balance, err := l.GetOrCreate(ctx, employeeID, year, month, joiningDate)
	if err != nil {
		return leave.BalanceView{}, err
	}
	return balance.View(), nil
}
