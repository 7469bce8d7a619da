package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	id, employee_id, month, year, balance_minutes, utilized_minutes, carryover_minutes, created_at, updated_at
`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var (
		b          leave.LeaveBalance
		monthValue int
	)
	err := row.Scan(
		&b.ID, &b.EmployeeID, &monthValue, &b.Year,
		&b.BalanceMinutes, &b.UtilizedMinutes, &b.CarryoverMinutes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	b.Month = time.Month(monthValue)
	return b, err
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string, year int, month time.Month) (*leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2 AND month = $3`

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, year, int(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return &b, nil
}

// CreateIfAbsent implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) CreateIfAbsent(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_balances (employee_id, month, year, balance_minutes, utilized_minutes, carryover_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, month, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert,
		balance.EmployeeID, int(balance.Month), balance.Year,
		balance.BalanceMinutes, balance.UtilizedMinutes, balance.CarryoverMinutes,
	); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	stored, err := r.Get(ctx, balance.EmployeeID, balance.Year, balance.Month)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if stored == nil {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return *stored, nil
}

// ApplyCarryover implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ApplyCarryover(ctx context.Context, id string, carryoverMinutes int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		UPDATE leave_balances
		SET balance_minutes = balance_minutes + $1,
			carryover_minutes = $1,
			updated_at = NOW()
		WHERE id = $2 AND carryover_minutes = 0`, carryoverMinutes, id); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to apply leave carryover: %w", err)
	}

	b, err := scanLeaveBalance(q.QueryRow(ctx, `SELECT `+leaveBalanceColumns+` FROM leave_balances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// Utilize implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Utilize(ctx context.Context, id string, minutes int) (bool, int, error) {
	q := GetQuerier(ctx, r.db)

	var available int
	err := q.QueryRow(ctx, `
		UPDATE leave_balances
		SET utilized_minutes = utilized_minutes + $1,
			updated_at = NOW()
		WHERE id = $2 AND balance_minutes - utilized_minutes >= $1
		RETURNING balance_minutes - utilized_minutes`, minutes, id).Scan(&available)
	if err == nil {
		return true, available, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, 0, fmt.Errorf("failed to utilize leave balance: %w", err)
	}

	err = q.QueryRow(ctx, `SELECT GREATEST(balance_minutes - utilized_minutes, 0) FROM leave_balances WHERE id = $1`, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, leave.ErrLeaveBalanceNotFound
		}
		return false, 0, fmt.Errorf("failed to read leave balance: %w", err)
	}
	return false, available, nil
}
