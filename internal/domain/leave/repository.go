package leave

import (
	"context"
	"time"
)

type LeaveBalanceRepository interface {
	// Get returns nil, nil when the month has no balance yet.
	Get(ctx context.Context, employeeID string, year int, month time.Month) (*LeaveBalance, error)

	// CreateIfAbsent inserts the balance unless one already exists for the
	// employee-month, and returns the stored row either way.
	CreateIfAbsent(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)

	// ApplyCarryover adds carryoverMinutes to the balance and records it, only
	// while no carryover has been applied yet. It returns the stored row.
	ApplyCarryover(ctx context.Context, id string, carryoverMinutes int) (LeaveBalance, error)

	// Utilize atomically adds minutes to utilized when enough balance is
	// available. It returns whether it did and the available minutes after.
	Utilize(ctx context.Context, id string, minutes int) (bool, int, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// UpdateStatus moves a pending request to its final status. It returns
	// ErrLeaveRequestAlreadyProcessed when the request is no longer pending.
	UpdateStatus(ctx context.Context, request LeaveRequest) error
}
