package leave

import (
	"context"
	"time"
)

// BalanceLedger manages the monthly leave pools.
type BalanceLedger interface {
	GetOrCreate(ctx context.Context, employeeID string, year int, month time.Month, joiningDate *time.Time) (LeaveBalance, error)
	CarryoverFrom(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
	Utilize(ctx context.Context, employeeID string, year int, month time.Month, minutes int) (UtilizeResult, error)
	CurrentBalance(ctx context.Context, employeeID string, year int, month time.Month, joiningDate *time.Time) (BalanceView, error)
}

type LeaveService interface {
	RequestLeave(ctx context.Context, req RequestLeaveRequest) (RequestLeaveResponse, error)
	ApproveLeave(ctx context.Context, id string) (ApproveLeaveResponse, error)
	RejectLeave(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context, employeeID string, year *int, month *int) ([]LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetBalance(ctx context.Context, employeeID string, year *int, month *int) (BalanceResponse, error)
}
