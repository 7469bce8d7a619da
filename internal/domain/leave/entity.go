package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveBalance is one employee's leave pool for one month, in minutes.
type LeaveBalance struct {
	ID               string
	EmployeeID       string
	Month            time.Month
	Year             int
	BalanceMinutes   int
	UtilizedMinutes  int
	CarryoverMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Available is the unused balance, floored at zero.
func (b LeaveBalance) Available() int {
	if avail := b.BalanceMinutes - b.UtilizedMinutes; avail > 0 {
		return avail
	}
	return 0
}

func (b LeaveBalance) View() BalanceView {
	return BalanceView{
		BalanceMinutes:   b.BalanceMinutes,
		UtilizedMinutes:  b.UtilizedMinutes,
		AvailableMinutes: b.Available(),
		CarryoverMinutes: b.CarryoverMinutes,
	}
}

// BalanceView is the read-only projection of a LeaveBalance.
type BalanceView struct {
	BalanceMinutes   int `json:"balance_minutes"`
	UtilizedMinutes  int `json:"utilized_minutes"`
	AvailableMinutes int `json:"available_minutes"`
	CarryoverMinutes int `json:"carryover_minutes"`
}

// UtilizeResult reports a utilization attempt. An insufficient balance is
// Success == false, not an error.
type UtilizeResult struct {
	Success          bool
	RemainingMinutes int
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// LeaveRequest asks for leave on one date. Days is a multiple of half a day.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Days        decimal.Decimal
	Hours       int
	Status      LeaveRequestStatus
	Reason      *string
	UnpaidDays  decimal.Decimal
	UnpaidHours int
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// Split divides requested minutes into paid and unpaid parts against the
// available balance.
type Split struct {
	RequestedMinutes int
	PaidMinutes      int
	UnpaidMinutes    int
}

func NewSplit(requestedMinutes, availableMinutes int) Split {
	if availableMinutes < 0 {
		availableMinutes = 0
	}
	paid := min(requestedMinutes, availableMinutes)
	return Split{
		RequestedMinutes: requestedMinutes,
		PaidMinutes:      paid,
		UnpaidMinutes:    requestedMinutes - paid,
	}
}
