package leave

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	hoursPerLeaveDay = 9
	maxLeaveDays     = 31
)

var half = decimal.NewFromFloat(0.5)

// RequestLeaveRequest takes the amount either in days or in hours; hours are
// converted at nine hours per day.
type RequestLeaveRequest struct {
	EmployeeID string   `json:"-"`
	Date       string   `json:"date"`
	Days       *float64 `json:"days,omitempty"`
	Hours      *float64 `json:"hours,omitempty"`
	Reason     *string  `json:"reason,omitempty"`
}

// RequestedDays resolves the requested amount in days.
func (r *RequestLeaveRequest) RequestedDays() decimal.Decimal {
	if r.Days != nil {
		return decimal.NewFromFloat(*r.Days)
	}
	if r.Hours != nil {
		return decimal.NewFromFloat(*r.Hours).Div(decimal.NewFromInt(hoursPerLeaveDay)).Round(2)
	}
	return decimal.Zero
}

// IsValidLeaveDays reports a positive multiple of half a day up to 31 days.
func IsValidLeaveDays(days decimal.Decimal) bool {
	if !days.IsPositive() || days.GreaterThan(decimal.NewFromInt(maxLeaveDays)) {
		return false
	}
	return days.Mod(half).IsZero()
}

func (r *RequestLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	switch {
	case r.Days == nil && r.Hours == nil:
		errs = append(errs, validator.ValidationError{Field: "days", Message: "days or hours is required"})
	case r.Days != nil && r.Hours != nil:
		errs = append(errs, validator.ValidationError{Field: "days", Message: "provide either days or hours, not both"})
	case !IsValidLeaveDays(r.RequestedDays()):
		errs = append(errs, validator.ValidationError{Field: "days", Message: ErrInvalidLeaveAmount.Error()})
	}
	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be at most 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveRequestStatus
	From       *time.Time
	To         *time.Time
}

type ListLeaveRequestsRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (r *ListLeaveRequestsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if r.Status != "" && !LeaveRequestStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending, approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ListLeaveRequestsRequest) Filter() LeaveRequestFilter {
	var filter LeaveRequestFilter
	if r.EmployeeID != "" {
		filter.EmployeeID = &r.EmployeeID
	}
	if r.Status != "" {
		status := LeaveRequestStatus(r.Status)
		filter.Status = &status
	}
	return filter
}

type LeaveBreakdown struct {
	AvailableBalanceDays decimal.Decimal `json:"available_balance_days"`
	RequestedDays        decimal.Decimal `json:"requested_days"`
	PaidDays             decimal.Decimal `json:"paid_days"`
	UnpaidDays           decimal.Decimal `json:"unpaid_days"`
	IsNextMonth          bool            `json:"is_next_month"`
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeName *string            `json:"employee_name,omitempty"`
	Date         string             `json:"date"`
	Days         decimal.Decimal    `json:"days"`
	Hours        int                `json:"hours"`
	UnpaidDays   decimal.Decimal    `json:"unpaid_days"`
	UnpaidHours  int                `json:"unpaid_hours"`
	Status       LeaveRequestStatus `json:"status"`
	Reason       *string            `json:"reason"`
	ProcessedAt  *time.Time         `json:"processed_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type RequestLeaveResponse struct {
	LeaveRequestResponse
	Message   string         `json:"message"`
	Breakdown LeaveBreakdown `json:"breakdown"`
}

type ApproveLeaveResponse struct {
	LeaveRequestResponse
	PaidMinutes   int    `json:"paid_minutes"`
	UnpaidMinutes int    `json:"unpaid_minutes"`
	AttendanceID  string `json:"attendance_id,omitempty"`
}

type BalanceResponse struct {
	EmployeeID       string  `json:"employee_id"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	BalanceMinutes   int     `json:"balance_minutes"`
	UtilizedMinutes  int     `json:"utilized_minutes"`
	AvailableMinutes int     `json:"available_minutes"`
	CarryoverMinutes int     `json:"carryover_minutes"`
	AvailableHours   float64 `json:"available_hours"`
	AvailableDays    float64 `json:"available_days"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		Days:         r.Days,
		Hours:        r.Hours,
		UnpaidDays:   r.UnpaidDays,
		UnpaidHours:  r.UnpaidHours,
		Status:       r.Status,
		Reason:       r.Reason,
		ProcessedAt:  r.ProcessedAt,
		CreatedAt:    r.CreatedAt,
	}
}
