package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrLeaveRequestExists           = errors.New("a leave request already exists for this date")
	ErrAttendanceExistsForDate      = errors.New("attendance already recorded for this date")
	ErrPastDate                     = errors.New("cannot request leave for a past date")
	ErrInvalidLeaveAmount           = errors.New("leave must be a positive multiple of 0.5 days, at most 31 days")
	ErrLeaveBalanceNotFound         = errors.New("leave balance not found")
)
