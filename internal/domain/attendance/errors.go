package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = errors.New("already checked in today")
	ErrAlreadyCheckedOut     = errors.New("already checked out today")
	ErrNoCheckIn             = errors.New("no check-in found for today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")
	ErrDayNotWorkable        = errors.New("this date is a public holiday or leave day")
	ErrAccountInactive       = errors.New("employee account is inactive")
	ErrInvalidDateTime       = errors.New("invalid datetime")

	// Admin errors
	ErrIncompleteTimes   = errors.New("both check-in and check-out are required to recalculate salary")
	ErrAttendanceExists  = errors.New("attendance already exists for this date")
	ErrAttendanceDeleted = errors.New("attendance record has been deleted")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
