package attendance

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/config"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
)

// Rules converts calendar dates into working windows and classifies check-ins.
type Rules struct {
	loc               *time.Location
	checkInHour       int
	checkInMinute     int
	lateThreshold     time.Duration
	halfDayThreshold  time.Duration
	maxWorkingMinutes int
}

func NewRules(cfg config.AttendanceConfig) (*Rules, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	hour, minute, err := cfg.CheckInClock()
	if err != nil {
		return nil, err
	}
	return &Rules{
		loc:               loc,
		checkInHour:       hour,
		checkInMinute:     minute,
		lateThreshold:     time.Duration(cfg.LateThresholdMinutes) * time.Minute,
		halfDayThreshold:  time.Duration(cfg.HalfDayLateMinutes) * time.Minute,
		maxWorkingMinutes: cfg.MaxWorkingMinutes,
	}, nil
}

func (r *Rules) Location() *time.Location {
	return r.loc
}

// DateOf returns the organization calendar date of t.
func (r *Rules) DateOf(t time.Time) time.Time {
	return workday.DateOf(t, r.loc)
}

// StandardWindowFor returns the date's working window in the organization timezone.
func (r *Rules) StandardWindowFor(date time.Time) attendance.Window {
	start := time.Date(date.Year(), date.Month(), date.Day(), r.checkInHour, r.checkInMinute, 0, 0, r.loc)
	return attendance.Window{
		Start: start,
		End:   start.Add(time.Duration(r.maxWorkingMinutes) * time.Minute),
	}
}

// Classify marks a check-in late or half-day relative to the window start.
// Check-ins exactly at a threshold are not flagged.
func (r *Rules) Classify(checkIn, date time.Time) attendance.Classification {
	start := r.StandardWindowFor(date).Start
	return attendance.Classification{
		IsLate:    checkIn.After(start.Add(r.lateThreshold)),
		IsHalfDay: checkIn.After(start.Add(r.halfDayThreshold)),
	}
}

// WorkingMinutes counts the whole minutes of [checkIn, checkOut] that fall
// inside the date's window.
func (r *Rules) WorkingMinutes(checkIn, checkOut, date time.Time) int {
	w := r.StandardWindowFor(date)
	from := checkIn
	if from.Before(w.Start) {
		from = w.Start
	}
	to := checkOut
	if to.After(w.End) {
		to = w.End
	}
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / time.Minute)
}

func (r *Rules) RequiredMinutes(isHalfDay bool) int {
	if isHalfDay {
		return r.maxWorkingMinutes / 2
	}
	return r.maxWorkingMinutes
}

// EndOfDay is the last millisecond of date in the organization timezone.
func (r *Rules) EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(999*time.Millisecond), r.loc)
}
