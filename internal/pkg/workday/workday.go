// Package workday holds calendar helpers for Monday to Friday working days.
//
// Calendar dates are represented as time.Time values at midnight UTC, which is
// how pgx decodes a postgres DATE column.
package workday

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Key formats a calendar date as YYYY-MM-DD.
func Key(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Holidays is a set of non-working calendar dates.
type Holidays map[string]struct{}

func NewHolidays(dates ...time.Time) Holidays {
	h := make(Holidays, len(dates))
	for _, d := range dates {
		h[Key(d)] = struct{}{}
	}
	return h
}

func (h Holidays) Contains(d time.Time) bool {
	_, ok := h[Key(d)]
	return ok
}

// IsWeekday reports whether d falls Monday to Friday.
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsWorkingDay reports whether d is a weekday that is not a holiday.
func IsWorkingDay(d time.Time, h Holidays) bool {
	return IsWeekday(d) && !h.Contains(d)
}

// MonthBounds returns the first and last calendar dates of a month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := Date(year, month, 1)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// Between returns the working days in [from, to], inclusive.
func Between(from, to time.Time, h Holidays) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, h) {
			days = append(days, d)
		}
	}
	return days
}

// InMonth returns every working day of the month.
func InMonth(year int, month time.Month, h Holidays) []time.Time {
	first, last := MonthBounds(year, month)
	return Between(first, last, h)
}

// CountInMonth counts the working days of the month.
func CountInMonth(year int, month time.Month, h Holidays) int {
	return len(InMonth(year, month, h))
}

// DailySalary splits a monthly salary evenly over the month's working days.
func DailySalary(monthly decimal.Decimal, year int, month time.Month, h Holidays) decimal.Decimal {
	n := CountInMonth(year, month, h)
	if n == 0 {
		return decimal.Zero
	}
	return monthly.Div(decimal.NewFromInt(int64(n))).Round(2)
}
