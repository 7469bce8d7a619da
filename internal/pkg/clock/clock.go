// Package clock provides the organization's notion of "now" and "today".
package clock

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
)

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock backed by the system time in loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

// Fixed is a Clock frozen at T. Used by jobs that replay a past day and by tests.
type Fixed struct {
	T   time.Time
	Loc *time.Location
}

func (f Fixed) Now() time.Time {
	return f.T.In(f.Location())
}

func (f Fixed) Location() *time.Location {
	if f.Loc == nil {
		return time.UTC
	}
	return f.Loc
}

// Today returns the current calendar date in the clock's location.
func Today(c Clock) time.Time {
	return workday.DateOf(c.Now(), c.Location())
}
