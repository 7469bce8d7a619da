package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee's record for one calendar date.
type Attendance struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	TotalWorkedMinutes int
	ShortMinutes       int
	SalaryEarned       decimal.NullDecimal
	IsLate             bool
	IsHalfDay          bool
	IsPublicHoliday    bool
	UnpaidLeave        bool
	IsActive           bool
	DeletedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
}

// IsCheckedIn reports a check-in without a check-out.
func (a Attendance) IsCheckedIn() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

func (a Attendance) IsCheckedOut() bool {
	return a.CheckInTime != nil && a.CheckOutTime != nil
}

// IsPlaceholder reports an untouched record awaiting check-in or backfill.
func (a Attendance) IsPlaceholder() bool {
	return a.CheckInTime == nil &&
		!a.SalaryEarned.Valid &&
		!a.IsPublicHoliday &&
		!a.UnpaidLeave
}

// CountsTowardSummary reports whether the record contributes to the monthly
// summary: checked-out days and unpaid-leave absences.
func (a Attendance) CountsTowardSummary() bool {
	return a.DeletedAt == nil && (a.IsCheckedOut() || a.UnpaidLeave)
}

// Status is the derived lifecycle state of a record.
type Status string

const (
	StatusPlaceholder   Status = "placeholder"
	StatusCheckedIn     Status = "checked_in"
	StatusCheckedOut    Status = "checked_out"
	StatusUnpaidLeave   Status = "unpaid_leave"
	StatusPublicHoliday Status = "public_holiday"
	StatusOnLeave       Status = "on_leave"
)

func (a Attendance) Status() Status {
	switch {
	case a.IsPublicHoliday:
		return StatusPublicHoliday
	case a.IsCheckedOut():
		return StatusCheckedOut
	case a.IsCheckedIn():
		return StatusCheckedIn
	case a.UnpaidLeave:
		return StatusUnpaidLeave
	case a.SalaryEarned.Valid:
		return StatusOnLeave
	default:
		return StatusPlaceholder
	}
}

// MonthlySummary is the cached aggregate of one employee-month.
type MonthlySummary struct {
	ID                 string
	EmployeeID         string
	Month              time.Month
	Year               int
	TotalWorkedMinutes int
	TotalShortMinutes  int
	TotalSalaryEarned  decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Deduction is a salary deduction ledger entry tied to one attendance record.
type Deduction struct {
	ID              string
	EmployeeID      string
	AttendanceID    string
	DeductedMinutes int
	DeductedAmount  decimal.Decimal
	Reason          string
	CreatedAt       time.Time

	// DTO
	AttendanceDate *time.Time
}

// Window is the standard working interval of a day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Classification of a check-in against the day's window.
type Classification struct {
	IsLate    bool
	IsHalfDay bool
}

// SalaryInput feeds the salary calculation of one day.
type SalaryInput struct {
	CheckIn                  time.Time
	CheckOut                 time.Time
	Date                     time.Time
	IsHalfDay                bool
	DailySalary              decimal.Decimal
	MonthlyShortMinutesSoFar int
	AvailableLeaveMinutes    int
}

// SalaryResult is the outcome of one day's salary calculation.
type SalaryResult struct {
	WorkedMinutes       int
	RequiredMinutes     int
	ShortMinutes        int
	MonthlyShortMinutes int
	DeductionMinutes    int
	DeductedAmount      decimal.Decimal
	SalaryEarned        decimal.Decimal
}
