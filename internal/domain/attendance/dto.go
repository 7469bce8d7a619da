package attendance

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// EMPLOYEE ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID      string `json:"-"`
	CheckInDateTime string `json:"check_in_datetime"`
	QRCode          string `json:"qr_code"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.CheckInDateTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_datetime",
			Message: "check_in_datetime must be an ISO-8601 timestamp",
		})
	}
	if validator.IsEmpty(r.QRCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "qr_code",
			Message: "qr_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID       string `json:"-"`
	CheckOutDateTime string `json:"check_out_datetime"`
	QRCode           string `json:"qr_code"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.CheckOutDateTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_datetime",
			Message: "check_out_datetime must be an ISO-8601 timestamp",
		})
	}
	if validator.IsEmpty(r.QRCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "qr_code",
			Message: "qr_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HistoryFilter selects either a month or a date range. A month filter
// defaults to the current month.
type HistoryFilter struct {
	Month     *int    `json:"month,omitempty"`
	Year      *int    `json:"year,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (f *HistoryFilter) IsRange() bool {
	return f.StartDate != nil || f.EndDate != nil
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if f.IsRange() {
		if f.StartDate == nil || f.EndDate == nil {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date must be provided together"})
		} else {
			start, okStart := validator.IsValidDate(*f.StartDate)
			end, okEnd := validator.IsValidDate(*f.EndDate)
			if !okStart {
				errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
			}
			if !okEnd {
				errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
			}
			if okStart && okEnd && end.Before(start) {
				errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// ADMIN DTOs
// ========================================

type ListFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
}

type ListRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdminCreateRequest struct {
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
}

func (r *AdminCreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	in, okIn := validator.IsValidDateTime(r.CheckInTime)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be an ISO-8601 timestamp"})
	}
	out, okOut := validator.IsValidDateTime(r.CheckOutTime)
	if !okOut {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be an ISO-8601 timestamp"})
	}
	if okIn && okOut && !out.After(in) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: ErrCheckOutBeforeCheckIn.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminCorrectRequest rewrites one or both times of an existing record.
type AdminCorrectRequest struct {
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
}

func (r *AdminCorrectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckInTime == nil && r.CheckOutTime == nil {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "at least one of check_in_time or check_out_time is required"})
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be an ISO-8601 timestamp"})
		}
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be an ISO-8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessMissingRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *ProcessMissingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	EmployeeName       *string          `json:"employee_name,omitempty"`
	Date               string           `json:"date"`
	CheckInTime        *time.Time       `json:"check_in_time"`
	CheckOutTime       *time.Time       `json:"check_out_time"`
	TotalWorkedMinutes int              `json:"total_worked_minutes"`
	ShortMinutes       int              `json:"short_minutes"`
	SalaryEarned       *decimal.Decimal `json:"salary_earned"`
	IsLate             bool             `json:"is_late"`
	IsHalfDay          bool             `json:"is_half_day"`
	IsPublicHoliday    bool             `json:"is_public_holiday"`
	UnpaidLeave        bool             `json:"unpaid_leave"`
	IsActive           bool             `json:"is_active"`
	Status             Status           `json:"status"`
}

type CheckInResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	CheckInTime time.Time `json:"check_in_time"`
	IsLate      bool      `json:"is_late"`
	IsHalfDay   bool      `json:"is_half_day"`
	Message     string    `json:"message"`
}

type CheckOutResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	Date                 string          `json:"date"`
	CheckInTime          time.Time       `json:"check_in_time"`
	CheckOutTime         time.Time       `json:"check_out_time"`
	TotalWorkedMinutes   int             `json:"total_worked_minutes"`
	ShortMinutes         int             `json:"short_minutes"`
	LeaveUtilizedMinutes int             `json:"leave_utilized_minutes"`
	DeductionMinutes     int             `json:"deduction_minutes"`
	DeductedAmount       decimal.Decimal `json:"deducted_amount"`
	SalaryEarned         decimal.Decimal `json:"salary_earned"`
	Message              string          `json:"message"`
}

// NextAction tells the client which button to show today.
type NextAction string

const (
	ActionCheckIn  NextAction = "check-in"
	ActionCheckOut NextAction = "check-out"
	ActionNone     NextAction = "none"
)

type TodayResponse struct {
	Date         string              `json:"date"`
	IsWorkingDay bool                `json:"is_working_day"`
	NextAction   NextAction          `json:"next_action"`
	Attendance   *AttendanceResponse `json:"attendance"`
}

type DashboardEmployee struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Designation   string          `json:"designation"`
	DailySalary   decimal.Decimal `json:"daily_salary"`
	SalaryPerHour decimal.Decimal `json:"salary_per_hour"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	JoiningDate   string          `json:"joining_date"`
}

type DashboardLeaveBalance struct {
	TotalHours     float64 `json:"total_hours"`
	UtilizedHours  float64 `json:"utilized_hours"`
	AvailableHours float64 `json:"available_hours"`
	CarryoverHours float64 `json:"carryover_hours"`
}

type DashboardMonth struct {
	Month                 int                          `json:"month"`
	Year                  int                          `json:"year"`
	TotalWorkedMinutes    int                          `json:"total_worked_minutes"`
	TotalShortMinutes     int                          `json:"total_short_minutes"`
	SalaryEarnedThisMonth decimal.Decimal              `json:"salary_earned_this_month"`
	TotalDeductions       decimal.Decimal              `json:"total_deductions"`
	WorkingDays           int                          `json:"working_days"`
	DaysWorked            int                          `json:"days_worked"`
	LeavesInHours         float64                      `json:"leaves_in_hours"`
	LeaveBalance          DashboardLeaveBalance        `json:"leave_balance"`
	LeaveRequests         []leave.LeaveRequestResponse `json:"leave_requests"`
}

type DashboardResponse struct {
	Employee     DashboardEmployee `json:"employee"`
	CurrentMonth DashboardMonth    `json:"current_month"`
	TotalSalary  decimal.Decimal   `json:"total_salary"`
}

type ProcessMissingResponse struct {
	EmployeeID           string `json:"employee_id"`
	ProcessedDays        int    `json:"processed_days"`
	LeaveDeductedMinutes int    `json:"leave_deducted_minutes"`
	ShortMinutesAdded    int    `json:"short_minutes_added"`
}

// BatchResult summarizes a run over many employees.
type BatchResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		EmployeeName:       a.EmployeeName,
		Date:               a.Date.Format("2006-01-02"),
		CheckInTime:        a.CheckInTime,
		CheckOutTime:       a.CheckOutTime,
		TotalWorkedMinutes: a.TotalWorkedMinutes,
		ShortMinutes:       a.ShortMinutes,
		IsLate:             a.IsLate,
		IsHalfDay:          a.IsHalfDay,
		IsPublicHoliday:    a.IsPublicHoliday,
		UnpaidLeave:        a.UnpaidLeave,
		IsActive:           a.IsActive,
		Status:             a.Status(),
	}
	if a.SalaryEarned.Valid {
		salary := a.SalaryEarned.Decimal
		resp.SalaryEarned = &salary
	}
	return resp
}
