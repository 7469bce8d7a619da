// Package memory keeps every repository in process memory. Service tests use
// it in place of PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/google/uuid"
)

// Store holds all tables behind a single lock.
type Store struct {
	mu sync.Mutex

	users       map[string]user.User
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	summaries   map[string]attendance.MonthlySummary
	deductions  map[string]attendance.Deduction
	balances    map[string]leave.LeaveBalance
	requests    map[string]leave.LeaveRequest
	holidays    map[string]holiday.PublicHoliday
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]user.User),
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		summaries:   make(map[string]attendance.MonthlySummary),
		deductions:  make(map[string]attendance.Deduction),
		balances:    make(map[string]leave.LeaveBalance),
		requests:    make(map[string]leave.LeaveRequest),
		holidays:    make(map[string]holiday.PublicHoliday),
	}
}

// WithinTx runs fn directly; writes are applied immediately and not rolled back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Users() user.UserRepository                   { return userRepository{s} }
func (s *Store) Employees() employee.EmployeeRepository       { return employeeRepository{s} }
func (s *Store) Attendances() attendance.AttendanceRepository { return attendanceRepository{s} }
func (s *Store) Summaries() attendance.SummaryRepository      { return summaryRepository{s} }
func (s *Store) Deductions() attendance.DeductionRepository   { return deductionRepository{s} }
func (s *Store) LeaveBalances() leave.LeaveBalanceRepository  { return leaveBalanceRepository{s} }
func (s *Store) LeaveRequests() leave.LeaveRequestRepository  { return leaveRequestRepository{s} }
func (s *Store) Holidays() holiday.HolidayRepository          { return holidayRepository{s} }
func (s *Store) Reports() report.ReportRepository             { return reportRepository{s} }

func newID() string {
	return uuid.NewString()
}

func monthKey(employeeID string, year int, month time.Month) string {
	return fmt.Sprintf("%s|%04d|%02d", employeeID, year, month)
}

func dateKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}
