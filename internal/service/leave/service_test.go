package leave

import (
	"context"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recalcSpy struct {
	calls int
}

func (r *recalcSpy) RecalculateSummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	r.calls++
	return attendance.MonthlySummary{EmployeeID: employeeID, Year: year, Month: month}, nil
}

type fixture struct {
	svc    leave.LeaveService
	store  *memory.Store
	ledger *Ledger
	spy    *recalcSpy
	emp    employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := NewLedger(store.LeaveBalances(), testLedgerConfig())
	spy := &recalcSpy{}

	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		FullName:    "Sara Khan",
		DailySalary: decimal.NewFromInt(1000),
		JoiningDate: workday.Date(2025, time.January, 6),
		IsActive:    true,
	})
	require.NoError(t, err)

	clk := clock.Fixed{T: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)}
	svc := NewLeaveService(store, store.LeaveRequests(), store.Attendances(), store.Employees(), ledger, spy, 540, clk)
	return fixture{svc: svc, store: store, ledger: ledger, spy: spy, emp: emp}
}

func (f fixture) request(t *testing.T, date string, days float64) leave.RequestLeaveResponse {
	t.Helper()
	resp, err := f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{
		EmployeeID: f.emp.ID,
		Date:       date,
		Days:       &days,
	})
	require.NoError(t, err)
	return resp
}

func TestRequestLeave_WithinBalance(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, "2025-03-14", 1)
	assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
	assert.Equal(t, "Leave request submitted successfully.", resp.Message)
	assert.True(t, decimal.NewFromInt(2).Equal(resp.Breakdown.AvailableBalanceDays))
	assert.True(t, decimal.NewFromInt(1).Equal(resp.Breakdown.PaidDays))
	assert.True(t, resp.Breakdown.UnpaidDays.IsZero())
	assert.False(t, resp.Breakdown.IsNextMonth)
	assert.Equal(t, 9, resp.Hours)

	view, err := f.ledger.CurrentBalance(context.Background(), f.emp.ID, 2025, time.March, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, view.UtilizedMinutes)
}

func TestRequestLeave_Hours(t *testing.T) {
	f := newFixture(t)
	hours := 4.5

	resp, err := f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{
		EmployeeID: f.emp.ID,
		Date:       "2025-04-02",
		Hours:      &hours,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.5").Equal(resp.Days))
	assert.True(t, resp.Breakdown.IsNextMonth)
}

func TestRequestLeave_Rejections(t *testing.T) {
	f := newFixture(t)
	one := 1.0

	_, err := f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{EmployeeID: f.emp.ID, Date: "2025-03-11", Days: &one})
	assert.ErrorIs(t, err, leave.ErrPastDate)

	f.request(t, "2025-03-14", 1)
	_, err = f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{EmployeeID: f.emp.ID, Date: "2025-03-14", Days: &one})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestExists)

	in := time.Date(2025, time.March, 17, 12, 0, 0, 0, time.UTC)
	_, err = f.store.Attendances().Create(context.Background(), attendance.Attendance{
		EmployeeID:  f.emp.ID,
		Date:        workday.Date(2025, time.March, 17),
		CheckInTime: &in,
		IsActive:    true,
	})
	require.NoError(t, err)
	_, err = f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{EmployeeID: f.emp.ID, Date: "2025-03-17", Days: &one})
	assert.ErrorIs(t, err, leave.ErrAttendanceExistsForDate)

	quarter := 0.25
	_, err = f.svc.RequestLeave(context.Background(), leave.RequestLeaveRequest{EmployeeID: f.emp.ID, Date: "2025-03-18", Days: &quarter})
	assert.Error(t, err)
}

func TestApproveLeave_SplitsPaidAndUnpaid(t *testing.T) {
	f := newFixture(t)
	res, err := f.ledger.Utilize(context.Background(), f.emp.ID, 2025, time.March, 540)
	require.NoError(t, err)
	require.True(t, res.Success)

	req := f.request(t, "2025-03-14", 1.5)
	assert.True(t, decimal.RequireFromString("0.5").Equal(req.Breakdown.UnpaidDays))

	approved, err := f.svc.ApproveLeave(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	assert.Equal(t, 540, approved.PaidMinutes)
	assert.Equal(t, 270, approved.UnpaidMinutes)
	assert.NotNil(t, approved.ProcessedAt)

	record, err := f.store.Attendances().GetByID(context.Background(), approved.AttendanceID)
	require.NoError(t, err)
	assert.Equal(t, 270, record.ShortMinutes)
	assert.True(t, record.UnpaidLeave)
	assert.True(t, record.SalaryEarned.Valid)
	assert.True(t, record.SalaryEarned.Decimal.IsZero())
	assert.Equal(t, 1, f.spy.calls)

	view, err := f.ledger.CurrentBalance(context.Background(), f.emp.ID, 2025, time.March, nil)
	require.NoError(t, err)
	assert.Equal(t, 1080, view.UtilizedMinutes)
	assert.Equal(t, 0, view.AvailableMinutes)
}

func TestApproveLeave_FullyPaid(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, "2025-03-14", 1)

	approved, err := f.svc.ApproveLeave(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, 540, approved.PaidMinutes)
	assert.Equal(t, 0, approved.UnpaidMinutes)
	assert.Equal(t, 0, f.spy.calls)

	record, err := f.store.Attendances().GetByID(context.Background(), approved.AttendanceID)
	require.NoError(t, err)
	assert.False(t, record.UnpaidLeave)
	assert.Equal(t, 0, record.ShortMinutes)
	assert.True(t, record.SalaryEarned.Valid)
	assert.True(t, record.SalaryEarned.Decimal.IsZero())
	assert.False(t, record.IsPlaceholder())
	assert.False(t, record.CountsTowardSummary())
	assert.Equal(t, attendance.StatusOnLeave, record.Status())
}

func TestApproveLeave_Twice(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, "2025-03-14", 1)

	_, err := f.svc.ApproveLeave(context.Background(), req.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveLeave(context.Background(), req.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	view, err := f.ledger.CurrentBalance(context.Background(), f.emp.ID, 2025, time.March, nil)
	require.NoError(t, err)
	assert.Equal(t, 540, view.UtilizedMinutes)
}

func TestApproveLeave_FillsPlaceholder(t *testing.T) {
	f := newFixture(t)
	placeholder, err := f.store.Attendances().Create(context.Background(), attendance.Attendance{
		EmployeeID: f.emp.ID,
		Date:       workday.Date(2025, time.March, 14),
	})
	require.NoError(t, err)
	req := f.request(t, "2025-03-14", 1)

	approved, err := f.svc.ApproveLeave(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, placeholder.ID, approved.AttendanceID)
}

func TestRejectLeave(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, "2025-03-14", 1)

	rejected, err := f.svc.RejectLeave(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)

	_, err = f.svc.ApproveLeave(context.Background(), req.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = f.svc.RejectLeave(context.Background(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestGetMyRequestsAndBalance(t *testing.T) {
	f := newFixture(t)
	f.request(t, "2025-03-14", 1)
	f.request(t, "2025-04-02", 0.5)

	all, err := f.svc.GetMyRequests(context.Background(), f.emp.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	year, month := 2025, 4
	april, err := f.svc.GetMyRequests(context.Background(), f.emp.ID, &year, &month)
	require.NoError(t, err)
	require.Len(t, april, 1)
	assert.Equal(t, "2025-04-02", april[0].Date)

	balance, err := f.svc.GetBalance(context.Background(), f.emp.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Month)
	assert.Equal(t, 1080, balance.AvailableMinutes)
	assert.Equal(t, 18.0, balance.AvailableHours)
	assert.Equal(t, 2.0, balance.AvailableDays)
}
