package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recalcSpy struct {
	employees []string
}

func (r *recalcSpy) RecalculateSummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	r.employees = append(r.employees, employeeID)
	return attendance.MonthlySummary{EmployeeID: employeeID, Year: year, Month: month}, nil
}

func seedEmployee(t *testing.T, store *memory.Store, name string, joined time.Time) employee.Employee {
	t.Helper()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		FullName:    name,
		DailySalary: decimal.NewFromInt(1000),
		JoiningDate: joined,
		IsActive:    true,
	})
	require.NoError(t, err)
	return emp
}

func TestCreate_StampsActiveEmployees(t *testing.T) {
	store := memory.NewStore()
	spy := &recalcSpy{}
	svc := NewHolidayService(store, store.Holidays(), store.Attendances(), store.Employees(), store.Deductions(), spy)

	sara := seedEmployee(t, store, "Sara Khan", workday.Date(2025, time.January, 6))
	absent := seedEmployee(t, store, "Bilal Ahmed", workday.Date(2025, time.January, 6))
	late := seedEmployee(t, store, "New Hire", workday.Date(2025, time.April, 1))

	date := workday.Date(2025, time.March, 14)
	_, err := store.Attendances().Create(context.Background(), attendance.Attendance{
		EmployeeID:   absent.ID,
		Date:         date,
		ShortMinutes: 540,
		SalaryEarned: decimal.NewNullDecimal(decimal.Zero),
		UnpaidLeave:  true,
		IsActive:     true,
	})
	require.NoError(t, err)

	resp, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "2025-03-14", Name: " Founders Day "})
	require.NoError(t, err)
	assert.Equal(t, "Founders Day", resp.Name)
	assert.Equal(t, 2, resp.StampedRecords)

	record, err := store.Attendances().GetByEmployeeAndDate(context.Background(), sara.ID, date)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.IsPublicHoliday)

	cleared, err := store.Attendances().GetByEmployeeAndDate(context.Background(), absent.ID, date)
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.True(t, cleared.IsPublicHoliday)
	assert.False(t, cleared.UnpaidLeave)
	assert.Equal(t, 0, cleared.ShortMinutes)
	assert.Equal(t, []string{absent.ID}, spy.employees)

	none, err := store.Attendances().GetByEmployeeAndDate(context.Background(), late.ID, date)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "2025-03-14", Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestUpdate(t *testing.T) {
	store := memory.NewStore()
	svc := NewHolidayService(store, store.Holidays(), store.Attendances(), store.Employees(), store.Deductions(), &recalcSpy{})

	created, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "2025-08-14", Name: "Independence Day"})
	require.NoError(t, err)

	desc := "National holiday"
	updated, err := svc.Update(context.Background(), created.ID, holiday.UpdateHolidayRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Independence Day", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	_, err = svc.Update(context.Background(), created.ID, holiday.UpdateHolidayRequest{})
	assert.Error(t, err)
}

func TestDelete_Unstamps(t *testing.T) {
	store := memory.NewStore()
	svc := NewHolidayService(store, store.Holidays(), store.Attendances(), store.Employees(), store.Deductions(), &recalcSpy{})
	sara := seedEmployee(t, store, "Sara Khan", workday.Date(2025, time.January, 6))

	created, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "2025-03-14", Name: "Founders Day"})
	require.NoError(t, err)

	resp, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UnstampedRecords)

	record, err := store.Attendances().GetByEmployeeAndDate(context.Background(), sara.ID, workday.Date(2025, time.March, 14))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.False(t, record.IsPublicHoliday)
	assert.True(t, record.IsPlaceholder())

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_OverwritesCheckedOutDay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	spy := &recalcSpy{}
	svc := NewHolidayService(store, store.Holidays(), store.Attendances(), store.Employees(), store.Deductions(), spy)
	sara := seedEmployee(t, store, "Sara Khan", workday.Date(2025, time.January, 6))

	date := workday.Date(2025, time.March, 14)
	in := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	worked, err := store.Attendances().Create(ctx, attendance.Attendance{
		EmployeeID:         sara.ID,
		Date:               date,
		CheckInTime:        &in,
		CheckOutTime:       &out,
		TotalWorkedMinutes: 480,
		ShortMinutes:       60,
		SalaryEarned:       decimal.NewNullDecimal(decimal.NewFromInt(888)),
		IsLate:             true,
		IsActive:           true,
	})
	require.NoError(t, err)
	_, err = store.Deductions().Create(ctx, attendance.Deduction{
		EmployeeID:      sara.ID,
		AttendanceID:    worked.ID,
		DeductedMinutes: 60,
		DeductedAmount:  decimal.NewFromInt(112),
		Reason:          "Short hours deduction for 2025-03-14",
	})
	require.NoError(t, err)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-03-14", Name: "Founders Day"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.StampedRecords)

	record, err := store.Attendances().GetByID(ctx, worked.ID)
	require.NoError(t, err)
	assert.True(t, record.IsPublicHoliday)
	assert.Equal(t, 0, record.TotalWorkedMinutes)
	assert.Equal(t, 0, record.ShortMinutes)
	require.True(t, record.SalaryEarned.Valid)
	assert.True(t, record.SalaryEarned.Decimal.IsZero())
	assert.Nil(t, record.CheckInTime)
	assert.Nil(t, record.CheckOutTime)
	assert.False(t, record.IsLate)
	assert.False(t, record.CountsTowardSummary())
	assert.Equal(t, attendance.StatusPublicHoliday, record.Status())
	assert.Equal(t, []string{sara.ID}, spy.employees)

	deductions, err := store.Deductions().ListByEmployee(ctx, sara.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, deductions)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	record, err = store.Attendances().GetByID(ctx, worked.ID)
	require.NoError(t, err)
	assert.False(t, record.IsPublicHoliday)
	assert.Equal(t, 0, record.TotalWorkedMinutes)
	assert.Nil(t, record.CheckOutTime)
	assert.True(t, record.IsPlaceholder())
}
