package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/config"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/qrcode"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/postgresql"
	attendancesvc "github.com/Syntax-Move/attendance-system-backend/internal/service/attendance"
	leavesvc "github.com/Syntax-Move/attendance-system-backend/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSummaryUnavailable = errors.New("summary store unavailable")

type failingSummaryRepository struct {
	attendance.SummaryRepository
}

func (failingSummaryRepository) Upsert(context.Context, attendance.MonthlySummary) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{}, errSummaryUnavailable
}

func TestCheckOut_RollsBackOnSummaryFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "Sara Khan", workday.Date(2025, time.January, 6))

	cfg := config.AttendanceConfig{
		Timezone:               "UTC",
		StandardCheckInTime:    "12:00",
		LateThresholdMinutes:   15,
		HalfDayLateMinutes:     60,
		MaxWorkingMinutes:      540,
		PaidLeavesPerMonthDays: 2,
		MaxCarryoverLeaveDays:  1,
		MinutesPerWorkDay:      540,
		QRCodeSuffix:           "syntax_move",
		QRCodeValidity:         5 * time.Minute,
	}
	rules, err := attendancesvc.NewRules(cfg)
	require.NoError(t, err)
	qr := qrcode.NewValidator(cfg.QRCodeSuffix, cfg.QRCodeValidity)
	ledger := leavesvc.NewLedger(postgresql.NewLeaveBalanceRepository(db), cfg)

	attendances := postgresql.NewAttendanceRepository(db)
	summaries := postgresql.NewSummaryRepository(db)
	deductions := postgresql.NewDeductionRepository(db)
	svc := attendancesvc.NewAttendanceService(
		postgresql.NewTransactor(db),
		attendances,
		failingSummaryRepository{SummaryRepository: summaries},
		deductions,
		postgresql.NewEmployeeRepository(db),
		postgresql.NewHolidayRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		ledger,
		rules,
		qr,
		clock.Fixed{T: time.Date(2025, time.March, 12, 22, 0, 0, 0, time.UTC)},
	)

	// Leave 30 minutes in the pool so checkout both draws leave and deducts.
	balance, err := ledger.CurrentBalance(ctx, emp.ID, 2025, time.March, nil)
	require.NoError(t, err)
	used, err := ledger.Utilize(ctx, emp.ID, 2025, time.March, balance.AvailableMinutes-30)
	require.NoError(t, err)
	require.True(t, used.Success)

	in := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)
	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID:      emp.ID,
		CheckInDateTime: in.Format(time.RFC3339Nano),
		QRCode:          qr.Generate(in),
	})
	require.NoError(t, err)

	out := time.Date(2025, time.March, 12, 20, 0, 0, 0, time.UTC)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeID:       emp.ID,
		CheckOutDateTime: out.Format(time.RFC3339Nano),
		QRCode:           qr.Generate(out),
	})
	require.ErrorIs(t, err, errSummaryUnavailable)

	record, err := attendances.GetByEmployeeAndDate(ctx, emp.ID, workday.Date(2025, time.March, 12))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.NotNil(t, record.CheckInTime)
	assert.Nil(t, record.CheckOutTime)
	assert.False(t, record.SalaryEarned.Valid)
	assert.Zero(t, record.TotalWorkedMinutes)

	rows, err := deductions.ListByEmployee(ctx, emp.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	after, err := ledger.CurrentBalance(ctx, emp.ID, 2025, time.March, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, after.AvailableMinutes)

	summary, err := summaries.Get(ctx, emp.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestTransactor_NestedRollback(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTransactor(db)
	emp := createTestEmployee(t, db, "Sara Khan", workday.Date(2025, time.January, 6))
	errInner := errors.New("inner failed")

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: workday.Date(2025, time.March, 10), IsActive: true}); err != nil {
			return err
		}
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: workday.Date(2025, time.March, 11), IsActive: true}); err != nil {
				return err
			}
			return errInner
		})
		assert.ErrorIs(t, err, errInner)
		return nil
	})
	require.NoError(t, err)

	kept, err := repo.GetByEmployeeAndDate(ctx, emp.ID, workday.Date(2025, time.March, 10))
	require.NoError(t, err)
	assert.NotNil(t, kept)
	dropped, err := repo.GetByEmployeeAndDate(ctx, emp.ID, workday.Date(2025, time.March, 11))
	require.NoError(t, err)
	assert.Nil(t, dropped)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: workday.Date(2025, time.March, 12), IsActive: true}); err != nil {
			return err
		}
		return errInner
	})
	require.ErrorIs(t, err, errInner)
	dropped, err = repo.GetByEmployeeAndDate(ctx, emp.ID, workday.Date(2025, time.March, 12))
	require.NoError(t, err)
	assert.Nil(t, dropped)
}
