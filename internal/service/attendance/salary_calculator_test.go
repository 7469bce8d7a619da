package attendance

import (
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalaryCalculator_Calculate(t *testing.T) {
	calc := NewSalaryCalculator(newTestRules(t))
	date := workday.Date(2025, time.March, 12)
	at := func(h, m int) time.Time { return time.Date(2025, time.March, 12, h, m, 0, 0, time.UTC) }
	daily := decimal.NewFromInt(1000)

	cases := []struct {
		name          string
		in            attendance.SalaryInput
		worked        int
		short         int
		deductionMins int
		deducted      string
		earned        string
	}{
		{
			name:   "full day",
			in:     attendance.SalaryInput{CheckIn: at(12, 0), CheckOut: at(21, 0), Date: date, DailySalary: daily},
			worked: 540, short: 0, deductionMins: 0, deducted: "0", earned: "1000",
		},
		{
			name:   "short without leave",
			in:     attendance.SalaryInput{CheckIn: at(12, 0), CheckOut: at(20, 0), Date: date, DailySalary: daily},
			worked: 480, short: 60, deductionMins: 60, deducted: "111.11", earned: "888.89",
		},
		{
			name: "short covered by leave",
			in: attendance.SalaryInput{
				CheckIn: at(12, 0), CheckOut: at(20, 0), Date: date, DailySalary: daily,
				AvailableLeaveMinutes: 60,
			},
			worked: 480, short: 60, deductionMins: 0, deducted: "0", earned: "1000",
		},
		{
			name: "monthly short exceeds leave",
			in: attendance.SalaryInput{
				CheckIn: at(12, 0), CheckOut: at(20, 0), Date: date, DailySalary: daily,
				MonthlyShortMinutesSoFar: 30, AvailableLeaveMinutes: 60,
			},
			worked: 480, short: 60, deductionMins: 30, deducted: "55.56", earned: "944.44",
		},
		{
			name: "half day complete",
			in: attendance.SalaryInput{
				CheckIn: at(13, 30), CheckOut: at(21, 0), Date: date, DailySalary: daily, IsHalfDay: true,
			},
			worked: 450, short: 0, deductionMins: 0, deducted: "0", earned: "500",
		},
		{
			name: "half day short",
			in: attendance.SalaryInput{
				CheckIn: at(13, 30), CheckOut: at(17, 0), Date: date, DailySalary: daily, IsHalfDay: true,
			},
			worked: 210, short: 60, deductionMins: 60, deducted: "111.11", earned: "388.89",
		},
		{
			name: "deduction larger than pay floors at zero",
			in: attendance.SalaryInput{
				CheckIn: at(12, 0), CheckOut: at(12, 30), Date: date, DailySalary: daily,
				MonthlyShortMinutesSoFar: 600,
			},
			worked: 30, short: 510, deductionMins: 1110, deducted: "2055.56", earned: "0",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := calc.Calculate(c.in)
			assert.Equal(t, c.worked, got.WorkedMinutes)
			assert.Equal(t, c.short, got.ShortMinutes)
			assert.Equal(t, c.deductionMins, got.DeductionMinutes)
			assert.True(t, decimal.RequireFromString(c.deducted).Equal(got.DeductedAmount), "deducted %s", got.DeductedAmount)
			assert.True(t, decimal.RequireFromString(c.earned).Equal(got.SalaryEarned), "earned %s", got.SalaryEarned)
		})
	}
}
