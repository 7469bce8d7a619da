package attendance

import (
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var halfDayFactor = decimal.NewFromFloat(0.5)

// SalaryCalculator prices one day of work. There is no free allowance band:
// every short minute not covered by leave is deducted.
type SalaryCalculator struct {
	rules *Rules
}

func NewSalaryCalculator(rules *Rules) SalaryCalculator {
	return SalaryCalculator{rules: rules}
}

func (c SalaryCalculator) Calculate(in attendance.SalaryInput) attendance.SalaryResult {
	worked := c.rules.WorkingMinutes(in.CheckIn, in.CheckOut, in.Date)
	required := c.rules.RequiredMinutes(in.IsHalfDay)
	short := max(0, required-worked)

	effective := in.DailySalary
	if in.IsHalfDay {
		effective = effective.Mul(halfDayFactor)
	}

	monthlyShort := in.MonthlyShortMinutesSoFar + short
	deductionMinutes := max(0, monthlyShort-max(0, in.AvailableLeaveMinutes))

	deducted := decimal.Zero
	if required > 0 && deductionMinutes > 0 {
		deducted = effective.
			Mul(decimal.NewFromInt(int64(deductionMinutes))).
			Div(decimal.NewFromInt(int64(required))).
			Round(2)
	}
	earned := effective.Sub(deducted)
	if earned.IsNegative() {
		earned = decimal.Zero
	}

	return attendance.SalaryResult{
		WorkedMinutes:       worked,
		RequiredMinutes:     required,
		ShortMinutes:        short,
		MonthlyShortMinutes: monthlyShort,
		DeductionMinutes:    deductionMinutes,
		DeductedAmount:      deducted,
		SalaryEarned:        earned.Round(2),
	}
}
