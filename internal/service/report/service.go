package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/export"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	report.ReportRepository
	attendance.AttendanceRepository
	attendance.DeductionRepository
	employee.EmployeeRepository
	clock clock.Clock
}

func NewReportService(
	reportRepository report.ReportRepository,
	attendanceRepository attendance.AttendanceRepository,
	deductionRepository attendance.DeductionRepository,
	employeeRepository employee.EmployeeRepository,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository:     reportRepository,
		AttendanceRepository: attendanceRepository,
		DeductionRepository:  deductionRepository,
		EmployeeRepository:   employeeRepository,
		clock:                clk,
	}
}

// MonthlySalary implements report.ReportService.
func (s *ReportServiceImpl) MonthlySalary(ctx context.Context, req report.PeriodRequest) (report.MonthlySalaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlySalaryReport{}, err
	}

	rows, err := s.ReportRepository.GetMonthlySalaryRows(ctx, req.Year, time.Month(req.Month))
	if err != nil {
		return report.MonthlySalaryReport{}, fmt.Errorf("failed to get monthly salary rows: %w", err)
	}

	total := decimal.Zero
	for i := range rows {
		rows[i].TotalWorkedHours = report.MinutesToHours(rows[i].TotalWorkedMinutes)
		rows[i].TotalShortHours = report.MinutesToHours(rows[i].TotalShortMinutes)
		total = total.Add(rows[i].TotalSalaryEarned)
	}
	if rows == nil {
		rows = []report.MonthlySalaryRow{}
	}

	return report.MonthlySalaryReport{
		Month:       req.Month,
		Year:        req.Year,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		TotalPayout: total,
		Rows:        rows,
	}, nil
}

// EmployeeSalary implements report.ReportService.
func (s *ReportServiceImpl) EmployeeSalary(ctx context.Context, employeeID string, req report.PeriodRequest) (report.EmployeeSalaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeSalaryReport{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeSalaryReport{}, err
	}

	from, to := workday.MonthBounds(req.Year, time.Month(req.Month))

	var (
		records    []attendance.Attendance
		deductions []attendance.Deduction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.List(gctx, attendance.ListFilter{EmployeeID: &emp.ID, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to list attendances: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		deductions, err = s.DeductionRepository.ListByEmployee(gctx, emp.ID, &from, &to)
		if err != nil {
			return fmt.Errorf("failed to list deductions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.EmployeeSalaryReport{}, err
	}

	totalSalary := decimal.Zero
	attendances := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		if r.SalaryEarned.Valid {
			totalSalary = totalSalary.Add(r.SalaryEarned.Decimal)
		}
		attendances = append(attendances, attendance.NewAttendanceResponse(r))
	}

	totalDeductions := decimal.Zero
	rows := make([]report.DeductionRow, 0, len(deductions))
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.DeductedAmount)
		rows = append(rows, report.NewDeductionRow(d))
	}

	return report.EmployeeSalaryReport{
		Month:       req.Month,
		Year:        req.Year,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Employee: report.EmployeeInfo{
			ID:          emp.ID,
			FullName:    emp.FullName,
			Email:       emp.Email,
			Designation: emp.Designation,
			DailySalary: emp.DailySalary,
		},
		Attendances:     attendances,
		Deductions:      rows,
		TotalSalary:     totalSalary,
		TotalDeductions: totalDeductions,
		NetSalary:       totalSalary.Sub(totalDeductions),
	}, nil
}

// ExportMonthlySalaryXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlySalaryXLSX(ctx context.Context, req report.PeriodRequest) (report.Export, error) {
	data, err := s.MonthlySalary(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	period := fmt.Sprintf("%04d-%02d", data.Year, data.Month)
	sheet := export.Sheet{
		Name:  "Salary " + period,
		Title: "Monthly Salary Report " + period,
		Headers: []string{
			"Employee", "Email", "Designation", "Daily Salary",
			"Worked Hours", "Short Hours", "Salary Earned",
		},
		Widths: []float64{28, 32, 22, 14, 14, 14, 16},
	}
	for _, r := range data.Rows {
		sheet.Rows = append(sheet.Rows, []any{
			r.FullName,
			r.Email,
			r.Designation,
			r.DailySalary.InexactFloat64(),
			r.TotalWorkedHours,
			r.TotalShortHours,
			r.TotalSalaryEarned.InexactFloat64(),
		})
	}
	sheet.Rows = append(sheet.Rows, []any{"Total", "", "", "", "", "", data.TotalPayout.InexactFloat64()})

	content, err := export.XLSX(sheet)
	if err != nil {
		return report.Export{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	return report.Export{
		FileName:    "salary-report-" + period + ".xlsx",
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

// EmployeeSalarySlipPDF implements report.ReportService.
func (s *ReportServiceImpl) EmployeeSalarySlipPDF(ctx context.Context, employeeID string, req report.PeriodRequest) (report.Export, error) {
	data, err := s.EmployeeSalary(ctx, employeeID, req)
	if err != nil {
		return report.Export{}, err
	}

	period := fmt.Sprintf("%04d-%02d", data.Year, data.Month)
	doc := export.Document{
		Title: "Salary Slip " + period,
		Fields: []export.Field{
			{Label: "Employee", Value: data.Employee.FullName},
			{Label: "Email", Value: data.Employee.Email},
			{Label: "Designation", Value: data.Employee.Designation},
			{Label: "Daily Salary", Value: data.Employee.DailySalary.StringFixed(2)},
		},
		Footer: "Generated at " + data.GeneratedAt,
	}

	days := export.Table{
		Title:   "Attendance",
		Headers: []string{"Date", "Check In", "Check Out", "Worked", "Short", "Salary"},
		Widths:  []float64{28, 32, 32, 24, 24, 40},
	}
	loc := s.clock.Location()
	for _, a := range data.Attendances {
		salary := "-"
		if a.SalaryEarned != nil {
			salary = a.SalaryEarned.StringFixed(2)
		}
		days.Rows = append(days.Rows, []string{
			a.Date,
			clockTime(a.CheckInTime, loc),
			clockTime(a.CheckOutTime, loc),
			report.MinutesToHours(a.TotalWorkedMinutes),
			report.MinutesToHours(a.ShortMinutes),
			salary,
		})
	}

	deductions := export.Table{
		Title:   "Deductions",
		Headers: []string{"Date", "Minutes", "Amount", "Reason"},
		Widths:  []float64{28, 22, 30, 100},
	}
	for _, d := range data.Deductions {
		date := "-"
		if d.Date != nil {
			date = *d.Date
		}
		deductions.Rows = append(deductions.Rows, []string{
			date,
			fmt.Sprint(d.DeductedMinutes),
			d.DeductedAmount.StringFixed(2),
			d.Reason,
		})
	}
	doc.Tables = []export.Table{days, deductions}
	doc.Totals = []export.Field{
		{Label: "Total Salary", Value: data.TotalSalary.StringFixed(2)},
		{Label: "Total Deductions", Value: data.TotalDeductions.StringFixed(2)},
		{Label: "Net Salary", Value: data.NetSalary.StringFixed(2)},
	}

	content, err := export.PDF(doc)
	if err != nil {
		return report.Export{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	return report.Export{
		FileName:    fmt.Sprintf("salary-slip-%s-%s.pdf", data.Employee.ID, period),
		ContentType: export.PDFContentType,
		Content:     content,
	}, nil
}

func clockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}
