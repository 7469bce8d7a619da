package report

import "context"

type ReportService interface {
	MonthlySalary(ctx context.Context, req PeriodRequest) (MonthlySalaryReport, error)
	EmployeeSalary(ctx context.Context, employeeID string, req PeriodRequest) (EmployeeSalaryReport, error)

	ExportMonthlySalaryXLSX(ctx context.Context, req PeriodRequest) (Export, error)
	EmployeeSalarySlipPDF(ctx context.Context, employeeID string, req PeriodRequest) (Export, error)
}
