package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// Employee-facing
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)
	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)
	GetMyHistory(ctx context.Context, employeeID string, filter HistoryFilter) ([]AttendanceResponse, error)
	GetDashboard(ctx context.Context, employeeID string) (DashboardResponse, error)

	// Admin
	List(ctx context.Context, req ListRequest) ([]AttendanceResponse, error)
	AdminCreate(ctx context.Context, req AdminCreateRequest) (AttendanceResponse, error)
	AdminCorrect(ctx context.Context, id string, req AdminCorrectRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	ProcessMissingDays(ctx context.Context, employeeID string, year int, month time.Month) (ProcessMissingResponse, error)
	ProcessMissingDaysForAll(ctx context.Context, year int, month time.Month) ([]ProcessMissingResponse, BatchResult, error)

	// Scheduler
	AutoCheckout(ctx context.Context, employeeID string, date time.Time) (bool, error)
	RunAutoCheckout(ctx context.Context) (BatchResult, error)
	RunDailyBackfill(ctx context.Context) (BatchResult, error)

	SummaryRecalculator
}

// SummaryRecalculator rebuilds an employee-month summary from its records.
// Callers run it inside the transaction that changed the records.
type SummaryRecalculator interface {
	RecalculateSummary(ctx context.Context, employeeID string, year int, month time.Month) (MonthlySummary, error)
}
