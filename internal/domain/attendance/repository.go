package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists attendance records. Soft-deleted rows are
// invisible to every read.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when missing or deleted.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByIDForUpdate locks the row for the current transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetByEmployeeAndDateForUpdate locks the row for the current transaction.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// ListOpenByDate returns checked-in records without a check-out.
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ActivatePlaceholdersBefore marks inactive records dated before date active.
	ActivatePlaceholdersBefore(ctx context.Context, date time.Time) (int64, error)
}

type SummaryRepository interface {
	// Get returns nil, nil when the month has no summary yet.
	Get(ctx context.Context, employeeID string, year int, month time.Month) (*MonthlySummary, error)
	Upsert(ctx context.Context, summary MonthlySummary) (MonthlySummary, error)
}

type DeductionRepository interface {
	Create(ctx context.Context, deduction Deduction) (Deduction, error)
	DeleteByAttendanceID(ctx context.Context, attendanceID string) error
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Deduction, error)
}
