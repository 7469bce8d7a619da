package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
)

// AttendanceJobs closes forgotten check-outs and keeps daily placeholders in
// place for every active employee.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob("auto_checkout", 0, 0, j.AutoCheckout); err != nil {
		return err
	}
	return scheduler.AddJob("daily_backfill", 0, 5, j.DailyBackfill)
}

// AutoCheckout closes yesterday's records that were never checked out.
func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	slog.Info("Cron: Starting auto checkout job")

	result, err := j.attendanceService.RunAutoCheckout(ctx)
	if err != nil {
		return fmt.Errorf("auto checkout: %w", err)
	}

	slog.Info("Cron: Auto checkout done", "processed", result.Processed, "failed", result.Failed)
	return nil
}

// DailyBackfill creates today's placeholders and activates past ones.
func (j *AttendanceJobs) DailyBackfill(ctx context.Context) error {
	slog.Info("Cron: Starting daily backfill job")

	result, err := j.attendanceService.RunDailyBackfill(ctx)
	if err != nil {
		return fmt.Errorf("daily backfill: %w", err)
	}

	slog.Info("Cron: Daily backfill done", "processed", result.Processed, "failed", result.Failed)
	return nil
}
