package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	karachi, err := time.LoadLocation("Asia/Karachi")
	require.NoError(t, err)

	cases := []struct {
		name string
		now  time.Time
		hour int
		min  int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, time.March, 10, 23, 30, 0, 0, karachi),
			hour: 23, min: 45,
			want: time.Date(2025, time.March, 10, 23, 45, 0, 0, karachi),
		},
		{
			name: "midnight rolls to next day",
			now:  time.Date(2025, time.March, 10, 23, 30, 0, 0, karachi),
			hour: 0, min: 0,
			want: time.Date(2025, time.March, 11, 0, 0, 0, 0, karachi),
		},
		{
			name: "exactly at run time waits a day",
			now:  time.Date(2025, time.March, 11, 0, 5, 0, 0, karachi),
			hour: 0, min: 5,
			want: time.Date(2025, time.March, 12, 0, 5, 0, 0, karachi),
		},
		{
			name: "month end",
			now:  time.Date(2025, time.February, 28, 12, 0, 0, 0, karachi),
			hour: 0, min: 5,
			want: time.Date(2025, time.March, 1, 0, 5, 0, 0, karachi),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, c.want.Equal(NextRun(c.now, c.hour, c.min)))
		})
	}
}

func TestAddJob_InvalidTime(t *testing.T) {
	s := NewScheduler(clock.New(time.UTC))
	assert.Error(t, s.AddJob("bad", 24, 0, func(context.Context) error { return nil }))
	assert.Error(t, s.AddJob("bad", 0, 60, func(context.Context) error { return nil }))
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	checkouts int
	backfills int
	err       error
}

func (f *fakeAttendanceService) RunAutoCheckout(ctx context.Context) (attendance.BatchResult, error) {
	f.checkouts++
	return attendance.BatchResult{Processed: 1}, f.err
}

func (f *fakeAttendanceService) RunDailyBackfill(ctx context.Context) (attendance.BatchResult, error) {
	f.backfills++
	return attendance.BatchResult{Processed: 2}, f.err
}

func TestAttendanceJobs_RunOnce(t *testing.T) {
	svc := &fakeAttendanceService{}
	s := NewScheduler(clock.New(time.UTC))
	require.NoError(t, NewAttendanceJobs(svc).RegisterJobs(s))

	s.RunOnce(context.Background())

	assert.Equal(t, 1, svc.checkouts)
	assert.Equal(t, 1, svc.backfills)
}

func TestAttendanceJobs_PropagatesError(t *testing.T) {
	svc := &fakeAttendanceService{err: errors.New("db down")}
	jobs := NewAttendanceJobs(svc)

	assert.ErrorContains(t, jobs.AutoCheckout(context.Background()), "db down")
	assert.ErrorContains(t, jobs.DailyBackfill(context.Background()), "db down")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(clock.New(time.UTC))
	require.NoError(t, s.AddJob("noop", 3, 0, func(context.Context) error { return nil }))

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
