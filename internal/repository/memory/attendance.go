package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
)

type attendanceRepository struct{ s *Store }

func (r attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.liveAttendance(a.EmployeeID, a.Date); ok {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	now := time.Now()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendances[a.ID] = a
	return r.s.withEmployeeName(a), nil
}

func (r attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok || a.DeletedAt != nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.s.withEmployeeName(a), nil
}

func (r attendanceRepository) GetByIDForUpdate(ctx context.Context, id string) (attendance.Attendance, error) {
	return r.GetByID(ctx, id)
}

func (r attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.liveAttendance(employeeID, date)
	if !ok {
		return nil, nil
	}
	a = r.s.withEmployeeName(a)
	return &a, nil
}

func (r attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.attendances[a.ID]
	if !ok || existing.DeletedAt != nil {
		return attendance.ErrAttendanceNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	r.s.attendances[a.ID] = a
	return nil
}

func (r attendanceRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok || a.DeletedAt != nil {
		return attendance.ErrAttendanceNotFound
	}
	a.DeletedAt = &at
	r.s.attendances[id] = a
	return nil
}

func (r attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Attendance
	for _, a := range r.s.attendances {
		if a.DeletedAt != nil {
			continue
		}
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if !inRange(a.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, r.s.withEmployeeName(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (r attendanceRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Attendance
	for _, a := range r.s.attendances {
		if a.DeletedAt == nil && a.Date.Equal(date) && a.IsCheckedIn() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r attendanceRepository) ActivatePlaceholdersBefore(ctx context.Context, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, a := range r.s.attendances {
		if a.DeletedAt == nil && !a.IsActive && a.Date.Before(date) {
			a.IsActive = true
			r.s.attendances[id] = a
			n++
		}
	}
	return n, nil
}

func (s *Store) liveAttendance(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range s.attendances {
		if a.DeletedAt == nil && a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (s *Store) withEmployeeName(a attendance.Attendance) attendance.Attendance {
	if e, ok := s.employees[a.EmployeeID]; ok {
		name := e.FullName
		a.EmployeeName = &name
	}
	return a
}

type summaryRepository struct{ s *Store }

func (r summaryRepository) Get(ctx context.Context, employeeID string, year int, month time.Month) (*attendance.MonthlySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	summary, ok := r.s.summaries[monthKey(employeeID, year, month)]
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

func (r summaryRepository) Upsert(ctx context.Context, summary attendance.MonthlySummary) (attendance.MonthlySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := monthKey(summary.EmployeeID, summary.Year, summary.Month)
	now := time.Now()
	if existing, ok := r.s.summaries[key]; ok {
		summary.ID = existing.ID
		summary.CreatedAt = existing.CreatedAt
	} else {
		summary.ID = newID()
		summary.CreatedAt = now
	}
	summary.UpdatedAt = now
	r.s.summaries[key] = summary
	return summary, nil
}

type deductionRepository struct{ s *Store }

func (r deductionRepository) Create(ctx context.Context, d attendance.Deduction) (attendance.Deduction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d.ID = newID()
	d.CreatedAt = time.Now()
	r.s.deductions[d.ID] = d
	return d, nil
}

func (r deductionRepository) DeleteByAttendanceID(ctx context.Context, attendanceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, d := range r.s.deductions {
		if d.AttendanceID == attendanceID {
			delete(r.s.deductions, id)
		}
	}
	return nil
}

func (r deductionRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Deduction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Deduction
	for _, d := range r.s.deductions {
		if d.EmployeeID != employeeID {
			continue
		}
		a, ok := r.s.attendances[d.AttendanceID]
		if !ok || !inRange(a.Date, from, to) {
			continue
		}
		date := a.Date
		d.AttendanceDate = &date
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceDate.Before(*out[j].AttendanceDate) })
	return out, nil
}
