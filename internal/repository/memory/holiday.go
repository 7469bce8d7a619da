package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

type holidayRepository struct{ s *Store }

func (r holidayRepository) Create(ctx context.Context, h holiday.PublicHoliday) (holiday.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.PublicHoliday{}, holiday.ErrHolidayExists
		}
	}
	now := time.Now()
	h.ID = newID()
	h.CreatedAt, h.UpdatedAt = now, now
	r.s.holidays[h.ID] = h
	return h, nil
}

func (r holidayRepository) GetByID(ctx context.Context, id string) (holiday.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.holidays[id]
	if !ok {
		return holiday.PublicHoliday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (r holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.holidays {
		if h.Date.Equal(date) {
			return &h, nil
		}
	}
	return nil, nil
}

func (r holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []holiday.PublicHoliday
	for _, h := range r.s.holidays {
		if inRange(h.Date, &from, &to) {
			out = append(out, h)
		}
	}
	sortHolidays(out)
	return out, nil
}

func (r holidayRepository) List(ctx context.Context) ([]holiday.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]holiday.PublicHoliday, 0, len(r.s.holidays))
	for _, h := range r.s.holidays {
		out = append(out, h)
	}
	sortHolidays(out)
	return out, nil
}

func (r holidayRepository) Update(ctx context.Context, h holiday.PublicHoliday) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.holidays[h.ID]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	existing.Name = h.Name
	existing.Description = h.Description
	existing.UpdatedAt = time.Now()
	r.s.holidays[h.ID] = existing
	return nil
}

func (r holidayRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

func sortHolidays(hs []holiday.PublicHoliday) {
	sort.Slice(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })
}

type reportRepository struct{ s *Store }

func (r reportRepository) GetMonthlySalaryRows(ctx context.Context, year int, month time.Month) ([]report.MonthlySalaryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []report.MonthlySalaryRow
	for _, e := range r.s.employees {
		if e.DeletedAt != nil {
			continue
		}
		e = r.s.joinUser(e)
		row := report.MonthlySalaryRow{
			EmployeeID:        e.ID,
			FullName:          e.FullName,
			Email:             e.Email,
			Designation:       e.Designation,
			DailySalary:       e.DailySalary,
			TotalSalaryEarned: decimal.Zero,
		}
		if summary, ok := r.s.summaries[monthKey(e.ID, year, month)]; ok {
			row.TotalWorkedMinutes = summary.TotalWorkedMinutes
			row.TotalShortMinutes = summary.TotalShortMinutes
			row.TotalSalaryEarned = summary.TotalSalaryEarned
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FullName < rows[j].FullName })
	return rows, nil
}
