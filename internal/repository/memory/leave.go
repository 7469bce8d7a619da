package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
)

type leaveBalanceRepository struct{ s *Store }

func (r leaveBalanceRepository) Get(ctx context.Context, employeeID string, year int, month time.Month) (*leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.balances[monthKey(employeeID, year, month)]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r leaveBalanceRepository) CreateIfAbsent(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := monthKey(b.EmployeeID, b.Year, b.Month)
	if existing, ok := r.s.balances[key]; ok {
		return existing, nil
	}
	now := time.Now()
	b.ID = newID()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.balances[key] = b
	return b, nil
}

func (r leaveBalanceRepository) ApplyCarryover(ctx context.Context, id string, carryoverMinutes int) (leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, b := range r.s.balances {
		if b.ID == id {
			if b.CarryoverMinutes != 0 {
				return b, nil
			}
			b.CarryoverMinutes = carryoverMinutes
			b.BalanceMinutes += carryoverMinutes
			b.UpdatedAt = time.Now()
			r.s.balances[key] = b
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
}

func (r leaveBalanceRepository) Utilize(ctx context.Context, id string, minutes int) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, b := range r.s.balances {
		if b.ID != id {
			continue
		}
		if b.BalanceMinutes-b.UtilizedMinutes < minutes {
			return false, b.Available(), nil
		}
		b.UtilizedMinutes += minutes
		b.UpdatedAt = time.Now()
		r.s.balances[key] = b
		return true, b.Available(), nil
	}
	return false, 0, leave.ErrLeaveBalanceNotFound
}

type leaveRequestRepository struct{ s *Store }

func (r leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.requests {
		if existing.EmployeeID == req.EmployeeID && existing.Date.Equal(req.Date) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestExists
		}
	}
	now := time.Now()
	req.ID = newID()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.requests[req.ID] = req
	return r.s.withRequesterName(req), nil
}

func (r leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.s.withRequesterName(req), nil
}

func (r leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r leaveRequestRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, req := range r.s.requests {
		if req.EmployeeID == employeeID && req.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.LeaveRequest
	for _, req := range r.s.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if !inRange(req.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, r.s.withRequesterName(req))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r leaveRequestRepository) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.requests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	existing.Status = req.Status
	existing.UnpaidDays = req.UnpaidDays
	existing.UnpaidHours = req.UnpaidHours
	existing.ProcessedAt = req.ProcessedAt
	existing.UpdatedAt = time.Now()
	r.s.requests[req.ID] = existing
	return nil
}

func (s *Store) withRequesterName(req leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := s.employees[req.EmployeeID]; ok {
		name := e.FullName
		req.EmployeeName = &name
	}
	return req
}
