package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
)

type userRepository struct{ s *Store }

func (r userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.DeletedAt == nil && strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	now := time.Now()
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = u
	return u, nil
}

func (r userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return r.s.withEmployeeID(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return user.User{}, user.ErrUserNotFound
	}
	return r.s.withEmployeeID(u), nil
}

func (r userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepository) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

func (r userRepository) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return user.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	u.IsActive = false
	r.s.users[id] = u
	return nil
}

func (s *Store) withEmployeeID(u user.User) user.User {
	for _, e := range s.employees {
		if e.UserID == u.ID && e.DeletedAt == nil {
			id := e.ID
			u.EmployeeID = &id
			break
		}
	}
	return u
}

type employeeRepository struct{ s *Store }

func (r employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	e.ID = newID()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.employees[e.ID] = e
	return r.s.joinUser(e), nil
}

func (r employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.s.joinUser(e), nil
}

func (r employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if e.UserID == userID && e.DeletedAt == nil {
			return r.s.joinUser(e), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.DeletedAt != nil {
			continue
		}
		e = r.s.joinUser(e)
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.employees[e.ID]
	if !ok || existing.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	r.s.employees[e.ID] = e
	return nil
}

func (r employeeRepository) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	now := time.Now()
	e.DeletedAt = &now
	r.s.employees[id] = e
	return nil
}

// joinUser fills the columns read from the users table. Employees seeded
// without a user keep their own IsActive.
func (s *Store) joinUser(e employee.Employee) employee.Employee {
	if u, ok := s.users[e.UserID]; ok {
		e.Email = u.Email
		e.IsActive = u.IsActive && u.DeletedAt == nil
	}
	return e
}
