package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	// GetByID returns ErrEmployeeNotFound for unknown or deleted employees.
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// List returns non-deleted employees ordered by name.
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, employee Employee) error
	SoftDelete(ctx context.Context, id string) error
}
