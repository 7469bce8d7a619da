package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	// GetByEmail ignores deleted users and joins the employee id, if any.
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
}
