package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmailExists             = errors.New("user with this email already exists")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
