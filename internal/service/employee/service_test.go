package employee

import (
	"context"
	"testing"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestEmployeeService() *EmployeeServiceImpl {
	store := memory.NewStore()
	svc := NewEmployeeService(store, store.Employees(), store.Users()).(*EmployeeServiceImpl)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Email:       "Sara@SyntaxMove.com",
		Password:    "password123",
		FullName:    "Sara Khan",
		Phone:       "03001234567",
		Designation: "Engineer",
		DailySalary: decimal.NewFromInt(1000),
		JoiningDate: "2024-01-15",
	}
}

func TestCreate(t *testing.T) {
	svc := newTestEmployeeService()

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "sara@syntaxmove.com", resp.Email)
	assert.Equal(t, "Sara Khan", resp.FullName)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "2024-01-15", resp.JoiningDate)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.DailySalary))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := newTestEmployeeService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestUpdate_PartialAndActiveFlag(t *testing.T) {
	svc := newTestEmployeeService()
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	designation := "Senior Engineer"
	inactive := false
	resp, err := svc.Update(context.Background(), created.ID, employee.UpdateEmployeeRequest{
		Designation: &designation,
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", resp.Designation)
	assert.Equal(t, "Sara Khan", resp.FullName)
	assert.False(t, resp.IsActive)
}

func TestDeactivate(t *testing.T) {
	svc := newTestEmployeeService()
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Deactivate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, err = svc.Deactivate(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)
}

func TestDelete(t *testing.T) {
	svc := newTestEmployeeService()
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
