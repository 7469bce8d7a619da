package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests skip when the variable is unset.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.Migrate(ctx, db))

	_, err = db.Exec(ctx, `
		TRUNCATE TABLE salary_deduction_ledgers, monthly_attendance_summaries, attendances,
			leave_requests, leave_balances, public_holidays, employees, users CASCADE`)
	require.NoError(t, err)
	return db
}

func createTestEmployee(t *testing.T, db *database.DB, name string, joined time.Time) employee.Employee {
	t.Helper()
	ctx := context.Background()

	u, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         user.RoleEmployee,
		IsActive:     true,
	})
	require.NoError(t, err)

	emp, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		UserID:      u.ID,
		FullName:    name,
		Designation: "Engineer",
		DailySalary: decimal.NewFromInt(1000),
		JoiningDate: joined,
	})
	require.NoError(t, err)
	return emp
}
