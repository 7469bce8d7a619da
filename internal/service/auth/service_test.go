package auth

import (
	"context"
	"testing"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/auth"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/jwt"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, user.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), jwt.NewJWTService("test-secret", "1h"))
	return svc, store.Users()
}

func seedUser(t *testing.T, repo user.UserRepository, email, password string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		IsActive:     active,
	})
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)
	u := seedUser(t, repo, "ali@syntaxmove.com", "secret123", true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ALI@syntaxmove.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Equal(t, "employee", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "ali@syntaxmove.com", "secret123", true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ali@syntaxmove.com", Password: "nope"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ghost@syntaxmove.com", Password: "secret123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "ali@syntaxmove.com", "secret123", false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ali@syntaxmove.com", Password: "secret123"})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
