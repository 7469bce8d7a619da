package middleware

import (
	"net/http"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/auth"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeOnly requires a token that carries an employee profile.
func EmployeeOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := EmployeeID(r); !ok {
			response.HandleError(w, user.ErrEmployeeRoleRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
