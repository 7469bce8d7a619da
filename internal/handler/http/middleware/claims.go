package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// EmployeeID returns the employee_id claim of the verified token.
func EmployeeID(r *http.Request) (string, bool) {
	return stringClaim(r, "employee_id")
}

// UserID returns the user_id claim of the verified token.
func UserID(r *http.Request) (string, bool) {
	return stringClaim(r, "user_id")
}

func stringClaim(r *http.Request, key string) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
