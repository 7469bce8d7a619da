package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/response"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
)

// decodeJSON decodes the body into dst and writes 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: key + " must be a number"}}
	}
	return &n, nil
}

// queryString reads an optional string query parameter.
func queryString(r *http.Request, key string) *string {
	if raw := r.URL.Query().Get(key); raw != "" {
		return &raw
	}
	return nil
}

// validID rejects malformed path IDs before they reach the database.
func validID(w http.ResponseWriter, id string) bool {
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid ID format", nil)
		return false
	}
	return true
}
