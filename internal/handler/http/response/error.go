package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/attendance"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/auth"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/qrcode"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive), errors.Is(err, attendance.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrEmployeeRoleRequired):
		Forbidden(w, "Employee profile required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Attendance domain errors
	case errors.Is(err, qrcode.ErrInvalidQRCode), errors.Is(err, qrcode.ErrQRCodeExpired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidDateTime):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNoCheckIn),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrDayNotWorkable),
		errors.Is(err, attendance.ErrIncompleteTimes),
		errors.Is(err, attendance.ErrAttendanceDeleted):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveRequestExists),
		errors.Is(err, leave.ErrAttendanceExistsForDate):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrPastDate), errors.Is(err, leave.ErrInvalidLeaveAmount):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Public holiday already exists for this date")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// File writes a downloadable attachment.
func File(w http.ResponseWriter, fileName, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
