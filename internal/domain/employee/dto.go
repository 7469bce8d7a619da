package employee

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone"`
	Designation string          `json:"designation"`
	DailySalary decimal.Decimal `json:"daily_salary"`
	JoiningDate string          `json:"joining_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be 10-15 digits"})
	}
	if validator.IsEmpty(r.Designation) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "designation is required"})
	}
	if !r.DailySalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "daily_salary", Message: "daily_salary must be positive"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName    *string          `json:"full_name,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	DailySalary *decimal.Decimal `json:"daily_salary,omitempty"`
	JoiningDate *string          `json:"joining_date,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not be empty"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be 10-15 digits"})
	}
	if r.Designation != nil && validator.IsEmpty(*r.Designation) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "designation must not be empty"})
	}
	if r.DailySalary != nil && !r.DailySalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "daily_salary", Message: "daily_salary must be positive"})
	}
	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone"`
	Designation string          `json:"designation"`
	DailySalary decimal.Decimal `json:"daily_salary"`
	JoiningDate string          `json:"joining_date"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Email:       e.Email,
		FullName:    e.FullName,
		Phone:       e.Phone,
		Designation: e.Designation,
		DailySalary: e.DailySalary,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
