package holiday

import (
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateHolidayRequest changes the label of a holiday; its date is fixed.
type UpdateHolidayRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Description == nil {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name or description is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateHolidayResponse reports how many attendance records were stamped.
type CreateHolidayResponse struct {
	HolidayResponse
	StampedRecords int `json:"stamped_records"`
}

type DeleteHolidayResponse struct {
	UnstampedRecords int `json:"unstamped_records"`
}

func NewHolidayResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
