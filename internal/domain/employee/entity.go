package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	UserID      string
	FullName    string
	Phone       string
	Designation string
	DailySalary decimal.Decimal
	JoiningDate time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	Email    string
	IsActive bool
}
