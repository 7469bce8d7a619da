package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/workday"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db           database.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	bcryptCost   int
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.NewEmployeeResponse(e))
	}
	return out, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// Create implements employee.EmployeeService. The login and the employee
// profile are created together.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	joiningDate, _ := workday.ParseDate(req.JoiningDate)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return employee.ErrEmailExists
		}

		u, err := s.userRepo.Create(ctx, user.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			IsActive:     true,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return employee.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			UserID:      u.ID,
			FullName:    strings.TrimSpace(req.FullName),
			Phone:       req.Phone,
			Designation: strings.TrimSpace(req.Designation),
			DailySalary: req.DailySalary.Round(2),
			JoiningDate: joiningDate,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		created.Email = u.Email
		created.IsActive = u.IsActive
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// Update implements employee.EmployeeService. Only the given fields change;
// IsActive is stored on the linked user.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.FullName != nil {
			e.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Phone != nil {
			e.Phone = *req.Phone
		}
		if req.Designation != nil {
			e.Designation = strings.TrimSpace(*req.Designation)
		}
		if req.DailySalary != nil {
			e.DailySalary = req.DailySalary.Round(2)
		}
		if req.JoiningDate != nil {
			e.JoiningDate, _ = workday.ParseDate(*req.JoiningDate)
		}
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if req.IsActive != nil && *req.IsActive != e.IsActive {
			if err := s.userRepo.SetActive(ctx, e.UserID, *req.IsActive); err != nil {
				return fmt.Errorf("failed to update user status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !e.IsActive {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}
	if err := s.userRepo.SetActive(ctx, e.UserID, false); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to deactivate user: %w", err)
	}
	e.IsActive = false
	return employee.NewEmployeeResponse(e), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if err := s.userRepo.SoftDelete(ctx, e.UserID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
