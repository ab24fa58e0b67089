package service

import (
	"context"

	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// EmployeeServiceOptions groups dependencies for EmployeeService.
type EmployeeServiceOptions struct {
	Employees ports.EmployeeRepository
}

// EmployeeService orchestrates employee directory operations.
type EmployeeService struct {
	employees ports.EmployeeRepository
}

// NewEmployeeService constructs a new EmployeeService.
func NewEmployeeService(opts EmployeeServiceOptions) *EmployeeService {
	return &EmployeeService{employees: opts.Employees}
}

// Create adds an employee to the directory.
func (s *EmployeeService) Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.employees.Create(ctx, req)
}

// GetByID retrieves an employee by ID.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List returns a page of employees with optional filters.
func (s *EmployeeService) List(ctx context.Context, opts model.EmployeesListOptions) ([]model.Employee, error) {
	return s.employees.List(ctx, normalizeListLimits(opts))
}

// Update applies a partial update to an employee.
func (s *EmployeeService) Update(ctx context.Context, id string, req *model.UpdateEmployeeRequest) (*model.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.employees.Update(ctx, id, req)
}

// Delete removes an employee from the directory.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

func normalizeListLimits(opts model.EmployeesListOptions) model.EmployeesListOptions {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
