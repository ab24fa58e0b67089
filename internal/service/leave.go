package service

import (
	"context"
	"errors"

	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/ports"
)

// LeaveServiceOptions groups dependencies for LeaveService.
type LeaveServiceOptions struct {
	Leaves    ports.LeaveRepository
	Employees ports.EmployeeRepository
}

// LeaveService orchestrates the leave request lifecycle.
type LeaveService struct {
	leaves    ports.LeaveRepository
	employees ports.EmployeeRepository
}

// NewLeaveService constructs a new LeaveService.
func NewLeaveService(opts LeaveServiceOptions) *LeaveService {
	return &LeaveService{leaves: opts.Leaves, employees: opts.Employees}
}

// Create opens a leave request for an existing employee.
func (s *LeaveService) Create(ctx context.Context, req *model.CreateLeaveRequest) (*model.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	return s.leaves.Create(ctx, req)
}

// GetByID retrieves a leave request by ID.
func (s *LeaveService) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	return s.leaves.GetByID(ctx, id)
}

// List returns a page of leave requests with optional filters.
func (s *LeaveService) List(ctx context.Context, opts model.LeavesListOptions) ([]model.LeaveRequest, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.leaves.List(ctx, opts)
}

// Decide approves or rejects a pending leave request.
func (s *LeaveService) Decide(ctx context.Context, id string, req *model.DecideLeaveRequest) (*model.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.leaves.Decide(ctx, id, req)
}

// Cancel withdraws a pending leave request on behalf of its owner.
func (s *LeaveService) Cancel(ctx context.Context, id string, employeeID string) (*model.LeaveRequest, error) {
	if employeeID == "" {
		return nil, errors.New("employee ID is required")
	}
	return s.leaves.Cancel(ctx, id, employeeID)
}
