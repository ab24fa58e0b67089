package ports

import (
	"context"

	"github.com/peopledesk/peopledesk/internal/domain/model"
)

// EmployeeRepository persists employees.
type EmployeeRepository interface {
	Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	List(ctx context.Context, opts model.EmployeesListOptions) ([]model.Employee, error)
	Update(ctx context.Context, id string, req *model.UpdateEmployeeRequest) (*model.Employee, error)
	Delete(ctx context.Context, id string) error
}

// LeaveRepository persists leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req *model.CreateLeaveRequest) (*model.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	List(ctx context.Context, opts model.LeavesListOptions) ([]model.LeaveRequest, error)
	Decide(ctx context.Context, id string, req *model.DecideLeaveRequest) (*model.LeaveRequest, error)
	Cancel(ctx context.Context, id string, employeeID string) (*model.LeaveRequest, error)
}
