package testutil

import (
	"fmt"
	"time"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/model"
)

// EmployeeRequestBuilder builds employee create requests for tests.
type EmployeeRequestBuilder struct {
	req model.CreateEmployeeRequest
}

// NewEmployeeRequest starts a builder with sensible defaults. The suffix
// keeps emails unique across fixtures created in the same test.
func NewEmployeeRequest(suffix string) *EmployeeRequestBuilder {
	return &EmployeeRequestBuilder{
		req: model.CreateEmployeeRequest{
			FirstName:  "Test",
			LastName:   "Employee" + suffix,
			Email:      fmt.Sprintf("employee%s@example.test", suffix),
			Department: "Engineering",
			Role:       auth.RoleEmployee,
		},
	}
}

func (b *EmployeeRequestBuilder) WithName(first, last string) *EmployeeRequestBuilder {
	b.req.FirstName = first
	b.req.LastName = last
	return b
}

func (b *EmployeeRequestBuilder) WithEmail(email string) *EmployeeRequestBuilder {
	b.req.Email = email
	return b
}

func (b *EmployeeRequestBuilder) WithDepartment(dept string) *EmployeeRequestBuilder {
	b.req.Department = dept
	return b
}

func (b *EmployeeRequestBuilder) WithRole(role auth.Role) *EmployeeRequestBuilder {
	b.req.Role = role
	return b
}

func (b *EmployeeRequestBuilder) WithManager(managerID string) *EmployeeRequestBuilder {
	b.req.ManagerID = &managerID
	return b
}

func (b *EmployeeRequestBuilder) WithHiredAt(t time.Time) *EmployeeRequestBuilder {
	b.req.HiredAt = &t
	return b
}

func (b *EmployeeRequestBuilder) Build() *model.CreateEmployeeRequest {
	req := b.req
	return &req
}

// LeaveRequestBuilder builds leave create requests for tests.
type LeaveRequestBuilder struct {
	req model.CreateLeaveRequest
}

// NewLeaveRequest starts a builder for the given employee with a one week
// annual leave starting tomorrow.
func NewLeaveRequest(employeeID string) *LeaveRequestBuilder {
	start := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	return &LeaveRequestBuilder{
		req: model.CreateLeaveRequest{
			EmployeeID: employeeID,
			Type:       model.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 7),
			Reason:     "vacation",
		},
	}
}

func (b *LeaveRequestBuilder) WithType(t model.LeaveType) *LeaveRequestBuilder {
	b.req.Type = t
	return b
}

func (b *LeaveRequestBuilder) WithDates(start, end time.Time) *LeaveRequestBuilder {
	b.req.StartDate = start
	b.req.EndDate = end
	return b
}

func (b *LeaveRequestBuilder) WithReason(reason string) *LeaveRequestBuilder {
	b.req.Reason = reason
	return b
}

func (b *LeaveRequestBuilder) Build() *model.CreateLeaveRequest {
	req := b.req
	return &req
}
