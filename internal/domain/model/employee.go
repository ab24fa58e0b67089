//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

const (
	maxEmployeeNameLen  = 120
	maxDepartmentLen    = 80
	maxEmployeeEmailLen = 255
)

// EmployeeStatus tracks an employee through their lifecycle at the company.
type EmployeeStatus string

const (
	EmployeeStatusOnboarding EmployeeStatus = "onboarding"
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusOffboarded EmployeeStatus = "offboarded"
)

// Valid reports whether the employee status is supported.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusOnboarding, EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusOffboarded:
		return true
	default:
		return false
	}
}

// ParseEmployeeStatus normalizes a status string and reports whether it is supported.
func ParseEmployeeStatus(value string) (EmployeeStatus, bool) {
	status := EmployeeStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Employee represents a member of the organization.
type Employee struct {
	ID         string          `json:"id"                    db:"id"`
	FirstName  string          `json:"first_name"            db:"first_name"`
	LastName   string          `json:"last_name"             db:"last_name"`
	Email      string          `json:"email"                 db:"email"`
	Department string          `json:"department"            db:"department"`
	Role       domainauth.Role `json:"role"                  db:"role"`
	ManagerID  *string         `json:"manager_id,omitempty"  db:"manager_id"`
	Status     EmployeeStatus  `json:"status"                db:"status"`
	HiredAt    time.Time       `json:"hired_at"              db:"hired_at"`
	CreatedAt  time.Time       `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"            db:"updated_at"`
}

// EmployeesListOptions controls paging and filtering for listing employees.
// Q matches first name, last name, or email via ILIKE substring.
type EmployeesListOptions struct {
	Limit      int
	Offset     int
	Q          *string
	Department *string
	Status     *EmployeeStatus
}

// CreateEmployeeRequest carries the fields needed to create an employee.
type CreateEmployeeRequest struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	Role       domainauth.Role `json:"role"`
	ManagerID  *string         `json:"manager_id,omitempty"`
	HiredAt    *time.Time      `json:"hired_at,omitempty"`
}

// Validate checks the request for structural problems.
func (r *CreateEmployeeRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first name is required")
	}
	if utf8.RuneCountInString(r.FirstName) > maxEmployeeNameLen {
		return errors.New("first name is too long")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("last name is required")
	}
	if utf8.RuneCountInString(r.LastName) > maxEmployeeNameLen {
		return errors.New("last name is too long")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > maxEmployeeEmailLen || !strings.Contains(email, "@") {
		return errors.New("email is invalid")
	}
	if utf8.RuneCountInString(r.Department) > maxDepartmentLen {
		return errors.New("department is too long")
	}
	if r.Role != "" && !r.Role.Valid() {
		return errors.New("role is not in the role catalog")
	}
	return nil
}

// UpdateEmployeeRequest carries optional fields for updating an employee.
// Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name,omitempty"`
	LastName   *string          `json:"last_name,omitempty"`
	Department *string          `json:"department,omitempty"`
	Role       *domainauth.Role `json:"role,omitempty"`
	ManagerID  *string          `json:"manager_id,omitempty"`
	Status     *EmployeeStatus  `json:"status,omitempty"`
}

// Validate checks the update for structural problems.
func (r *UpdateEmployeeRequest) Validate() error {
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("first name cannot be blank")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return errors.New("last name cannot be blank")
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("role is not in the role catalog")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}
