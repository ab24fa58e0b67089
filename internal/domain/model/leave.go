//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLeaveReasonLen = 500

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveTypeAnnual     LeaveType = "annual"
	LeaveTypeSick       LeaveType = "sick"
	LeaveTypeUnpaid     LeaveType = "unpaid"
	LeaveTypeParental   LeaveType = "parental"
	LeaveTypeSabbatical LeaveType = "sabbatical"
)

// Valid reports whether the leave type is supported.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeUnpaid, LeaveTypeParental, LeaveTypeSabbatical:
		return true
	default:
		return false
	}
}

// LeaveStatus tracks a leave request through its approval lifecycle.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
	LeaveStatusCanceled LeaveStatus = "canceled"
)

// Valid reports whether the leave status is supported.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCanceled:
		return true
	default:
		return false
	}
}

// LeaveRequest represents a request for time off, pending until a manager
// or HR decides it.
type LeaveRequest struct {
	ID         string      `json:"id"                    db:"id"`
	EmployeeID string      `json:"employee_id"           db:"employee_id"`
	Type       LeaveType   `json:"type"                  db:"type"`
	Status     LeaveStatus `json:"status"                db:"status"`
	StartDate  time.Time   `json:"start_date"            db:"start_date"`
	EndDate    time.Time   `json:"end_date"              db:"end_date"`
	Reason     string      `json:"reason"                db:"reason"`
	DecidedBy  *string     `json:"decided_by,omitempty"  db:"decided_by"`
	DecidedAt  *time.Time  `json:"decided_at,omitempty"  db:"decided_at"`
	CreatedAt  time.Time   `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"            db:"updated_at"`
}

// LeavesListOptions controls paging and filtering for listing leave requests.
type LeavesListOptions struct {
	Limit      int
	Offset     int
	EmployeeID *string
	Status     *LeaveStatus
	Type       *LeaveType
}

// CreateLeaveRequest carries the fields needed to open a leave request.
type CreateLeaveRequest struct {
	EmployeeID string    `json:"employee_id"`
	Type       LeaveType `json:"type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
}

// Validate checks the request for structural problems.
func (r *CreateLeaveRequest) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" {
		return errors.New("employee ID is required")
	}
	if !r.Type.Valid() {
		return errors.New("leave type is invalid")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if r.EndDate.Before(r.StartDate) {
		return errors.New("end date is before start date")
	}
	if utf8.RuneCountInString(r.Reason) > maxLeaveReasonLen {
		return errors.New("reason is too long")
	}
	return nil
}

// DecideLeaveRequest carries a manager's decision on a pending leave request.
type DecideLeaveRequest struct {
	Approve   bool   `json:"approve"`
	DecidedBy string `json:"decided_by"`
}

// Validate checks the decision for structural problems.
func (r *DecideLeaveRequest) Validate() error {
	if strings.TrimSpace(r.DecidedBy) == "" {
		return errors.New("decider is required")
	}
	return nil
}
