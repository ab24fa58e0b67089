// Package mocks provides mock implementations for testing the portal.
//
// Repository mocks are generated with go.uber.org/mock (gomock) from the
// interfaces in internal/ports. Generated files are not checked in; run
//
//	go generate ./internal/mocks
//
// after changing an interface. Hand-written doubles for the auth ports
// live in internal/mocks/auth.
package mocks

// Generate mock for EmployeeRepository from internal/ports:
// Create, GetByID, GetByEmail, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=employee_repository_mock.go github.com/peopledesk/peopledesk/internal/ports EmployeeRepository

// Generate mock for LeaveRepository from internal/ports:
// Create, GetByID, List, Decide, Cancel
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=leave_repository_mock.go github.com/peopledesk/peopledesk/internal/ports LeaveRepository
