// Package devseed fills a development database with a small company so every
// role in the catalog has someone to sign in as. Seeding is idempotent:
// employees are keyed by email and existing rows are left alone.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/peopledesk/peopledesk/internal/data"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Employees *service.EmployeeService
	Leaves    *service.LeaveService
	Repo      *data.EmployeeRepo
}

// NewServices constructs the seeding services from shared repositories.
func NewServices(employeeRepo *data.EmployeeRepo, leaveRepo *data.LeaveRepo) Services {
	return Services{
		Employees: service.NewEmployeeService(service.EmployeeServiceOptions{Employees: employeeRepo}),
		Leaves: service.NewLeaveService(service.LeaveServiceOptions{
			Leaves:    leaveRepo,
			Employees: employeeRepo,
		}),
		Repo: employeeRepo,
	}
}

// Run executes the development seeding workflow.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := seedEmployees(ctx, svcs, logger)
	failures += seedLeaveRequests(ctx, svcs, logger)
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

type seedEmployee struct {
	firstName  string
	lastName   string
	email      string
	department string
	role       auth.Role
	managerOf  []string // emails of direct reports, resolved after creation
}

func seedRoster() []seedEmployee {
	return []seedEmployee{
		{"Avery", "Chen", "avery.chen@peopledesk.dev", "Operations", auth.RoleAdmin, nil},
		{"Priya", "Natarajan", "priya.natarajan@peopledesk.dev", "People", auth.RoleSuperHR, nil},
		{"Marcus", "Webb", "marcus.webb@peopledesk.dev", "People", auth.RoleHRManager, nil},
		{"Sofia", "Reyes", "sofia.reyes@peopledesk.dev", "People", auth.RoleRecruiter, nil},
		{"Daniel", "Okafor", "daniel.okafor@peopledesk.dev", "Engineering", auth.RoleInterviewer, nil},
		{"Hana", "Sato", "hana.sato@peopledesk.dev", "Engineering", auth.RoleManager,
			[]string{"liam.torres@peopledesk.dev", "nora.lindqvist@peopledesk.dev"}},
		{"Liam", "Torres", "liam.torres@peopledesk.dev", "Engineering", auth.RoleTeamLead, nil},
		{"Nora", "Lindqvist", "nora.lindqvist@peopledesk.dev", "Engineering", auth.RoleEmployee, nil},
		{"Theo", "Baptiste", "theo.baptiste@peopledesk.dev", "Engineering", auth.RoleIntern, nil},
	}
}

func seedEmployees(ctx context.Context, svcs Services, logger *slog.Logger) int {
	failures := 0
	hired := time.Now().AddDate(0, -6, 0)

	roster := seedRoster()
	for _, e := range roster {
		created, err := createEmployee(ctx, svcs.Employees, &model.CreateEmployeeRequest{
			FirstName:  e.firstName,
			LastName:   e.lastName,
			Email:      e.email,
			Department: e.department,
			Role:       e.role,
			HiredAt:    &hired,
		})
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create employee", "email", e.email, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "employee already exists"
			if created {
				msg = "created employee"
			}
			logger.InfoContext(ctx, msg, "email", e.email, "role", e.role)
		}
	}

	failures += assignManagers(ctx, svcs, roster, logger)
	return failures
}

func createEmployee(ctx context.Context, svc *service.EmployeeService, req *model.CreateEmployeeRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrEmployeeEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func assignManagers(ctx context.Context, svcs Services, roster []seedEmployee, logger *slog.Logger) int {
	failures := 0
	for _, e := range roster {
		if len(e.managerOf) == 0 {
			continue
		}
		manager, err := svcs.Repo.GetByEmail(ctx, e.email)
		if err != nil {
			failures++
			continue
		}
		for _, reportEmail := range e.managerOf {
			report, err := svcs.Repo.GetByEmail(ctx, reportEmail)
			if err != nil {
				failures++
				continue
			}
			if report.ManagerID != nil {
				continue
			}
			if _, err := svcs.Employees.Update(ctx, report.ID, &model.UpdateEmployeeRequest{
				ManagerID: &manager.ID,
			}); err != nil {
				if logger != nil {
					logger.ErrorContext(ctx, "failed to assign manager", "email", reportEmail, "error", err)
				}
				failures++
			}
		}
	}
	return failures
}

func seedLeaveRequests(ctx context.Context, svcs Services, logger *slog.Logger) int {
	emp, err := svcs.Repo.GetByEmail(ctx, "nora.lindqvist@peopledesk.dev")
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to look up seed employee for leave requests", "error", err)
		}
		return 1
	}

	existing, err := svcs.Leaves.List(ctx, model.LeavesListOptions{Limit: 1, EmployeeID: &emp.ID})
	if err != nil {
		return 1
	}
	if len(existing) > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "leave requests already seeded", "employee_id", emp.ID)
		}
		return 0
	}

	start := time.Now().AddDate(0, 1, 0)
	if _, err := svcs.Leaves.Create(ctx, &model.CreateLeaveRequest{
		EmployeeID: emp.ID,
		Type:       model.LeaveTypeAnnual,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 10),
		Reason:     "summer vacation",
	}); err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to create seed leave request", "error", err)
		}
		return 1
	}
	if logger != nil {
		logger.InfoContext(ctx, "created seed leave request", "employee_id", emp.ID)
	}
	return 0
}
