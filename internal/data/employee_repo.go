package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peopledesk/peopledesk/internal/data/pgxutil"
	"github.com/peopledesk/peopledesk/internal/domain/model"
)

var (
	// ErrEmployeeNotFound is returned when an employee is not found.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeEmailExists is returned when creating an employee with a duplicate email.
	ErrEmployeeEmailExists = errors.New("employee email already exists")
)

const employeeColumns = `id, first_name, last_name, email, department, role, manager_id, status, hired_at, created_at, updated_at`

const (
	employeeGetByIDQuery = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1`

	employeeGetByEmailQuery = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE lower(email) = lower($1)`
)

// EmployeeRepo provides database operations for the employee directory.
type EmployeeRepo struct {
	DB *sql.DB
}

// NewEmployeeRepo creates a new EmployeeRepo.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{DB: db}
}

// Create inserts a new employee. New employees start in onboarding unless
// hired in the past.
func (r *EmployeeRepo) Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	if req == nil {
		return nil, errors.New("create employee request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hiredAt := now
	if req.HiredAt != nil {
		hiredAt = req.HiredAt.UTC()
	}
	status := model.EmployeeStatusOnboarding
	if hiredAt.Before(now) {
		status = model.EmployeeStatusActive
	}

	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO employees (
				id, first_name, last_name, email, department, role, manager_id, status, hired_at, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			) RETURNING `+employeeColumns,
			uuid.NewString(),
			strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName),
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.Department),
			req.Role,
			req.ManagerID,
			status,
			hiredAt,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return r.getByQuery(ctx, employeeGetByIDQuery, id)
}

// GetByEmail retrieves an employee by email, case-insensitively.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	return r.getByQuery(ctx, employeeGetByEmailQuery, email)
}

func (r *EmployeeRepo) getByQuery(ctx context.Context, query string, arg string) (*model.Employee, error) {
	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &out, nil
}

// List retrieves employees with pagination and optional filters.
func (r *EmployeeRepo) List(ctx context.Context, opts model.EmployeesListOptions) ([]model.Employee, error) {
	where, args := buildEmployeeFilters(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + employeeColumns + ` FROM employees` + where +
		` ORDER BY last_name, first_name` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var out []model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

func buildEmployeeFilters(opts model.EmployeesListOptions) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		idx := nextIdx()
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
	}
	if opts.Department != nil && *opts.Department != "" {
		conds = append(conds, fmt.Sprintf("department = $%d", nextIdx()))
		args = append(args, *opts.Department)
	}
	if opts.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *opts.Status)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update applies a partial update to an employee.
func (r *EmployeeRepo) Update(ctx context.Context, id string, req *model.UpdateEmployeeRequest) (*model.Employee, error) {
	if req == nil {
		return nil, errors.New("update employee request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := buildEmployeeUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := "UPDATE employees SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + employeeColumns

	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

func buildEmployeeUpdateClause(req *model.UpdateEmployeeRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.LastName))
	}
	if req.Department != nil {
		setParts = append(setParts, fmt.Sprintf("department = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Department))
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, *req.Role)
	}
	if req.ManagerID != nil {
		if strings.TrimSpace(*req.ManagerID) == "" {
			setParts = append(setParts, "manager_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("manager_id = $%d", nextIdx()))
			args = append(args, *req.ManagerID)
		}
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, "updated_at = now()")
	return strings.Join(setParts, ", "), args
}

// Delete removes an employee by ID.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	var rows int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	}); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if rows == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmployeeEmailExists
	}
	return err
}
