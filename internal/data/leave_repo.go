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
	// ErrLeaveNotFound is returned when a leave request is not found.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrLeaveNotPending is returned when deciding or canceling a leave
	// request that has already been decided.
	ErrLeaveNotPending = errors.New("leave request is not pending")
	// ErrLeaveEmployeeMissing is returned when creating a leave request for
	// an employee that does not exist.
	ErrLeaveEmployeeMissing = errors.New("employee for leave request not found")
)

const leaveColumns = `id, employee_id, type, status, start_date, end_date, reason, decided_by, decided_at, created_at, updated_at`

const leaveGetByIDQuery = `
	SELECT ` + leaveColumns + `
	FROM leave_requests
	WHERE id = $1`

// LeaveRepo provides database operations for leave requests.
type LeaveRepo struct {
	DB *sql.DB
}

// NewLeaveRepo creates a new LeaveRepo.
func NewLeaveRepo(db *sql.DB) *LeaveRepo {
	return &LeaveRepo{DB: db}
}

// Create opens a new pending leave request.
func (r *LeaveRepo) Create(ctx context.Context, req *model.CreateLeaveRequest) (*model.LeaveRequest, error) {
	if req == nil {
		return nil, errors.New("create leave request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.LeaveRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO leave_requests (
				id, employee_id, type, status, start_date, end_date, reason, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING `+leaveColumns,
			uuid.NewString(),
			req.EmployeeID,
			req.Type,
			model.LeaveStatusPending,
			req.StartDate.UTC(),
			req.EndDate.UTC(),
			strings.TrimSpace(req.Reason),
			time.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LeaveRequest])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrLeaveEmployeeMissing
		}
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a leave request by ID.
func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var out model.LeaveRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, leaveGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LeaveRequest])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return &out, nil
}

// List retrieves leave requests with pagination and optional filters.
func (r *LeaveRepo) List(ctx context.Context, opts model.LeavesListOptions) ([]model.LeaveRequest, error) {
	where, args := buildLeaveFilters(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests` + where +
		` ORDER BY created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var out []model.LeaveRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.LeaveRequest])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return out, nil
}

func buildLeaveFilters(opts model.LeavesListOptions) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if opts.EmployeeID != nil && *opts.EmployeeID != "" {
		conds = append(conds, fmt.Sprintf("employee_id = $%d", nextIdx()))
		args = append(args, *opts.EmployeeID)
	}
	if opts.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *opts.Status)
	}
	if opts.Type != nil {
		conds = append(conds, fmt.Sprintf("type = $%d", nextIdx()))
		args = append(args, *opts.Type)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Decide approves or rejects a pending leave request. The update only
// matches pending rows so a decided request cannot be decided again.
func (r *LeaveRepo) Decide(ctx context.Context, id string, req *model.DecideLeaveRequest) (*model.LeaveRequest, error) {
	if req == nil {
		return nil, errors.New("decide leave request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := model.LeaveStatusRejected
	if req.Approve {
		status = model.LeaveStatusApproved
	}
	return r.transition(ctx, `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = now(), updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING `+leaveColumns,
		id, status, strings.TrimSpace(req.DecidedBy), model.LeaveStatusPending)
}

// Cancel withdraws a pending leave request. Only the owning employee can
// cancel, enforced by matching on employee_id.
func (r *LeaveRepo) Cancel(ctx context.Context, id string, employeeID string) (*model.LeaveRequest, error) {
	return r.transition(ctx, `
		UPDATE leave_requests
		SET status = $3, updated_at = now()
		WHERE id = $1 AND employee_id = $2 AND status = $4
		RETURNING `+leaveColumns,
		id, employeeID, model.LeaveStatusCanceled, model.LeaveStatusPending)
}

// transition runs a status-guarded update and maps the empty result to
// either not-found or not-pending depending on whether the row exists.
func (r *LeaveRepo) transition(ctx context.Context, query string, id string, args ...any) (*model.LeaveRequest, error) {
	var out model.LeaveRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, append([]any{id}, args...)...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LeaveRequest])
		return err
	})
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update leave request: %w", err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrLeaveNotPending
}
