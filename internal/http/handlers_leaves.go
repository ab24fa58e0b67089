package httpx

import (
	"errors"
	"net/http"

	"github.com/peopledesk/peopledesk/internal/data"
	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/service"
)

// LeaveHandlers provides HTTP handlers for the leave request lifecycle.
type LeaveHandlers struct {
	Svc *service.LeaveService
}

const maxLeaveListLimit = 200

// Create handles HTTP requests to open a leave request.
func (h *LeaveHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLeaveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	leave, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmployeeNotFound), errors.Is(err, data.ErrLeaveEmployeeMissing):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "employee_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, leave)
}

// List handles HTTP requests to list leave requests with pagination and filters.
func (h *LeaveHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxLeaveListLimit)
	opts := model.LeavesListOptions{Limit: limit, Offset: offset}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		opts.EmployeeID = &employeeID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.LeaveStatus(raw)
		if !status.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("status is invalid"),
			})
			return
		}
		opts.Status = &status
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		leaveType := model.LeaveType(raw)
		if !leaveType.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_type",
				Err:     errors.New("leave type is invalid"),
			})
			return
		}
		opts.Type = &leaveType
	}

	leaves, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"leaves": leaves,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to get a leave request by ID.
func (h *LeaveHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("leave id is required")},
		)
		return
	}

	leave, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrLeaveNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "leave_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, leave)
}

// Approve handles HTTP requests to approve a pending leave request.
// The decider is taken from the authenticated session.
func (h *LeaveHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject handles HTTP requests to reject a pending leave request.
func (h *LeaveHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *LeaveHandlers) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("leave id is required")},
		)
		return
	}

	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	leave, err := h.Svc.Decide(r.Context(), id, &model.DecideLeaveRequest{
		Approve:   approve,
		DecidedBy: session.UserID,
	})
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, leave)
}

// Cancel handles HTTP requests to withdraw a pending leave request on
// behalf of its owning employee.
func (h *LeaveHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("leave id is required")},
		)
		return
	}

	var req struct {
		EmployeeID string `json:"employee_id"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("employee ID is required"),
		})
		return
	}

	leave, err := h.Svc.Cancel(r.Context(), id, req.EmployeeID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandlers) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrLeaveNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "leave_not_found", Err: err})
	case errors.Is(err, data.ErrLeaveNotPending):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "leave_not_pending", Err: err})
	case isValidationError(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
	}
}
