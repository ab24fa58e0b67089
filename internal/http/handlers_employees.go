// Package httpx provides HTTP handlers and middleware for the PeopleDesk HR portal.
package httpx

import (
	"errors"
	"net/http"

	"github.com/peopledesk/peopledesk/internal/data"
	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/service"
)

// EmployeeHandlers provides HTTP handlers for the employee directory.
type EmployeeHandlers struct {
	Svc *service.EmployeeService
}

const maxEmployeeListLimit = 200 // Maximum number of employees that can be requested in one call

// Create handles HTTP requests to add an employee.
func (h *EmployeeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEmployeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmployeeEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, employee)
}

// List handles HTTP requests to list employees with pagination and filters.
func (h *EmployeeHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxEmployeeListLimit)
	opts := model.EmployeesListOptions{Limit: limit, Offset: offset}

	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if dep := r.URL.Query().Get("department"); dep != "" {
		opts.Department = &dep
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseEmployeeStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("status is invalid"),
			})
			return
		}
		opts.Status = &status
	}

	employees, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"employees": employees,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetByID handles HTTP requests to get an employee by ID.
func (h *EmployeeHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("employee id is required")},
		)
		return
	}

	employee, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrEmployeeNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "employee_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, employee)
}

// Update handles HTTP requests to partially update an employee.
func (h *EmployeeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("employee id is required")},
		)
		return
	}

	var req model.UpdateEmployeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmployeeNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "employee_not_found", Err: err})
		case errors.Is(err, data.ErrEmployeeEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, employee)
}

// Delete handles HTTP requests to remove an employee.
func (h *EmployeeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("employee id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrEmployeeNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "employee_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
