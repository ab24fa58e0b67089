package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/data"
	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/service"
)

// fakeLeaveRepo is a minimal scripted double for the leave repository port.
type fakeLeaveRepo struct {
	leaves map[string]model.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]model.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, req *model.CreateLeaveRequest) (*model.LeaveRequest, error) {
	leave := model.LeaveRequest{
		ID:         "leave-1",
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Status:     model.LeaveStatusPending,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	}
	f.leaves[leave.ID] = leave
	return &leave, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	leave, ok := f.leaves[id]
	if !ok {
		return nil, data.ErrLeaveNotFound
	}
	return &leave, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ model.LeavesListOptions) ([]model.LeaveRequest, error) {
	out := make([]model.LeaveRequest, 0, len(f.leaves))
	for _, leave := range f.leaves {
		out = append(out, leave)
	}
	return out, nil
}

func (f *fakeLeaveRepo) Decide(_ context.Context, id string, req *model.DecideLeaveRequest) (*model.LeaveRequest, error) {
	leave, ok := f.leaves[id]
	if !ok {
		return nil, data.ErrLeaveNotFound
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, data.ErrLeaveNotPending
	}
	if req.Approve {
		leave.Status = model.LeaveStatusApproved
	} else {
		leave.Status = model.LeaveStatusRejected
	}
	leave.DecidedBy = &req.DecidedBy
	f.leaves[id] = leave
	return &leave, nil
}

func (f *fakeLeaveRepo) Cancel(_ context.Context, id string, employeeID string) (*model.LeaveRequest, error) {
	leave, ok := f.leaves[id]
	if !ok || leave.EmployeeID != employeeID {
		return nil, data.ErrLeaveNotFound
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, data.ErrLeaveNotPending
	}
	leave.Status = model.LeaveStatusCanceled
	f.leaves[id] = leave
	return &leave, nil
}

func newLeaveHandlers(leaves *fakeLeaveRepo, employees *fakeEmployeeRepo) *LeaveHandlers {
	return &LeaveHandlers{Svc: service.NewLeaveService(service.LeaveServiceOptions{
		Leaves:    leaves,
		Employees: employees,
	})}
}

func pendingLeave(id, employeeID string) model.LeaveRequest {
	return model.LeaveRequest{
		ID:         id,
		EmployeeID: employeeID,
		Type:       model.LeaveTypeAnnual,
		Status:     model.LeaveStatusPending,
		StartDate:  time.Now().AddDate(0, 0, 7),
		EndDate:    time.Now().AddDate(0, 0, 12),
	}
}

func withSession(req *http.Request, userID string) *http.Request {
	ctx := SetSessionInContext(req.Context(), &domainauth.Session{
		ID:     "sess-1",
		UserID: userID,
		Role:   domainauth.RoleManager,
	})
	return req.WithContext(ctx)
}

func TestLeaveCreate(t *testing.T) {
	employees := newFakeEmployeeRepo()
	employees.employees["emp-1"] = model.Employee{ID: "emp-1"}
	h := newLeaveHandlers(newFakeLeaveRepo(), employees)

	body := `{"employee_id":"emp-1","type":"annual","start_date":"2026-09-07T00:00:00Z","end_date":"2026-09-11T00:00:00Z","reason":"vacation"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leaves", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestLeaveCreateUnknownEmployee(t *testing.T) {
	h := newLeaveHandlers(newFakeLeaveRepo(), newFakeEmployeeRepo())

	body := `{"employee_id":"ghost","type":"annual","start_date":"2026-09-07T00:00:00Z","end_date":"2026-09-11T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leaves", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "employee_not_found")
}

func TestLeaveCreateInvalidDates(t *testing.T) {
	employees := newFakeEmployeeRepo()
	employees.employees["emp-1"] = model.Employee{ID: "emp-1"}
	h := newLeaveHandlers(newFakeLeaveRepo(), employees)

	body := `{"employee_id":"emp-1","type":"annual","start_date":"2026-09-11T00:00:00Z","end_date":"2026-09-07T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leaves", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestLeaveApprove(t *testing.T) {
	leaves := newFakeLeaveRepo()
	leaves.leaves["leave-1"] = pendingLeave("leave-1", "emp-1")
	h := newLeaveHandlers(leaves, newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/leaves/leave-1/approve", nil)
	req.SetPathValue("id", "leave-1")
	req = withSession(req, "manager-1")
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"approved"`)
	assert.Contains(t, rec.Body.String(), `"decided_by":"manager-1"`)
}

func TestLeaveApproveRequiresSession(t *testing.T) {
	leaves := newFakeLeaveRepo()
	leaves.leaves["leave-1"] = pendingLeave("leave-1", "emp-1")
	h := newLeaveHandlers(leaves, newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/leaves/leave-1/approve", nil)
	req.SetPathValue("id", "leave-1")
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLeaveRejectAlreadyDecided(t *testing.T) {
	leaves := newFakeLeaveRepo()
	leave := pendingLeave("leave-1", "emp-1")
	leave.Status = model.LeaveStatusApproved
	leaves.leaves["leave-1"] = leave
	h := newLeaveHandlers(leaves, newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/leaves/leave-1/reject", nil)
	req.SetPathValue("id", "leave-1")
	req = withSession(req, "manager-1")
	rec := httptest.NewRecorder()
	h.Reject(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "leave_not_pending")
}

func TestLeaveCancel(t *testing.T) {
	leaves := newFakeLeaveRepo()
	leaves.leaves["leave-1"] = pendingLeave("leave-1", "emp-1")
	h := newLeaveHandlers(leaves, newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/leaves/leave-1/cancel", strings.NewReader(`{"employee_id":"emp-1"}`))
	req.SetPathValue("id", "leave-1")
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"canceled"`)
}

func TestLeaveListInvalidType(t *testing.T) {
	h := newLeaveHandlers(newFakeLeaveRepo(), newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/leaves?type=holiday", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_type")
}
