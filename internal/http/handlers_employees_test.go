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

// fakeEmployeeRepo is a minimal scripted double for the employee repository port.
type fakeEmployeeRepo struct {
	employees map[string]model.Employee

	createErr error
	listErr   error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]model.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	emp := model.Employee{
		ID:         "emp-1",
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      strings.ToLower(req.Email),
		Department: req.Department,
		Role:       req.Role,
		Status:     model.EmployeeStatusOnboarding,
		HiredAt:    time.Now(),
	}
	f.employees[emp.ID] = emp
	return &emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, data.ErrEmployeeNotFound
	}
	return &emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == strings.ToLower(email) {
			return &emp, nil
		}
	}
	return nil, data.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ model.EmployeesListOptions) ([]model.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, id string, req *model.UpdateEmployeeRequest) (*model.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, data.ErrEmployeeNotFound
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	f.employees[id] = emp
	return &emp, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return data.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func newEmployeeHandlers(repo *fakeEmployeeRepo) *EmployeeHandlers {
	return &EmployeeHandlers{Svc: service.NewEmployeeService(service.EmployeeServiceOptions{Employees: repo})}
}

func TestEmployeeCreate(t *testing.T) {
	h := newEmployeeHandlers(newFakeEmployeeRepo())

	body := `{"first_name":"Ada","last_name":"King","email":"ada.king@example.com","department":"Engineering","role":"employee"}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada.king@example.com"`)
	assert.Contains(t, rec.Body.String(), `"status":"onboarding"`)
}

func TestEmployeeCreateValidationFailure(t *testing.T) {
	h := newEmployeeHandlers(newFakeEmployeeRepo())

	body := `{"first_name":"","last_name":"King","email":"ada@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestEmployeeCreateEmailConflict(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.createErr = data.ErrEmployeeEmailExists
	h := newEmployeeHandlers(repo)

	body := `{"first_name":"Ada","last_name":"King","email":"ada.king@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email_conflict")
}

func TestEmployeeCreateInvalidRole(t *testing.T) {
	h := newEmployeeHandlers(newFakeEmployeeRepo())

	body := `{"first_name":"Ada","last_name":"King","email":"ada@example.com","role":"warlock"}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "role is not in the role catalog")
}

func TestEmployeeGetByIDNotFound(t *testing.T) {
	h := newEmployeeHandlers(newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/employees/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "employee_not_found")
}

func TestEmployeeListWithFilters(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.employees["emp-1"] = model.Employee{ID: "emp-1", FirstName: "Ada", Role: domainauth.RoleEmployee}
	h := newEmployeeHandlers(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/employees?limit=5&status=active&department=Engineering", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":5`)
}

func TestEmployeeListInvalidStatus(t *testing.T) {
	h := newEmployeeHandlers(newFakeEmployeeRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/employees?status=vacationing", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_status")
}

func TestEmployeeUpdateAndDelete(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.employees["emp-1"] = model.Employee{ID: "emp-1", FirstName: "Ada", LastName: "King"}
	h := newEmployeeHandlers(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/employees/emp-1", strings.NewReader(`{"first_name":"Adele"}`))
	req.SetPathValue("id", "emp-1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"first_name":"Adele"`)

	req = httptest.NewRequest(http.MethodDelete, "/api/employees/emp-1", nil)
	req.SetPathValue("id", "emp-1")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.employees)
}
