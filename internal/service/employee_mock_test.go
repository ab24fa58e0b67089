package service

// These tests use the generated repository mocks; run `go generate ./internal/mocks`
// after changing the interfaces in internal/ports.

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/model"
	"github.com/peopledesk/peopledesk/internal/mocks"
)

func TestEmployeeService_Create_PassesRequestThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmployeeRepository(ctrl)
	svc := NewEmployeeService(EmployeeServiceOptions{Employees: repo})

	req := &model.CreateEmployeeRequest{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "grace@example.test",
		Department: "Engineering",
		Role:       domainauth.RoleEmployee,
	}
	repo.EXPECT().
		Create(gomock.Any(), req).
		Return(&model.Employee{ID: "emp-1", Email: req.Email}, nil)

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", created.ID)
}

func TestEmployeeService_Create_InvalidSkipsRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmployeeRepository(ctrl)
	svc := NewEmployeeService(EmployeeServiceOptions{Employees: repo})

	// No EXPECT: validation failures never reach the repository.
	_, err := svc.Create(context.Background(), &model.CreateEmployeeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first name is required")
}

func TestEmployeeService_Delete_PropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmployeeRepository(ctrl)
	svc := NewEmployeeService(EmployeeServiceOptions{Employees: repo})

	repoErr := errors.New("boom")
	repo.EXPECT().Delete(gomock.Any(), "emp-1").Return(repoErr)

	assert.ErrorIs(t, svc.Delete(context.Background(), "emp-1"), repoErr)
}
