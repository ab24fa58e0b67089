// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/peopledesk/peopledesk/internal/ports (interfaces: LeaveRepository)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=leave_repository_mock.go github.com/peopledesk/peopledesk/internal/ports LeaveRepository
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	model "github.com/peopledesk/peopledesk/internal/domain/model"
	gomock "go.uber.org/mock/gomock"
)

// MockLeaveRepository is a mock of LeaveRepository interface.
type MockLeaveRepository struct {
	ctrl     *gomock.Controller
	recorder *MockLeaveRepositoryMockRecorder
	isgomock struct{}
}

// MockLeaveRepositoryMockRecorder is the mock recorder for MockLeaveRepository.
type MockLeaveRepositoryMockRecorder struct {
	mock *MockLeaveRepository
}

// NewMockLeaveRepository creates a new mock instance.
func NewMockLeaveRepository(ctrl *gomock.Controller) *MockLeaveRepository {
	mock := &MockLeaveRepository{ctrl: ctrl}
	mock.recorder = &MockLeaveRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLeaveRepository) EXPECT() *MockLeaveRepositoryMockRecorder {
	return m.recorder
}

// Cancel mocks base method.
func (m *MockLeaveRepository) Cancel(ctx context.Context, id, employeeID string) (*model.LeaveRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, id, employeeID)
	ret0, _ := ret[0].(*model.LeaveRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Cancel indicates an expected call of Cancel.
func (mr *MockLeaveRepositoryMockRecorder) Cancel(ctx, id, employeeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockLeaveRepository)(nil).Cancel), ctx, id, employeeID)
}

// Create mocks base method.
func (m *MockLeaveRepository) Create(ctx context.Context, req *model.CreateLeaveRequest) (*model.LeaveRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, req)
	ret0, _ := ret[0].(*model.LeaveRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockLeaveRepositoryMockRecorder) Create(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockLeaveRepository)(nil).Create), ctx, req)
}

// Decide mocks base method.
func (m *MockLeaveRepository) Decide(ctx context.Context, id string, req *model.DecideLeaveRequest) (*model.LeaveRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Decide", ctx, id, req)
	ret0, _ := ret[0].(*model.LeaveRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Decide indicates an expected call of Decide.
func (mr *MockLeaveRepositoryMockRecorder) Decide(ctx, id, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Decide", reflect.TypeOf((*MockLeaveRepository)(nil).Decide), ctx, id, req)
}

// GetByID mocks base method.
func (m *MockLeaveRepository) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*model.LeaveRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockLeaveRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockLeaveRepository)(nil).GetByID), ctx, id)
}

// List mocks base method.
func (m *MockLeaveRepository) List(ctx context.Context, opts model.LeavesListOptions) ([]model.LeaveRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, opts)
	ret0, _ := ret[0].([]model.LeaveRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockLeaveRepositoryMockRecorder) List(ctx, opts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockLeaveRepository)(nil).List), ctx, opts)
}
