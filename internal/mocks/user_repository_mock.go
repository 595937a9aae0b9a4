package mocks

import (
	"context"
	"time"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// CreateUser provides a mock function with given fields: ctx, querier, user
func (_m *MockUserRepository) CreateUser(ctx context.Context, querier interfaces.DBTX, user *models.User) error {
	ret := _m.Called(ctx, querier, user)

	if rf, ok := ret.Get(0).(func(context.Context, interfaces.DBTX, *models.User) error); ok {
		return rf(ctx, querier, user)
	}
	return ret.Error(0)
}

// GetUserByUsername provides a mock function with given fields: ctx, querier, username
func (_m *MockUserRepository) GetUserByUsername(ctx context.Context, querier interfaces.DBTX, username string) (*models.User, error) {
	ret := _m.Called(ctx, querier, username)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

// GetUserByID provides a mock function with given fields: ctx, querier, id
func (_m *MockUserRepository) GetUserByID(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, querier, id)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

// TouchLastLogin provides a mock function with given fields: ctx, querier, id, at
func (_m *MockUserRepository) TouchLastLogin(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, querier, id, at)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)
