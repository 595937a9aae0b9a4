package mocks

import (
	"context"
	"time"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/stretchr/testify/mock"
)

// MockInviteCodeRepository is a mock type for the InviteCodeRepository type
type MockInviteCodeRepository struct {
	mock.Mock
}

// GetByCode provides a mock function with given fields: ctx, querier, code
func (_m *MockInviteCodeRepository) GetByCode(ctx context.Context, querier interfaces.DBTX, code string) (*models.InviteCode, error) {
	ret := _m.Called(ctx, querier, code)

	var r0 *models.InviteCode
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.InviteCode)
	}
	return r0, ret.Error(1)
}

// Consume provides a mock function with given fields: ctx, querier, code, now
func (_m *MockInviteCodeRepository) Consume(ctx context.Context, querier interfaces.DBTX, code string, now time.Time) (*models.InviteCode, error) {
	ret := _m.Called(ctx, querier, code, now)

	var r0 *models.InviteCode
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.InviteCode)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, querier, invite
func (_m *MockInviteCodeRepository) Create(ctx context.Context, querier interfaces.DBTX, invite *models.InviteCode) error {
	ret := _m.Called(ctx, querier, invite)

	if rf, ok := ret.Get(0).(func(context.Context, interfaces.DBTX, *models.InviteCode) error); ok {
		return rf(ctx, querier, invite)
	}
	return ret.Error(0)
}

// NewMockInviteCodeRepository creates a new instance of MockInviteCodeRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockInviteCodeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInviteCodeRepository {
	m := &MockInviteCodeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.InviteCodeRepository = (*MockInviteCodeRepository)(nil)
