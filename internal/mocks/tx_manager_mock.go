package mocks

import (
	"context"

	"invite-auth/shared/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock type for the TxManager type
type MockTxManager struct {
	mock.Mock
}

// WithTransaction provides a mock function with given fields: ctx, fn
func (_m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context, interfaces.DBTX) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// RunWith returns a WithTransaction implementation that hands tx to fn.
func RunWith(tx interfaces.DBTX) func(context.Context, func(context.Context, interfaces.DBTX) error) error {
	return func(ctx context.Context, fn func(context.Context, interfaces.DBTX) error) error {
		return fn(ctx, tx)
	}
}

// NewMockTxManager creates a new instance of MockTxManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTxManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTxManager {
	m := &MockTxManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.TxManager = (*MockTxManager)(nil)

// StubQuerier stands in for a pool or transaction when repositories are mocked.
// The name tells instances apart in mock expectations.
type StubQuerier struct {
	interfaces.DBTX
	Name string
}
