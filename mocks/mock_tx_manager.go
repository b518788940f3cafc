package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// MockTxManager is a testify mock of storage.TxManager.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Do(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if rf, ok := args.Get(0).(func(context.Context, func(context.Context) error) error); ok {
		return rf(ctx, fn)
	}
	return args.Error(0)
}

// Passthrough makes every Do call run fn directly and return its error.
func (m *MockTxManager) Passthrough() *mock.Call {
	return m.On("Do", mock.Anything, mock.AnythingOfType("func(context.Context) error")).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		Maybe()
}
