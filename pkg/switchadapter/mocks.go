package switchadapter

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSwitchClient is a testify mock of the SwitchClient interface.
type MockSwitchClient struct {
	mock.Mock
}

// Settle provides a mock settlement call.
func (m *MockSwitchClient) Settle(ctx context.Context, req WireRequest) (*WireResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WireResponse), args.Error(1)
}

// Ping provides a mock health probe.
func (m *MockSwitchClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
