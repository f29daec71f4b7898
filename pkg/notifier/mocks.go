package notifier

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPublisher is a testify mock of the Publisher interface.
type MockPublisher struct {
	mock.Mock
}

// PublishAlert provides a mock publish call.
func (m *MockPublisher) PublishAlert(ctx context.Context, alert Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}
