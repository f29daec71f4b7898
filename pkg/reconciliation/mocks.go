package reconciliation

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBankClient is a testify mock of the BankClient interface.
type MockBankClient struct {
	mock.Mock
}

// GetTrustAccountBalance provides a mock balance fetch.
func (m *MockBankClient) GetTrustAccountBalance(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}
