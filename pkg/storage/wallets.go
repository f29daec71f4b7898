package storage

import (
	"context"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// WalletStore defines the interface for managing beneficiary wallets.
type WalletStore interface {
	// GetWallet retrieves a wallet by its ID.
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// CreditWallet adds to a wallet balance under a version check.
	CreditWallet(ctx context.Context, walletID string, amount int64, expectedVersion int64) error

	// ListWallets retrieves all wallets.
	ListWallets(ctx context.Context) ([]models.Wallet, error)
}
