package storage

import (
	"context"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// SnapshotStore owns TrustAccountSnapshot writes. Re-running reconciliation
// for an already-reconciled date writes a higher revision; earlier revisions
// are retained for audit.
type SnapshotStore interface {
	// PutSnapshot persists one reconciliation result under the next free
	// revision for its date.
	PutSnapshot(ctx context.Context, snapshot *models.TrustAccountSnapshot) error

	// GetLatestSnapshot retrieves the highest-revision snapshot for a date,
	// or nil if the date has never been reconciled.
	GetLatestSnapshot(ctx context.Context, date string) (*models.TrustAccountSnapshot, error)
}

// LiabilityReader computes the e-money liability total as a single
// consistent read, so the sum is not skewed by concurrent redemptions.
type LiabilityReader interface {
	// SumOutstandingLiability returns the total of outstanding voucher value
	// plus all wallet balances.
	SumOutstandingLiability(ctx context.Context) (int64, error)
}
