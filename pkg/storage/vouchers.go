package storage

import (
	"context"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// VoucherReader defines the interface for reading voucher data.
type VoucherReader interface {
	// GetVoucher retrieves a voucher by its ID.
	GetVoucher(ctx context.Context, voucherID string) (*models.Voucher, error)

	// ListExpiryCandidates retrieves vouchers in a still-live status whose
	// expires_at is at or before the given instant.
	ListExpiryCandidates(ctx context.Context, now time.Time) ([]models.Voucher, error)

	// ListVouchersExpiringBefore retrieves live vouchers expiring before the
	// given instant, used by the attention queries of the event sync.
	ListVouchersExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.Voucher, error)
}

// VoucherWriter defines the privileged mutation interface. Only the voucher
// state machine may drive these operations.
type VoucherWriter interface {
	// CreateVoucher atomically persists a new voucher together with its
	// initial status event.
	CreateVoucher(ctx context.Context, voucher *models.Voucher, event *models.StatusEvent) error

	// TransitionVoucher atomically applies a status transition conditioned on
	// the voucher's current status, and appends the status event in the same
	// unit. The update map carries additional attributes to set alongside the
	// status (redeemed_at, expires_at, reissue_count).
	//
	// A conditional failure caused by the voucher already carrying the target
	// status is reported as ErrAlreadyInTargetState; any other conditional
	// failure as ErrConcurrentUpdate.
	TransitionVoucher(ctx context.Context, update *VoucherTransitionUpdate, event *models.StatusEvent) error
}

// VoucherTransitionUpdate describes one conditional status move.
type VoucherTransitionUpdate struct {
	VoucherID    string
	FromStatus   models.VoucherStatus
	ToStatus     models.VoucherStatus
	RedeemedAt   *time.Time
	ExpiresAt    *time.Time
	ReissueCount *int
}

// VoucherStore combines the reader and writer interfaces.
type VoucherStore interface {
	VoucherReader
	VoucherWriter
}
