package storage

import (
	"context"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// SwitchRequestStore owns the lifecycle of payment switch request records.
// Only the payment switch adapter may use it.
type SwitchRequestStore interface {
	// GetSwitchRequest retrieves a request by its idempotency key, or
	// ErrSwitchRequestNotFound if no request exists for the key.
	GetSwitchRequest(ctx context.Context, idempotencyKey string) (*models.PaymentSwitchRequest, error)

	// CreateSwitchRequest persists a new pending request. Returns
	// ErrDuplicateIdempotencyKey if a request already exists for the key.
	CreateSwitchRequest(ctx context.Context, req *models.PaymentSwitchRequest) error

	// ResolveSwitchRequest moves a pending request to its terminal status.
	// The write is conditioned on the request still being pending, so a
	// duplicate resolution attempt is a no-op conflict, never an overwrite.
	ResolveSwitchRequest(ctx context.Context, idempotencyKey string, status models.SwitchRequestStatus, reasonCode, reason string, resolvedAt time.Time) error

	// ListRejectedRequestsSince retrieves rejected requests created at or
	// after the given instant, for the event sync's attention queries.
	ListRejectedRequestsSince(ctx context.Context, since time.Time) ([]models.PaymentSwitchRequest, error)
}
