package storage

import (
	"context"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// NotificationStore projects events into rows for the external notification
// collaborator. Upserts are keyed by (source_type, source_id) so repeated
// sync runs never duplicate a notification.
type NotificationStore interface {
	// UpsertNotification inserts or refreshes a notification row. Returns
	// true when the row was newly created, false when it already existed.
	UpsertNotification(ctx context.Context, n *models.Notification) (bool, error)
}
