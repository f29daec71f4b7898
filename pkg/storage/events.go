package storage

import (
	"context"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// EventReader defines the interface for reading the append-only status
// event log. Events are never updated or deleted.
type EventReader interface {
	// ListEventsByEntity retrieves all events for one entity in timestamp order.
	ListEventsByEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]models.StatusEvent, error)

	// LatestEventForEntity retrieves the most recent event for one entity,
	// or nil if the entity has no events.
	LatestEventForEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.StatusEvent, error)

	// ListEventsSince retrieves events across all entities with a timestamp
	// at or after the given instant, oldest first.
	ListEventsSince(ctx context.Context, since time.Time, limit int32) ([]models.StatusEvent, error)
}

// EventAppender appends audit events outside a voucher transition, e.g. the
// liquidity guard's administrative operations.
type EventAppender interface {
	// AppendEvent writes one status event. The event log is append-only.
	AppendEvent(ctx context.Context, event *models.StatusEvent) error
}

// EventStore combines reading and appending.
type EventStore interface {
	EventReader
	EventAppender
}
