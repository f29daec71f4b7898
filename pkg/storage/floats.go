package storage

import (
	"context"

	"github.com/cashstream/voucher-settlement/pkg/models"
)

// FloatStore defines the interface for managing agent float records.
// All balance mutations are version-checked so that concurrent redemptions
// against one agent serialize instead of losing updates.
type FloatStore interface {
	// GetAgentFloat retrieves an agent's float record.
	GetAgentFloat(ctx context.Context, agentID string) (*models.AgentFloat, error)

	// CreateAgentFloat creates a new float record for an agent.
	CreateAgentFloat(ctx context.Context, float *models.AgentFloat) (*models.AgentFloat, error)

	// ApplyFloatChange atomically applies a balance delta and status change
	// conditioned on the record's current version. The audit event is written
	// in the same atomic unit. Returns ErrConcurrentUpdate if another writer
	// committed first.
	ApplyFloatChange(ctx context.Context, change *FloatChange, event *models.StatusEvent) error

	// ListAgentsBelowThreshold retrieves agents whose status is not OK,
	// used by the replenishment sweep.
	ListAgentsBelowThreshold(ctx context.Context) ([]models.AgentFloat, error)
}

// FloatChange describes one version-checked balance mutation.
type FloatChange struct {
	AgentID         string
	BalanceDelta    int64
	CashOnHandDelta int64
	NewStatus       models.FloatStatus
	ExpectedVersion int64
}
