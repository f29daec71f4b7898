package liquidity

import (
	"context"
	"fmt"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
)

// ReplenishmentSweep scans agents sitting below their minimum threshold and
// enqueues a replenishment request per agent. Invoked by the scheduler
// collaborator; the notification store's upsert keying makes repeated runs
// safe downstream.
func (g *Guard) ReplenishmentSweep(ctx context.Context) (int, error) {
	agents, err := g.Store.ListAgentsBelowThreshold(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list agents for replenishment sweep: %w", err)
	}

	requested := 0
	for _, f := range agents {
		if f.Status == models.FloatOK {
			continue
		}
		shortfall := f.MinimumThreshold - f.Balance
		alert := notifier.Alert{
			Kind:    notifier.AlertFloatReplenishment,
			Subject: fmt.Sprintf("Agent %s needs float replenishment", f.AgentId),
			Body:    fmt.Sprintf("Agent %s is %s with balance %d; shortfall to threshold is %d.", f.AgentId, f.Status, f.Balance, shortfall),
			Metadata: map[string]string{
				"agent_id":  f.AgentId,
				"balance":   fmt.Sprintf("%d", f.Balance),
				"shortfall": fmt.Sprintf("%d", shortfall),
			},
			CreatedAt: time.Now(),
		}
		if err := g.Alerts.PublishAlert(ctx, alert); err != nil {
			return requested, fmt.Errorf("failed to publish replenishment request for agent %s: %w", f.AgentId, err)
		}
		requested++
	}

	return requested, nil
}
