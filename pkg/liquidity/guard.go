package liquidity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/google/uuid"
)

// ErrApprovalRequired is returned when a withdrawal above the dual-control
// threshold lacks an approver distinct from the requester.
var ErrApprovalRequired = errors.New("withdrawal requires a distinct approver")

// casRetries bounds how often a balance mutation re-reads after losing a
// version race before giving up.
const casRetries = 3

// Guard prevents agents from disbursing beyond available float and surfaces
// proactive alerts. It is the only component that mutates AgentFloat rows.
type Guard struct {
	Store                storage.FloatStore
	Alerts               notifier.Publisher
	CriticalFloor        int64
	DualControlThreshold int64
}

// NewGuard creates a new Guard.
func NewGuard(store storage.FloatStore, alerts notifier.Publisher, criticalFloor, dualControlThreshold int64) *Guard {
	return &Guard{
		Store:                store,
		Alerts:               alerts,
		CriticalFloor:        criticalFloor,
		DualControlThreshold: dualControlThreshold,
	}
}

// LiquidityCheck is the outcome of a pre-check or debit.
type LiquidityCheck struct {
	Sufficient bool
	Available  int64
	Status     models.FloatStatus
}

// CheckLiquidity reports whether the agent could cover amount right now.
// Purely advisory: the authoritative check happens inside CheckAndDebit.
func (g *Guard) CheckLiquidity(ctx context.Context, agentID string, amount int64) (*LiquidityCheck, error) {
	float, err := g.Store.GetAgentFloat(ctx, agentID)
	if err != nil {
		return nil, err
	}
	available := availableFor(float)
	return &LiquidityCheck{Sufficient: amount <= available, Available: available, Status: float.Status}, nil
}

// CheckAndDebit atomically verifies liquidity and debits the float. The
// check and the debit share one version-checked write, so two concurrent
// redemptions cannot both pass against a balance neither has debited: the
// loser re-reads and re-decides, and fails with ErrInsufficientLiquidity
// once the fresh balance no longer covers the amount.
func (g *Guard) CheckAndDebit(ctx context.Context, agentID string, amount int64) (*LiquidityCheck, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		float, err := g.Store.GetAgentFloat(ctx, agentID)
		if err != nil {
			return nil, err
		}

		available := availableFor(float)
		if amount > available {
			return &LiquidityCheck{Sufficient: false, Available: available, Status: float.Status}, storage.ErrInsufficientLiquidity
		}

		newBalance := float.Balance - amount
		newStatus := g.classify(float, newBalance)
		change := &storage.FloatChange{
			AgentID:         agentID,
			BalanceDelta:    -amount,
			NewStatus:       newStatus,
			ExpectedVersion: float.Version,
		}
		event := floatEvent(agentID, float.Status, newStatus, "redemption", map[string]string{
			"balance_before": fmt.Sprintf("%d", float.Balance),
			"balance_after":  fmt.Sprintf("%d", newBalance),
			"amount":         fmt.Sprintf("%d", -amount),
		})

		err = g.Store.ApplyFloatChange(ctx, change, event)
		if errors.Is(err, storage.ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return nil, err
		}

		g.alertOnCrossing(ctx, agentID, float.Status, newStatus, newBalance)
		return &LiquidityCheck{Sufficient: true, Available: available - amount, Status: newStatus}, nil
	}

	return nil, storage.ErrConcurrentUpdate
}

// Credit returns value to an agent's float, e.g. as compensation when a
// settlement is rejected after the debit.
func (g *Guard) Credit(ctx context.Context, agentID string, amount int64, reason string) error {
	return g.adjust(ctx, agentID, amount, 0, reason, "")
}

// TopUp is the administrative float replenishment operation.
func (g *Guard) TopUp(ctx context.Context, agentID string, amount int64, requester string) error {
	return g.adjust(ctx, agentID, amount, 0, "topup:"+requester, "")
}

// Withdraw removes float administratively. Withdrawals above the
// dual-control threshold require an approver distinct from the requester.
func (g *Guard) Withdraw(ctx context.Context, agentID string, amount int64, requester, approver string) error {
	if amount > g.DualControlThreshold && (approver == "" || approver == requester) {
		return ErrApprovalRequired
	}
	return g.adjust(ctx, agentID, -amount, 0, "withdraw:"+requester, approver)
}

func (g *Guard) adjust(ctx context.Context, agentID string, delta, cashDelta int64, actor, approver string) error {
	for attempt := 0; attempt < casRetries; attempt++ {
		float, err := g.Store.GetAgentFloat(ctx, agentID)
		if err != nil {
			return err
		}

		newBalance := float.Balance + delta
		if newBalance < -float.ApprovedOverdraft() {
			return storage.ErrInsufficientLiquidity
		}
		newStatus := g.classify(float, newBalance)

		metadata := map[string]string{
			"balance_before": fmt.Sprintf("%d", float.Balance),
			"balance_after":  fmt.Sprintf("%d", newBalance),
			"amount":         fmt.Sprintf("%d", delta),
		}
		if approver != "" {
			metadata["approved_by"] = approver
		}

		change := &storage.FloatChange{
			AgentID:         agentID,
			BalanceDelta:    delta,
			CashOnHandDelta: cashDelta,
			NewStatus:       newStatus,
			ExpectedVersion: float.Version,
		}

		err = g.Store.ApplyFloatChange(ctx, change, floatEvent(agentID, float.Status, newStatus, actor, metadata))
		if errors.Is(err, storage.ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return err
		}

		g.alertOnCrossing(ctx, agentID, float.Status, newStatus, newBalance)
		return nil
	}

	return storage.ErrConcurrentUpdate
}

// classify maps a balance to its liquidity band.
func (g *Guard) classify(float *models.AgentFloat, balance int64) models.FloatStatus {
	switch {
	case balance < 0:
		return models.FloatOverdraft
	case balance <= g.CriticalFloor:
		return models.FloatCritical
	case balance < float.MinimumThreshold:
		return models.FloatLow
	default:
		return models.FloatOK
	}
}

// bandRank orders bands from healthy to degraded for edge detection.
var bandRank = map[models.FloatStatus]int{
	models.FloatOK:        0,
	models.FloatLow:       1,
	models.FloatCritical:  2,
	models.FloatOverdraft: 3,
}

// alertOnCrossing enqueues an alert only on a transition into a worse band.
// Staying inside a degraded band stays silent, which avoids alert storms.
func (g *Guard) alertOnCrossing(ctx context.Context, agentID string, from, to models.FloatStatus, balance int64) {
	if bandRank[to] <= bandRank[from] {
		return
	}

	kind := notifier.AlertFloatLow
	switch to {
	case models.FloatCritical:
		kind = notifier.AlertFloatCritical
	case models.FloatOverdraft:
		kind = notifier.AlertFloatOverdraft
	}

	alert := notifier.Alert{
		Kind:    kind,
		Subject: fmt.Sprintf("Agent %s float is %s", agentID, to),
		Body:    fmt.Sprintf("Float balance for agent %s dropped to %d (%s).", agentID, balance, to),
		Metadata: map[string]string{
			"agent_id": agentID,
			"balance":  fmt.Sprintf("%d", balance),
		},
		CreatedAt: time.Now(),
	}
	if err := g.Alerts.PublishAlert(ctx, alert); err != nil {
		// Alerting is best-effort; the balance change already committed.
		slog.Log(ctx, slog.LevelError, "failed to publish float alert", "agent_id", agentID, "error", err)
	}
}

// availableFor computes disbursable value: balance plus approved overdraft
// headroom. The minimum threshold marks the LOW band boundary and drives
// alerting; it does not block a debit.
func availableFor(float *models.AgentFloat) int64 {
	return float.Balance + float.ApprovedOverdraft()
}

func floatEvent(agentID string, from, to models.FloatStatus, actor string, metadata map[string]string) *models.StatusEvent {
	return &models.StatusEvent{
		Id:          uuid.New().String(),
		EntityType:  models.EntityAgentFloat,
		EntityId:    agentID,
		EntityKey:   fmt.Sprintf("%s#%s", models.EntityAgentFloat, agentID),
		FromStatus:  string(from),
		ToStatus:    string(to),
		TriggeredBy: actor,
		Metadata:    metadata,
		Timestamp:   time.Now(),
		GSI1PK:      models.EventLogPartition,
	}
}
