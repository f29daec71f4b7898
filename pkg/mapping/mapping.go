package mapping

import (
	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
)

// ToApiVoucher converts a domain Voucher model to an API Voucher model.
func ToApiVoucher(v *models.Voucher) *api.Voucher {
	return &api.Voucher{
		Id:            v.Id,
		BeneficiaryId: v.BeneficiaryId,
		Amount:        v.Amount,
		GrantType:     v.GrantType,
		Status:        string(v.Status),
		IssuedAt:      v.IssuedAt,
		ExpiresAt:     v.ExpiresAt,
		RedeemedAt:    v.RedeemedAt,
		ReissueCount:  v.ReissueCount,
	}
}

// ToApiStatusEvent converts a domain StatusEvent to its API model.
func ToApiStatusEvent(e *models.StatusEvent) *api.StatusEvent {
	return &api.StatusEvent{
		Id:          e.Id,
		EntityType:  string(e.EntityType),
		EntityId:    e.EntityId,
		FromStatus:  e.FromStatus,
		ToStatus:    e.ToStatus,
		TriggeredBy: e.TriggeredBy,
		Metadata:    e.Metadata,
		Timestamp:   e.Timestamp,
	}
}

// ToApiAgentFloat converts a domain AgentFloat to its API model.
func ToApiAgentFloat(f *models.AgentFloat) *api.AgentFloat {
	return &api.AgentFloat{
		AgentId:          f.AgentId,
		Balance:          f.Balance,
		CashOnHand:       f.CashOnHand,
		MinimumThreshold: f.MinimumThreshold,
		Status:           string(f.Status),
		LastUpdated:      f.LastUpdated,
	}
}

// ToApiSettlementResult converts an adapter result to its API model.
func ToApiSettlementResult(key string, r *switchadapter.SettlementResult) *api.SettlementResult {
	return &api.SettlementResult{
		IdempotencyKey: key,
		Status:         string(r.Status),
		ReasonCode:     r.ReasonCode,
		Reason:         r.Reason,
		Replayed:       r.Replayed,
	}
}

// ToApiSnapshot converts a domain TrustAccountSnapshot to its API model.
func ToApiSnapshot(s *models.TrustAccountSnapshot) *api.Snapshot {
	return &api.Snapshot{
		ReconciliationDate: s.ReconciliationDate,
		Revision:           s.Revision,
		TrustBalance:       s.TrustBalance,
		LiabilityTotal:     s.LiabilityTotal,
		Discrepancy:        s.Discrepancy,
		Status:             string(s.Status),
		Detail:             s.Detail,
		GeneratedAt:        s.GeneratedAt,
	}
}
