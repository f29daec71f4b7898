// Package api defines the wire-level request and response types for the
// HTTP surface. Each operation has an explicit typed shape; errors map to a
// closed taxonomy rather than free-form strings.
package api

import "time"

// NewVoucher is the request body for issuing a voucher.
type NewVoucher struct {
	BeneficiaryId string    `json:"beneficiary_id"`
	Amount        int64     `json:"amount"`
	GrantType     string    `json:"grant_type"`
	ExpiresAt     time.Time `json:"expires_at"`
	Actor         string    `json:"actor"`
}

// Voucher is the API representation of a voucher.
type Voucher struct {
	Id            string     `json:"id"`
	BeneficiaryId string     `json:"beneficiary_id"`
	Amount        int64      `json:"amount"`
	GrantType     string     `json:"grant_type"`
	Status        string     `json:"status"`
	IssuedAt      time.Time  `json:"issued_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
	ReissueCount  int        `json:"reissue_count"`
}

// StatusEvent is the API representation of one event-log record.
type StatusEvent struct {
	Id          string            `json:"id"`
	EntityType  string            `json:"entity_type"`
	EntityId    string            `json:"entity_id"`
	FromStatus  string            `json:"from_status"`
	ToStatus    string            `json:"to_status"`
	TriggeredBy string            `json:"triggered_by"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// RedeemVoucher is the request body for an agent cash-out. WalletId, when
// set, credits the beneficiary's e-money wallet instead of paying out cash.
type RedeemVoucher struct {
	AgentId        string `json:"agent_id"`
	IdempotencyKey string `json:"idempotency_key"`
	DebtorId       string `json:"debtor_participant"`
	CreditorId     string `json:"creditor_participant"`
	WalletId       string `json:"wallet_id,omitempty"`
	Actor          string `json:"actor"`
}

// RedeemOutcome is the response for a cash-out attempt.
type RedeemOutcome struct {
	Voucher    *Voucher          `json:"voucher,omitempty"`
	Settlement *SettlementResult `json:"settlement,omitempty"`
}

// ReissueVoucher is the request body for reissuing an expired voucher.
type ReissueVoucher struct {
	Actor string `json:"actor"`
}

// AgentFloat is the API representation of an agent's float record.
type AgentFloat struct {
	AgentId          string    `json:"agent_id"`
	Balance          int64     `json:"balance"`
	CashOnHand       int64     `json:"cash_on_hand"`
	MinimumThreshold int64     `json:"minimum_threshold"`
	Status           string    `json:"status"`
	LastUpdated      time.Time `json:"last_updated"`
}

// FloatAdjustment is the request body for top-ups and withdrawals.
type FloatAdjustment struct {
	Amount    int64  `json:"amount"`
	Requester string `json:"requester"`
	Approver  string `json:"approver,omitempty"`
}

// NewSettlement is the request body for a direct switch settlement.
type NewSettlement struct {
	IdempotencyKey string `json:"idempotency_key"`
	DebtorId       string `json:"debtor_participant"`
	CreditorId     string `json:"creditor_participant"`
	Amount         int64  `json:"amount"`
}

// SettlementResult is the API representation of a settlement outcome.
type SettlementResult struct {
	IdempotencyKey string `json:"idempotency_key"`
	Status         string `json:"status"`
	ReasonCode     string `json:"reason_code,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Replayed       bool   `json:"replayed"`
}

// ReconciliationRun is the request body for an on-demand reconciliation.
type ReconciliationRun struct {
	Date string `json:"date"` // YYYY-MM-DD; defaults to today when empty.
}

// Snapshot is the API representation of a reconciliation snapshot.
type Snapshot struct {
	ReconciliationDate string    `json:"reconciliation_date"`
	Revision           int64     `json:"revision"`
	TrustBalance       int64     `json:"trust_balance"`
	LiabilityTotal     int64     `json:"liability_total"`
	Discrepancy        int64     `json:"discrepancy"`
	Status             string    `json:"status"`
	Detail             string    `json:"detail,omitempty"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Health is the response for the health endpoint.
type Health struct {
	SwitchHealthy   bool   `json:"switch_healthy"`
	SwitchRoundTrip string `json:"switch_round_trip"`
}
