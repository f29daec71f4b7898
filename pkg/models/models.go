package models

import (
	"time"
)

// VoucherStatus defines the possible lifecycle states of a voucher.
type VoucherStatus string

const (
	ISSUED    VoucherStatus = "ISSUED"
	AVAILABLE VoucherStatus = "AVAILABLE"
	REDEEMED  VoucherStatus = "REDEEMED"
	EXPIRED   VoucherStatus = "EXPIRED"
	REISSUED  VoucherStatus = "REISSUED"
)

// VoucherEvent identifies a lifecycle trigger requested against a voucher.
type VoucherEvent string

const (
	EventActivate VoucherEvent = "ACTIVATE"
	EventRedeem   VoucherEvent = "REDEEM"
	EventExpire   VoucherEvent = "EXPIRE"
	EventReissue  VoucherEvent = "REISSUE"
)

// Voucher represents the internal domain model for a G2P cash voucher.
// Amounts are fixed-point integer minor units. The amount is immutable
// after issuance; status only ever changes through the state machine.
type Voucher struct {
	Id            string        `dynamodbav:"id"`
	BeneficiaryId string        `dynamodbav:"beneficiary_id"`
	Amount        int64         `dynamodbav:"amount"`
	GrantType     string        `dynamodbav:"grant_type"`
	Status        VoucherStatus `dynamodbav:"status"`
	IssuedAt      time.Time     `dynamodbav:"issued_at"`
	ExpiresAt     time.Time     `dynamodbav:"expires_at"`
	RedeemedAt    *time.Time    `dynamodbav:"redeemed_at,omitempty"`
	ReissueCount  int           `dynamodbav:"reissue_count"`
}

// Outstanding reports whether the voucher still represents an e-money
// liability backed by the trust account.
func (v *Voucher) Outstanding() bool {
	return v.Status == ISSUED || v.Status == AVAILABLE || v.Status == REISSUED
}

// EntityType distinguishes the owners of status events.
type EntityType string

const (
	EntityVoucher    EntityType = "voucher"
	EntityAgentFloat EntityType = "agent_float"
	EntityWallet     EntityType = "wallet"
)

// StatusEvent is one append-only record of a committed state change.
// For a given (EntityType, EntityId) pair events are monotonically ordered
// by timestamp and form a valid path through the owning state machine.
type StatusEvent struct {
	Id          string            `dynamodbav:"id"`
	EntityType  EntityType        `dynamodbav:"entity_type"`
	EntityId    string            `dynamodbav:"entity_id"`
	EntityKey   string            `dynamodbav:"entity_key"` // "<entity_type>#<entity_id>", partition key
	FromStatus  string            `dynamodbav:"from_status"`
	ToStatus    string            `dynamodbav:"to_status"`
	TriggeredBy string            `dynamodbav:"triggered_by"`
	Metadata    map[string]string `dynamodbav:"metadata,omitempty"`
	Timestamp   time.Time         `dynamodbav:"timestamp"`
	GSI1PK      string            `dynamodbav:"gsi1pk"`
}

// EventLogPartition is the single GSI partition used to list events across
// all entities in timestamp order, mirroring an append-only log.
const EventLogPartition = "STATUS_EVENTS"

// SnapshotStatus classifies the outcome of a reconciliation run.
type SnapshotStatus string

const (
	SnapshotBalanced    SnapshotStatus = "BALANCED"
	SnapshotDiscrepancy SnapshotStatus = "DISCREPANCY"
	SnapshotError       SnapshotStatus = "ERROR"
)

// TrustAccountSnapshot is the persisted result of one reconciliation run.
// Snapshots for a calendar day are revision-numbered; the highest revision
// is canonical and earlier revisions are retained for audit.
type TrustAccountSnapshot struct {
	ReconciliationDate string         `dynamodbav:"reconciliation_date"` // YYYY-MM-DD
	Revision           int64          `dynamodbav:"revision"`
	TrustBalance       int64          `dynamodbav:"trust_balance"`
	LiabilityTotal     int64          `dynamodbav:"liability_total"`
	Discrepancy        int64          `dynamodbav:"discrepancy"`
	Status             SnapshotStatus `dynamodbav:"status"`
	Detail             string         `dynamodbav:"detail,omitempty"`
	GeneratedAt        time.Time      `dynamodbav:"generated_at"`
}

// FloatStatus classifies an agent's liquidity band.
type FloatStatus string

const (
	FloatOK        FloatStatus = "OK"
	FloatLow       FloatStatus = "LOW"
	FloatCritical  FloatStatus = "CRITICAL"
	FloatOverdraft FloatStatus = "OVERDRAFT"
)

// AgentFloat tracks a cash-out agent's disbursable balance.
// Invariant: Balance >= -OverdraftLimit when the overdraft is approved,
// otherwise Balance >= 0.
type AgentFloat struct {
	AgentId           string      `dynamodbav:"agent_id"`
	Balance           int64       `dynamodbav:"balance"`
	CashOnHand        int64       `dynamodbav:"cash_on_hand"`
	MinimumThreshold  int64       `dynamodbav:"minimum_threshold"`
	OverdraftLimit    int64       `dynamodbav:"overdraft_limit"`
	OverdraftApproved bool        `dynamodbav:"overdraft_approved"`
	Status            FloatStatus `dynamodbav:"status"`
	Version           int64       `dynamodbav:"version"`
	LastUpdated       time.Time   `dynamodbav:"last_updated"`
}

// ApprovedOverdraft returns the overdraft headroom usable for disbursement.
func (f *AgentFloat) ApprovedOverdraft() int64 {
	if f.OverdraftApproved {
		return f.OverdraftLimit
	}
	return 0
}

// SwitchRequestStatus tracks the lifecycle of an outbound settlement request.
type SwitchRequestStatus string

// Timeouts resolve as REJECTED with reason code TIME rather than a status
// of their own, so a key's terminal state is always one of these three.
const (
	SwitchPending  SwitchRequestStatus = "PENDING"
	SwitchAccepted SwitchRequestStatus = "ACCEPTED"
	SwitchRejected SwitchRequestStatus = "REJECTED"
)

// PaymentSwitchRequest is the durable record of one settlement attempt
// against the instant-payment switch. The idempotency key is unique; a
// second request with the same key returns the original result.
type PaymentSwitchRequest struct {
	IdempotencyKey string              `dynamodbav:"idempotency_key"`
	DebtorId       string              `dynamodbav:"debtor_id"`
	CreditorId     string              `dynamodbav:"creditor_id"`
	Amount         int64               `dynamodbav:"amount"`
	Status         SwitchRequestStatus `dynamodbav:"status"`
	ReasonCode     string              `dynamodbav:"reason_code,omitempty"`
	Reason         string              `dynamodbav:"reason,omitempty"`
	CreatedAt      time.Time           `dynamodbav:"created_at"`
	ResolvedAt     *time.Time          `dynamodbav:"resolved_at,omitempty"`
	GSI1PK         string              `dynamodbav:"gsi1pk"`
}

// SwitchRequestPartition is the GSI partition for listing switch requests
// across idempotency keys in creation order.
const SwitchRequestPartition = "SWITCH_REQUESTS"

// Resolved reports whether the request reached a terminal status.
func (r *PaymentSwitchRequest) Resolved() bool {
	return r.Status != SwitchPending
}

// Wallet represents a beneficiary e-money account. Wallet balances count
// toward the trust-account liability total.
type Wallet struct {
	WalletId  string    `dynamodbav:"wallet_id"`
	OwnerId   string    `dynamodbav:"owner_id"`
	Balance   int64     `dynamodbav:"balance"`
	Version   int64     `dynamodbav:"version"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// Notification is an upserted projection row consumed by the external
// notification collaborator. (SourceType, SourceId) is the dedup key.
type Notification struct {
	SourceType string            `dynamodbav:"source_type"`
	SourceId   string            `dynamodbav:"source_id"`
	Kind       string            `dynamodbav:"kind"`
	Subject    string            `dynamodbav:"subject"`
	Body       string            `dynamodbav:"body"`
	Metadata   map[string]string `dynamodbav:"metadata,omitempty"`
	UpdatedAt  time.Time         `dynamodbav:"updated_at"`
}
