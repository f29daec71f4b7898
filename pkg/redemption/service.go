package redemption

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/liquidity"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
	"github.com/google/uuid"
)

// ErrVoucherNotRedeemable is returned when the voucher is not in a
// redeemable state.
var ErrVoucherNotRedeemable = errors.New("voucher is not redeemable")

// casRetries bounds how often the wallet credit re-reads after losing a
// version race before giving up.
const casRetries = 3

// Ledger is the slice of the data layer the redemption flow touches.
type Ledger interface {
	storage.VoucherReader
	storage.WalletStore
	storage.EventAppender
}

// Service orchestrates an agent cash-out end to end: liquidity debit,
// switch settlement, then the voucher transition and (for wallet-destination
// redemptions) the beneficiary wallet credit. Each leg is owned by its
// component; this service only sequences them and compensates on failure.
type Service struct {
	Lifecycle *lifecycle.Service
	Guard     *liquidity.Guard
	Switch    *switchadapter.Adapter
	Store     Ledger
}

// NewService creates a new redemption Service.
func NewService(lc *lifecycle.Service, guard *liquidity.Guard, sw *switchadapter.Adapter, store Ledger) *Service {
	return &Service{Lifecycle: lc, Guard: guard, Switch: sw, Store: store}
}

// RedeemRequest describes one cash-out attempt. WalletId, when set, names
// the beneficiary wallet to credit instead of paying out cash at the agent.
type RedeemRequest struct {
	VoucherID      string
	AgentID        string
	IdempotencyKey string
	DebtorId       string
	CreditorId     string
	WalletId       string
	Actor          string
}

// RedeemResult is the outcome of the cash-out.
type RedeemResult struct {
	Voucher    *models.Voucher
	Settlement *switchadapter.SettlementResult
}

// Redeem performs the cash-out. The agent's float is debited before the
// switch call and credited back if the settlement is rejected, so float
// value moves only when settlement value does. No ledger lock is held
// across the switch call.
//
// A retry under a key whose settlement already committed skips the float
// debit: the first attempt paid for it, and only the voucher move (and
// wallet credit) can still be outstanding.
func (s *Service) Redeem(ctx context.Context, req RedeemRequest) (*RedeemResult, error) {
	voucher, err := s.Store.GetVoucher(ctx, req.VoucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != models.AVAILABLE {
		if voucher.Status == models.REDEEMED {
			return nil, storage.ErrAlreadyInTargetState
		}
		return nil, fmt.Errorf("%w: status %s", ErrVoucherNotRedeemable, voucher.Status)
	}

	prior, err := s.Switch.LookupSettlement(ctx, req.IdempotencyKey)
	if err != nil && !errors.Is(err, storage.ErrSwitchRequestNotFound) {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if prior != nil && prior.Accepted() {
		return s.finalize(ctx, req, prior)
	}

	if _, err := s.Guard.CheckAndDebit(ctx, req.AgentID, voucher.Amount); err != nil {
		return nil, err
	}

	settlement, err := s.Switch.SettlePayment(ctx, switchadapter.SettlementRequest{
		IdempotencyKey: req.IdempotencyKey,
		DebtorId:       req.DebtorId,
		CreditorId:     req.CreditorId,
		Amount:         voucher.Amount,
	})
	if err != nil {
		s.compensate(ctx, req.AgentID, voucher.Amount, req.IdempotencyKey)
		return nil, fmt.Errorf("settlement failed: %w", err)
	}
	if !settlement.Accepted() {
		s.compensate(ctx, req.AgentID, voucher.Amount, req.IdempotencyKey)
		return &RedeemResult{Voucher: voucher, Settlement: settlement}, nil
	}

	return s.finalize(ctx, req, settlement)
}

// finalize runs the legs that follow a committed settlement: the voucher
// transition, then the wallet credit for wallet-destination redemptions.
// The credit runs strictly after the transition and only when this call
// won it, so a duplicate delivery cannot credit the wallet twice.
func (s *Service) finalize(ctx context.Context, req RedeemRequest, settlement *switchadapter.SettlementResult) (*RedeemResult, error) {
	transition, err := s.Lifecycle.Transition(ctx, lifecycle.TransitionRequest{
		VoucherID: req.VoucherID,
		Event:     models.EventRedeem,
		Actor:     req.Actor,
		Metadata: map[string]string{
			"agent_id":        req.AgentID,
			"idempotency_key": req.IdempotencyKey,
		},
	})
	if err != nil {
		// Settlement committed but the voucher move failed; surface loudly
		// rather than unwinding a completed settlement. The retry resumes
		// here via the idempotency-key check without re-debiting the float.
		return nil, fmt.Errorf("settlement accepted but voucher transition failed: %w", err)
	}

	if req.WalletId != "" && !transition.Duplicate {
		if err := s.creditBeneficiaryWallet(ctx, transition.Voucher, req); err != nil {
			return nil, fmt.Errorf("settlement accepted but wallet credit failed: %w", err)
		}
	}

	return &RedeemResult{Voucher: transition.Voucher, Settlement: settlement}, nil
}

// creditBeneficiaryWallet moves the redeemed value into the beneficiary's
// e-money wallet, creating the wallet on first use. The credit is CAS'd on
// the wallet version; losing a race re-reads and retries.
func (s *Service) creditBeneficiaryWallet(ctx context.Context, voucher *models.Voucher, req RedeemRequest) error {
	for attempt := 0; attempt < casRetries; attempt++ {
		wallet, err := s.Store.GetWallet(ctx, req.WalletId)
		if errors.Is(err, storage.ErrWalletNotFound) {
			wallet, err = s.Store.CreateWallet(ctx, &models.Wallet{
				WalletId: req.WalletId,
				OwnerId:  voucher.BeneficiaryId,
			})
		}
		if err != nil {
			return err
		}

		err = s.Store.CreditWallet(ctx, req.WalletId, voucher.Amount, wallet.Version)
		if errors.Is(err, storage.ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return err
		}

		event := &models.StatusEvent{
			Id:          uuid.New().String(),
			EntityType:  models.EntityWallet,
			EntityId:    req.WalletId,
			EntityKey:   fmt.Sprintf("%s#%s", models.EntityWallet, req.WalletId),
			ToStatus:    "CREDITED",
			TriggeredBy: req.Actor,
			Metadata: map[string]string{
				"voucher_id":      voucher.Id,
				"amount":          fmt.Sprintf("%d", voucher.Amount),
				"idempotency_key": req.IdempotencyKey,
			},
			Timestamp: time.Now(),
			GSI1PK:    models.EventLogPartition,
		}
		if err := s.Store.AppendEvent(ctx, event); err != nil {
			// The balance change already committed; the audit row is
			// best-effort.
			slog.Log(ctx, slog.LevelError, "failed to record wallet credit event", "wallet_id", req.WalletId, "error", err)
		}
		return nil
	}

	return storage.ErrConcurrentUpdate
}

func (s *Service) compensate(ctx context.Context, agentID string, amount int64, key string) {
	if err := s.Guard.Credit(ctx, agentID, amount, "settlement-compensation:"+key); err != nil {
		slog.Log(ctx, slog.LevelError, "failed to compensate float debit", "agent_id", agentID, "amount", amount, "error", err)
	}
}
