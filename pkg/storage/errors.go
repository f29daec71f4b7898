package storage

import "errors"

// ErrVoucherNotFound is returned when no voucher exists for the given ID.
var ErrVoucherNotFound = errors.New("voucher not found")

// ErrAgentNotFound is returned when no float record exists for the given agent ID.
var ErrAgentNotFound = errors.New("agent float not found")

// ErrWalletNotFound is returned when no wallet exists for the given ID.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrSwitchRequestNotFound is returned when no request exists for the given idempotency key.
var ErrSwitchRequestNotFound = errors.New("payment switch request not found")

// ErrInvalidTransition is returned when the requested edge does not exist in
// the voucher transition table for the voucher's current status.
var ErrInvalidTransition = errors.New("invalid voucher transition")

// ErrAlreadyInTargetState is returned when a duplicate trigger arrives for a
// voucher already in the requested target state. It is an idempotent no-op,
// not a true failure; callers resolve it to the previously persisted event.
var ErrAlreadyInTargetState = errors.New("voucher already in target state")

// ErrInsufficientLiquidity is returned when an agent's available float
// cannot cover the requested cash-out amount.
var ErrInsufficientLiquidity = errors.New("insufficient agent liquidity")

// ErrDuplicateIdempotencyKey is returned when a switch request already
// exists for the supplied idempotency key.
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

// ErrConcurrentUpdate is returned when an optimistic version check fails
// because another writer committed first. Safe to retry after a re-read.
var ErrConcurrentUpdate = errors.New("concurrent update conflict")
