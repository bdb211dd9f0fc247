package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Marketplace module sentinel errors. The numbering groups the taxonomy:
// validation (2-19), authorization (20-29), lifecycle state (30-39),
// arithmetic guards (40-49), external-call failures (50-59), admin (60-69).

var (
	// Validation errors
	ErrInvalidJobSpec     = sdkerrors.Register(ModuleName, 2, "invalid job specification")
	ErrInvalidAddress     = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidWorkerID    = sdkerrors.Register(ModuleName, 4, "invalid worker id")
	ErrPaymentTooLow      = sdkerrors.Register(ModuleName, 5, "payment below configured minimum")
	ErrInvalidDeadline    = sdkerrors.Register(ModuleName, 6, "deadline must be in the future and within the maximum duration")
	ErrInvalidReward      = sdkerrors.Register(ModuleName, 7, "max reward must be positive and not exceed payment")
	ErrEmptyInputHash     = sdkerrors.Register(ModuleName, 8, "input hash must be non-zero")
	ErrModelNotRegistered = sdkerrors.Register(ModuleName, 9, "referenced model is not registered or inactive")

	// Authorization errors
	ErrUnauthorized      = sdkerrors.Register(ModuleName, 20, "unauthorized caller")
	ErrNotJobClient      = sdkerrors.Register(ModuleName, 21, "caller is not the job's client")
	ErrNotAssignedWorker = sdkerrors.Register(ModuleName, 22, "caller is not the job's assigned worker")

	// Worker registry errors
	ErrWorkerNotFound   = sdkerrors.Register(ModuleName, 23, "worker not registered")
	ErrDuplicateBinding = sdkerrors.Register(ModuleName, 24, "worker id or address already bound to a different pair")
	ErrWorkerInactive   = sdkerrors.Register(ModuleName, 25, "worker is deactivated")

	// Lifecycle state errors
	ErrJobNotFound        = sdkerrors.Register(ModuleName, 30, "job not found")
	ErrInvalidTransition  = sdkerrors.Register(ModuleName, 31, "job lifecycle does not allow this transition")
	ErrJobNotCancellable  = sdkerrors.Register(ModuleName, 32, "job cannot be cancelled in its current state")
	ErrAlreadyPaid        = sdkerrors.Register(ModuleName, 33, "rewards already distributed for this job")
	ErrNotInitialized     = sdkerrors.Register(ModuleName, 34, "reputation not initialized for worker")
	ErrAlreadyInitialized = sdkerrors.Register(ModuleName, 35, "reputation already initialized for worker")

	// Arithmetic guard errors
	ErrFeeTooHigh     = sdkerrors.Register(ModuleName, 40, "platform fee exceeds maximum basis points")
	ErrAmountOverflow = sdkerrors.Register(ModuleName, 41, "arithmetic overflow")

	// External-call failures
	ErrTransferFailed     = sdkerrors.Register(ModuleName, 50, "token transfer failed")
	ErrPaymentNotReady    = sdkerrors.Register(ModuleName, 51, "payment gate has not verified the execution proof")
	ErrSettlementNotFound = sdkerrors.Register(ModuleName, 52, "no pending settlement for job")
	ErrSettlementConsumed = sdkerrors.Register(ModuleName, 53, "pending settlement already consumed")
	ErrReentrancy         = sdkerrors.Register(ModuleName, 54, "reentrant call detected")

	// Admin errors
	ErrUnknownConfigKey = sdkerrors.Register(ModuleName, 60, "unrecognized configuration key")
	ErrModulePaused     = sdkerrors.Register(ModuleName, 61, "module is paused")
	ErrPauseState       = sdkerrors.Register(ModuleName, 62, "pause state unchanged")
)
