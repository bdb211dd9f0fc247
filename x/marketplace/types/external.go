package types

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// WorkerPoolHooks is the optional pool-matching collaborator. All calls are
// best-effort notifications from the job ledger: a nil implementation disables
// them and failures are logged, never propagated, because the job's own state
// has already committed before any hook fires.
type WorkerPoolHooks interface {
	// ReserveWorker reserves a worker for a job for the given duration.
	ReserveWorker(ctx context.Context, workerID, jobID uint64, duration time.Duration) error

	// ReleaseWorker frees a previously reserved worker.
	ReleaseWorker(ctx context.Context, workerID, jobID uint64) error

	// RecordJobCompletion reports a finished job and its execution time.
	RecordJobCompletion(ctx context.Context, workerID, jobID uint64, success bool, executionTime time.Duration) error

	// UpdateReputation forwards performance figures to the pool's own scoring.
	UpdateReputation(ctx context.Context, workerID, jobID uint64, performance, responseTime, quality uint32) error
}

// MultiWorkerPoolHooks fans out to several hook sets; nil entries are skipped.
type MultiWorkerPoolHooks []WorkerPoolHooks

// NewMultiWorkerPoolHooks creates a MultiWorkerPoolHooks from a list of hooks.
func NewMultiWorkerPoolHooks(hooks ...WorkerPoolHooks) MultiWorkerPoolHooks {
	return hooks
}

func (h MultiWorkerPoolHooks) ReserveWorker(ctx context.Context, workerID, jobID uint64, duration time.Duration) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.ReserveWorker(ctx, workerID, jobID, duration); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiWorkerPoolHooks) ReleaseWorker(ctx context.Context, workerID, jobID uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.ReleaseWorker(ctx, workerID, jobID); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiWorkerPoolHooks) RecordJobCompletion(ctx context.Context, workerID, jobID uint64, success bool, executionTime time.Duration) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.RecordJobCompletion(ctx, workerID, jobID, success, executionTime); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiWorkerPoolHooks) UpdateReputation(ctx context.Context, workerID, jobID uint64, performance, responseTime, quality uint32) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.UpdateReputation(ctx, workerID, jobID, performance, responseTime, quality); err != nil {
			return err
		}
	}
	return nil
}

// ProofVerifier is the external proof-verification and payment-gate
// collaborator. A nil verifier selects the legacy immediate-split payment path
// in the job ledger.
type ProofVerifier interface {
	// RegisterJobPayment records a payment awaiting a verification signal.
	RegisterJobPayment(ctx context.Context, jobID uint64, worker, client sdk.AccAddress, amount math.Int, privacyEnabled bool) error

	// IsPaymentReady reports whether a proof or attestation finalization has
	// been recorded for the job.
	IsPaymentReady(ctx context.Context, jobID uint64) bool

	// ReleasePayment performs the verifier-side fee split bookkeeping.
	ReleasePayment(ctx context.Context, jobID uint64) error
}
