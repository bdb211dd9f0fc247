package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// RegisterInvariants registers all marketplace invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-balance", EscrowBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "job-state", JobStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "level-buckets", LevelBucketInvariant(k))
}

// AllInvariants runs all invariants of the marketplace module.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := EscrowBalanceInvariant(k)(ctx); broken {
			return msg, broken
		}
		if msg, broken := JobStateInvariant(k)(ctx); broken {
			return msg, broken
		}
		return LevelBucketInvariant(k)(ctx)
	}
}

// EscrowBalanceInvariant checks that the module account holds at least the
// escrowed payments of every live job plus every registered-but-unconsumed
// settlement whose job already left the active set.
func EscrowBalanceInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params := k.GetParams(ctx)

		expected := math.ZeroInt()
		for _, job := range k.GetAllJobs(ctx) {
			switch job.State {
			case types.JOB_STATE_QUEUED, types.JOB_STATE_PROCESSING, types.JOB_STATE_COMPLETED:
				expected = expected.Add(job.Payment)
			}
		}

		moduleAddr := k.accountKeeper.GetModuleAddress(types.ModuleName)
		balance := k.bankKeeper.GetBalance(ctx, moduleAddr, params.PaymentDenom)

		broken := balance.Amount.LT(expected)
		return sdk.FormatInvariant(types.ModuleName, "escrow-balance",
			fmt.Sprintf("module balance %s, escrow liabilities %s%s\n",
				balance, expected, params.PaymentDenom)), broken
	}
}

// JobStateInvariant checks per-job consistency: defined states, assigned
// workers for post-queue states, and agreement between records and the state
// index.
func JobStateInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		store := k.getStore(ctx)
		var activeCount uint64
		for _, job := range k.GetAllJobs(ctx) {
			if job.State < types.JOB_STATE_QUEUED || job.State > types.JOB_STATE_CANCELLED {
				broken = true
				msg += fmt.Sprintf("job %d has undefined state %d\n", job.Id, job.State)
				continue
			}
			if job.State != types.JOB_STATE_QUEUED && job.State != types.JOB_STATE_CANCELLED && job.Worker == "" {
				broken = true
				msg += fmt.Sprintf("job %d in state %s without an assigned worker\n", job.Id, job.State)
			}
			if !store.Has(types.JobByStateKey(uint32(job.State), job.Id)) {
				broken = true
				msg += fmt.Sprintf("job %d missing from the %s index\n", job.Id, job.State)
			}
			if job.State == types.JOB_STATE_QUEUED || job.State == types.JOB_STATE_PROCESSING {
				activeCount++
			}
		}

		if counted := k.GetActiveJobCount(ctx); counted != activeCount {
			broken = true
			msg += fmt.Sprintf("active job counter %d, actual %d\n", counted, activeCount)
		}

		return sdk.FormatInvariant(types.ModuleName, "job-state", msg), broken
	}
}

// LevelBucketInvariant checks that every bucket slot points at a reputation
// record that agrees on level and slot index, and that levels match scores.
func LevelBucketInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		store := k.getStore(ctx)
		for level := types.MinReputationLevel; level <= types.MaxReputationLevel; level++ {
			size := k.getLevelBucketSize(ctx, level)
			for i := uint64(0); i < size; i++ {
				bz := store.Get(types.LevelBucketKey(level, i))
				if bz == nil {
					broken = true
					msg += fmt.Sprintf("level %d slot %d is empty below size %d\n", level, i, size)
					continue
				}

				workerID := types.GetUint64FromBytes(bz)
				rep, found := k.GetReputation(ctx, workerID)
				if !found {
					broken = true
					msg += fmt.Sprintf("level %d slot %d references unknown worker %d\n", level, i, workerID)
					continue
				}
				if rep.Level != level || rep.LevelIndex != i {
					broken = true
					msg += fmt.Sprintf("worker %d bucketed at level %d slot %d but records level %d slot %d\n",
						workerID, level, i, rep.Level, rep.LevelIndex)
				}
				if types.LevelForScore(rep.Score) != rep.Level {
					broken = true
					msg += fmt.Sprintf("worker %d score %d disagrees with level %d\n", workerID, rep.Score, rep.Level)
				}
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "level-buckets", msg), broken
	}
}
