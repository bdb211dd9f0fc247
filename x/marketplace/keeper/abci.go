package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// EndBlocker sweeps a bounded number of expired jobs per block, refunding
// their clients. A paused module skips the sweep entirely.
func (k Keeper) EndBlocker(ctx context.Context) error {
	if k.IsPaused(ctx) {
		return nil
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	params := k.GetParams(ctx)
	budget := params.ExpiredSweepPerBlock
	if budget == 0 {
		return nil
	}

	var expired []uint64
	collect := func(jobID uint64) bool {
		job, found := k.GetJob(ctx, jobID)
		if found && now.After(job.Deadline) {
			expired = append(expired, jobID)
		}
		return uint32(len(expired)) >= budget
	}
	k.IterateJobsByState(ctx, types.JOB_STATE_QUEUED, collect)
	if uint32(len(expired)) < budget {
		k.IterateJobsByState(ctx, types.JOB_STATE_PROCESSING, collect)
	}

	for _, jobID := range expired {
		cancelled, err := k.CancelExpiredJob(ctx, jobID)
		if err != nil {
			k.Logger(sdkCtx).Error("expiry sweep failed", "job_id", jobID, "error", err)
			continue
		}
		if cancelled {
			k.Logger(sdkCtx).Info("expired job cancelled", "job_id", jobID)
		}
	}
	return nil
}
