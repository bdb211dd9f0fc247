package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// GetReputation returns the reputation record for the given worker.
func (k Keeper) GetReputation(ctx context.Context, workerID uint64) (types.ReputationScore, bool) {
	bz := k.getStore(ctx).Get(types.ReputationKey(workerID))
	if bz == nil {
		return types.ReputationScore{}, false
	}

	var rep types.ReputationScore
	if err := unmarshalRecord(bz, &rep); err != nil {
		panic(fmt.Errorf("corrupt reputation record %d: %w", workerID, err))
	}
	return rep, true
}

func (k Keeper) setReputation(ctx context.Context, rep types.ReputationScore) error {
	bz, err := marshalRecord(rep)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ReputationKey(rep.WorkerId), bz)
	return nil
}

// InitializeReputation seeds a newly registered worker at the neutral midpoint
// score and inserts it into its level bucket. Existing records are left alone.
func (k Keeper) InitializeReputation(ctx context.Context, workerID uint64) error {
	if _, found := k.GetReputation(ctx, workerID); found {
		return nil
	}

	score := types.InitialReputationScore
	level := types.LevelForScore(score)
	index := k.appendToLevelBucket(ctx, level, workerID)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return k.setReputation(ctx, types.ReputationScore{
		WorkerId:    workerID,
		Score:       score,
		Level:       level,
		LevelIndex:  index,
		LastUpdated: sdkCtx.BlockTime(),
	})
}

// Level bucket maintenance. Buckets are dense arrays per level; removal swaps
// the last element into the vacated slot so every member's LevelIndex stays
// valid.

func (k Keeper) getLevelBucketSize(ctx context.Context, level uint32) uint64 {
	bz := k.getStore(ctx).Get(types.LevelBucketSizeKey(level))
	if bz == nil {
		return 0
	}
	return types.GetUint64FromBytes(bz)
}

func (k Keeper) setLevelBucketSize(ctx context.Context, level uint32, size uint64) {
	store := k.getStore(ctx)
	if size == 0 {
		store.Delete(types.LevelBucketSizeKey(level))
		return
	}
	store.Set(types.LevelBucketSizeKey(level), types.GetBytesFromUint64(size))
}

func (k Keeper) appendToLevelBucket(ctx context.Context, level uint32, workerID uint64) uint64 {
	size := k.getLevelBucketSize(ctx, level)
	k.getStore(ctx).Set(types.LevelBucketKey(level, size), types.GetBytesFromUint64(workerID))
	k.setLevelBucketSize(ctx, level, size+1)
	return size
}

func (k Keeper) removeFromLevelBucket(ctx context.Context, level uint32, index uint64) error {
	store := k.getStore(ctx)
	size := k.getLevelBucketSize(ctx, level)
	if index >= size {
		return fmt.Errorf("level %d bucket index %d out of range (size %d)", level, index, size)
	}

	last := size - 1
	if index != last {
		movedBz := store.Get(types.LevelBucketKey(level, last))
		movedID := types.GetUint64FromBytes(movedBz)
		store.Set(types.LevelBucketKey(level, index), movedBz)

		moved, found := k.GetReputation(ctx, movedID)
		if !found {
			return fmt.Errorf("level %d bucket slot %d references unknown worker %d", level, last, movedID)
		}
		moved.LevelIndex = index
		if err := k.setReputation(ctx, moved); err != nil {
			return err
		}
	}
	store.Delete(types.LevelBucketKey(level, last))
	k.setLevelBucketSize(ctx, level, last)
	return nil
}

// rebucketIfNeeded moves a worker between level buckets when its score crossed
// a tier boundary. The record is returned with its level fields updated but not
// yet persisted.
func (k Keeper) rebucketIfNeeded(ctx context.Context, rep types.ReputationScore) (types.ReputationScore, error) {
	newLevel := types.LevelForScore(rep.Score)
	if newLevel == rep.Level {
		return rep, nil
	}

	if err := k.removeFromLevelBucket(ctx, rep.Level, rep.LevelIndex); err != nil {
		return rep, err
	}
	rep.Level = newLevel
	rep.LevelIndex = k.appendToLevelBucket(ctx, newLevel, rep.WorkerId)
	return rep, nil
}

// UpdateReputation applies a signed score delta for the given reason. The
// authority bypasses the cooldown; the configured worker-pool address is rate
// limited, with a suppressed update reported as (false, nil). Any other sender
// is rejected.
func (k Keeper) UpdateReputation(ctx context.Context, sender string, workerID uint64, delta int32, reason types.UpdateReason) (bool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return false, err
	}

	params := k.GetParams(ctx)
	fromAuthority := sender == k.authority
	if !fromAuthority && (params.WorkerPoolAddress == "" || sender != params.WorkerPoolAddress) {
		return false, types.ErrUnauthorized.Wrapf("%s may not adjust reputation", sender)
	}

	rep, found := k.GetReputation(ctx, workerID)
	if !found {
		return false, types.ErrWorkerNotFound.Wrapf("no reputation record for worker %d", workerID)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	if !fromAuthority && params.ReputationCooldownSeconds > 0 {
		elapsed := now.Sub(rep.LastUpdated)
		if elapsed.Seconds() < float64(params.ReputationCooldownSeconds) {
			return false, nil
		}
	}

	if err := k.applyReputationDelta(ctx, rep, delta, reason); err != nil {
		return false, err
	}
	return true, nil
}

// applyReputationDelta is the internal adjustment core shared by the message
// path and the job lifecycle. It assumes authorization and rate limiting were
// already settled.
func (k Keeper) applyReputationDelta(ctx context.Context, rep types.ReputationScore, delta int32, reason types.UpdateReason) error {
	rep.Score = applyScoreDelta(rep.Score, delta)

	switch reason {
	case types.ReasonJobCompleted:
		rep.JobsCompleted++
		rep.Successes++
	case types.ReasonJobFailed:
		rep.Failures++
	case types.ReasonDisputed:
		rep.Disputes++
	case types.ReasonSlashed:
		rep.Slashes++
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	rep.LastUpdated = sdkCtx.BlockTime()

	rep, err := k.rebucketIfNeeded(ctx, rep)
	if err != nil {
		return err
	}
	if err := k.setReputation(ctx, rep); err != nil {
		return err
	}

	k.metrics.ReputationUpdates.WithLabelValues(string(reason)).Inc()
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReputationUpdated,
		sdk.NewAttribute(types.AttributeKeyWorkerID, fmt.Sprintf("%d", rep.WorkerId)),
		sdk.NewAttribute(types.AttributeKeyDelta, fmt.Sprintf("%d", delta)),
		sdk.NewAttribute(types.AttributeKeyScore, fmt.Sprintf("%d", rep.Score)),
		sdk.NewAttribute(types.AttributeKeyLevel, fmt.Sprintf("%d", rep.Level)),
		sdk.NewAttribute(types.AttributeKeyReason, string(reason)),
	))
	return nil
}

// decayedScore computes the inactivity-adjusted score without mutating state.
// Whole elapsed decay periods each cost DecayPointsPerPeriod, capped at
// MaxDecayPeriods worth of deduction.
func decayedScore(rep types.ReputationScore, params types.Params, nowUnix int64) uint32 {
	elapsed := nowUnix - rep.LastUpdated.Unix()
	if elapsed <= 0 || params.DecayPeriodSeconds <= 0 {
		return rep.Score
	}

	periods := uint64(elapsed / params.DecayPeriodSeconds)
	if periods == 0 {
		return rep.Score
	}
	if periods > uint64(params.MaxDecayPeriods) {
		periods = uint64(params.MaxDecayPeriods)
	}

	penalty := periods * uint64(params.DecayPointsPerPeriod)
	if penalty >= uint64(rep.Score) {
		return types.MinReputationScore
	}
	return rep.Score - uint32(penalty)
}

// GetReputationWithDecay returns the effective score as of the current block
// time, with accrued inactivity decay applied as a view. State is untouched.
func (k Keeper) GetReputationWithDecay(ctx context.Context, workerID uint64) (types.ReputationScore, bool) {
	rep, found := k.GetReputation(ctx, workerID)
	if !found {
		return types.ReputationScore{}, false
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	params := k.GetParams(ctx)
	rep.Score = decayedScore(rep, params, sdkCtx.BlockTime().Unix())
	rep.Level = types.LevelForScore(rep.Score)
	return rep, true
}

// ApplyDecayBatch materializes inactivity decay for up to count workers of one
// level bucket, starting at the given slot. It returns the number of records
// actually written. Only the authority may trigger a batch; the per-call count
// is clamped to the configured batch size.
func (k Keeper) ApplyDecayBatch(ctx context.Context, authority string, level uint32, start uint64, count uint32) (uint32, error) {
	if authority != k.authority {
		return 0, types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if level < types.MinReputationLevel || level > types.MaxReputationLevel {
		return 0, types.ErrInvalidJobSpec.Wrapf("level %d out of range", level)
	}

	params := k.GetParams(ctx)
	if count > params.DecayBatchSize {
		count = params.DecayBatchSize
	}

	size := k.getLevelBucketSize(ctx, level)
	if start >= size {
		return 0, nil
	}
	end := start + uint64(count)
	if end > size {
		end = size
	}

	// Snapshot the slot range first: decay can demote a worker, and the
	// swap-with-last removal would otherwise shuffle unvisited slots under the
	// iteration.
	store := k.getStore(ctx)
	ids := make([]uint64, 0, end-start)
	for i := start; i < end; i++ {
		bz := store.Get(types.LevelBucketKey(level, i))
		if bz == nil {
			continue
		}
		ids = append(ids, types.GetUint64FromBytes(bz))
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	var processed uint32
	for _, workerID := range ids {
		rep, found := k.GetReputation(ctx, workerID)
		if !found || rep.Level != level {
			continue
		}

		decayed := decayedScore(rep, params, now.Unix())
		if decayed == rep.Score {
			continue
		}

		dropped := rep.Score - decayed
		rep.Score = decayed
		rep.LastUpdated = now

		rep, err := k.rebucketIfNeeded(ctx, rep)
		if err != nil {
			return processed, err
		}
		if err := k.setReputation(ctx, rep); err != nil {
			return processed, err
		}
		processed++

		k.metrics.ReputationUpdates.WithLabelValues(string(types.ReasonDecay)).Inc()
		sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeReputationDecayed,
			sdk.NewAttribute(types.AttributeKeyWorkerID, fmt.Sprintf("%d", workerID)),
			sdk.NewAttribute(types.AttributeKeyDelta, fmt.Sprintf("-%d", dropped)),
			sdk.NewAttribute(types.AttributeKeyScore, fmt.Sprintf("%d", rep.Score)),
			sdk.NewAttribute(types.AttributeKeyLevel, fmt.Sprintf("%d", rep.Level)),
		))
	}
	return processed, nil
}

// WorkersByLevel returns the worker ids currently bucketed at the given level,
// in slot order.
func (k Keeper) WorkersByLevel(ctx context.Context, level uint32) []uint64 {
	store := k.getStore(ctx)
	size := k.getLevelBucketSize(ctx, level)

	ids := make([]uint64, 0, size)
	for i := uint64(0); i < size; i++ {
		bz := store.Get(types.LevelBucketKey(level, i))
		if bz == nil {
			continue
		}
		ids = append(ids, types.GetUint64FromBytes(bz))
	}
	return ids
}

// WorkersByLevelPaged returns up to count worker ids from one level bucket,
// starting at the given slot.
func (k Keeper) WorkersByLevelPaged(ctx context.Context, level uint32, start uint64, count uint32) []uint64 {
	store := k.getStore(ctx)
	size := k.getLevelBucketSize(ctx, level)
	if start >= size {
		return nil
	}
	end := start + uint64(count)
	if end > size {
		end = size
	}

	ids := make([]uint64, 0, end-start)
	for i := start; i < end; i++ {
		bz := store.Get(types.LevelBucketKey(level, i))
		if bz == nil {
			continue
		}
		ids = append(ids, types.GetUint64FromBytes(bz))
	}
	return ids
}

// TopWorkers returns up to limit worker ids drawn from the highest level
// buckets downward.
func (k Keeper) TopWorkers(ctx context.Context, limit int) []uint64 {
	if limit <= 0 {
		return nil
	}

	var out []uint64
	for level := types.MaxReputationLevel; level >= types.MinReputationLevel; level-- {
		for _, id := range k.WorkersByLevel(ctx, level) {
			out = append(out, id)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}
