package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// Baseline gas cost per job type, used when the referenced model carries no
// override. Training dominates; verification of an existing proof is the
// cheapest proof-related workload.
var baseGasCosts = map[types.JobType]uint64{
	types.JOB_TYPE_INFERENCE:              100_000,
	types.JOB_TYPE_PROOF_VERIFICATION:     150_000,
	types.JOB_TYPE_DATA_PIPELINE:          250_000,
	types.JOB_TYPE_PROOF_GENERATION:       400_000,
	types.JOB_TYPE_CONFIDENTIAL_EXECUTION: 500_000,
	types.JOB_TYPE_TRAINING:               1_000_000,
}

// Output formats that inflate the estimate beyond the base cost.
const (
	outputFormatLarge   = "large"
	outputFormatComplex = "complex"
)

// reservationMarginBps pads reservations 20% above the estimate, rounded up.
const reservationMarginBps = uint64(12000)

// GetModel returns a registered model by id.
func (k Keeper) GetModel(ctx context.Context, modelID string) (types.Model, bool) {
	bz := k.getStore(ctx).Get(types.ModelKey(modelID))
	if bz == nil {
		return types.Model{}, false
	}

	var model types.Model
	if err := unmarshalRecord(bz, &model); err != nil {
		panic(fmt.Errorf("corrupt model record %q: %w", modelID, err))
	}
	return model, true
}

// SetModel registers or updates a model reference. Authority only.
func (k Keeper) SetModel(ctx context.Context, authority string, model types.Model) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if model.Id == "" {
		return types.ErrInvalidJobSpec.Wrap("model id cannot be empty")
	}

	bz, err := marshalRecord(model)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ModelKey(model.Id), bz)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeModelRegistered,
		sdk.NewAttribute(types.AttributeKeyModel, model.Id),
	))
	return nil
}

// EstimateJobGas computes the deterministic gas estimate for a job shape. A
// registered model with a non-zero base cost overrides the per-type default;
// large and complex output formats scale the result by 2x and 3x.
func (k Keeper) EstimateJobGas(ctx context.Context, jobType types.JobType, modelID, outputFormat string) (uint64, error) {
	base, ok := baseGasCosts[jobType]
	if !ok {
		return 0, types.ErrInvalidJobSpec.Wrapf("unknown job type %d", jobType)
	}

	if modelID != "" {
		model, found := k.GetModel(ctx, modelID)
		if found && model.Active && model.BaseCost > 0 {
			base = model.BaseCost
		}
	}

	switch outputFormat {
	case outputFormatLarge:
		return safeMulUint64(base, 2)
	case outputFormatComplex:
		return safeMulUint64(base, 3)
	default:
		return base, nil
	}
}

// ReserveJobGas records the gas profile for a job, reserving the estimate plus
// a 20% margin, rounded up.
func (k Keeper) ReserveJobGas(ctx context.Context, jobID uint64, estimate uint64) (uint64, error) {
	reserved, err := ceilMulBps(estimate, reservationMarginBps)
	if err != nil {
		return 0, err
	}

	profile := types.GasProfile{
		JobId:     jobID,
		Estimated: estimate,
		Reserved:  reserved,
	}
	if err := k.setGasProfile(ctx, profile); err != nil {
		return 0, err
	}
	return reserved, nil
}

// GetGasProfile returns the gas profile recorded for a job.
func (k Keeper) GetGasProfile(ctx context.Context, jobID uint64) (types.GasProfile, bool) {
	bz := k.getStore(ctx).Get(types.GasProfileKey(jobID))
	if bz == nil {
		return types.GasProfile{}, false
	}

	var profile types.GasProfile
	if err := unmarshalRecord(bz, &profile); err != nil {
		panic(fmt.Errorf("corrupt gas profile %d: %w", jobID, err))
	}
	return profile, true
}

func (k Keeper) setGasProfile(ctx context.Context, profile types.GasProfile) error {
	bz, err := marshalRecord(profile)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.GasProfileKey(profile.JobId), bz)
	return nil
}

// GetWorkerEfficiency returns a worker's running gas efficiency average.
func (k Keeper) GetWorkerEfficiency(ctx context.Context, workerID uint64) (types.WorkerEfficiency, bool) {
	bz := k.getStore(ctx).Get(types.WorkerEfficiencyKey(workerID))
	if bz == nil {
		return types.WorkerEfficiency{}, false
	}

	var eff types.WorkerEfficiency
	if err := unmarshalRecord(bz, &eff); err != nil {
		panic(fmt.Errorf("corrupt efficiency record %d: %w", workerID, err))
	}
	return eff, true
}

func (k Keeper) setWorkerEfficiency(ctx context.Context, eff types.WorkerEfficiency) error {
	bz, err := marshalRecord(eff)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.WorkerEfficiencyKey(eff.WorkerId), bz)
	return nil
}

// UpdateWorkerEfficiency folds one job's actual gas usage into the worker's
// running average. Jobs with no recorded estimate or zero usage are skipped.
// The per-job ratio is estimate/actual in basis points, capped at 2x neutral,
// then blended 80/20 with the prior average.
func (k Keeper) UpdateWorkerEfficiency(ctx context.Context, workerID, jobID, actualUsed uint64) error {
	if actualUsed == 0 {
		return nil
	}

	profile, found := k.GetGasProfile(ctx, jobID)
	if !found || profile.Estimated == 0 {
		return nil
	}

	profile.Actual = actualUsed
	if err := k.setGasProfile(ctx, profile); err != nil {
		return err
	}

	perJob, err := safeMulUint64(profile.Estimated, 10000)
	if err != nil {
		return err
	}
	perJob /= actualUsed
	if perJob > uint64(types.NeutralEfficiencyBps)*2 {
		perJob = uint64(types.NeutralEfficiencyBps) * 2
	}

	eff, found := k.GetWorkerEfficiency(ctx, workerID)
	if !found {
		eff = types.WorkerEfficiency{
			WorkerId: workerID,
			Bps:      types.NeutralEfficiencyBps,
		}
	}

	blended := (uint64(eff.Bps)*8 + perJob*2) / 10
	eff.Bps = uint32(blended)
	eff.Jobs++
	return k.setWorkerEfficiency(ctx, eff)
}

// OptimizeGasAllocation tunes the standing estimate for a worker and job type
// based on its efficiency history. Consistently efficient workers get a 15%
// tighter allocation; wasteful ones get 25% headroom.
func (k Keeper) OptimizeGasAllocation(ctx context.Context, workerID uint64, jobType types.JobType) (uint64, error) {
	base, err := k.EstimateJobGas(ctx, jobType, "", "")
	if err != nil {
		return 0, err
	}

	eff, found := k.GetWorkerEfficiency(ctx, workerID)
	if !found || eff.Jobs == 0 {
		return base, nil
	}

	params := k.GetParams(ctx)
	switch {
	case eff.Bps >= params.HighEfficiencyBps:
		return ceilMulBps(base, 8500)
	case eff.Bps <= params.LowEfficiencyBps:
		return ceilMulBps(base, 12500)
	default:
		return base, nil
	}
}
