package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// InitGenesis initializes the marketplace module state from a genesis state.
// Level buckets, per-state indexes and global counters are derived here rather
// than imported, so every init is internally consistent.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	store := k.getStore(ctx)
	store.Set(types.NextJobIDKey, types.GetBytesFromUint64(genState.NextJobId))
	if genState.Paused {
		store.Set(types.PausedKey, []byte{1})
	}

	for _, worker := range genState.Workers {
		if err := k.SetWorker(ctx, worker); err != nil {
			return err
		}
	}
	k.setCounter(ctx, types.WorkerCountKey, uint64(len(genState.Workers)))

	for _, rep := range genState.Reputations {
		rep.LevelIndex = k.appendToLevelBucket(ctx, rep.Level, rep.WorkerId)
		if err := k.setReputation(ctx, rep); err != nil {
			return err
		}
	}

	var active, completed uint64
	for _, gj := range genState.Jobs {
		job := gj.Job
		if err := k.SetJob(ctx, job); err != nil {
			return err
		}
		store.Set(types.JobByStateKey(uint32(job.State), job.Id), []byte{1})

		client := sdk.MustAccAddressFromBech32(job.Client)
		store.Set(types.JobByClientKey(client, job.Id), []byte{1})
		if job.Worker != "" {
			worker := sdk.MustAccAddressFromBech32(job.Worker)
			store.Set(types.JobByWorkerKey(worker, job.Id), []byte{1})
		}

		k.setJobStringList(ctx, types.JobRequirementLenKey(job.Id), types.JobRequirementKey, job.Id, gj.Requirements)
		k.setJobStringList(ctx, types.JobMetadataLenKey(job.Id), types.JobMetadataKey, job.Id, gj.Metadata)

		switch job.State {
		case types.JOB_STATE_QUEUED, types.JOB_STATE_PROCESSING:
			active++
		case types.JOB_STATE_COMPLETED:
			completed++
		case types.JOB_STATE_PAID:
			completed++
		}
	}
	k.setCounter(ctx, types.TotalJobsKey, uint64(len(genState.Jobs)))
	k.setCounter(ctx, types.ActiveJobsKey, active)
	k.setCounter(ctx, types.CompletedJobsKey, completed)

	for _, eff := range genState.Efficiencies {
		if err := k.setWorkerEfficiency(ctx, eff); err != nil {
			return err
		}
	}
	for _, profile := range genState.GasProfiles {
		if err := k.setGasProfile(ctx, profile); err != nil {
			return err
		}
	}
	for _, model := range genState.Models {
		bz, err := marshalRecord(model)
		if err != nil {
			return err
		}
		store.Set(types.ModelKey(model.Id), bz)
	}
	for _, settlement := range genState.PendingSettlements {
		if err := k.setPendingSettlement(ctx, settlement); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the marketplace module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	store := k.getStore(ctx)

	nextJobID := uint64(1)
	if bz := store.Get(types.NextJobIDKey); bz != nil {
		nextJobID = types.GetUint64FromBytes(bz)
	}

	genState := &types.GenesisState{
		Params:    k.GetParams(ctx),
		NextJobId: nextJobID,
		Paused:    k.IsPaused(ctx),
		Workers:   k.GetAllWorkers(ctx),
	}

	for _, job := range k.GetAllJobs(ctx) {
		genState.Jobs = append(genState.Jobs, types.GenesisJob{
			Job:          job,
			Requirements: k.GetJobRequirements(ctx, job.Id),
			Metadata:     k.GetJobMetadata(ctx, job.Id),
		})
	}

	for _, worker := range genState.Workers {
		if rep, found := k.GetReputation(ctx, worker.Id); found {
			genState.Reputations = append(genState.Reputations, rep)
		}
		if eff, found := k.GetWorkerEfficiency(ctx, worker.Id); found {
			genState.Efficiencies = append(genState.Efficiencies, eff)
		}
	}

	profileIter := storetypes.KVStorePrefixIterator(store, types.GasProfileKeyPrefix)
	defer profileIter.Close()
	for ; profileIter.Valid(); profileIter.Next() {
		var profile types.GasProfile
		if err := unmarshalRecord(profileIter.Value(), &profile); err != nil {
			panic(fmt.Errorf("corrupt gas profile record: %w", err))
		}
		genState.GasProfiles = append(genState.GasProfiles, profile)
	}

	modelIter := storetypes.KVStorePrefixIterator(store, types.ModelKeyPrefix)
	defer modelIter.Close()
	for ; modelIter.Valid(); modelIter.Next() {
		var model types.Model
		if err := unmarshalRecord(modelIter.Value(), &model); err != nil {
			panic(fmt.Errorf("corrupt model record: %w", err))
		}
		genState.Models = append(genState.Models, model)
	}

	k.IterateSettlements(ctx, func(settlement types.PendingSettlement) bool {
		genState.PendingSettlements = append(genState.PendingSettlements, settlement)
		return false
	})

	return genState
}
