package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// GetWorker returns the worker record for the given id.
func (k Keeper) GetWorker(ctx context.Context, workerID uint64) (types.WorkerRecord, bool) {
	bz := k.getStore(ctx).Get(types.WorkerKey(workerID))
	if bz == nil {
		return types.WorkerRecord{}, false
	}

	var worker types.WorkerRecord
	if err := unmarshalRecord(bz, &worker); err != nil {
		panic(fmt.Errorf("corrupt worker record %d: %w", workerID, err))
	}
	return worker, true
}

// GetWorkerByAddress resolves an address to its worker record through the
// reverse index.
func (k Keeper) GetWorkerByAddress(ctx context.Context, addr sdk.AccAddress) (types.WorkerRecord, bool) {
	bz := k.getStore(ctx).Get(types.WorkerIDByAddrKey(addr))
	if bz == nil {
		return types.WorkerRecord{}, false
	}
	return k.GetWorker(ctx, types.GetUint64FromBytes(bz))
}

// SetWorker persists a worker record and its address reverse index.
func (k Keeper) SetWorker(ctx context.Context, worker types.WorkerRecord) error {
	addr, err := sdk.AccAddressFromBech32(worker.Address)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("worker address %s: %v", worker.Address, err)
	}

	bz, err := marshalRecord(worker)
	if err != nil {
		return err
	}

	store := k.getStore(ctx)
	store.Set(types.WorkerKey(worker.Id), bz)
	store.Set(types.WorkerIDByAddrKey(addr), types.GetBytesFromUint64(worker.Id))
	return nil
}

// RegisterWorker binds a worker id to an on-chain address and seeds its
// reputation at the neutral midpoint. Re-registering the identical pair is a
// no-op; any partial collision with an existing binding aborts.
func (k Keeper) RegisterWorker(ctx context.Context, workerID uint64, addr sdk.AccAddress) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if workerID == 0 {
		return types.ErrInvalidWorkerID.Wrap("worker id cannot be zero")
	}
	if addr.Empty() {
		return types.ErrInvalidAddress.Wrap("worker address cannot be empty")
	}

	store := k.getStore(ctx)
	existing, idTaken := k.GetWorker(ctx, workerID)
	addrBz := store.Get(types.WorkerIDByAddrKey(addr))

	if idTaken {
		if existing.Address == addr.String() {
			return nil
		}
		return types.ErrDuplicateBinding.Wrapf("worker id %d already bound to %s", workerID, existing.Address)
	}
	if addrBz != nil {
		return types.ErrDuplicateBinding.Wrapf("address %s already bound to worker %d", addr, types.GetUint64FromBytes(addrBz))
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	worker := types.WorkerRecord{
		Id:           workerID,
		Address:      addr.String(),
		Active:       true,
		SuccessRate:  100,
		RegisteredAt: sdkCtx.BlockTime(),
	}
	if err := k.SetWorker(ctx, worker); err != nil {
		return err
	}

	if err := k.InitializeReputation(ctx, workerID); err != nil {
		return err
	}

	k.incrCounter(ctx, types.WorkerCountKey)
	k.metrics.RegisteredWorkers.Inc()

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWorkerRegistered,
		sdk.NewAttribute(types.AttributeKeyWorkerID, fmt.Sprintf("%d", workerID)),
		sdk.NewAttribute(types.AttributeKeyWorker, addr.String()),
	))
	return nil
}

// DeactivateWorker marks a worker inactive, keeping it out of future
// assignments. The binding and reputation history survive.
func (k Keeper) DeactivateWorker(ctx context.Context, workerID uint64, sender sdk.AccAddress) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	worker, found := k.GetWorker(ctx, workerID)
	if !found {
		return types.ErrWorkerNotFound.Wrapf("worker %d", workerID)
	}
	if sender.String() != worker.Address && sender.String() != k.authority {
		return types.ErrUnauthorized.Wrapf("%s may not deactivate worker %d", sender, workerID)
	}
	if !worker.Active {
		return nil
	}

	worker.Active = false
	if err := k.SetWorker(ctx, worker); err != nil {
		return err
	}
	k.metrics.RegisteredWorkers.Dec()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWorkerDeactivated,
		sdk.NewAttribute(types.AttributeKeyWorkerID, fmt.Sprintf("%d", workerID)),
	))
	return nil
}

// GetWorkerCount returns the number of registered workers.
func (k Keeper) GetWorkerCount(ctx context.Context) uint64 {
	return k.getCounter(ctx, types.WorkerCountKey)
}

// IterateWorkers walks every worker record until the callback returns true.
func (k Keeper) IterateWorkers(ctx context.Context, cb func(types.WorkerRecord) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.WorkerKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var worker types.WorkerRecord
		if err := unmarshalRecord(iterator.Value(), &worker); err != nil {
			panic(fmt.Errorf("corrupt worker record: %w", err))
		}
		if cb(worker) {
			break
		}
	}
}

// GetAllWorkers returns every registered worker, ordered by id.
func (k Keeper) GetAllWorkers(ctx context.Context) []types.WorkerRecord {
	var workers []types.WorkerRecord
	k.IterateWorkers(ctx, func(w types.WorkerRecord) bool {
		workers = append(workers, w)
		return false
	})
	return workers
}
