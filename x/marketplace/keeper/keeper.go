package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// Keeper of the marketplace store. It owns the job ledger, worker registry,
// reputation engine, gas accounting and the settlement gate; the worker-pool
// and proof-verification collaborators are injected and optional.
type Keeper struct {
	storeKey      storetypes.StoreKey
	bankKeeper    types.BankKeeper
	accountKeeper types.AccountKeeper
	authority     string

	workerPool types.WorkerPoolHooks
	verifier   types.ProofVerifier

	metrics *Metrics
}

type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper creates a new marketplace Keeper instance.
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	accountKeeper types.AccountKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:      key,
		bankKeeper:    bankKeeper,
		accountKeeper: accountKeeper,
		authority:     authority,
		metrics:       NewMetrics(),
	}
}

// SetWorkerPoolHooks wires the pool-matching collaborator. Absence of hooks is
// a first-class state: all pool notifications become no-ops.
func (k *Keeper) SetWorkerPoolHooks(hooks types.WorkerPoolHooks) {
	if k.workerPool != nil {
		panic("cannot set worker pool hooks twice")
	}
	k.workerPool = hooks
}

// SetProofVerifier wires the proof-verification payment gate. With no verifier
// the ledger falls back to the legacy immediate-split payment path.
func (k *Keeper) SetProofVerifier(v types.ProofVerifier) {
	if k.verifier != nil {
		panic("cannot set proof verifier twice")
	}
	k.verifier = v
}

// HasProofVerifier reports whether the settlement gate is configured.
func (k Keeper) HasProofVerifier() bool {
	return k.verifier != nil
}

// GetAuthority returns the module's authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the marketplace module.
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	if provider, ok := ctx.(kvStoreProvider); ok {
		return provider.KVStore(k.storeKey)
	}

	unwrapped := sdk.UnwrapSDKContext(ctx)
	return unwrapped.KVStore(k.storeKey)
}

// marshalRecord serializes a state record. The store format is JSON, matching
// the rest of the module's hand-written state types.
func marshalRecord(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalRecord(bz []byte, v any) error {
	return json.Unmarshal(bz, v)
}

// IsPaused reports whether mutating entry points are halted.
func (k Keeper) IsPaused(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.PausedKey)
}

// checkNotPaused aborts mutating operations while the module is paused.
// Views never call it.
func (k Keeper) checkNotPaused(ctx context.Context) error {
	if k.IsPaused(ctx) {
		return types.ErrModulePaused
	}
	return nil
}

// Pause halts all mutating entry points. Pausing an already-paused module
// aborts.
func (k Keeper) Pause(ctx context.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	store := k.getStore(ctx)
	if store.Has(types.PausedKey) {
		return types.ErrPauseState.Wrap("module already paused")
	}
	store.Set(types.PausedKey, []byte{1})

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePaused))
	return nil
}

// Unpause resumes mutating entry points. Unpausing a running module aborts.
func (k Keeper) Unpause(ctx context.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	store := k.getStore(ctx)
	if !store.Has(types.PausedKey) {
		return types.ErrPauseState.Wrap("module not paused")
	}
	store.Delete(types.PausedKey)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeUnpaused))
	return nil
}

// enterExternalCalls sets the reentrancy guard before a sequence of
// external-collaborator calls. Guarded state is always written before the
// guard is entered, so a re-entrant call observes the committed new state and
// aborts here instead of replaying the old one.
func (k Keeper) enterExternalCalls(ctx context.Context) error {
	store := k.getStore(ctx)
	if store.Has(types.ReentrancyGuardKey) {
		return types.ErrReentrancy
	}
	store.Set(types.ReentrancyGuardKey, []byte{1})
	return nil
}

// exitExternalCalls clears the reentrancy guard. Callers pair it with
// enterExternalCalls via defer.
func (k Keeper) exitExternalCalls(ctx context.Context) {
	k.getStore(ctx).Delete(types.ReentrancyGuardKey)
}

// Global counter helpers.

func (k Keeper) getCounter(ctx context.Context, key []byte) uint64 {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setCounter(ctx context.Context, key []byte, v uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	k.getStore(ctx).Set(key, bz)
}

func (k Keeper) incrCounter(ctx context.Context, key []byte) {
	k.setCounter(ctx, key, k.getCounter(ctx, key)+1)
}

func (k Keeper) decrCounter(ctx context.Context, key []byte) error {
	v := k.getCounter(ctx, key)
	if v == 0 {
		return fmt.Errorf("counter underflow")
	}
	k.setCounter(ctx, key, v-1)
	return nil
}

// GetActiveJobCount returns the number of jobs in Queued or Processing state.
func (k Keeper) GetActiveJobCount(ctx context.Context) uint64 {
	return k.getCounter(ctx, types.ActiveJobsKey)
}

// GetCompletedJobCount returns the number of jobs that reached Completed.
func (k Keeper) GetCompletedJobCount(ctx context.Context) uint64 {
	return k.getCounter(ctx, types.CompletedJobsKey)
}

// GetTotalJobCount returns the number of jobs ever submitted.
func (k Keeper) GetTotalJobCount(ctx context.Context) uint64 {
	return k.getCounter(ctx, types.TotalJobsKey)
}
