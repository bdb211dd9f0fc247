package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// GetPendingSettlement returns the settlement record for a job.
func (k Keeper) GetPendingSettlement(ctx context.Context, jobID uint64) (types.PendingSettlement, bool) {
	bz := k.getStore(ctx).Get(types.PendingSettlementKey(jobID))
	if bz == nil {
		return types.PendingSettlement{}, false
	}

	var settlement types.PendingSettlement
	if err := unmarshalRecord(bz, &settlement); err != nil {
		panic(fmt.Errorf("corrupt settlement record %d: %w", jobID, err))
	}
	return settlement, true
}

func (k Keeper) setPendingSettlement(ctx context.Context, settlement types.PendingSettlement) error {
	bz, err := marshalRecord(settlement)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.PendingSettlementKey(settlement.JobId), bz)
	return nil
}

// RegisterJobPayment records a completed job's payment with the settlement
// gate. Without a configured verifier this is a no-op and the legacy payment
// path applies. A job registers at most once.
func (k Keeper) RegisterJobPayment(ctx context.Context, jobID uint64, worker, client sdk.AccAddress, amount math.Int, privacyEnabled bool) error {
	if k.verifier == nil {
		return nil
	}
	if _, exists := k.GetPendingSettlement(ctx, jobID); exists {
		return nil
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	settlement := types.PendingSettlement{
		JobId:          jobID,
		Worker:         worker.String(),
		Client:         client.String(),
		Amount:         amount,
		PrivacyEnabled: privacyEnabled,
		RegisteredAt:   sdkCtx.BlockTime(),
	}
	if err := k.setPendingSettlement(ctx, settlement); err != nil {
		return err
	}

	if err := k.verifier.RegisterJobPayment(ctx, jobID, worker, client, amount, privacyEnabled); err != nil {
		return types.ErrTransferFailed.Wrapf("settlement registration for job %d: %v", jobID, err)
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSettlementRegistered,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// IsPaymentReady reports whether a job's gated payment may be released.
func (k Keeper) IsPaymentReady(ctx context.Context, jobID uint64) bool {
	if k.verifier == nil {
		return false
	}
	return k.verifier.IsPaymentReady(ctx, jobID)
}

// ReleaseSettlement pays out a registered settlement exactly once. The record
// is marked consumed before any coins move, so a re-entrant release observes
// the consumed flag and fails.
func (k Keeper) ReleaseSettlement(ctx context.Context, jobID uint64) error {
	settlement, found := k.GetPendingSettlement(ctx, jobID)
	if !found {
		return types.ErrSettlementNotFound.Wrapf("job %d", jobID)
	}
	if settlement.Consumed {
		return types.ErrSettlementConsumed.Wrapf("job %d", jobID)
	}

	settlement.Consumed = true
	if err := k.setPendingSettlement(ctx, settlement); err != nil {
		return err
	}

	params := k.GetParams(ctx)
	fee := settlement.Amount.MulRaw(int64(params.PlatformFeeBps)).QuoRaw(10000)
	workerShare := settlement.Amount.Sub(fee)

	workerAddr := sdk.MustAccAddressFromBech32(settlement.Worker)
	if workerShare.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, workerShare))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, workerAddr, coins); err != nil {
			return types.ErrTransferFailed.Wrapf("settlement payout for job %d: %v", jobID, err)
		}
	}
	if fee.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, fee))
		if err := k.bankKeeper.SendCoinsFromModuleToModule(ctx, types.ModuleName, authtypes.FeeCollectorName, coins); err != nil {
			return types.ErrTransferFailed.Wrapf("settlement fee for job %d: %v", jobID, err)
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSettlementReleased,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyWorker, settlement.Worker),
		sdk.NewAttribute(types.AttributeKeyWorkerShare, workerShare.String()),
		sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
	))
	return nil
}

// IterateSettlements walks every settlement record until the callback returns
// true.
func (k Keeper) IterateSettlements(ctx context.Context, cb func(types.PendingSettlement) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PendingSettlementPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var settlement types.PendingSettlement
		if err := unmarshalRecord(iterator.Value(), &settlement); err != nil {
			panic(fmt.Errorf("corrupt settlement record: %w", err))
		}
		if cb(settlement) {
			break
		}
	}
}
