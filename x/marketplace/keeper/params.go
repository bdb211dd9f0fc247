package keeper

import (
	"context"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// GetParams returns the current marketplace parameters.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	if err := unmarshalRecord(bz, &params); err != nil {
		panic(fmt.Errorf("corrupt params record: %w", err))
	}
	return params
}

// SetParams validates and persists the marketplace parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	bz, err := marshalRecord(params)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// UpdateConfig applies a single admin parameter change. Only the fixed key set
// is accepted; an unknown key aborts without touching state.
func (k Keeper) UpdateConfig(ctx context.Context, authority, key, value string) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	params := k.GetParams(ctx)

	switch key {
	case types.ConfigKeyPlatformFeeBps:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return types.ErrUnknownConfigKey.Wrapf("invalid value %q for %s: %v", value, key, err)
		}
		if uint32(v) > types.MaxPlatformFeeBps {
			return types.ErrFeeTooHigh.Wrapf("%d bps exceeds maximum %d", v, types.MaxPlatformFeeBps)
		}
		params.PlatformFeeBps = uint32(v)

	case types.ConfigKeyMinJobPayment:
		v, ok := math.NewIntFromString(value)
		if !ok || v.IsNegative() {
			return types.ErrUnknownConfigKey.Wrapf("invalid value %q for %s", value, key)
		}
		params.MinJobPayment = v

	case types.ConfigKeyMaxJobDuration:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil || v <= 0 {
			return types.ErrUnknownConfigKey.Wrapf("invalid value %q for %s", value, key)
		}
		params.MaxJobDurationSeconds = v

	case types.ConfigKeyDisputeFee:
		v, ok := math.NewIntFromString(value)
		if !ok || v.IsNegative() {
			return types.ErrUnknownConfigKey.Wrapf("invalid value %q for %s", value, key)
		}
		params.DisputeFee = v

	case types.ConfigKeyMinAllocationScore:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil || uint32(v) > types.MaxReputationScoreCap {
			return types.ErrUnknownConfigKey.Wrapf("invalid value %q for %s", value, key)
		}
		params.MinAllocationScore = uint32(v)

	default:
		return types.ErrUnknownConfigKey.Wrapf("unrecognized config key %q", key)
	}

	if err := k.SetParams(ctx, params); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeConfigUpdated,
		sdk.NewAttribute(types.AttributeKeyConfigKey, key),
		sdk.NewAttribute(types.AttributeKeyConfigValue, value),
	))
	return nil
}
