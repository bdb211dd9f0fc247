package keeper

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// testEnv bundles the keeper under test with the real bank and auth keepers it
// runs against, so tests can fund accounts and assert balances.
type testEnv struct {
	keeper    *Keeper
	ctx       sdk.Context
	bank      bankkeeper.Keeper
	auth      authkeeper.AccountKeeper
	authority string
}

// setupKeeperForTest builds a marketplace keeper on a real multistore with
// live auth and bank keepers.
func setupKeeperForTest(t *testing.T) *testEnv {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	banktypes.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		types.ModuleName:           {authtypes.Minter, authtypes.Burner},
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	k := NewKeeper(storeKey, bankKeeper, accountKeeper, authority.String())

	header := cmtproto.Header{
		Time: time.Now().UTC(),
	}
	sdkCtx := sdk.NewContext(stateStore, header, false, log.NewNopLogger())
	sdkCtx = sdkCtx.WithContext(context.Background())
	sdkCtx = sdkCtx.WithBlockTime(time.Now().UTC())

	moduleAccount := accountKeeper.NewAccount(sdkCtx, authtypes.NewEmptyModuleAccount(types.ModuleName, authtypes.Minter, authtypes.Burner)).(*authtypes.ModuleAccount)
	accountKeeper.SetModuleAccount(sdkCtx, moduleAccount)
	feeCollector := accountKeeper.NewAccount(sdkCtx, authtypes.NewEmptyModuleAccount(authtypes.FeeCollectorName)).(*authtypes.ModuleAccount)
	accountKeeper.SetModuleAccount(sdkCtx, feeCollector)

	require.NoError(t, k.SetParams(sdkCtx, types.DefaultParams()))

	return &testEnv{
		keeper:    k,
		ctx:       sdkCtx,
		bank:      bankKeeper,
		auth:      accountKeeper,
		authority: authority.String(),
	}
}

// fund mints fresh coins for an account through the module account.
func (env *testEnv) fund(t *testing.T, addr sdk.AccAddress, amount int64) {
	t.Helper()
	coins := sdk.NewCoins(sdk.NewInt64Coin(testDenom, amount))
	require.NoError(t, env.bank.MintCoins(env.ctx, types.ModuleName, coins))
	require.NoError(t, env.bank.SendCoinsFromModuleToAccount(env.ctx, types.ModuleName, addr, coins))
}

// balance returns an account's balance in the payment denom.
func (env *testEnv) balance(addr sdk.AccAddress) math.Int {
	return env.bank.GetBalance(env.ctx, addr, testDenom).Amount
}

// moduleBalance returns the escrow module account's balance.
func (env *testEnv) moduleBalance() math.Int {
	return env.balance(env.auth.GetModuleAddress(types.ModuleName))
}

// feeCollectorBalance returns the fee collector module account's balance.
func (env *testEnv) feeCollectorBalance() math.Int {
	return env.balance(env.auth.GetModuleAddress(authtypes.FeeCollectorName))
}

// advanceTime moves the block time forward.
func (env *testEnv) advanceTime(d time.Duration) {
	env.ctx = env.ctx.WithBlockTime(env.ctx.BlockTime().Add(d))
}

const testDenom = "umesh"

// defaultJobSpec builds a valid spec a day out from the current block time.
func defaultJobSpec(ctx sdk.Context) types.JobSpec {
	return types.JobSpec{
		JobType:   types.JOB_TYPE_INFERENCE,
		InputHash: "0xabc123",
		MaxReward: math.NewInt(1000),
		Deadline:  ctx.BlockTime().Add(24 * time.Hour),
	}
}

// registerTestWorker registers a worker id bound to a fresh address.
func registerTestWorker(t *testing.T, env *testEnv, workerID uint64, seed string) sdk.AccAddress {
	t.Helper()
	addr := sdk.AccAddress([]byte(seed))
	require.NoError(t, env.keeper.RegisterWorker(env.ctx, workerID, addr))
	return addr
}
