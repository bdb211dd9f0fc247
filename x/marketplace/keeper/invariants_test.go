package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

func TestInvariantsHoldThroughLifecycle(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("invariant_client___"))
	env.fund(t, client, 10_000)
	workerAddr := registerTestWorker(t, env, 1, "invariant_worker___")

	check := func(stage string) {
		t.Helper()
		msg, broken := AllInvariants(env.keeper)(env.ctx)
		require.False(t, broken, "%s: %s", stage, msg)
	}

	check("empty state")

	jobID, err := env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(1000))
	require.NoError(t, err)
	check("after submit")

	require.NoError(t, env.keeper.AssignJob(env.ctx, env.authority, jobID, 1))
	check("after assign")

	require.NoError(t, env.keeper.SubmitJobResult(env.ctx, workerAddr, jobID, "0xresult", 80_000))
	check("after result")

	require.NoError(t, env.keeper.DistributeRewards(env.ctx, jobID))
	check("after payout")

	cancelID, err := env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(500))
	require.NoError(t, err)
	require.NoError(t, env.keeper.CancelJob(env.ctx, client, cancelID))
	check("after cancel")
}

func TestEscrowBalanceInvariantDetectsShortfall(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("shortfall_client___"))
	env.fund(t, client, 10_000)

	_, err := env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(1000))
	require.NoError(t, err)

	// Drain the module account behind the ledger's back.
	moduleAddr := env.auth.GetModuleAddress(types.ModuleName)
	drain := sdk.NewCoins(sdk.NewInt64Coin(testDenom, 600))
	require.NoError(t, env.bank.SendCoins(env.ctx, moduleAddr, client, drain))

	_, broken := EscrowBalanceInvariant(env.keeper)(env.ctx)
	require.True(t, broken)
}

func TestJobStateInvariantDetectsCounterDrift(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("drift_client_______"))
	env.fund(t, client, 10_000)

	_, err := env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(1000))
	require.NoError(t, err)

	env.keeper.setCounter(env.ctx, types.ActiveJobsKey, 7)

	_, broken := JobStateInvariant(env.keeper)(env.ctx)
	require.True(t, broken)
}
