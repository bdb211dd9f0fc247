package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("genesis_client_____"))
	env.fund(t, client, 10_000)
	workerAddr := registerTestWorker(t, env, 1, "genesis_worker_____")
	registerTestWorker(t, env, 2, "genesis_worker_two_")

	require.NoError(t, env.keeper.SetModel(env.ctx, env.authority, types.Model{
		Id:       "llama-7b",
		Active:   true,
		BaseCost: 50_000,
	}))

	spec := defaultJobSpec(env.ctx)
	spec.Requirements = []string{"gpu:a100"}
	jobID, err := env.keeper.SubmitJob(env.ctx, client, spec, math.NewInt(1000))
	require.NoError(t, err)
	require.NoError(t, env.keeper.AssignJob(env.ctx, env.authority, jobID, 1))
	require.NoError(t, env.keeper.SubmitJobResult(env.ctx, workerAddr, jobID, "0xresult", 80_000))

	_, err = env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(500))
	require.NoError(t, err)

	exported := env.keeper.ExportGenesis(env.ctx)
	require.NoError(t, exported.Validate())

	// Import into a fresh keeper and compare the state that matters.
	fresh := setupKeeperForTest(t)
	require.NoError(t, fresh.keeper.InitGenesis(fresh.ctx, *exported))

	reexported := fresh.keeper.ExportGenesis(fresh.ctx)
	require.Equal(t, exported.Params, reexported.Params)
	require.Equal(t, exported.NextJobId, reexported.NextJobId)
	require.Equal(t, exported.Workers, reexported.Workers)
	require.Equal(t, exported.Jobs, reexported.Jobs)
	require.Equal(t, exported.Models, reexported.Models)
	require.Equal(t, exported.GasProfiles, reexported.GasProfiles)
	require.Equal(t, exported.Efficiencies, reexported.Efficiencies)

	require.Len(t, reexported.Reputations, 2)
	for i, rep := range reexported.Reputations {
		require.Equal(t, exported.Reputations[i].WorkerId, rep.WorkerId)
		require.Equal(t, exported.Reputations[i].Score, rep.Score)
		require.Equal(t, exported.Reputations[i].Level, rep.Level)
	}

	// Derived structures were rebuilt consistently.
	require.Equal(t, env.keeper.GetActiveJobCount(env.ctx), fresh.keeper.GetActiveJobCount(fresh.ctx))
	require.Equal(t, env.keeper.GetCompletedJobCount(env.ctx), fresh.keeper.GetCompletedJobCount(fresh.ctx))
	require.Equal(t, env.keeper.GetWorkerCount(env.ctx), fresh.keeper.GetWorkerCount(fresh.ctx))

	msg, broken := LevelBucketInvariant(fresh.keeper)(fresh.ctx)
	require.False(t, broken, msg)
	msg, broken = JobStateInvariant(fresh.keeper)(fresh.ctx)
	require.False(t, broken, msg)

	require.Equal(t, []string{"gpu:a100"}, fresh.keeper.GetJobRequirements(fresh.ctx, jobID))
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	env := setupKeeperForTest(t)

	genState := types.DefaultGenesis()
	genState.NextJobId = 0
	require.Error(t, env.keeper.InitGenesis(env.ctx, *genState))
}

func TestInitGenesisPausedFlag(t *testing.T) {
	env := setupKeeperForTest(t)

	genState := types.DefaultGenesis()
	genState.Paused = true
	require.NoError(t, env.keeper.InitGenesis(env.ctx, *genState))
	require.True(t, env.keeper.IsPaused(env.ctx))
}
