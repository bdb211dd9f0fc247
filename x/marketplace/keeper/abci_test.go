package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

func TestEndBlockerSweepsExpiredJobs(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("sweep_client_______"))
	env.fund(t, client, 10_000)
	registerTestWorker(t, env, 1, "sweep_worker_______")

	short := defaultJobSpec(env.ctx)
	short.Deadline = env.ctx.BlockTime().Add(time.Hour)

	queued, err := env.keeper.SubmitJob(env.ctx, client, short, math.NewInt(1000))
	require.NoError(t, err)
	processing, err := env.keeper.SubmitJob(env.ctx, client, short, math.NewInt(1000))
	require.NoError(t, err)
	require.NoError(t, env.keeper.AssignJob(env.ctx, env.authority, processing, 1))

	longLived, err := env.keeper.SubmitJob(env.ctx, client, defaultJobSpec(env.ctx), math.NewInt(1000))
	require.NoError(t, err)

	env.advanceTime(2 * time.Hour)
	require.NoError(t, env.keeper.EndBlocker(env.ctx))

	for _, id := range []uint64{queued, processing} {
		job, _ := env.keeper.GetJob(env.ctx, id)
		require.Equal(t, types.JOB_STATE_CANCELLED, job.State, "job %d", id)
	}
	job, _ := env.keeper.GetJob(env.ctx, longLived)
	require.Equal(t, types.JOB_STATE_QUEUED, job.State)

	// Two refunds of 1000, one job still escrowed.
	require.Equal(t, math.NewInt(9_000), env.balance(client))
	require.Equal(t, math.NewInt(1000), env.moduleBalance())
	require.Equal(t, uint64(1), env.keeper.GetActiveJobCount(env.ctx))

	// Repeating the sweep changes nothing.
	require.NoError(t, env.keeper.EndBlocker(env.ctx))
	require.Equal(t, math.NewInt(9_000), env.balance(client))
}

func TestEndBlockerHonorsBudget(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("budget_client______"))
	env.fund(t, client, 10_000)

	params := env.keeper.GetParams(env.ctx)
	params.ExpiredSweepPerBlock = 1
	require.NoError(t, env.keeper.SetParams(env.ctx, params))

	short := defaultJobSpec(env.ctx)
	short.Deadline = env.ctx.BlockTime().Add(time.Hour)
	for i := 0; i < 3; i++ {
		_, err := env.keeper.SubmitJob(env.ctx, client, short, math.NewInt(1000))
		require.NoError(t, err)
	}

	env.advanceTime(2 * time.Hour)
	require.NoError(t, env.keeper.EndBlocker(env.ctx))
	require.Equal(t, uint64(2), env.keeper.GetActiveJobCount(env.ctx))

	require.NoError(t, env.keeper.EndBlocker(env.ctx))
	require.NoError(t, env.keeper.EndBlocker(env.ctx))
	require.Zero(t, env.keeper.GetActiveJobCount(env.ctx))
}

func TestEndBlockerSkipsWhenPaused(t *testing.T) {
	env := setupKeeperForTest(t)
	client := sdk.AccAddress([]byte("paused_sweep_client"))
	env.fund(t, client, 10_000)

	short := defaultJobSpec(env.ctx)
	short.Deadline = env.ctx.BlockTime().Add(time.Hour)
	jobID, err := env.keeper.SubmitJob(env.ctx, client, short, math.NewInt(1000))
	require.NoError(t, err)

	env.advanceTime(2 * time.Hour)
	require.NoError(t, env.keeper.Pause(env.ctx, env.authority))
	require.NoError(t, env.keeper.EndBlocker(env.ctx))

	job, _ := env.keeper.GetJob(env.ctx, jobID)
	require.Equal(t, types.JOB_STATE_QUEUED, job.State)
}
