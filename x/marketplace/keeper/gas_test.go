package keeper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

func TestEstimateJobGasDefaults(t *testing.T) {
	env := setupKeeperForTest(t)

	cases := []struct {
		jobType types.JobType
		want    uint64
	}{
		{types.JOB_TYPE_INFERENCE, 100_000},
		{types.JOB_TYPE_PROOF_VERIFICATION, 150_000},
		{types.JOB_TYPE_DATA_PIPELINE, 250_000},
		{types.JOB_TYPE_PROOF_GENERATION, 400_000},
		{types.JOB_TYPE_CONFIDENTIAL_EXECUTION, 500_000},
		{types.JOB_TYPE_TRAINING, 1_000_000},
	}
	for _, tc := range cases {
		got, err := env.keeper.EstimateJobGas(env.ctx, tc.jobType, "", "")
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.jobType.String())
	}

	_, err := env.keeper.EstimateJobGas(env.ctx, types.JobType(99), "", "")
	require.ErrorIs(t, err, types.ErrInvalidJobSpec)
}

func TestEstimateJobGasOutputFormatMultipliers(t *testing.T) {
	env := setupKeeperForTest(t)

	got, err := env.keeper.EstimateJobGas(env.ctx, types.JOB_TYPE_INFERENCE, "", "large")
	require.NoError(t, err)
	require.Equal(t, uint64(200_000), got)

	got, err = env.keeper.EstimateJobGas(env.ctx, types.JOB_TYPE_INFERENCE, "", "complex")
	require.NoError(t, err)
	require.Equal(t, uint64(300_000), got)

	got, err = env.keeper.EstimateJobGas(env.ctx, types.JOB_TYPE_INFERENCE, "", "json")
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), got)
}

func TestEstimateJobGasModelOverride(t *testing.T) {
	env := setupKeeperForTest(t)

	require.NoError(t, env.keeper.SetModel(env.ctx, env.authority, types.Model{
		Id:       "llama-7b",
		Active:   true,
		BaseCost: 50_000,
	}))

	got, err := env.keeper.EstimateJobGas(env.ctx, types.JOB_TYPE_INFERENCE, "llama-7b", "")
	require.NoError(t, err)
	require.Equal(t, uint64(50_000), got)

	// Inactive models fall back to the per-type default.
	require.NoError(t, env.keeper.SetModel(env.ctx, env.authority, types.Model{
		Id:       "llama-7b",
		Active:   false,
		BaseCost: 50_000,
	}))
	got, err = env.keeper.EstimateJobGas(env.ctx, types.JOB_TYPE_INFERENCE, "llama-7b", "")
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), got)

	err = env.keeper.SetModel(env.ctx, "cosmos1stranger", types.Model{Id: "x", Active: true})
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestReserveJobGasRoundsUp(t *testing.T) {
	env := setupKeeperForTest(t)

	reserved, err := env.keeper.ReserveJobGas(env.ctx, 1, 100_000)
	require.NoError(t, err)
	require.Equal(t, uint64(120_000), reserved)

	// 101 * 1.2 = 121.2, reserved rounds up.
	reserved, err = env.keeper.ReserveJobGas(env.ctx, 2, 101)
	require.NoError(t, err)
	require.Equal(t, uint64(122), reserved)

	profile, found := env.keeper.GetGasProfile(env.ctx, 1)
	require.True(t, found)
	require.Equal(t, uint64(100_000), profile.Estimated)
	require.Equal(t, uint64(120_000), profile.Reserved)
}

func TestUpdateWorkerEfficiency(t *testing.T) {
	env := setupKeeperForTest(t)

	_, err := env.keeper.ReserveJobGas(env.ctx, 1, 100_000)
	require.NoError(t, err)

	// Half the estimate used: per-job ratio 20000 bps, blended 80/20.
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 5, 1, 50_000))

	eff, found := env.keeper.GetWorkerEfficiency(env.ctx, 5)
	require.True(t, found)
	require.Equal(t, uint32(12_000), eff.Bps)
	require.Equal(t, uint64(1), eff.Jobs)

	profile, _ := env.keeper.GetGasProfile(env.ctx, 1)
	require.Equal(t, uint64(50_000), profile.Actual)

	// Zero usage and missing profiles are skipped.
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 5, 1, 0))
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 5, 42, 10_000))
	eff, _ = env.keeper.GetWorkerEfficiency(env.ctx, 5)
	require.Equal(t, uint64(1), eff.Jobs)
}

func TestUpdateWorkerEfficiencyPenalizesOverruns(t *testing.T) {
	env := setupKeeperForTest(t)

	_, err := env.keeper.ReserveJobGas(env.ctx, 1, 100_000)
	require.NoError(t, err)

	// Double the estimate used: per-job ratio 5000 bps.
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 5, 1, 200_000))

	eff, _ := env.keeper.GetWorkerEfficiency(env.ctx, 5)
	require.Equal(t, uint32(9_000), eff.Bps)
}

func TestOptimizeGasAllocation(t *testing.T) {
	env := setupKeeperForTest(t)

	// No history: default estimate.
	got, err := env.keeper.OptimizeGasAllocation(env.ctx, 5, types.JOB_TYPE_INFERENCE)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), got)

	// Efficient worker gets a tighter allocation.
	_, err = env.keeper.ReserveJobGas(env.ctx, 1, 100_000)
	require.NoError(t, err)
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 5, 1, 50_000))
	got, err = env.keeper.OptimizeGasAllocation(env.ctx, 5, types.JOB_TYPE_INFERENCE)
	require.NoError(t, err)
	require.Equal(t, uint64(85_000), got)

	// Wasteful worker gets headroom.
	_, err = env.keeper.ReserveJobGas(env.ctx, 2, 100_000)
	require.NoError(t, err)
	require.NoError(t, env.keeper.UpdateWorkerEfficiency(env.ctx, 6, 2, 200_000))
	got, err = env.keeper.OptimizeGasAllocation(env.ctx, 6, types.JOB_TYPE_INFERENCE)
	require.NoError(t, err)
	require.Equal(t, uint64(125_000), got)
}
