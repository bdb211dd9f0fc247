package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

func TestRegisterWorker(t *testing.T) {
	env := setupKeeperForTest(t)

	addr := registerTestWorker(t, env, 1, "worker_one_address_")

	worker, found := env.keeper.GetWorker(env.ctx, 1)
	require.True(t, found)
	require.Equal(t, uint64(1), worker.Id)
	require.Equal(t, addr.String(), worker.Address)
	require.True(t, worker.Active)
	require.Equal(t, uint32(100), worker.SuccessRate)
	require.Equal(t, uint64(1), env.keeper.GetWorkerCount(env.ctx))

	byAddr, found := env.keeper.GetWorkerByAddress(env.ctx, addr)
	require.True(t, found)
	require.Equal(t, worker, byAddr)

	rep, found := env.keeper.GetReputation(env.ctx, 1)
	require.True(t, found)
	require.Equal(t, types.InitialReputationScore, rep.Score)
	require.Equal(t, uint32(3), rep.Level)
}

func TestRegisterWorkerRejectsPartialCollisions(t *testing.T) {
	env := setupKeeperForTest(t)

	addr := registerTestWorker(t, env, 7, "collision_worker___")

	// Identical pair is a no-op.
	require.NoError(t, env.keeper.RegisterWorker(env.ctx, 7, addr))
	require.Equal(t, uint64(1), env.keeper.GetWorkerCount(env.ctx))

	// Same id, different address.
	other := sdk.AccAddress([]byte("another_address____"))
	err := env.keeper.RegisterWorker(env.ctx, 7, other)
	require.ErrorIs(t, err, types.ErrDuplicateBinding)

	// Same address, different id.
	err = env.keeper.RegisterWorker(env.ctx, 8, addr)
	require.ErrorIs(t, err, types.ErrDuplicateBinding)

	// Neither binding was disturbed.
	worker, found := env.keeper.GetWorker(env.ctx, 7)
	require.True(t, found)
	require.Equal(t, addr.String(), worker.Address)
	_, found = env.keeper.GetWorker(env.ctx, 8)
	require.False(t, found)
}

func TestRegisterWorkerValidation(t *testing.T) {
	env := setupKeeperForTest(t)

	err := env.keeper.RegisterWorker(env.ctx, 0, sdk.AccAddress([]byte("some_address_______")))
	require.ErrorIs(t, err, types.ErrInvalidWorkerID)

	err = env.keeper.RegisterWorker(env.ctx, 1, sdk.AccAddress{})
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestDeactivateWorker(t *testing.T) {
	env := setupKeeperForTest(t)

	addr := registerTestWorker(t, env, 3, "deactivate_target__")

	// A stranger cannot deactivate.
	stranger := sdk.AccAddress([]byte("uninvolved_account_"))
	err := env.keeper.DeactivateWorker(env.ctx, 3, stranger)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// The worker itself can.
	require.NoError(t, env.keeper.DeactivateWorker(env.ctx, 3, addr))
	worker, found := env.keeper.GetWorker(env.ctx, 3)
	require.True(t, found)
	require.False(t, worker.Active)

	// Repeating is a no-op.
	require.NoError(t, env.keeper.DeactivateWorker(env.ctx, 3, addr))

	err = env.keeper.DeactivateWorker(env.ctx, 99, addr)
	require.ErrorIs(t, err, types.ErrWorkerNotFound)
}

func TestGetAllWorkers(t *testing.T) {
	env := setupKeeperForTest(t)

	registerTestWorker(t, env, 2, "list_worker_two____")
	registerTestWorker(t, env, 1, "list_worker_one____")
	registerTestWorker(t, env, 3, "list_worker_three__")

	workers := env.keeper.GetAllWorkers(env.ctx)
	require.Len(t, workers, 3)
	require.Equal(t, uint64(1), workers[0].Id)
	require.Equal(t, uint64(2), workers[1].Id)
	require.Equal(t, uint64(3), workers[2].Id)
}

func TestRegisterWorkerBlockedWhenPaused(t *testing.T) {
	env := setupKeeperForTest(t)

	require.NoError(t, env.keeper.Pause(env.ctx, env.authority))
	err := env.keeper.RegisterWorker(env.ctx, 1, sdk.AccAddress([]byte("paused_worker______")))
	require.ErrorIs(t, err, types.ErrModulePaused)

	require.NoError(t, env.keeper.Unpause(env.ctx, env.authority))
	require.NoError(t, env.keeper.RegisterWorker(env.ctx, 1, sdk.AccAddress([]byte("paused_worker______"))))
}
