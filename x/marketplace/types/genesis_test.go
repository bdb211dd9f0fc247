package types

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func validGenesis() *GenesisState {
	workerAddr := sdk.AccAddress([]byte("genesis_val_worker_")).String()
	clientAddr := sdk.AccAddress([]byte("genesis_val_client_")).String()

	return &GenesisState{
		Params:    DefaultParams(),
		NextJobId: 2,
		Jobs: []GenesisJob{{
			Job: Job{
				Id:          1,
				JobType:     JOB_TYPE_INFERENCE,
				InputHash:   "0xabc",
				MaxReward:   math.NewInt(500),
				Payment:     math.NewInt(1000),
				Client:      clientAddr,
				State:       JOB_STATE_QUEUED,
				SubmittedAt: time.Now().UTC(),
				Deadline:    time.Now().UTC().Add(time.Hour),
			},
		}},
		Workers: []WorkerRecord{{
			Id:          1,
			Address:     workerAddr,
			Active:      true,
			SuccessRate: 100,
		}},
		Reputations: []ReputationScore{{
			WorkerId: 1,
			Score:    500,
			Level:    3,
		}},
	}
}

func TestDefaultGenesisValidates(t *testing.T) {
	require.NoError(t, DefaultGenesis().Validate())
}

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, validGenesis().Validate())

	cases := []struct {
		name   string
		mutate func(*GenesisState)
	}{
		{"zero next job id", func(gs *GenesisState) { gs.NextJobId = 0 }},
		{"job id above next", func(gs *GenesisState) { gs.Jobs[0].Job.Id = 7 }},
		{"duplicate job id", func(gs *GenesisState) { gs.Jobs = append(gs.Jobs, gs.Jobs[0]) }},
		{"bad client address", func(gs *GenesisState) { gs.Jobs[0].Job.Client = "garbage" }},
		{"processing without worker", func(gs *GenesisState) { gs.Jobs[0].Job.State = JOB_STATE_PROCESSING }},
		{"non-positive payment", func(gs *GenesisState) { gs.Jobs[0].Job.Payment = math.ZeroInt() }},
		{"duplicate worker id", func(gs *GenesisState) { gs.Workers = append(gs.Workers, gs.Workers[0]) }},
		{"reputation for unknown worker", func(gs *GenesisState) { gs.Reputations[0].WorkerId = 9 }},
		{"score out of bounds", func(gs *GenesisState) { gs.Reputations[0].Score = 1500 }},
		{"level disagrees with score", func(gs *GenesisState) { gs.Reputations[0].Level = 5 }},
		{"settlement for unknown job", func(gs *GenesisState) {
			gs.PendingSettlements = []PendingSettlement{{JobId: 9, Amount: math.NewInt(1)}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gs := validGenesis()
			tc.mutate(gs)
			require.Error(t, gs.Validate())
		})
	}
}
