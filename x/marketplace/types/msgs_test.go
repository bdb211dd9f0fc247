package types

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func testAddr(seed string) string {
	return sdk.AccAddress([]byte(seed)).String()
}

func validSubmitJob() *MsgSubmitJob {
	return &MsgSubmitJob{
		Client: testAddr("msg_test_client____"),
		Spec: JobSpec{
			JobType:   JOB_TYPE_INFERENCE,
			InputHash: "0xabc",
			MaxReward: math.NewInt(500),
			Deadline:  time.Now().Add(time.Hour),
		},
		Payment: math.NewInt(1000),
	}
}

func TestMsgSubmitJobValidateBasic(t *testing.T) {
	require.NoError(t, validSubmitJob().ValidateBasic())

	msg := validSubmitJob()
	msg.Client = "garbage"
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidAddress)

	msg = validSubmitJob()
	msg.Spec.InputHash = ""
	require.ErrorIs(t, msg.ValidateBasic(), ErrEmptyInputHash)

	msg = validSubmitJob()
	msg.Spec.JobType = JobType(9)
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidJobSpec)

	msg = validSubmitJob()
	msg.Payment = math.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidJobSpec)

	msg = validSubmitJob()
	msg.Spec.MaxReward = math.NewInt(2000)
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidReward)
}

func TestMsgRegisterWorkerValidateBasic(t *testing.T) {
	msg := &MsgRegisterWorker{
		Sender:   testAddr("register_sender____"),
		WorkerId: 1,
		Address:  testAddr("register_address___"),
	}
	require.NoError(t, msg.ValidateBasic())

	msg.WorkerId = 0
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidWorkerID)

	msg.WorkerId = 1
	msg.Address = "garbage"
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidAddress)
}

func TestMsgUpdateReputationValidateBasic(t *testing.T) {
	msg := &MsgUpdateReputation{
		Sender:   testAddr("reputation_sender__"),
		WorkerId: 1,
		Delta:    -50,
		Reason:   ReasonJobFailed,
	}
	require.NoError(t, msg.ValidateBasic())

	msg.Delta = 0
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidJobSpec)
}

func TestMsgApplyDecayBatchValidateBasic(t *testing.T) {
	msg := &MsgApplyDecayBatch{
		Authority: testAddr("decay_authority____"),
		Level:     3,
		Count:     10,
	}
	require.NoError(t, msg.ValidateBasic())

	msg.Level = 6
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidJobSpec)

	msg.Level = 3
	msg.Count = 0
	require.ErrorIs(t, msg.ValidateBasic(), ErrInvalidJobSpec)
}

func TestMsgUpdateConfigValidateBasic(t *testing.T) {
	msg := &MsgUpdateConfig{
		Authority: testAddr("config_authority___"),
		Key:       ConfigKeyPlatformFeeBps,
		Value:     "100",
	}
	require.NoError(t, msg.ValidateBasic())

	msg.Key = ""
	require.ErrorIs(t, msg.ValidateBasic(), ErrUnknownConfigKey)
}

func TestGetSigners(t *testing.T) {
	client := sdk.AccAddress([]byte("signer_client______"))
	msg := &MsgSubmitJob{Client: client.String()}
	require.Equal(t, []sdk.AccAddress{client}, msg.GetSigners())

	authority := sdk.AccAddress([]byte("signer_authority___"))
	pause := &MsgPause{Authority: authority.String()}
	require.Equal(t, []sdk.AccAddress{authority}, pause.GetSigners())
}
