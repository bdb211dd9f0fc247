package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgRegisterWorker    = "register_worker"
	TypeMsgDeactivateWorker  = "deactivate_worker"
	TypeMsgSubmitJob         = "submit_job"
	TypeMsgAssignJob         = "assign_job"
	TypeMsgSubmitResult      = "submit_result"
	TypeMsgDistributeRewards = "distribute_rewards"
	TypeMsgCancelJob         = "cancel_job"
	TypeMsgCancelExpiredJob  = "cancel_expired_job"
	TypeMsgUpdateReputation  = "update_reputation"
	TypeMsgApplyDecayBatch   = "apply_decay_batch"
	TypeMsgUpdateConfig      = "update_config"
	TypeMsgPause             = "pause"
	TypeMsgUnpause           = "unpause"
	TypeMsgRegisterModel     = "register_model"
)

// MsgRegisterWorker binds a worker id to an account address.
type MsgRegisterWorker struct {
	Sender   string `json:"sender"`
	WorkerId uint64 `json:"worker_id"`
	Address  string `json:"address"`
}

// MsgRegisterWorkerResponse is the response for MsgRegisterWorker.
type MsgRegisterWorkerResponse struct{}

// MsgDeactivateWorker flips a worker's active flag off.
type MsgDeactivateWorker struct {
	Authority string `json:"authority"`
	WorkerId  uint64 `json:"worker_id"`
}

// MsgDeactivateWorkerResponse is the response for MsgDeactivateWorker.
type MsgDeactivateWorkerResponse struct{}

// MsgSubmitJob submits a new job and escrows its payment.
type MsgSubmitJob struct {
	Client  string   `json:"client"`
	Spec    JobSpec  `json:"spec"`
	Payment math.Int `json:"payment"`
}

// MsgSubmitJobResponse carries the allocated job id.
type MsgSubmitJobResponse struct {
	JobId uint64 `json:"job_id"`
}

// MsgAssignJob assigns a queued job to a registered worker.
type MsgAssignJob struct {
	Authority string `json:"authority"`
	JobId     uint64 `json:"job_id"`
	WorkerId  uint64 `json:"worker_id"`
}

// MsgAssignJobResponse is the response for MsgAssignJob.
type MsgAssignJobResponse struct{}

// MsgSubmitResult records an execution result for a processing job.
type MsgSubmitResult struct {
	Worker     string `json:"worker"`
	JobId      uint64 `json:"job_id"`
	ResultHash string `json:"result_hash"`
	GasUsed    uint64 `json:"gas_used"`
}

// MsgSubmitResultResponse is the response for MsgSubmitResult.
type MsgSubmitResultResponse struct{}

// MsgDistributeRewards releases payment for a completed job.
type MsgDistributeRewards struct {
	Sender string `json:"sender"`
	JobId  uint64 `json:"job_id"`
}

// MsgDistributeRewardsResponse is the response for MsgDistributeRewards.
type MsgDistributeRewardsResponse struct{}

// MsgCancelJob is the client-initiated cancellation of a queued job.
type MsgCancelJob struct {
	Client string `json:"client"`
	JobId  uint64 `json:"job_id"`
}

// MsgCancelJobResponse is the response for MsgCancelJob.
type MsgCancelJobResponse struct{}

// MsgCancelExpiredJob is the permissionless keeper call expiring a stale job.
type MsgCancelExpiredJob struct {
	Sender string `json:"sender"`
	JobId  uint64 `json:"job_id"`
}

// MsgCancelExpiredJobResponse reports whether the job was actually expired.
type MsgCancelExpiredJobResponse struct {
	Cancelled bool `json:"cancelled"`
}

// MsgUpdateReputation adjusts a worker's reputation score.
type MsgUpdateReputation struct {
	Sender   string       `json:"sender"`
	WorkerId uint64       `json:"worker_id"`
	Delta    int32        `json:"delta"`
	Reason   UpdateReason `json:"reason"`
	JobId    uint64       `json:"job_id,omitempty"`
}

// MsgUpdateReputationResponse reports whether the update was applied.
type MsgUpdateReputationResponse struct {
	Applied bool `json:"applied"`
}

// MsgApplyDecayBatch applies inactivity decay to a bounded slice of one level
// bucket.
type MsgApplyDecayBatch struct {
	Authority string `json:"authority"`
	Level     uint32 `json:"level"`
	Start     uint64 `json:"start"`
	Count     uint32 `json:"count"`
}

// MsgApplyDecayBatchResponse reports how many workers were decayed.
type MsgApplyDecayBatchResponse struct {
	Processed uint32 `json:"processed"`
}

// MsgUpdateConfig sets one recognized configuration key.
type MsgUpdateConfig struct {
	Authority string `json:"authority"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// MsgUpdateConfigResponse is the response for MsgUpdateConfig.
type MsgUpdateConfigResponse struct{}

// MsgPause halts all mutating entry points except views.
type MsgPause struct {
	Authority string `json:"authority"`
}

// MsgPauseResponse is the response for MsgPause.
type MsgPauseResponse struct{}

// MsgUnpause resumes mutating entry points.
type MsgUnpause struct {
	Authority string `json:"authority"`
}

// MsgUnpauseResponse is the response for MsgUnpause.
type MsgUnpauseResponse struct{}

// MsgRegisterModel registers or updates a model reference and its optional
// base gas cost override.
type MsgRegisterModel struct {
	Authority string `json:"authority"`
	ModelId   string `json:"model_id"`
	Active    bool   `json:"active"`
	BaseCost  uint64 `json:"base_cost,omitempty"`
}

// MsgRegisterModelResponse is the response for MsgRegisterModel.
type MsgRegisterModelResponse struct{}

var (
	_ sdk.Msg = &MsgRegisterWorker{}
	_ sdk.Msg = &MsgDeactivateWorker{}
	_ sdk.Msg = &MsgSubmitJob{}
	_ sdk.Msg = &MsgAssignJob{}
	_ sdk.Msg = &MsgSubmitResult{}
	_ sdk.Msg = &MsgDistributeRewards{}
	_ sdk.Msg = &MsgCancelJob{}
	_ sdk.Msg = &MsgCancelExpiredJob{}
	_ sdk.Msg = &MsgUpdateReputation{}
	_ sdk.Msg = &MsgApplyDecayBatch{}
	_ sdk.Msg = &MsgUpdateConfig{}
	_ sdk.Msg = &MsgPause{}
	_ sdk.Msg = &MsgUnpause{}
	_ sdk.Msg = &MsgRegisterModel{}
)

// ValidateBasic performs stateless validation of MsgRegisterWorker.
func (msg *MsgRegisterWorker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrInvalidAddress.Wrapf("invalid sender: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}
	if msg.WorkerId == 0 {
		return ErrInvalidWorkerID.Wrap("worker id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgRegisterWorker.
func (msg *MsgRegisterWorker) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// ValidateBasic performs stateless validation of MsgDeactivateWorker.
func (msg *MsgDeactivateWorker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	if msg.WorkerId == 0 {
		return ErrInvalidWorkerID.Wrap("worker id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgDeactivateWorker.
func (msg *MsgDeactivateWorker) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgSubmitJob.
func (msg *MsgSubmitJob) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Client); err != nil {
		return ErrInvalidAddress.Wrapf("invalid client: %v", err)
	}
	if !msg.Spec.JobType.Valid() {
		return ErrInvalidJobSpec.Wrapf("unknown job type %d", msg.Spec.JobType)
	}
	if msg.Spec.InputHash == "" {
		return ErrEmptyInputHash
	}
	if msg.Payment.IsNil() || !msg.Payment.IsPositive() {
		return ErrInvalidJobSpec.Wrap("payment must be positive")
	}
	if msg.Spec.MaxReward.IsNil() || !msg.Spec.MaxReward.IsPositive() {
		return ErrInvalidReward.Wrap("max reward must be positive")
	}
	if msg.Spec.MaxReward.GT(msg.Payment) {
		return ErrInvalidReward.Wrapf("max reward %s exceeds payment %s", msg.Spec.MaxReward, msg.Payment)
	}
	return nil
}

// GetSigners returns the expected signers for MsgSubmitJob.
func (msg *MsgSubmitJob) GetSigners() []sdk.AccAddress {
	client, _ := sdk.AccAddressFromBech32(msg.Client)
	return []sdk.AccAddress{client}
}

// ValidateBasic performs stateless validation of MsgAssignJob.
func (msg *MsgAssignJob) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	if msg.JobId == 0 {
		return ErrInvalidJobSpec.Wrap("job id must be non-zero")
	}
	if msg.WorkerId == 0 {
		return ErrInvalidWorkerID.Wrap("worker id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgAssignJob.
func (msg *MsgAssignJob) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgSubmitResult.
func (msg *MsgSubmitResult) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Worker); err != nil {
		return ErrInvalidAddress.Wrapf("invalid worker: %v", err)
	}
	if msg.JobId == 0 {
		return ErrInvalidJobSpec.Wrap("job id must be non-zero")
	}
	if msg.ResultHash == "" {
		return ErrInvalidJobSpec.Wrap("result hash cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgSubmitResult.
func (msg *MsgSubmitResult) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

// ValidateBasic performs stateless validation of MsgDistributeRewards.
func (msg *MsgDistributeRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrInvalidAddress.Wrapf("invalid sender: %v", err)
	}
	if msg.JobId == 0 {
		return ErrInvalidJobSpec.Wrap("job id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgDistributeRewards.
func (msg *MsgDistributeRewards) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// ValidateBasic performs stateless validation of MsgCancelJob.
func (msg *MsgCancelJob) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Client); err != nil {
		return ErrInvalidAddress.Wrapf("invalid client: %v", err)
	}
	if msg.JobId == 0 {
		return ErrInvalidJobSpec.Wrap("job id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgCancelJob.
func (msg *MsgCancelJob) GetSigners() []sdk.AccAddress {
	client, _ := sdk.AccAddressFromBech32(msg.Client)
	return []sdk.AccAddress{client}
}

// ValidateBasic performs stateless validation of MsgCancelExpiredJob.
func (msg *MsgCancelExpiredJob) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrInvalidAddress.Wrapf("invalid sender: %v", err)
	}
	if msg.JobId == 0 {
		return ErrInvalidJobSpec.Wrap("job id must be non-zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgCancelExpiredJob.
func (msg *MsgCancelExpiredJob) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// ValidateBasic performs stateless validation of MsgUpdateReputation.
func (msg *MsgUpdateReputation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrInvalidAddress.Wrapf("invalid sender: %v", err)
	}
	if msg.WorkerId == 0 {
		return ErrInvalidWorkerID.Wrap("worker id must be non-zero")
	}
	if msg.Delta == 0 {
		return ErrInvalidJobSpec.Wrap("delta cannot be zero")
	}
	return nil
}

// GetSigners returns the expected signers for MsgUpdateReputation.
func (msg *MsgUpdateReputation) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// ValidateBasic performs stateless validation of MsgApplyDecayBatch.
func (msg *MsgApplyDecayBatch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	if msg.Level < MinReputationLevel || msg.Level > MaxReputationLevel {
		return ErrInvalidJobSpec.Wrapf("level %d out of range [%d,%d]", msg.Level, MinReputationLevel, MaxReputationLevel)
	}
	if msg.Count == 0 {
		return ErrInvalidJobSpec.Wrap("count must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgApplyDecayBatch.
func (msg *MsgApplyDecayBatch) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgUpdateConfig.
func (msg *MsgUpdateConfig) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	if msg.Key == "" || msg.Value == "" {
		return ErrUnknownConfigKey.Wrap("key and value cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgUpdateConfig.
func (msg *MsgUpdateConfig) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgPause.
func (msg *MsgPause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgPause.
func (msg *MsgPause) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgUnpause.
func (msg *MsgUnpause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgUnpause.
func (msg *MsgUnpause) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgRegisterModel.
func (msg *MsgRegisterModel) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority: %v", err)
	}
	if msg.ModelId == "" {
		return ErrInvalidJobSpec.Wrap("model id cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgRegisterModel.
func (msg *MsgRegisterModel) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// gogoproto message stubs so the hand-written messages satisfy sdk.Msg without
// generated code; state is persisted as JSON, not protobuf.

func (msg *MsgRegisterWorker) Reset()         { *msg = MsgRegisterWorker{} }
func (msg *MsgRegisterWorker) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgRegisterWorker) ProtoMessage()  {}

func (msg *MsgDeactivateWorker) Reset()         { *msg = MsgDeactivateWorker{} }
func (msg *MsgDeactivateWorker) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgDeactivateWorker) ProtoMessage()  {}

func (msg *MsgSubmitJob) Reset()         { *msg = MsgSubmitJob{} }
func (msg *MsgSubmitJob) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSubmitJob) ProtoMessage()  {}

func (msg *MsgAssignJob) Reset()         { *msg = MsgAssignJob{} }
func (msg *MsgAssignJob) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgAssignJob) ProtoMessage()  {}

func (msg *MsgSubmitResult) Reset()         { *msg = MsgSubmitResult{} }
func (msg *MsgSubmitResult) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSubmitResult) ProtoMessage()  {}

func (msg *MsgDistributeRewards) Reset()         { *msg = MsgDistributeRewards{} }
func (msg *MsgDistributeRewards) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgDistributeRewards) ProtoMessage()  {}

func (msg *MsgCancelJob) Reset()         { *msg = MsgCancelJob{} }
func (msg *MsgCancelJob) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgCancelJob) ProtoMessage()  {}

func (msg *MsgCancelExpiredJob) Reset()         { *msg = MsgCancelExpiredJob{} }
func (msg *MsgCancelExpiredJob) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgCancelExpiredJob) ProtoMessage()  {}

func (msg *MsgUpdateReputation) Reset()         { *msg = MsgUpdateReputation{} }
func (msg *MsgUpdateReputation) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgUpdateReputation) ProtoMessage()  {}

func (msg *MsgApplyDecayBatch) Reset()         { *msg = MsgApplyDecayBatch{} }
func (msg *MsgApplyDecayBatch) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgApplyDecayBatch) ProtoMessage()  {}

func (msg *MsgUpdateConfig) Reset()         { *msg = MsgUpdateConfig{} }
func (msg *MsgUpdateConfig) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgUpdateConfig) ProtoMessage()  {}

func (msg *MsgPause) Reset()         { *msg = MsgPause{} }
func (msg *MsgPause) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgPause) ProtoMessage()  {}

func (msg *MsgUnpause) Reset()         { *msg = MsgUnpause{} }
func (msg *MsgUnpause) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgUnpause) ProtoMessage()  {}

func (msg *MsgRegisterModel) Reset()         { *msg = MsgRegisterModel{} }
func (msg *MsgRegisterModel) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgRegisterModel) ProtoMessage()  {}
