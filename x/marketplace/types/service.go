package types

import (
	"context"
)

// MsgServer is the server API for the marketplace Msg service.
type MsgServer interface {
	RegisterWorker(context.Context, *MsgRegisterWorker) (*MsgRegisterWorkerResponse, error)
	DeactivateWorker(context.Context, *MsgDeactivateWorker) (*MsgDeactivateWorkerResponse, error)
	SubmitJob(context.Context, *MsgSubmitJob) (*MsgSubmitJobResponse, error)
	AssignJob(context.Context, *MsgAssignJob) (*MsgAssignJobResponse, error)
	SubmitResult(context.Context, *MsgSubmitResult) (*MsgSubmitResultResponse, error)
	DistributeRewards(context.Context, *MsgDistributeRewards) (*MsgDistributeRewardsResponse, error)
	CancelJob(context.Context, *MsgCancelJob) (*MsgCancelJobResponse, error)
	CancelExpiredJob(context.Context, *MsgCancelExpiredJob) (*MsgCancelExpiredJobResponse, error)
	UpdateReputation(context.Context, *MsgUpdateReputation) (*MsgUpdateReputationResponse, error)
	ApplyDecayBatch(context.Context, *MsgApplyDecayBatch) (*MsgApplyDecayBatchResponse, error)
	UpdateConfig(context.Context, *MsgUpdateConfig) (*MsgUpdateConfigResponse, error)
	Pause(context.Context, *MsgPause) (*MsgPauseResponse, error)
	Unpause(context.Context, *MsgUnpause) (*MsgUnpauseResponse, error)
	RegisterModel(context.Context, *MsgRegisterModel) (*MsgRegisterModelResponse, error)
}
