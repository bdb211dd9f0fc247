package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

type msgServer struct {
	Keeper *Keeper
}

// NewMsgServerImpl returns an implementation of the marketplace MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) RegisterWorker(ctx context.Context, msg *types.MsgRegisterWorker) (*types.MsgRegisterWorkerResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	addr, err := sdk.AccAddressFromBech32(msg.Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("worker address: %v", err)
	}
	if msg.Sender != msg.Address && msg.Sender != m.Keeper.authority {
		return nil, types.ErrUnauthorized.Wrapf("%s may not register worker address %s", msg.Sender, msg.Address)
	}
	if err := m.Keeper.RegisterWorker(ctx, msg.WorkerId, addr); err != nil {
		return nil, err
	}
	return &types.MsgRegisterWorkerResponse{}, nil
}

func (m msgServer) DeactivateWorker(ctx context.Context, msg *types.MsgDeactivateWorker) (*types.MsgDeactivateWorkerResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("authority: %v", err)
	}
	if err := m.Keeper.DeactivateWorker(ctx, msg.WorkerId, sender); err != nil {
		return nil, err
	}
	return &types.MsgDeactivateWorkerResponse{}, nil
}

func (m msgServer) SubmitJob(ctx context.Context, msg *types.MsgSubmitJob) (*types.MsgSubmitJobResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	client, err := sdk.AccAddressFromBech32(msg.Client)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("client: %v", err)
	}
	jobID, err := m.Keeper.SubmitJob(ctx, client, msg.Spec, msg.Payment)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitJobResponse{JobId: jobID}, nil
}

func (m msgServer) AssignJob(ctx context.Context, msg *types.MsgAssignJob) (*types.MsgAssignJobResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := m.Keeper.AssignJob(ctx, msg.Authority, msg.JobId, msg.WorkerId); err != nil {
		return nil, err
	}
	return &types.MsgAssignJobResponse{}, nil
}

func (m msgServer) SubmitResult(ctx context.Context, msg *types.MsgSubmitResult) (*types.MsgSubmitResultResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	worker, err := sdk.AccAddressFromBech32(msg.Worker)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("worker: %v", err)
	}
	if err := m.Keeper.SubmitJobResult(ctx, worker, msg.JobId, msg.ResultHash, msg.GasUsed); err != nil {
		return nil, err
	}
	return &types.MsgSubmitResultResponse{}, nil
}

func (m msgServer) DistributeRewards(ctx context.Context, msg *types.MsgDistributeRewards) (*types.MsgDistributeRewardsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := m.Keeper.DistributeRewards(ctx, msg.JobId); err != nil {
		return nil, err
	}
	return &types.MsgDistributeRewardsResponse{}, nil
}

func (m msgServer) CancelJob(ctx context.Context, msg *types.MsgCancelJob) (*types.MsgCancelJobResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	client, err := sdk.AccAddressFromBech32(msg.Client)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("client: %v", err)
	}
	if err := m.Keeper.CancelJob(ctx, client, msg.JobId); err != nil {
		return nil, err
	}
	return &types.MsgCancelJobResponse{}, nil
}

func (m msgServer) CancelExpiredJob(ctx context.Context, msg *types.MsgCancelExpiredJob) (*types.MsgCancelExpiredJobResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	cancelled, err := m.Keeper.CancelExpiredJob(ctx, msg.JobId)
	if err != nil {
		return nil, err
	}
	return &types.MsgCancelExpiredJobResponse{Cancelled: cancelled}, nil
}

func (m msgServer) UpdateReputation(ctx context.Context, msg *types.MsgUpdateReputation) (*types.MsgUpdateReputationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	applied, err := m.Keeper.UpdateReputation(ctx, msg.Sender, msg.WorkerId, msg.Delta, msg.Reason)
	if err != nil {
		return nil, err
	}
	return &types.MsgUpdateReputationResponse{Applied: applied}, nil
}

func (m msgServer) ApplyDecayBatch(ctx context.Context, msg *types.MsgApplyDecayBatch) (*types.MsgApplyDecayBatchResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	processed, err := m.Keeper.ApplyDecayBatch(ctx, msg.Authority, msg.Level, msg.Start, msg.Count)
	if err != nil {
		return nil, err
	}
	return &types.MsgApplyDecayBatchResponse{Processed: processed}, nil
}

func (m msgServer) UpdateConfig(ctx context.Context, msg *types.MsgUpdateConfig) (*types.MsgUpdateConfigResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := m.Keeper.UpdateConfig(ctx, msg.Authority, msg.Key, msg.Value); err != nil {
		return nil, err
	}
	return &types.MsgUpdateConfigResponse{}, nil
}

func (m msgServer) Pause(ctx context.Context, msg *types.MsgPause) (*types.MsgPauseResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := m.Keeper.Pause(ctx, msg.Authority); err != nil {
		return nil, err
	}
	return &types.MsgPauseResponse{}, nil
}

func (m msgServer) Unpause(ctx context.Context, msg *types.MsgUnpause) (*types.MsgUnpauseResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := m.Keeper.Unpause(ctx, msg.Authority); err != nil {
		return nil, err
	}
	return &types.MsgUnpauseResponse{}, nil
}

func (m msgServer) RegisterModel(ctx context.Context, msg *types.MsgRegisterModel) (*types.MsgRegisterModelResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	model := types.Model{
		Id:       msg.ModelId,
		Active:   msg.Active,
		BaseCost: msg.BaseCost,
	}
	if err := m.Keeper.SetModel(ctx, msg.Authority, model); err != nil {
		return nil, err
	}
	return &types.MsgRegisterModelResponse{}, nil
}
