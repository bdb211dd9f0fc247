package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
)

// RegisterLegacyAminoCodec registers the marketplace concrete message types on
// the provided LegacyAmino codec for Amino JSON serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgRegisterWorker{}, "meshnet/marketplace/MsgRegisterWorker", nil)
	cdc.RegisterConcrete(&MsgDeactivateWorker{}, "meshnet/marketplace/MsgDeactivateWorker", nil)
	cdc.RegisterConcrete(&MsgSubmitJob{}, "meshnet/marketplace/MsgSubmitJob", nil)
	cdc.RegisterConcrete(&MsgAssignJob{}, "meshnet/marketplace/MsgAssignJob", nil)
	cdc.RegisterConcrete(&MsgSubmitResult{}, "meshnet/marketplace/MsgSubmitResult", nil)
	cdc.RegisterConcrete(&MsgDistributeRewards{}, "meshnet/marketplace/MsgDistributeRewards", nil)
	cdc.RegisterConcrete(&MsgCancelJob{}, "meshnet/marketplace/MsgCancelJob", nil)
	cdc.RegisterConcrete(&MsgCancelExpiredJob{}, "meshnet/marketplace/MsgCancelExpiredJob", nil)
	cdc.RegisterConcrete(&MsgUpdateReputation{}, "meshnet/marketplace/MsgUpdateReputation", nil)
	cdc.RegisterConcrete(&MsgApplyDecayBatch{}, "meshnet/marketplace/MsgApplyDecayBatch", nil)
	cdc.RegisterConcrete(&MsgUpdateConfig{}, "meshnet/marketplace/MsgUpdateConfig", nil)
	cdc.RegisterConcrete(&MsgPause{}, "meshnet/marketplace/MsgPause", nil)
	cdc.RegisterConcrete(&MsgUnpause{}, "meshnet/marketplace/MsgUnpause", nil)
	cdc.RegisterConcrete(&MsgRegisterModel{}, "meshnet/marketplace/MsgRegisterModel", nil)
}

// RegisterInterfaces is intentionally empty: messages are hand-written JSON
// types dispatched through the keeper's MsgServer, not the proto registry.
func RegisterInterfaces(_ codectypes.InterfaceRegistry) {}
