package types

// Event types for the marketplace module.
// All event types use lowercase with underscore separator (module_action format)
const (
	EventTypeJobSubmitted = "marketplace_job_submitted"
	EventTypeJobAssigned  = "marketplace_job_assigned"
	EventTypeJobCompleted = "marketplace_job_completed"
	EventTypeJobCancelled = "marketplace_job_cancelled"
	EventTypeJobExpired   = "marketplace_job_expired"
	EventTypeRewardsPaid  = "marketplace_rewards_paid"

	EventTypeWorkerRegistered  = "marketplace_worker_registered"
	EventTypeWorkerDeactivated = "marketplace_worker_deactivated"

	EventTypeReputationUpdated = "marketplace_reputation_updated"
	EventTypeReputationDecayed = "marketplace_reputation_decayed"

	EventTypeSettlementRegistered = "marketplace_settlement_registered"
	EventTypeSettlementReleased   = "marketplace_settlement_released"

	EventTypeConfigUpdated   = "marketplace_config_updated"
	EventTypePaused          = "marketplace_paused"
	EventTypeUnpaused        = "marketplace_unpaused"
	EventTypeModelRegistered = "marketplace_model_registered"
)

// Event attribute keys.
const (
	AttributeKeyJobID       = "job_id"
	AttributeKeyClient      = "client"
	AttributeKeyWorker      = "worker"
	AttributeKeyWorkerID    = "worker_id"
	AttributeKeyJobType     = "job_type"
	AttributeKeyState       = "state"
	AttributeKeyPayment     = "payment"
	AttributeKeyMaxReward   = "max_reward"
	AttributeKeyRefund      = "refund"
	AttributeKeyFee         = "fee"
	AttributeKeyWorkerShare = "worker_share"
	AttributeKeyResultHash  = "result_hash"
	AttributeKeyGasEstimate = "gas_estimate"
	AttributeKeyGasReserved = "gas_reserved"
	AttributeKeyGasUsed     = "gas_used"
	AttributeKeyScore       = "score"
	AttributeKeyLevel       = "level"
	AttributeKeyDelta       = "delta"
	AttributeKeyReason      = "reason"
	AttributeKeyModel       = "model"
	AttributeKeyConfigKey   = "key"
	AttributeKeyConfigValue = "value"
	AttributeKeyAmount      = "amount"
	AttributeKeyDeadline    = "deadline"
)
