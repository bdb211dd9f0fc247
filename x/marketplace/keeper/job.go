package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// Reputation deltas applied by the job lifecycle itself.
const (
	completionReputationReward = int32(10)
	expiryReputationPenalty    = int32(-25)
)

// getNextJobID allocates the next monotonically increasing job id.
func (k Keeper) getNextJobID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.NextJobIDKey)

	id := uint64(1)
	if bz != nil {
		id = types.GetUint64FromBytes(bz)
	}
	store.Set(types.NextJobIDKey, types.GetBytesFromUint64(id+1))
	return id
}

// GetJob returns the job record for the given id.
func (k Keeper) GetJob(ctx context.Context, jobID uint64) (types.Job, bool) {
	bz := k.getStore(ctx).Get(types.JobKey(jobID))
	if bz == nil {
		return types.Job{}, false
	}

	var job types.Job
	if err := unmarshalRecord(bz, &job); err != nil {
		panic(fmt.Errorf("corrupt job record %d: %w", jobID, err))
	}
	return job, true
}

// SetJob persists a job record without touching indexes.
func (k Keeper) SetJob(ctx context.Context, job types.Job) error {
	bz, err := marshalRecord(job)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.JobKey(job.Id), bz)
	return nil
}

// transitionJob validates and applies a lifecycle transition, keeping the
// per-state index in sync. The caller persists the record afterwards.
func (k Keeper) transitionJob(ctx context.Context, job *types.Job, next types.JobState) error {
	if !job.State.CanTransitionTo(next) {
		return types.ErrInvalidTransition.Wrapf("job %d: %s -> %s", job.Id, job.State, next)
	}

	store := k.getStore(ctx)
	store.Delete(types.JobByStateKey(uint32(job.State), job.Id))
	store.Set(types.JobByStateKey(uint32(next), job.Id), []byte{1})
	job.State = next
	return nil
}

// Variable-length list storage: count plus one entry per index.

func (k Keeper) setJobStringList(ctx context.Context, lenKey []byte, elemKey func(uint64, uint64) []byte, jobID uint64, items []string) {
	if len(items) == 0 {
		return
	}
	store := k.getStore(ctx)
	store.Set(lenKey, types.GetBytesFromUint64(uint64(len(items))))
	for i, item := range items {
		store.Set(elemKey(jobID, uint64(i)), []byte(item))
	}
}

func (k Keeper) getJobStringList(ctx context.Context, lenKey []byte, elemKey func(uint64, uint64) []byte, jobID uint64) []string {
	store := k.getStore(ctx)
	bz := store.Get(lenKey)
	if bz == nil {
		return nil
	}

	count := types.GetUint64FromBytes(bz)
	items := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		items = append(items, string(store.Get(elemKey(jobID, i))))
	}
	return items
}

// GetJobRequirements returns the compute requirement list for a job.
func (k Keeper) GetJobRequirements(ctx context.Context, jobID uint64) []string {
	return k.getJobStringList(ctx, types.JobRequirementLenKey(jobID), types.JobRequirementKey, jobID)
}

// GetJobMetadata returns the metadata list for a job.
func (k Keeper) GetJobMetadata(ctx context.Context, jobID uint64) []string {
	return k.getJobStringList(ctx, types.JobMetadataLenKey(jobID), types.JobMetadataKey, jobID)
}

func (k Keeper) validateJobSpec(ctx context.Context, spec types.JobSpec, payment math.Int, params types.Params, now time.Time) error {
	if !spec.JobType.Valid() {
		return types.ErrInvalidJobSpec.Wrapf("unknown job type %d", spec.JobType)
	}
	if spec.InputHash == "" {
		return types.ErrEmptyInputHash
	}
	if payment.IsNil() || !payment.IsPositive() || payment.LT(params.MinJobPayment) {
		return types.ErrPaymentTooLow.Wrapf("payment %s below minimum %s", payment, params.MinJobPayment)
	}
	if spec.MaxReward.IsNil() || !spec.MaxReward.IsPositive() {
		return types.ErrInvalidReward.Wrap("max reward must be positive")
	}
	if spec.MaxReward.GT(payment) {
		return types.ErrInvalidReward.Wrapf("max reward %s exceeds escrowed payment %s", spec.MaxReward, payment)
	}
	if !spec.Deadline.After(now) {
		return types.ErrInvalidDeadline.Wrapf("deadline %s not in the future", spec.Deadline)
	}
	if spec.Deadline.Sub(now) > time.Duration(params.MaxJobDurationSeconds)*time.Second {
		return types.ErrInvalidDeadline.Wrapf("deadline %s beyond maximum duration %ds", spec.Deadline, params.MaxJobDurationSeconds)
	}
	if spec.Model != "" {
		model, found := k.GetModel(ctx, spec.Model)
		if !found || !model.Active {
			return types.ErrModelNotRegistered.Wrapf("model %q", spec.Model)
		}
	}
	return nil
}

// SubmitJob validates a job specification, escrows the payment into the module
// account and enqueues the job. It returns the allocated job id.
func (k Keeper) SubmitJob(ctx context.Context, client sdk.AccAddress, spec types.JobSpec, payment math.Int) (uint64, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, err
	}
	if client.Empty() {
		return 0, types.ErrInvalidAddress.Wrap("client address cannot be empty")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	params := k.GetParams(ctx)
	if err := k.validateJobSpec(ctx, spec, payment, params, now); err != nil {
		return 0, err
	}

	jobID := k.getNextJobID(ctx)
	job := types.Job{
		Id:                 jobID,
		JobType:            spec.JobType,
		Model:              spec.Model,
		InputHash:          spec.InputHash,
		OutputFormat:       spec.OutputFormat,
		VerificationMethod: spec.VerificationMethod,
		MaxReward:          spec.MaxReward,
		Payment:            payment,
		Client:             client.String(),
		State:              types.JOB_STATE_QUEUED,
		SubmittedAt:        now,
		Deadline:           spec.Deadline,
	}
	if err := k.SetJob(ctx, job); err != nil {
		return 0, err
	}

	store := k.getStore(ctx)
	store.Set(types.JobByStateKey(uint32(types.JOB_STATE_QUEUED), jobID), []byte{1})
	store.Set(types.JobByClientKey(client, jobID), []byte{1})
	k.setJobStringList(ctx, types.JobRequirementLenKey(jobID), types.JobRequirementKey, jobID, spec.Requirements)
	k.setJobStringList(ctx, types.JobMetadataLenKey(jobID), types.JobMetadataKey, jobID, spec.Metadata)

	estimate, err := k.EstimateJobGas(ctx, spec.JobType, spec.Model, spec.OutputFormat)
	if err != nil {
		return 0, err
	}
	reserved, err := k.ReserveJobGas(ctx, jobID, estimate)
	if err != nil {
		return 0, err
	}

	escrow := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, payment))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, client, types.ModuleName, escrow); err != nil {
		return 0, types.ErrTransferFailed.Wrapf("escrow for job %d: %v", jobID, err)
	}

	k.incrCounter(ctx, types.TotalJobsKey)
	k.incrCounter(ctx, types.ActiveJobsKey)
	k.metrics.JobsSubmitted.Inc()
	k.metrics.ActiveJobs.Inc()

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobSubmitted,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyClient, client.String()),
		sdk.NewAttribute(types.AttributeKeyJobType, spec.JobType.String()),
		sdk.NewAttribute(types.AttributeKeyPayment, payment.String()),
		sdk.NewAttribute(types.AttributeKeyMaxReward, spec.MaxReward.String()),
		sdk.NewAttribute(types.AttributeKeyGasEstimate, fmt.Sprintf("%d", estimate)),
		sdk.NewAttribute(types.AttributeKeyGasReserved, fmt.Sprintf("%d", reserved)),
		sdk.NewAttribute(types.AttributeKeyDeadline, spec.Deadline.UTC().Format(time.RFC3339)),
	))
	return jobID, nil
}

// AssignJob hands a queued job to a registered worker. Only the authority may
// assign. The job state is committed before the worker-pool reservation hook
// runs; a failed reservation is logged and does not undo the assignment.
func (k Keeper) AssignJob(ctx context.Context, authority string, jobID, workerID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	job, found := k.GetJob(ctx, jobID)
	if !found {
		return types.ErrJobNotFound.Wrapf("job %d", jobID)
	}

	worker, found := k.GetWorker(ctx, workerID)
	if !found {
		return types.ErrWorkerNotFound.Wrapf("worker %d", workerID)
	}
	if !worker.Active {
		return types.ErrWorkerInactive.Wrapf("worker %d", workerID)
	}

	params := k.GetParams(ctx)
	if rep, ok := k.GetReputationWithDecay(ctx, workerID); ok && rep.Score < params.MinAllocationScore {
		return types.ErrWorkerInactive.Wrapf("worker %d score %d below allocation floor %d", workerID, rep.Score, params.MinAllocationScore)
	}

	if err := k.transitionJob(ctx, &job, types.JOB_STATE_PROCESSING); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	job.Worker = worker.Address
	job.WorkerId = workerID
	job.AssignedAt = &now
	if err := k.SetJob(ctx, job); err != nil {
		return err
	}

	workerAddr := sdk.MustAccAddressFromBech32(worker.Address)
	k.getStore(ctx).Set(types.JobByWorkerKey(workerAddr, jobID), []byte{1})

	reservation := job.Deadline.Sub(now)
	if reservation <= 0 {
		reservation = time.Duration(params.DefaultReservationSeconds) * time.Second
	}

	if k.workerPool != nil {
		if err := k.enterExternalCalls(ctx); err != nil {
			return err
		}
		if err := k.workerPool.ReserveWorker(ctx, workerID, jobID, reservation); err != nil {
			k.Logger(sdkCtx).Error("worker reservation failed",
				"job_id", jobID, "worker_id", workerID, "error", err)
		}
		k.exitExternalCalls(ctx)
	}

	k.metrics.JobsAssigned.Inc()
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobAssigned,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyWorkerID, fmt.Sprintf("%d", workerID)),
		sdk.NewAttribute(types.AttributeKeyWorker, worker.Address),
	))
	return nil
}

// SubmitJobResult records a completed result from the assigned worker and
// moves the job to Completed. Payment is not released here; it is either
// registered with the settlement gate or left for DistributeRewards.
func (k Keeper) SubmitJobResult(ctx context.Context, worker sdk.AccAddress, jobID uint64, resultHash string, gasUsed uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if resultHash == "" {
		return types.ErrInvalidJobSpec.Wrap("result hash cannot be empty")
	}

	job, found := k.GetJob(ctx, jobID)
	if !found {
		return types.ErrJobNotFound.Wrapf("job %d", jobID)
	}
	if job.Worker != worker.String() {
		return types.ErrNotAssignedWorker.Wrapf("%s is not assigned to job %d", worker, jobID)
	}
	if err := k.transitionJob(ctx, &job, types.JOB_STATE_COMPLETED); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	job.ResultHash = resultHash
	job.GasUsed = gasUsed
	job.CompletedAt = &now
	if err := k.SetJob(ctx, job); err != nil {
		return err
	}

	if err := k.decrCounter(ctx, types.ActiveJobsKey); err != nil {
		return err
	}
	k.incrCounter(ctx, types.CompletedJobsKey)

	if err := k.recordWorkerSuccess(ctx, job.WorkerId); err != nil {
		return err
	}
	if err := k.UpdateWorkerEfficiency(ctx, job.WorkerId, jobID, gasUsed); err != nil {
		return err
	}

	clientAddr := sdk.MustAccAddressFromBech32(job.Client)
	if err := k.RegisterJobPayment(ctx, jobID, worker, clientAddr, job.Payment, false); err != nil {
		return err
	}

	// Completion side effects run after all ledger writes. Collaborator
	// failures are logged, never fatal to the result.
	if err := k.enterExternalCalls(ctx); err != nil {
		return err
	}
	if k.workerPool != nil {
		execution := time.Duration(0)
		if job.AssignedAt != nil {
			execution = now.Sub(*job.AssignedAt)
		}
		if err := k.workerPool.RecordJobCompletion(ctx, job.WorkerId, jobID, true, execution); err != nil {
			k.Logger(sdkCtx).Error("completion hook failed", "job_id", jobID, "error", err)
		}
		if err := k.workerPool.ReleaseWorker(ctx, job.WorkerId, jobID); err != nil {
			k.Logger(sdkCtx).Error("worker release failed", "job_id", jobID, "error", err)
		}
	}
	k.exitExternalCalls(ctx)

	if rep, ok := k.GetReputation(ctx, job.WorkerId); ok {
		if err := k.applyReputationDelta(ctx, rep, completionReputationReward, types.ReasonJobCompleted); err != nil {
			return err
		}
	}

	k.metrics.JobsCompleted.Inc()
	k.metrics.ActiveJobs.Dec()
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobCompleted,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
		sdk.NewAttribute(types.AttributeKeyResultHash, resultHash),
		sdk.NewAttribute(types.AttributeKeyGasUsed, fmt.Sprintf("%d", gasUsed)),
	))
	return nil
}

func (k Keeper) recordWorkerSuccess(ctx context.Context, workerID uint64) error {
	worker, found := k.GetWorker(ctx, workerID)
	if !found {
		return types.ErrWorkerNotFound.Wrapf("worker %d", workerID)
	}

	rep, ok := k.GetReputation(ctx, workerID)
	if ok {
		total := rep.Successes + 1 + rep.Failures
		worker.SuccessRate = uint32((rep.Successes + 1) * 100 / total)
	}
	return k.SetWorker(ctx, worker)
}

// DistributeRewards releases the escrowed payment of a completed job. With a
// configured settlement gate the payment must be proof-verified first; without
// one the legacy immediate split applies. In both paths the job is marked Paid
// before any coins move.
func (k Keeper) DistributeRewards(ctx context.Context, jobID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	job, found := k.GetJob(ctx, jobID)
	if !found {
		return types.ErrJobNotFound.Wrapf("job %d", jobID)
	}
	if job.State == types.JOB_STATE_PAID {
		return types.ErrAlreadyPaid.Wrapf("job %d", jobID)
	}

	if k.verifier != nil {
		return k.distributeGated(ctx, job)
	}
	return k.distributeLegacy(ctx, job)
}

func (k Keeper) distributeGated(ctx context.Context, job types.Job) error {
	if !k.verifier.IsPaymentReady(ctx, job.Id) {
		return types.ErrPaymentNotReady.Wrapf("job %d awaiting proof verification", job.Id)
	}

	if err := k.transitionJob(ctx, &job, types.JOB_STATE_PAID); err != nil {
		return err
	}
	if err := k.SetJob(ctx, job); err != nil {
		return err
	}

	if err := k.enterExternalCalls(ctx); err != nil {
		return err
	}
	defer k.exitExternalCalls(ctx)

	if err := k.ReleaseSettlement(ctx, job.Id); err != nil {
		return err
	}
	if err := k.verifier.ReleasePayment(ctx, job.Id); err != nil {
		// Coins already moved; verifier bookkeeping lag is recoverable.
		k.Logger(sdk.UnwrapSDKContext(ctx)).Error("verifier release failed", "job_id", job.Id, "error", err)
	}
	k.metrics.SettlementGated.Inc()
	k.metrics.RewardsPaid.Inc()
	return nil
}

func (k Keeper) distributeLegacy(ctx context.Context, job types.Job) error {
	params := k.GetParams(ctx)
	if params.PlatformFeeBps > types.MaxPlatformFeeBps {
		return types.ErrFeeTooHigh.Wrapf("%d bps exceeds maximum %d", params.PlatformFeeBps, types.MaxPlatformFeeBps)
	}

	fee := job.Payment.MulRaw(int64(params.PlatformFeeBps)).QuoRaw(10000)
	workerShare := job.Payment.Sub(fee)

	if err := k.transitionJob(ctx, &job, types.JOB_STATE_PAID); err != nil {
		return err
	}
	if err := k.SetJob(ctx, job); err != nil {
		return err
	}

	if err := k.enterExternalCalls(ctx); err != nil {
		return err
	}
	defer k.exitExternalCalls(ctx)

	workerAddr := sdk.MustAccAddressFromBech32(job.Worker)
	if workerShare.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, workerShare))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, workerAddr, coins); err != nil {
			return types.ErrTransferFailed.Wrapf("worker share for job %d: %v", job.Id, err)
		}
	}
	if fee.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, fee))
		if err := k.bankKeeper.SendCoinsFromModuleToModule(ctx, types.ModuleName, authtypes.FeeCollectorName, coins); err != nil {
			return types.ErrTransferFailed.Wrapf("platform fee for job %d: %v", job.Id, err)
		}
	}

	k.metrics.RewardsPaid.Inc()
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRewardsPaid,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", job.Id)),
		sdk.NewAttribute(types.AttributeKeyWorker, job.Worker),
		sdk.NewAttribute(types.AttributeKeyWorkerShare, workerShare.String()),
		sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
	))
	return nil
}

// CancelJob lets the submitting client withdraw a job that has not been picked
// up. The full escrowed payment is refunded.
func (k Keeper) CancelJob(ctx context.Context, client sdk.AccAddress, jobID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	job, found := k.GetJob(ctx, jobID)
	if !found {
		return types.ErrJobNotFound.Wrapf("job %d", jobID)
	}
	if job.Client != client.String() {
		return types.ErrNotJobClient.Wrapf("%s did not submit job %d", client, jobID)
	}
	if job.State != types.JOB_STATE_QUEUED {
		return types.ErrJobNotCancellable.Wrapf("job %d is %s", jobID, job.State)
	}

	if err := k.transitionJob(ctx, &job, types.JOB_STATE_CANCELLED); err != nil {
		return err
	}
	if err := k.SetJob(ctx, job); err != nil {
		return err
	}
	if err := k.decrCounter(ctx, types.ActiveJobsKey); err != nil {
		return err
	}

	params := k.GetParams(ctx)
	refund := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, job.Payment))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, client, refund); err != nil {
		return types.ErrTransferFailed.Wrapf("refund for job %d: %v", jobID, err)
	}

	k.metrics.JobsCancelled.Inc()
	k.metrics.ActiveJobs.Dec()
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobCancelled,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyClient, job.Client),
		sdk.NewAttribute(types.AttributeKeyRefund, job.Payment.String()),
	))
	return nil
}

// CancelExpiredJob cancels a job whose deadline has passed and refunds the
// client. Anyone may call it; ineligible jobs are a no-op reported as
// (false, nil) so repeated sweeps stay idempotent.
func (k Keeper) CancelExpiredJob(ctx context.Context, jobID uint64) (bool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return false, err
	}

	job, found := k.GetJob(ctx, jobID)
	if !found {
		return false, types.ErrJobNotFound.Wrapf("job %d", jobID)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	if job.State.IsTerminal() || job.State == types.JOB_STATE_COMPLETED || !now.After(job.Deadline) {
		return false, nil
	}

	hadWorker := job.WorkerId != 0
	workerID := job.WorkerId

	if err := k.transitionJob(ctx, &job, types.JOB_STATE_CANCELLED); err != nil {
		return false, err
	}
	if err := k.SetJob(ctx, job); err != nil {
		return false, err
	}
	if err := k.decrCounter(ctx, types.ActiveJobsKey); err != nil {
		return false, err
	}

	params := k.GetParams(ctx)
	client := sdk.MustAccAddressFromBech32(job.Client)
	refund := sdk.NewCoins(sdk.NewCoin(params.PaymentDenom, job.Payment))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, client, refund); err != nil {
		return false, types.ErrTransferFailed.Wrapf("refund for job %d: %v", jobID, err)
	}

	if hadWorker {
		if err := k.enterExternalCalls(ctx); err != nil {
			return false, err
		}
		if k.workerPool != nil {
			if err := k.workerPool.ReleaseWorker(ctx, workerID, jobID); err != nil {
				k.Logger(sdkCtx).Error("worker release failed", "job_id", jobID, "error", err)
			}
		}
		k.exitExternalCalls(ctx)

		if rep, ok := k.GetReputation(ctx, workerID); ok {
			if err := k.applyReputationDelta(ctx, rep, expiryReputationPenalty, types.ReasonJobFailed); err != nil {
				return false, err
			}
		}
	}

	k.metrics.JobsExpired.Inc()
	k.metrics.ActiveJobs.Dec()
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobExpired,
		sdk.NewAttribute(types.AttributeKeyJobID, fmt.Sprintf("%d", jobID)),
		sdk.NewAttribute(types.AttributeKeyClient, job.Client),
		sdk.NewAttribute(types.AttributeKeyRefund, job.Payment.String()),
	))
	return true, nil
}

// CanCancelJob reports whether the given sender could cancel the job right
// now, either as its client or through the permissionless expiry path.
func (k Keeper) CanCancelJob(ctx context.Context, sender sdk.AccAddress, jobID uint64) bool {
	job, found := k.GetJob(ctx, jobID)
	if !found {
		return false
	}

	if job.Client == sender.String() && job.State == types.JOB_STATE_QUEUED {
		return true
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	expired := sdkCtx.BlockTime().After(job.Deadline)
	active := job.State == types.JOB_STATE_QUEUED || job.State == types.JOB_STATE_PROCESSING
	return expired && active
}

// IterateJobsByState walks the state index for one lifecycle state.
func (k Keeper) IterateJobsByState(ctx context.Context, state types.JobState, cb func(jobID uint64) bool) {
	store := k.getStore(ctx)
	prefix := types.JobByStateKey(uint32(state), 0)[:len(types.JobsByStatePrefix)+4]
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		jobID := types.GetUint64FromBytes(key[len(key)-8:])
		if cb(jobID) {
			break
		}
	}
}

// GetJobsByClient returns the ids of every job submitted by the client.
func (k Keeper) GetJobsByClient(ctx context.Context, client sdk.AccAddress) []uint64 {
	store := k.getStore(ctx)
	prefix := append(types.JobsByClientPrefix, client.Bytes()...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var ids []uint64
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		ids = append(ids, types.GetUint64FromBytes(key[len(key)-8:]))
	}
	return ids
}

// GetJobsByWorker returns the ids of every job assigned to the worker address.
func (k Keeper) GetJobsByWorker(ctx context.Context, worker sdk.AccAddress) []uint64 {
	store := k.getStore(ctx)
	prefix := append(types.JobsByWorkerPrefix, worker.Bytes()...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var ids []uint64
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		ids = append(ids, types.GetUint64FromBytes(key[len(key)-8:]))
	}
	return ids
}

// GetAllJobs returns every job record, ordered by id.
func (k Keeper) GetAllJobs(ctx context.Context) []types.Job {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.JobKeyPrefix)
	defer iterator.Close()

	var jobs []types.Job
	for ; iterator.Valid(); iterator.Next() {
		var job types.Job
		if err := unmarshalRecord(iterator.Value(), &job); err != nil {
			panic(fmt.Errorf("corrupt job record: %w", err))
		}
		jobs = append(jobs, job)
	}
	return jobs
}
