package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisJob couples a job record with its variable-length lists, which live
// outside the record in state.
type GenesisJob struct {
	Job          Job      `json:"job"`
	Requirements []string `json:"requirements,omitempty"`
	Metadata     []string `json:"metadata,omitempty"`
}

// GenesisState is the full exported state of the marketplace module. Level
// buckets and global counters are derived and rebuilt on init.
type GenesisState struct {
	Params             Params              `json:"params"`
	NextJobId          uint64              `json:"next_job_id"`
	Paused             bool                `json:"paused"`
	Jobs               []GenesisJob        `json:"jobs,omitempty"`
	Workers            []WorkerRecord      `json:"workers,omitempty"`
	Reputations        []ReputationScore   `json:"reputations,omitempty"`
	Efficiencies       []WorkerEfficiency  `json:"efficiencies,omitempty"`
	GasProfiles        []GasProfile        `json:"gas_profiles,omitempty"`
	Models             []Model             `json:"models,omitempty"`
	PendingSettlements []PendingSettlement `json:"pending_settlements,omitempty"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:    DefaultParams(),
		NextJobId: 1,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if gs.NextJobId == 0 {
		return fmt.Errorf("next job id cannot be zero")
	}

	seenJobs := make(map[uint64]bool)
	for i, gj := range gs.Jobs {
		job := gj.Job
		if job.Id == 0 {
			return fmt.Errorf("job %d: id cannot be zero", i)
		}
		if job.Id >= gs.NextJobId {
			return fmt.Errorf("job %d: id %d not below next job id %d", i, job.Id, gs.NextJobId)
		}
		if seenJobs[job.Id] {
			return fmt.Errorf("job %d: duplicate job id %d", i, job.Id)
		}
		seenJobs[job.Id] = true

		if _, err := sdk.AccAddressFromBech32(job.Client); err != nil {
			return fmt.Errorf("job %d (id=%d): invalid client address %s: %w", i, job.Id, job.Client, err)
		}
		if job.Worker != "" {
			if _, err := sdk.AccAddressFromBech32(job.Worker); err != nil {
				return fmt.Errorf("job %d (id=%d): invalid worker address %s: %w", i, job.Id, job.Worker, err)
			}
		}
		if !job.JobType.Valid() {
			return fmt.Errorf("job %d (id=%d): unknown job type %d", i, job.Id, job.JobType)
		}
		if job.Payment.IsNil() || !job.Payment.IsPositive() {
			return fmt.Errorf("job %d (id=%d): payment must be positive", i, job.Id)
		}
		if job.MaxReward.IsNil() || !job.MaxReward.IsPositive() || job.MaxReward.GT(job.Payment) {
			return fmt.Errorf("job %d (id=%d): max reward must be positive and not exceed payment", i, job.Id)
		}
		if job.State < JOB_STATE_QUEUED || job.State > JOB_STATE_CANCELLED {
			return fmt.Errorf("job %d (id=%d): invalid state %d", i, job.Id, job.State)
		}
		if job.State != JOB_STATE_QUEUED && job.Worker == "" {
			return fmt.Errorf("job %d (id=%d): state %s requires an assigned worker", i, job.Id, job.State)
		}
	}

	seenWorkers := make(map[uint64]bool)
	seenAddrs := make(map[string]bool)
	for i, w := range gs.Workers {
		if w.Id == 0 {
			return fmt.Errorf("worker %d: id cannot be zero", i)
		}
		if seenWorkers[w.Id] {
			return fmt.Errorf("worker %d: duplicate worker id %d", i, w.Id)
		}
		seenWorkers[w.Id] = true
		if _, err := sdk.AccAddressFromBech32(w.Address); err != nil {
			return fmt.Errorf("worker %d (id=%d): invalid address %s: %w", i, w.Id, w.Address, err)
		}
		if seenAddrs[w.Address] {
			return fmt.Errorf("worker %d (id=%d): address %s bound twice", i, w.Id, w.Address)
		}
		seenAddrs[w.Address] = true
	}

	for i, rep := range gs.Reputations {
		if !seenWorkers[rep.WorkerId] {
			return fmt.Errorf("reputation %d: unknown worker id %d", i, rep.WorkerId)
		}
		if rep.Score > MaxReputationScoreCap {
			return fmt.Errorf("reputation %d (worker=%d): score %d out of bounds", i, rep.WorkerId, rep.Score)
		}
		if rep.Level != LevelForScore(rep.Score) {
			return fmt.Errorf("reputation %d (worker=%d): level %d inconsistent with score %d", i, rep.WorkerId, rep.Level, rep.Score)
		}
	}

	for i, ps := range gs.PendingSettlements {
		if !seenJobs[ps.JobId] {
			return fmt.Errorf("pending settlement %d: unknown job id %d", i, ps.JobId)
		}
		if ps.Amount.IsNil() || !ps.Amount.IsPositive() {
			return fmt.Errorf("pending settlement %d (job=%d): amount must be positive", i, ps.JobId)
		}
	}

	return nil
}
