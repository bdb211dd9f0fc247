package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
)

// JobType classifies the requested compute workload.
type JobType int32

const (
	JOB_TYPE_INFERENCE JobType = iota
	JOB_TYPE_TRAINING
	JOB_TYPE_PROOF_GENERATION
	JOB_TYPE_PROOF_VERIFICATION
	JOB_TYPE_DATA_PIPELINE
	JOB_TYPE_CONFIDENTIAL_EXECUTION
)

func (t JobType) String() string {
	switch t {
	case JOB_TYPE_INFERENCE:
		return "inference"
	case JOB_TYPE_TRAINING:
		return "training"
	case JOB_TYPE_PROOF_GENERATION:
		return "proof_generation"
	case JOB_TYPE_PROOF_VERIFICATION:
		return "proof_verification"
	case JOB_TYPE_DATA_PIPELINE:
		return "data_pipeline"
	case JOB_TYPE_CONFIDENTIAL_EXECUTION:
		return "confidential_execution"
	default:
		return fmt.Sprintf("unknown(%d)", int32(t))
	}
}

// Valid reports whether t is a defined job type.
func (t JobType) Valid() bool {
	return t >= JOB_TYPE_INFERENCE && t <= JOB_TYPE_CONFIDENTIAL_EXECUTION
}

// JobState is the authoritative lifecycle state of a job.
type JobState int32

const (
	JOB_STATE_QUEUED JobState = iota
	JOB_STATE_PROCESSING
	JOB_STATE_COMPLETED
	JOB_STATE_PAID
	JOB_STATE_CANCELLED
)

func (s JobState) String() string {
	switch s {
	case JOB_STATE_QUEUED:
		return "queued"
	case JOB_STATE_PROCESSING:
		return "processing"
	case JOB_STATE_COMPLETED:
		return "completed"
	case JOB_STATE_PAID:
		return "paid"
	case JOB_STATE_CANCELLED:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// CanTransitionTo reports whether the forward-only lifecycle allows s -> next.
// Queued -> Processing -> Completed -> Paid, with Queued|Processing -> Cancelled
// as the absorbing alternate terminal.
func (s JobState) CanTransitionTo(next JobState) bool {
	switch s {
	case JOB_STATE_QUEUED:
		return next == JOB_STATE_PROCESSING || next == JOB_STATE_CANCELLED
	case JOB_STATE_PROCESSING:
		return next == JOB_STATE_COMPLETED || next == JOB_STATE_CANCELLED
	case JOB_STATE_COMPLETED:
		return next == JOB_STATE_PAID
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible from s.
func (s JobState) IsTerminal() bool {
	return s == JOB_STATE_PAID || s == JOB_STATE_CANCELLED
}

// Job is a unit of requested compute work with payment escrowed against its
// completion. Variable-length requirement and metadata lists are stored as
// count + indexed elements alongside the record, not inline.
type Job struct {
	Id                 uint64     `json:"id"`
	JobType            JobType    `json:"job_type"`
	Model              string     `json:"model,omitempty"`
	InputHash          string     `json:"input_hash"`
	OutputFormat       string     `json:"output_format,omitempty"`
	VerificationMethod string     `json:"verification_method,omitempty"`
	MaxReward          math.Int   `json:"max_reward"`
	Payment            math.Int   `json:"payment"`
	Client             string     `json:"client"`
	Worker             string     `json:"worker,omitempty"`
	WorkerId           uint64     `json:"worker_id,omitempty"`
	State              JobState   `json:"state"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	AssignedAt         *time.Time `json:"assigned_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	Deadline           time.Time  `json:"deadline"`
	ResultHash         string     `json:"result_hash,omitempty"`
	GasUsed            uint64     `json:"gas_used,omitempty"`
}

// JobSpec carries the client-supplied portion of a job submission.
type JobSpec struct {
	JobType            JobType   `json:"job_type"`
	Model              string    `json:"model,omitempty"`
	InputHash          string    `json:"input_hash"`
	OutputFormat       string    `json:"output_format,omitempty"`
	VerificationMethod string    `json:"verification_method,omitempty"`
	MaxReward          math.Int  `json:"max_reward"`
	Deadline           time.Time `json:"deadline"`
	Requirements       []string  `json:"requirements,omitempty"`
	Metadata           []string  `json:"metadata,omitempty"`
}

// WorkerRecord binds a worker id to an account address. Records are never
// deleted, only deactivated.
type WorkerRecord struct {
	Id           uint64    `json:"id"`
	Address      string    `json:"address"`
	Active       bool      `json:"active"`
	SuccessRate  uint32    `json:"success_rate"` // percent, seeded at 100
	RegisteredAt time.Time `json:"registered_at"`
}

// Reputation score bounds and level thresholds.
const (
	MinReputationScore     = uint32(0)
	MaxReputationScoreCap  = uint32(1000)
	InitialReputationScore = uint32(500)

	MinReputationLevel = uint32(1)
	MaxReputationLevel = uint32(5)
)

// LevelForScore derives the reputation tier from a bounded score.
func LevelForScore(score uint32) uint32 {
	switch {
	case score >= 850:
		return 5
	case score >= 700:
		return 4
	case score >= 500:
		return 3
	case score >= 300:
		return 2
	default:
		return 1
	}
}

// UpdateReason tags the cause of a reputation adjustment.
type UpdateReason string

const (
	ReasonJobCompleted UpdateReason = "job_completed"
	ReasonJobFailed    UpdateReason = "job_failed"
	ReasonDisputed     UpdateReason = "disputed"
	ReasonSlashed      UpdateReason = "slashed"
	ReasonDecay        UpdateReason = "inactivity_decay"
)

// ReputationScore is the bounded trust record per worker. LevelIndex is the
// worker's own slot in its level bucket and must stay in sync across swaps.
type ReputationScore struct {
	WorkerId      uint64    `json:"worker_id"`
	Score         uint32    `json:"score"`
	Level         uint32    `json:"level"`
	LevelIndex    uint64    `json:"level_index"`
	JobsCompleted uint64    `json:"jobs_completed"`
	Successes     uint64    `json:"successes"`
	Failures      uint64    `json:"failures"`
	Disputes      uint64    `json:"disputes"`
	Slashes       uint64    `json:"slashes"`
	LastUpdated   time.Time `json:"last_updated"`
}

// GasProfile tracks the estimated, reserved and actual compute cost of a job.
type GasProfile struct {
	JobId     uint64 `json:"job_id"`
	Estimated uint64 `json:"estimated"`
	Reserved  uint64 `json:"reserved"`
	Actual    uint64 `json:"actual,omitempty"`
}

// Neutral efficiency in basis points; 10000 means actual usage matched the
// estimate exactly.
const NeutralEfficiencyBps = uint32(10000)

// WorkerEfficiency is the 80/20 weighted moving average of per-job gas
// efficiency ratios, in basis points.
type WorkerEfficiency struct {
	WorkerId uint64 `json:"worker_id"`
	Bps      uint32 `json:"bps"`
	Jobs     uint64 `json:"jobs"`
}

// Model is an admin-registered model reference with an optional base gas cost
// override (zero means unset, fall back to the per-type default).
type Model struct {
	Id       string `json:"id"`
	Active   bool   `json:"active"`
	BaseCost uint64 `json:"base_cost,omitempty"`
}

// PendingSettlement is the transient proof-gated payment record for a
// completed job; it is consumed exactly once by release or refund.
type PendingSettlement struct {
	JobId          uint64    `json:"job_id"`
	Worker         string    `json:"worker"`
	Client         string    `json:"client"`
	Amount         math.Int  `json:"amount"`
	PrivacyEnabled bool      `json:"privacy_enabled"`
	RegisteredAt   time.Time `json:"registered_at"`
	Consumed       bool      `json:"consumed"`
}
