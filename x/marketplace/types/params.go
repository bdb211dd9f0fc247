package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// MaxPlatformFeeBps caps the configurable platform fee at 10%.
const MaxPlatformFeeBps = uint32(1000)

// Recognized UpdateConfig keys.
const (
	ConfigKeyPlatformFeeBps     = "platform_fee_bps"
	ConfigKeyMinJobPayment      = "min_job_payment"
	ConfigKeyMaxJobDuration     = "max_job_duration_seconds"
	ConfigKeyDisputeFee         = "dispute_fee"
	ConfigKeyMinAllocationScore = "min_allocation_score"
)

// Params holds the marketplace module parameters.
type Params struct {
	// PaymentDenom is the escrow denomination.
	PaymentDenom string `json:"payment_denom"`
	// PlatformFeeBps is the legacy-path fee in basis points, capped at 1000.
	PlatformFeeBps uint32 `json:"platform_fee_bps"`
	// MinJobPayment is the minimum escrowed payment for a submission.
	MinJobPayment math.Int `json:"min_job_payment"`
	// MaxJobDurationSeconds bounds how far out a deadline may be set.
	MaxJobDurationSeconds int64 `json:"max_job_duration_seconds"`
	// DisputeFee is charged when a dispute is opened against a result.
	DisputeFee math.Int `json:"dispute_fee"`
	// MinAllocationScore is the reputation floor for job eligibility.
	MinAllocationScore uint32 `json:"min_allocation_score"`
	// WorkerPoolAddress, when set, may call reputation updates directly.
	WorkerPoolAddress string `json:"worker_pool_address,omitempty"`

	// ReputationCooldownSeconds rate-limits non-authority reputation updates.
	ReputationCooldownSeconds int64 `json:"reputation_cooldown_seconds"`
	// DecayPeriodSeconds is the inactivity window that costs one decay step.
	DecayPeriodSeconds int64 `json:"decay_period_seconds"`
	// DecayPointsPerPeriod is deducted per elapsed whole period.
	DecayPointsPerPeriod uint32 `json:"decay_points_per_period"`
	// MaxDecayPeriods caps the cumulative inactivity penalty.
	MaxDecayPeriods uint32 `json:"max_decay_periods"`
	// DecayBatchSize caps one ApplyDecayBatch call.
	DecayBatchSize uint32 `json:"decay_batch_size"`

	// DefaultReservationSeconds is the worker-pool reservation fallback when a
	// job's deadline has already elapsed at assignment time.
	DefaultReservationSeconds int64 `json:"default_reservation_seconds"`
	// HighEfficiencyBps and LowEfficiencyBps bound the gas allocation tuning.
	HighEfficiencyBps uint32 `json:"high_efficiency_bps"`
	LowEfficiencyBps  uint32 `json:"low_efficiency_bps"`
	// ExpiredSweepPerBlock caps EndBlocker expiry processing per block.
	ExpiredSweepPerBlock uint32 `json:"expired_sweep_per_block"`
}

// DefaultParams returns default marketplace parameters.
func DefaultParams() Params {
	return Params{
		PaymentDenom:              "umesh",
		PlatformFeeBps:            250, // 2.5%
		MinJobPayment:             math.NewInt(100),
		MaxJobDurationSeconds:     30 * 24 * 3600, // 30 days
		DisputeFee:                math.NewInt(1000),
		MinAllocationScore:        200,
		ReputationCooldownSeconds: 60,
		DecayPeriodSeconds:        7 * 24 * 3600, // one week of silence per step
		DecayPointsPerPeriod:      10,
		MaxDecayPeriods:           20,
		DecayBatchSize:            100,
		DefaultReservationSeconds: 3600,
		HighEfficiencyBps:         11000,
		LowEfficiencyBps:          9000,
		ExpiredSweepPerBlock:      25,
	}
}

// Validate performs basic sanity checks on the parameter set.
func (p Params) Validate() error {
	if p.PaymentDenom == "" {
		return fmt.Errorf("payment denom cannot be empty")
	}
	if p.PlatformFeeBps > MaxPlatformFeeBps {
		return fmt.Errorf("platform fee %d bps exceeds maximum %d", p.PlatformFeeBps, MaxPlatformFeeBps)
	}
	if p.MinJobPayment.IsNil() || p.MinJobPayment.IsNegative() {
		return fmt.Errorf("minimum job payment must be non-negative")
	}
	if p.MaxJobDurationSeconds <= 0 {
		return fmt.Errorf("max job duration must be positive")
	}
	if p.DisputeFee.IsNil() || p.DisputeFee.IsNegative() {
		return fmt.Errorf("dispute fee must be non-negative")
	}
	if p.MinAllocationScore > MaxReputationScoreCap {
		return fmt.Errorf("min allocation score %d exceeds score bound %d", p.MinAllocationScore, MaxReputationScoreCap)
	}
	if p.ReputationCooldownSeconds < 0 {
		return fmt.Errorf("reputation cooldown must be non-negative")
	}
	if p.DecayPeriodSeconds <= 0 {
		return fmt.Errorf("decay period must be positive")
	}
	if p.DecayBatchSize == 0 {
		return fmt.Errorf("decay batch size must be positive")
	}
	if p.DefaultReservationSeconds <= 0 {
		return fmt.Errorf("default reservation duration must be positive")
	}
	if p.LowEfficiencyBps >= p.HighEfficiencyBps {
		return fmt.Errorf("low efficiency threshold %d must be below high threshold %d", p.LowEfficiencyBps, p.HighEfficiencyBps)
	}
	return nil
}
