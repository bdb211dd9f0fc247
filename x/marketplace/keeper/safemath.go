package keeper

import (
	"math"

	"github.com/meshnet-chain/meshnet/x/marketplace/types"
)

// safeAddUint64 adds two uint64 values, aborting on overflow.
func safeAddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, types.ErrAmountOverflow.Wrapf("%d + %d overflows uint64", a, b)
	}
	return a + b, nil
}

// safeMulUint64 multiplies two uint64 values, aborting on overflow.
func safeMulUint64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, types.ErrAmountOverflow.Wrapf("%d * %d overflows uint64", a, b)
	}
	return a * b, nil
}

// applyScoreDelta shifts a reputation score by a signed delta, saturating at
// the [0, 1000] bounds instead of wrapping.
func applyScoreDelta(score uint32, delta int32) uint32 {
	if delta >= 0 {
		next := uint64(score) + uint64(delta)
		if next > uint64(types.MaxReputationScoreCap) {
			return types.MaxReputationScoreCap
		}
		return uint32(next)
	}

	drop := uint32(-int64(delta))
	if drop >= score {
		return types.MinReputationScore
	}
	return score - drop
}

// ceilMulBps multiplies a gas amount by a basis-point factor, rounding up.
func ceilMulBps(amount uint64, bps uint64) (uint64, error) {
	prod, err := safeMulUint64(amount, bps)
	if err != nil {
		return 0, err
	}
	return (prod + 9999) / 10000, nil
}
