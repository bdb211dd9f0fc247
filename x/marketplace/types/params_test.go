package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"empty denom", func(p *Params) { p.PaymentDenom = "" }},
		{"fee above cap", func(p *Params) { p.PlatformFeeBps = 1001 }},
		{"negative min payment", func(p *Params) { p.MinJobPayment = math.NewInt(-1) }},
		{"zero max duration", func(p *Params) { p.MaxJobDurationSeconds = 0 }},
		{"negative dispute fee", func(p *Params) { p.DisputeFee = math.NewInt(-1) }},
		{"allocation floor above score bound", func(p *Params) { p.MinAllocationScore = 1001 }},
		{"negative cooldown", func(p *Params) { p.ReputationCooldownSeconds = -1 }},
		{"zero decay period", func(p *Params) { p.DecayPeriodSeconds = 0 }},
		{"zero decay batch", func(p *Params) { p.DecayBatchSize = 0 }},
		{"zero reservation", func(p *Params) { p.DefaultReservationSeconds = 0 }},
		{"inverted efficiency thresholds", func(p *Params) { p.LowEfficiencyBps = p.HighEfficiencyBps }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)
			require.Error(t, params.Validate())
		})
	}
}
