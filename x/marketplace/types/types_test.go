package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStateTransitions(t *testing.T) {
	allowed := map[JobState][]JobState{
		JOB_STATE_QUEUED:     {JOB_STATE_PROCESSING, JOB_STATE_CANCELLED},
		JOB_STATE_PROCESSING: {JOB_STATE_COMPLETED, JOB_STATE_CANCELLED},
		JOB_STATE_COMPLETED:  {JOB_STATE_PAID},
		JOB_STATE_PAID:       {},
		JOB_STATE_CANCELLED:  {},
	}

	states := []JobState{
		JOB_STATE_QUEUED, JOB_STATE_PROCESSING, JOB_STATE_COMPLETED,
		JOB_STATE_PAID, JOB_STATE_CANCELLED,
	}
	for from, nexts := range allowed {
		permitted := make(map[JobState]bool)
		for _, next := range nexts {
			permitted[next] = true
		}
		for _, to := range states {
			require.Equal(t, permitted[to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestJobStateTerminal(t *testing.T) {
	require.False(t, JOB_STATE_QUEUED.IsTerminal())
	require.False(t, JOB_STATE_PROCESSING.IsTerminal())
	require.False(t, JOB_STATE_COMPLETED.IsTerminal())
	require.True(t, JOB_STATE_PAID.IsTerminal())
	require.True(t, JOB_STATE_CANCELLED.IsTerminal())
}

func TestJobTypeValid(t *testing.T) {
	require.True(t, JOB_TYPE_INFERENCE.Valid())
	require.True(t, JOB_TYPE_CONFIDENTIAL_EXECUTION.Valid())
	require.False(t, JobType(-1).Valid())
	require.False(t, JobType(6).Valid())
}

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score uint32
		level uint32
	}{
		{0, 1},
		{299, 1},
		{300, 2},
		{499, 2},
		{500, 3},
		{699, 3},
		{700, 4},
		{849, 4},
		{850, 5},
		{1000, 5},
	}
	for _, tc := range cases {
		require.Equal(t, tc.level, LevelForScore(tc.score), "score %d", tc.score)
	}
}
