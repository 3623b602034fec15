package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricing/internal/option"
)

func TestScheduleSnapsToNearestStep(t *testing.T) {
	early, atMaturity, err := mapScheduleToSteps([]float64{0.5}, 1.0, 200)
	require.NoError(t, err)
	assert.False(t, atMaturity)
	assert.Equal(t, map[int]bool{100: true}, early)
}

func TestScheduleMaturityTimeMarksTerminalExercise(t *testing.T) {
	early, atMaturity, err := mapScheduleToSteps([]float64{1.0}, 1.0, 4)
	require.NoError(t, err)
	assert.True(t, atMaturity)
	assert.Empty(t, early)
}

// Two distinct dates at a coarse resolution collapse to one exercise right.
func TestScheduleAliasesDatesAtCoarseResolution(t *testing.T) {
	early, atMaturity, err := mapScheduleToSteps([]float64{0.3, 0.4}, 1.0, 2)
	require.NoError(t, err)
	assert.False(t, atMaturity)
	assert.Equal(t, map[int]bool{1: true}, early)
}

// A date closer to now than to the first step cannot be represented and is
// dropped.
func TestScheduleDropsDateRoundingToStepZero(t *testing.T) {
	early, atMaturity, err := mapScheduleToSteps([]float64{0.1}, 1.0, 4)
	require.NoError(t, err)
	assert.False(t, atMaturity)
	assert.Empty(t, early)
}

func TestScheduleRejectsTimesOutsideRange(t *testing.T) {
	_, _, err := mapScheduleToSteps([]float64{0}, 1.0, 10)
	require.ErrorIs(t, err, option.ErrInvalidParameter)

	_, _, err = mapScheduleToSteps([]float64{-0.5}, 1.0, 10)
	require.ErrorIs(t, err, option.ErrInvalidParameter)

	_, _, err = mapScheduleToSteps([]float64{1.5}, 1.0, 10)
	require.ErrorIs(t, err, option.ErrInvalidParameter)
}
