package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreDirection(t *testing.T) {
	d, err := ParseScoreDirection("higher_is_better")
	require.NoError(t, err)
	assert.Equal(t, HigherIsBetter, d)

	d, err = ParseScoreDirection("lower_is_better")
	require.NoError(t, err)
	assert.Equal(t, LowerIsBetter, d)

	_, err = ParseScoreDirection("sideways")
	assert.Error(t, err)

	_, err = ParseScoreDirection("")
	assert.Error(t, err, "direction must never be defaulted from an empty string")
}

func TestScoreDirectionString(t *testing.T) {
	assert.Equal(t, "higher_is_better", HigherIsBetter.String())
	assert.Equal(t, "lower_is_better", LowerIsBetter.String())
	assert.Equal(t, "unset", ScoreDirectionUnset.String())
}
