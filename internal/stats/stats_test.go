package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Zero(t, Median(nil))
	assert.Equal(t, 5.0, Median([]float64{5}))
	assert.Equal(t, 6.0, Median([]float64{7, 5, 6}))
	assert.Equal(t, 5.5, Median([]float64{7, 5, 6, 4}))
}

func TestMeanMinMax(t *testing.T) {
	values := []float64{2, 8, 5}
	assert.Equal(t, 5.0, Mean(values))
	assert.Equal(t, 2.0, Min(values))
	assert.Equal(t, 8.0, Max(values))
	assert.Zero(t, Mean(nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 7.35, Round(7.346, 2))
	assert.Equal(t, 2.3, Round(2.25, 1))
	assert.Equal(t, -2.5, Round(-2.46, 1))
}
