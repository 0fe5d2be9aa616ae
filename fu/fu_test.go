package fu

import (
	"testing"

	"gotest.tools/assert"
)

func Test_Floats(t *testing.T) {
	assert.Equal(t, Mean([]float64{1, 2, 3}), 2.0)
	assert.Equal(t, WeightedMean([]float64{1, 3}, []float64{3, 1}), 1.5)
}

func Test_Fnz(t *testing.T) {
	assert.Equal(t, Fnzi(0, 0, 7), 7)
	assert.Equal(t, Fnzi(3, 7), 3)
	assert.Equal(t, Fnzi(), 0)
	assert.Equal(t, Fnzf(0, 0.5), 0.5)
	assert.Equal(t, Mini(2, 3), 2)
	assert.Equal(t, Maxi(2, 3), 3)
	assert.Equal(t, Ceili(1.2), 2)
	assert.Equal(t, Ceili(2.0), 2)
}
