package estimate

import (
	"math"
	"testing"

	"gotest.tools/assert"
)

func Test_LogPoints(t *testing.T) {
	init, step, eval := countingAlgo()
	e, err := New(init, step, eval, ramp(1112), nil, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	assert.NilError(t, err)
	assert.Equal(t, e.MaxTrainSize(), 1000)

	p, err := e.points(3, LogSampling)
	assert.NilError(t, err)
	assert.Equal(t, len(p), 3)
	assert.Equal(t, p[0], 10)
	assert.Assert(t, math.Abs(float64(p[1])-100) <= 1)
	assert.Equal(t, p[2], 1000)
}

func Test_LinearPoints(t *testing.T) {
	init, step, eval := countingAlgo()
	e, err := New(init, step, eval, ramp(1112), nil, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	assert.NilError(t, err)

	p, err := e.points(3, LinearSampling)
	assert.NilError(t, err)
	assert.DeepEqual(t, p, []int{10, 505, 1000})
}

func Test_SinglePoint(t *testing.T) {
	init, step, eval := countingAlgo()
	e, err := New(init, step, eval, ramp(1112), nil, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	assert.NilError(t, err)
	p, err := e.points(1, LogSampling)
	assert.NilError(t, err)
	assert.DeepEqual(t, p, []int{MinProbe})
}

func Test_PointsCeiled(t *testing.T) {
	init, step, eval := countingAlgo()
	e, err := New(init, step, eval, ramp(1112), nil, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	assert.NilError(t, err)
	p, err := e.points(7, LinearSampling)
	assert.NilError(t, err)
	for i, x := range p {
		assert.Assert(t, x >= MinProbe && x <= e.MaxTrainSize())
		if i > 0 {
			assert.Assert(t, x > p[i-1])
		}
	}
}
