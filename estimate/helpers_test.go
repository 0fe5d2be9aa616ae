package estimate

import (
	"go-ml.dev/pkg/lossdata/dataset"
)

func ramp(n int) *dataset.Slices {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	return &dataset.Slices{X: x, Y: y}
}

// seen is the state of the counting algorithm: the set of distinct
// input values observed while training
type seen map[float64]struct{}

// countingAlgo trains by remembering inputs and evaluates to
// 1/|distinct inputs seen|, so validation loss strictly decreases with
// the training-subset size once every subset element has been drawn
func countingAlgo() (InitFunc, TrainStepFunc, EvalFunc) {
	init := func(seed int) interface{} {
		return seen{}
	}
	step := func(state interface{}, b dataset.Batch) (interface{}, float64, error) {
		s := state.(seen)
		for _, x := range b.X {
			s[x[0]] = struct{}{}
		}
		return s, 1 / float64(len(s)), nil
	}
	eval := func(state interface{}, b dataset.Batch) (float64, error) {
		return 1 / float64(len(state.(seen))), nil
	}
	return init, step, eval
}

func double(x [][]float64) [][]float64 {
	r := make([][]float64, len(x))
	for i, v := range x {
		r[i] = []float64{v[0] * 2}
	}
	return r
}
