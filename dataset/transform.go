package dataset

import (
	"go-ml.dev/pkg/lossdata/fu"
	"gonum.org/v1/gonum/stat"
)

/*
Transform is a pure function applied elementwise to a batch of inputs
before use, e.g. a representation mapping or whitening normalization
*/
type Transform func(x [][]float64) [][]float64

/*
Apply runs the transforms over a batch of inputs left to right
*/
func Apply(transforms []Transform, x [][]float64) [][]float64 {
	for _, t := range transforms {
		x = t(x)
	}
	return x
}

/*
Whitening makes a transform normalizing inputs to zero mean and unit
standard deviation with the given global statistics
*/
func Whitening(mean, std float64) Transform {
	return func(x [][]float64) [][]float64 {
		r := make([][]float64, len(x))
		for i, v := range x {
			w := make([]float64, len(v))
			for j, q := range v {
				w[j] = (q - mean) / std
			}
			r[i] = w
		}
		return r
	}
}

/*
Stats streams the dataset once, batch by batch through the given
transforms, and returns the global mean and standard deviation of all
transformed input components
*/
func Stats(d Dataset, transforms []Transform, batchSize int) (mean, std float64) {
	var vals []float64
	for i := 0; i < d.Len(); i += batchSize {
		index := make([]int, 0, batchSize)
		for j := i; j < fu.Mini(i+batchSize, d.Len()); j++ {
			index = append(index, j)
		}
		b := Gather(d, index)
		for _, v := range Apply(transforms, b.X) {
			vals = append(vals, v...)
		}
	}
	return stat.MeanStdDev(vals, nil)
}
