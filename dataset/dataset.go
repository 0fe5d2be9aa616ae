package dataset

import (
	"golang.org/x/xerrors"
)

/*
Dataset is an ordered, indexable collection of (input, target) pairs
to estimate loss-data curves on. Implementations are read-only.
*/
type Dataset interface {
	// Len returns the fixed number of pairs in the collection
	Len() int
	// At returns the input vector and the target of the i-th pair
	At(i int) ([]float64, float64)
}

/*
Batch is a contiguous group of (input, target) pairs drawn from a dataset
*/
type Batch struct {
	X [][]float64
	Y []float64
}

/*
Len returns the count of pairs in the batch
*/
func (b Batch) Len() int {
	return len(b.X)
}

/*
Slices is a dataset backed by parallel slices
*/
type Slices struct {
	X [][]float64
	Y []float64
}

/*
FromSlices makes a slice-backed dataset from parallel inputs/targets slices
*/
func FromSlices(x [][]float64, y []float64) (*Slices, error) {
	if len(x) != len(y) {
		return nil, xerrors.Errorf("inputs and targets lengths differ: %d != %d", len(x), len(y))
	}
	return &Slices{X: x, Y: y}, nil
}

func (s *Slices) Len() int {
	return len(s.X)
}

func (s *Slices) At(i int) ([]float64, float64) {
	return s.X[i], s.Y[i]
}

/*
Gather copies the pairs at the given indexes into a fresh batch
*/
func Gather(d Dataset, index []int) Batch {
	b := Batch{
		X: make([][]float64, len(index)),
		Y: make([]float64, len(index)),
	}
	for i, j := range index {
		b.X[i], b.Y[i] = d.At(j)
	}
	return b
}
