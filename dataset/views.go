package dataset

import (
	"math/rand"

	"golang.org/x/xerrors"
)

/*
Subset is a view over a dataset restricted to the index range [start,stop).
It holds a reference to the underlying data and copies nothing.
*/
type Subset struct {
	d           Dataset
	start, stop int
}

/*
NewSubset makes a subset view; stop is clipped to the dataset length
*/
func NewSubset(d Dataset, start, stop int) (*Subset, error) {
	if stop > d.Len() {
		stop = d.Len()
	}
	if start < 0 || start > stop {
		return nil, xerrors.Errorf("bad subset range [%d,%d) over %d items", start, stop, d.Len())
	}
	return &Subset{d: d, start: start, stop: stop}, nil
}

/*
Head makes a subset view over the first stop items
*/
func Head(d Dataset, stop int) (*Subset, error) {
	return NewSubset(d, 0, stop)
}

/*
Tail makes a subset view over the items from start to the end
*/
func Tail(d Dataset, start int) (*Subset, error) {
	return NewSubset(d, start, d.Len())
}

func (s *Subset) Len() int {
	return s.stop - s.start
}

func (s *Subset) At(i int) ([]float64, float64) {
	return s.d.At(s.start + i)
}

/*
Shuffle is a view presenting a dataset in a fixed random permutation.
The permutation is deterministic for a given source of randomness and
composes with subset views on either side.
*/
type Shuffle struct {
	d    Dataset
	perm []int
}

/*
NewShuffle permutes the view order of d using rng
*/
func NewShuffle(d Dataset, rng *rand.Rand) *Shuffle {
	return &Shuffle{d: d, perm: rng.Perm(d.Len())}
}

func (s *Shuffle) Len() int {
	return len(s.perm)
}

func (s *Shuffle) At(i int) ([]float64, float64) {
	return s.d.At(s.perm[i])
}
