package estimate

import (
	"math/rand"

	"go-ml.dev/pkg/lossdata/dataset"
	"go-ml.dev/pkg/lossdata/fu"
)

/*
subsetStream cycles forever over a shuffled, size-limited training
subset: the subset itself is one fixed seed-derived permutation of the
training partition clipped to the point size, and the draw order within
it is re-permuted each pass. The final batch of a pass may be short.
*/
type subsetStream struct {
	view       dataset.Dataset
	transforms []dataset.Transform
	batchSize  int
	rng        *rand.Rand
	order      []int
	pos        int
}

func newSubsetStream(d dataset.Dataset, transforms []dataset.Transform,
	point, batchSize int, rng *rand.Rand) *subsetStream {

	shuffled := dataset.NewShuffle(d, rng)
	view, err := dataset.Head(shuffled, point)
	if err != nil {
		panic(err) // unreachable, points are validated upstream
	}
	return &subsetStream{
		view:       view,
		transforms: transforms,
		batchSize:  batchSize,
		rng:        rng,
	}
}

func (s *subsetStream) next() dataset.Batch {
	if s.pos >= len(s.order) {
		s.order = s.rng.Perm(s.view.Len())
		s.pos = 0
	}
	stop := fu.Mini(s.pos+s.batchSize, len(s.order))
	b := dataset.Gather(s.view, s.order[s.pos:stop])
	s.pos = stop
	b.X = dataset.Apply(s.transforms, b.X)
	return b
}

/*
passStream yields a dataset once, in stable order, so evaluation
metrics are reproducible
*/
type passStream struct {
	d          dataset.Dataset
	transforms []dataset.Transform
	batchSize  int
	pos        int
}

func newPassStream(d dataset.Dataset, transforms []dataset.Transform, batchSize int) *passStream {
	return &passStream{d: d, transforms: transforms, batchSize: batchSize}
}

func (s *passStream) next() (dataset.Batch, bool) {
	if s.pos >= s.d.Len() {
		return dataset.Batch{}, false
	}
	stop := fu.Mini(s.pos+s.batchSize, s.d.Len())
	index := make([]int, stop-s.pos)
	for i := range index {
		index[i] = s.pos + i
	}
	b := dataset.Gather(s.d, index)
	s.pos = stop
	b.X = dataset.Apply(s.transforms, b.X)
	return b, true
}
