package dataset

import (
	"go-ml.dev/pkg/lossdata/fu"
)

/*
TransformCache wraps a dataset and memoizes its transformed inputs.
Transforms run once per aligned batch of the underlying order, on first
access to any item of that batch; later accesses reuse the memo. Saves
recomputation when many seeds draw the same underlying items.
*/
type TransformCache struct {
	d          Dataset
	transforms []Transform
	batchSize  int
	memo       [][]float64
	ready      []bool
}

/*
NewTransformCache makes a memoizing view over d
*/
func NewTransformCache(d Dataset, transforms []Transform, batchSize int) *TransformCache {
	return &TransformCache{
		d:          d,
		transforms: transforms,
		batchSize:  batchSize,
		memo:       make([][]float64, d.Len()),
		ready:      make([]bool, d.Len()),
	}
}

func (c *TransformCache) Len() int {
	return c.d.Len()
}

func (c *TransformCache) At(i int) ([]float64, float64) {
	if !c.ready[i] {
		c.fill(i / c.batchSize)
	}
	_, y := c.d.At(i)
	return c.memo[i], y
}

// fill transforms the whole aligned batch the item belongs to
func (c *TransformCache) fill(batch int) {
	start := batch * c.batchSize
	stop := fu.Mini(start+c.batchSize, c.d.Len())
	x := make([][]float64, stop-start)
	for i := start; i < stop; i++ {
		x[i-start], _ = c.d.At(i)
	}
	x = Apply(c.transforms, x)
	for i := start; i < stop; i++ {
		c.memo[i] = x[i-start]
		c.ready[i] = true
	}
}

/*
Materialize eagerly realizes the whole dataset with the transforms
applied, batch by batch, into a slice-backed dataset. Required by the
vectorized training driver, which indexes jobs into the realized data.
*/
func Materialize(d Dataset, transforms []Transform, batchSize int) *Slices {
	s := &Slices{
		X: make([][]float64, d.Len()),
		Y: make([]float64, d.Len()),
	}
	for i := 0; i < d.Len(); i += batchSize {
		stop := fu.Mini(i+batchSize, d.Len())
		x := make([][]float64, stop-i)
		for j := i; j < stop; j++ {
			x[j-i], s.Y[j] = d.At(j)
		}
		x = Apply(transforms, x)
		copy(s.X[i:stop], x)
	}
	return s
}
