package estimate

import (
	"testing"

	"go-ml.dev/pkg/lossdata/tables"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

func countingEstimator(t *testing.T, config Config) *Estimator {
	init, step, eval := countingAlgo()
	// TrainSteps covers at least one full pass of any subset, so the
	// counting algorithm's loss is exactly 1/samples
	e, err := New(init, step, eval, ramp(500), nil, config)
	assert.NilError(t, err)
	return e
}

func Test_BoundESC(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	e.results.Append(
		tables.Row{Seed: 0, Samples: 50, ValLoss: 0.5},
		tables.Row{Seed: 0, Samples: 100, ValLoss: 0.05},
	)
	b := e.boundESC(0.1)
	assert.Assert(t, b.hasLower && b.hasUpper)
	assert.Equal(t, b.lower, 50)
	assert.Equal(t, b.upper, 100)
}

func Test_BoundESCOneSided(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	e.results.Append(
		tables.Row{Seed: 0, Samples: 50, ValLoss: 0.5},
		tables.Row{Seed: 0, Samples: 100, ValLoss: 0.2},
	)
	b := e.boundESC(0.1) // nothing meets the target
	assert.Assert(t, b.hasLower && !b.hasUpper)
	assert.Equal(t, b.lower, 100)

	b = e.boundESC(0.9) // everything meets the target
	assert.Assert(t, !b.hasLower && b.hasUpper)
	assert.Equal(t, b.upper, 50)
}

func Test_RefineESC(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 60, BatchSize: 16, CacheData: true,
	})
	// loss(n) = 1/n, so the target 0.02 is first met at n = 50
	esc, err := e.RefineESC(0.02, 10, 10)
	assert.NilError(t, err)
	assert.Assert(t, esc >= 50 && esc <= 60)

	b := e.boundESC(0.02)
	assert.Assert(t, b.hasLower && b.hasUpper)
	assert.Assert(t, b.lower <= esc && esc == b.upper)
	assert.Assert(t, b.upper-b.lower <= 10)
}

// refinement never re-probes the bounds themselves: on a narrow
// interval the ceiled grid collapses onto the upper bound, and those
// candidates are skipped along with duplicates
func Test_RefineESCInteriorCandidates(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 60, BatchSize: 16, CacheData: true,
	})
	e.results.Append(
		tables.Row{Seed: 0, Samples: 50, ValLoss: 0.5},
		tables.Row{Seed: 0, Samples: 52, ValLoss: 1.0 / 52},
	)
	esc, err := e.RefineESC(0.02, 1, 10)
	assert.NilError(t, err)
	assert.Equal(t, esc, 51)
	// one round probing 51 once, nothing at the known endpoints
	q := e.ResultTable()
	assert.Equal(t, q.Len(), 3)
	assert.Equal(t, q.Row(2).Samples, 51)
}

func Test_RefineESCInsufficientData(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 8, CacheData: true,
	})
	_, err := e.RefineESC(1e-9, 10, 10)
	assert.Assert(t, xerrors.Is(err, ErrInsufficientData))
}

func Test_RefineESCAllBelowTarget(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 60, BatchSize: 16, CacheData: true,
	})
	// even the smallest probe meets the target, refinement stops at it
	esc, err := e.RefineESC(0.5, 10, 10)
	assert.NilError(t, err)
	assert.Equal(t, esc, MinProbe)
}

func Test_RefineESCParallelism(t *testing.T) {
	e := countingEstimator(t, Config{
		Seeds: 1, TrainSteps: 5, BatchSize: 16, CacheData: true,
	})
	_, err := e.RefineESC(0.1, 10, 2)
	assert.ErrorContains(t, err, "parallelism")
}
