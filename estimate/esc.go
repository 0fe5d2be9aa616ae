package estimate

import (
	"go-ml.dev/pkg/lossdata/fu"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
)

/*
ErrInsufficientData reports that the accumulated results cannot bound
the epsilon sample complexity: the target loss is not reached even at
the full training size
*/
var ErrInsufficientData = xerrors.New("insufficient data to bound epsilon sample complexity")

type bounds struct {
	lower, upper       int
	hasLower, hasUpper bool
}

// boundESC derives the current search interval from the result table:
// upper is the smallest size known to meet the target loss, lower the
// largest size known to miss it
func (e *Estimator) boundESC(epsilon float64) (b bounds) {
	for _, r := range e.results.Rows() {
		if r.ValLoss <= epsilon {
			if !b.hasUpper || r.Samples < b.upper {
				b.upper, b.hasUpper = r.Samples, true
			}
		} else {
			if !b.hasLower || r.Samples > b.lower {
				b.lower, b.hasLower = r.Samples, true
			}
		}
	}
	return
}

/*
RefineESC runs experiments until the epsilon sample complexity for the
target loss epsilon is bounded within precision, then returns its upper
bound. Each round probes parallelism-2 evenly spaced sizes strictly
inside the current bounds, an iterative grid search rather than a pure
bisection. If the result table cannot yet bracket the target from both
sides, a log-spaced bracketing probe over the full size range runs
first; if even that leaves the target loss unreached, RefineESC fails
with ErrInsufficientData.
*/
func (e *Estimator) RefineESC(epsilon, precision float64, parallelism int) (int, error) {
	par := fu.Fnzi(parallelism, 10)
	if par < 3 {
		return 0, zorros.Errorf("parallelism must be at least 3 to place interior probes, was %d", par)
	}
	b := e.boundESC(epsilon)
	if !b.hasLower || !b.hasUpper {
		zlog.Warning("results cannot bracket the target loss, probing the full size range")
		if err := e.ComputeCurve(par, LogSampling); err != nil {
			return 0, err
		}
		b = e.boundESC(epsilon)
		if !b.hasUpper {
			return 0, xerrors.Errorf("target loss %v unreached at %d samples: %w",
				epsilon, e.maxTrain, ErrInsufficientData)
		}
		if !b.hasLower {
			// every tested size meets the target already
			return b.upper, nil
		}
	}
	// sizes are integral, a gap of 1 cannot be narrowed further
	for float64(b.upper-b.lower) > precision && b.upper-b.lower > 1 {
		grid := make([]float64, par)
		floats.Span(grid, float64(b.lower), float64(b.upper))
		// candidates stay strictly inside the bounds: ceil can push a
		// grid value onto the upper endpoint, which is already tested
		points := make([]int, 0, par-2)
		for _, x := range grid[1 : par-1] {
			p := fu.Ceili(x)
			if p <= b.lower || p >= b.upper {
				continue
			}
			if len(points) > 0 && points[len(points)-1] == p {
				continue
			}
			points = append(points, p)
		}
		if len(points) == 0 {
			break
		}
		if err := e.ComputeCurveAt(points); err != nil {
			return 0, err
		}
		b = e.boundESC(epsilon)
	}
	return b.upper, nil
}

/*
LuckyRefineESC is like RefineESC but throws errors as a panic
*/
func (e *Estimator) LuckyRefineESC(epsilon, precision float64, parallelism int) int {
	esc, err := e.RefineESC(epsilon, precision, parallelism)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return esc
}
