package estimate

import (
	"go-ml.dev/pkg/lossdata/fu"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/floats"
)

/*
Sampling selects how generated probe points are distributed between the
minimum probe size and the maximum training size
*/
type Sampling string

const (
	LogSampling    Sampling = "log"
	LinearSampling Sampling = "linear"
)

// MinProbe is the conventional smallest training-set size to probe
const MinProbe = 10

/*
ComputeCurve estimates the loss-data curve at nPoints generated data
sizes, 10 by default, spaced per sampling over [MinProbe, MaxTrainSize].
Every point runs once per seed; each completed run appends one
(seed, samples, val_loss) row to the result table.
*/
func (e *Estimator) ComputeCurve(nPoints int, sampling Sampling) error {
	points, err := e.points(nPoints, sampling)
	if err != nil {
		return err
	}
	return e.driver.curve(points)
}

/*
ComputeCurveAt estimates the loss-data curve at the exact given data
sizes instead of generated ones
*/
func (e *Estimator) ComputeCurveAt(points []int) error {
	for _, p := range points {
		if p < MinProbe || p > e.maxTrain {
			return zorros.Errorf("probe point %d is outside [%d, %d]", p, MinProbe, e.maxTrain)
		}
	}
	return e.driver.curve(points)
}

/*
LuckyComputeCurve is like ComputeCurve but throws errors as a panic
*/
func (e *Estimator) LuckyComputeCurve(nPoints int, sampling Sampling) {
	if err := e.ComputeCurve(nPoints, sampling); err != nil {
		panic(zorros.Panic(err))
	}
}

func (e *Estimator) points(nPoints int, sampling Sampling) ([]int, error) {
	n := fu.Fnzi(nPoints, 10)
	if n < 1 {
		return nil, zorros.Errorf("nPoints must be positive, was %d", n)
	}
	if e.maxTrain < MinProbe {
		return nil, zorros.Errorf("training partition of %d samples is below the minimum probe size %d",
			e.maxTrain, MinProbe)
	}
	if n == 1 {
		return []int{MinProbe}, nil
	}
	p := make([]float64, n)
	switch sampling {
	case LogSampling:
		floats.LogSpan(p, MinProbe, float64(e.maxTrain))
	case LinearSampling:
		floats.Span(p, MinProbe, float64(e.maxTrain))
	default:
		return nil, zorros.Errorf("sampling must be %v or %v, was %v",
			LogSampling, LinearSampling, sampling)
	}
	points := make([]int, n)
	for i, x := range p {
		// LogSpan round-trips through exp, leaving the endpoints a few
		// ulps off their exact values; don't let ceil amplify that
		points[i] = fu.Ceili(x - 1e-9)
		if points[i] > e.maxTrain {
			points[i] = e.maxTrain
		}
		if points[i] < MinProbe {
			points[i] = MinProbe
		}
	}
	return points, nil
}
