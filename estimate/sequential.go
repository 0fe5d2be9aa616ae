package estimate

import (
	"go-ml.dev/pkg/lossdata/fu"
	"go-ml.dev/pkg/lossdata/tables"
	"go-ml.dev/pkg/zorros"
)

/*
sequential runs experiments strictly ordered: for each point, for each
seed, one full training run followed by evaluation, then the next
*/
type sequential struct {
	e *Estimator
}

func (s *sequential) curve(points []int) error {
	e := s.e
	for _, point := range points {
		for seed := 0; seed < e.config.Seeds; seed++ {
			state, err := e.train(seed, point)
			if err != nil {
				return err
			}
			loss, err := e.evalMean(state)
			if err != nil {
				return err
			}
			e.push(tables.Row{Seed: seed, Samples: point, ValLoss: loss})
		}
	}
	return nil
}

// train applies exactly TrainSteps updates, cycling over the subset
// when a pass is exhausted
func (e *Estimator) train(seed, point int) (interface{}, error) {
	rng := e.runRand(seed, point)
	stream := newSubsetStream(e.trainSet, e.transforms, point, e.config.BatchSize, rng)
	state := e.init(seed)
	for step := 0; step < e.config.TrainSteps; step++ {
		next, _, err := e.trainStep(state, stream.next())
		if err != nil {
			return nil, zorros.Wrapf(err, "training failed at step %d of seed %d, %d samples: %v",
				step, seed, point, err.Error())
		}
		state = next
	}
	return state, nil
}

// evalMean computes the example-count-weighted mean loss over the
// validation partition, correct with an unequal final batch
func (e *Estimator) evalMean(state interface{}) (float64, error) {
	var losses, weights []float64
	stream := newPassStream(e.valSet, e.transforms, e.config.BatchSize)
	for {
		b, ok := stream.next()
		if !ok {
			break
		}
		loss, err := e.eval(state, b)
		if err != nil {
			return 0, zorros.Wrapf(err, "evaluation failed: %v", err.Error())
		}
		losses = append(losses, loss)
		weights = append(weights, float64(b.Len()))
	}
	return fu.WeightedMean(losses, weights), nil
}
