package estimate

import (
	"sync"

	"go-ml.dev/pkg/lossdata/dataset"
	"go-ml.dev/pkg/lossdata/fu"
	"go-ml.dev/pkg/lossdata/tables"
	"go-ml.dev/pkg/zorros"
)

/*
vectorized trains all (point, seed) jobs of one call in lockstep: a
single step index drives every job, and the per-job updates of a step
run on a bounded set of goroutines joined before the next step. Each
job draws from its own seed-derived shuffle clipped to its own point
size, through the same stream the sequential driver uses, so both
drivers see identical batch sequences for a given (seed, point).
*/
type vectorized struct {
	e *Estimator
}

type vjob struct {
	seed, point int
	state       interface{}
	stream      *subsetStream
	losses      []float64
	weights     []float64
	err         error
}

func (v *vectorized) curve(points []int) error {
	e := v.e
	jobs := make([]*vjob, 0, len(points)*e.config.Seeds)
	for _, point := range points {
		for seed := 0; seed < e.config.Seeds; seed++ {
			rng := e.runRand(seed, point)
			jobs = append(jobs, &vjob{
				seed:   seed,
				point:  point,
				state:  e.init(seed),
				stream: newSubsetStream(e.trainSet, e.transforms, point, e.config.BatchSize, rng),
			})
		}
	}

	for step := 0; step < e.config.TrainSteps; step++ {
		// stacked batch: one per job, drawn serially to keep each
		// job's random stream private to its own goroutine-free path
		stacked := make([]dataset.Batch, len(jobs))
		for i, j := range jobs {
			stacked[i] = j.stream.next()
		}
		forEach(len(jobs), e.config.Workers, func(i int) {
			j := jobs[i]
			j.state, _, j.err = e.trainStep(j.state, stacked[i])
		})
		for _, j := range jobs {
			if j.err != nil {
				return zorros.Wrapf(j.err, "training failed at step %d of seed %d, %d samples: %v",
					step, j.seed, j.point, j.err.Error())
			}
		}
	}

	stream := newPassStream(e.valSet, e.transforms, e.config.BatchSize)
	for {
		b, ok := stream.next()
		if !ok {
			break
		}
		forEach(len(jobs), e.config.Workers, func(i int) {
			j := jobs[i]
			loss, err := e.eval(j.state, b)
			if err != nil {
				j.err = err
				return
			}
			j.losses = append(j.losses, loss)
			j.weights = append(j.weights, float64(b.Len()))
		})
		for _, j := range jobs {
			if j.err != nil {
				return zorros.Wrapf(j.err, "evaluation failed: %v", j.err.Error())
			}
		}
	}

	for _, j := range jobs {
		e.push(tables.Row{
			Seed:    j.seed,
			Samples: j.point,
			ValLoss: fu.WeightedMean(j.losses, j.weights),
		})
	}
	return nil
}

// forEach runs body for 0..n-1 on at most limit concurrent goroutines
func forEach(n, limit int, body func(i int)) {
	limit = fu.Maxi(limit, 1)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			body(i)
		}(i)
	}
	wg.Wait()
}
