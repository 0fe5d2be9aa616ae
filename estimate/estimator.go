/*
Package estimate implements loss-data curve estimation: it automates
training runs of an opaque algorithm at increasing training-set sizes
over multiple seeds, accumulates validation losses in a result table,
and refines epsilon sample complexity estimates from it.
*/
package estimate

import (
	"fmt"
	"math/rand"
	"reflect"
	"runtime"

	"go-ml.dev/pkg/lossdata/dataset"
	"go-ml.dev/pkg/lossdata/fu"
	"go-ml.dev/pkg/lossdata/tables"
	"go-ml.dev/pkg/zorros"
)

/*
InitFunc maps an integer random seed to an initial state for the
training algorithm. Must be deterministic given the seed.
*/
type InitFunc func(seed int) interface{}

/*
TrainStepFunc performs one training update, replacing the state.
The state is opaque to the estimator: created by InitFunc, threaded
through successive calls, never inspected.
*/
type TrainStepFunc func(state interface{}, batch dataset.Batch) (interface{}, float64, error)

/*
EvalFunc returns the mean loss of the state over the batch.
Must not mutate the state.
*/
type EvalFunc func(state interface{}, batch dataset.Batch) (float64, error)

/*
Config is the estimation setup
*/
type Config struct {
	ValFrac    float64     // validation fraction of the dataset, 0.1 by default
	Seeds      int         // seeds per probe point, 5 by default
	TrainSteps int         // training updates per run, 5000 by default
	BatchSize  int         // nominal batch size, 256 by default
	BaseSeed   int64       // base of all per-run random sources
	CacheData  bool        // memoize transformed batches across runs
	Whiten     bool        // normalize transformed inputs from train stats
	Vectorize  bool        // train all (point, seed) jobs of a call in lockstep
	Workers    int         // goroutines joining each vectorized step, NumCPU by default
	Verbose    interface{} // print function func(string)
}

/*
DefaultConfig returns the documented defaults
*/
func DefaultConfig() Config {
	return Config{
		ValFrac:    0.1,
		Seeds:      5,
		TrainSteps: 5000,
		BatchSize:  256,
		CacheData:  true,
		Whiten:     true,
		Vectorize:  true,
	}
}

/*
Estimator runs loss-data curve experiments for one algorithm/dataset
pair and accumulates their results
*/
type Estimator struct {
	init       InitFunc
	trainStep  TrainStepFunc
	eval       EvalFunc
	config     Config
	trainSet   dataset.Dataset
	valSet     dataset.Dataset
	transforms []dataset.Transform
	valSize    int
	maxTrain   int
	results    *tables.Table
	driver     driver
}

type driver interface {
	curve(points []int) error
}

/*
New makes an Estimator over the given dataset. The validation partition
is the dataset tail, the training partition the remaining prefix.
representation may be nil to use inputs as is.
*/
func New(init InitFunc, trainStep TrainStepFunc, eval EvalFunc,
	d dataset.Dataset, representation dataset.Transform, config Config) (*Estimator, error) {

	if config.Vectorize && !config.CacheData {
		return nil, zorros.Errorf("setting Vectorize requires CacheData: " +
			"either set CacheData or turn off Vectorize")
	}
	config.ValFrac = fu.Fnzf(config.ValFrac, 0.1)
	config.Seeds = fu.Fnzi(config.Seeds, 5)
	config.TrainSteps = fu.Fnzi(config.TrainSteps, 5000)
	config.BatchSize = fu.Fnzi(config.BatchSize, 256)
	config.Workers = fu.Fnzi(config.Workers, runtime.NumCPU())

	e := &Estimator{
		init:      init,
		trainStep: trainStep,
		eval:      eval,
		config:    config,
		results:   tables.NewEmpty(),
	}
	e.valSize = fu.Ceili(float64(d.Len()) * config.ValFrac)
	e.maxTrain = d.Len() - e.valSize
	if e.maxTrain < 1 {
		return nil, zorros.Errorf("dataset of %d items leaves no training data "+
			"at validation fraction %v", d.Len(), config.ValFrac)
	}
	trainSet, err := dataset.Head(d, e.maxTrain)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	valSet, err := dataset.Tail(d, e.maxTrain)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	e.trainSet, e.valSet = trainSet, valSet

	var repr []dataset.Transform
	if representation != nil {
		repr = []dataset.Transform{representation}
	}
	switch {
	case config.Vectorize:
		// realize the transformed partitions eagerly so jobs can be
		// stacked over them
		e.trainSet = dataset.Materialize(e.trainSet, repr, config.BatchSize)
		e.valSet = dataset.Materialize(e.valSet, repr, config.BatchSize)
	case config.CacheData:
		e.trainSet = dataset.NewTransformCache(e.trainSet, repr, config.BatchSize)
		e.valSet = dataset.NewTransformCache(e.valSet, repr, config.BatchSize)
	default:
		// transform one batch at a time, every time it is drawn
		e.transforms = repr
	}

	if config.Whiten {
		// train partition only, to avoid leaking validation statistics
		mean, std := dataset.Stats(e.trainSet, e.transforms, config.BatchSize)
		e.say(fmt.Sprintf("whitening with representation (mean, std): (%.4f, %.4f)", mean, std))
		e.transforms = append(e.transforms, dataset.Whitening(mean, std))
	}

	if config.Vectorize {
		e.driver = &vectorized{e}
	} else {
		e.driver = &sequential{e}
	}
	return e, nil
}

/*
ValSize returns the size of the validation partition
*/
func (e *Estimator) ValSize() int {
	return e.valSize
}

/*
MaxTrainSize returns the largest usable training-set size
*/
func (e *Estimator) MaxTrainSize() int {
	return e.maxTrain
}

/*
ResultTable returns a snapshot copy of the accumulated results
*/
func (e *Estimator) ResultTable() *tables.Table {
	return e.results.Copy()
}

// push records one completed run
func (e *Estimator) push(row tables.Row) {
	e.results.Append(row)
	e.say(fmt.Sprintf("[seed %d] %7d samples: val_loss %.5f",
		row.Seed, row.Samples, row.ValLoss))
}

func (e *Estimator) say(s string) {
	if e.config.Verbose != nil {
		vf := reflect.ValueOf(e.config.Verbose)
		vf.Call([]reflect.Value{reflect.ValueOf(s)})
	}
}

// runRand derives the random source of one (seed, point) run from the
// base seed, splitmix-style, so repeated executions reshuffle identically
func (e *Estimator) runRand(seed, point int) *rand.Rand {
	z := uint64(e.config.BaseSeed)
	z += 0x9e3779b97f4a7c15 * uint64(seed+1)
	z += 0xbf58476d1ce4e5b9 * uint64(point)
	z ^= z >> 30
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return rand.New(rand.NewSource(int64(z >> 1)))
}
