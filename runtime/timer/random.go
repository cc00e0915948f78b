// Package timer produces the randomised delays that drive a simulation:
// student arrival jitter and print duration.
//
// A Random instance is not safe for concurrent use.  The coordinator gives
// every student task its own instance (see Factory) so no lock is needed.
package timer

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/viant/printshare/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source yields non-negative delay values expressed in simulation units.
type Source interface {
	Next() int64
}

// Factory returns the Source owned by a single student task.
type Factory func(studentID int) Source

// Random draws values from a Poisson distribution with a fixed mean.
type Random struct {
	mean         float64
	distribution distuv.Poisson
}

// New creates a Poisson timer.  A non-positive mean is a configuration error.
func New(mean float64, seed uint64) (*Random, error) {
	if mean <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, model.NewConfigError("mean", "must be a positive number, got %v", mean)
	}
	return &Random{
		mean: mean,
		distribution: distuv.Poisson{
			Lambda: mean,
			Src:    rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		},
	}, nil
}

// Mean returns the configured mean.
func (r *Random) Mean() float64 {
	return r.mean
}

// Next returns the next Poisson distributed value.
func (r *Random) Next() int64 {
	return int64(r.distribution.Rand())
}

// NewFactory returns a Factory building one Random per student, seeded with
// seed+studentID so that every run with the same seed replays the same delays.
func NewFactory(mean float64, seed uint64) (Factory, error) {
	if _, err := New(mean, seed); err != nil {
		return nil, err
	}
	return func(studentID int) Source {
		ret, _ := New(mean, seed+uint64(studentID))
		return ret
	}, nil
}

// Fixed replays a predefined sequence; once exhausted it keeps returning the
// last value.  It is safe for concurrent use.
type Fixed struct {
	mu     sync.Mutex
	values []int64
	index  int
}

// NewFixed creates a fixed sequence source.
func NewFixed(values ...int64) *Fixed {
	return &Fixed{values: values}
}

// Next returns the next value of the sequence.
func (f *Fixed) Next() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	if f.index >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	ret := f.values[f.index]
	f.index++
	return ret
}

// FixedFactory maps student ids to fixed sequences; students without an entry
// get zero delays.
func FixedFactory(sequences map[int][]int64) Factory {
	return func(studentID int) Source {
		return NewFixed(sequences[studentID]...)
	}
}
