package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/printshare/model"
)

func TestNew_InvalidMean(t *testing.T) {
	for _, mean := range []float64{0, -1} {
		_, err := New(mean, 1)
		assert.ErrorIs(t, err, model.ErrInvalidConfig)
	}
}

func TestRandom_Next(t *testing.T) {
	r, err := New(4, 42)
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.Mean())

	var sum int64
	const draws = 2000
	for i := 0; i < draws; i++ {
		v := r.Next()
		require.GreaterOrEqual(t, v, int64(0))
		sum += v
	}
	avg := float64(sum) / draws
	assert.InDelta(t, 4.0, avg, 0.5)
}

func TestNewFactory_Reproducible(t *testing.T) {
	factory, err := NewFactory(5, 7)
	require.NoError(t, err)

	a, b := factory(3), factory(3)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}

	_, err = NewFactory(0, 7)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestFixed(t *testing.T) {
	f := NewFixed(3, 1)
	assert.EqualValues(t, 3, f.Next())
	assert.EqualValues(t, 1, f.Next())
	assert.EqualValues(t, 1, f.Next())
	assert.EqualValues(t, 0, NewFixed().Next())

	factory := FixedFactory(map[int][]int64{2: {9}})
	assert.EqualValues(t, 9, factory(2).Next())
	assert.EqualValues(t, 0, factory(1).Next())
}
