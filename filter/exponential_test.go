package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExponentialMidpoint(t *testing.T) {
	f := New()
	assert.Equal(t, DefaultWeight, f.Weight())
	assert.Equal(t, 0, f.Count())
	assert.Equal(t, 0.0, f.Value())

	f.Add(10)
	assert.Equal(t, 10.0, f.Value())
	f.Add(20)
	assert.Equal(t, 15.0, f.Value())
	f.Add(0)
	assert.Equal(t, 7.5, f.Value())
	assert.Equal(t, 3, f.Count())
}

func TestExponentialBootstrapIgnoresWeight(t *testing.T) {
	for _, w := range []float64{0.1, 0.5, 0.9, 1} {
		f := NewExponential(w)
		f.Add(-3.25)
		assert.Equal(t, -3.25, f.Value(), "weight %v", w)
	}
}

func TestExponentialGeneralWeight(t *testing.T) {
	f := NewExponential(0.25)
	f.Add(0)
	f.Add(8)
	assert.Equal(t, 2.0, f.Value())
	f.Add(10)
	assert.Equal(t, 4.0, f.Value())

	one := NewExponential(1)
	one.Add(3)
	one.Add(11)
	assert.Equal(t, 11.0, one.Value())
}

func TestExponentialMidpointIsExact(t *testing.T) {
	a, b := 0.1, 0.7
	f := New()
	f.Add(a)
	f.Add(b)
	assert.Equal(t, 0.5*(a+b), f.Value())
	assert.Equal(t, math.Float64bits(0.5*(a+b)), math.Float64bits(f.Value()))
}

func TestExponentialCount(t *testing.T) {
	f := New()
	for i := 1; i <= 100; i++ {
		f.Add(float64(i))
		assert.Equal(t, i, f.Count())
	}

	f.Reset()
	assert.Equal(t, 0, f.Count())
	assert.Equal(t, 0.0, f.Value())
	assert.Equal(t, DefaultWeight, f.Weight())

	f.Add(42)
	assert.Equal(t, 42.0, f.Value())
}
