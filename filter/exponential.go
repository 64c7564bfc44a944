// Package filter provides streaming smoothing accumulators.
package filter

// DefaultWeight is the weight used by New.
const DefaultWeight = 0.5

// Exponential is an exponential moving average. The first sample is taken
// verbatim; every later sample moves the estimate towards it by weight.
//
// An Exponential is not safe for concurrent use.
type Exponential struct {
	value  float64
	count  int
	weight float64
}

// New returns a filter with DefaultWeight.
func New() *Exponential {
	return NewExponential(DefaultWeight)
}

// NewExponential returns a filter with the given weight. The weight is not
// validated; values outside (0, 1] give unspecified smoothing behavior.
func NewExponential(weight float64) *Exponential {
	return &Exponential{weight: weight}
}

// Add feeds a sample into the filter.
func (f *Exponential) Add(sample float64) {
	switch {
	case f.count == 0:
		f.value = sample
	case f.weight == 0.5:
		// Exact midpoint, not the reformulated update.
		f.value = 0.5 * (f.value + sample)
	default:
		f.value = f.value + f.weight*(sample-f.value)
	}
	f.count++
}

// Value returns the current estimate, or 0 before the first sample.
func (f *Exponential) Value() float64 { return f.value }

// Count returns the number of samples added.
func (f *Exponential) Count() int { return f.count }

// Weight returns the smoothing weight.
func (f *Exponential) Weight() float64 { return f.weight }

// Reset discards all samples, keeping the weight.
func (f *Exponential) Reset() {
	f.value = 0
	f.count = 0
}
