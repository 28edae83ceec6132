package display

import (
	"math/rand/v2"

	"github.com/ezrec/cpusim/value"
)

// Sampler stands in pseudo-random digits for undefined values, so that
// uninitialized storage looks like noise. The machine itself never sees
// the sampled values.
type Sampler struct {
	Space value.Space

	rand *rand.Rand
}

// NewSampler creates a sampler with a fixed seed.
func NewSampler(space value.Space, seed uint64) *Sampler {
	return &Sampler{
		Space: space,
		rand:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Sampler) digit() value.Value {
	return s.Space.Single(s.rand.IntN(s.Space.Max), false)
}

// Sample returns v with every undefined digit replaced by a random one.
// Defined values are returned unchanged.
func (s *Sampler) Sample(v value.Value) value.Value {
	if !v.IsUndefined() {
		return v
	}

	double, ok := v.(*value.Double)
	if !ok {
		return s.digit()
	}

	double = double.Clone()
	for n := range double.Width() {
		if double.Digit(n).IsUndefined() {
			double.SetDigit(n, s.digit())
		}
	}

	return double
}
