package ranking

import "math/rand/v2"

// MaxJitter is the exclusive upper bound of a jitter draw
const MaxJitter = 0.1

// Jitter returns one draw in [0, MaxJitter)
type Jitter func() float64

// JitterSource creates a Jitter for one computation
type JitterSource func() Jitter

// PerCall returns a fresh generator seeded independently on every call
func PerCall() Jitter {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return func() float64 { return r.Float64() * MaxJitter }
}

// Fixed always draws v, clamped into [0, MaxJitter)
func Fixed(v float64) JitterSource {
	if v < 0 {
		v = 0
	}
	if v >= MaxJitter {
		v = MaxJitter - 1e-9
	}
	return func() Jitter { return func() float64 { return v } }
}
