// Package testkit provides seeded sample generators for tests.
package testkit

import (
	"math"
	"math/rand"
)

// Kit generates deterministic synthetic samples from a fixed seed.
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a kit seeded for reproducible draws.
func NewKit(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// Normal draws n values from N(mu, sigma).
func (k *Kit) Normal(n int, mu, sigma float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mu + sigma*k.rng.NormFloat64()
	}
	return out
}

// TwoGroups draws a control group from N(0, 1) and a case group from N(d, 1),
// the sampling analogue of the two-Gaussian model at effect size d.
func (k *Kit) TwoGroups(n1, n2 int, d float64) (group1, group2 []float64) {
	return k.Normal(n1, 0, 1), k.Normal(n2, d, 1)
}

// Correlated draws paired (X, Y) with population correlation r, both
// standard normal marginally.
func (k *Kit) Correlated(n int, r float64) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	noise := math.Sqrt(1 - r*r)
	for i := 0; i < n; i++ {
		x[i] = k.rng.NormFloat64()
		y[i] = r*x[i] + noise*k.rng.NormFloat64()
	}
	return x, y
}
