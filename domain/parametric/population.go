// Package parametric is the analytic metrics engine: it maps an effect size
// plus reliability parameters onto a complete battery of discrimination and
// threshold-dependent classification metrics, assuming two Gaussian
// populations.
package parametric

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Population models the two-Gaussian generative view of a binary outcome:
// controls ~ N(0, sigma1) and cases ~ N(d, sigma2). Constructed per call and
// immutable.
type Population struct {
	D      float64
	Sigma1 float64
	Sigma2 float64

	controls distuv.Normal
	cases    distuv.Normal
}

// NewPopulation builds a population for an effective Cohen's d and per-group
// standard deviations.
func NewPopulation(d, sigma1, sigma2 float64) Population {
	return Population{
		D:        d,
		Sigma1:   sigma1,
		Sigma2:   sigma2,
		controls: distuv.Normal{Mu: 0, Sigma: sigma1},
		cases:    distuv.Normal{Mu: d, Sigma: sigma2},
	}
}

// Sensitivity is the case mass at or above the threshold.
func (p Population) Sensitivity(threshold float64) float64 {
	return 1 - p.cases.CDF(threshold)
}

// Specificity is the control mass below the threshold.
func (p Population) Specificity(threshold float64) float64 {
	return p.controls.CDF(threshold)
}

// FalsePositiveRate is the control mass at or above the threshold.
func (p Population) FalsePositiveRate(threshold float64) float64 {
	return 1 - p.controls.CDF(threshold)
}

func (p Population) controlDensity(x float64) float64 {
	return p.controls.Prob(x)
}

func (p Population) caseDensity(x float64) float64 {
	return p.cases.Prob(x)
}

func (p Population) maxSigma() float64 {
	if p.Sigma1 > p.Sigma2 {
		return p.Sigma1
	}
	return p.Sigma2
}

// searchBounds spans the support relevant to any threshold question about
// this population.
func (p Population) searchBounds() (lo, hi float64) {
	return -8 * p.maxSigma(), 8*p.maxSigma() + p.D
}
