// Package reliability models how measurement unreliability (ICC) and label
// unreliability (kappa) attenuate an observed effect, plus the deterministic
// sample transforms used to synthesize de-attenuated or attenuated data.
//
// The sample transforms are exact linear rescales and mean shifts, not
// stochastic deconvolutions: they show what a distribution would look like at
// a different reliability, they do not remove noise observation by
// observation.
package reliability

import (
	"math"

	"github.com/montanaflynn/stats"

	"e2pred/internal/errors"
)

// Center selects the location parameter used when rescaling deviations.
type Center string

const (
	CenterMean   Center = "mean"
	CenterMedian Center = "median"
)

// AttenuateD computes the observed Cohen's d implied by a true d under label
// reliability kappa: d_obs = d_true * sqrt(sin(pi/2 * kappa)). Kappa 1 is the
// identity.
func AttenuateD(trueD, kappa float64) float64 {
	return trueD * math.Sqrt(math.Sin(math.Pi/2*kappa))
}

// SigmaFromICC computes the observed standard deviation inflated by
// measurement unreliability: sigma_obs = 1/sqrt(ICC) with sigma_true = 1.
func SigmaFromICC(icc float64) (float64, error) {
	if icc <= 0 || icc > 1 {
		return 0, errors.InvalidDomain("icc must be in (0, 1]")
	}
	return 1 / math.Sqrt(icc), nil
}

// TransformForTargetReliability rescales x so its deviations around the chosen
// center reflect reliability rTarget instead of rCurrent:
//
//	x_tgt = c + sqrt(rCurrent/rTarget) * (x - c)
//
// A target above the current reliability shrinks variance (less measurement
// noise); a lower target inflates it. The transform is its own inverse under
// swapped arguments and is the identity when the two reliabilities agree.
func TransformForTargetReliability(x []float64, rCurrent, rTarget float64, center Center) ([]float64, error) {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.InvalidInput("x must contain only finite values")
		}
	}
	if rCurrent <= 0 || rCurrent > 1 {
		return nil, errors.InvalidDomain("r_current must be in (0, 1]")
	}
	if rTarget <= 0 || rTarget > 1 {
		return nil, errors.InvalidDomain("r_target must be in (0, 1]")
	}

	var c float64
	var err error
	switch center {
	case CenterMean, "":
		c, err = stats.Mean(x)
	case CenterMedian:
		c, err = stats.Median(x)
	default:
		return nil, errors.InvalidInputf("center must be %q or %q", CenterMean, CenterMedian)
	}
	if err != nil {
		return nil, errors.InvalidInput("x must have at least one observation")
	}

	scale := math.Sqrt(rCurrent / rTarget)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = c + scale*(v-c)
	}
	return out, nil
}

// TransformGroupsForTargetKappa applies a symmetric mean shift to both groups
// so the between-group mean difference scales by
//
//	sqrt(sin(pi/2 * kappaTarget) / sin(pi/2 * kappaCurrent))
//
// while the grand mean of the two group means and every within-group deviation
// are preserved. This mirrors AttenuateD onto empirical samples: only the
// separation moves, not the spread.
func TransformGroupsForTargetKappa(group1, group2 []float64, kappaCurrent, kappaTarget float64) ([]float64, []float64, error) {
	for _, g := range [][]float64{group1, group2} {
		for _, v := range g {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, errors.InvalidInput("group1 and group2 must contain only finite values")
			}
		}
	}
	if kappaCurrent <= 0 || kappaCurrent > 1 {
		return nil, nil, errors.InvalidDomain("kappa_current must be in (0, 1]")
	}
	if kappaTarget <= 0 || kappaTarget > 1 {
		return nil, nil, errors.InvalidDomain("kappa_target must be in (0, 1]")
	}

	sinCur := math.Sin(math.Pi / 2 * kappaCurrent)
	sinTgt := math.Sin(math.Pi / 2 * kappaTarget)
	if sinCur <= 0 {
		return nil, nil, errors.InvalidDomain("sin(pi/2 * kappa_current) must be > 0")
	}

	scale := math.Sqrt(sinTgt / sinCur)
	if math.Abs(scale-1) < 1e-12 {
		return group1, group2, nil
	}

	m1, err := stats.Mean(group1)
	if err != nil {
		return nil, nil, errors.InvalidInput("group1 must have at least one observation")
	}
	m2, err := stats.Mean(group2)
	if err != nil {
		return nil, nil, errors.InvalidInput("group2 must have at least one observation")
	}

	delta := m2 - m1
	shift := 0.5 * (delta*scale - delta)

	out1 := make([]float64, len(group1))
	for i, v := range group1 {
		out1[i] = v - shift
	}
	out2 := make([]float64, len(group2))
	for i, v := range group2 {
		out2[i] = v + shift
	}
	return out1, out2, nil
}
