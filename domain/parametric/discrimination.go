package parametric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// prGridPoints is the threshold grid density for PR-AUC integration.
const prGridPoints = 500

// ROCAUC computes the closed-form ROC-AUC for two normal distributions
// N(0, sigma1) and N(d, sigma2):
//
//	AUC = Phi(d_att / sqrt(2)),  d_att = d*sqrt(2)/sqrt(sigma1^2+sigma2^2)
//
// Non-decreasing in d for fixed sigmas.
func ROCAUC(d, sigma1, sigma2 float64) float64 {
	dAtt := d * math.Sqrt2 / math.Sqrt(sigma1*sigma1+sigma2*sigma2)
	return stdNormal.CDF(dAtt / math.Sqrt2)
}

// PRAUC integrates precision over recall for the idealized two-Gaussian model
// at a given base rate. There is no closed form; the integral runs over a
// dense threshold grid spanning six standard deviations past both population
// means, with boundary points (recall 0, precision 1) and
// (recall 1, precision baseRate) appended. Degenerate base rates
// short-circuit: 0 when baseRate <= 0, 1 when baseRate >= 1.
func PRAUC(d, baseRate, sigma1, sigma2 float64) float64 {
	if baseRate <= 0 {
		return 0
	}
	if baseRate >= 1 {
		return 1
	}

	pop := NewPopulation(d, sigma1, sigma2)
	maxSigma := pop.maxSigma()
	minThresh := math.Min(0, d) - 6*maxSigma
	maxThresh := math.Max(0, d) + 6*maxSigma

	type prPoint struct {
		recall    float64
		precision float64
	}
	points := make([]prPoint, 0, prGridPoints+2)
	points = append(points, prPoint{recall: 0, precision: 1})

	step := (maxThresh - minThresh) / float64(prGridPoints-1)
	for i := 0; i < prGridPoints; i++ {
		t := maxThresh - float64(i)*step
		recall := pop.Sensitivity(t)
		fpr := pop.FalsePositiveRate(t)

		num := baseRate * recall
		denom := num + (1-baseRate)*fpr
		precision := 1.0
		if denom >= 1e-9 {
			precision = num / denom
		}
		points = append(points, prPoint{recall: recall, precision: precision})
	}
	points = append(points, prPoint{recall: 1, precision: baseRate})

	sort.SliceStable(points, func(i, j int) bool { return points[i].recall < points[j].recall })

	// Deduplicate by recall, keeping the first point at each value.
	unique := points[:1]
	for _, pt := range points[1:] {
		if pt.recall != unique[len(unique)-1].recall {
			unique = append(unique, pt)
		}
	}

	area := 0.0
	for i := 1; i < len(unique); i++ {
		dr := unique[i].recall - unique[i-1].recall
		area += dr * (unique[i].precision + unique[i-1].precision) / 2
	}

	return math.Min(math.Max(area, 0), 1)
}
