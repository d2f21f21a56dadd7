// Package empirical is the nonparametric companion to the parametric engine:
// it estimates the same metric battery directly from two observed samples,
// with bootstrap confidence intervals on every metric. In the large-sample
// Gaussian limit its estimates converge to the analytic engine's.
package empirical

import (
	"math"

	"github.com/montanaflynn/stats"

	"e2pred/domain/effectsize"
)

// CohensD computes the standardized mean difference (group2 minus group1)
// with the pooled sample standard deviation. Zero pooled variance yields 0.
func CohensD(group1, group2 []float64) float64 {
	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1+n2 < 3 {
		return 0
	}
	mean1, _ := stats.Mean(group1)
	mean2, _ := stats.Mean(group2)
	var1, _ := stats.SampleVariance(group1)
	var2, _ := stats.SampleVariance(group2)

	pooled := ((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)
	if pooled <= 0 {
		return 0
	}
	return (mean2 - mean1) / math.Sqrt(pooled)
}

// PointBiserialR computes the correlation between the pooled values and their
// group labels. Zero variance in either dimension yields 0.
func PointBiserialR(group1, group2 []float64) float64 {
	n1, n2 := float64(len(group1)), float64(len(group2))
	n := n1 + n2
	if n < 2 {
		return 0
	}

	sum := 0.0
	for _, v := range group1 {
		sum += v
	}
	for _, v := range group2 {
		sum += v
	}
	grandMean := sum / n
	labelMean := n2 / n

	cov, ssVal, ssLabel := 0.0, 0.0, 0.0
	for _, v := range group1 {
		dv := v - grandMean
		dl := 0 - labelMean
		cov += dv * dl
		ssVal += dv * dv
		ssLabel += dl * dl
	}
	for _, v := range group2 {
		dv := v - grandMean
		dl := 1 - labelMean
		cov += dv * dl
		ssVal += dv * dv
		ssLabel += dl * dl
	}

	denom := math.Sqrt(ssVal * ssLabel)
	if denom == 0 {
		return 0
	}
	return cov / denom
}

// EtaSquared computes the between-group share of total variance from the
// one-way ANOVA decomposition.
func EtaSquared(group1, group2 []float64) float64 {
	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1 == 0 || n2 == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range group1 {
		sum += v
	}
	for _, v := range group2 {
		sum += v
	}
	grandMean := sum / (n1 + n2)

	mean1, _ := stats.Mean(group1)
	mean2, _ := stats.Mean(group2)

	ssBetween := n1*(mean1-grandMean)*(mean1-grandMean) + n2*(mean2-grandMean)*(mean2-grandMean)
	ssTotal := 0.0
	for _, v := range group1 {
		ssTotal += (v - grandMean) * (v - grandMean)
	}
	for _, v := range group2 {
		ssTotal += (v - grandMean) * (v - grandMean)
	}

	if ssTotal == 0 {
		return 0
	}
	return ssBetween / ssTotal
}

// CohensU3 computes the proportion of group2 strictly above group1's median.
func CohensU3(group1, group2 []float64) float64 {
	if len(group1) == 0 || len(group2) == 0 {
		return 0
	}
	median, _ := stats.Median(group1)
	above := 0
	for _, v := range group2 {
		if v > median {
			above++
		}
	}
	return float64(above) / float64(len(group2))
}

// OddsRatio derives odds ratio and log odds ratio from the sample Cohen's d.
func OddsRatio(group1, group2 []float64) (oddsRatio, logOddsRatio float64) {
	d := CohensD(group1, group2)
	logOddsRatio = effectsize.DToLogOddsRatio(d)
	return math.Exp(logOddsRatio), logOddsRatio
}
