// Package effectsize provides the bidirectional analytic mappings between
// Cohen's d and the other common effect-size representations. Cohen's d is the
// canonical internal form; every other measure converts through it.
package effectsize

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"e2pred/internal/errors"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// DToOddsRatio converts Cohen's d to an odds ratio: OR = exp(d*pi/sqrt(3)).
func DToOddsRatio(d float64) float64 {
	return math.Exp(d * math.Pi / math.Sqrt(3))
}

// OddsRatioToD converts an odds ratio to Cohen's d. The odds ratio must be
// strictly positive.
func OddsRatioToD(oddsRatio float64) (float64, error) {
	if oddsRatio <= 0 {
		return 0, errors.InvalidDomain("odds_ratio must be > 0")
	}
	return math.Log(oddsRatio) * math.Sqrt(3) / math.Pi, nil
}

// DToLogOddsRatio converts Cohen's d to a log odds ratio.
func DToLogOddsRatio(d float64) float64 {
	return d * math.Pi / math.Sqrt(3)
}

// LogOddsRatioToD converts a log odds ratio to Cohen's d.
func LogOddsRatioToD(logOddsRatio float64) float64 {
	return logOddsRatio * math.Sqrt(3) / math.Pi
}

// DToCohensU3 computes Cohen's U3, the proportion of the case distribution
// above the control median: U3 = Phi(d).
func DToCohensU3(d float64) float64 {
	return stdNormal.CDF(d)
}

// CohensU3ToD converts Cohen's U3 to d via the inverse normal CDF. U3 must lie
// strictly between 0 and 1.
func CohensU3ToD(u3 float64) (float64, error) {
	if u3 <= 0 || u3 >= 1 {
		return 0, errors.InvalidDomain("u3 must be between 0 and 1 (exclusive)")
	}
	return stdNormal.Quantile(u3), nil
}

// DToPointBiserialR converts Cohen's d to a point-biserial correlation at a
// given base rate: r = d / sqrt(d^2 + 1/(p*(1-p))). At base rate 0.5 this
// reduces to d / sqrt(d^2 + 4).
func DToPointBiserialR(d, baseRate float64) (float64, error) {
	if baseRate <= 0 || baseRate >= 1 {
		return 0, errors.InvalidDomain("base_rate must be between 0 and 1 (exclusive)")
	}
	return d / math.Sqrt(d*d+1/(baseRate*(1-baseRate))), nil
}

// PointBiserialRToD inverts DToPointBiserialR for the same base rate. Returns
// signed infinity at |r| = 1.
func PointBiserialRToD(r, baseRate float64) (float64, error) {
	if baseRate <= 0 || baseRate >= 1 {
		return 0, errors.InvalidDomain("base_rate must be between 0 and 1 (exclusive)")
	}
	if r <= -1 || r >= 1 {
		return math.Copysign(math.Inf(1), r), nil
	}
	c := 1 / (baseRate * (1 - baseRate))
	return r * math.Sqrt(c) / math.Sqrt(1-r*r), nil
}

// RToD converts Pearson's r to Cohen's d using the equal-split approximation
// d = 2r/sqrt(1-r^2). Returns signed infinity at |r| >= 1.
func RToD(r float64) float64 {
	if math.Abs(r) >= 1 {
		return math.Copysign(math.Inf(1), r)
	}
	return 2 * r / math.Sqrt(1-r*r)
}

// DToR inverts RToD: r = d/sqrt(d^2+4).
func DToR(d float64) float64 {
	if math.IsInf(d, 0) {
		return math.Copysign(1, d)
	}
	return d / math.Sqrt(d*d+4)
}

// DToAUC computes the ROC-AUC implied by Cohen's d for equal unit variances:
// AUC = Phi(d/sqrt(2)).
func DToAUC(d float64) float64 {
	return stdNormal.CDF(d / math.Sqrt2)
}

// AUCToD converts a ROC-AUC to Cohen's d: d = Phi^-1(AUC)*sqrt(2).
// AUC at or below 0.5 maps to 0; AUC at or above 1 maps to +infinity.
func AUCToD(auc float64) float64 {
	if auc <= 0.5 {
		return 0
	}
	if auc >= 1 {
		return math.Inf(1)
	}
	return stdNormal.Quantile(auc) * math.Sqrt2
}
