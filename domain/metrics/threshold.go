// Package metrics derives the full confusion-matrix battery from operating
// rates at a single decision threshold. Both the parametric engine (rates from
// Gaussian CDFs) and the empirical estimator (rates from sample proportions)
// feed this one implementation, which is what keeps the two paths mutually
// consistent.
package metrics

import (
	"math"
)

// ThresholdMetrics is the threshold-dependent half of a metric record. All
// prevalence-weighted quantities use the declared real-world base rate, not
// the sample split.
type ThresholdMetrics struct {
	Sensitivity       float64 `json:"sensitivity"`
	Specificity       float64 `json:"specificity"`
	PPV               float64 `json:"ppv"`
	NPV               float64 `json:"npv"`
	Accuracy          float64 `json:"accuracy"`
	BalancedAccuracy  float64 `json:"balanced_accuracy"`
	F1                float64 `json:"f1"`
	MCC               float64 `json:"mcc"`
	LRPlus            float64 `json:"lr_plus"`
	LRMinus           float64 `json:"lr_minus"`
	DOR               float64 `json:"dor"`
	YoudenJ           float64 `json:"youden_j"`
	GMean             float64 `json:"g_mean"`
	KappaStatistic    float64 `json:"kappa"`
	PostTestProbPlus  float64 `json:"post_test_prob_plus"`
	PostTestProbMinus float64 `json:"post_test_prob_minus"`
	DeltaNB           float64 `json:"delta_nb"`
}

// FromRates computes the battery from sensitivity and specificity at a chosen
// threshold, the real-world base rate, and the decision threshold probability
// pt used for net benefit.
//
// Zero denominators resolve to fixed conventions rather than errors:
// PPV and NPV are 1 when undefined, F1 and MCC are 0, likelihood ratios go to
// +Inf, the kappa statistic is 0 when chance agreement reaches 1, post-test
// probabilities are 1 at infinite odds, and at pt = 1 the model net benefit is
// 0 against a treat-all benefit of -Inf. These exact values are relied on by
// callers; do not change them.
func FromRates(sens, spec, baseRate, pt float64) ThresholdMetrics {
	m := ThresholdMetrics{
		Sensitivity:      sens,
		Specificity:      spec,
		Accuracy:         sens*baseRate + spec*(1-baseRate),
		BalancedAccuracy: (sens + spec) / 2,
		YoudenJ:          sens + spec - 1,
		GMean:            math.Sqrt(sens * spec),
	}

	// Predictive values.
	ppvDenom := sens*baseRate + (1-spec)*(1-baseRate)
	if sens == 0 || ppvDenom <= 0 {
		m.PPV = 1
	} else {
		m.PPV = sens * baseRate / ppvDenom
	}
	npvDenom := spec*(1-baseRate) + (1-sens)*baseRate
	if npvDenom <= 0 {
		m.NPV = 1
	} else {
		m.NPV = spec * (1 - baseRate) / npvDenom
	}

	if f1Denom := m.PPV + sens; f1Denom > 0 {
		m.F1 = 2 * m.PPV * sens / f1Denom
	}

	// MCC from prevalence-weighted rates, not raw counts.
	tp := sens * baseRate
	tn := spec * (1 - baseRate)
	fp := (1 - spec) * (1 - baseRate)
	fn := (1 - sens) * baseRate
	if mccDenom := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn)); mccDenom > 0 {
		m.MCC = (tp*tn - fp*fn) / mccDenom
	}

	// Likelihood ratios and diagnostic odds ratio.
	m.LRPlus = math.Inf(1)
	if spec < 1 {
		m.LRPlus = sens / (1 - spec)
	}
	m.LRMinus = math.Inf(1)
	if spec > 0 {
		m.LRMinus = (1 - sens) / spec
	}
	m.DOR = math.Inf(1)
	if !math.IsInf(m.LRPlus, 1) && !math.IsInf(m.LRMinus, 1) && m.LRMinus > 0 {
		m.DOR = m.LRPlus / m.LRMinus
	}

	// Cohen's kappa statistic (the output metric, not the label-reliability
	// parameter). Chance agreement uses the predicted positive/negative rates.
	predictedPos := tp + fp
	predictedNeg := tn + fn
	chance := baseRate*predictedPos + (1-baseRate)*predictedNeg
	if chance < 1 {
		m.KappaStatistic = (m.Accuracy - chance) / (1 - chance)
	}

	// Post-test probabilities from pre-test odds scaled by likelihood ratios.
	preOdds := baseRate / (1 - baseRate)
	m.PostTestProbPlus = probFromOdds(preOdds * m.LRPlus)
	m.PostTestProbMinus = probFromOdds(preOdds * m.LRMinus)

	// Decision-curve net benefit against the better of treat-all/treat-none.
	m.DeltaNB = deltaNetBenefit(sens, spec, baseRate, pt)

	return m
}

func probFromOdds(odds float64) float64 {
	if math.IsInf(odds, 1) {
		return 1
	}
	if math.IsNaN(odds) {
		return 1
	}
	return odds / (1 + odds)
}

func deltaNetBenefit(sens, spec, baseRate, pt float64) float64 {
	odds := math.Inf(1)
	if pt < 1 {
		odds = pt / (1 - pt)
	}

	nbModel := 0.0
	nbTreatAll := math.Inf(-1)
	if !math.IsInf(odds, 1) {
		nbModel = sens*baseRate - (1-spec)*(1-baseRate)*odds
		nbTreatAll = baseRate - (1-baseRate)*odds
	}
	nbTreatNone := 0.0

	return nbModel - math.Max(nbTreatAll, nbTreatNone)
}
