package parametric

import (
	"e2pred/domain/effectsize"
	"e2pred/domain/metrics"
	"e2pred/domain/reliability"
	"e2pred/internal/errors"
)

// View selects whether metrics describe the latent (true) distributions or the
// reliability-attenuated (observed) ones.
type View string

const (
	ViewTrue     View = "true"
	ViewObserved View = "observed"
)

// Params are the inputs for a parametric binary-outcome analysis. Every field
// is validated exactly as given; a zero threshold probability or reliability
// is rejected, not defaulted. Build with NewParams for the conventional
// starting values.
type Params struct {
	CohensD       float64
	BaseRate      float64
	ThresholdProb float64
	ICC1          float64
	ICC2          float64
	Kappa         float64
	View          View
}

// NewParams returns analysis inputs for a true Cohen's d at the declared base
// rate with the conventional defaults: threshold probability 0.5, perfect
// reliabilities, observed view. Override fields as needed before analysis.
func NewParams(cohensD, baseRate float64) Params {
	return Params{
		CohensD:       cohensD,
		BaseRate:      baseRate,
		ThresholdProb: 0.5,
		ICC1:          1,
		ICC2:          1,
		Kappa:         1,
		View:          ViewObserved,
	}
}

func (p Params) validate() error {
	if p.BaseRate <= 0 || p.BaseRate >= 1 {
		return errors.InvalidDomain("base_rate must be between 0 and 1 (exclusive)")
	}
	if p.ThresholdProb <= 0 || p.ThresholdProb >= 1 {
		return errors.InvalidDomain("threshold_prob must be between 0 and 1 (exclusive)")
	}
	if p.ICC1 <= 0 || p.ICC1 > 1 {
		return errors.InvalidDomain("icc1 must be in (0, 1]")
	}
	if p.ICC2 <= 0 || p.ICC2 > 1 {
		return errors.InvalidDomain("icc2 must be in (0, 1]")
	}
	if p.Kappa <= 0 || p.Kappa > 1 {
		return errors.InvalidDomain("kappa must be in (0, 1]")
	}
	if p.View != ViewTrue && p.View != ViewObserved {
		return errors.InvalidInputf("view must be %q or %q", ViewTrue, ViewObserved)
	}
	return nil
}

// Binary computes the full metric record from a true Cohen's d under the
// two-Gaussian model, attenuating by label reliability (kappa) and inflating
// group variances by measurement unreliability (ICC) when the observed view is
// requested.
func Binary(params Params) (*Record, error) {
	p := params
	if p.View == "" {
		p.View = ViewObserved
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	dObserved := reliability.AttenuateD(p.CohensD, p.Kappa)

	sigma1, sigma2 := 1.0, 1.0
	dEff := p.CohensD
	if p.View == ViewObserved {
		var err error
		if sigma1, err = reliability.SigmaFromICC(p.ICC1); err != nil {
			return nil, err
		}
		if sigma2, err = reliability.SigmaFromICC(p.ICC2); err != nil {
			return nil, err
		}
		dEff = dObserved
	}

	rec, err := assemble(dEff, p.BaseRate, p.ThresholdProb, sigma1, sigma2)
	if err != nil {
		return nil, err
	}
	rec.CohensDTrue = p.CohensD
	rec.CohensDObserved = dObserved
	rec.ICC1 = p.ICC1
	rec.ICC2 = p.ICC2
	rec.Kappa = p.Kappa
	return rec, nil
}

// OptimalThreshold finds the threshold maximizing the chosen metric for the
// effective population implied by params, then evaluates the battery there.
// It returns the threshold, its equivalent decision threshold probability,
// and the metrics at that operating point.
func OptimalThreshold(params Params, metric OptimizeMetric) (threshold, pt float64, tm metrics.ThresholdMetrics, err error) {
	p := params
	if p.View == "" {
		p.View = ViewObserved
	}
	if err = p.validate(); err != nil {
		return 0, 0, metrics.ThresholdMetrics{}, err
	}

	sigma1, sigma2 := 1.0, 1.0
	dEff := p.CohensD
	if p.View == ViewObserved {
		if sigma1, err = reliability.SigmaFromICC(p.ICC1); err != nil {
			return 0, 0, metrics.ThresholdMetrics{}, err
		}
		if sigma2, err = reliability.SigmaFromICC(p.ICC2); err != nil {
			return 0, 0, metrics.ThresholdMetrics{}, err
		}
		dEff = reliability.AttenuateD(p.CohensD, p.Kappa)
	}

	pop := NewPopulation(dEff, sigma1, sigma2)
	threshold, err = FindOptimalThreshold(pop, p.BaseRate, metric)
	if err != nil {
		return 0, 0, metrics.ThresholdMetrics{}, err
	}
	pt = PtFromThreshold(pop, threshold, p.BaseRate)
	tm = metrics.FromRates(pop.Sensitivity(threshold), pop.Specificity(threshold), p.BaseRate, pt)
	return threshold, pt, tm, nil
}

// assemble derives every metric for an effective d and per-group sigmas.
func assemble(dEff, baseRate, thresholdProb, sigma1, sigma2 float64) (*Record, error) {
	pop := NewPopulation(dEff, sigma1, sigma2)
	threshold := ThresholdFromPt(pop, thresholdProb, baseRate)

	pt := PtFromThreshold(pop, threshold, baseRate)
	battery := metrics.FromRates(pop.Sensitivity(threshold), pop.Specificity(threshold), baseRate, pt)

	pbr, err := effectsize.DToPointBiserialR(dEff, baseRate)
	if err != nil {
		return nil, err
	}

	return &Record{
		BaseRate:         baseRate,
		ThresholdProb:    thresholdProb,
		OddsRatio:        effectsize.DToOddsRatio(dEff),
		LogOddsRatio:     effectsize.DToLogOddsRatio(dEff),
		CohensU3:         effectsize.DToCohensU3(dEff),
		PointBiserialR:   pbr,
		EtaSquared:       pbr * pbr,
		ROCAUC:           ROCAUC(dEff, sigma1, sigma2),
		PRAUC:            PRAUC(dEff, baseRate, sigma1, sigma2),
		ThresholdValue:   threshold,
		ThresholdMetrics: battery,
	}, nil
}
