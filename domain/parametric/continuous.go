package parametric

import (
	"math"

	"e2pred/domain/effectsize"
	"e2pred/internal/errors"
)

// ContinuousParams are the inputs for a parametric continuous-predictor
// analysis: a Pearson correlation between predictor and outcome, with the
// outcome dichotomized at the base rate. Fields are validated exactly as
// given; build with NewContinuousParams for the conventional defaults.
type ContinuousParams struct {
	PearsonR      float64
	BaseRate      float64
	ThresholdProb float64
	ReliabilityX  float64
	ReliabilityY  float64
	View          View
}

// NewContinuousParams returns inputs for a Pearson correlation at the
// declared base rate with threshold probability 0.5, perfect reliabilities
// and the observed view.
func NewContinuousParams(pearsonR, baseRate float64) ContinuousParams {
	return ContinuousParams{
		PearsonR:      pearsonR,
		BaseRate:      baseRate,
		ThresholdProb: 0.5,
		ReliabilityX:  1,
		ReliabilityY:  1,
		View:          ViewObserved,
	}
}

func (p ContinuousParams) validate() error {
	if p.PearsonR <= -1 || p.PearsonR >= 1 {
		return errors.InvalidDomain("pearson_r must be between -1 and 1 (exclusive)")
	}
	if p.BaseRate <= 0 || p.BaseRate >= 1 {
		return errors.InvalidDomain("base_rate must be between 0 and 1 (exclusive)")
	}
	if p.ThresholdProb <= 0 || p.ThresholdProb >= 1 {
		return errors.InvalidDomain("threshold_prob must be between 0 and 1 (exclusive)")
	}
	if p.ReliabilityX <= 0 || p.ReliabilityX > 1 {
		return errors.InvalidDomain("reliability_x must be in (0, 1]")
	}
	if p.ReliabilityY <= 0 || p.ReliabilityY > 1 {
		return errors.InvalidDomain("reliability_y must be in (0, 1]")
	}
	if p.View != ViewTrue && p.View != ViewObserved {
		return errors.InvalidInputf("view must be %q or %q", ViewTrue, ViewObserved)
	}
	return nil
}

// Continuous computes the metric record from a Pearson correlation. The
// observed correlation is r*sqrt(rel_x*rel_y), the classical attenuation
// approximation, deliberately distinct from the binary-mode kappa/ICC model.
// Separation comes from the correlation itself,
// so both group sigmas stay at 1.
func Continuous(params ContinuousParams) (*Record, error) {
	p := params
	if p.View == "" {
		p.View = ViewObserved
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	rObserved := p.PearsonR * math.Sqrt(p.ReliabilityX*p.ReliabilityY)
	rEff := p.PearsonR
	if p.View == ViewObserved {
		rEff = rObserved
	}

	dEff := effectsize.RToD(rEff)
	rec, err := assemble(dEff, p.BaseRate, p.ThresholdProb, 1, 1)
	if err != nil {
		return nil, err
	}

	rec.CohensDTrue = effectsize.RToD(p.PearsonR)
	rec.CohensDObserved = effectsize.RToD(rObserved)
	rec.ICC1 = p.ReliabilityX
	rec.ICC2 = p.ReliabilityY
	rec.Kappa = 1 // label reliability has no continuous-mode analogue
	return rec, nil
}
