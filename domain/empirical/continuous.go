package empirical

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"e2pred/domain/metrics"
	"e2pred/domain/reliability"
	"e2pred/internal/errors"
)

// Continuous estimates classification performance from a continuous predictor
// X against a continuous outcome Y. Y is dichotomized at its (1 - baseRate)
// percentile: the top baseRate share of outcomes become the cases. The split
// is computed once at construction and stays fixed for every subsequent
// operation, including reliability transforms of X.
type Continuous struct {
	x, y          []float64
	isCase        []bool
	yThreshold    float64
	baseRate      float64
	thresholdProb float64
	cfg           Config
}

// NewContinuous validates the paired samples and performs the dichotomization.
// It fails when the split would leave either group empty, which happens when Y
// is too discrete for the requested base rate.
func NewContinuous(x, y []float64, baseRate, thresholdProb float64, cfg Config) (*Continuous, error) {
	if len(x) != len(y) {
		return nil, errors.InvalidInput("x and y must have the same length")
	}
	if len(x) == 0 {
		return nil, errors.InvalidInput("x and y must have at least one observation")
	}
	for _, seq := range [][]float64{x, y} {
		for _, v := range seq {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.InvalidInput("x and y must contain only finite values")
			}
		}
	}
	if baseRate <= 0 || baseRate >= 1 {
		return nil, errors.InvalidDomain("base_rate must be in (0, 1)")
	}
	if thresholdProb <= 0 || thresholdProb >= 1 {
		return nil, errors.InvalidDomain("threshold_prob must be in (0, 1)")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	yThreshold, err := stats.Percentile(y, 100*(1-baseRate))
	if err != nil {
		return nil, errors.InvalidInput("could not compute outcome percentile")
	}

	c := &Continuous{
		x:             append([]float64(nil), x...),
		y:             append([]float64(nil), y...),
		isCase:        make([]bool, len(y)),
		yThreshold:    yThreshold,
		baseRate:      baseRate,
		thresholdProb: thresholdProb,
		cfg:           cfg,
	}
	nCases := 0
	for i, v := range c.y {
		if v >= yThreshold {
			c.isCase[i] = true
			nCases++
		}
	}
	if nCases == 0 || nCases == len(c.y) {
		return nil, errors.InvalidInput("dichotomization produced an empty group")
	}
	return c, nil
}

// YThreshold reports the outcome value used to split cases from controls.
func (c *Continuous) YThreshold() float64 { return c.yThreshold }

func (c *Continuous) split(x []float64) (group1, group2 []float64) {
	for i, v := range x {
		if c.isCase[i] {
			group2 = append(group2, v)
		} else {
			group1 = append(group1, v)
		}
	}
	return group1, group2
}

func (c *Continuous) binary(x []float64) (*Binary, error) {
	group1, group2 := c.split(x)
	return NewBinary(group1, group2, c.baseRate, c.thresholdProb, c.cfg)
}

// Compute dichotomizes and delegates the full analysis to the binary
// estimator.
func (c *Continuous) Compute(ctx context.Context) (*Record, error) {
	b, err := c.binary(c.x)
	if err != nil {
		return nil, err
	}
	return b.Compute(ctx)
}

// ComputeAtThreshold recomputes the threshold battery on the current split at
// a different decision threshold probability.
func (c *Continuous) ComputeAtThreshold(thresholdProb float64) (float64, metrics.ThresholdMetrics, error) {
	b, err := c.binary(c.x)
	if err != nil {
		return 0, metrics.ThresholdMetrics{}, err
	}
	return b.ComputeAtThreshold(thresholdProb)
}

// ComputeAtReliability transforms the predictor X to the target measurement
// reliability and reruns the analysis. The case/control split is NOT
// recomputed: relabeling under a transformed outcome is a different question
// from remeasuring the predictor, so the original assignment stands.
func (c *Continuous) ComputeAtReliability(ctx context.Context, shift ReliabilityShift) (*Record, error) {
	xShifted, err := reliability.TransformForTargetReliability(c.x, shift.RCurrent, shift.RTarget, shift.Center)
	if err != nil {
		return nil, err
	}
	b, err := c.binary(xShifted)
	if err != nil {
		return nil, err
	}
	return b.Compute(ctx)
}
