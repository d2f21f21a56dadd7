// Package empirical estimates the same metric battery as the parametric
// engine, but from two raw samples: nonparametric effect sizes, Mann-Whitney
// ROC-AUC, a KDE-based threshold solver, and bootstrap percentile confidence
// intervals on every metric.
package empirical

import (
	"context"
	"math"
	"time"

	"e2pred/domain/metrics"
	"e2pred/domain/reliability"
	"e2pred/internal/errors"
)

const defaultCILevel = 0.95

// Config controls bootstrap resampling. NBootstrap 0 disables the bootstrap
// and every interval collapses to its point estimate; callers wanting the
// usual 1000 resamples get them from the config/service layer. A zero Seed
// draws a fresh one per analysis; set it for reproducible intervals.
// Workers <= 0 means serial.
type Config struct {
	NBootstrap int
	CILevel    float64
	Seed       int64
	Workers    int
}

func (c Config) withDefaults() Config {
	if c.CILevel == 0 {
		c.CILevel = defaultCILevel
	}
	return c
}

func (c Config) validate() error {
	if c.NBootstrap < 0 {
		return errors.InvalidDomain("n_bootstrap must be >= 0")
	}
	if c.CILevel <= 0 || c.CILevel >= 1 {
		return errors.InvalidDomain("ci_level must be in (0, 1)")
	}
	return nil
}

func (c Config) seedOrRandom() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// ReliabilityShift describes a deterministic reliability transform applied to
// both groups before analysis. RCurrent/RTarget apply a shared measurement
// reliability rescale; setting PerGroup switches to the R1/R2 pairs instead.
// A non-zero KappaCurrent additionally rescales the group separation for
// label reliability KappaCurrent -> KappaTarget.
type ReliabilityShift struct {
	RCurrent float64
	RTarget  float64

	PerGroup  bool
	R1Current float64
	R1Target  float64
	R2Current float64
	R2Target  float64

	KappaCurrent float64
	KappaTarget  float64

	Center reliability.Center
}

// Binary estimates classification performance from two measured samples,
// group1 the controls and group2 the cases, under a declared real-world base
// rate. The sample split ratio carries no prevalence information; only the
// declared base rate does.
type Binary struct {
	group1, group2 []float64
	baseRate       float64
	thresholdProb  float64
	cfg            Config
}

// NewBinary validates the samples and analysis parameters. Both groups must
// be non-empty and finite; baseRate and thresholdProb strictly in (0, 1).
func NewBinary(group1, group2 []float64, baseRate, thresholdProb float64, cfg Config) (*Binary, error) {
	if len(group1) == 0 || len(group2) == 0 {
		return nil, errors.InvalidInput("group1 and group2 must be non-empty")
	}
	for _, g := range [][]float64{group1, group2} {
		for _, v := range g {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.InvalidInput("group1 and group2 must contain only finite values")
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
	return &Binary{
		group1:        append([]float64(nil), group1...),
		group2:        append([]float64(nil), group2...),
		baseRate:      baseRate,
		thresholdProb: thresholdProb,
		cfg:           cfg,
	}, nil
}

// Compute produces the full record with bootstrap confidence intervals and
// ROC/PR curve coordinates.
func (b *Binary) Compute(ctx context.Context) (*Record, error) {
	est := computeBattery(b.group1, b.group2, b.baseRate, b.thresholdProb)

	lower, upper, err := bootstrapCIs(ctx, b.group1, b.group2, b.baseRate, b.thresholdProb, b.cfg, est)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		NGroup1:       len(b.group1),
		NGroup2:       len(b.group2),
		BaseRate:      b.baseRate,
		ThresholdProb: b.thresholdProb,
	}
	point := est.values()
	for i, slot := range metricSlots(rec) {
		slot.Estimate = point[i]
		slot.CILower = lower[i]
		slot.CIUpper = upper[i]
	}

	roc := ComputeROCCurve(b.group1, b.group2)
	pr := ComputePRCurve(b.group1, b.group2, b.baseRate)
	rec.ROCCurve = &roc
	rec.PRCurve = &pr
	return rec, nil
}

// ComputeAtThreshold recomputes the threshold-dependent battery at a
// different decision threshold probability, without bootstrapping.
func (b *Binary) ComputeAtThreshold(thresholdProb float64) (float64, metrics.ThresholdMetrics, error) {
	if thresholdProb <= 0 || thresholdProb >= 1 {
		return 0, metrics.ThresholdMetrics{}, errors.InvalidDomain("threshold_prob must be in (0, 1)")
	}
	threshold := ThresholdFromPt(b.group1, b.group2, b.baseRate, thresholdProb)
	sens := proportionAtOrAbove(b.group2, threshold)
	spec := proportionBelow(b.group1, threshold)
	return threshold, metrics.FromRates(sens, spec, b.baseRate, thresholdProb), nil
}

// ComputeAtReliability applies the shift's deterministic transforms to both
// groups and runs the full analysis on the transformed data. The original
// samples are left untouched.
func (b *Binary) ComputeAtReliability(ctx context.Context, shift ReliabilityShift) (*Record, error) {
	g1, g2, err := applyShift(b.group1, b.group2, shift)
	if err != nil {
		return nil, err
	}
	shifted := *b
	shifted.group1 = g1
	shifted.group2 = g2
	return shifted.Compute(ctx)
}

func applyShift(group1, group2 []float64, shift ReliabilityShift) ([]float64, []float64, error) {
	var g1, g2 []float64
	var err error
	if shift.PerGroup {
		g1, err = reliability.TransformForTargetReliability(group1, shift.R1Current, shift.R1Target, shift.Center)
		if err != nil {
			return nil, nil, err
		}
		g2, err = reliability.TransformForTargetReliability(group2, shift.R2Current, shift.R2Target, shift.Center)
		if err != nil {
			return nil, nil, err
		}
	} else {
		g1, err = reliability.TransformForTargetReliability(group1, shift.RCurrent, shift.RTarget, shift.Center)
		if err != nil {
			return nil, nil, err
		}
		g2, err = reliability.TransformForTargetReliability(group2, shift.RCurrent, shift.RTarget, shift.Center)
		if err != nil {
			return nil, nil, err
		}
	}

	if shift.KappaCurrent != 0 {
		g1, g2, err = reliability.TransformGroupsForTargetKappa(g1, g2, shift.KappaCurrent, shift.KappaTarget)
		if err != nil {
			return nil, nil, err
		}
	}
	return g1, g2, nil
}
