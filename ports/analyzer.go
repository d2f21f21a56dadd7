package ports

import (
	"context"

	"e2pred/domain/effectsize"
	"e2pred/domain/empirical"
	"e2pred/domain/metrics"
	"e2pred/domain/parametric"
)

// Analyzer defines the interface for the analysis engine consumed by the HTTP
// and CLI adapters
type Analyzer interface {
	ParametricBinary(ctx context.Context, params parametric.Params) (*ParametricResult, error)
	ParametricContinuous(ctx context.Context, params parametric.ContinuousParams) (*ParametricResult, error)

	EmpiricalBinary(ctx context.Context, req EmpiricalBinaryRequest) (*EmpiricalResult, error)
	EmpiricalBinaryDeattenuated(ctx context.Context, req EmpiricalBinaryRequest, shift empirical.ReliabilityShift) (*EmpiricalResult, error)
	EmpiricalContinuous(ctx context.Context, req EmpiricalContinuousRequest) (*EmpiricalResult, error)
	EmpiricalContinuousDeattenuated(ctx context.Context, req EmpiricalContinuousRequest, shift empirical.ReliabilityShift) (*EmpiricalResult, error)

	Convert(value float64, from, to effectsize.Measure, baseRate float64) (*effectsize.Conversion, error)
	OptimalThreshold(params parametric.Params, metric parametric.OptimizeMetric) (*OptimalThresholdResult, error)
	ReliabilityAttenuation(trueD, kappa, icc float64) (*ReliabilityAttenuationResult, error)
}

// EmpiricalBinaryRequest carries two raw samples plus the declared prevalence
// and decision threshold probability
type EmpiricalBinaryRequest struct {
	Group1        []float64        `json:"group1"`
	Group2        []float64        `json:"group2"`
	BaseRate      float64          `json:"base_rate"`
	ThresholdProb float64          `json:"threshold_prob"`
	Config        empirical.Config `json:"-"`
}

// EmpiricalContinuousRequest carries paired predictor/outcome sequences
type EmpiricalContinuousRequest struct {
	X             []float64        `json:"x"`
	Y             []float64        `json:"y"`
	BaseRate      float64          `json:"base_rate"`
	ThresholdProb float64          `json:"threshold_prob"`
	Config        empirical.Config `json:"-"`
}

// ParametricResult wraps a parametric record with its run identity
type ParametricResult struct {
	RunID  string             `json:"run_id"`
	Record *parametric.Record `json:"record"`
}

// EmpiricalResult wraps an empirical record with its run identity
type EmpiricalResult struct {
	RunID  string            `json:"run_id"`
	Record *empirical.Record `json:"record"`
}

// ReliabilityAttenuationResult shows how label and measurement unreliability
// shrink a true effect: the attenuated d and the within-group sigma inflation
type ReliabilityAttenuationResult struct {
	RunID           string  `json:"run_id"`
	CohensDTrue     float64 `json:"cohens_d_true"`
	CohensDObserved float64 `json:"cohens_d_observed"`
	Kappa           float64 `json:"kappa"`
	ICC             float64 `json:"icc"`
	SigmaInflation  float64 `json:"sigma_inflation"`
}

// OptimalThresholdResult reports the optimizer's threshold with the battery
// evaluated there
type OptimalThresholdResult struct {
	RunID          string                   `json:"run_id"`
	Metric         string                   `json:"metric"`
	ThresholdValue float64                  `json:"threshold_value"`
	ThresholdProb  float64                  `json:"threshold_prob"`
	Metrics        metrics.ThresholdMetrics `json:"metrics"`
}
