// Package app wires the domain engines behind the Analyzer port, attaching
// run identity and logging to every analysis.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"e2pred/domain/effectsize"
	"e2pred/domain/empirical"
	"e2pred/domain/parametric"
	"e2pred/domain/reliability"
	"e2pred/internal"
	"e2pred/internal/errors"
	"e2pred/ports"
)

// AnalysisService implements ports.Analyzer over the parametric and empirical
// engines.
type AnalysisService struct {
	logger   *internal.Logger
	defaults empirical.Config
}

// NewAnalysisService creates an analysis service. The empirical config acts
// as the default for requests that leave theirs zero.
func NewAnalysisService(logger *internal.Logger, defaults empirical.Config) *AnalysisService {
	return &AnalysisService{
		logger:   logger.Named("analysis"),
		defaults: defaults,
	}
}

func (s *AnalysisService) ParametricBinary(ctx context.Context, params parametric.Params) (*ports.ParametricResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	rec, err := parametric.Binary(params)
	if err != nil {
		s.logger.Warn("parametric binary analysis rejected: run_id=%s err=%v", runID, err)
		return nil, err
	}

	s.logger.Info("parametric binary analysis: run_id=%s d=%.4f base_rate=%.4f elapsed=%s",
		runID, params.CohensD, params.BaseRate, time.Since(start))
	return &ports.ParametricResult{RunID: runID, Record: rec}, nil
}

func (s *AnalysisService) ParametricContinuous(ctx context.Context, params parametric.ContinuousParams) (*ports.ParametricResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	rec, err := parametric.Continuous(params)
	if err != nil {
		s.logger.Warn("parametric continuous analysis rejected: run_id=%s err=%v", runID, err)
		return nil, err
	}

	s.logger.Info("parametric continuous analysis: run_id=%s r=%.4f base_rate=%.4f elapsed=%s",
		runID, params.PearsonR, params.BaseRate, time.Since(start))
	return &ports.ParametricResult{RunID: runID, Record: rec}, nil
}

func (s *AnalysisService) EmpiricalBinary(ctx context.Context, req ports.EmpiricalBinaryRequest) (*ports.EmpiricalResult, error) {
	b, err := s.newBinary(req)
	if err != nil {
		return nil, err
	}
	return s.runEmpirical(ctx, "empirical binary", func(ctx context.Context) (*empirical.Record, error) {
		return b.Compute(ctx)
	})
}

func (s *AnalysisService) EmpiricalBinaryDeattenuated(ctx context.Context, req ports.EmpiricalBinaryRequest, shift empirical.ReliabilityShift) (*ports.EmpiricalResult, error) {
	b, err := s.newBinary(req)
	if err != nil {
		return nil, err
	}
	return s.runEmpirical(ctx, "empirical binary deattenuated", func(ctx context.Context) (*empirical.Record, error) {
		return b.ComputeAtReliability(ctx, shift)
	})
}

func (s *AnalysisService) EmpiricalContinuous(ctx context.Context, req ports.EmpiricalContinuousRequest) (*ports.EmpiricalResult, error) {
	c, err := s.newContinuous(req)
	if err != nil {
		return nil, err
	}
	return s.runEmpirical(ctx, "empirical continuous", func(ctx context.Context) (*empirical.Record, error) {
		return c.Compute(ctx)
	})
}

func (s *AnalysisService) EmpiricalContinuousDeattenuated(ctx context.Context, req ports.EmpiricalContinuousRequest, shift empirical.ReliabilityShift) (*ports.EmpiricalResult, error) {
	c, err := s.newContinuous(req)
	if err != nil {
		return nil, err
	}
	return s.runEmpirical(ctx, "empirical continuous deattenuated", func(ctx context.Context) (*empirical.Record, error) {
		return c.ComputeAtReliability(ctx, shift)
	})
}

func (s *AnalysisService) Convert(value float64, from, to effectsize.Measure, baseRate float64) (*effectsize.Conversion, error) {
	conv, err := effectsize.Convert(value, from, to, baseRate)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *AnalysisService) OptimalThreshold(params parametric.Params, metric parametric.OptimizeMetric) (*ports.OptimalThresholdResult, error) {
	runID := uuid.NewString()

	if metric == "" {
		metric = parametric.OptimizeYouden
	}
	threshold, pt, tm, err := parametric.OptimalThreshold(params, metric)
	if err != nil {
		s.logger.Warn("optimal threshold search rejected: run_id=%s err=%v", runID, err)
		return nil, err
	}

	s.logger.Info("optimal threshold: run_id=%s metric=%s threshold=%.6f pt=%.6f", runID, metric, threshold, pt)
	return &ports.OptimalThresholdResult{
		RunID:          runID,
		Metric:         string(metric),
		ThresholdValue: threshold,
		ThresholdProb:  pt,
		Metrics:        tm,
	}, nil
}

// ReliabilityAttenuation reports how label reliability (kappa) and
// measurement reliability (icc) shrink a true Cohen's d.
func (s *AnalysisService) ReliabilityAttenuation(trueD, kappa, icc float64) (*ports.ReliabilityAttenuationResult, error) {
	runID := uuid.NewString()

	if kappa <= 0 || kappa > 1 {
		return nil, errors.InvalidDomain("kappa must be in (0, 1]")
	}
	sigma, err := reliability.SigmaFromICC(icc)
	if err != nil {
		return nil, err
	}
	observed := reliability.AttenuateD(trueD, kappa)

	s.logger.Info("reliability attenuation: run_id=%s d=%.4f kappa=%.4f icc=%.4f observed=%.4f",
		runID, trueD, kappa, icc, observed)
	return &ports.ReliabilityAttenuationResult{
		RunID:           runID,
		CohensDTrue:     trueD,
		CohensDObserved: observed,
		Kappa:           kappa,
		ICC:             icc,
		SigmaInflation:  sigma,
	}, nil
}

func (s *AnalysisService) newBinary(req ports.EmpiricalBinaryRequest) (*empirical.Binary, error) {
	return empirical.NewBinary(req.Group1, req.Group2, req.BaseRate, req.ThresholdProb, s.mergeConfig(req.Config))
}

func (s *AnalysisService) newContinuous(req ports.EmpiricalContinuousRequest) (*empirical.Continuous, error) {
	return empirical.NewContinuous(req.X, req.Y, req.BaseRate, req.ThresholdProb, s.mergeConfig(req.Config))
}

func (s *AnalysisService) mergeConfig(cfg empirical.Config) empirical.Config {
	if cfg.NBootstrap == 0 {
		cfg.NBootstrap = s.defaults.NBootstrap
	}
	if cfg.CILevel == 0 {
		cfg.CILevel = s.defaults.CILevel
	}
	if cfg.Seed == 0 {
		cfg.Seed = s.defaults.Seed
	}
	if cfg.Workers == 0 {
		cfg.Workers = s.defaults.Workers
	}
	return cfg
}

func (s *AnalysisService) runEmpirical(ctx context.Context, kind string, run func(context.Context) (*empirical.Record, error)) (*ports.EmpiricalResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	rec, err := run(ctx)
	if err != nil {
		s.logger.Warn("%s analysis failed: run_id=%s err=%v", kind, runID, err)
		return nil, err
	}

	s.logger.Info("%s analysis: run_id=%s n1=%d n2=%d elapsed=%s",
		kind, runID, rec.NGroup1, rec.NGroup2, time.Since(start))
	return &ports.EmpiricalResult{RunID: runID, Record: rec}, nil
}
