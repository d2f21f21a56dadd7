package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"e2pred/adapters/excel"
	"e2pred/app"
	"e2pred/domain/effectsize"
	"e2pred/domain/empirical"
	"e2pred/domain/parametric"
	"e2pred/domain/reliability"
	"e2pred/internal"
	"e2pred/internal/config"
	"e2pred/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "e2pred",
		Short: "Effect-size to classification-performance analysis",
		Long: `e2pred maps an effect size (plus reliability parameters) or two raw
samples to a full battery of discrimination and threshold-dependent
classification metrics.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newParametricCmd(),
		newParametricContinuousCmd(),
		newConvertCmd(),
		newROCAUCCmd(),
		newPRAUCCmd(),
		newOptimalThresholdCmd(),
		newAttenuateCmd(),
		newEmpiricalCmd(),
		newEmpiricalContinuousCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzer() ports.Analyzer {
	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return app.NewAnalysisService(logger, empirical.Config{
		NBootstrap: cfg.Analysis.NBootstrap,
		CILevel:    cfg.Analysis.CILevel,
		Seed:       cfg.Analysis.Seed,
		Workers:    cfg.Analysis.Workers,
	})
}

type parametricFlags struct {
	baseRate      float64
	thresholdProb float64
	icc1          float64
	icc2          float64
	kappa         float64
	view          string
	report        string
}

func (f *parametricFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.baseRate, "base-rate", 0, "Real-world prevalence in (0, 1) (required)")
	cmd.Flags().Float64Var(&f.thresholdProb, "threshold-prob", 0.5, "Decision threshold probability in (0, 1)")
	cmd.Flags().Float64Var(&f.icc1, "icc1", 1, "Measurement reliability of group 1 in (0, 1]")
	cmd.Flags().Float64Var(&f.icc2, "icc2", 1, "Measurement reliability of group 2 in (0, 1]")
	cmd.Flags().Float64Var(&f.kappa, "kappa", 1, "Label reliability in (0, 1]")
	cmd.Flags().StringVar(&f.view, "view", "observed", "Distribution view: true or observed")
	cmd.Flags().StringVar(&f.report, "report", "", "Write the record to an Excel workbook at this path")
	_ = cmd.MarkFlagRequired("base-rate")
}

func (f *parametricFlags) params(d float64) parametric.Params {
	return parametric.Params{
		CohensD:       d,
		BaseRate:      f.baseRate,
		ThresholdProb: f.thresholdProb,
		ICC1:          f.icc1,
		ICC2:          f.icc2,
		Kappa:         f.kappa,
		View:          parametric.View(f.view),
	}
}

func newParametricCmd() *cobra.Command {
	var flags parametricFlags

	cmd := &cobra.Command{
		Use:   "parametric [cohens-d]",
		Short: "Analytic metrics from a true Cohen's d under the two-Gaussian model",
		Long: `Compute the full metric battery analytically from a true Cohen's d.

Example: e2pred parametric 0.8 --base-rate 0.1 --threshold-prob 0.2 --kappa 0.8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloatArg(args[0], "cohens-d")
			if err != nil {
				return err
			}

			result, err := newAnalyzer().ParametricBinary(cmd.Context(), flags.params(d))
			if err != nil {
				return err
			}
			if flags.report != "" {
				if err := excel.WriteParametricReport(flags.report, result.Record); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}

	flags.register(cmd)
	return cmd
}

func newParametricContinuousCmd() *cobra.Command {
	var baseRate, thresholdProb, relX, relY float64
	var view, report string

	cmd := &cobra.Command{
		Use:   "parametric-continuous [pearson-r]",
		Short: "Analytic metrics from a Pearson correlation with a dichotomized outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseFloatArg(args[0], "pearson-r")
			if err != nil {
				return err
			}

			result, err := newAnalyzer().ParametricContinuous(cmd.Context(), parametric.ContinuousParams{
				PearsonR:      r,
				BaseRate:      baseRate,
				ThresholdProb: thresholdProb,
				ReliabilityX:  relX,
				ReliabilityY:  relY,
				View:          parametric.View(view),
			})
			if err != nil {
				return err
			}
			if report != "" {
				if err := excel.WriteParametricReport(report, result.Record); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&baseRate, "base-rate", 0, "Real-world prevalence in (0, 1) (required)")
	cmd.Flags().Float64Var(&thresholdProb, "threshold-prob", 0.5, "Decision threshold probability in (0, 1)")
	cmd.Flags().Float64Var(&relX, "reliability-x", 1, "Predictor reliability in (0, 1]")
	cmd.Flags().Float64Var(&relY, "reliability-y", 1, "Outcome reliability in (0, 1]")
	cmd.Flags().StringVar(&view, "view", "observed", "Distribution view: true or observed")
	cmd.Flags().StringVar(&report, "report", "", "Write the record to an Excel workbook at this path")
	_ = cmd.MarkFlagRequired("base-rate")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var baseRate float64

	measures := make([]string, 0, len(effectsize.Measures()))
	for _, m := range effectsize.Measures() {
		measures = append(measures, string(m))
	}

	cmd := &cobra.Command{
		Use:   "convert [value] [from] [to]",
		Short: "Convert between effect-size measures through canonical Cohen's d",
		Long: fmt.Sprintf(`Convert an effect size between measures. Measures: %s.

point_biserial_r requires --base-rate.

Example: e2pred convert 0.8 cohens_d odds_ratio`, strings.Join(measures, ", ")),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseFloatArg(args[0], "value")
			if err != nil {
				return err
			}

			result, err := newAnalyzer().Convert(value, effectsize.Measure(args[1]), effectsize.Measure(args[2]), baseRate)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&baseRate, "base-rate", 0, "Prevalence, required for point_biserial_r")
	return cmd
}

func newROCAUCCmd() *cobra.Command {
	var sigma1, sigma2 float64

	cmd := &cobra.Command{
		Use:   "roc-auc [cohens-d]",
		Short: "Analytic ROC-AUC for a Cohen's d and per-group sigmas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloatArg(args[0], "cohens-d")
			if err != nil {
				return err
			}
			return printJSON(map[string]float64{"roc_auc": parametric.ROCAUC(d, sigma1, sigma2)})
		},
	}

	cmd.Flags().Float64Var(&sigma1, "sigma1", 1, "Control-group standard deviation")
	cmd.Flags().Float64Var(&sigma2, "sigma2", 1, "Case-group standard deviation")
	return cmd
}

func newPRAUCCmd() *cobra.Command {
	var baseRate, sigma1, sigma2 float64

	cmd := &cobra.Command{
		Use:   "pr-auc [cohens-d]",
		Short: "Analytic PR-AUC for a Cohen's d at a declared prevalence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloatArg(args[0], "cohens-d")
			if err != nil {
				return err
			}
			return printJSON(map[string]float64{"pr_auc": parametric.PRAUC(d, baseRate, sigma1, sigma2)})
		},
	}

	cmd.Flags().Float64Var(&baseRate, "base-rate", 0, "Real-world prevalence in (0, 1) (required)")
	cmd.Flags().Float64Var(&sigma1, "sigma1", 1, "Control-group standard deviation")
	cmd.Flags().Float64Var(&sigma2, "sigma2", 1, "Case-group standard deviation")
	_ = cmd.MarkFlagRequired("base-rate")
	return cmd
}

func newOptimalThresholdCmd() *cobra.Command {
	var flags parametricFlags
	var metric string

	cmd := &cobra.Command{
		Use:   "optimal-threshold [cohens-d]",
		Short: "Find the threshold maximizing Youden's J or F1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloatArg(args[0], "cohens-d")
			if err != nil {
				return err
			}

			result, err := newAnalyzer().OptimalThreshold(flags.params(d), parametric.OptimizeMetric(metric))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&metric, "metric", "youden", "Objective: youden or f1")
	return cmd
}

func newAttenuateCmd() *cobra.Command {
	var kappa, icc float64

	cmd := &cobra.Command{
		Use:   "attenuate [cohens-d]",
		Short: "Show how label and measurement unreliability shrink a true Cohen's d",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloatArg(args[0], "cohens-d")
			if err != nil {
				return err
			}

			result, err := newAnalyzer().ReliabilityAttenuation(d, kappa, icc)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&kappa, "kappa", 1, "Label reliability in (0, 1]")
	cmd.Flags().Float64Var(&icc, "icc", 1, "Measurement reliability in (0, 1]")
	return cmd
}

type empiricalFlags struct {
	baseRate      float64
	thresholdProb float64
	nBootstrap    int
	ciLevel       float64
	seed          int64
	workers       int
	report        string

	rCurrent     float64
	rTarget      float64
	kappaCurrent float64
	kappaTarget  float64
	center       string
}

func (f *empiricalFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.baseRate, "base-rate", 0, "Real-world prevalence in (0, 1) (required)")
	cmd.Flags().Float64Var(&f.thresholdProb, "threshold-prob", 0.5, "Decision threshold probability in (0, 1)")
	cmd.Flags().IntVar(&f.nBootstrap, "n-bootstrap", 0, "Bootstrap resamples (default from config)")
	cmd.Flags().Float64Var(&f.ciLevel, "ci-level", 0, "Confidence level (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed; 0 draws a fresh one")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Bootstrap workers; 0 means serial")
	cmd.Flags().StringVar(&f.report, "report", "", "Write the record to an Excel workbook at this path")
	cmd.Flags().Float64Var(&f.rCurrent, "r-current", 0, "Current measurement reliability; enables the deattenuated analysis")
	cmd.Flags().Float64Var(&f.rTarget, "r-target", 1, "Target measurement reliability")
	cmd.Flags().Float64Var(&f.kappaCurrent, "kappa-current", 0, "Current label reliability; 0 skips the kappa transform")
	cmd.Flags().Float64Var(&f.kappaTarget, "kappa-target", 1, "Target label reliability")
	cmd.Flags().StringVar(&f.center, "center", "mean", "Rescale center: mean or median")
	_ = cmd.MarkFlagRequired("base-rate")
}

func (f *empiricalFlags) config() empirical.Config {
	return empirical.Config{
		NBootstrap: f.nBootstrap,
		CILevel:    f.ciLevel,
		Seed:       f.seed,
		Workers:    f.workers,
	}
}

func (f *empiricalFlags) shift() empirical.ReliabilityShift {
	return empirical.ReliabilityShift{
		RCurrent:     f.rCurrent,
		RTarget:      f.rTarget,
		KappaCurrent: f.kappaCurrent,
		KappaTarget:  f.kappaTarget,
		Center:       reliability.Center(f.center),
	}
}

func newEmpiricalCmd() *cobra.Command {
	var flags empiricalFlags
	var col1, col2 string

	cmd := &cobra.Command{
		Use:   "empirical [file]",
		Short: "Bootstrap metrics from two sample columns in an Excel/CSV file",
		Long: `Estimate the full metric battery with bootstrap confidence intervals from
two raw samples read from the named columns of an Excel or CSV file.

With --r-current set, the groups are first transformed to the target
measurement reliability (and optionally target label reliability).

Example: e2pred empirical scores.xlsx --group1 controls --group2 cases --base-rate 0.1 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group1, group2, err := excel.NewSampleReader(args[0]).ReadGroups(col1, col2)
			if err != nil {
				return err
			}

			analyzer := newAnalyzer()
			req := ports.EmpiricalBinaryRequest{
				Group1:        group1,
				Group2:        group2,
				BaseRate:      flags.baseRate,
				ThresholdProb: flags.thresholdProb,
				Config:        flags.config(),
			}

			var result *ports.EmpiricalResult
			if flags.rCurrent != 0 {
				result, err = analyzer.EmpiricalBinaryDeattenuated(cmd.Context(), req, flags.shift())
			} else {
				result, err = analyzer.EmpiricalBinary(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			if flags.report != "" {
				if err := excel.WriteEmpiricalReport(flags.report, result.Record); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&col1, "group1", "group1", "Column holding the control sample")
	cmd.Flags().StringVar(&col2, "group2", "group2", "Column holding the case sample")
	return cmd
}

func newEmpiricalContinuousCmd() *cobra.Command {
	var flags empiricalFlags
	var colX, colY string

	cmd := &cobra.Command{
		Use:   "empirical-continuous [file]",
		Short: "Bootstrap metrics from paired predictor/outcome columns",
		Long: `Estimate the metric battery from a continuous predictor X and outcome Y.
Y is dichotomized at its (1 - base-rate) percentile; the top base-rate
share of outcomes become the cases.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := excel.NewSampleReader(args[0]).ReadPairs(colX, colY)
			if err != nil {
				return err
			}

			analyzer := newAnalyzer()
			req := ports.EmpiricalContinuousRequest{
				X:             x,
				Y:             y,
				BaseRate:      flags.baseRate,
				ThresholdProb: flags.thresholdProb,
				Config:        flags.config(),
			}

			var result *ports.EmpiricalResult
			if flags.rCurrent != 0 {
				result, err = analyzer.EmpiricalContinuousDeattenuated(cmd.Context(), req, flags.shift())
			} else {
				result, err = analyzer.EmpiricalContinuous(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			if flags.report != "" {
				if err := excel.WriteEmpiricalReport(flags.report, result.Record); err != nil {
					return err
				}
			}
			return printJSON(result)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&colX, "x", "x", "Column holding the predictor")
	cmd.Flags().StringVar(&colY, "y", "y", "Column holding the outcome")
	return cmd
}

func parseFloatArg(arg, name string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, arg)
	}
	return v, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
