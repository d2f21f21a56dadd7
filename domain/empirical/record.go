package empirical

import (
	"encoding/json"

	"e2pred/internal/jsonx"
)

// Metric is a point estimate with its bootstrap percentile confidence
// interval. When bootstrapping is disabled, or every resample of a metric was
// non-finite, the interval collapses to the point estimate.
type Metric struct {
	Estimate float64 `json:"estimate"`
	CILower  float64 `json:"ci_lower"`
	CIUpper  float64 `json:"ci_upper"`
}

type metricWire struct {
	Estimate jsonx.Float `json:"estimate"`
	CILower  jsonx.Float `json:"ci_lower"`
	CIUpper  jsonx.Float `json:"ci_upper"`
}

// MarshalJSON goes through jsonx.Float so the infinite likelihood-ratio
// conventions survive the JSON boundary.
func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricWire{
		Estimate: jsonx.Float(m.Estimate),
		CILower:  jsonx.Float(m.CILower),
		CIUpper:  jsonx.Float(m.CIUpper),
	})
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	var w metricWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Metric{
		Estimate: float64(w.Estimate),
		CILower:  float64(w.CILower),
		CIUpper:  float64(w.CIUpper),
	}
	return nil
}

// Record is the full output of an empirical analysis: sample effect sizes,
// discrimination summaries, the threshold battery, and optional ROC and PR
// curve coordinates.
type Record struct {
	NGroup1       int     `json:"n_group1"`
	NGroup2       int     `json:"n_group2"`
	BaseRate      float64 `json:"base_rate"`
	ThresholdProb float64 `json:"threshold_prob"`

	CohensD       Metric `json:"cohens_d"`
	CohensU3      Metric `json:"cohens_u3"`
	PointBiserial Metric `json:"point_biserial_r"`
	EtaSquared    Metric `json:"eta_squared"`
	OddsRatio     Metric `json:"odds_ratio"`
	LogOddsRatio  Metric `json:"log_odds_ratio"`

	ROCAUC Metric `json:"roc_auc"`
	PRAUC  Metric `json:"pr_auc"`

	ThresholdValue Metric `json:"threshold_value"`

	Sensitivity       Metric `json:"sensitivity"`
	Specificity       Metric `json:"specificity"`
	PPV               Metric `json:"ppv"`
	NPV               Metric `json:"npv"`
	Accuracy          Metric `json:"accuracy"`
	BalancedAccuracy  Metric `json:"balanced_accuracy"`
	F1                Metric `json:"f1"`
	MCC               Metric `json:"mcc"`
	LRPlus            Metric `json:"lr_plus"`
	LRMinus           Metric `json:"lr_minus"`
	DOR               Metric `json:"dor"`
	YoudenJ           Metric `json:"youden_j"`
	GMean             Metric `json:"g_mean"`
	KappaStatistic    Metric `json:"kappa"`
	PostTestProbPlus  Metric `json:"post_test_prob_plus"`
	PostTestProbMinus Metric `json:"post_test_prob_minus"`
	DeltaNB           Metric `json:"delta_nb"`

	ROCCurve *ROCCurve `json:"roc_curve,omitempty"`
	PRCurve  *PRCurve  `json:"pr_curve,omitempty"`
}
