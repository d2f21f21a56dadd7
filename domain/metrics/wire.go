package metrics

import (
	"encoding/json"

	"e2pred/internal/jsonx"
)

// thresholdMetricsWire is the JSON shape of ThresholdMetrics. Likelihood
// ratios, DOR and ΔNB can be legitimately infinite, which encoding/json
// refuses to emit for plain float64, so every field goes through jsonx.Float.
type thresholdMetricsWire struct {
	Sensitivity       jsonx.Float `json:"sensitivity"`
	Specificity       jsonx.Float `json:"specificity"`
	PPV               jsonx.Float `json:"ppv"`
	NPV               jsonx.Float `json:"npv"`
	Accuracy          jsonx.Float `json:"accuracy"`
	BalancedAccuracy  jsonx.Float `json:"balanced_accuracy"`
	F1                jsonx.Float `json:"f1"`
	MCC               jsonx.Float `json:"mcc"`
	LRPlus            jsonx.Float `json:"lr_plus"`
	LRMinus           jsonx.Float `json:"lr_minus"`
	DOR               jsonx.Float `json:"dor"`
	YoudenJ           jsonx.Float `json:"youden_j"`
	GMean             jsonx.Float `json:"g_mean"`
	KappaStatistic    jsonx.Float `json:"kappa"`
	PostTestProbPlus  jsonx.Float `json:"post_test_prob_plus"`
	PostTestProbMinus jsonx.Float `json:"post_test_prob_minus"`
	DeltaNB           jsonx.Float `json:"delta_nb"`
}

func (m ThresholdMetrics) wire() thresholdMetricsWire {
	return thresholdMetricsWire{
		Sensitivity:       jsonx.Float(m.Sensitivity),
		Specificity:       jsonx.Float(m.Specificity),
		PPV:               jsonx.Float(m.PPV),
		NPV:               jsonx.Float(m.NPV),
		Accuracy:          jsonx.Float(m.Accuracy),
		BalancedAccuracy:  jsonx.Float(m.BalancedAccuracy),
		F1:                jsonx.Float(m.F1),
		MCC:               jsonx.Float(m.MCC),
		LRPlus:            jsonx.Float(m.LRPlus),
		LRMinus:           jsonx.Float(m.LRMinus),
		DOR:               jsonx.Float(m.DOR),
		YoudenJ:           jsonx.Float(m.YoudenJ),
		GMean:             jsonx.Float(m.GMean),
		KappaStatistic:    jsonx.Float(m.KappaStatistic),
		PostTestProbPlus:  jsonx.Float(m.PostTestProbPlus),
		PostTestProbMinus: jsonx.Float(m.PostTestProbMinus),
		DeltaNB:           jsonx.Float(m.DeltaNB),
	}
}

func (w thresholdMetricsWire) metrics() ThresholdMetrics {
	return ThresholdMetrics{
		Sensitivity:       float64(w.Sensitivity),
		Specificity:       float64(w.Specificity),
		PPV:               float64(w.PPV),
		NPV:               float64(w.NPV),
		Accuracy:          float64(w.Accuracy),
		BalancedAccuracy:  float64(w.BalancedAccuracy),
		F1:                float64(w.F1),
		MCC:               float64(w.MCC),
		LRPlus:            float64(w.LRPlus),
		LRMinus:           float64(w.LRMinus),
		DOR:               float64(w.DOR),
		YoudenJ:           float64(w.YoudenJ),
		GMean:             float64(w.GMean),
		KappaStatistic:    float64(w.KappaStatistic),
		PostTestProbPlus:  float64(w.PostTestProbPlus),
		PostTestProbMinus: float64(w.PostTestProbMinus),
		DeltaNB:           float64(w.DeltaNB),
	}
}

func (m ThresholdMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

func (m *ThresholdMetrics) UnmarshalJSON(data []byte) error {
	var w thresholdMetricsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = w.metrics()
	return nil
}
