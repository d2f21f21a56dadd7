package parametric

import (
	"encoding/json"

	"e2pred/domain/metrics"
	"e2pred/internal/jsonx"
)

// Record is the flat parametric result: point estimates only, field names
// matching the wire representation consumed by the CLI and HTTP adapters.
// Created fresh per invocation and never mutated afterwards.
type Record struct {
	// Input parameters.
	CohensDTrue     float64 `json:"cohens_d_true"`
	CohensDObserved float64 `json:"cohens_d_observed"`
	BaseRate        float64 `json:"base_rate"`
	ThresholdProb   float64 `json:"threshold_prob"`
	ICC1            float64 `json:"icc1"`
	ICC2            float64 `json:"icc2"`
	Kappa           float64 `json:"kappa"`

	// Effect sizes.
	OddsRatio      float64 `json:"odds_ratio"`
	LogOddsRatio   float64 `json:"log_odds_ratio"`
	CohensU3       float64 `json:"cohens_u3"`
	PointBiserialR float64 `json:"point_biserial_r"`
	EtaSquared     float64 `json:"eta_squared"`

	// Discrimination.
	ROCAUC float64 `json:"roc_auc"`
	PRAUC  float64 `json:"pr_auc"`

	// Threshold-dependent battery at ThresholdValue.
	ThresholdValue float64 `json:"threshold_value"`
	metrics.ThresholdMetrics
}

// recordWire is the flat JSON shape of the record. The battery statistic is
// "kappa_statistic" here, keeping it distinct from the "kappa" reliability
// input; the empirical record has no such collision and keeps "kappa".
type recordWire struct {
	CohensDTrue     jsonx.Float `json:"cohens_d_true"`
	CohensDObserved jsonx.Float `json:"cohens_d_observed"`
	BaseRate        jsonx.Float `json:"base_rate"`
	ThresholdProb   jsonx.Float `json:"threshold_prob"`
	ICC1            jsonx.Float `json:"icc1"`
	ICC2            jsonx.Float `json:"icc2"`
	Kappa           jsonx.Float `json:"kappa"`

	OddsRatio      jsonx.Float `json:"odds_ratio"`
	LogOddsRatio   jsonx.Float `json:"log_odds_ratio"`
	CohensU3       jsonx.Float `json:"cohens_u3"`
	PointBiserialR jsonx.Float `json:"point_biserial_r"`
	EtaSquared     jsonx.Float `json:"eta_squared"`

	ROCAUC jsonx.Float `json:"roc_auc"`
	PRAUC  jsonx.Float `json:"pr_auc"`

	ThresholdValue    jsonx.Float `json:"threshold_value"`
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
	KappaStatistic    jsonx.Float `json:"kappa_statistic"`
	PostTestProbPlus  jsonx.Float `json:"post_test_prob_plus"`
	PostTestProbMinus jsonx.Float `json:"post_test_prob_minus"`
	DeltaNB           jsonx.Float `json:"delta_nb"`
}

// MarshalJSON flattens the record into one JSON object. The embedded battery
// has its own marshaler, which would otherwise hijack the whole record
// through method promotion, so the record spells out every field.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordWire{
		CohensDTrue:       jsonx.Float(r.CohensDTrue),
		CohensDObserved:   jsonx.Float(r.CohensDObserved),
		BaseRate:          jsonx.Float(r.BaseRate),
		ThresholdProb:     jsonx.Float(r.ThresholdProb),
		ICC1:              jsonx.Float(r.ICC1),
		ICC2:              jsonx.Float(r.ICC2),
		Kappa:             jsonx.Float(r.Kappa),
		OddsRatio:         jsonx.Float(r.OddsRatio),
		LogOddsRatio:      jsonx.Float(r.LogOddsRatio),
		CohensU3:          jsonx.Float(r.CohensU3),
		PointBiserialR:    jsonx.Float(r.PointBiserialR),
		EtaSquared:        jsonx.Float(r.EtaSquared),
		ROCAUC:            jsonx.Float(r.ROCAUC),
		PRAUC:             jsonx.Float(r.PRAUC),
		ThresholdValue:    jsonx.Float(r.ThresholdValue),
		Sensitivity:       jsonx.Float(r.Sensitivity),
		Specificity:       jsonx.Float(r.Specificity),
		PPV:               jsonx.Float(r.PPV),
		NPV:               jsonx.Float(r.NPV),
		Accuracy:          jsonx.Float(r.Accuracy),
		BalancedAccuracy:  jsonx.Float(r.BalancedAccuracy),
		F1:                jsonx.Float(r.F1),
		MCC:               jsonx.Float(r.MCC),
		LRPlus:            jsonx.Float(r.LRPlus),
		LRMinus:           jsonx.Float(r.LRMinus),
		DOR:               jsonx.Float(r.DOR),
		YoudenJ:           jsonx.Float(r.YoudenJ),
		GMean:             jsonx.Float(r.GMean),
		KappaStatistic:    jsonx.Float(r.KappaStatistic),
		PostTestProbPlus:  jsonx.Float(r.PostTestProbPlus),
		PostTestProbMinus: jsonx.Float(r.PostTestProbMinus),
		DeltaNB:           jsonx.Float(r.DeltaNB),
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Record{
		CohensDTrue:     float64(w.CohensDTrue),
		CohensDObserved: float64(w.CohensDObserved),
		BaseRate:        float64(w.BaseRate),
		ThresholdProb:   float64(w.ThresholdProb),
		ICC1:            float64(w.ICC1),
		ICC2:            float64(w.ICC2),
		Kappa:           float64(w.Kappa),
		OddsRatio:       float64(w.OddsRatio),
		LogOddsRatio:    float64(w.LogOddsRatio),
		CohensU3:        float64(w.CohensU3),
		PointBiserialR:  float64(w.PointBiserialR),
		EtaSquared:      float64(w.EtaSquared),
		ROCAUC:          float64(w.ROCAUC),
		PRAUC:           float64(w.PRAUC),
		ThresholdValue:  float64(w.ThresholdValue),
		ThresholdMetrics: metrics.ThresholdMetrics{
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
		},
	}
	return nil
}
