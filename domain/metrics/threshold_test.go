package metrics

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFromRatesMidpoint(t *testing.T) {
	m := FromRates(0.8, 0.7, 0.1, 0.5)

	if math.Abs(m.Accuracy-(0.8*0.1+0.7*0.9)) > 1e-12 {
		t.Errorf("accuracy = %v", m.Accuracy)
	}
	if math.Abs(m.BalancedAccuracy-0.75) > 1e-12 {
		t.Errorf("balanced accuracy = %v", m.BalancedAccuracy)
	}
	if math.Abs(m.YoudenJ-0.5) > 1e-12 {
		t.Errorf("youden j = %v", m.YoudenJ)
	}
	if math.Abs(m.GMean-math.Sqrt(0.8*0.7)) > 1e-12 {
		t.Errorf("g-mean = %v", m.GMean)
	}

	wantPPV := 0.8 * 0.1 / (0.8*0.1 + 0.3*0.9)
	if math.Abs(m.PPV-wantPPV) > 1e-12 {
		t.Errorf("ppv = %v, want %v", m.PPV, wantPPV)
	}
	wantLRPlus := 0.8 / 0.3
	if math.Abs(m.LRPlus-wantLRPlus) > 1e-12 {
		t.Errorf("lr+ = %v, want %v", m.LRPlus, wantLRPlus)
	}
}

// The degenerate-denominator conventions are load-bearing: callers rely on
// these exact values instead of errors.
func TestFromRatesConventions(t *testing.T) {
	t.Run("ppv is 1 when sensitivity is 0", func(t *testing.T) {
		m := FromRates(0, 1, 0.1, 0.5)
		if m.PPV != 1 {
			t.Errorf("ppv = %v, want 1", m.PPV)
		}
		if m.F1 != 0 {
			t.Errorf("f1 = %v, want 0", m.F1)
		}
	})

	t.Run("npv is 1 at zero denominator", func(t *testing.T) {
		// spec = 0 and sens = 1 leaves no predicted negatives.
		m := FromRates(1, 0, 0.1, 0.5)
		if m.NPV != 1 {
			t.Errorf("npv = %v, want 1", m.NPV)
		}
	})

	t.Run("likelihood ratios go infinite", func(t *testing.T) {
		m := FromRates(0.8, 1, 0.1, 0.5)
		if !math.IsInf(m.LRPlus, 1) {
			t.Errorf("lr+ = %v, want +Inf", m.LRPlus)
		}
		if !math.IsInf(m.DOR, 1) {
			t.Errorf("dor = %v, want +Inf", m.DOR)
		}
		if m.PostTestProbPlus != 1 {
			t.Errorf("post-test prob+ = %v, want 1 at infinite odds", m.PostTestProbPlus)
		}
	})

	t.Run("lr minus infinite at zero specificity", func(t *testing.T) {
		m := FromRates(0.8, 0, 0.1, 0.5)
		if !math.IsInf(m.LRMinus, 1) {
			t.Errorf("lr- = %v, want +Inf", m.LRMinus)
		}
		if m.PostTestProbMinus != 1 {
			t.Errorf("post-test prob- = %v, want 1 at infinite odds", m.PostTestProbMinus)
		}
	})

	t.Run("dor finite only when both ratios are", func(t *testing.T) {
		// Perfect sensitivity: lr- = 0, dor undefined, stays +Inf.
		m := FromRates(1, 0.7, 0.1, 0.5)
		if !math.IsInf(m.DOR, 1) {
			t.Errorf("dor = %v, want +Inf when lr- is 0", m.DOR)
		}
	})

	t.Run("mcc and kappa are 0 at degenerate rates", func(t *testing.T) {
		// Everything predicted positive: a chance-level classifier.
		m := FromRates(1, 0, 0.1, 0.5)
		if m.MCC != 0 {
			t.Errorf("mcc = %v, want 0", m.MCC)
		}
		if m.KappaStatistic != 0 {
			t.Errorf("kappa = %v, want 0", m.KappaStatistic)
		}
	})
}

func TestDeltaNetBenefit(t *testing.T) {
	t.Run("mid threshold", func(t *testing.T) {
		m := FromRates(0.8, 0.7, 0.3, 0.2)
		odds := 0.2 / 0.8
		nbModel := 0.8*0.3 - 0.3*0.7*odds
		nbTreatAll := 0.3 - 0.7*odds
		want := nbModel - math.Max(nbTreatAll, 0)
		if math.Abs(m.DeltaNB-want) > 1e-12 {
			t.Errorf("delta nb = %v, want %v", m.DeltaNB, want)
		}
	})

	t.Run("pt 1 gives infinite treat-all penalty", func(t *testing.T) {
		m := FromRates(0.8, 0.7, 0.3, 1)
		// nb_model 0, nb_treat_all -Inf, nb_treat_none 0.
		if m.DeltaNB != 0 {
			t.Errorf("delta nb = %v, want 0 at pt=1", m.DeltaNB)
		}
	})
}

func TestThresholdMetricsJSONRoundTrip(t *testing.T) {
	m := FromRates(0.8, 1, 0.1, 0.5) // infinite lr+ and dor

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back ThresholdMetrics
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !math.IsInf(back.LRPlus, 1) || !math.IsInf(back.DOR, 1) {
		t.Errorf("infinities lost: lr+ %v dor %v", back.LRPlus, back.DOR)
	}
	if back.Sensitivity != m.Sensitivity || back.DeltaNB != m.DeltaNB {
		t.Errorf("fields drifted in round trip: %+v vs %+v", back, m)
	}
}
