package effectsize

import (
	"math"
	"testing"
)

func TestKnownFixedPoints(t *testing.T) {
	// Benchmark values for a medium-large effect.
	const d = 0.8

	if got := DToOddsRatio(d); math.Abs(got-4.27) > 0.01 {
		t.Errorf("DToOddsRatio(0.8) = %v, want ~4.27", got)
	}
	if got := DToCohensU3(d); math.Abs(got-0.788) > 0.001 {
		t.Errorf("DToCohensU3(0.8) = %v, want ~0.788", got)
	}
	if got := DToAUC(d); math.Abs(got-0.714) > 0.001 {
		t.Errorf("DToAUC(0.8) = %v, want ~0.714", got)
	}
}

func TestRoundTrips(t *testing.T) {
	ds := []float64{-2.5, -0.8, -0.1, 0, 0.1, 0.5, 0.8, 1.2, 2.5}

	for _, d := range ds {
		if got, err := OddsRatioToD(DToOddsRatio(d)); err != nil || !closeRel(got, d, 1e-10) {
			t.Errorf("odds ratio round trip for d=%v: got %v, err %v", d, got, err)
		}
		if got := LogOddsRatioToD(DToLogOddsRatio(d)); !closeRel(got, d, 1e-10) {
			t.Errorf("log odds ratio round trip for d=%v: got %v", d, got)
		}
		if got, err := CohensU3ToD(DToCohensU3(d)); err != nil || !closeRel(got, d, 1e-6) {
			t.Errorf("u3 round trip for d=%v: got %v, err %v", d, got, err)
		}
		if got := AUCToD(DToAUC(d)); d > 0 && !closeRel(got, d, 1e-6) {
			t.Errorf("auc round trip for d=%v: got %v", d, got)
		}
		if got := RToD(DToR(d)); !closeRel(got, d, 1e-6) {
			t.Errorf("pearson r round trip for d=%v: got %v", d, got)
		}

		for _, baseRate := range []float64{0.1, 0.5, 0.9} {
			r, err := DToPointBiserialR(d, baseRate)
			if err != nil {
				t.Fatalf("DToPointBiserialR(%v, %v): %v", d, baseRate, err)
			}
			got, err := PointBiserialRToD(r, baseRate)
			if err != nil || !closeRel(got, d, 1e-10) {
				t.Errorf("point biserial round trip for d=%v base_rate=%v: got %v, err %v", d, baseRate, got, err)
			}
		}
	}
}

func TestBoundaryBehavior(t *testing.T) {
	if got := AUCToD(0.5); got != 0 {
		t.Errorf("AUCToD(0.5) = %v, want 0", got)
	}
	if got := AUCToD(0.3); got != 0 {
		t.Errorf("AUCToD(0.3) = %v, want 0", got)
	}
	if got := AUCToD(1); !math.IsInf(got, 1) {
		t.Errorf("AUCToD(1) = %v, want +Inf", got)
	}
	if got := RToD(1); !math.IsInf(got, 1) {
		t.Errorf("RToD(1) = %v, want +Inf", got)
	}
	if got := RToD(-1); !math.IsInf(got, -1) {
		t.Errorf("RToD(-1) = %v, want -Inf", got)
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := OddsRatioToD(0); err == nil {
		t.Error("OddsRatioToD(0) should fail")
	}
	if _, err := OddsRatioToD(-1); err == nil {
		t.Error("OddsRatioToD(-1) should fail")
	}
	if _, err := CohensU3ToD(0); err == nil {
		t.Error("CohensU3ToD(0) should fail")
	}
	if _, err := CohensU3ToD(1); err == nil {
		t.Error("CohensU3ToD(1) should fail")
	}
	if _, err := DToPointBiserialR(0.5, 0); err == nil {
		t.Error("DToPointBiserialR with base_rate 0 should fail")
	}
	if _, err := DToPointBiserialR(0.5, 1); err == nil {
		t.Error("DToPointBiserialR with base_rate 1 should fail")
	}
}

func TestPointBiserialDependsOnBaseRate(t *testing.T) {
	r1, err := DToPointBiserialR(0.8, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := DToPointBiserialR(0.8, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	// Separation is easiest to express as a correlation at a balanced split.
	if math.Abs(r1) <= math.Abs(r2) {
		t.Errorf("expected |r| at base_rate 0.5 (%v) > |r| at 0.1 (%v)", r1, r2)
	}
}

func closeRel(got, want, rtol float64) bool {
	if want == 0 {
		return math.Abs(got) < rtol
	}
	return math.Abs(got-want) <= rtol*math.Abs(want)
}
