package reliability

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
)

func TestAttenuateD(t *testing.T) {
	if got := AttenuateD(0.8, 1); got != 0.8 {
		t.Errorf("kappa 1 should be identity, got %v", got)
	}
	if got := AttenuateD(0.8, 0.6); got >= 0.8 || got <= 0 {
		t.Errorf("kappa < 1 should shrink a positive d, got %v", got)
	}
	if got := AttenuateD(-0.8, 0.6); got <= -0.8 || got >= 0 {
		t.Errorf("attenuation preserves sign, got %v", got)
	}
}

func TestSigmaFromICC(t *testing.T) {
	sigma, err := SigmaFromICC(1)
	if err != nil || sigma != 1 {
		t.Errorf("SigmaFromICC(1) = %v, %v, want 1", sigma, err)
	}
	sigma, err = SigmaFromICC(0.25)
	if err != nil || math.Abs(sigma-2) > 1e-12 {
		t.Errorf("SigmaFromICC(0.25) = %v, %v, want 2", sigma, err)
	}
	for _, icc := range []float64{0, -0.1, 1.1} {
		if _, err := SigmaFromICC(icc); err == nil {
			t.Errorf("SigmaFromICC(%v) should fail", icc)
		}
	}
}

func TestTransformForTargetReliability(t *testing.T) {
	x := []float64{1, 2, 3, 4, 10}

	t.Run("identity at equal reliabilities", func(t *testing.T) {
		out, err := TransformForTargetReliability(x, 0.7, 0.7, CenterMean)
		if err != nil {
			t.Fatal(err)
		}
		for i := range x {
			if math.Abs(out[i]-x[i]) > 1e-12 {
				t.Fatalf("identity violated at %d: %v", i, out[i])
			}
		}
	})

	t.Run("deattenuation shrinks spread around the mean", func(t *testing.T) {
		out, err := TransformForTargetReliability(x, 0.5, 1.0, CenterMean)
		if err != nil {
			t.Fatal(err)
		}
		mIn, _ := stats.Mean(x)
		mOut, _ := stats.Mean(out)
		if math.Abs(mIn-mOut) > 1e-9 {
			t.Errorf("mean moved: %v -> %v", mIn, mOut)
		}
		sdIn, _ := stats.StandardDeviation(x)
		sdOut, _ := stats.StandardDeviation(out)
		want := sdIn * math.Sqrt(0.5)
		if math.Abs(sdOut-want) > 1e-9 {
			t.Errorf("sd = %v, want %v", sdOut, want)
		}
	})

	t.Run("median center preserves the median", func(t *testing.T) {
		out, err := TransformForTargetReliability(x, 0.5, 1.0, CenterMedian)
		if err != nil {
			t.Fatal(err)
		}
		medIn, _ := stats.Median(x)
		medOut, _ := stats.Median(out)
		if math.Abs(medIn-medOut) > 1e-9 {
			t.Errorf("median moved: %v -> %v", medIn, medOut)
		}
	})

	t.Run("inverse under swapped arguments", func(t *testing.T) {
		// The mean is preserved, so rescaling back recovers the input.
		forward, err := TransformForTargetReliability(x, 0.5, 1.0, CenterMean)
		if err != nil {
			t.Fatal(err)
		}
		back, err := TransformForTargetReliability(forward, 1.0, 0.5, CenterMean)
		if err != nil {
			t.Fatal(err)
		}
		for i := range x {
			if math.Abs(back[i]-x[i]) > 1e-9 {
				t.Fatalf("round trip failed at %d: %v vs %v", i, back[i], x[i])
			}
		}
	})

	t.Run("rejects bad arguments", func(t *testing.T) {
		if _, err := TransformForTargetReliability(x, 0, 1, CenterMean); err == nil {
			t.Error("r_current 0 should fail")
		}
		if _, err := TransformForTargetReliability(x, 0.5, 1.5, CenterMean); err == nil {
			t.Error("r_target above 1 should fail")
		}
		if _, err := TransformForTargetReliability(x, 0.5, 1, Center("mode")); err == nil {
			t.Error("unknown center should fail")
		}
		if _, err := TransformForTargetReliability([]float64{1, math.NaN()}, 0.5, 1, CenterMean); err == nil {
			t.Error("non-finite input should fail")
		}
	})
}

func TestTransformGroupsForTargetKappa(t *testing.T) {
	g1 := []float64{0, 1, 2}
	g2 := []float64{3, 4, 5}

	t.Run("identity at equal kappas", func(t *testing.T) {
		out1, out2, err := TransformGroupsForTargetKappa(g1, g2, 0.7, 0.7)
		if err != nil {
			t.Fatal(err)
		}
		for i := range g1 {
			if out1[i] != g1[i] || out2[i] != g2[i] {
				t.Fatal("identity violated")
			}
		}
	})

	t.Run("deattenuation widens separation and preserves grand mean", func(t *testing.T) {
		out1, out2, err := TransformGroupsForTargetKappa(g1, g2, 0.6, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		m1In, _ := stats.Mean(g1)
		m2In, _ := stats.Mean(g2)
		m1Out, _ := stats.Mean(out1)
		m2Out, _ := stats.Mean(out2)

		if m2Out-m1Out <= m2In-m1In {
			t.Errorf("separation did not grow: %v -> %v", m2In-m1In, m2Out-m1Out)
		}
		grandIn := (m1In + m2In) / 2
		grandOut := (m1Out + m2Out) / 2
		if math.Abs(grandIn-grandOut) > 1e-9 {
			t.Errorf("grand mean moved: %v -> %v", grandIn, grandOut)
		}

		scale := math.Sqrt(math.Sin(math.Pi/2) / math.Sin(math.Pi/2*0.6))
		want := (m2In - m1In) * scale
		if math.Abs((m2Out-m1Out)-want) > 1e-9 {
			t.Errorf("separation = %v, want %v", m2Out-m1Out, want)
		}
	})

	t.Run("within-group spread untouched", func(t *testing.T) {
		out1, _, err := TransformGroupsForTargetKappa(g1, g2, 0.6, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		sdIn, _ := stats.StandardDeviation(g1)
		sdOut, _ := stats.StandardDeviation(out1)
		if math.Abs(sdIn-sdOut) > 1e-9 {
			t.Errorf("within-group sd changed: %v -> %v", sdIn, sdOut)
		}
	})

	t.Run("rejects bad kappas", func(t *testing.T) {
		if _, _, err := TransformGroupsForTargetKappa(g1, g2, 0, 1); err == nil {
			t.Error("kappa_current 0 should fail")
		}
		if _, _, err := TransformGroupsForTargetKappa(g1, g2, 0.6, 1.2); err == nil {
			t.Error("kappa_target above 1 should fail")
		}
	})
}
