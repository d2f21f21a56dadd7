package effectsize

import (
	"encoding/json"
	"math"
	"testing"
)

func TestConvertThroughCanonicalD(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to Measure
		baseRate float64
		want     float64
		rtol     float64
	}{
		{"d to odds ratio", 0.8, MeasureCohensD, MeasureOddsRatio, 0, 4.27, 0.01},
		{"d to u3", 0.8, MeasureCohensD, MeasureCohensU3, 0, 0.788, 0.01},
		{"d to auc", 0.8, MeasureCohensD, MeasureAUC, 0, 0.714, 0.01},
		{"odds ratio to u3", 4.27, MeasureOddsRatio, MeasureCohensU3, 0, 0.788, 0.01},
		{"identity", 0.8, MeasureCohensD, MeasureCohensD, 0, 0.8, 1e-12},
		{"pbr needs base rate", 0.8, MeasureCohensD, MeasurePointBiserialR, 0.5, 0.371, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := Convert(tt.value, tt.from, tt.to, tt.baseRate)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if math.Abs(conv.Output-tt.want) > tt.rtol*math.Abs(tt.want) {
				t.Errorf("Convert(%v, %s, %s) = %v, want ~%v", tt.value, tt.from, tt.to, conv.Output, tt.want)
			}
		})
	}
}

func TestConvertUnknownMeasure(t *testing.T) {
	if _, err := Convert(0.8, Measure("bogus"), MeasureCohensD, 0); err == nil {
		t.Error("unknown source measure should fail")
	}
	if _, err := Convert(0.8, MeasureCohensD, Measure("bogus"), 0); err == nil {
		t.Error("unknown target measure should fail")
	}
}

func TestConversionJSONCarriesInfinity(t *testing.T) {
	conv, err := Convert(1.0, MeasureAUC, MeasureCohensD, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !math.IsInf(conv.Output, 1) {
		t.Fatalf("AUC 1 should convert to +Inf d, got %v", conv.Output)
	}

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Conversion
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !math.IsInf(back.Output, 1) || !math.IsInf(back.CohensD, 1) {
		t.Errorf("infinity lost in round trip: %+v", back)
	}
}
