package jsonx

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFloatRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		wire string
	}{
		{"finite", 0.714, "0.714"},
		{"zero", 0, "0"},
		{"positive infinity", math.Inf(1), `"Infinity"`},
		{"negative infinity", math.Inf(-1), `"-Infinity"`},
		{"nan", math.NaN(), `"NaN"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(Float(tt.in))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("marshal = %s, want %s", data, tt.wire)
			}

			var back Float
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := float64(back)
			if math.IsNaN(tt.in) {
				if !math.IsNaN(got) {
					t.Errorf("round trip = %v, want NaN", got)
				}
				return
			}
			if got != tt.in {
				t.Errorf("round trip = %v, want %v", got, tt.in)
			}
		})
	}
}

func TestFloatRejectsMalformed(t *testing.T) {
	var f Float
	if err := json.Unmarshal([]byte(`"not a number"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
}
