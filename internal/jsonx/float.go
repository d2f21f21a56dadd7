// Package jsonx carries IEEE non-finite values across the JSON boundary.
// encoding/json rejects ±Inf and NaN outright, but several metric conventions
// produce them deliberately (infinite likelihood ratios, ΔNB at pt = 1), so
// result records marshal their floats through Float instead.
package jsonx

import (
	"encoding/json"
	"math"
)

// Float marshals like a float64 but encodes the non-finite values as the
// strings "Infinity", "-Infinity" and "NaN", matching the extended literal
// forms most JSON consumers in scientific tooling accept.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*f = Float(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*f = Float(math.Inf(-1))
		return nil
	case `"NaN"`:
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
