package effectsize

import (
	"encoding/json"

	"e2pred/internal/errors"
	"e2pred/internal/jsonx"
)

// Measure identifies an effect-size representation convertible to Cohen's d.
type Measure string

const (
	MeasureCohensD        Measure = "cohens_d"
	MeasureOddsRatio      Measure = "odds_ratio"
	MeasureLogOddsRatio   Measure = "log_odds_ratio"
	MeasureCohensU3       Measure = "cohens_u3"
	MeasureAUC            Measure = "auc"
	MeasurePearsonR       Measure = "pearson_r"
	MeasurePointBiserialR Measure = "point_biserial_r"
)

// Measures lists every supported representation.
func Measures() []Measure {
	return []Measure{
		MeasureCohensD,
		MeasureOddsRatio,
		MeasureLogOddsRatio,
		MeasureCohensU3,
		MeasureAUC,
		MeasurePearsonR,
		MeasurePointBiserialR,
	}
}

// Conversion reports a d-mediated conversion between two measures.
type Conversion struct {
	Input   float64 `json:"input"`
	Output  float64 `json:"output"`
	CohensD float64 `json:"cohens_d"`
	From    Measure `json:"from"`
	To      Measure `json:"to"`
}

type conversionWire struct {
	Input   jsonx.Float `json:"input"`
	Output  jsonx.Float `json:"output"`
	CohensD jsonx.Float `json:"cohens_d"`
	From    Measure     `json:"from"`
	To      Measure     `json:"to"`
}

// MarshalJSON goes through jsonx.Float: conversions at the measure
// boundaries (|r| = 1, auc = 1) produce signed infinities.
func (c Conversion) MarshalJSON() ([]byte, error) {
	return json.Marshal(conversionWire{
		Input:   jsonx.Float(c.Input),
		Output:  jsonx.Float(c.Output),
		CohensD: jsonx.Float(c.CohensD),
		From:    c.From,
		To:      c.To,
	})
}

func (c *Conversion) UnmarshalJSON(data []byte) error {
	var w conversionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Conversion{
		Input:   float64(w.Input),
		Output:  float64(w.Output),
		CohensD: float64(w.CohensD),
		From:    w.From,
		To:      w.To,
	}
	return nil
}

// Convert maps value from one effect-size representation to another, always
// passing through Cohen's d. baseRate only participates in point-biserial
// conversions; 0.5 is the conventional default.
func Convert(value float64, from, to Measure, baseRate float64) (Conversion, error) {
	d, err := toD(value, from, baseRate)
	if err != nil {
		return Conversion{}, err
	}
	out, err := fromD(d, to, baseRate)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Input: value, Output: out, CohensD: d, From: from, To: to}, nil
}

func toD(value float64, from Measure, baseRate float64) (float64, error) {
	switch from {
	case MeasureCohensD:
		return value, nil
	case MeasureOddsRatio:
		return OddsRatioToD(value)
	case MeasureLogOddsRatio:
		return LogOddsRatioToD(value), nil
	case MeasureCohensU3:
		return CohensU3ToD(value)
	case MeasureAUC:
		return AUCToD(value), nil
	case MeasurePearsonR:
		return RToD(value), nil
	case MeasurePointBiserialR:
		return PointBiserialRToD(value, baseRate)
	default:
		return 0, errors.InvalidInputf("unknown effect size measure %q", from)
	}
}

func fromD(d float64, to Measure, baseRate float64) (float64, error) {
	switch to {
	case MeasureCohensD:
		return d, nil
	case MeasureOddsRatio:
		return DToOddsRatio(d), nil
	case MeasureLogOddsRatio:
		return DToLogOddsRatio(d), nil
	case MeasureCohensU3:
		return DToCohensU3(d), nil
	case MeasureAUC:
		return DToAUC(d), nil
	case MeasurePearsonR:
		return DToR(d), nil
	case MeasurePointBiserialR:
		return DToPointBiserialR(d, baseRate)
	default:
		return 0, errors.InvalidInputf("unknown effect size measure %q", to)
	}
}
