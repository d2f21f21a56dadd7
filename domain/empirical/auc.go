package empirical

import (
	"math"
	"sort"
)

// ROCAUC computes the area under the ROC curve via the Mann-Whitney U
// statistic: each case scores one for every control strictly below it and a
// half for every tie. Exact tie handling matters because it makes the
// estimator agree with the rank-sum formulation on discrete data.
func ROCAUC(group1, group2 []float64) float64 {
	n1, n2 := len(group1), len(group2)
	if n1 == 0 || n2 == 0 {
		return 0.5
	}

	sorted1 := sortedCopy(group1)

	count := 0.0
	for _, x2 := range group2 {
		below := sort.SearchFloat64s(sorted1, x2)
		upper := below
		for upper < n1 && sorted1[upper] == x2 {
			upper++
		}
		count += float64(below) + 0.5*float64(upper-below)
	}
	return count / (float64(n1) * float64(n2))
}

// PRAUC computes the area under the precision-recall curve from sample
// proportions, with precision anchored to the declared base rate rather than
// the sample split. Boundary points (recall 0, precision 1) and
// (recall 1, precision baseRate) close the curve; clipped to [0, 1].
func PRAUC(group1, group2 []float64, baseRate float64) float64 {
	recalls, precisions := prPoints(group1, group2, baseRate)

	type prPoint struct{ recall, precision float64 }
	points := make([]prPoint, 0, len(recalls)+2)
	points = append(points, prPoint{0, 1})
	for i := range recalls {
		points = append(points, prPoint{recalls[i], precisions[i]})
	}
	points = append(points, prPoint{1, baseRate})

	sort.SliceStable(points, func(i, j int) bool { return points[i].recall < points[j].recall })

	area := 0.0
	for i := 1; i < len(points); i++ {
		dr := points[i].recall - points[i-1].recall
		area += dr * (points[i].precision + points[i-1].precision) / 2
	}
	return math.Min(math.Max(area, 0), 1)
}

// ROCCurve holds ROC coordinates for plotting collaborators.
type ROCCurve struct {
	FPR        []float64 `json:"fpr"`
	TPR        []float64 `json:"tpr"`
	Thresholds []float64 `json:"thresholds"`
}

// PRCurve holds precision-recall coordinates for plotting collaborators.
type PRCurve struct {
	Precision  []float64 `json:"precision"`
	Recall     []float64 `json:"recall"`
	Thresholds []float64 `json:"thresholds"`
}

// ComputeROCCurve evaluates (FPR, TPR) at every unique pooled value ascending,
// padded with the all-positive and all-negative endpoints.
func ComputeROCCurve(group1, group2 []float64) ROCCurve {
	sorted1 := sortedCopy(group1)
	sorted2 := sortedCopy(group2)
	thresholds := uniqueMerged(sorted1, sorted2)

	curve := ROCCurve{
		FPR:        make([]float64, 0, len(thresholds)+2),
		TPR:        make([]float64, 0, len(thresholds)+2),
		Thresholds: make([]float64, 0, len(thresholds)+2),
	}
	curve.FPR = append(curve.FPR, 1)
	curve.TPR = append(curve.TPR, 1)
	curve.Thresholds = append(curve.Thresholds, thresholds[0]-1)

	for _, t := range thresholds {
		curve.FPR = append(curve.FPR, sortedAtOrAbove(sorted1, t))
		curve.TPR = append(curve.TPR, sortedAtOrAbove(sorted2, t))
		curve.Thresholds = append(curve.Thresholds, t)
	}

	curve.FPR = append(curve.FPR, 0)
	curve.TPR = append(curve.TPR, 0)
	curve.Thresholds = append(curve.Thresholds, thresholds[len(thresholds)-1]+1)
	return curve
}

// ComputePRCurve evaluates (precision, recall) at every unique pooled value
// descending, with precision anchored to the declared base rate.
func ComputePRCurve(group1, group2 []float64, baseRate float64) PRCurve {
	sorted1 := sortedCopy(group1)
	sorted2 := sortedCopy(group2)
	thresholds := uniqueMerged(sorted1, sorted2)

	curve := PRCurve{
		Precision:  make([]float64, 0, len(thresholds)),
		Recall:     make([]float64, 0, len(thresholds)),
		Thresholds: make([]float64, 0, len(thresholds)),
	}
	for i := len(thresholds) - 1; i >= 0; i-- {
		t := thresholds[i]
		recall, precision := prPointAt(sorted1, sorted2, t, baseRate)
		curve.Precision = append(curve.Precision, precision)
		curve.Recall = append(curve.Recall, recall)
		curve.Thresholds = append(curve.Thresholds, t)
	}
	return curve
}

// prPoints lists (recall, precision) at unique pooled thresholds descending.
func prPoints(group1, group2 []float64, baseRate float64) (recalls, precisions []float64) {
	sorted1 := sortedCopy(group1)
	sorted2 := sortedCopy(group2)
	thresholds := uniqueMerged(sorted1, sorted2)

	recalls = make([]float64, 0, len(thresholds))
	precisions = make([]float64, 0, len(thresholds))
	for i := len(thresholds) - 1; i >= 0; i-- {
		recall, precision := prPointAt(sorted1, sorted2, thresholds[i], baseRate)
		recalls = append(recalls, recall)
		precisions = append(precisions, precision)
	}
	return recalls, precisions
}

func prPointAt(sorted1, sorted2 []float64, t, baseRate float64) (recall, precision float64) {
	sens := sortedAtOrAbove(sorted2, t)
	fpr := sortedAtOrAbove(sorted1, t)

	num := sens * baseRate
	denom := num + fpr*(1-baseRate)
	precision = 1.0
	if denom > 0 {
		precision = num / denom
	}
	return sens, precision
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}

// uniqueMerged merges two sorted slices into their unique union ascending.
func uniqueMerged(sorted1, sorted2 []float64) []float64 {
	out := make([]float64, 0, len(sorted1)+len(sorted2))
	i, j := 0, 0
	for i < len(sorted1) || j < len(sorted2) {
		var v float64
		switch {
		case i == len(sorted1):
			v = sorted2[j]
			j++
		case j == len(sorted2):
			v = sorted1[i]
			i++
		case sorted1[i] <= sorted2[j]:
			v = sorted1[i]
			i++
		default:
			v = sorted2[j]
			j++
		}
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// sortedAtOrAbove is the proportion of a sorted sample at or above t.
func sortedAtOrAbove(sorted []float64, t float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := sort.SearchFloat64s(sorted, t)
	return float64(len(sorted)-idx) / float64(len(sorted))
}

func proportionBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func proportionAtOrAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v >= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
