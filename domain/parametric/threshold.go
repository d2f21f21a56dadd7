package parametric

import (
	"math"

	"e2pred/domain/metrics"
	"e2pred/internal/errors"
)

const (
	bisectionMaxIter = 100
	bisectionEps     = 1e-8
)

// OptimizeMetric selects the objective for FindOptimalThreshold.
type OptimizeMetric string

const (
	OptimizeYouden OptimizeMetric = "youden"
	OptimizeF1     OptimizeMetric = "f1"
)

// PtFromThreshold converts a measurement-scale threshold into the decision
// threshold probability p_t via Bayes' rule on the two population densities:
//
//	p_t = f_case(t)*p / (f_ctrl(t)*(1-p) + f_case(t)*p)
//
// Where both densities vanish the posterior is undefined; 0.5 is returned.
func PtFromThreshold(pop Population, threshold, baseRate float64) float64 {
	f1 := pop.controlDensity(threshold)
	f2 := pop.caseDensity(threshold)

	num := f2 * baseRate
	denom := f1*(1-baseRate) + f2*baseRate
	if denom == 0 {
		return 0.5
	}
	return num / denom
}

// ThresholdFromPt inverts PtFromThreshold by bisection. The posterior is
// monotonic in the threshold for d > 0 (the case density dominates as
// t -> +inf), so a unique root exists for pt in (0, 1). On iteration
// exhaustion the interval midpoint is returned rather than an error.
func ThresholdFromPt(pop Population, pt, baseRate float64) float64 {
	left, right := pop.searchBounds()

	for i := 0; i < bisectionMaxIter; i++ {
		mid := (left + right) / 2
		ptMid := PtFromThreshold(pop, mid, baseRate)

		if math.Abs(ptMid-pt) < bisectionEps {
			return mid
		}
		if ptMid < pt {
			left = mid
		} else {
			right = mid
		}
		if right-left < bisectionEps {
			break
		}
	}
	return (left + right) / 2
}

// FindOptimalThreshold locates the measurement threshold maximizing Youden's J
// or F1 over the population's search bounds, using golden-section search on
// the negated objective. The objectives are unimodal in the threshold for the
// two-Gaussian model, which golden-section requires.
func FindOptimalThreshold(pop Population, baseRate float64, metric OptimizeMetric) (float64, error) {
	var objective func(t float64) float64
	switch metric {
	case OptimizeYouden, "":
		objective = func(t float64) float64 {
			return -(pop.Sensitivity(t) + pop.Specificity(t) - 1)
		}
	case OptimizeF1:
		objective = func(t float64) float64 {
			m := metrics.FromRates(pop.Sensitivity(t), pop.Specificity(t), baseRate, 0.5)
			return -m.F1
		}
	default:
		return 0, errors.InvalidInputf("unknown optimization metric %q", metric)
	}

	lo, hi := pop.searchBounds()
	return goldenSectionMin(objective, lo, hi), nil
}

// goldenSectionMin minimizes f over [lo, hi] to a fixed absolute tolerance.
// gonum's optimizers target multivariate gradient problems; a bounded scalar
// search is simpler done directly.
func goldenSectionMin(f func(float64) float64, lo, hi float64) float64 {
	const (
		invPhi = 0.6180339887498949
		tol    = 1e-8
	)

	a, b := lo, hi
	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc, fd := f(c), f(d)

	for b-a > tol {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invPhi
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invPhi
			fd = f(d)
		}
	}
	return (a + b) / 2
}
