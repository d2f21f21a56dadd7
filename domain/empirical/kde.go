package empirical

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"e2pred/internal/errors"
)

const (
	kdeBisectionMaxIter = 200
	kdeBisectionEps     = 1e-10
	kdeGridPoints       = 1000
)

// kde is a one-dimensional Gaussian kernel density estimate with Scott's
// bandwidth.
type kde struct {
	data []float64
	bw   float64
}

// newKDE fails when the sample's spread is degenerate (all values identical),
// the analogue of a singular covariance in the multivariate estimator.
func newKDE(data []float64) (*kde, error) {
	if len(data) == 0 {
		return nil, errors.InvalidInput("kde requires at least one observation")
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil || sd <= 0 || math.IsNaN(sd) {
		return nil, errors.InvalidInput("kde requires non-degenerate data")
	}
	bw := sd * math.Pow(float64(len(data)), -1.0/5.0)
	return &kde{data: data, bw: bw}, nil
}

func (k *kde) density(x float64) float64 {
	kernel := distuv.Normal{Mu: 0, Sigma: k.bw}
	sum := 0.0
	for _, v := range k.data {
		sum += kernel.Prob(x - v)
	}
	return sum / float64(len(k.data))
}

// ThresholdFromPt locates the measurement threshold whose KDE-based posterior
// probability of membership in group2 equals pt, under the declared base
// rate.
//
// Two documented fallbacks keep the call total: when either group's KDE is
// degenerate, the base-rate-weighted percentile of the pooled data is used;
// when bisection finds no sign change across the search range, the
// dense-grid point with the nearest posterior wins.
func ThresholdFromPt(group1, group2 []float64, baseRate, pt float64) float64 {
	kde1, err1 := newKDE(group1)
	kde2, err2 := newKDE(group2)
	if err1 != nil || err2 != nil {
		pooled := make([]float64, 0, len(group1)+len(group2))
		pooled = append(pooled, group1...)
		pooled = append(pooled, group2...)
		// Both groups are validated non-empty and pt lies strictly inside
		// (0, 1), so the percentile cannot fail.
		p, _ := stats.Percentile(pooled, 100*(1-pt))
		return p
	}

	posterior := func(t float64) float64 {
		f1 := kde1.density(t)
		f2 := kde2.density(t)
		denom := f1*(1-baseRate) + f2*baseRate
		if denom < 1e-15 {
			return 0.5
		}
		return f2 * baseRate / denom
	}

	lo, hi := searchRange(group1, group2)

	fLo := posterior(lo) - pt
	fHi := posterior(hi) - pt
	if fLo*fHi > 0 {
		return gridNearest(posterior, lo, hi, pt)
	}

	for i := 0; i < kdeBisectionMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := posterior(mid) - pt
		if math.Abs(fMid) < kdeBisectionEps || hi-lo < kdeBisectionEps {
			return mid
		}
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return (lo + hi) / 2
}

func searchRange(group1, group2 []float64) (lo, hi float64) {
	pooled := make([]float64, 0, len(group1)+len(group2))
	pooled = append(pooled, group1...)
	pooled = append(pooled, group2...)
	sort.Float64s(pooled)

	sd, err := stats.StandardDeviation(pooled)
	if err != nil || math.IsNaN(sd) {
		sd = 0
	}
	return pooled[0] - 2*sd, pooled[len(pooled)-1] + 2*sd
}

func gridNearest(posterior func(float64) float64, lo, hi, pt float64) float64 {
	best := lo
	bestDist := math.Inf(1)
	step := (hi - lo) / float64(kdeGridPoints-1)
	for i := 0; i < kdeGridPoints; i++ {
		t := lo + float64(i)*step
		if dist := math.Abs(posterior(t) - pt); dist < bestDist {
			bestDist = dist
			best = t
		}
	}
	return best
}
