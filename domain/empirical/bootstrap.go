package empirical

import (
	"context"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// bootstrapCIs resamples both groups with replacement n times and returns
// percentile confidence bounds for every battery slot. Non-finite draws are
// dropped per slot; a slot with no finite draws collapses to its point
// estimate. Per-worker RNGs are seeded from a single root source and worker w
// handles rows w, w+workers, w+2·workers, so a fixed seed and worker count
// reproduce the intervals exactly.
func bootstrapCIs(ctx context.Context, group1, group2 []float64, baseRate, pt float64, cfg Config, est battery) (lower, upper []float64, err error) {
	nSlots := len(est.values())
	lower = make([]float64, nSlots)
	upper = make([]float64, nSlots)

	if cfg.NBootstrap <= 0 {
		point := est.values()
		copy(lower, point)
		copy(upper, point)
		return lower, upper, nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.NBootstrap {
		workers = cfg.NBootstrap
	}

	root := rand.New(rand.NewSource(cfg.seedOrRandom()))
	seeds := make([]int64, workers)
	for w := range seeds {
		seeds[w] = root.Int63()
	}

	rows := make([][]float64, cfg.NBootstrap)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[w]))
			r1 := make([]float64, len(group1))
			r2 := make([]float64, len(group2))
			for i := w; i < cfg.NBootstrap; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				resample(rng, group1, r1)
				resample(rng, group2, r2)
				rows[i] = computeBattery(r1, r2, baseRate, pt).values()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	alpha := 1 - cfg.CILevel
	point := est.values()
	draws := make([]float64, 0, cfg.NBootstrap)
	for slot := 0; slot < nSlots; slot++ {
		draws = draws[:0]
		for _, row := range rows {
			if v := row[slot]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				draws = append(draws, v)
			}
		}
		if len(draws) == 0 {
			lower[slot] = point[slot]
			upper[slot] = point[slot]
			continue
		}
		lo, loErr := stats.Percentile(draws, 100*alpha/2)
		hi, hiErr := stats.Percentile(draws, 100*(1-alpha/2))
		if loErr != nil || hiErr != nil {
			lower[slot] = point[slot]
			upper[slot] = point[slot]
			continue
		}
		lower[slot] = lo
		upper[slot] = hi
	}
	return lower, upper, nil
}

func resample(rng *rand.Rand, src, dst []float64) {
	for i := range dst {
		dst[i] = src[rng.Intn(len(src))]
	}
}
