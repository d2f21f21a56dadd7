package empirical

import (
	"e2pred/domain/metrics"
)

// battery holds one full set of point values for a pair of samples. The
// bootstrap recomputes it per resample, so it stays a flat value type.
type battery struct {
	cohensD       float64
	cohensU3      float64
	pointBiserial float64
	etaSquared    float64
	oddsRatio     float64
	logOddsRatio  float64
	rocAUC        float64
	prAUC         float64
	threshold     float64
	tm            metrics.ThresholdMetrics
}

func computeBattery(group1, group2 []float64, baseRate, pt float64) battery {
	b := battery{
		cohensD:       CohensD(group1, group2),
		cohensU3:      CohensU3(group1, group2),
		pointBiserial: PointBiserialR(group1, group2),
		etaSquared:    EtaSquared(group1, group2),
		rocAUC:        ROCAUC(group1, group2),
		prAUC:         PRAUC(group1, group2, baseRate),
	}
	b.oddsRatio, b.logOddsRatio = OddsRatio(group1, group2)

	b.threshold = ThresholdFromPt(group1, group2, baseRate, pt)
	sens := proportionAtOrAbove(group2, b.threshold)
	spec := proportionBelow(group1, b.threshold)
	b.tm = metrics.FromRates(sens, spec, baseRate, pt)

	return b
}

// values flattens the battery for bootstrap aggregation. The order must match
// metricSlots exactly.
func (b battery) values() []float64 {
	return []float64{
		b.cohensD, b.cohensU3, b.pointBiserial, b.etaSquared,
		b.oddsRatio, b.logOddsRatio,
		b.rocAUC, b.prAUC,
		b.threshold,
		b.tm.Sensitivity, b.tm.Specificity, b.tm.PPV, b.tm.NPV,
		b.tm.Accuracy, b.tm.BalancedAccuracy, b.tm.F1, b.tm.MCC,
		b.tm.LRPlus, b.tm.LRMinus, b.tm.DOR,
		b.tm.YoudenJ, b.tm.GMean, b.tm.KappaStatistic,
		b.tm.PostTestProbPlus, b.tm.PostTestProbMinus, b.tm.DeltaNB,
	}
}

// metricSlots returns the record's metric fields in values order.
func metricSlots(rec *Record) []*Metric {
	return []*Metric{
		&rec.CohensD, &rec.CohensU3, &rec.PointBiserial, &rec.EtaSquared,
		&rec.OddsRatio, &rec.LogOddsRatio,
		&rec.ROCAUC, &rec.PRAUC,
		&rec.ThresholdValue,
		&rec.Sensitivity, &rec.Specificity, &rec.PPV, &rec.NPV,
		&rec.Accuracy, &rec.BalancedAccuracy, &rec.F1, &rec.MCC,
		&rec.LRPlus, &rec.LRMinus, &rec.DOR,
		&rec.YoudenJ, &rec.GMean, &rec.KappaStatistic,
		&rec.PostTestProbPlus, &rec.PostTestProbMinus, &rec.DeltaNB,
	}
}
