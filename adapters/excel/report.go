package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"e2pred/domain/empirical"
	"e2pred/domain/parametric"
)

// WriteEmpiricalReport writes an empirical record to an Excel workbook: a
// Metrics sheet with estimates and confidence bounds, and when curves are
// present, ROC and PR coordinate sheets.
func WriteEmpiricalReport(filePath string, rec *empirical.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Metrics"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []interface{}{"Metric", "Estimate", "CI Lower", "CI Upper"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	rows := [][]interface{}{
		{"cohens_d", rec.CohensD},
		{"cohens_u3", rec.CohensU3},
		{"point_biserial_r", rec.PointBiserial},
		{"eta_squared", rec.EtaSquared},
		{"odds_ratio", rec.OddsRatio},
		{"log_odds_ratio", rec.LogOddsRatio},
		{"roc_auc", rec.ROCAUC},
		{"pr_auc", rec.PRAUC},
		{"threshold_value", rec.ThresholdValue},
		{"sensitivity", rec.Sensitivity},
		{"specificity", rec.Specificity},
		{"ppv", rec.PPV},
		{"npv", rec.NPV},
		{"accuracy", rec.Accuracy},
		{"balanced_accuracy", rec.BalancedAccuracy},
		{"f1", rec.F1},
		{"mcc", rec.MCC},
		{"lr_plus", rec.LRPlus},
		{"lr_minus", rec.LRMinus},
		{"dor", rec.DOR},
		{"youden_j", rec.YoudenJ},
		{"g_mean", rec.GMean},
		{"kappa", rec.KappaStatistic},
		{"post_test_prob_plus", rec.PostTestProbPlus},
		{"post_test_prob_minus", rec.PostTestProbMinus},
		{"delta_nb", rec.DeltaNB},
	}
	for i, row := range rows {
		name := row[0].(string)
		m := row[1].(empirical.Metric)
		cells := []interface{}{name, m.Estimate, m.CILower, m.CIUpper}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("failed to write metric row %q: %w", name, err)
		}
	}

	infoStart := len(rows) + 3
	info := [][]interface{}{
		{"n_group1", rec.NGroup1},
		{"n_group2", rec.NGroup2},
		{"base_rate", rec.BaseRate},
		{"threshold_prob", rec.ThresholdProb},
	}
	for i, row := range info {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", infoStart+i), &row); err != nil {
			return fmt.Errorf("failed to write info row: %w", err)
		}
	}

	if rec.ROCCurve != nil {
		if err := writeCurveSheet(f, "ROC Curve",
			[]string{"threshold", "fpr", "tpr"},
			rec.ROCCurve.Thresholds, rec.ROCCurve.FPR, rec.ROCCurve.TPR); err != nil {
			return err
		}
	}
	if rec.PRCurve != nil {
		if err := writeCurveSheet(f, "PR Curve",
			[]string{"threshold", "recall", "precision"},
			rec.PRCurve.Thresholds, rec.PRCurve.Recall, rec.PRCurve.Precision); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// WriteParametricReport writes a parametric record as a two-column workbook.
func WriteParametricReport(filePath string, rec *parametric.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Metrics"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"cohens_d_true", rec.CohensDTrue},
		{"cohens_d_observed", rec.CohensDObserved},
		{"base_rate", rec.BaseRate},
		{"threshold_prob", rec.ThresholdProb},
		{"icc1", rec.ICC1},
		{"icc2", rec.ICC2},
		{"kappa_reliability", rec.Kappa},
		{"odds_ratio", rec.OddsRatio},
		{"log_odds_ratio", rec.LogOddsRatio},
		{"cohens_u3", rec.CohensU3},
		{"point_biserial_r", rec.PointBiserialR},
		{"eta_squared", rec.EtaSquared},
		{"roc_auc", rec.ROCAUC},
		{"pr_auc", rec.PRAUC},
		{"threshold_value", rec.ThresholdValue},
		{"sensitivity", rec.Sensitivity},
		{"specificity", rec.Specificity},
		{"ppv", rec.PPV},
		{"npv", rec.NPV},
		{"accuracy", rec.Accuracy},
		{"balanced_accuracy", rec.BalancedAccuracy},
		{"f1", rec.F1},
		{"mcc", rec.MCC},
		{"lr_plus", rec.LRPlus},
		{"lr_minus", rec.LRMinus},
		{"dor", rec.DOR},
		{"youden_j", rec.YoudenJ},
		{"g_mean", rec.GMean},
		{"kappa", rec.KappaStatistic},
		{"post_test_prob_plus", rec.PostTestProbPlus},
		{"post_test_prob_minus", rec.PostTestProbMinus},
		{"delta_nb", rec.DeltaNB},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeCurveSheet(f *excelize.File, name string, headers []string, cols ...[]float64) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write curve header: %w", err)
	}

	n := len(cols[0])
	for i := 0; i < n; i++ {
		cells := make([]interface{}, len(cols))
		for j, col := range cols {
			cells[j] = col[i]
		}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("failed to write curve row %d: %w", i+2, err)
		}
	}
	return nil
}
