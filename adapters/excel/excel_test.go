package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"e2pred/domain/empirical"
	"e2pred/domain/parametric"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadGroupsCSV(t *testing.T) {
	path := writeCSV(t, "group1,group2\n1.5,2.5\n-0.3,3.1\n0.7,\n")

	g1, g2, err := NewSampleReader(path).ReadGroups("group1", "group2")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -0.3, 0.7}, g1)
	require.Equal(t, []float64{2.5, 3.1}, g2)
}

func TestReadGroupsMissingColumn(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n")

	_, _, err := NewSampleReader(path).ReadGroups("group1", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "group1")
}

func TestReadGroupsNonNumericCell(t *testing.T) {
	path := writeCSV(t, "group1,group2\n1.5,2.5\noops,3.1\n")

	_, _, err := NewSampleReader(path).ReadGroups("group1", "group2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "oops")
}

func TestReadPairsCSV(t *testing.T) {
	path := writeCSV(t, "x,y\n0.1,1.2\n0.4,0.9\n,\n0.8,2.0\n")

	x, y, err := NewSampleReader(path).ReadPairs("x", "y")
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0.4, 0.8}, x)
	require.Equal(t, []float64{1.2, 0.9, 2.0}, y)
}

func TestReadPairsUnpairedRow(t *testing.T) {
	path := writeCSV(t, "x,y\n0.1,1.2\n0.4,\n")

	_, _, err := NewSampleReader(path).ReadPairs("x", "y")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unpaired")
}

func TestReadGroupsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"controls", "cases"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{0.5, 1.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{-0.2, 2.0}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	g1, g2, err := NewSampleReader(path).ReadGroups("controls", "cases")
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, -0.2}, g1)
	require.Equal(t, []float64{1.5, 2.0}, g2)
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := NewSampleReader(filepath.Join(t.TempDir(), "nope.csv")).ReadGroups("a", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestWriteEmpiricalReport(t *testing.T) {
	group1 := []float64{-0.3, 0.1, -1.2, 0.5, -0.8, 0.2, -0.1, 0.9, -0.5, 0.3}
	group2 := []float64{0.9, 1.4, 0.3, 2.1, 1.0, 0.7, 1.8, 1.2, 0.4, 1.6}

	b, err := empirical.NewBinary(group1, group2, 0.2, 0.5, empirical.Config{
		NBootstrap: 50,
		Seed:       1,
		Workers:    1,
	})
	require.NoError(t, err)
	rec, err := b.Compute(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteEmpiricalReport(path, rec))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetRows("Metrics")
	require.NoError(t, err)
	require.Equal(t, []string{"Metric", "Estimate", "CI Lower", "CI Upper"}, header[0])
	require.Equal(t, "cohens_d", header[1][0])

	// Curve sheets ride along when the record carries curves.
	require.NotEqual(t, -1, mustSheetIndex(t, f, "ROC Curve"))
	require.NotEqual(t, -1, mustSheetIndex(t, f, "PR Curve"))
}

func TestWriteParametricReport(t *testing.T) {
	rec, err := parametric.Binary(parametric.NewParams(0.8, 0.1))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "parametric.xlsx")
	require.NoError(t, WriteParametricReport(path, rec))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Metrics")
	require.NoError(t, err)
	require.Equal(t, []string{"Metric", "Value"}, rows[0])

	labels := make(map[string]bool, len(rows))
	for _, row := range rows[1:] {
		if len(row) > 0 {
			labels[row[0]] = true
		}
	}
	require.True(t, labels["kappa_reliability"], "reliability input row missing")
	require.True(t, labels["kappa"], "agreement statistic row missing")
	require.True(t, labels["roc_auc"])
}

func mustSheetIndex(t *testing.T, f *excelize.File, name string) int {
	t.Helper()
	idx, err := f.GetSheetIndex(name)
	require.NoError(t, err)
	return idx
}
