// Package excel reads empirical samples from Excel/CSV workbooks and writes
// analysis reports back out as workbooks.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"e2pred/internal/errors"
)

// SampleReader handles reading two-group or paired-column sample files
type SampleReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSampleReader creates a reader that handles both Excel and CSV files
func NewSampleReader(filePath string) *SampleReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SampleReader{filePath: filePath, fileType: fileType}
}

// ReadGroups reads the two named columns as group1 (controls) and group2
// (cases). The columns may have different lengths; empty trailing cells are
// skipped. Non-numeric cells below the header are an input error.
func (r *SampleReader) ReadGroups(col1, col2 string) (group1, group2 []float64, err error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, errors.InvalidInput("file must have a header row and at least one data row")
	}

	idx1, idx2 := -1, -1
	for j, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case col1:
			idx1 = j
		case col2:
			idx2 = j
		}
	}
	if idx1 < 0 {
		return nil, nil, errors.InvalidInputf("column %q not found", col1)
	}
	if idx2 < 0 {
		return nil, nil, errors.InvalidInputf("column %q not found", col2)
	}

	group1, err = columnValues(rows[1:], idx1, col1)
	if err != nil {
		return nil, nil, err
	}
	group2, err = columnValues(rows[1:], idx2, col2)
	if err != nil {
		return nil, nil, err
	}
	return group1, group2, nil
}

// ReadPairs reads two equal-length columns as paired (X, Y) observations.
// A row where exactly one of the two cells is empty is an input error.
func (r *SampleReader) ReadPairs(colX, colY string) (x, y []float64, err error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, errors.InvalidInput("file must have a header row and at least one data row")
	}

	idxX, idxY := -1, -1
	for j, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case colX:
			idxX = j
		case colY:
			idxY = j
		}
	}
	if idxX < 0 {
		return nil, nil, errors.InvalidInputf("column %q not found", colX)
	}
	if idxY < 0 {
		return nil, nil, errors.InvalidInputf("column %q not found", colY)
	}

	for i, row := range rows[1:] {
		cellX := cellAt(row, idxX)
		cellY := cellAt(row, idxY)
		if cellX == "" && cellY == "" {
			continue
		}
		if cellX == "" || cellY == "" {
			return nil, nil, errors.InvalidInputf("row %d has an unpaired value", i+2)
		}
		vx, err := strconv.ParseFloat(cellX, 64)
		if err != nil {
			return nil, nil, errors.InvalidInputf("row %d column %q: %q is not numeric", i+2, colX, cellX)
		}
		vy, err := strconv.ParseFloat(cellY, 64)
		if err != nil {
			return nil, nil, errors.InvalidInputf("row %d column %q: %q is not numeric", i+2, colY, cellY)
		}
		x = append(x, vx)
		y = append(y, vy)
	}
	return x, y, nil
}

func (r *SampleReader) readRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InvalidInputf("file not found: %s", r.filePath)
	}

	switch r.fileType {
	case "csv":
		file, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	default:
		f, err := excelize.OpenFile(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer f.Close()

		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	}
}

func columnValues(dataRows [][]string, idx int, name string) ([]float64, error) {
	var values []float64
	for i, row := range dataRows {
		cell := cellAt(row, idx)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.InvalidInputf("row %d column %q: %q is not numeric", i+2, name, cell)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.InvalidInputf("column %q has no numeric values", name)
	}
	return values, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
