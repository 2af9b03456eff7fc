package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"sixsigma/domain/dataset"
)

// DataReader handles reading Excel and CSV files into the
// column-oriented table the quality engine consumes. Row order is
// preserved so control charts see the original time sequence.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a dataset table.
func (r *DataReader) Read() (*dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	return r.buildTable(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// First sheet, whatever it is named.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// buildTable converts raw string rows into a column-oriented table.
// A column counts as numeric when at least half of its non-empty cells
// parse; unparseable cells become NaN so row alignment survives.
func (r *DataReader) buildTable(rows [][]string) (*dataset.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	table := dataset.NewTable(filepath.Base(r.filePath))
	table.Columns = headers
	table.Rows = len(rows) - 1

	for colIdx, header := range headers {
		if header == "" {
			continue
		}

		text := make([]string, table.Rows)
		numeric := make([]float64, table.Rows)
		parsed := 0
		nonEmpty := 0

		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			cell := ""
			if colIdx < len(rows[rowIdx]) {
				cell = strings.TrimSpace(rows[rowIdx][colIdx])
			}
			text[rowIdx-1] = cell

			numeric[rowIdx-1] = math.NaN()
			if cell == "" {
				continue
			}
			nonEmpty++
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
				numeric[rowIdx-1] = v
				parsed++
			}
		}

		table.Text[header] = text
		if nonEmpty > 0 && parsed*2 >= nonEmpty {
			table.Numeric[header] = numeric
		}
	}

	return table, nil
}
