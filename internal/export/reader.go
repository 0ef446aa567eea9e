// Package export loads Planner-style task exports into raw rows.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/taskspan/taskspan/internal/resolve"
)

// DefaultSheet is the worksheet read from workbook exports.
const DefaultSheet = "Tasks"

// Load reads a CSV or XLSX task export into raw rows. The sheet argument
// selects the worksheet for workbook inputs; empty means DefaultSheet.
// Delimited and workbook sources are normalized to the same RawRow shape.
func Load(path, sheet string) ([]resolve.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input not found: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, sheet)
	default:
		if ext == "" {
			ext = "unknown"
		}
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func loadCSV(path string) ([]resolve.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // exports frequently have ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsFromRecords(records), nil
}

func loadWorkbook(path, sheet string) ([]resolve.RawRow, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	records, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q not found in %s: %w", sheet, filepath.Base(path), err)
	}
	return rowsFromRecords(records), nil
}

// rowsFromRecords converts a header row plus data rows into raw row maps.
// Header cells are trimmed; data rows shorter than the header are padded
// with blanks so absent trailing columns read as blank, not as an error.
func rowsFromRecords(records [][]string) []resolve.RawRow {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]resolve.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(resolve.RawRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
