// Package importer reads pool definitions from drawings and spreadsheets.
// Pool lists can come from CSV or Excel files with automatic delimiter
// detection, flexible column mapping, and case-insensitive headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a pool list import.
type ImportResult struct {
	Pools    []model.PoolPreset
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Optional columns are -1 when absent.
type ColumnMapping struct {
	Name       int
	Shape      int
	Length     int
	Width      int
	Depth      int
	DeepEnd    int
	Steps      int
	StepDepth  int
	StairWidth int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":        {"name", "pool", "label", "description", "desc", "job", "customer"},
	"shape":       {"shape", "type", "form"},
	"length":      {"length", "len", "l"},
	"width":       {"width", "w"},
	"depth":       {"depth", "d", "height", "h"},
	"deep_end":    {"deep end", "deep_end", "deep end depth", "max depth", "deep"},
	"steps":       {"steps", "stairs", "step count", "step_count"},
	"step_depth":  {"step depth", "step_depth", "tread", "tread depth"},
	"stair_width": {"stair width", "stair_width", "stairs width"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Name, Length, Width, Depth, Shape, Deep end and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	found := map[string]int{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, taken := found[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					found[role] = i
					break
				}
			}
		}
	}

	if len(found) == 0 {
		return ColumnMapping{
			Name: 0, Length: 1, Width: 2, Depth: 3, Shape: 4, DeepEnd: 5,
			Steps: -1, StepDepth: -1, StairWidth: -1,
		}, false
	}

	col := func(role string) int {
		if i, ok := found[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		Name:       col("name"),
		Shape:      col("shape"),
		Length:     col("length"),
		Width:      col("width"),
		Depth:      col("depth"),
		DeepEnd:    col("deep_end"),
		Steps:      col("steps"),
		StepDepth:  col("step_depth"),
		StairWidth: col("stair_width"),
	}, true
}

// parseShape converts a shape string to a model.PoolShape.
// Custom shapes need an outline and cannot come from a table row.
func parseShape(s string) (model.PoolShape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rectangular", "rectangle", "rect", "r":
		return model.ShapeRectangular, true
	case "oval", "ellipse", "o":
		return model.ShapeOval, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseMeters parses a length cell. Decimal commas are accepted.
func parseMeters(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// parseRow extracts a pool from a row using the given column mapping.
// Returns the pool, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, poolCount int) (model.PoolPreset, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Pool %d", poolCount+1)
	}

	required := []struct {
		label string
		idx   int
	}{
		{"length", mapping.Length},
		{"width", mapping.Width},
		{"depth", mapping.Depth},
	}
	values := make([]float64, len(required))
	for i, r := range required {
		cell := getCell(row, r.idx)
		if cell == "" {
			return model.PoolPreset{}, fmt.Sprintf("%s: Missing %s value", rowLabel, r.label), ""
		}
		v, err := parseMeters(cell)
		if err != nil {
			return model.PoolPreset{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, r.label, cell), ""
		}
		values[i] = v
	}

	shape, ok := parseShape(getCell(row, mapping.Shape))
	if !ok {
		return model.PoolPreset{}, fmt.Sprintf("%s: Unsupported shape '%s'", rowLabel, getCell(row, mapping.Shape)), ""
	}

	pool := model.NewRectangularPool(values[0], values[1], values[2])
	pool.Shape = shape

	var warning string
	if cell := getCell(row, mapping.DeepEnd); cell != "" {
		deep, err := parseMeters(cell)
		switch {
		case err != nil:
			warning = fmt.Sprintf("%s: Invalid deep end '%s', assuming a flat bottom", rowLabel, cell)
		case deep > pool.Depth:
			pool.DeepEndDepth = deep
		}
	}

	if cell := getCell(row, mapping.Steps); cell != "" && cell != "0" {
		steps, err := strconv.Atoi(cell)
		if err != nil || steps < 0 {
			return model.PoolPreset{}, fmt.Sprintf("%s: Invalid step count '%s'", rowLabel, cell), ""
		}
		stepDepth, err1 := parseMeters(getCell(row, mapping.StepDepth))
		stairWidth, err2 := parseMeters(getCell(row, mapping.StairWidth))
		if err1 != nil || err2 != nil {
			return model.PoolPreset{}, fmt.Sprintf("%s: Stairs need a step depth and a stair width", rowLabel), ""
		}
		pool.Stairs = model.StairsConfig{Enabled: true, StepCount: steps, StepDepth: stepDepth, Width: stairWidth}
	}

	if err := pool.Validate(); err != nil {
		return model.PoolPreset{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return model.NewPoolPreset(name, pool), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportPools imports a pool list, choosing the reader by file extension:
// .xlsx and .xlsm files are read with Excel, anything else as CSV.
func ImportPools(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports pools from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports pools from a CSV reader with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pools from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := parseMeters(getCell(rows[0], mapping.Length)); err != nil {
		// Unrecognized header; keep positional mapping.
		startRow = 1
		result.Warnings = append(result.Warnings, "Unrecognized header row, using column order")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pool, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Pools))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Pools = append(result.Pools, pool)
	}

	if len(result.Pools) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
