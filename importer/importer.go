// Package importer reads brother rosters from CSV and Excel files.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"logia/models"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")
	ErrMissingNameColumn = errors.New("missing name column (nombre)")
)

// column aliases matched against folded header labels
var columnAliases = map[string]string{
	"nombre":   "name",
	"name":     "name",
	"cedula":   "cedula",
	"ci":       "cedula",
	"id":       "cedula",
	"grado":    "grade",
	"grade":    "grade",
	"cargo":    "position",
	"position": "position",
	"posicion": "position",
}

// ParseBrothers reads brother rows from a .csv or .xlsx file. The first row
// must be a header; rows without a name are skipped.
func ParseBrothers(filename string, r io.Reader) ([]models.ImportRow, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	return mapRecords(records)
}

// readCSV reads every record, accepting comma or semicolon separators
func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comma = sniffDelimiter(data)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

// sniffDelimiter picks ';' when the header line has more semicolons than commas
func sniffDelimiter(data []byte) rune {
	header, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// readXLSX reads the rows of the first sheet
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// mapRecords maps header columns to fields and converts the data rows
func mapRecords(records [][]string) ([]models.ImportRow, error) {
	if len(records) == 0 {
		return []models.ImportRow{}, nil
	}

	columns := make(map[string]int)
	for i, label := range records[0] {
		field, ok := columnAliases[models.FoldLabel(label)]
		if !ok {
			continue
		}
		if _, seen := columns[field]; !seen {
			columns[field] = i
		}
	}
	if _, ok := columns["name"]; !ok {
		return nil, ErrMissingNameColumn
	}

	cell := func(record []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]models.ImportRow, 0, len(records)-1)
	for line, record := range records[1:] {
		name := cell(record, "name")
		if name == "" {
			continue
		}

		grade, err := models.ParseGrade(cell(record, "grade"))
		if err != nil {
			if raw := cell(record, "grade"); raw != "" {
				log.WithFields(log.Fields{
					"line":  line + 2,
					"grade": raw,
				}).Warn("Unknown grade in import, defaulting to Aprendiz")
			}
			grade = models.GradeApprentice
		}

		rows = append(rows, models.ImportRow{
			Name:         name,
			Cedula:       cell(record, "cedula"),
			Grade:        grade,
			PositionName: cell(record, "position"),
		})
	}

	return rows, nil
}
