package export

import (
	"fmt"
	"io"

	"logia/models"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	// AttendanceSheet is the sheet name of the attendance workbook
	AttendanceSheet = "Asistencias"
	// BrothersSheet is the sheet name of the brother list workbook
	BrothersSheet = "Hermanos"
)

var attendanceSheetHeader = []any{
	"Hermano", "Grado", "Cargo", "Asistencias Totales", "Tenidas Aplicables",
	"Inasistencias", "Tasa de Asistencia", "Asistencias por Grado", "Tenidas de su Grado",
	"Tasa por Grado",
}

var brothersSheetHeader = []any{"Nombre", "Cédula", "Grado", "Cargo"}

// AttendanceExcel writes the attendance report as an xlsx workbook
func AttendanceExcel(w io.Writer, report *models.AttendanceReport) error {
	rows := AttendanceRows(report)
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{
			row.Name,
			row.Grade,
			row.Position,
			row.Attended,
			row.Applicable,
			row.Absences,
			percent(row.Rate),
			row.GradeAttendances,
			row.GradeSessions,
			percent(row.GradeRate),
		})
	}
	return writeWorkbook(w, AttendanceSheet, attendanceSheetHeader, values)
}

// BrothersExcel writes the brother list as an xlsx workbook
func BrothersExcel(w io.Writer, brothers []*models.Brother) error {
	values := make([][]any, 0, len(brothers))
	for _, brother := range brothers {
		cells := brotherCells(brother)
		row := make([]any, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		values = append(values, row)
	}
	return writeWorkbook(w, BrothersSheet, brothersSheetHeader, values)
}

// writeWorkbook writes a single-sheet workbook with a bold header row
func writeWorkbook(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve column range: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastColumn, 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
