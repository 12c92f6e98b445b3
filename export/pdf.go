package export

import (
	"fmt"
	"io"
	"strconv"

	"logia/models"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 14.0
	letterMargin = 20.0
	tableRowH    = 7.0
	tableFontPt  = 8.0
	headerFontPt = 9.0
)

// tableColumn is a column of a PDF table
type tableColumn struct {
	title string
	width float64
	align string
}

var attendanceColumns = []tableColumn{
	{title: "Hermano", width: 56, align: "L"},
	{title: "Grado", width: 24, align: "L"},
	{title: "Asistencias", width: 20, align: "C"},
	{title: "Tenidas", width: 18, align: "C"},
	{title: "Inasistencias", width: 22, align: "C"},
	{title: "Tasa", width: 14, align: "C"},
	{title: "Grado (asist.)", width: 28, align: "C"},
}

var brotherColumns = []tableColumn{
	{title: "Nombre", width: 70, align: "L"},
	{title: "Cédula", width: 32, align: "L"},
	{title: "Grado", width: 30, align: "L"},
	{title: "Cargo", width: 50, align: "L"},
}

// AttendancePDF writes the attendance report as an A4 PDF table
func AttendancePDF(w io.Writer, report *models.AttendanceReport, header Header) error {
	pdf := newReportPDF(header)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	rows := AttendanceRows(report)
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Name,
			row.Grade,
			strconv.Itoa(row.Attended),
			strconv.Itoa(row.Applicable),
			strconv.Itoa(row.Absences),
			percent(row.Rate),
			fmt.Sprintf("%d/%d (%s)", row.GradeAttendances, row.GradeSessions, percent(row.GradeRate)),
		})
	}
	drawTable(pdf, tr, attendanceColumns, cells)

	if report != nil && len(report.Summaries) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", headerFontPt)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Promedio general: %s   Promedio por grado: %s",
			percent(report.Averages.AverageOverallRate), percent(report.Averages.AverageGradeRate))), "", 1, "L", false, 0, "")
	}

	return outputPDF(pdf, w)
}

// BrothersPDF writes the brother list as an A4 PDF table
func BrothersPDF(w io.Writer, brothers []*models.Brother, header Header) error {
	pdf := newReportPDF(header)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	cells := make([][]string, 0, len(brothers))
	for _, brother := range brothers {
		cells = append(cells, brotherCells(brother))
	}
	drawTable(pdf, tr, brotherColumns, cells)

	return outputPDF(pdf, w)
}

// newReportPDF starts a portrait A4 document with the lodge title block
func newReportPDF(header Header) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(header.Subtitle, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr(header.Lodge.Title()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(header.Subtitle), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Generado: "+ShortDate(header.Generated)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	return pdf
}

// newLetterPDF starts a portrait A4 document with letter margins
func newLetterPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(letterMargin, letterMargin, letterMargin)
	pdf.SetAutoPageBreak(true, letterMargin)
	pdf.AddPage()
	return pdf
}

// drawTable draws a header row and the body rows, repeating the header on new pages
func drawTable(pdf *fpdf.Fpdf, tr func(string) string, columns []tableColumn, rows [][]string) {
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", headerFontPt)
		pdf.SetFillColor(37, 99, 235)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range columns {
			pdf.CellFormat(col.width, tableRowH, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", tableFontPt)
	}

	drawHeader()
	_, pageHeight := pdf.GetPageSize()
	for i, row := range rows {
		if pdf.GetY()+tableRowH > pageHeight-pageMargin {
			pdf.AddPage()
			drawHeader()
		}
		fill := i%2 == 1
		pdf.SetFillColor(241, 245, 249)
		for j, col := range columns {
			text := ""
			if j < len(row) {
				text = fitText(pdf, tr(row[j]), col.width-2)
			}
			pdf.CellFormat(col.width, tableRowH, text, "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fitText shortens text with an ellipsis until it fits the width
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func outputPDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
