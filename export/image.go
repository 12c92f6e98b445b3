package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"logia/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// imageColumn defines a column of the attendance table image
type imageColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// ImageStyle defines the visual style of the table image
type ImageStyle struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
}

// DefaultImageStyle is the style used for Discord attachments
var DefaultImageStyle = ImageStyle{
	Width:     520,
	MinHeight: 160,
	Padding:   15,
	RowHeight: 24,
}

const maxImageNameRunes = 22

// AttendanceImage renders the attendance report table as a PNG
func AttendanceImage(report *models.AttendanceReport, title string) ([]byte, error) {
	return renderAttendanceImage(DefaultImageStyle, report, title)
}

func renderAttendanceImage(style ImageStyle, report *models.AttendanceReport, title string) ([]byte, error) {
	start := time.Now()
	rows := AttendanceRows(report)
	defer func() {
		log.WithFields(log.Fields{
			"duration_ms": time.Since(start).Milliseconds(),
			"row_count":   len(rows),
		}).Debug("Attendance image generation completed")
	}()

	p := style.Padding
	columns := []imageColumn{
		{Header: "Hermano", XPosition: p, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Grado", XPosition: p + 190, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Asist.", XPosition: p + 280, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "Tenidas", XPosition: p + 335, ColorRGB: [3]float64{0.85, 0.85, 1}},
		{Header: "Tasa", XPosition: p + 400, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Grado%", XPosition: p + 445, ColorRGB: [3]float64{1, 0.9, 1}},
	}

	// Title (30px) + header (30px) + rows + footer (35px)
	height := 30 + 30 + len(rows)*style.RowHeight + 35
	if height < style.MinHeight {
		height = style.MinHeight
	}

	dc := gg.NewContext(style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	// Vertical gradient background
	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(style.Width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	y := float64(22)
	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, title, float64(p), y)

	dc.SetFontFace(face)
	y += 30

	// Header background and text
	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(style.Width), 20)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}
	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(style.Width), y+8)
	dc.Stroke()

	y += float64(style.RowHeight) + 4
	for i, row := range rows {
		if i%2 == 1 {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.06)
			dc.DrawRectangle(0, y-15, float64(style.Width), float64(style.RowHeight))
			dc.Fill()
		}

		cells := []string{
			truncateRunes(row.Name, maxImageNameRunes),
			row.Grade,
			strconv.Itoa(row.Attended),
			strconv.Itoa(row.Applicable),
			percent(row.Rate),
			percent(row.GradeRate),
		}
		for j, col := range columns {
			if col.Header == "Tasa" {
				setRateColor(dc, row.Rate, row.Applicable)
			} else {
				dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			}
			drawSharpText(dc, cells[j], float64(col.XPosition), y)
		}

		y += float64(style.RowHeight)
	}

	if report != nil {
		footer := fmt.Sprintf("Promedio general %s  |  Promedio por grado %s",
			percent(report.Averages.AverageOverallRate), percent(report.Averages.AverageGradeRate))
		dc.SetRGB(0.7, 0.7, 0.7)
		w, _ := dc.MeasureString(footer)
		drawSharpText(dc, footer, (float64(style.Width)-w)/2, float64(height)-15)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// setRateColor colors a rate green when high and red when low
func setRateColor(dc *gg.Context, rate, applicable int) {
	switch {
	case applicable == 0:
		dc.SetRGB(0.8, 0.8, 0.8)
	case rate >= 75:
		dc.SetRGB(0.4, 1.0, 0.4)
	case rate < 50:
		dc.SetRGB(1.0, 0.4, 0.4)
	default:
		dc.SetRGB(1.0, 0.85, 0.4)
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// drawSharpText draws text over a faint shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
