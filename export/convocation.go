package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"logia/models"
)

// Venue is where a convocation says the meeting is held
type Venue struct {
	Name    string // Temple label or free-text location
	Address string // Street address, only known for temples
}

// Signature is one signing officer of a letter
type Signature struct {
	Name  string
	Title string
}

// Convocation is the text of a meeting convocation letter
type Convocation struct {
	Headers    []string
	PlaceDate  string
	Greeting   []string
	Salutation string
	Body       string
	Topics     string
	Closing    []string
	Signatures [2]Signature
}

// ConvocationText builds the letter summoning the brothers to a meeting
func ConvocationText(meeting *models.Meeting, venue Venue, lodge Lodge, issued time.Time) *Convocation {
	installed := ""
	if lodge.Installed != "" {
		installed = fmt.Sprintf(" Instalada el %s (E:.V:.)", lodge.Installed)
	}

	headers := []string{
		"A L:. G:. D:. G:. A:. D:. U:.",
		lodge.Title() + installed,
	}
	if lodge.GrandLodge != "" {
		headers = append(headers, "Bajo los auspicios de la "+lodge.GrandLodge)
	}
	if lodge.Rite != "" {
		headers = append(headers, lodge.Rite)
	}

	master := orDefault(lodge.WorshipfulMaster, "Venerable Maestro")

	place := "en " + venue.Name
	if venue.Address != "" {
		place = fmt.Sprintf("en nuestro templo %s, ubicado en %s", venue.Name, venue.Address)
	}
	if lodge.Orient != "" {
		place += ", al Or:. de " + lodge.Orient
	}

	start := ""
	if lodge.MeetingTime != "" {
		start = fmt.Sprintf(", comenzará a las %s (en punto)", lodge.MeetingTime)
	}

	body := fmt.Sprintf(
		"Convocatoria: De parte del V:.M:. %s y su cuadro logial, se os convoca para el próximo %s, a una Tenida %s en el Grado de %s%s %s.",
		master,
		SpanishLongDate(meeting.Date),
		meeting.Type,
		meeting.Grade,
		start,
		place,
	)

	return &Convocation{
		Headers:    headers,
		PlaceDate:  strings.TrimSpace(fmt.Sprintf("Or:. %s %s (e:.v:.)", lodge.Orient, SpanishDate(issued))),
		Greeting:   []string{"A todos los QQ:.HH:. que la presente", "vieren."},
		Salutation: "S:.F:.U:.",
		Body:       body,
		Topics:     meeting.Theme,
		Closing: []string{
			"Esperando de ustedes la máxima puntualidad y participación.",
			"Me despido con los SS:. PP:. y TT:. que nos son conocidos y un caluroso T:.A:.F:.",
		},
		Signatures: [2]Signature{
			{Name: lodge.WorshipfulMaster, Title: "V:.M:."},
			{Name: lodge.Secretary, Title: "Sec:. G:. SS:. y TT:."},
		},
	}
}

// ConvocationPDF lays out a convocation letter on one A4 page
func ConvocationPDF(w io.Writer, letter *Convocation) error {
	pdf := newLetterPDF()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*letterMargin

	pdf.SetFont("Times", "B", 10)
	for _, line := range letter.Headers {
		pdf.MultiCell(contentWidth, 6, tr(line), "", "C", false)
	}
	pdf.Ln(8)

	pdf.SetFont("Times", "", 10)
	pdf.CellFormat(contentWidth, 6, tr(letter.PlaceDate), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "B", 10)
	for _, line := range letter.Greeting {
		pdf.CellFormat(contentWidth, 5, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	pdf.CellFormat(contentWidth, 5, tr(letter.Salutation), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Times", "", 10)
	pdf.MultiCell(contentWidth, 5, tr(letter.Body), "", "J", false)
	pdf.Ln(5)

	pdf.SetFont("Times", "B", 10)
	pdf.CellFormat(contentWidth, 6, tr("Puntos a tratar:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.MultiCell(contentWidth, 5, tr(letter.Topics), "", "L", false)
	pdf.Ln(10)

	for _, line := range letter.Closing {
		pdf.MultiCell(contentWidth, 6, tr(line), "", "L", false)
	}
	pdf.Ln(24)

	pdf.SetFont("Times", "B", 10)
	half := contentWidth / 2
	for _, signature := range letter.Signatures {
		pdf.CellFormat(half, 5, tr(signature.Name), "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, signature := range letter.Signatures {
		pdf.CellFormat(half, 5, tr(signature.Title), "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	return outputPDF(pdf, w)
}

// ConvocationFileName returns "Convocatoria_YYYY-MM-DD.pdf" for the meeting date
func ConvocationFileName(meeting *models.Meeting) string {
	return ReportFileName("Convocatoria", "pdf", meeting.Date)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
