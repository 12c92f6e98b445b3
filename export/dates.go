package export

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// SpanishDate formats a date as "19 de octubre de 2026"
func SpanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// SpanishLongDate formats a date as "lunes, 19 de octubre de 2026"
func SpanishLongDate(t time.Time) string {
	return spanishWeekdays[t.Weekday()] + ", " + SpanishDate(t)
}

// ShortDate formats a date as "19/10/2026"
func ShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}
