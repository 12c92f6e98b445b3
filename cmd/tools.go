package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"logia/config"
	"logia/export"
	"logia/importer"
	"logia/models"

	log "github.com/sirupsen/logrus"
)

// ImportBrothers loads a CSV or Excel roster into the database
func ImportBrothers(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := importer.ParseBrothers(filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	a, err := newApp(ctx, config.Get())
	if err != nil {
		return err
	}
	defer a.close()

	created, err := a.services.Brothers.ImportBrothers(ctx, rows)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file":    path,
		"created": created,
	}).Info("Brothers imported")
	return nil
}

// ExportReport writes the attendance or brothers report to out. An empty out
// picks a dated file name in the current directory.
func ExportReport(ctx context.Context, kind, formatName, out, gradeFilter string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	grade, err := models.ParseGradeFilter(gradeFilter)
	if err != nil {
		return err
	}

	cfg := config.Get()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now()
	header := export.Header{Lodge: lodgeFromConfig(cfg), Generated: now}
	gradeLabel := "Todos los grados"
	if grade != nil {
		gradeLabel = string(*grade)
	}

	var buf bytes.Buffer
	switch kind {
	case "attendance", "asistencias":
		report, err := a.services.Attendance.GetAttendanceReport(ctx, grade)
		if err != nil {
			return err
		}
		header.Subtitle = "Reporte de asistencias · " + gradeLabel
		if err := export.RenderAttendance(&buf, format, report, header); err != nil {
			return err
		}
		kind = "asistencias"
	case "brothers", "hermanos":
		brothers, err := a.services.Brothers.ListBrothers(ctx, grade, "")
		if err != nil {
			return err
		}
		header.Subtitle = "Listado de hermanos · " + gradeLabel
		if err := export.RenderBrothers(&buf, format, brothers, header); err != nil {
			return err
		}
		kind = "hermanos"
	default:
		return fmt.Errorf("unknown report %q: expected attendance or brothers", kind)
	}

	if out == "" {
		out = export.ReportFileName(kind, string(format), now)
	}
	if err := export.WriteFile(out, &buf); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"report": kind,
		"format": format,
		"path":   out,
	}).Info("Report exported")
	return nil
}
