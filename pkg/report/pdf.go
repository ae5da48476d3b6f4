package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"agricopilot/entities"
)

// BuildPassport renders one scan as the Farm Health Passport PDF handed to
// farmers (and accepted by lenders as proof of proactive crop management).
func BuildPassport(rec *entities.ScanRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(26, 122, 66)
	pdf.CellFormat(200, 10, "AgriCopilot: Farm Health Passport", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(200, 10, "Generated on: "+time.Now().UTC().Format("2006-01-02 15:04 UTC"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(200, 10, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
	}
	line := func(text string) {
		pdf.CellFormat(200, 8, text, "", 1, "L", false, 0, "")
	}

	section("1. Scan & Location Details")
	line(fmt.Sprintf("Scan ID: %d", rec.ID))
	line("Date: " + rec.Timestamp.UTC().Format("2006-01-02 15:04 UTC"))
	line("Coordinates: " + formatCoord(rec.Latitude) + ", " + formatCoord(rec.Longitude))
	pdf.Ln(5)

	section("2. AI Diagnosis")
	line("Condition: " + orNA(rec.DiseaseName))
	line(fmt.Sprintf("Severity Score: %d/100", rec.SeverityScore))
	line("Spray Status: " + orNA(rec.SprayStatus))
	pdf.Ln(5)

	section("3. Identified Symptoms")
	for _, symptom := range rec.SymptomList() {
		line("- " + symptom)
	}
	pdf.Ln(5)

	section("4. Treatment & Execution Plan")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 8, latin1(rec.ExecutionPlan), "", "L", false)
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 6, "Note for Financial Institutions: This document verifies proactive crop management and risk mitigation strategies implemented by the farmer.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// latin1 replaces characters outside the core fonts' codepage so MultiCell
// never emits garbage for rupee signs or emoji in plan text.
func latin1(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, r)
	}
	return string(out)
}

func formatCoord(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.5f", *v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
