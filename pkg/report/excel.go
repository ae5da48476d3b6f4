package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"agricopilot/entities"
)

// BuildHistoryXLSX exports scan history as a spreadsheet, newest first,
// mirroring the /api/scans listing.
func BuildHistoryXLSX(records []entities.ScanRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scans"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := []any{
		"ID", "Timestamp (UTC)", "Latitude", "Longitude",
		"Condition", "Severity", "Spray Status", "Symptoms",
		"Treatment Advice", "Execution Plan", "Image",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range records {
		rec := &records[i]
		row := []any{
			rec.ID,
			rec.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			coordCell(rec.Latitude),
			coordCell(rec.Longitude),
			rec.DiseaseName,
			rec.SeverityScore,
			rec.SprayStatus,
			strings.Join(rec.SymptomList(), "; "),
			rec.TreatmentAdvice,
			rec.ExecutionPlan,
			rec.ImageFilename,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func coordCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
