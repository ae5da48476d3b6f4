package entities

import (
	"encoding/json"
	"time"
)

// ScanRecord stores every crop scan with GPS coordinates, AI diagnosis,
// weather context, and the combined execution plan. Records are insert-only;
// history listing and the PDF passport read them back.
type ScanRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`

	// WGS84 decimal degrees; nil when the scan had no GPS fix
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	DiseaseName     string `gorm:"size:256;not null" json:"disease_name"`
	SeverityScore   int    `json:"severity_score"` // 0-100
	Symptoms        string `json:"-"`              // JSON array stored as text
	TreatmentAdvice string `json:"treatment_advice"`

	WeatherSummary string `json:"-"`               // JSON blob
	SprayStatus    string `gorm:"size:16" json:"spray_status"` // green|yellow|red|unknown

	ExecutionPlan string `json:"execution_plan"`

	ImageFilename  string `gorm:"size:512" json:"image_filename"`
	StoredFilename string `gorm:"size:512" json:"stored_filename"`
}

// ToDict serializes the record to a JSON-safe map, decoding the symptoms
// array and weather summary blob back into structured values.
func (r *ScanRecord) ToDict() map[string]any {
	symptoms := []string{}
	if r.Symptoms != "" {
		if err := json.Unmarshal([]byte(r.Symptoms), &symptoms); err != nil {
			symptoms = []string{r.Symptoms}
		}
	}

	weather := map[string]any{}
	if r.WeatherSummary != "" {
		if err := json.Unmarshal([]byte(r.WeatherSummary), &weather); err != nil {
			weather = map[string]any{}
		}
	}

	return map[string]any{
		"id":               r.ID,
		"timestamp":        r.Timestamp.UTC().Format(time.RFC3339),
		"latitude":         r.Latitude,
		"longitude":        r.Longitude,
		"disease_name":     r.DiseaseName,
		"severity_score":   r.SeverityScore,
		"symptoms":         symptoms,
		"treatment_advice": r.TreatmentAdvice,
		"weather_summary":  weather,
		"spray_status":     r.SprayStatus,
		"execution_plan":   r.ExecutionPlan,
		"image_filename":   r.ImageFilename,
	}
}

// SymptomList decodes the stored symptoms JSON array.
func (r *ScanRecord) SymptomList() []string {
	out := []string{}
	if r.Symptoms == "" {
		return out
	}
	if err := json.Unmarshal([]byte(r.Symptoms), &out); err != nil {
		return []string{r.Symptoms}
	}
	return out
}
