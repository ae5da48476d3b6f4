package plan

import (
	"fmt"
	"strings"

	"agricopilot/pkg/weather"
)

// Build merges the AI diagnosis with the weather advisory into one
// farmer-friendly execution plan. Pure: same inputs, same string, no errors.
func Build(d Diagnosis, w weather.Advisory) string {
	switch d.Kind {
	case KindYield:
		return fmt.Sprintf("YIELD REPORT: %s. HARVEST ADVICE: %s",
			orDefault(d.YieldEstimate, "N/A"),
			orDefault(d.MarketAdvice, "Check market prices."))
	case KindSoil:
		return fmt.Sprintf("SOIL REPORT: Type: %s, Moisture: %s. RECOMMENDATION: %s",
			orDefault(d.SoilType, "N/A"),
			orDefault(d.MoistureLevel, "N/A"),
			d.TreatmentAdvice)
	}

	var timing string
	switch strings.ToLower(w.SprayStatus) {
	case weather.StatusGreen:
		timing = "CONDITIONS IDEAL. Spray immediately."
	case weather.StatusYellow:
		timing = "CAUTION. High wind/rain risk."
	default:
		timing = "DO NOT SPRAY. Rain expected."
	}

	return fmt.Sprintf("DIAGNOSIS: %s (Severity: %d%%). WEATHER: %s. ADVISORY: %s TREATMENT: %s",
		orDefault(d.DiseaseName, "Unknown"), d.SeverityScore, w.StatusReason, timing, d.TreatmentAdvice)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
