package weather

import "fmt"

// HourlyPoint is one 3-hour forecast interval shown to the farmer.
type HourlyPoint struct {
	Time        string  `json:"time"` // "HH:MM UTC"
	RainProbPct int     `json:"rain_prob_pct"`
	WindKmh     float64 `json:"wind_kmh"`
	TempC       float64 `json:"temp_c"`
	HumidityPct int     `json:"humidity_pct"`
	Description string  `json:"description"`
}

// Advisory is the weather context attached to a scan. SprayStatus is always
// one of green/yellow/red/unknown, lowercase. Numeric context is nullable:
// the unknown advisory carries none of it.
type Advisory struct {
	SprayStatus  string `json:"spray_status"`
	StatusColor  string `json:"status_color,omitempty"`
	StatusReason string `json:"status_reason"`
	LocationName string `json:"location_name,omitempty"`

	MaxRainProbPct *int     `json:"max_rain_prob_pct,omitempty"`
	MaxWindKmh     *float64 `json:"max_wind_kmh,omitempty"`
	TemperatureC   *float64 `json:"temperature_c,omitempty"`
	TempMaxC       *float64 `json:"temp_max_c,omitempty"`
	TempMinC       *float64 `json:"temp_min_c,omitempty"`
	HumidityPct    *int     `json:"humidity_pct,omitempty"`
	RainfallMM     *float64 `json:"rainfall_mm,omitempty"`

	Hourly              []HourlyPoint `json:"hourly_summary,omitempty"`
	ForecastWindowHours int           `json:"forecast_window_hours,omitempty"`
	DemoMode            bool          `json:"demo_mode,omitempty"`
}

// Unknown builds the advisory substituted when no forecast is available.
func Unknown(reason string) *Advisory {
	return &Advisory{SprayStatus: StatusUnknown, StatusReason: reason}
}

// Demo returns deterministic calm-day weather for operation without an API key.
func Demo(lat, lon float64) *Advisory {
	hourly := make([]HourlyPoint, 0, 8)
	for h := 0; h < 24; h += 3 {
		hourly = append(hourly, HourlyPoint{
			Time:        fmt.Sprintf("%02d:00 UTC", h),
			RainProbPct: 10,
			WindKmh:     8.5,
			TempC:       24.0,
			HumidityPct: 62,
			Description: "Partly cloudy",
		})
	}
	status, color, reason := Classify(0.12, 9.2)
	return &Advisory{
		SprayStatus:         status,
		StatusColor:         color,
		StatusReason:        reason,
		LocationName:        fmt.Sprintf("Field Location (%.3f, %.3f)", lat, lon),
		MaxRainProbPct:      intp(12),
		MaxWindKmh:          floatp(9.2),
		TemperatureC:        floatp(24.0),
		HumidityPct:         intp(62),
		Hourly:              hourly,
		ForecastWindowHours: 24,
		DemoMode:            true,
	}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
