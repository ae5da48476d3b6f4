package weather

import "fmt"

// Spray safety thresholds. Rain takes priority over wind at each tier
// (chemical efficacy and runoff).
const (
	RainProbSafe    = 0.20 // 20% probability = upper safe limit
	RainProbCaution = 0.50 // 50% probability = upper caution limit
	WindSafeKmh     = 15.0 // km/h upper safe wind limit
	WindCautionKmh  = 25.0 // km/h upper caution wind limit
)

const (
	StatusGreen   = "green"
	StatusYellow  = "yellow"
	StatusRed     = "red"
	StatusUnknown = "unknown"
)

// Classify applies the spray safety rules to a 24h forecast window.
// rainProb is a probability in [0,1], windKmh a speed in km/h; out-of-range
// inputs are accepted as-is. Thresholds are strict: exactly 20% rain and
// 15 km/h wind is still green.
func Classify(rainProb, windKmh float64) (status, color, reason string) {
	switch {
	case rainProb > RainProbCaution || windKmh > WindCautionKmh:
		reason = "⛔ DO NOT SPRAY — " + joinReasons(
			rainProb > RainProbCaution, fmt.Sprintf("High rain probability: %d%%", pct(rainProb)),
			windKmh > WindCautionKmh, fmt.Sprintf("Wind too high: %.1f km/h", windKmh),
		)
		return StatusRed, "#FF3B30", reason
	case rainProb > RainProbSafe || windKmh > WindSafeKmh:
		reason = "⚠️ SPRAY WITH CAUTION — " + joinReasons(
			rainProb > RainProbSafe, fmt.Sprintf("Moderate rain probability: %d%%", pct(rainProb)),
			windKmh > WindSafeKmh, fmt.Sprintf("Moderate wind: %.1f km/h", windKmh),
		)
		return StatusYellow, "#FF9500", reason
	default:
		reason = fmt.Sprintf("✅ SAFE TO SPRAY — Rain probability: %d%% | Wind speed: %.1f km/h",
			pct(rainProb), windKmh)
		return StatusGreen, "#34C759", reason
	}
}

func joinReasons(aOn bool, a string, bOn bool, b string) string {
	switch {
	case aOn && bOn:
		return a + " | " + b
	case aOn:
		return a
	default:
		return b
	}
}

func pct(p float64) int {
	return int(p*100 + 0.5)
}
