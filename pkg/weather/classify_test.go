package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGreen(t *testing.T) {
	status, color, reason := Classify(0.10, 8.0)
	assert.Equal(t, StatusGreen, status)
	assert.Equal(t, "#34C759", color)
	assert.Equal(t, "✅ SAFE TO SPRAY — Rain probability: 10% | Wind speed: 8.0 km/h", reason)
}

func TestClassifyBoundariesAreStrict(t *testing.T) {
	// exactly at the safe thresholds stays green
	status, _, _ := Classify(0.20, 15.0)
	assert.Equal(t, StatusGreen, status)

	// exactly at the caution thresholds stays yellow
	status, _, _ = Classify(0.50, 25.0)
	assert.Equal(t, StatusYellow, status)
}

func TestClassifyYellow(t *testing.T) {
	status, color, reason := Classify(0.35, 5.0)
	assert.Equal(t, StatusYellow, status)
	assert.Equal(t, "#FF9500", color)
	assert.True(t, strings.HasPrefix(reason, "⚠️ SPRAY WITH CAUTION — "))
	assert.Contains(t, reason, "Moderate rain probability: 35%")
	assert.NotContains(t, reason, "wind")

	_, _, reason = Classify(0.05, 20.0)
	assert.Contains(t, reason, "Moderate wind: 20.0 km/h")
}

func TestClassifyRed(t *testing.T) {
	status, color, reason := Classify(0.80, 10.0)
	assert.Equal(t, StatusRed, status)
	assert.Equal(t, "#FF3B30", color)
	assert.True(t, strings.HasPrefix(reason, "⛔ DO NOT SPRAY — "))
	assert.Contains(t, reason, "High rain probability: 80%")
}

func TestClassifyRedBothReasons(t *testing.T) {
	_, _, reason := Classify(0.90, 40.0)
	assert.Contains(t, reason, "High rain probability: 90% | Wind too high: 40.0 km/h")
}

func TestClassifyRainDominatesWind(t *testing.T) {
	// rain over the caution limit forces red even with calm wind
	status, _, _ := Classify(0.51, 0)
	assert.Equal(t, StatusRed, status)

	// wind over the caution limit forces red even with no rain
	status, _, _ = Classify(0, 25.1)
	assert.Equal(t, StatusRed, status)
}

func TestClassifyStatusesAreLowercase(t *testing.T) {
	for _, tc := range [][2]float64{{0.1, 5}, {0.4, 5}, {0.9, 5}} {
		status, _, _ := Classify(tc[0], tc[1])
		assert.Equal(t, strings.ToLower(status), status)
	}
}
