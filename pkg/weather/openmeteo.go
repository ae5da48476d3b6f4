package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"agricopilot/pkg/logger"
)

type openMeteoResponse struct {
	Daily struct {
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
		Precip  []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// enrich fills daily temperature extremes and rainfall from Open-Meteo when
// the primary provider did not supply them. Best effort: fields already set
// are kept, and any failure leaves the advisory untouched.
func (s *Service) enrich(ctx context.Context, adv *Advisory, lat, lon float64) {
	if adv.TempMaxC != nil && adv.TempMinC != nil && adv.RainfallMM != nil {
		return
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("timezone", "UTC")
	q.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.meteoURL+"?"+q.Encode(), nil)
	if err != nil {
		return
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		logger.Log.Debugf("open-meteo enrichment skipped: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Log.Debugf("open-meteo enrichment status %d", resp.StatusCode)
		return
	}

	var data openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return
	}

	if adv.TempMaxC == nil && len(data.Daily.TempMax) > 0 {
		adv.TempMaxC = floatp(round1(data.Daily.TempMax[0]))
	}
	if adv.TempMinC == nil && len(data.Daily.TempMin) > 0 {
		adv.TempMinC = floatp(round1(data.Daily.TempMin[0]))
	}
	if adv.RainfallMM == nil && len(data.Daily.Precip) > 0 {
		adv.RainfallMM = floatp(round1(data.Daily.Precip[0]))
	}
}
