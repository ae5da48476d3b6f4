package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agricopilot/pkg/logger"
)

// Forecaster is the weather collaborator seen by the scan orchestrator.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (*Advisory, error)
}

const (
	owmForecastURL  = "https://api.openweathermap.org/data/2.5/forecast"
	openMeteoURL    = "https://api.open-meteo.com/v1/forecast"
	requestTimeout  = 10 * time.Second
	forecastPeriods = 8 // 8 x 3-hour intervals = 24 hours
)

type Service struct {
	apiKey      string
	httpc       *http.Client
	forecastURL string
	meteoURL    string
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:      apiKey,
		httpc:       &http.Client{Timeout: requestTimeout},
		forecastURL: owmForecastURL,
		meteoURL:    openMeteoURL,
	}
}

type owmResponse struct {
	List []struct {
		Dt   int64   `json:"dt"`
		Pop  float64 `json:"pop"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"` // m/s
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// Forecast fetches the 24-hour forecast for the coordinates and derives the
// spray advisory. Without an API key it returns deterministic demo weather.
func (s *Service) Forecast(ctx context.Context, lat, lon float64) (*Advisory, error) {
	if s.apiKey == "" {
		logger.Log.Warn("OPENWEATHER_API_KEY not set, returning demo weather")
		return Demo(lat, lon), nil
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")
	q.Set("cnt", fmt.Sprintf("%d", forecastPeriods))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.forecastURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.New("invalid OpenWeatherMap API key")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}

	adv, err := parseForecast(&data)
	if err != nil {
		return nil, err
	}

	// Derived daily figures are not part of the 3-hourly feed; fill the gaps
	// from Open-Meteo without touching anything already present.
	s.enrich(ctx, adv, lat, lon)
	adv.SprayStatus = strings.ToLower(adv.SprayStatus)
	return adv, nil
}

func parseForecast(data *owmResponse) (*Advisory, error) {
	if len(data.List) == 0 {
		return nil, errors.New("no forecast data returned from OpenWeatherMap")
	}

	var maxRainProb, maxWindKmh, tempSum, humiditySum float64
	hourly := make([]HourlyPoint, 0, len(data.List))

	for _, item := range data.List {
		windKmh := item.Wind.Speed * 3.6
		if item.Pop > maxRainProb {
			maxRainProb = item.Pop
		}
		if windKmh > maxWindKmh {
			maxWindKmh = windKmh
		}
		tempSum += item.Main.Temp
		humiditySum += item.Main.Humidity

		desc := ""
		if len(item.Weather) > 0 {
			desc = capitalize(item.Weather[0].Description)
		}
		hourly = append(hourly, HourlyPoint{
			Time:        time.Unix(item.Dt, 0).UTC().Format("15:04") + " UTC",
			RainProbPct: pct(item.Pop),
			WindKmh:     round1(windKmh),
			TempC:       round1(item.Main.Temp),
			HumidityPct: int(item.Main.Humidity + 0.5),
			Description: desc,
		})
	}

	n := float64(len(data.List))
	status, color, reason := Classify(maxRainProb, maxWindKmh)

	location := data.City.Name
	if location == "" {
		location = "Unknown Location"
	}
	if data.City.Country != "" {
		location += ", " + data.City.Country
	}

	return &Advisory{
		SprayStatus:         status,
		StatusColor:         color,
		StatusReason:        reason,
		LocationName:        location,
		MaxRainProbPct:      intp(pct(maxRainProb)),
		MaxWindKmh:          floatp(round1(maxWindKmh)),
		TemperatureC:        floatp(round1(tempSum / n)),
		HumidityPct:         intp(int(humiditySum/n + 0.5)),
		Hourly:              hourly,
		ForecastWindowHours: len(data.List) * 3,
	}, nil
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
