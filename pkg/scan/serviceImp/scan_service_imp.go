package serviceImp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"agricopilot/entities"
	"agricopilot/pkg/ai"
	"agricopilot/pkg/logger"
	"agricopilot/pkg/plan"
	"agricopilot/pkg/scan/repository"
	"agricopilot/pkg/scan/service"
	"agricopilot/pkg/weather"
)

const (
	reasonNoGPS          = "No GPS location provided."
	reasonWeatherFailure = "Weather unavailable"
)

// Substrings marking a response where the vision collaborator itself failed
// (soft failures returned as diagnosis text rather than transport errors).
var errorSentinels = []string{"analysis error", "api key", "quota"}

type ScanSvc struct {
	aiClient  ai.Client
	forecast  weather.Forecaster
	repo      repository.ScanRepository
	uploadDir string
}

func New(aiClient ai.Client, forecast weather.Forecaster, repo repository.ScanRepository, uploadDir string) *ScanSvc {
	return &ScanSvc{aiClient: aiClient, forecast: forecast, repo: repo, uploadDir: uploadDir}
}

// Analyze runs one end-to-end scan: diagnose the image, fetch weather for the
// coordinates, fuse both into an execution plan, persist the record. AI and
// weather failures are absorbed with deterministic fallbacks and surfaced
// only through the demo flag and the unknown advisory.
func (s *ScanSvc) Analyze(ctx context.Context, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	if len(in.Image) == 0 {
		return nil, service.ErrNoImage
	}
	if in.Mode == "" {
		in.Mode = "field"
	}

	demo := !s.aiClient.Available()
	diagnosis, err := s.aiClient.AnalyzeImage(ctx, in.Image, in.MimeType, in.Mode)
	if err != nil || isErrorSentinel(diagnosis) {
		if err != nil {
			logger.Log.Warnf("vision analysis failed, using demo diagnosis: %v", err)
		} else {
			logger.Log.Warnf("vision returned error sentinel %q, using demo diagnosis", diagnosis.DiseaseName)
		}
		diagnosis = ai.DemoDiagnosis()
		demo = true
	}

	var advisory *weather.Advisory
	if in.Lat != nil && in.Lon != nil {
		advisory, err = s.forecast.Forecast(ctx, *in.Lat, *in.Lon)
		if err != nil {
			logger.Log.Warnf("weather forecast failed: %v", err)
			advisory = weather.Unknown(reasonWeatherFailure)
		}
	} else {
		advisory = weather.Unknown(reasonNoGPS)
	}
	advisory.SprayStatus = strings.ToLower(advisory.SprayStatus)

	executionPlan := plan.Build(diagnosis, *advisory)

	symptomsJSON, _ := json.Marshal(orEmpty(diagnosis.Symptoms))
	weatherJSON, _ := json.Marshal(advisory)

	record := &entities.ScanRecord{
		Timestamp:       time.Now().UTC(),
		Latitude:        in.Lat,
		Longitude:       in.Lon,
		DiseaseName:     diagnosis.DiseaseName,
		SeverityScore:   diagnosis.SeverityScore,
		Symptoms:        string(symptomsJSON),
		TreatmentAdvice: diagnosis.TreatmentAdvice,
		WeatherSummary:  string(weatherJSON),
		SprayStatus:     advisory.SprayStatus,
		ExecutionPlan:   executionPlan,
		ImageFilename:   in.Filename,
		StoredFilename:  s.storeImage(in.Image, in.Filename),
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}

	return &service.AnalyzeResult{
		ScanID:        record.ID,
		Diagnosis:     diagnosis,
		Weather:       advisory,
		ExecutionPlan: executionPlan,
		DemoMode:      demo,
	}, nil
}

func (s *ScanSvc) Recent(limit int) ([]entities.ScanRecord, error) { return s.repo.Recent(limit) }

func (s *ScanSvc) Get(id uint) (*entities.ScanRecord, error) { return s.repo.FindByID(id) }

// storeImage writes the upload under a uuid name for later reference.
// Best effort: a failed write keeps the scan itself usable.
func (s *ScanSvc) storeImage(image []byte, original string) string {
	if s.uploadDir == "" {
		return ""
	}
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		logger.Log.Warnf("upload dir: %v", err)
		return ""
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), image, 0o644); err != nil {
		logger.Log.Warnf("store image: %v", err)
		return ""
	}
	return name
}

func isErrorSentinel(d plan.Diagnosis) bool {
	if strings.TrimSpace(d.DiseaseName) == "" {
		return true
	}
	haystack := strings.ToLower(d.DiseaseName + " " + d.TreatmentAdvice)
	for _, marker := range errorSentinels {
		if strings.Contains(haystack, marker) {
			return true
		}
	}
	return false
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
