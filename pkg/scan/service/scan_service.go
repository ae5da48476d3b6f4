package service

import (
	"context"
	"errors"

	"agricopilot/entities"
	"agricopilot/pkg/plan"
	"agricopilot/pkg/weather"
)

// ErrNoImage signals a missing image upload; callers report it as a
// validation error, not a server failure.
var ErrNoImage = errors.New("No image file provided.")

type AnalyzeInput struct {
	Image    []byte
	MimeType string
	Filename string
	Mode     string // field (default) | yield | soil | crate
	Lat      *float64
	Lon      *float64
}

type AnalyzeResult struct {
	ScanID        uint
	Diagnosis     plan.Diagnosis
	Weather       *weather.Advisory
	ExecutionPlan string
	DemoMode      bool
}

type ScanService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeResult, error)
	Recent(limit int) ([]entities.ScanRecord, error)
	Get(id uint) (*entities.ScanRecord, error)
}
