package ai

import (
	"context"

	"agricopilot/pkg/plan"
)

// Client is the multimodal AI collaborator. One instance is created at
// startup and shared; implementations must be safe for concurrent use.
type Client interface {
	// Available reports whether a real model backs this client. The mock
	// implementation returns false so callers can flag demo responses.
	Available() bool

	// AnalyzeImage runs the vision diagnosis for the given scan mode
	// (field, yield, soil, crate). Transport or parse failures return an
	// error; the caller substitutes demo data.
	AnalyzeImage(ctx context.Context, image []byte, mimeType, mode string) (plan.Diagnosis, error)

	// Chat answers a free-text farmer question, optionally grounded on
	// advisory snippets. Never fails: a fallback reply substitutes on error.
	Chat(ctx context.Context, message, kbContext string) string

	// RecommendCrops asks the model for structured crop recommendations
	// based on the farmer profile.
	RecommendCrops(ctx context.Context, profile RecommendContext) (map[string]any, error)
}

// RecommendContext is the farmer profile snapshot sent to the model.
type RecommendContext struct {
	Location       string
	SoilType       string
	SoilPH         float64
	FieldSizeAcres float64
	BudgetINR      int
	Irrigation     string
	PlannedCrops   []string
	PreviousCrops  []string
}
