package ai

import (
	"context"
	"fmt"

	"agricopilot/pkg/plan"
)

type mockClient struct{}

// NewMock returns the demo-mode client used when no Gemini API key is
// configured. Every call yields fixed placeholder data.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Available() bool { return false }

func (m *mockClient) AnalyzeImage(ctx context.Context, image []byte, mimeType, mode string) (plan.Diagnosis, error) {
	return DemoDiagnosis(), nil
}

func (m *mockClient) Chat(ctx context.Context, message, kbContext string) string {
	return "Demo mode: please set GEMINI_API_KEY to enable chat."
}

func (m *mockClient) RecommendCrops(ctx context.Context, profile RecommendContext) (map[string]any, error) {
	return DemoRecommendation(profile), nil
}

// DemoDiagnosis is the fixed fallback payload for scans.
func DemoDiagnosis() plan.Diagnosis {
	return plan.Normalize(map[string]any{
		"disease_name":       "Nitrogen Deficiency (Demo)",
		"severity_score":     65,
		"confidence_level":   "High",
		"affected_crop_part": "Lower Leaves",
		"symptoms":           []any{"Yellowing leaves", "Stunted growth"},
		"treatment_advice":   "Apply Urea. Cost: ₹800/acre.",
	})
}

// DemoRecommendation is the fixed fallback crop recommendation.
func DemoRecommendation(p RecommendContext) map[string]any {
	soil := p.SoilType
	if soil == "" {
		soil = "Loamy"
	}
	irrigation := p.Irrigation
	if irrigation == "" {
		irrigation = "Rain-fed"
	}
	return map[string]any{
		"top_crops": []any{
			map[string]any{
				"name":                "Paddy (Short Duration)",
				"suitability_score":   88,
				"reason":              fmt.Sprintf("Excellent for %s soil with %s irrigation", soil, irrigation),
				"expected_return_inr": 28000,
				"investment_inr":      8500,
				"duration_days":       110,
				"risk_level":          "Low",
				"market_demand":       "High",
				"market_price_qtl":    "₹2,369/qtl",
			},
			map[string]any{
				"name":                "Green Gram (Moong)",
				"suitability_score":   82,
				"reason":              "High protein crop, soil nitrogen fixation benefit, fast 60-day cycle",
				"expected_return_inr": 22000,
				"investment_inr":      5000,
				"duration_days":       65,
				"risk_level":          "Low",
				"market_demand":       "High",
				"market_price_qtl":    "₹8,550/qtl",
			},
			map[string]any{
				"name":                "Onion",
				"suitability_score":   74,
				"reason":              "High market value, good demand in local mandis",
				"expected_return_inr": 35000,
				"investment_inr":      12000,
				"duration_days":       130,
				"risk_level":          "Medium",
				"market_demand":       "High",
				"market_price_qtl":    "₹2,500/qtl",
			},
		},
		"oversupply_warnings": []any{
			map[string]any{
				"crop":    "Tomato",
				"warning": "Tomato is widely cultivated in your region this season. Market saturation may reduce profit margins by 30-40%. Consider Green Gram for better demand-supply balance.",
			},
		},
		"govt_schemes": []any{
			map[string]any{
				"name":    "PM-KISAN",
				"benefit": "₹6,000/year direct income support for small & marginal farmers",
				"url":     "https://pmkisan.gov.in/",
			},
			map[string]any{
				"name":    "NFSM — National Food Security Mission",
				"benefit": "Seeds, fertilisers, irrigation tools subsidised for rice/wheat/pulses",
				"url":     "https://nfsm.gov.in/",
			},
			map[string]any{
				"name":    "Soil Health Card Scheme",
				"benefit": "Free soil testing & nutrient recommendations every 2 years",
				"url":     "https://soilhealth.dac.gov.in/",
			},
		},
		"equipment_rental": []any{
			map[string]any{
				"tool":        "Tractor + Cultivator",
				"rental_cost": "₹800/day",
				"where":       "Custom Hiring Centre (CHC) — nearest district HQ",
			},
			map[string]any{
				"tool":        "Sprayer (Knapsack)",
				"rental_cost": "₹150/day",
				"where":       "Local agri input dealer or Krishi Vigyan Kendra",
			},
		},
		"sustainability_tip": "Practice crop rotation between paddy and legumes to restore soil nitrogen naturally, reducing fertiliser costs by up to 20% next season.",
	}
}
