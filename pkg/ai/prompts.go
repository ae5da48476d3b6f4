package ai

import (
	"fmt"
	"strings"
)

const fieldPrompt = `You are an expert agronomist AI. Analyze this crop image for pests, diseases, or nutrient deficiencies.
Crucially, distinguish between biological infections and mineral deficiencies (soil hunger).

Return ONLY a valid JSON object with the following keys:
- "disease_name": The name of the disease, pest, or nutrient deficiency.
- "severity_score": An integer from 0 to 100.
- "confidence_level": "High", "Medium", or "Low".
- "affected_crop_part": E.g., "Leaves", "Stem", "Fruit".
- "symptoms": A list of 2-4 strings describing visual symptoms.
- "treatment_advice": Actionable treatment advice with rough budget.`

const yieldPrompt = `Analyze this image of a crop/tree. Count the visible fruits/pods/vegetables.
Return ONLY valid JSON with these keys:
{
    "disease_name": "Yield Estimation",
    "severity_score": 0,
    "yield_estimate": "e.g., Approx 45 visible tomatoes",
    "harvest_readiness": "e.g., 80% ready",
    "market_advice": "e.g., Harvest in 3 days for peak price",
    "treatment_advice": "Prepare storage crates."
}`

const soilPrompt = `Analyze this soil image (texture, color, cracking).
Return ONLY valid JSON with these keys:
{
    "disease_name": "Soil Analysis",
    "severity_score": 0,
    "soil_type": "e.g., Clay Loam or Sandy",
    "moisture_level": "Low/Medium/High",
    "organic_matter": "Estimated Low/High",
    "treatment_advice": "e.g., Add gypsum and organic compost to improve water retention."
}`

const cratePrompt = `You are an AI post-harvest quality inspector. Analyze this crate of harvested crops for rot, damage, or spoilage.
Return ONLY a valid JSON object:
- "disease_name": The specific type of rot or damage (or "Healthy" if none).
- "severity_score": An integer 0-100 estimating the percentage of the crate affected.
- "confidence_level": "High", "Medium", or "Low".
- "affected_crop_part": "Harvested Produce".
- "symptoms": A list of visual signs of rot/damage.
- "treatment_advice": Actionable sorting/storage advice.`

func promptForMode(mode string) string {
	switch mode {
	case "yield":
		return yieldPrompt
	case "soil":
		return soilPrompt
	case "crate":
		return cratePrompt
	default:
		return fieldPrompt
	}
}

func renderChatPrompt(message, kbContext string) string {
	prompt := fmt.Sprintf(`You are an expert, empathetic agronomist advising a smallholder farmer in India.
Keep your advice highly practical, simple, and concise (under 3-4 sentences).
Farmer says: %q`, message)
	if kbContext != "" {
		prompt += "\n\nADVISORY NOTES (use for context, do not quote at length):\n" + kbContext
	}
	return prompt
}

func renderRecommendPrompt(p RecommendContext) string {
	return fmt.Sprintf(`You are an expert agricultural advisor for Indian farmers. Based on the farmer profile below,
provide crop recommendations as ONLY valid JSON with NO extra text.

Farmer Profile:
- Location: %s
- Soil Type: %s (pH: %.1f)
- Field Size: %.1f acres
- Budget: ₹%d
- Irrigation: %s
- Planned Crops: %s
- Previous Crops: %s

Return ONLY a JSON object:
{
  "top_crops": [
    {
      "name": "Crop Name",
      "suitability_score": 85,
      "reason": "One line why it suits this farm",
      "expected_return_inr": 25000,
      "investment_inr": 8000,
      "duration_days": 90,
      "risk_level": "Low/Medium/High",
      "market_demand": "High/Medium/Low",
      "market_price_qtl": "₹2500/qtl"
    }
  ],
  "oversupply_warnings": [
    {"crop": "Crop Name", "warning": "Warning message about market saturation"}
  ],
  "govt_schemes": [
    {"name": "Scheme Name", "benefit": "Short description", "url": "https://..."}
  ],
  "equipment_rental": [
    {"tool": "Tool name", "rental_cost": "₹X/day", "where": "Local source"}
  ],
  "sustainability_tip": "One actionable eco-tip"
}`,
		p.Location, p.SoilType, p.SoilPH, p.FieldSizeAcres, p.BudgetINR, p.Irrigation,
		joinOr(p.PlannedCrops), joinOr(p.PreviousCrops))
}

func joinOr(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}
