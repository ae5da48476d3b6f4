package plan

import "encoding/json"

// Kind tags the three recognized diagnosis shapes. Decided once when the
// diagnosis is normalized instead of re-matching the discriminator string at
// formatting time.
type Kind int

const (
	KindStandard Kind = iota // disease / pest / nutrient deficiency
	KindYield
	KindSoil
)

const (
	yieldDiscriminator = "Yield Estimation"
	soilDiscriminator  = "Soil Analysis"
)

// Diagnosis is the normalized form of the loosely-typed payload returned by
// the vision model. Every field is optional upstream; missing or mistyped
// values degrade to the zero value here and unknown keys are ignored.
type Diagnosis struct {
	Kind Kind `json:"-"`

	DiseaseName     string   `json:"disease_name"`
	SeverityScore   int      `json:"severity_score"` // 0-100
	Symptoms        []string `json:"symptoms"`
	TreatmentAdvice string   `json:"treatment_advice"`

	ConfidenceLevel  string `json:"confidence_level,omitempty"`
	AffectedCropPart string `json:"affected_crop_part,omitempty"`

	// yield mode
	YieldEstimate    string `json:"yield_estimate,omitempty"`
	HarvestReadiness string `json:"harvest_readiness,omitempty"`
	MarketAdvice     string `json:"market_advice,omitempty"`

	// soil mode
	SoilType      string `json:"soil_type,omitempty"`
	MoistureLevel string `json:"moisture_level,omitempty"`
	OrganicMatter string `json:"organic_matter,omitempty"`
}

// Normalize builds a Diagnosis from an untrusted mapping. It never fails:
// types are coerced where sensible and dropped otherwise.
func Normalize(raw map[string]any) Diagnosis {
	d := Diagnosis{
		DiseaseName:      asString(raw["disease_name"]),
		SeverityScore:    asInt(raw["severity_score"]),
		Symptoms:         asStringList(raw["symptoms"]),
		TreatmentAdvice:  asString(raw["treatment_advice"]),
		ConfidenceLevel:  asString(raw["confidence_level"]),
		AffectedCropPart: asString(raw["affected_crop_part"]),
		YieldEstimate:    asString(raw["yield_estimate"]),
		HarvestReadiness: asString(raw["harvest_readiness"]),
		MarketAdvice:     asString(raw["market_advice"]),
		SoilType:         asString(raw["soil_type"]),
		MoistureLevel:    asString(raw["moisture_level"]),
		OrganicMatter:    asString(raw["organic_matter"]),
	}
	switch d.DiseaseName {
	case yieldDiscriminator:
		d.Kind = KindYield
	case soilDiscriminator:
		d.Kind = KindSoil
	default:
		d.Kind = KindStandard
	}
	return d
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

func asStringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
