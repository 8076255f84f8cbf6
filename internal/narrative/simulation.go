package narrative

import "strings"

// Simulation profile dimensions
const (
	FieldTone      = "tone"
	FieldStructure = "structure"
	FieldFocus     = "focus"
)

// RiskLevel is the deception risk band of a simulated profile
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

const (
	SimulationHighAbove   = 50
	SimulationMediumAbove = 20
	SimulationMaxScore    = 100
)

// SimulationRule adds Points when the selected option for Field contains
// Trigger.
type SimulationRule struct {
	Field   string `json:"field"`
	Trigger string `json:"trigger"`
	Points  int    `json:"points"`
	Reason  string `json:"reason"`
}

// SimulationRules are evaluated in order: tone, then structure, then focus.
var SimulationRules = []SimulationRule{
	{Field: FieldTone, Trigger: "Defensive", Points: 25, Reason: "Defensive tone suggests hiding bad news."},
	{Field: FieldTone, Trigger: "Aggressive", Points: 35, Reason: "Aggressive promotion is a fraud marker."},
	{Field: FieldTone, Trigger: "Confused", Points: 50, Reason: "Contradictions indicate lack of control."},

	{Field: FieldStructure, Trigger: "Legalese", Points: 20, Reason: "High complexity obscures truth."},
	{Field: FieldStructure, Trigger: "Word Salad", Points: 40, Reason: "Extreme obfuscation detected."},

	{Field: FieldFocus, Trigger: "Non-GAAP", Points: 20, Reason: "Focus on 'Adjusted' numbers vs real profit."},
	{Field: FieldFocus, Trigger: "Excuses", Points: 30, Reason: "Externalizing blame."},
	{Field: FieldFocus, Trigger: "Future", Points: 25, Reason: "Distracting from current performance."},
}

// SimulationOptions lists the selectable options for each dimension
type SimulationOptions struct {
	Tones      []string `json:"tones"`
	Structures []string `json:"structures"`
	Focuses    []string `json:"focuses"`
}

// Options returns the closed option sets offered to auditors.
func Options() SimulationOptions {
	return SimulationOptions{
		Tones: []string{
			"Optimistic & Data-Driven (Low Risk)",
			"Neutral / Professional (Low Risk)",
			"Cautious / Hedging (Medium Risk)",
			"Defensive / Blaming Externals (High Risk)",
			"Aggressive / Boastful (High Risk)",
			"Confused / Contradictory (Critical Risk)",
		},
		Structures: []string{
			"Simple & Direct (Fog < 12)",
			"Standard Business (Fog 12-16)",
			"Academic / Technical (Fog 16-18)",
			"Complex / Legalese (Fog 18-22)",
			"Incomprehensible Word Salad (Fog > 22)",
		},
		Focuses: []string{
			"Core Operations & Cash Flow",
			"Strategic Growth Initiatives",
			"Non-GAAP / Adjusted Metrics",
			"One-time Events & Excuses",
			"Future Promises (Little Current Data)",
		},
	}
}

// Contains reports whether option is one of the catalog entries for field.
func (o SimulationOptions) Contains(field, option string) bool {
	var list []string
	switch field {
	case FieldTone:
		list = o.Tones
	case FieldStructure:
		list = o.Structures
	case FieldFocus:
		list = o.Focuses
	}
	for _, v := range list {
		if v == option {
			return true
		}
	}
	return false
}

// SimulationResult is the deception risk score of a linguistic profile
type SimulationResult struct {
	Score      int       `json:"score"`
	RawScore   int       `json:"raw_score"`
	Reasons    []string  `json:"reasons"`
	Level      RiskLevel `json:"level"`
	Conclusion string    `json:"conclusion"`
	Guidance   string    `json:"guidance"`
}

// ScoreSimulation scores a tone / structure / focus selection. Options
// outside the catalog are accepted and contribute nothing unless they
// contain a trigger.
//
// RawScore is the plain sum of triggered points and can reach 120; Score is
// clamped to 0-100 for gauges. The level is taken from RawScore.
func ScoreSimulation(tone, structure, focus string) SimulationResult {
	selected := map[string]string{
		FieldTone:      tone,
		FieldStructure: structure,
		FieldFocus:     focus,
	}

	raw := 0
	reasons := []string{}
	for _, rule := range SimulationRules {
		if strings.Contains(selected[rule.Field], rule.Trigger) {
			raw += rule.Points
			reasons = append(reasons, rule.Reason)
		}
	}

	score := raw
	if score > SimulationMaxScore {
		score = SimulationMaxScore
	}
	if score < 0 {
		score = 0
	}

	result := SimulationResult{
		Score:    score,
		RawScore: raw,
		Reasons:  reasons,
	}
	switch {
	case raw > SimulationHighAbove:
		result.Level = RiskHigh
		result.Conclusion = "HIGH RISK: DECEPTION LIKELY"
		result.Guidance = "The linguistic profile matches patterns found in historical fraud cases (e.g., Enron, Satyam)."
	case raw > SimulationMediumAbove:
		result.Level = RiskMedium
		result.Conclusion = "MEDIUM RISK: CAUTION"
		result.Guidance = "The reporting lacks transparency. Dig deeper into footnotes."
	default:
		result.Level = RiskLow
		result.Conclusion = "LOW RISK: TRANSPARENT"
		result.Guidance = "Communication is clear and direct."
	}
	return result
}
