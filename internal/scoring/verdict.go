package scoring

// VerdictLevel is the overall auditor verdict
type VerdictLevel string

const (
	VerdictCritical VerdictLevel = "CRITICAL"
	VerdictFraud    VerdictLevel = "FRAUD"
	VerdictWarning  VerdictLevel = "WARNING"
	VerdictSafe     VerdictLevel = "SAFE"
)

// VerdictResult is the single verdict derived from the three scores
type VerdictResult struct {
	Level   VerdictLevel `json:"level"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}

// verdictRule is one branch of the verdict tree
type verdictRule struct {
	matches func(z, m, q float64) bool
	result  VerdictResult
}

// verdictRules are evaluated in order and the first match wins. Insolvency
// outranks manipulation, which outranks earnings quality.
var verdictRules = []verdictRule{
	{
		matches: func(z, _, _ float64) bool { return z < ZDistressBelow },
		result: VerdictResult{
			Level:   VerdictCritical,
			Title:   "CRITICAL RISK",
			Message: "Company is mathematically insolvent.",
		},
	},
	{
		matches: func(_, m, _ float64) bool { return m >= MManipulationCutoff },
		result: VerdictResult{
			Level:   VerdictFraud,
			Title:   "HIGH FRAUD RISK",
			Message: "Earnings manipulation markers detected.",
		},
	},
	{
		matches: func(_, _, q float64) bool { return q < QRiskBelow },
		result: VerdictResult{
			Level:   VerdictWarning,
			Title:   "QUALITY WARNING",
			Message: "Profits are not backed by cash flow.",
		},
	},
}

var safeVerdict = VerdictResult{
	Level:   VerdictSafe,
	Title:   "LOW RISK",
	Message: "Financial structure appears robust and honest.",
}

// ComputeVerdict combines the solvency, integrity and quality scores into one
// verdict. Only the score values are consulted; statuses are ignored.
func ComputeVerdict(solvency, integrity, quality ScoreResult) VerdictResult {
	for _, rule := range verdictRules {
		if rule.matches(solvency.Value, integrity.Value, quality.Value) {
			return rule.result
		}
	}
	return safeVerdict
}
