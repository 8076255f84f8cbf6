package scoring

// Status is the tri-state classification shared by all financial scores
type Status string

const (
	StatusSafe    Status = "Safe"
	StatusWarning Status = "Warning"
	StatusRisk    Status = "Risk"
)

// Score names
const (
	NameSolvency  = "solvency"
	NameIntegrity = "integrity"
	NameQuality   = "quality"
)

// ScoreResult is a single classified score ready for display
type ScoreResult struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Value     float64 `json:"value" binding:"finite"`
	Status    Status  `json:"status"`
	Threshold string  `json:"threshold"`
}

// IsRisk reports whether the score landed in the risk band
func (r ScoreResult) IsRisk() bool {
	return r.Status == StatusRisk
}

// classifyBand maps a value onto Safe/Warning/Risk for "higher is better"
// scores: above safeAbove is Safe, below riskBelow is Risk, anything between
// (both bounds inclusive) is Warning.
func classifyBand(value, safeAbove, riskBelow float64) Status {
	switch {
	case value > safeAbove:
		return StatusSafe
	case value < riskBelow:
		return StatusRisk
	default:
		return StatusWarning
	}
}
