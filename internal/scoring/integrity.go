package scoring

// Two-factor Beneish M-Score coefficients
const (
	mIntercept  = -4.84
	mWeightDSRI = 0.92
	mWeightSGI  = 0.71

	// MManipulationCutoff separates likely manipulators (at or above) from
	// non-manipulators (below).
	MManipulationCutoff = -2.22

	DSRIElevatedAbove = 1.1
	SGIElevatedAbove  = 1.2
)

// IntegrityComponents are the M-Score inputs. The elevated flags are
// reported regardless of the aggregate score.
type IntegrityComponents struct {
	DSRI         float64 `json:"dsri"`
	SGI          float64 `json:"sgi"`
	DSRIElevated bool    `json:"dsri_elevated"`
	SGIElevated  bool    `json:"sgi_elevated"`
}

// IntegrityResult is the M-Score with its component breakdown
type IntegrityResult struct {
	ScoreResult
	Components IntegrityComponents `json:"components"`
}

// ComputeIntegrity calculates the modified Beneish M-Score from current and
// prior period sales and receivables.
func ComputeIntegrity(in FinancialInputs) IntegrityResult {
	dsri := SafeDivide(
		SafeDivide(in.ReceivablesCY, in.RevenueCY),
		SafeDivide(in.ReceivablesPY, in.RevenuePY),
	)
	sgi := SafeDivide(in.RevenueCY, in.RevenuePY)
	m := mIntercept + mWeightDSRI*dsri + mWeightSGI*sgi

	status := StatusRisk
	if m < MManipulationCutoff {
		status = StatusSafe
	}

	return IntegrityResult{
		ScoreResult: ScoreResult{
			Name:      NameIntegrity,
			Label:     "Integrity (M-Score)",
			Value:     m,
			Status:    status,
			Threshold: "Target < -2.22",
		},
		Components: IntegrityComponents{
			DSRI:         dsri,
			SGI:          sgi,
			DSRIElevated: dsri > DSRIElevatedAbove,
			SGIElevated:  sgi > SGIElevatedAbove,
		},
	}
}
