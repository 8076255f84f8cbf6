package scoring

// Report is the full forensic triangulation for one set of inputs
type Report struct {
	Solvency  SolvencyResult  `json:"solvency"`
	Integrity IntegrityResult `json:"integrity"`
	Quality   ScoreResult     `json:"quality"`
	Verdict   VerdictResult   `json:"verdict"`
	Radar     []RadarPoint    `json:"radar"`
}

// Evaluate runs every financial model over the inputs and derives the
// verdict and radar view from their results.
func Evaluate(in FinancialInputs) Report {
	z := ComputeSolvency(in)
	m := ComputeIntegrity(in)
	q := ComputeQuality(in)

	return Report{
		Solvency:  z,
		Integrity: m,
		Quality:   q,
		Verdict:   ComputeVerdict(z.ScoreResult, m.ScoreResult, q),
		Radar:     NormalizeRadar(z.Value, m.Value, q.Value),
	}
}

// Scores returns the three headline scores in display order
func (r Report) Scores() []ScoreResult {
	return []ScoreResult{r.Solvency.ScoreResult, r.Integrity.ScoreResult, r.Quality}
}
