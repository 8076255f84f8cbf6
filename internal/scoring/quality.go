package scoring

// Earnings quality bands for CFO / net income
const (
	QSafeAbove = 1.0
	QRiskBelow = 0.8
)

// ComputeQuality calculates the earnings quality ratio (operating cash flow
// over net income).
func ComputeQuality(in FinancialInputs) ScoreResult {
	q := SafeDivide(in.OperatingCashFlow, in.NetIncome)
	return ScoreResult{
		Name:      NameQuality,
		Label:     "Quality (CFO/NI)",
		Value:     q,
		Status:    classifyBand(q, QSafeAbove, QRiskBelow),
		Threshold: "Target > 1.0",
	}
}
