package scoring

// Altman Z-Score coefficients and zone boundaries
const (
	zWeightLiquidity        = 1.2
	zWeightRetainedEarnings = 1.4
	zWeightEfficiency       = 3.3
	zWeightLeverage         = 0.6
	zWeightTurnover         = 1.0

	ZSafeAbove     = 3.0
	ZDistressBelow = 1.8
)

// SolvencyComponents are the five Z-Score ratios plus the two derived
// amounts they are built from.
type SolvencyComponents struct {
	WorkingCapital   float64 `json:"working_capital"`
	EBIT             float64 `json:"ebit"`
	Liquidity        float64 `json:"liquidity"`         // A: working capital / total assets
	RetainedEarnings float64 `json:"retained_earnings"` // B: retained earnings / total assets
	Efficiency       float64 `json:"efficiency"`        // C: EBIT / total assets
	Leverage         float64 `json:"leverage"`          // D: market value of equity / total liabilities
	Turnover         float64 `json:"turnover"`          // E: sales / total assets
}

// SolvencyResult is the Z-Score with its component breakdown
type SolvencyResult struct {
	ScoreResult
	Components SolvencyComponents `json:"components"`
}

// ComputeSolvency calculates the Altman Z-Score.
func ComputeSolvency(in FinancialInputs) SolvencyResult {
	c := SolvencyComponents{
		WorkingCapital: in.CurrentAssets - in.CurrentLiabilities,
		EBIT:           in.RevenueCY - in.COGS,
	}
	c.Liquidity = SafeDivide(c.WorkingCapital, in.TotalAssets)
	c.RetainedEarnings = SafeDivide(in.RetainedEarnings, in.TotalAssets)
	c.Efficiency = SafeDivide(c.EBIT, in.TotalAssets)
	c.Leverage = SafeDivide(in.MarketValueEquity, in.TotalLiabilities)
	c.Turnover = SafeDivide(in.RevenueCY, in.TotalAssets)

	z := zWeightLiquidity*c.Liquidity +
		zWeightRetainedEarnings*c.RetainedEarnings +
		zWeightEfficiency*c.Efficiency +
		zWeightLeverage*c.Leverage +
		zWeightTurnover*c.Turnover

	return SolvencyResult{
		ScoreResult: ScoreResult{
			Name:      NameSolvency,
			Label:     "Solvency (Z-Score)",
			Value:     z,
			Status:    classifyBand(z, ZSafeAbove, ZDistressBelow),
			Threshold: "Target > 3.0",
		},
		Components: c,
	}
}
