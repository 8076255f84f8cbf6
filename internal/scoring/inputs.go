package scoring

// FinancialInputs holds one company's statement figures for a single
// evaluation. Amounts must share a unit (the dashboard uses ₹ Cr).
type FinancialInputs struct {
	// Profit & loss
	RevenueCY float64 `json:"revenue_cy" yaml:"revenue_cy" binding:"finite"`
	RevenuePY float64 `json:"revenue_py" yaml:"revenue_py" binding:"finite"`
	COGS      float64 `json:"cogs" yaml:"cogs" binding:"finite"`
	NetIncome float64 `json:"net_income" yaml:"net_income" binding:"finite"`

	// Balance sheet
	TotalAssets        float64 `json:"total_assets" yaml:"total_assets" binding:"finite"`
	TotalLiabilities   float64 `json:"total_liabilities" yaml:"total_liabilities" binding:"finite"`
	CurrentAssets      float64 `json:"current_assets" yaml:"current_assets" binding:"finite"`
	CurrentLiabilities float64 `json:"current_liabilities" yaml:"current_liabilities" binding:"finite"`
	ReceivablesCY      float64 `json:"receivables_cy" yaml:"receivables_cy" binding:"finite"`
	ReceivablesPY      float64 `json:"receivables_py" yaml:"receivables_py" binding:"finite"`
	RetainedEarnings   float64 `json:"retained_earnings" yaml:"retained_earnings" binding:"finite"`
	MarketValueEquity  float64 `json:"market_value_equity" yaml:"market_value_equity" binding:"finite"`

	// Cash flow
	OperatingCashFlow float64 `json:"operating_cash_flow" yaml:"operating_cash_flow" binding:"finite"`
}

// SampleInputs returns the preloaded sample company shown when the dashboard
// first opens.
func SampleInputs() FinancialInputs {
	return FinancialInputs{
		RevenueCY:          162990,
		RevenuePY:          153670,
		COGS:               123754,
		NetIncome:          26713,
		TotalAssets:        147795,
		TotalLiabilities:   51977,
		CurrentAssets:      95000,
		CurrentLiabilities: 43750,
		ReceivablesCY:      31158,
		ReceivablesPY:      30193,
		RetainedEarnings:   93745,
		MarketValueEquity:  667000,
		OperatingCashFlow:  35694,
	}
}
