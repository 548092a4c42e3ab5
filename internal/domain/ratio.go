package domain

// ============================================================
// Financial Ratios
// ============================================================

// Ratio category names, in report order.
const (
	CategoryLiquidity     = "Liquidity Ratios"
	CategoryProfitability = "Profitability Ratios"
	CategoryEfficiency    = "Efficiency Ratios"
	CategorySolvency      = "Solvency Ratios"
)

// Ratio names used across the ratio engine and the health scorer.
const (
	RatioCurrentRatio        = "Current Ratio"
	RatioQuickRatio          = "Quick Ratio"
	RatioCashRatio           = "Cash Ratio"
	RatioGrossProfitMargin   = "Gross Profit Margin"
	RatioNetProfitMargin     = "Net Profit Margin"
	RatioReturnOnAssets      = "Return on Assets (ROA)"
	RatioReturnOnEquity      = "Return on Equity (ROE)"
	RatioOperatingMargin     = "Operating Profit Margin"
	RatioAssetTurnover       = "Asset Turnover"
	RatioInventoryTurnover   = "Inventory Turnover"
	RatioReceivablesTurnover = "Receivables Turnover"
	RatioDaysSalesOut        = "Days Sales Outstanding"
	RatioDaysInventoryOut    = "Days Inventory Outstanding"
	RatioDebtToAssets        = "Debt to Assets"
	RatioDebtToEquity        = "Debt to Equity"
	RatioEquityRatio         = "Equity Ratio"
	RatioInterestCoverage    = "Interest Coverage"
	RatioDebtServiceCoverage = "Debt Service Coverage"
)

// Ratio is a single named metric with its static description and
// benchmark text. Value semantics depend on the ratio: some are plain
// ratios, some are percentages, some are day counts.
type Ratio struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Benchmark   string  `json:"benchmark"`
}

// RatioCategory groups ratios under one of the four fixed categories.
type RatioCategory struct {
	Name   string  `json:"category"`
	Ratios []Ratio `json:"ratios"`
}

// RatioReport is the full ratio analysis: four categories in fixed
// order, each with its ratios in fixed order. It is a pure derivation of
// the two statements and is recomputed on every request.
type RatioReport struct {
	Categories []RatioCategory `json:"categories"`
}

// Lookup returns the named ratio from the named category.
// The second return is false when either is missing.
func (r *RatioReport) Lookup(category, name string) (Ratio, bool) {
	for _, c := range r.Categories {
		if c.Name != category {
			continue
		}
		for _, ratio := range c.Ratios {
			if ratio.Name == name {
				return ratio, true
			}
		}
	}
	return Ratio{}, false
}
