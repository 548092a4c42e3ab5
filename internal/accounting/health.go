package accounting

import "github.com/ledgerlens/ledgerlens-go/internal/domain"

// Score applies the fixed point rubric over the ratio report and returns
// the composite health score. Category maxima are liquidity 25,
// profitability 30, efficiency 20 and solvency 25, so a perfect report
// scores exactly 100. Each line awards at most one bucket (first match wins);
// a ratio missing from the report contributes 0.
//
// Returns nil when the report is absent.
func Score(report *domain.RatioReport) *domain.HealthScore {
	if report == nil {
		return nil
	}

	hs := &domain.HealthScore{MaxScore: 100}

	// Liquidity (max 25)
	if v, ok := report.Lookup(domain.CategoryLiquidity, domain.RatioCurrentRatio); ok {
		switch {
		case v.Value >= 2:
			hs.Liquidity += 12
		case v.Value >= 1:
			hs.Liquidity += 8
		}
	}
	if v, ok := report.Lookup(domain.CategoryLiquidity, domain.RatioQuickRatio); ok {
		switch {
		case v.Value >= 1:
			hs.Liquidity += 13
		case v.Value >= 0.5:
			hs.Liquidity += 8
		}
	}

	// Profitability (max 30)
	if v, ok := report.Lookup(domain.CategoryProfitability, domain.RatioNetProfitMargin); ok {
		switch {
		case v.Value >= 20:
			hs.Profitability += 10
		case v.Value >= 10:
			hs.Profitability += 7
		case v.Value > 0:
			hs.Profitability += 4
		}
	}
	if v, ok := report.Lookup(domain.CategoryProfitability, domain.RatioReturnOnAssets); ok {
		switch {
		case v.Value >= 5:
			hs.Profitability += 10
		case v.Value >= 2:
			hs.Profitability += 6
		}
	}
	if v, ok := report.Lookup(domain.CategoryProfitability, domain.RatioReturnOnEquity); ok {
		switch {
		case v.Value >= 15:
			hs.Profitability += 10
		case v.Value >= 10:
			hs.Profitability += 6
		}
	}

	// Efficiency (max 20)
	if v, ok := report.Lookup(domain.CategoryEfficiency, domain.RatioAssetTurnover); ok {
		switch {
		case v.Value >= 2:
			hs.Efficiency += 10
		case v.Value >= 1:
			hs.Efficiency += 6
		}
	}
	if v, ok := report.Lookup(domain.CategoryEfficiency, domain.RatioDaysSalesOut); ok {
		switch {
		case v.Value <= 45:
			hs.Efficiency += 10
		case v.Value <= 90:
			hs.Efficiency += 5
		}
	}

	// Solvency (max 25)
	if v, ok := report.Lookup(domain.CategorySolvency, domain.RatioDebtToAssets); ok {
		switch {
		case v.Value <= 40:
			hs.Solvency += 10
		case v.Value <= 60:
			hs.Solvency += 6
		}
	}
	if v, ok := report.Lookup(domain.CategorySolvency, domain.RatioDebtToEquity); ok {
		switch {
		case v.Value <= 1:
			hs.Solvency += 8
		case v.Value <= 2:
			hs.Solvency += 4
		}
	}
	if v, ok := report.Lookup(domain.CategorySolvency, domain.RatioEquityRatio); ok {
		switch {
		case v.Value >= 60:
			hs.Solvency += 7
		case v.Value >= 40:
			hs.Solvency += 4
		}
	}

	hs.Score = hs.Liquidity + hs.Profitability + hs.Efficiency + hs.Solvency
	hs.Percentage = float64(hs.Score) / float64(hs.MaxScore) * 100

	return hs
}
