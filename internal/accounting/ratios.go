package accounting

import "github.com/ledgerlens/ledgerlens-go/internal/domain"

// ComputeRatios derives the full four-category ratio report from the two
// statements. Returns nil when either statement is absent.
//
// Every denominator is guarded: a zero or negative denominator yields a
// ratio value of 0, never NaN or Inf. Two deliberate heuristics are part
// of the observable contract:
//
//   - current liabilities fall back to half of total liabilities when no
//     Accounts Payable balance exists;
//   - debt service is approximated as interest expense plus 10% of total
//     liabilities.
func ComputeRatios(bs *domain.BalanceSheet, is *domain.IncomeStatement) *domain.RatioReport {
	if bs == nil || is == nil {
		return nil
	}

	cash := sumBalance(bs.Assets, "Cash")
	receivables := sumBalance(bs.Assets, "Accounts Receivable")
	inventory := sumBalance(bs.Assets, "Inventory")
	currentAssets := cash + receivables + inventory

	payable := sumBalance(bs.Liabilities, "Accounts Payable")
	currentLiabilities := payable
	if payable <= 0 {
		currentLiabilities = bs.TotalLiabilities * 0.5
	}

	cogs := sumDebit(is.Expenses, "Cost of Goods Sold")
	interest := sumDebit(is.Expenses, "Interest Expense")
	grossProfit := is.TotalRevenue - cogs

	liquidity := domain.RatioCategory{
		Name: domain.CategoryLiquidity,
		Ratios: []domain.Ratio{
			{
				Name:        domain.RatioCurrentRatio,
				Value:       safeDiv(currentAssets, currentLiabilities),
				Description: "Measures ability to pay short-term obligations",
				Benchmark:   "≥ 2.0 (Excellent), ≥ 1.0 (Adequate)",
			},
			{
				Name:        domain.RatioQuickRatio,
				Value:       safeDiv(currentAssets-inventory, currentLiabilities),
				Description: "Measures ability to pay short-term obligations without inventory",
				Benchmark:   "≥ 1.0 (Good)",
			},
			{
				Name:        domain.RatioCashRatio,
				Value:       safeDiv(cash, currentLiabilities),
				Description: "Measures ability to pay short-term obligations with cash only",
				Benchmark:   "≥ 0.5 (Good)",
			},
		},
	}

	profitability := domain.RatioCategory{
		Name: domain.CategoryProfitability,
		Ratios: []domain.Ratio{
			{
				Name:        domain.RatioGrossProfitMargin,
				Value:       safeDiv(grossProfit, is.TotalRevenue) * 100,
				Description: "Percentage of revenue retained after cost of goods sold",
				Benchmark:   "≥ 40% (Excellent), ≥ 20% (Good)",
			},
			{
				Name:        domain.RatioNetProfitMargin,
				Value:       safeDiv(is.NetIncome, is.TotalRevenue) * 100,
				Description: "Percentage of revenue that becomes profit",
				Benchmark:   "≥ 20% (Excellent), ≥ 10% (Good)",
			},
			{
				Name:        domain.RatioReturnOnAssets,
				Value:       safeDiv(is.NetIncome, bs.TotalAssets) * 100,
				Description: "How efficiently assets generate profit",
				Benchmark:   "≥ 5% (Strong), ≥ 2% (Moderate)",
			},
			{
				Name:        domain.RatioReturnOnEquity,
				Value:       safeDiv(is.NetIncome, bs.TotalEquity) * 100,
				Description: "Return generated on shareholders' investment",
				Benchmark:   "≥ 15% (Excellent), ≥ 10% (Good)",
			},
			{
				Name:        domain.RatioOperatingMargin,
				Value:       safeDiv(is.TotalRevenue-is.TotalExpenses+interest, is.TotalRevenue) * 100,
				Description: "Profit from core operations before interest",
				Benchmark:   "≥ 15% (Strong)",
			},
		},
	}

	efficiency := domain.RatioCategory{
		Name: domain.CategoryEfficiency,
		Ratios: []domain.Ratio{
			{
				Name:        domain.RatioAssetTurnover,
				Value:       safeDiv(is.TotalRevenue, bs.TotalAssets),
				Description: "How efficiently assets generate revenue",
				Benchmark:   "≥ 2.0 (Excellent), ≥ 1.0 (Good)",
			},
			{
				Name:        domain.RatioInventoryTurnover,
				Value:       safeDiv(cogs, inventory),
				Description: "How many times inventory is sold and replaced",
				Benchmark:   "≥ 6 (Good) - varies by industry",
			},
			{
				Name:        domain.RatioReceivablesTurnover,
				Value:       safeDiv(is.TotalRevenue, receivables),
				Description: "How quickly receivables are collected",
				Benchmark:   "≥ 10 (Excellent)",
			},
			{
				Name:        domain.RatioDaysSalesOut,
				Value:       safeDiv(receivables, is.TotalRevenue) * 365,
				Description: "Average days to collect receivables",
				Benchmark:   "≤ 45 days (Good)",
			},
			{
				Name:        domain.RatioDaysInventoryOut,
				Value:       safeDiv(inventory, cogs) * 365,
				Description: "Average days inventory is held",
				Benchmark:   "≤ 60 days (Good) - varies by industry",
			},
		},
	}

	solvency := domain.RatioCategory{
		Name: domain.CategorySolvency,
		Ratios: []domain.Ratio{
			{
				Name:        domain.RatioDebtToAssets,
				Value:       safeDiv(bs.TotalLiabilities, bs.TotalAssets) * 100,
				Description: "Percentage of assets financed by debt",
				Benchmark:   "≤ 40% (Low Risk), ≤ 60% (Moderate)",
			},
			{
				Name:        domain.RatioDebtToEquity,
				Value:       safeDiv(bs.TotalLiabilities, bs.TotalEquity),
				Description: "Ratio of debt to shareholder equity",
				Benchmark:   "≤ 1.0 (Conservative), ≤ 2.0 (Moderate)",
			},
			{
				Name:        domain.RatioEquityRatio,
				Value:       safeDiv(bs.TotalEquity, bs.TotalAssets) * 100,
				Description: "Percentage of assets financed by equity",
				Benchmark:   "≥ 60% (Strong), ≥ 40% (Adequate)",
			},
			{
				Name:        domain.RatioInterestCoverage,
				Value:       safeDiv(is.NetIncome+interest, interest),
				Description: "Ability to pay interest on debt",
				Benchmark:   "≥ 3.0 (Good), ≥ 1.5 (Adequate)",
			},
			{
				Name:        domain.RatioDebtServiceCoverage,
				Value:       safeDiv(is.NetIncome+interest, interest+bs.TotalLiabilities*0.1),
				Description: "Ability to service all debt obligations",
				Benchmark:   "≥ 1.25 (Good)",
			},
		},
	}

	return &domain.RatioReport{
		Categories: []domain.RatioCategory{liquidity, profitability, efficiency, solvency},
	}
}

// safeDiv divides num by den, returning 0 when den is zero or negative.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// sumBalance sums the unsigned balance of rows matching the exact
// account name. Missing accounts contribute 0.
func sumBalance(rows []domain.AccountBalance, account string) float64 {
	var total float64
	for _, row := range rows {
		if row.Account == account {
			total += row.Balance
		}
	}
	return total
}

// sumDebit sums the debit side of rows matching the exact account name.
func sumDebit(rows []domain.AccountBalance, account string) float64 {
	var total float64
	for _, row := range rows {
		if row.Account == account {
			total += row.TotalDebit
		}
	}
	return total
}
