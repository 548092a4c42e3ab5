package accounting_test

import (
	"testing"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

func reportWith(values map[string]map[string]float64) *domain.RatioReport {
	report := &domain.RatioReport{}
	for category, ratios := range values {
		cat := domain.RatioCategory{Name: category}
		for name, v := range ratios {
			cat.Ratios = append(cat.Ratios, domain.Ratio{Name: name, Value: v})
		}
		report.Categories = append(report.Categories, cat)
	}
	return report
}

func TestScore_NilReport(t *testing.T) {
	if accounting.Score(nil) != nil {
		t.Error("expected nil score for nil report")
	}
}

func TestScore_SampleLedger(t *testing.T) {
	rows := accounting.Classify(domain.SampleLedger())
	b := sampleBuilder()
	report := accounting.ComputeRatios(b.BalanceSheet(rows), b.IncomeStatement(rows))

	hs := accounting.Score(report)
	if hs == nil {
		t.Fatal("expected health score, got nil")
	}

	if hs.Liquidity != 25 {
		t.Errorf("liquidity = %d, want 25", hs.Liquidity)
	}
	if hs.Profitability != 30 {
		t.Errorf("profitability = %d, want 30", hs.Profitability)
	}
	if hs.Efficiency != 0 {
		t.Errorf("efficiency = %d, want 0 (low turnover, slow collections)", hs.Efficiency)
	}
	if hs.Solvency != 22 {
		t.Errorf("solvency = %d, want 22", hs.Solvency)
	}
	if hs.Score != 77 || hs.MaxScore != 100 {
		t.Errorf("score = %d/%d, want 77/100", hs.Score, hs.MaxScore)
	}
	if !almostEqual(hs.Percentage, 77) {
		t.Errorf("percentage = %v, want 77", hs.Percentage)
	}
}

func TestScore_PerfectReport(t *testing.T) {
	hs := accounting.Score(reportWith(map[string]map[string]float64{
		domain.CategoryLiquidity: {
			domain.RatioCurrentRatio: 2.5,
			domain.RatioQuickRatio:   1.2,
		},
		domain.CategoryProfitability: {
			domain.RatioNetProfitMargin: 25,
			domain.RatioReturnOnAssets:  8,
			domain.RatioReturnOnEquity:  18,
		},
		domain.CategoryEfficiency: {
			domain.RatioAssetTurnover: 2.2,
			domain.RatioDaysSalesOut:  30,
		},
		domain.CategorySolvency: {
			domain.RatioDebtToAssets: 30,
			domain.RatioDebtToEquity: 0.5,
			domain.RatioEquityRatio:  70,
		},
	}))

	if hs.Score != 100 {
		t.Errorf("score = %d, want 100", hs.Score)
	}
}

func TestScore_MiddleBuckets(t *testing.T) {
	hs := accounting.Score(reportWith(map[string]map[string]float64{
		domain.CategoryLiquidity: {
			domain.RatioCurrentRatio: 1.5, // 8
			domain.RatioQuickRatio:   0.7, // 8
		},
		domain.CategoryProfitability: {
			domain.RatioNetProfitMargin: 12, // 7
			domain.RatioReturnOnAssets:  3,  // 6
			domain.RatioReturnOnEquity:  12, // 6
		},
		domain.CategoryEfficiency: {
			domain.RatioAssetTurnover: 1.2, // 6
			domain.RatioDaysSalesOut:  60,  // 5
		},
		domain.CategorySolvency: {
			domain.RatioDebtToAssets: 50,  // 6
			domain.RatioDebtToEquity: 1.5, // 4
			domain.RatioEquityRatio:  45,  // 4
		},
	}))

	if hs.Liquidity != 16 || hs.Profitability != 19 || hs.Efficiency != 11 || hs.Solvency != 14 {
		t.Errorf("breakdown = %d/%d/%d/%d, want 16/19/11/14",
			hs.Liquidity, hs.Profitability, hs.Efficiency, hs.Solvency)
	}
	if hs.Score != 60 {
		t.Errorf("score = %d, want 60", hs.Score)
	}
}

func TestScore_MissingRatiosContributeZero(t *testing.T) {
	hs := accounting.Score(reportWith(map[string]map[string]float64{
		domain.CategoryLiquidity: {
			domain.RatioCurrentRatio: 3,
		},
	}))

	if hs.Liquidity != 12 {
		t.Errorf("liquidity = %d, want 12 (quick ratio absent)", hs.Liquidity)
	}
	if hs.Score != 12 {
		t.Errorf("score = %d, want 12 with every other ratio absent", hs.Score)
	}
}

func TestScore_FailingBusiness(t *testing.T) {
	hs := accounting.Score(reportWith(map[string]map[string]float64{
		domain.CategoryLiquidity: {
			domain.RatioCurrentRatio: 0.4,
			domain.RatioQuickRatio:   0.2,
		},
		domain.CategoryProfitability: {
			domain.RatioNetProfitMargin: -15,
			domain.RatioReturnOnAssets:  -3,
			domain.RatioReturnOnEquity:  -10,
		},
		domain.CategoryEfficiency: {
			domain.RatioAssetTurnover: 0.3,
			domain.RatioDaysSalesOut:  120,
		},
		domain.CategorySolvency: {
			domain.RatioDebtToAssets: 85,
			domain.RatioDebtToEquity: 4,
			domain.RatioEquityRatio:  15,
		},
	}))

	if hs.Score != 0 {
		t.Errorf("score = %d, want 0 for a business failing every threshold", hs.Score)
	}
	if hs.Percentage != 0 {
		t.Errorf("percentage = %v, want 0", hs.Percentage)
	}
}
