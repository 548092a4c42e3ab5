package domain

// ============================================================
// Financial Health Score
// ============================================================

// HealthScore is the fixed-rubric composite score over a subset of
// ratios. Score is always within [0, MaxScore]; the per-category fields
// break down where the points came from (liquidity 25, profitability 30,
// efficiency 20, solvency 25).
type HealthScore struct {
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Percentage float64 `json:"percentage"`

	Liquidity     int `json:"liquidity"`
	Profitability int `json:"profitability"`
	Efficiency    int `json:"efficiency"`
	Solvency      int `json:"solvency"`
}
