package domain

// ============================================================
// Financial Statements
// ============================================================

// BalanceSheet partitions the trial balance into assets, liabilities and
// equity by chart membership. Category totals sum each row's unsigned
// Balance. BalanceCheck is the signed residual
// TotalAssets − (TotalLiabilities + TotalEquity); it is reported, never
// enforced; an unbalanced ledger is surfaced, not rejected.
type BalanceSheet struct {
	Assets      []AccountBalance `json:"assets"`
	Liabilities []AccountBalance `json:"liabilities"`
	Equity      []AccountBalance `json:"equity"`

	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	TotalEquity      float64 `json:"total_equity"`

	BalanceCheck float64 `json:"balance_check"`
	IsBalanced   bool    `json:"is_balanced"`
}

// IncomeStatement partitions the trial balance into revenues and
// expenses. Unlike the balance sheet, totals use the un-netted side of
// each row: TotalRevenue sums the credit side of revenue accounts,
// TotalExpenses sums the debit side of expense accounts.
type IncomeStatement struct {
	Revenues []AccountBalance `json:"revenues"`
	Expenses []AccountBalance `json:"expenses"`

	TotalRevenue      float64 `json:"total_revenue"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetIncome         float64 `json:"net_income"`
	GrossProfitMargin float64 `json:"gross_profit_margin"` // percent; 0 when revenue is 0
}
