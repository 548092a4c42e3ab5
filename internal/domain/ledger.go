package domain

// ============================================================
// Classified Ledger / Trial Balance
// ============================================================

// Side is the natural side of an account's net balance.
type Side string

const (
	SideDebit  Side = "Debit"
	SideCredit Side = "Credit"
)

// AccountBalance is one trial-balance row: all debits and credits for a
// single account name netted into a signed balance. Balance is the
// absolute value of NetBalance; Side records which side it falls on.
type AccountBalance struct {
	Account     string  `json:"account"`
	TotalDebit  float64 `json:"debit"`
	TotalCredit float64 `json:"credit"`
	NetBalance  float64 `json:"net_balance"`
	Balance     float64 `json:"balance"`
	Side        Side    `json:"type"`
}

// TrialBalance is the per-account summary of the whole ledger plus its
// debit/credit totals. Difference is |TotalDebits − TotalCredits|;
// IsBalanced applies the fixed 0.01 tolerance for floating-point drift.
type TrialBalance struct {
	Rows         []AccountBalance `json:"rows"`
	TotalDebits  float64          `json:"total_debits"`
	TotalCredits float64          `json:"total_credits"`
	Difference   float64          `json:"difference"`
	IsBalanced   bool             `json:"is_balanced"`
}

// ============================================================
// Dashboard Metrics
// ============================================================

// DashboardMetrics is the headline view of the raw ledger: overall
// debit/credit totals and a per-account breakdown.
type DashboardMetrics struct {
	TotalDebits      float64          `json:"total_debits"`
	TotalCredits     float64          `json:"total_credits"`
	Difference       float64          `json:"difference"`
	TransactionCount int              `json:"transaction_count"`
	AccountSummary   []AccountBalance `json:"account_summary"`
}
