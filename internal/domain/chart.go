package domain

// ============================================================
// Chart of Accounts
// ============================================================

// ChartOfAccounts holds the five account-name sets used to classify
// trial-balance rows into statements. Membership is exact and
// case-sensitive; accounts outside every set are excluded from both
// statements.
//
// Note: in the default chart "Retained Earnings" appears under both
// Equity and Revenue. The double classification is intentional; callers
// that need it resolved should swap in a custom chart.
type ChartOfAccounts struct {
	Assets      []string `json:"assets"`
	Liabilities []string `json:"liabilities"`
	Equity      []string `json:"equity"`
	Revenue     []string `json:"revenue"`
	Expenses    []string `json:"expenses"`
}

// DefaultChart returns the built-in flat taxonomy.
func DefaultChart() ChartOfAccounts {
	return ChartOfAccounts{
		Assets: []string{
			"Cash", "Accounts Receivable", "Inventory", "Equipment",
			"Building", "Land", "Prepaid Expenses",
		},
		Liabilities: []string{
			"Accounts Payable", "Notes Payable", "Loan", "Mortgage",
			"Salaries Payable",
		},
		Equity: []string{
			"Capital", "Retained Earnings", "Common Stock",
		},
		Revenue: []string{
			"Sales Revenue", "Service Revenue", "Interest Income",
			"Other Income", "Retained Earnings",
		},
		Expenses: []string{
			"Cost of Goods Sold", "Salaries Expense", "Rent Expense",
			"Utilities Expense", "Depreciation Expense", "Interest Expense",
			"Insurance Expense", "Advertising Expense", "Supplies Expense",
			"Repairs Expense", "Other Expenses",
		},
	}
}
