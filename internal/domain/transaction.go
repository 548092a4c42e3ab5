// Package domain defines the core business entities for LedgerLens.
// These models are independent of external services and represent the
// canonical data structures used throughout the backend.
package domain

// ============================================================
// Ledger Transactions
// ============================================================

// Transaction is a single double-entry ledger line. Debit and Credit are
// non-negative amounts; a conventional entry carries exactly one of them,
// but the system tolerates any combination and never rejects imbalance.
type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Account     string  `json:"account"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Description string  `json:"description"`
}

// SampleLedger returns the built-in demo ledger: a small bookkeeping
// scenario covering capital injection, asset purchases, sales and expenses.
func SampleLedger() []Transaction {
	return []Transaction{
		{Date: "2024-01-15", Account: "Cash", Debit: 50000, Credit: 0, Description: "Initial capital"},
		{Date: "2024-01-15", Account: "Capital", Debit: 0, Credit: 50000, Description: "Owner investment"},
		{Date: "2024-01-20", Account: "Equipment", Debit: 15000, Credit: 0, Description: "Purchase equipment"},
		{Date: "2024-01-20", Account: "Cash", Debit: 0, Credit: 15000, Description: "Payment for equipment"},
		{Date: "2024-01-25", Account: "Inventory", Debit: 8000, Credit: 0, Description: "Purchase inventory"},
		{Date: "2024-01-25", Account: "Accounts Payable", Debit: 0, Credit: 8000, Description: "Inventory on credit"},
		{Date: "2024-02-01", Account: "Cash", Debit: 25000, Credit: 0, Description: "Sales revenue"},
		{Date: "2024-02-01", Account: "Sales Revenue", Debit: 0, Credit: 25000, Description: "Revenue earned"},
		{Date: "2024-02-05", Account: "Salaries Expense", Debit: 5000, Credit: 0, Description: "Employee salaries"},
		{Date: "2024-02-05", Account: "Cash", Debit: 0, Credit: 5000, Description: "Salary payment"},
		{Date: "2024-02-10", Account: "Rent Expense", Debit: 2000, Credit: 0, Description: "Office rent"},
		{Date: "2024-02-10", Account: "Cash", Debit: 0, Credit: 2000, Description: "Rent payment"},
		{Date: "2024-02-15", Account: "Accounts Receivable", Debit: 10000, Credit: 0, Description: "Sales on credit"},
		{Date: "2024-02-15", Account: "Sales Revenue", Debit: 0, Credit: 10000, Description: "Credit sales"},
	}
}
