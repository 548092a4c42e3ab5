package insights_test

import (
	"strings"
	"testing"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/insights"
)

func sampleContext() string {
	txns := domain.SampleLedger()
	rows := accounting.Classify(txns)
	builder := accounting.NewStatementBuilder(domain.DefaultChart())
	bs := builder.BalanceSheet(rows)
	is := builder.IncomeStatement(rows)
	return insights.BuildFinancialContext(
		txns,
		accounting.NewTrialBalance(rows),
		bs,
		is,
		accounting.ComputeRatios(bs, is),
	)
}

func TestBuildFinancialContext_Sections(t *testing.T) {
	out := sampleContext()

	sections := []string{
		"=== TRANSACTIONS SUMMARY ===",
		"=== DETAILED TRANSACTIONS ===",
		"=== TRIAL BALANCE ===",
		"=== BALANCE SHEET ===",
		"=== INCOME STATEMENT ===",
		"=== FINANCIAL RATIOS ===",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		if idx < 0 {
			t.Errorf("missing section %q", section)
			continue
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestBuildFinancialContext_Summary(t *testing.T) {
	out := sampleContext()

	for _, want := range []string{
		"Total Transactions: 14",
		"Total Debits: $115,000.00",
		"Total Credits: $115,000.00",
		// Sorted account roster.
		"All Accounts: Accounts Payable, Accounts Receivable, Capital, Cash, Equipment, Inventory, Rent Expense, Salaries Expense, Sales Revenue",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildFinancialContext_Statements(t *testing.T) {
	out := sampleContext()

	for _, want := range []string{
		"Transaction 1: Date=2024-01-15, Account=Cash, Debit=$50,000.00, Credit=$0.00, Description=Initial capital",
		"Account: Cash, Debit: $75,000.00, Credit: $22,000.00, Balance: $53,000.00",
		"  Cash: $53,000.00",
		"Total Assets: $86,000.00",
		"Balance Check: $28,000.00",
		"Net Income: $28,000.00",
		"Gross Profit Margin: 80.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildFinancialContext_RatioUnits(t *testing.T) {
	out := sampleContext()

	for _, want := range []string{
		"LIQUIDITY RATIOS:",
		"  Current Ratio: 8.88 (",
		"  Net Profit Margin: 80.00% (",
		"  Days Sales Outstanding: 104 days (",
		"  Debt to Assets: 9.30% (",
		"  Debt to Equity: 0.16 (",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildFinancialContext_AbsentDerivations(t *testing.T) {
	txns := []domain.Transaction{{Date: "2024-01-01", Account: "Mystery", Debit: 10}}
	out := insights.BuildFinancialContext(txns, nil, nil, nil, nil)

	if !strings.Contains(out, "=== TRANSACTIONS SUMMARY ===") {
		t.Error("transaction summary must always be present")
	}
	for _, absent := range []string{"=== TRIAL BALANCE ===", "=== BALANCE SHEET ===", "=== FINANCIAL RATIOS ==="} {
		if strings.Contains(out, absent) {
			t.Errorf("unexpected section %q for absent derivation", absent)
		}
	}
}
