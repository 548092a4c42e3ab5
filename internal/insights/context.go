// Package insights produces LLM-backed narrative analysis of the
// ledger: one-shot insight summaries and a conversational interface.
// The agent only ever sees a serialized text rendering of the derived
// statements; it never touches the store.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

// BuildFinancialContext serializes the full financial picture into the
// sectioned text format the agent prompt expects. Absent derivations
// (nil statements, nil report) drop their section; the transaction
// sections are always present.
func BuildFinancialContext(
	txns []domain.Transaction,
	tb *domain.TrialBalance,
	bs *domain.BalanceSheet,
	is *domain.IncomeStatement,
	report *domain.RatioReport,
) string {
	var sb strings.Builder

	writeTransactionsSummary(&sb, txns)
	writeDetailedTransactions(&sb, txns)
	if tb != nil {
		writeTrialBalance(&sb, tb)
	}
	if bs != nil {
		writeBalanceSheet(&sb, bs)
	}
	if is != nil {
		writeIncomeStatement(&sb, is)
	}
	if report != nil {
		writeRatios(&sb, report)
	}

	return sb.String()
}

func writeTransactionsSummary(sb *strings.Builder, txns []domain.Transaction) {
	var debits, credits float64
	accountSet := make(map[string]struct{})
	for _, tx := range txns {
		debits += tx.Debit
		credits += tx.Credit
		accountSet[tx.Account] = struct{}{}
	}
	accounts := make([]string, 0, len(accountSet))
	for a := range accountSet {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)

	sb.WriteString("=== TRANSACTIONS SUMMARY ===\n")
	fmt.Fprintf(sb, "Total Transactions: %d\n", len(txns))
	fmt.Fprintf(sb, "Total Debits: %s\n", usd(debits))
	fmt.Fprintf(sb, "Total Credits: %s\n", usd(credits))
	fmt.Fprintf(sb, "All Accounts: %s\n\n", strings.Join(accounts, ", "))
}

func writeDetailedTransactions(sb *strings.Builder, txns []domain.Transaction) {
	sb.WriteString("=== DETAILED TRANSACTIONS ===\n")
	for i, tx := range txns {
		desc := tx.Description
		if desc == "" {
			desc = "N/A"
		}
		fmt.Fprintf(sb, "Transaction %d: Date=%s, Account=%s, Debit=%s, Credit=%s, Description=%s\n",
			i+1, tx.Date, tx.Account, usd(tx.Debit), usd(tx.Credit), desc)
	}
	sb.WriteString("\n")
}

func writeTrialBalance(sb *strings.Builder, tb *domain.TrialBalance) {
	sb.WriteString("=== TRIAL BALANCE ===\n")
	for _, row := range tb.Rows {
		fmt.Fprintf(sb, "Account: %s, Debit: %s, Credit: %s, Balance: %s\n",
			row.Account, usd(row.TotalDebit), usd(row.TotalCredit), usd(row.Balance))
	}
	fmt.Fprintf(sb, "Total Debits: %s\n", usd(tb.TotalDebits))
	fmt.Fprintf(sb, "Total Credits: %s\n\n", usd(tb.TotalCredits))
}

func writeBalanceSheet(sb *strings.Builder, bs *domain.BalanceSheet) {
	sb.WriteString("=== BALANCE SHEET ===\n")

	if len(bs.Assets) > 0 {
		sb.WriteString("ASSETS:\n")
		for _, row := range bs.Assets {
			fmt.Fprintf(sb, "  %s: %s\n", row.Account, usd(row.Balance))
		}
		fmt.Fprintf(sb, "Total Assets: %s\n", usd(bs.TotalAssets))
	}
	if len(bs.Liabilities) > 0 {
		sb.WriteString("\nLIABILITIES:\n")
		for _, row := range bs.Liabilities {
			fmt.Fprintf(sb, "  %s: %s\n", row.Account, usd(row.Balance))
		}
		fmt.Fprintf(sb, "Total Liabilities: %s\n", usd(bs.TotalLiabilities))
	}
	if len(bs.Equity) > 0 {
		sb.WriteString("\nEQUITY:\n")
		for _, row := range bs.Equity {
			fmt.Fprintf(sb, "  %s: %s\n", row.Account, usd(row.Balance))
		}
		fmt.Fprintf(sb, "Total Equity: %s\n", usd(bs.TotalEquity))
	}

	fmt.Fprintf(sb, "\nBalance Check: %s\n\n", usd(bs.BalanceCheck))
}

func writeIncomeStatement(sb *strings.Builder, is *domain.IncomeStatement) {
	sb.WriteString("=== INCOME STATEMENT ===\n")

	if len(is.Revenues) > 0 {
		sb.WriteString("REVENUES:\n")
		for _, row := range is.Revenues {
			fmt.Fprintf(sb, "  %s: %s\n", row.Account, usd(row.TotalCredit))
		}
		fmt.Fprintf(sb, "Total Revenue: %s\n", usd(is.TotalRevenue))
	}
	if len(is.Expenses) > 0 {
		sb.WriteString("\nEXPENSES:\n")
		for _, row := range is.Expenses {
			fmt.Fprintf(sb, "  %s: %s\n", row.Account, usd(row.TotalDebit))
		}
		fmt.Fprintf(sb, "Total Expenses: %s\n", usd(is.TotalExpenses))
	}

	fmt.Fprintf(sb, "\nNet Income: %s\n", usd(is.NetIncome))
	fmt.Fprintf(sb, "Gross Profit Margin: %.2f%%\n\n", is.GrossProfitMargin)
}

func writeRatios(sb *strings.Builder, report *domain.RatioReport) {
	sb.WriteString("=== FINANCIAL RATIOS ===\n")

	for i, cat := range report.Categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "%s:\n", strings.ToUpper(cat.Name))
		for _, r := range cat.Ratios {
			switch {
			case strings.Contains(r.Name, "Days"):
				fmt.Fprintf(sb, "  %s: %.0f days (%s)\n", r.Name, r.Value, r.Description)
			case isPercentRatio(cat.Name, r.Name):
				fmt.Fprintf(sb, "  %s: %.2f%% (%s)\n", r.Name, r.Value, r.Description)
			default:
				fmt.Fprintf(sb, "  %s: %.2f (%s)\n", r.Name, r.Value, r.Description)
			}
		}
	}
}

// isPercentRatio reports whether a ratio's value is a percentage.
// Profitability ratios all are; in solvency only the two asset-relative
// ones carry the percent unit.
func isPercentRatio(category, name string) bool {
	if category == domain.CategoryProfitability {
		return true
	}
	return name == domain.RatioDebtToAssets || name == domain.RatioEquityRatio
}

// usd formats an amount as $#,##0.00. Negatives render as $-1,234.56.
func usd(v float64) string {
	sign := ""
	if math.Signbit(v) {
		sign = "-"
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	return "$" + sign + grouped.String() + "." + fracPart
}
