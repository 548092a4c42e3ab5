// Package accounting implements the derivation pipeline that turns a flat
// list of double-entry transactions into classified balances, financial
// statements, ratio analyses and a composite health score.
//
// Every function here is pure: no I/O, no logging, no shared state.
// Callers own concurrency; the pipeline never mutates its inputs.
package accounting

import "github.com/ledgerlens/ledgerlens-go/internal/domain"

// Classify groups transactions by exact account name and nets each
// group's debits and credits into a signed balance. Account names are
// compared case-sensitively with no trimming, so "Cash" and "cash " are
// distinct accounts. Rows come back in first-seen order; consumers must
// not rely on that ordering.
//
// An empty input yields nil.
func Classify(txns []domain.Transaction) []domain.AccountBalance {
	if len(txns) == 0 {
		return nil
	}

	index := make(map[string]int, len(txns))
	rows := make([]domain.AccountBalance, 0, len(txns))

	for _, tx := range txns {
		i, seen := index[tx.Account]
		if !seen {
			i = len(rows)
			index[tx.Account] = i
			rows = append(rows, domain.AccountBalance{Account: tx.Account})
		}
		rows[i].TotalDebit += tx.Debit
		rows[i].TotalCredit += tx.Credit
	}

	for i := range rows {
		net := rows[i].TotalDebit - rows[i].TotalCredit
		rows[i].NetBalance = net
		if net > 0 {
			rows[i].Side = domain.SideDebit
			rows[i].Balance = net
		} else {
			rows[i].Side = domain.SideCredit
			rows[i].Balance = -net
		}
	}

	return rows
}

// NewTrialBalance wraps classified rows with their debit/credit totals
// and the balance verdict at the fixed 0.01 tolerance. Returns nil for
// an empty ledger: absence, not an error.
func NewTrialBalance(rows []domain.AccountBalance) *domain.TrialBalance {
	if len(rows) == 0 {
		return nil
	}

	tb := &domain.TrialBalance{Rows: rows}
	for _, row := range rows {
		tb.TotalDebits += row.TotalDebit
		tb.TotalCredits += row.TotalCredit
	}

	tb.Difference = tb.TotalDebits - tb.TotalCredits
	if tb.Difference < 0 {
		tb.Difference = -tb.Difference
	}
	tb.IsBalanced = tb.Difference < balanceEpsilon

	return tb
}

// Summarize computes the dashboard view straight from the raw ledger:
// overall totals, their absolute difference, and the per-account
// breakdown. Returns nil for an empty ledger.
func Summarize(txns []domain.Transaction) *domain.DashboardMetrics {
	if len(txns) == 0 {
		return nil
	}

	m := &domain.DashboardMetrics{
		TransactionCount: len(txns),
		AccountSummary:   Classify(txns),
	}
	for _, tx := range txns {
		m.TotalDebits += tx.Debit
		m.TotalCredits += tx.Credit
	}
	m.Difference = m.TotalDebits - m.TotalCredits
	if m.Difference < 0 {
		m.Difference = -m.Difference
	}

	return m
}
