package accounting

import "github.com/ledgerlens/ledgerlens-go/internal/domain"

// balanceEpsilon is the fixed tolerance for treating a ledger or a
// balance sheet as balanced despite floating-point drift.
const balanceEpsilon = 0.01

// StatementBuilder partitions classified accounts into statements using
// an injected chart of accounts. The chart decides membership only; all
// arithmetic lives here.
type StatementBuilder struct {
	chart domain.ChartOfAccounts
}

// NewStatementBuilder creates a builder bound to the given chart.
func NewStatementBuilder(chart domain.ChartOfAccounts) *StatementBuilder {
	return &StatementBuilder{chart: chart}
}

// Chart returns the chart the builder classifies with.
func (b *StatementBuilder) Chart() domain.ChartOfAccounts {
	return b.chart
}

// BalanceSheet selects asset, liability and equity rows from the trial
// balance and totals each category's unsigned balance. Accounts outside
// the chart are silently excluded. Returns nil when there are no rows:
// no statement available, not an error.
func (b *StatementBuilder) BalanceSheet(rows []domain.AccountBalance) *domain.BalanceSheet {
	if len(rows) == 0 {
		return nil
	}

	bs := &domain.BalanceSheet{
		Assets:      selectRows(rows, b.chart.Assets),
		Liabilities: selectRows(rows, b.chart.Liabilities),
		Equity:      selectRows(rows, b.chart.Equity),
	}

	for _, row := range bs.Assets {
		bs.TotalAssets += row.Balance
	}
	for _, row := range bs.Liabilities {
		bs.TotalLiabilities += row.Balance
	}
	for _, row := range bs.Equity {
		bs.TotalEquity += row.Balance
	}

	bs.BalanceCheck = bs.TotalAssets - (bs.TotalLiabilities + bs.TotalEquity)
	bs.IsBalanced = bs.BalanceCheck < balanceEpsilon && bs.BalanceCheck > -balanceEpsilon

	return bs
}

// IncomeStatement selects revenue and expense rows and totals the
// un-netted side of each: the credit side for revenues, the debit side
// for expenses. GrossProfitMargin is net income over revenue as a
// percentage, 0 when there is no revenue. Returns nil when there are no
// rows.
func (b *StatementBuilder) IncomeStatement(rows []domain.AccountBalance) *domain.IncomeStatement {
	if len(rows) == 0 {
		return nil
	}

	is := &domain.IncomeStatement{
		Revenues: selectRows(rows, b.chart.Revenue),
		Expenses: selectRows(rows, b.chart.Expenses),
	}

	for _, row := range is.Revenues {
		is.TotalRevenue += row.TotalCredit
	}
	for _, row := range is.Expenses {
		is.TotalExpenses += row.TotalDebit
	}

	is.NetIncome = is.TotalRevenue - is.TotalExpenses
	if is.TotalRevenue > 0 {
		is.GrossProfitMargin = is.NetIncome / is.TotalRevenue * 100
	}

	return is
}

// selectRows filters rows whose account name is a member of the given
// chart list, preserving row order.
func selectRows(rows []domain.AccountBalance, names []string) []domain.AccountBalance {
	member := make(map[string]struct{}, len(names))
	for _, n := range names {
		member[n] = struct{}{}
	}

	var out []domain.AccountBalance
	for _, row := range rows {
		if _, ok := member[row.Account]; ok {
			out = append(out, row)
		}
	}
	return out
}
