package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/port"
)

// ExportService renders the ledger and derived statements as CSV text.
// The statement exports are layout documents (section headings, totals,
// currency formatting) rather than flat tables.
type ExportService struct {
	store   port.TransactionStore
	builder *accounting.StatementBuilder
	logger  *zap.Logger

	// now is swappable for deterministic "Generated:" stamps in tests.
	now func() time.Time
}

// NewExportService creates the export service.
func NewExportService(store port.TransactionStore, builder *accounting.StatementBuilder, logger *zap.Logger) *ExportService {
	return &ExportService{
		store:   store,
		builder: builder,
		logger:  logger,
		now:     time.Now,
	}
}

// TransactionsCSV exports the raw ledger as a flat CSV table. Returns
// ErrEmptyLedger when there is nothing to export.
func (s *ExportService) TransactionsCSV(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "ExportService.TransactionsCSV")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(txns) == 0 {
		return "", &domain.ErrEmptyLedger{}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{"id", "date", "account", "debit", "credit", "description"})
	for _, tx := range txns {
		w.Write([]string{
			tx.ID,
			tx.Date,
			tx.Account,
			strconv.FormatFloat(tx.Debit, 'f', -1, 64),
			strconv.FormatFloat(tx.Credit, 'f', -1, 64),
			tx.Description,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	s.logger.Info("transactions exported", zap.Int("count", len(txns)))
	return sb.String(), nil
}

// BalanceSheetCSV exports the balance sheet as a sectioned layout:
// ASSETS, LIABILITIES and EQUITY blocks with per-account rows, category
// totals and a closing Total Liabilities & Equity line. Returns
// ErrEmptyLedger when the ledger is empty.
func (s *ExportService) BalanceSheetCSV(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "ExportService.BalanceSheetCSV")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}
	bs := s.builder.BalanceSheet(accounting.Classify(txns))
	if bs == nil {
		return "", &domain.ErrEmptyLedger{}
	}

	var sb strings.Builder
	sb.WriteString("BALANCE SHEET\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", s.now().Format("2006-01-02 15:04:05"))

	sb.WriteString("ASSETS\n")
	sb.WriteString("Account,Balance\n")
	for _, row := range bs.Assets {
		fmt.Fprintf(&sb, "%s,%s\n", row.Account, money(row.Balance))
	}
	fmt.Fprintf(&sb, "Total Assets,%s\n\n", money(bs.TotalAssets))

	sb.WriteString("LIABILITIES\n")
	sb.WriteString("Account,Balance\n")
	for _, row := range bs.Liabilities {
		fmt.Fprintf(&sb, "%s,%s\n", row.Account, money(row.Balance))
	}
	fmt.Fprintf(&sb, "Total Liabilities,%s\n\n", money(bs.TotalLiabilities))

	sb.WriteString("EQUITY\n")
	sb.WriteString("Account,Balance\n")
	for _, row := range bs.Equity {
		fmt.Fprintf(&sb, "%s,%s\n", row.Account, money(row.Balance))
	}
	fmt.Fprintf(&sb, "Total Equity,%s\n\n", money(bs.TotalEquity))

	fmt.Fprintf(&sb, "Total Liabilities & Equity,%s\n", money(bs.TotalLiabilities+bs.TotalEquity))

	return sb.String(), nil
}

// IncomeStatementCSV exports the income statement as a sectioned
// layout: REVENUES and EXPENSES blocks, the NET INCOME line and the
// gross profit margin. Returns ErrEmptyLedger when the ledger is empty.
func (s *ExportService) IncomeStatementCSV(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "ExportService.IncomeStatementCSV")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}
	is := s.builder.IncomeStatement(accounting.Classify(txns))
	if is == nil {
		return "", &domain.ErrEmptyLedger{}
	}

	var sb strings.Builder
	sb.WriteString("INCOME STATEMENT\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", s.now().Format("2006-01-02 15:04:05"))

	sb.WriteString("REVENUES\n")
	sb.WriteString("Account,Amount\n")
	for _, row := range is.Revenues {
		fmt.Fprintf(&sb, "%s,%s\n", row.Account, money(row.TotalCredit))
	}
	fmt.Fprintf(&sb, "Total Revenue,%s\n\n", money(is.TotalRevenue))

	sb.WriteString("EXPENSES\n")
	sb.WriteString("Account,Amount\n")
	for _, row := range is.Expenses {
		fmt.Fprintf(&sb, "%s,%s\n", row.Account, money(row.TotalDebit))
	}
	fmt.Fprintf(&sb, "Total Expenses,%s\n\n", money(is.TotalExpenses))

	fmt.Fprintf(&sb, "NET INCOME,%s\n", money(is.NetIncome))
	fmt.Fprintf(&sb, "Gross Profit Margin,%.2f%%\n", is.GrossProfitMargin)

	return sb.String(), nil
}

// money formats an amount as $#,##0.00 with a comma every three digits.
// Negative amounts render as $-1,234.56.
func money(v float64) string {
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
