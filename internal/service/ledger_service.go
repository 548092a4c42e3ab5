// Package service orchestrates the ledger store and the derivation
// pipeline behind the HTTP API. Services own logging, tracing and
// metrics; all accounting arithmetic stays in the accounting package.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/port"
)

var tracer = otel.Tracer("service")

// LedgerService exposes ledger mutations and every derived view:
// trial balance, statements, ratios and the health score. Derivations
// are recomputed from the stored ledger on every call; nothing derived
// is ever persisted.
type LedgerService struct {
	store   port.TransactionStore
	builder *accounting.StatementBuilder
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLedgerService creates the ledger service with all dependencies injected.
func NewLedgerService(
	store port.TransactionStore,
	builder *accounting.StatementBuilder,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		store:   store,
		builder: builder,
		metrics: metrics,
		logger:  logger,
	}
}

// Store exposes the underlying transaction store for collaborating
// services (import, insights).
func (s *LedgerService) Store() port.TransactionStore {
	return s.store
}

// ListTransactions returns the ledger in insertion order.
func (s *LedgerService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListTransactions")
	defer span.End()

	return s.store.List(ctx)
}

// AddTransaction validates and appends a single transaction. The date
// defaults to today when omitted; amounts must be non-negative and the
// account name must be present. Imbalanced entries are accepted.
func (s *LedgerService) AddTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.AddTransaction")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("add_transaction", time.Since(start))
	}()

	if tx.Account == "" {
		return nil, &domain.ErrValidation{Field: "account", Message: "account is required"}
	}
	if tx.Debit < 0 {
		return nil, &domain.ErrValidation{Field: "debit", Message: "debit must be non-negative"}
	}
	if tx.Credit < 0 {
		return nil, &domain.ErrValidation{Field: "credit", Message: "credit must be non-negative"}
	}
	if tx.Date == "" {
		tx.Date = time.Now().Format("2006-01-02")
	}

	stored, err := s.store.Append(ctx, []domain.Transaction{tx})
	if err != nil {
		return nil, err
	}
	s.observeLedgerSize(ctx)

	s.logger.Info("transaction added",
		zap.String("id", stored[0].ID),
		zap.String("account", stored[0].Account),
		zap.Float64("debit", stored[0].Debit),
		zap.Float64("credit", stored[0].Credit),
	)
	return &stored[0], nil
}

// DeleteTransaction removes one transaction by ID.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.observeLedgerSize(ctx)

	s.logger.Info("transaction deleted", zap.String("id", id))
	return nil
}

// ClearLedger drops every transaction.
func (s *LedgerService) ClearLedger(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "LedgerService.ClearLedger")
	defer span.End()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.metrics.SetLedgerSize(0)

	s.logger.Info("ledger cleared")
	return nil
}

// LoadSample replaces the ledger with the built-in demo data and
// returns the number of transactions loaded.
func (s *LedgerService) LoadSample(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.LoadSample")
	defer span.End()

	if err := s.store.Clear(ctx); err != nil {
		return 0, err
	}
	stored, err := s.store.Append(ctx, domain.SampleLedger())
	if err != nil {
		return 0, err
	}
	s.metrics.SetLedgerSize(len(stored))

	s.logger.Info("sample ledger loaded", zap.Int("transactions", len(stored)))
	return len(stored), nil
}

// Dashboard returns overall totals plus the per-account breakdown.
// Nil means the ledger is empty.
func (s *LedgerService) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.Dashboard")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.Summarize(txns), nil
}

// TrialBalance classifies the ledger into per-account balances with
// debit/credit totals. Nil means the ledger is empty.
func (s *LedgerService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.TrialBalance")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.NewTrialBalance(accounting.Classify(txns)), nil
}

// BalanceSheet derives the balance sheet. Nil means the ledger is empty.
func (s *LedgerService) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.BalanceSheet")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.builder.BalanceSheet(accounting.Classify(txns)), nil
}

// IncomeStatement derives the income statement. Nil means the ledger
// is empty.
func (s *LedgerService) IncomeStatement(ctx context.Context) (*domain.IncomeStatement, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.IncomeStatement")
	defer span.End()

	txns, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.builder.IncomeStatement(accounting.Classify(txns)), nil
}

// Ratios derives the four-category ratio report from both statements.
// Nil means the ledger is empty.
func (s *LedgerService) Ratios(ctx context.Context) (*domain.RatioReport, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.Ratios")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("ratios", time.Since(start))
	}()

	txns, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := accounting.Classify(txns)
	return accounting.ComputeRatios(s.builder.BalanceSheet(rows), s.builder.IncomeStatement(rows)), nil
}

// HealthScore scores the ratio report against the fixed rubric. Nil
// means the ledger is empty.
func (s *LedgerService) HealthScore(ctx context.Context) (*domain.HealthScore, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.HealthScore")
	defer span.End()

	report, err := s.Ratios(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.Score(report), nil
}

func (s *LedgerService) observeLedgerSize(ctx context.Context) {
	if n, err := s.store.Count(ctx); err == nil {
		s.metrics.SetLedgerSize(n)
	}
}
