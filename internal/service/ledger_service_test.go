package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/memstore"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

func newLedgerService() *service.LedgerService {
	return service.NewLedgerService(
		memstore.New(),
		accounting.NewStatementBuilder(domain.DefaultChart()),
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestAddTransaction_Validation(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	cases := []struct {
		name string
		tx   domain.Transaction
	}{
		{"missing account", domain.Transaction{Debit: 100}},
		{"negative debit", domain.Transaction{Account: "Cash", Debit: -1}},
		{"negative credit", domain.Transaction{Account: "Cash", Credit: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, tc.tx)
			var ve *domain.ErrValidation
			if !errors.As(err, &ve) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddTransaction_DefaultsDate(t *testing.T) {
	svc := newLedgerService()

	stored, err := svc.AddTransaction(context.Background(), domain.Transaction{Account: "Cash", Debit: 100})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if stored.Date == "" {
		t.Error("expected a defaulted date")
	}
	if stored.ID == "" {
		t.Error("expected an assigned ID")
	}
}

func TestAddTransaction_AcceptsImbalance(t *testing.T) {
	svc := newLedgerService()

	// A single one-sided entry is legal; the system reports imbalance,
	// it never rejects it.
	if _, err := svc.AddTransaction(context.Background(), domain.Transaction{Account: "Cash", Debit: 999}); err != nil {
		t.Fatalf("one-sided entry rejected: %v", err)
	}

	tb, err := svc.TrialBalance(context.Background())
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if tb.IsBalanced {
		t.Error("one-sided ledger must report as unbalanced")
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc := newLedgerService()

	err := svc.DeleteTransaction(context.Background(), "nope")
	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoadSample(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	// Pre-existing data is replaced, not appended to.
	svc.AddTransaction(ctx, domain.Transaction{Account: "Old", Debit: 1})

	n, err := svc.LoadSample(ctx)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if n != 14 {
		t.Errorf("loaded %d transactions, want 14", n)
	}

	txns, _ := svc.ListTransactions(ctx)
	if len(txns) != 14 {
		t.Errorf("ledger has %d transactions, want 14", len(txns))
	}
	for _, tx := range txns {
		if tx.Account == "Old" {
			t.Error("loading the sample must replace existing data")
		}
		if tx.ID == "" {
			t.Error("sample transactions must get IDs on load")
		}
	}
}

func TestDerivedViews_EmptyLedger(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	if v, err := svc.Dashboard(ctx); err != nil || v != nil {
		t.Errorf("dashboard = (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := svc.TrialBalance(ctx); err != nil || v != nil {
		t.Errorf("trial balance = (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := svc.BalanceSheet(ctx); err != nil || v != nil {
		t.Errorf("balance sheet = (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := svc.IncomeStatement(ctx); err != nil || v != nil {
		t.Errorf("income statement = (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := svc.Ratios(ctx); err != nil || v != nil {
		t.Errorf("ratios = (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := svc.HealthScore(ctx); err != nil || v != nil {
		t.Errorf("health score = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestDerivedViews_SampleLedger(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	if _, err := svc.LoadSample(ctx); err != nil {
		t.Fatalf("load sample: %v", err)
	}

	bs, err := svc.BalanceSheet(ctx)
	if err != nil || bs == nil {
		t.Fatalf("balance sheet = (%v, %v)", bs, err)
	}
	if bs.TotalAssets != 86000 {
		t.Errorf("total assets = %v, want 86000", bs.TotalAssets)
	}

	is, err := svc.IncomeStatement(ctx)
	if err != nil || is == nil {
		t.Fatalf("income statement = (%v, %v)", is, err)
	}
	if is.NetIncome != 28000 {
		t.Errorf("net income = %v, want 28000", is.NetIncome)
	}

	hs, err := svc.HealthScore(ctx)
	if err != nil || hs == nil {
		t.Fatalf("health score = (%v, %v)", hs, err)
	}
	if hs.Score != 77 {
		t.Errorf("health score = %d, want 77", hs.Score)
	}
}

func TestClearLedger(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	svc.LoadSample(ctx)
	if err := svc.ClearLedger(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	txns, _ := svc.ListTransactions(ctx)
	if len(txns) != 0 {
		t.Errorf("ledger has %d transactions after clear, want 0", len(txns))
	}
}
