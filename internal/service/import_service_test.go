package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/memstore"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

// --- Mocks ---

type mockExtractor struct {
	txns []domain.Transaction
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _, _ string, _ []byte) ([]domain.Transaction, error) {
	return m.txns, m.err
}

func newImportService(store *memstore.Store, extractor *mockExtractor) *service.ImportService {
	return service.NewImportService(store, extractor, observability.NewMetrics(), zap.NewNop())
}

// --- CSV import ---

func TestImportCSV(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{})

	csvData := "date,account,debit,credit,description\n" +
		"2024-01-15,Cash,50000,0,Initial capital\n" +
		"2024-01-15,Capital,0,50000,Owner investment\n"

	stored, err := svc.ImportCSV(context.Background(), []byte(csvData))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("imported %d rows, want 2", len(stored))
	}
	if stored[0].Account != "Cash" || stored[0].Debit != 50000 {
		t.Errorf("first row = %+v, want Cash debit 50000", stored[0])
	}
	if stored[0].ID == "" {
		t.Error("imported rows must get IDs")
	}
}

func TestImportCSV_FlexibleHeaders(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{})

	// Different order, different casing, currency formatting in cells.
	csvData := "Description,Credit,DEBIT,Account,Date\n" +
		"Sale,\"$1,500.00\",0,Sales Revenue,2024-03-01\n"

	stored, err := svc.ImportCSV(context.Background(), []byte(csvData))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stored[0].Account != "Sales Revenue" || stored[0].Credit != 1500 {
		t.Errorf("row = %+v, want Sales Revenue credit 1500", stored[0])
	}
}

func TestImportCSV_SkipsEmptyAccounts(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{})

	csvData := "account,debit,credit\n" +
		"Cash,100,0\n" +
		",50,0\n" +
		"Capital,0,100\n"

	stored, err := svc.ImportCSV(context.Background(), []byte(csvData))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("imported %d rows, want 2 (blank account skipped)", len(stored))
	}
}

func TestImportCSV_Invalid(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{})
	ctx := context.Background()

	cases := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"header only", "date,account,debit,credit\n"},
		{"no account column", "date,amount\n2024-01-01,100\n"},
		{"only blank accounts", "account,debit\n,100\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ImportCSV(ctx, []byte(tc.data))
			var ve *domain.ErrValidation
			if !errors.As(err, &ve) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("store has %d transactions after failed imports, want 0", n)
	}
}

// --- Document extraction ---

func TestExtractDocument(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{
		txns: []domain.Transaction{
			{Date: "2024-05-01", Account: "Supplies Expense", Debit: 42.50, Description: "Office supplies"},
		},
	})

	stored, err := svc.ExtractDocument(context.Background(), "receipt.jpg", "image/jpeg", []byte("fake-image"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(stored) != 1 || stored[0].Account != "Supplies Expense" {
		t.Errorf("stored = %+v, want one Supplies Expense row", stored)
	}

	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("store count = %d, want 1", n)
	}
}

func TestExtractDocument_FailureIsRecoverable(t *testing.T) {
	store := memstore.New()
	svc := newImportService(store, &mockExtractor{err: errors.New("model unavailable")})

	stored, err := svc.ExtractDocument(context.Background(), "receipt.jpg", "image/jpeg", []byte("fake-image"))
	if err != nil {
		t.Fatalf("extraction failure must not surface as an error, got %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored = %+v, want nothing", stored)
	}

	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("store count = %d, want 0 after failed extraction", n)
	}
}

func TestExtractDocument_EmptyFile(t *testing.T) {
	svc := newImportService(memstore.New(), &mockExtractor{})

	_, err := svc.ExtractDocument(context.Background(), "empty.pdf", "application/pdf", nil)
	var ve *domain.ErrValidation
	if !errors.As(err, &ve) {
		t.Errorf("expected validation error for empty upload, got %v", err)
	}
}
