package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

func TestAppendAssignsIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	stored, err := s.Append(ctx, []domain.Transaction{
		{Account: "Cash", Debit: 100},
		{ID: "custom-id", Account: "Capital", Credit: 100},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if stored[0].ID == "" {
		t.Error("expected a generated ID for the first transaction")
	}
	if stored[1].ID != "custom-id" {
		t.Errorf("caller-supplied ID was replaced: %q", stored[1].ID)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Append(ctx, []domain.Transaction{{Account: "Cash", Debit: 100}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	first, _ := s.List(ctx)
	first[0].Account = "Tampered"

	second, _ := s.List(ctx)
	if second[0].Account != "Cash" {
		t.Error("mutating a listed slice must not affect the store")
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Append(ctx, domain.SampleLedger()); err != nil {
		t.Fatalf("append: %v", err)
	}

	listed, _ := s.List(ctx)
	want := domain.SampleLedger()
	if len(listed) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(listed), len(want))
	}
	for i := range want {
		if listed[i].Account != want[i].Account || listed[i].Debit != want[i].Debit {
			t.Errorf("row %d = %+v, want account %q", i, listed[i], want[i].Account)
		}
	}
}

func TestDeleteByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	stored, _ := s.Append(ctx, []domain.Transaction{
		{Account: "Cash", Debit: 100},
		{Account: "Capital", Credit: 100},
	})

	if err := s.DeleteByID(ctx, stored[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, _ := s.List(ctx)
	if len(listed) != 1 || listed[0].Account != "Capital" {
		t.Errorf("after delete, ledger = %+v, want only Capital", listed)
	}
}

func TestDeleteByID_NotFound(t *testing.T) {
	s := New()
	err := s.DeleteByID(context.Background(), "missing")

	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if nf.ID != "missing" {
		t.Errorf("not-found ID = %q, want %q", nf.ID, "missing")
	}
}

func TestClear(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, domain.SampleLedger())
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	n, _ := s.Count(ctx)
	if n != 0 {
		t.Errorf("count after clear = %d, want 0", n)
	}
}

func TestRevisionTracksMutations(t *testing.T) {
	s := New()
	ctx := context.Background()

	rev0, _ := s.Revision(ctx)

	stored, _ := s.Append(ctx, []domain.Transaction{{Account: "Cash", Debit: 1}})
	rev1, _ := s.Revision(ctx)
	if rev1 <= rev0 {
		t.Error("append must bump the revision")
	}

	// Reads do not move the counter.
	s.List(ctx)
	s.Count(ctx)
	if rev, _ := s.Revision(ctx); rev != rev1 {
		t.Error("reads must not bump the revision")
	}

	s.DeleteByID(ctx, stored[0].ID)
	rev2, _ := s.Revision(ctx)
	if rev2 <= rev1 {
		t.Error("delete must bump the revision")
	}

	// Clearing an empty ledger is a no-op.
	s.Clear(ctx)
	rev3, _ := s.Revision(ctx)
	s.Clear(ctx)
	if rev, _ := s.Revision(ctx); rev != rev3 {
		t.Error("clearing an empty ledger must not bump the revision")
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(ctx, []domain.Transaction{{Account: "Cash", Debit: 1}})
		}()
	}
	wg.Wait()

	n, _ := s.Count(ctx)
	if n != 50 {
		t.Errorf("count = %d, want 50", n)
	}
	rev, _ := s.Revision(ctx)
	if rev != 50 {
		t.Errorf("revision = %d, want 50", rev)
	}
}
