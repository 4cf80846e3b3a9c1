package usecase_test

import (
	"context"
	"testing"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

func TestListEntries(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	first, err := f.uc.CreateDoubleEntry(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := validInput()
	input.DebitAccountID = "GL003"
	if _, err := f.uc.CreateDoubleEntry(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entryUC := usecase.NewEntryUseCase(f.repo)

	t.Run("unfiltered", func(t *testing.T) {
		result, err := entryUC.ListEntries(ctx, domain.EntryFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Total != 4 || len(result.Entries) != 4 {
			t.Fatalf("total = %d, entries = %d, want 4/4", result.Total, len(result.Entries))
		}
	})

	t.Run("by account", func(t *testing.T) {
		result, err := entryUC.ListEntries(ctx, domain.EntryFilter{AccountID: "GL003"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Total != 1 {
			t.Fatalf("total = %d, want 1", result.Total)
		}
	})

	t.Run("by transaction", func(t *testing.T) {
		result, err := entryUC.ListEntries(ctx, domain.EntryFilter{TransactionID: first[0].TransactionID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Total != 2 {
			t.Fatalf("total = %d, want 2", result.Total)
		}
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		result, err := entryUC.ListEntries(ctx, domain.EntryFilter{Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Total != 4 || len(result.Entries) != 1 {
			t.Fatalf("total = %d, entries = %d, want 4/1", result.Total, len(result.Entries))
		}
	})

	t.Run("exclude reversed", func(t *testing.T) {
		if _, err := f.uc.ReverseTransaction(ctx, usecase.ReverseTransactionInput{
			TransactionID: first[0].TransactionID,
			Reason:        "test",
			PerformedBy:   "admin-1",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := entryUC.ListEntries(ctx, domain.EntryFilter{ExcludeReversed: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 6 entries total, 2 of them reversed.
		if result.Total != 4 {
			t.Fatalf("total = %d, want 4", result.Total)
		}
	})
}
