package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
	"github.com/chainledger/chainledger/tests/testutil"
)

func TestEdgeCases(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	stack := testutil.NewLedgerStack(testDB)

	t.Run("rejected input leaves the store untouched", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		cases := []struct {
			name  string
			input usecase.CreateDoubleEntryInput
			want  error
		}{
			{
				name: "zero amount",
				input: usecase.CreateDoubleEntryInput{
					DebitAccountID:  "GL001",
					CreditAccountID: "GL002",
					EntityID:        "entity-1",
					Amount:          decimal.Zero,
					CreatedBy:       "test",
				},
				want: domain.ErrInvalidAmount,
			},
			{
				name: "negative amount",
				input: usecase.CreateDoubleEntryInput{
					DebitAccountID:  "GL001",
					CreditAccountID: "GL002",
					EntityID:        "entity-1",
					Amount:          decimal.NewFromInt(-5),
					CreatedBy:       "test",
				},
				want: domain.ErrInvalidAmount,
			},
			{
				name: "same account both sides",
				input: usecase.CreateDoubleEntryInput{
					DebitAccountID:  "GL001",
					CreditAccountID: "GL001",
					EntityID:        "entity-1",
					Amount:          decimal.NewFromInt(10),
					CreatedBy:       "test",
				},
				want: domain.ErrSameAccount,
			},
			{
				name: "missing created by",
				input: usecase.CreateDoubleEntryInput{
					DebitAccountID:  "GL001",
					CreditAccountID: "GL002",
					EntityID:        "entity-1",
					Amount:          decimal.NewFromInt(10),
				},
				want: domain.ErrMissingField,
			},
			{
				name: "bad currency",
				input: usecase.CreateDoubleEntryInput{
					DebitAccountID:  "GL001",
					CreditAccountID: "GL002",
					EntityID:        "entity-1",
					Amount:          decimal.NewFromInt(10),
					Currency:        "RAND",
					CreatedBy:       "test",
				},
				want: domain.ErrInvalidCurrency,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := stack.LedgerUC.CreateDoubleEntry(ctx, tc.input)
				if !errors.Is(err, tc.want) {
					t.Errorf("expected %v, got %v", tc.want, err)
				}
			})
		}

		chain, err := stack.EntryRepo.ListChain(ctx)
		if err != nil {
			t.Fatalf("failed to list chain: %v", err)
		}
		if len(chain) != 0 {
			t.Errorf("expected empty chain after rejected inputs, got %d entries", len(chain))
		}
	})

	t.Run("currency defaults and normalizes", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		entries, err := stack.LedgerUC.CreateDoubleEntry(ctx, usecase.CreateDoubleEntryInput{
			DebitAccountID:  "GL001",
			CreditAccountID: "GL002",
			EntityID:        "entity-1",
			Amount:          decimal.NewFromInt(10),
			CreatedBy:       "test",
		})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if entries[0].Currency != usecase.DefaultCurrency {
			t.Errorf("expected default currency %s, got %s", usecase.DefaultCurrency, entries[0].Currency)
		}

		entries, err = stack.LedgerUC.CreateDoubleEntry(ctx, usecase.CreateDoubleEntryInput{
			DebitAccountID:  "GL001",
			CreditAccountID: "GL002",
			EntityID:        "entity-1",
			Amount:          decimal.NewFromInt(10),
			Currency:        "usd",
			CreatedBy:       "test",
		})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if entries[0].Currency != "USD" {
			t.Errorf("expected USD, got %s", entries[0].Currency)
		}
	})

	t.Run("metadata survives the round trip", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		entries, err := stack.LedgerUC.CreateDoubleEntry(ctx, usecase.CreateDoubleEntryInput{
			DebitAccountID:  "GL001",
			CreditAccountID: "GL002",
			EntityID:        "entity-1",
			Amount:          decimal.NewFromInt(10),
			CreatedBy:       "test",
			ReferenceNumber: "INV-2026-001",
			Metadata:        map[string]any{"channel": "api", "batch": "42"},
		})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		fetched, err := stack.EntryRepo.GetByTransaction(ctx, entries[0].TransactionID)
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}

		for _, e := range fetched {
			if e.ReferenceNumber != "INV-2026-001" {
				t.Errorf("expected reference number preserved, got %q", e.ReferenceNumber)
			}
			if e.Metadata["channel"] != "api" {
				t.Errorf("expected metadata preserved, got %+v", e.Metadata)
			}
		}
	})
}
