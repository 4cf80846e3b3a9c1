package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/adapter/http/dto"
	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

type ledgerServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error)
	reverseFn    func(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error)
	getEntriesFn func(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
}

func (s *ledgerServiceStub) CreateDoubleEntry(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
	return s.createFn(ctx, input)
}

func (s *ledgerServiceStub) ReverseTransaction(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error) {
	return s.reverseFn(ctx, input)
}

func (s *ledgerServiceStub) GetTransactionEntries(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	return s.getEntriesFn(ctx, transactionID)
}

type auditRecorderStub struct {
	records []usecase.RecordInput
}

func (s *auditRecorderStub) Record(ctx context.Context, input usecase.RecordInput) error {
	s.records = append(s.records, input)
	return nil
}

func entryPair(transactionID string) []*domain.LedgerEntry {
	return []*domain.LedgerEntry{
		{ID: "e1", TransactionID: transactionID, Type: domain.EntryTypeDebit, Amount: decimal.NewFromInt(100)},
		{ID: "e2", TransactionID: transactionID, Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(100)},
	}
}

func TestLedgerHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateDoubleEntryInput
	audit := &auditRecorderStub{}

	h := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
			captured = input
			return entryPair("TXN-1"), nil
		},
	}, audit, nil)

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		DebitAccountID:  "GL001",
		CreditAccountID: "GL002",
		EntityID:        "entity-1",
		Amount:          decimal.RequireFromString("100.00"),
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.DebitAccountID != "GL001" || captured.CreditAccountID != "GL002" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	if captured.CreatedBy != "anonymous" {
		t.Fatalf("expected anonymous caller without auth, got %q", captured.CreatedBy)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TransactionID != "TXN-1" || len(resp.Entries) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionTransactionCreate {
		t.Fatalf("expected one create audit record, got %+v", audit.records)
	}
	if audit.records[0].ResourceID != "TXN-1" {
		t.Fatalf("expected audit resource TXN-1, got %q", audit.records[0].ResourceID)
	}
}

func TestLedgerHandler_Create_InvalidBody(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Create_DomainErrorMapped(t *testing.T) {
	audit := &auditRecorderStub{}
	h := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
			return nil, domain.ErrSameAccount
		},
	}, audit, nil)

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		DebitAccountID:  "GL001",
		CreditAccountID: "GL001",
		EntityID:        "entity-1",
		Amount:          decimal.NewFromInt(1),
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	if len(audit.records) != 1 || audit.records[0].Err == nil {
		t.Fatalf("expected failure audit record, got %+v", audit.records)
	}
}

func TestLedgerHandler_Create_RetriesConflicts(t *testing.T) {
	attempts := 0
	h := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
			attempts++
			if attempts == 1 {
				return nil, domain.ErrTransactionConflict
			}
			return entryPair("TXN-2"), nil
		},
	}, nil, retryOnceRetrier{})

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		DebitAccountID:  "GL001",
		CreditAccountID: "GL002",
		EntityID:        "entity-1",
		Amount:          decimal.NewFromInt(1),
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 after retry, got %d", rec.Code)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

// retryOnceRetrier re-runs the operation once on conflict.
type retryOnceRetrier struct{}

func (retryOnceRetrier) Retry(ctx context.Context, op func() error) error {
	err := op()
	if errors.Is(err, domain.ErrTransactionConflict) {
		return op()
	}
	return err
}

func TestLedgerHandler_Reverse_Success(t *testing.T) {
	var captured usecase.ReverseTransactionInput
	audit := &auditRecorderStub{}

	h := NewLedgerHandler(&ledgerServiceStub{
		reverseFn: func(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error) {
			captured = input
			return entryPair("TXN-1"), nil
		},
	}, audit, nil)

	body, _ := json.Marshal(dto.ReverseTransactionRequest{Reason: "duplicate"})
	req := newChiRequest(http.MethodPost, "/ledger/transactions/TXN-1/reverse", bytes.NewReader(body), "TXN-1")
	rec := httptest.NewRecorder()

	h.Reverse(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TransactionID != "TXN-1" || captured.Reason != "duplicate" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionTransactionReverse {
		t.Fatalf("expected reverse audit record, got %+v", audit.records)
	}
}

func TestLedgerHandler_Reverse_AlreadyReversed(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		reverseFn: func(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error) {
			return nil, domain.ErrAlreadyReversed
		},
	}, nil, nil)

	req := newChiRequest(http.MethodPost, "/ledger/transactions/TXN-1/reverse", nil, "TXN-1")
	rec := httptest.NewRecorder()

	h.Reverse(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLedgerHandler_GetEntries(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		getEntriesFn: func(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
			if transactionID != "TXN-1" {
				return nil, domain.ErrTransactionNotFound
			}
			return entryPair("TXN-1"), nil
		},
	}, nil, nil)

	req := newChiRequest(http.MethodGet, "/ledger/transactions/TXN-1/entries", nil, "TXN-1")
	rec := httptest.NewRecorder()

	h.GetEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = newChiRequest(http.MethodGet, "/ledger/transactions/TXN-9/entries", nil, "TXN-9")
	rec = httptest.NewRecorder()

	h.GetEntries(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// newChiRequest builds a request carrying a chi URL param.
func newChiRequest(method, target string, body *bytes.Reader, id string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
