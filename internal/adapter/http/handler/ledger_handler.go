package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chainledger/chainledger/internal/adapter/http/dto"
	"github.com/chainledger/chainledger/internal/adapter/http/middleware"
	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

// LedgerService is the write surface the handler needs.
type LedgerService interface {
	CreateDoubleEntry(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error)
	ReverseTransaction(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error)
	GetTransactionEntries(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
}

// AuditRecorder records operation outcomes, best effort.
type AuditRecorder interface {
	Record(ctx context.Context, input usecase.RecordInput) error
}

// LedgerHandler handles ledger write requests. Writes run under the
// retrier so a serialization conflict re-runs the whole operation,
// including the head re-read.
type LedgerHandler struct {
	ledgerUC LedgerService
	auditUC  AuditRecorder
	retrier  usecase.Retrier
}

// NewLedgerHandler creates a new LedgerHandler. auditUC and retrier may
// be nil.
func NewLedgerHandler(ledgerUC LedgerService, auditUC AuditRecorder, retrier usecase.Retrier) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		auditUC:  auditUC,
		retrier:  retrier,
	}
}

// Create creates a balanced debit/credit transaction.
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput(callerID(r))

	var entries []*domain.LedgerEntry
	err := h.retry(r.Context(), func() error {
		var err error
		entries, err = h.ledgerUC.CreateDoubleEntry(r.Context(), input)
		return err
	})

	resourceID := input.TransactionID
	if len(entries) > 0 {
		resourceID = entries[0].TransactionID
	}

	h.audit(r, domain.AuditActionTransactionCreate, resourceID, domain.JSON{
		"debit_account_id":  input.DebitAccountID,
		"credit_account_id": input.CreditAccountID,
		"entity_id":         input.EntityID,
		"amount":            input.Amount.String(),
	}, err)

	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromEntries(entries))
}

// Reverse reverses a posted transaction.
func (h *LedgerHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.ReverseTransactionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	input := req.ToUseCaseInput(transactionID, callerID(r))

	var reversals []*domain.LedgerEntry
	err := h.retry(r.Context(), func() error {
		var err error
		reversals, err = h.ledgerUC.ReverseTransaction(r.Context(), input)
		return err
	})

	h.audit(r, domain.AuditActionTransactionReverse, transactionID, domain.JSON{
		"reason": input.Reason,
	}, err)

	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromEntries(reversals))
}

// GetEntries lists the entries of a transaction, originals and
// reversals, in chain order.
func (h *LedgerHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	entries, err := h.ledgerUC.GetTransactionEntries(r.Context(), transactionID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromEntries(entries))
}

func (h *LedgerHandler) retry(ctx context.Context, op func() error) error {
	if h.retrier == nil {
		return op()
	}
	return h.retrier.Retry(ctx, op)
}

func (h *LedgerHandler) audit(r *http.Request, action domain.AuditAction, resourceID string, detail domain.JSON, opErr error) {
	if h.auditUC == nil {
		return
	}

	// Audit failure never fails the request.
	_ = h.auditUC.Record(r.Context(), usecase.RecordInput{
		UserID:     callerID(r),
		Action:     action,
		ResourceID: resourceID,
		RequestID:  chimiddleware.GetReqID(r.Context()),
		Detail:     detail,
		Err:        opErr,
	})
}

// callerID resolves who is acting: the authenticated subject when auth
// is on, the anonymous marker otherwise.
func callerID(r *http.Request) string {
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return "anonymous"
}
