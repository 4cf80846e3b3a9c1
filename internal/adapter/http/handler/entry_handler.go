package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/adapter/http/dto"
	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

// EntryService lists ledger entries.
type EntryService interface {
	ListEntries(ctx context.Context, filter domain.EntryFilter) (*usecase.ListEntriesResult, error)
}

// BalanceService computes account balances.
type BalanceService interface {
	AccountBalance(ctx context.Context, input usecase.AccountBalanceInput) (decimal.Decimal, error)
}

// EntryHandler handles entry listing and balance requests.
type EntryHandler struct {
	entryUC   EntryService
	balanceUC BalanceService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService, balanceUC BalanceService) *EntryHandler {
	return &EntryHandler{
		entryUC:   entryUC,
		balanceUC: balanceUC,
	}
}

// List lists ledger entries with optional filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseTimeQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'start_date' format (use RFC3339)", err.Error())
		return
	}

	endDate, err := parseTimeQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'end_date' format (use RFC3339)", err.Error())
		return
	}

	filter := domain.EntryFilter{
		AccountID:       r.URL.Query().Get("account_id"),
		EntityID:        r.URL.Query().Get("entity_id"),
		TransactionID:   r.URL.Query().Get("transaction_id"),
		ExcludeReversed: r.URL.Query().Get("exclude_reversed") == "true",
		StartDate:       startDate,
		EndDate:         endDate,
		Limit:           parseIntQuery(r, "limit", 50),
		Offset:          parseIntQuery(r, "offset", 0),
	}

	result, err := h.entryUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(result.Entries),
		Total:   result.Total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

// GetBalance returns the signed balance of an account, optionally as of
// a point in time.
func (h *EntryHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entityID := r.URL.Query().Get("entity_id")
	if entityID == "" {
		writeError(w, http.StatusBadRequest, "missing 'entity_id' parameter", "")
		return
	}

	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'as_of' format (use RFC3339)", err.Error())
		return
	}

	balance, err := h.balanceUC.AccountBalance(r.Context(), usecase.AccountBalanceInput{
		AccountID: accountID,
		EntityID:  entityID,
		AsOf:      asOf,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		EntityID:  entityID,
		Balance:   balance,
		AsOf:      asOf,
	})
}
