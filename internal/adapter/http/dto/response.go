package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	Sequence        int64           `json:"sequence"`
	TransactionID   string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	EntityID        string          `json:"entity_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
	Hash            string          `json:"hash"`
	PreviousHash    *string         `json:"previous_hash"`
	IsReversed      bool            `json:"is_reversed"`
	ReversalEntryID *string         `json:"reversal_entry_id,omitempty"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		Sequence:        e.Sequence,
		TransactionID:   e.TransactionID,
		AccountID:       e.AccountID,
		EntityID:        e.EntityID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		Currency:        e.Currency,
		Description:     e.Description,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		ReferenceNumber: e.ReferenceNumber,
		Metadata:        e.Metadata,
		Hash:            e.Hash,
		PreviousHash:    e.PreviousHash,
		IsReversed:      e.IsReversed,
		ReversalEntryID: e.ReversalEntryID,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionResponse represents a created or reversed transaction.
type TransactionResponse struct {
	TransactionID string           `json:"transaction_id"`
	Entries       []*EntryResponse `json:"entries"`
}

// TransactionFromEntries builds a response from the entries written
// for one transaction.
func TransactionFromEntries(entries []*domain.LedgerEntry) *TransactionResponse {
	resp := &TransactionResponse{Entries: EntriesFromDomain(entries)}
	if len(entries) > 0 {
		resp.TransactionID = entries[0].TransactionID
	}
	return resp
}

// ListEntriesResponse is a paginated entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	EntityID  string          `json:"entity_id"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"as_of,omitempty"`
}

// AuditLogResponse represents an audit log row.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		RequestID:    l.RequestID,
		Detail:       l.Detail,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
