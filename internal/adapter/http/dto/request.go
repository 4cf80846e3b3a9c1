package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/usecase"
)

// CreateTransactionRequest represents a request to create a balanced
// debit/credit pair.
type CreateTransactionRequest struct {
	TransactionID   string          `json:"transaction_id,omitempty"`
	DebitAccountID  string          `json:"debit_account_id"`
	CreditAccountID string          `json:"credit_account_id"`
	EntityID        string          `json:"entity_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input. createdBy comes from the
// authenticated caller, never from the request body.
func (r *CreateTransactionRequest) ToUseCaseInput(createdBy string) usecase.CreateDoubleEntryInput {
	return usecase.CreateDoubleEntryInput{
		TransactionID:   r.TransactionID,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		EntityID:        r.EntityID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
		Metadata:        r.Metadata,
		CreatedBy:       createdBy,
	}
}

// ReverseTransactionRequest represents a request to reverse a transaction.
type ReverseTransactionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseTransactionRequest) ToUseCaseInput(transactionID, performedBy string) usecase.ReverseTransactionInput {
	return usecase.ReverseTransactionInput{
		TransactionID: transactionID,
		Reason:        r.Reason,
		PerformedBy:   performedBy,
	}
}
