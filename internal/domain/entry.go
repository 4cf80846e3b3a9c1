package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry debits or credits its account.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// Opposite returns the flipped entry type, used when building reversals.
func (t EntryType) Opposite() EntryType {
	if t == EntryTypeDebit {
		return EntryTypeCredit
	}
	return EntryTypeDebit
}

// EntryStatus is the lifecycle state of an entry. Entries are inserted
// PENDING and flipped to POSTED within the same store transaction, so
// readers outside that transaction only ever observe POSTED entries.
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "PENDING"
	EntryStatusPosted  EntryStatus = "POSTED"
)

// LedgerEntry is a single immutable record in the hash-chained ledger.
// Once POSTED, the only fields that may ever change are IsReversed and
// ReversalEntryID, set exactly once when the entry is reversed.
// Reversal entries carry both from creation, back-linked to the
// original they offset, so a reversed pair nets to zero.
type LedgerEntry struct {
	CreatedAt       time.Time
	Metadata        map[string]any
	PreviousHash    *string
	ReversalEntryID *string
	ID              string
	TransactionID   string
	AccountID       string
	EntityID        string
	Description     string
	CreatedBy       string
	ReferenceNumber string
	Hash            string
	Type            EntryType
	Status          EntryStatus
	Currency        string
	Amount          decimal.Decimal
	Sequence        int64
	IsReversed      bool
}

// BalanceImpact returns the entry's signed contribution to its account
// balance: credits positive, debits negative, reversed entries zero.
func (e *LedgerEntry) BalanceImpact() decimal.Decimal {
	if e.IsReversed {
		return decimal.Zero
	}

	if e.Type == EntryTypeCredit {
		return e.Amount
	}

	return e.Amount.Neg()
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	AccountID       string
	EntityID        string
	TransactionID   string
	ExcludeReversed bool
	Limit           int
	Offset          int
}
