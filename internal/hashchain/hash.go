// Package hashchain computes the content hashes that link ledger entries
// into a single global chain. Hashing is deterministic across platforms:
// the payload has a fixed key order, amounts are rendered fixed-point with
// two decimals, and timestamps are rendered as ISO-8601 UTC with
// millisecond precision.
package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
)

// GenesisMarker is the literal predecessor value hashed into the very
// first entry of the ledger. It is a marker, not the hash of anything.
const GenesisMarker = "GENESIS_BLOCK"

const timestampLayout = "2006-01-02T15:04:05.000Z"

// payload fixes the canonical field order of the hashed content.
// encoding/json emits struct fields in declaration order, which makes
// the serialization stable without sorting.
type payload struct {
	TransactionID string `json:"transactionId"`
	AccountID     string `json:"accountId"`
	EntityID      string `json:"entityId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Timestamp     string `json:"timestamp"`
	PreviousHash  string `json:"previousHash"`
}

// Compute returns the SHA-256 hex digest of the entry's chained content.
// previousHash is nil only for the genesis entry, in which case the
// GenesisMarker is substituted. Pure; no side effects.
func Compute(e *domain.LedgerEntry, previousHash *string) string {
	p := payload{
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		EntityID:      e.EntityID,
		Type:          string(e.Type),
		Amount:        CanonicalAmount(e.Amount),
		Currency:      e.Currency,
		Timestamp:     CanonicalTimestamp(e.CreatedAt),
		PreviousHash:  GenesisMarker,
	}

	if previousHash != nil {
		p.PreviousHash = *previousHash
	}

	// Marshaling a struct of strings cannot fail.
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// CanonicalAmount renders an amount the way it is hashed: fixed-point,
// two decimal places, no locale formatting.
func CanonicalAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// CanonicalTimestamp renders a timestamp the way it is hashed:
// ISO-8601 UTC with millisecond precision.
func CanonicalTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
