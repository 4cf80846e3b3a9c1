package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
)

// EntryRepository defines data access for ledger entries. The store must
// enforce a unique constraint on the hash column and provide ordered
// reads by sequence; everything else the chain needs is derived here.
type EntryRepository interface {
	// Create persists a new entry inside tx and fills in its assigned sequence.
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	// MarkPosted flips every entry of the transaction from PENDING to POSTED.
	MarkPosted(ctx context.Context, tx Transaction, transactionID string) error
	// MarkReversed sets the one permitted post-POSTED mutation on an entry.
	MarkReversed(ctx context.Context, tx Transaction, entryID, reversalEntryID string) error
	// HeadHash returns the hash of the entry with the greatest sequence,
	// or nil for an empty ledger. Must be read inside the same transaction
	// that will link against it.
	HeadHash(ctx context.Context, tx Transaction) (*string, error)
	// ListChain returns every entry ascending by sequence.
	ListChain(ctx context.Context) ([]*domain.LedgerEntry, error)
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	// GetByTransactionForUpdate locks the transaction's entries inside tx.
	GetByTransactionForUpdate(ctx context.Context, tx Transaction, transactionID string) ([]*domain.LedgerEntry, error)
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error)
	// AccountBalance sums POSTED, non-reversed entries for the account,
	// credits positive and debits negative, optionally up to asOf.
	AccountBalance(ctx context.Context, accountID, entityID string, asOf *time.Time) (decimal.Decimal, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager hands out transactions at the store's strictest
// isolation level. Every read-then-link of the chain head happens inside
// exactly one of these.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier re-runs an operation when the store reports a retryable
// conflict. Used by callers of the writer, never by the writer itself.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
