package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking the chain head
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultCurrency is applied when a caller omits the currency code
	DefaultCurrency = "ZAR"

	// BalanceCacheTTL is how long computed balances are cached. Balances
	// are reporting reads; a few seconds of staleness is acceptable and
	// they are never used to gate writes.
	BalanceCacheTTL = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
