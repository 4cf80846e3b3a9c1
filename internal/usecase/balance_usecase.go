package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/infrastructure/metrics"
)

// BalanceUseCase computes point-in-time account balances from posted,
// non-reversed entries. Reads are reporting-grade: they may lag a
// concurrent writer by a committed snapshot, and are never used to gate
// a write decision.
type BalanceUseCase struct {
	entryRepo EntryRepository
	cache     Cache
	metrics   *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase. cache and metrics may
// be nil.
func NewBalanceUseCase(entryRepo EntryRepository, cache Cache, metrics *metrics.Metrics) *BalanceUseCase {
	return &BalanceUseCase{
		entryRepo: entryRepo,
		cache:     cache,
		metrics:   metrics,
	}
}

// AccountBalanceInput represents input for a balance query.
type AccountBalanceInput struct {
	AsOf      *time.Time
	AccountID string
	EntityID  string
}

// AccountBalance returns the signed balance for the account within the
// entity: credits positive, debits negative, optionally restricted to
// entries at or before AsOf. An account with no entries balances to zero.
func (uc *BalanceUseCase) AccountBalance(ctx context.Context, input AccountBalanceInput) (decimal.Decimal, error) {
	if err := domain.ValidateAccountID(input.AccountID); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateAccountID(input.EntityID); err != nil {
		return decimal.Zero, err
	}

	start := time.Now()
	if uc.metrics != nil {
		uc.metrics.BalanceQueries.Inc()
	}

	// Only current balances are cached; as-of queries are historical and rare.
	if uc.cache != nil && input.AsOf == nil {
		if cached, err := uc.cache.Get(ctx, balanceCacheKey(input.AccountID, input.EntityID)); err == nil {
			if balance, err := decimal.NewFromString(cached); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}

				return balance, nil
			}
		}
	}

	balance, err := uc.entryRepo.AccountBalance(ctx, input.AccountID, input.EntityID, input.AsOf)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.cache != nil && input.AsOf == nil {
		_ = uc.cache.Set(ctx, balanceCacheKey(input.AccountID, input.EntityID), balance.String(), BalanceCacheTTL)
	}

	if uc.metrics != nil {
		uc.metrics.BalanceCacheMiss.Inc()
		uc.metrics.BalanceDuration.Observe(time.Since(start).Seconds())
	}

	return balance, nil
}

func balanceCacheKey(accountID, entityID string) string {
	return "balance:" + entityID + ":" + accountID
}
