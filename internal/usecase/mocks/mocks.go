package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

// MockEntryRepository is an in-memory implementation of EntryRepository
// that behaves like the real store for single-threaded tests: it assigns
// sequences, enforces hash uniqueness, and serves chain-order reads.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry
	hashes  map[string]bool
	nextSeq int64

	CreateFunc   func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	HeadHashFunc func(ctx context.Context, tx usecase.Transaction) (*string, error)
	ListFunc     func(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error)
	BalanceFunc  func(ctx context.Context, accountID, entityID string, asOf *time.Time) (decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		hashes:  make(map[string]bool),
		nextSeq: 1,
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hashes[entry.Hash] {
		return domain.ErrHashCollision
	}

	entry.Sequence = m.nextSeq
	m.nextSeq++
	m.hashes[entry.Hash] = true

	stored := *entry
	m.entries = append(m.entries, &stored)

	return nil
}

func (m *MockEntryRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			e.Status = domain.EntryStatusPosted
		}
	}

	return nil
}

func (m *MockEntryRepository) MarkReversed(ctx context.Context, tx usecase.Transaction, entryID, reversalEntryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.ID == entryID {
			if e.IsReversed {
				return domain.ErrAlreadyReversed
			}

			e.IsReversed = true
			id := reversalEntryID
			e.ReversalEntryID = &id

			return nil
		}
	}

	return domain.ErrEntryNotFound
}

func (m *MockEntryRepository) HeadHash(ctx context.Context, tx usecase.Transaction) (*string, error) {
	if m.HeadHashFunc != nil {
		return m.HeadHashFunc(ctx, tx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil, nil
	}

	hash := m.entries[len(m.entries)-1].Hash

	return &hash, nil
}

func (m *MockEntryRepository) ListChain(ctx context.Context) ([]*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.LedgerEntry, len(m.entries))
	for i, e := range m.entries {
		copied := *e
		out[i] = &copied
	}

	return out, nil
}

func (m *MockEntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			copied := *e
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (m *MockEntryRepository) GetByTransactionForUpdate(ctx context.Context, tx usecase.Transaction, transactionID string) ([]*domain.LedgerEntry, error) {
	return m.GetByTransaction(ctx, transactionID)
}

func (m *MockEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*domain.LedgerEntry
	for _, e := range m.entries {
		if filter.AccountID != "" && e.AccountID != filter.AccountID {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.TransactionID != "" && e.TransactionID != filter.TransactionID {
			continue
		}
		if filter.ExcludeReversed && e.IsReversed {
			continue
		}

		copied := *e
		matched = append(matched, &copied)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}

	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (m *MockEntryRepository) AccountBalance(ctx context.Context, accountID, entityID string, asOf *time.Time) (decimal.Decimal, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, accountID, entityID, asOf)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	balance := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID != accountID || e.EntityID != entityID {
			continue
		}
		if e.Status != domain.EntryStatusPosted {
			continue
		}
		if asOf != nil && e.CreatedAt.After(*asOf) {
			continue
		}

		balance = balance.Add(e.BalanceImpact())
	}

	return balance, nil
}

// Tamper mutates a stored entry out of band, bypassing every invariant.
// Only integrity-verification tests should call this.
func (m *MockEntryRepository) Tamper(index int, mutate func(*domain.LedgerEntry)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mutate(m.entries[index])
}

// MockTransaction is a no-op transaction recording its lifecycle.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out MockTransactions.
type MockTxManager struct {
	mu    sync.Mutex
	Txs   []*MockTransaction
	Begun int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Begun++
	tx := &MockTransaction{}
	m.Txs = append(m.Txs, tx)

	return tx, nil
}

// MockIDGenerator yields deterministic sequential ids.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (g *MockIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	return fmt.Sprintf("entry-%04d", g.counter)
}

// MockCache is a TTL-ignoring in-memory cache.
type MockCache struct {
	mu      sync.RWMutex
	values  map[string]string
	Deletes []string
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}

	return v, nil
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.Deletes = append(c.Deletes, key)
	return nil
}
