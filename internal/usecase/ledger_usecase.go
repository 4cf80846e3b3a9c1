package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/hashchain"
	"github.com/chainledger/chainledger/internal/infrastructure/metrics"
)

// LedgerUseCase is the only writer of ledger entries. Every operation
// reads the chain head and links new entries against it inside a single
// serializable store transaction; the store aborting one of two racing
// transactions is the sole concurrency control.
type LedgerUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	cache     Cache
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. cache and metrics may
// be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		cache:     cache,
		idGen:     idGen,
		metrics:   metrics,
	}
}

// CreateDoubleEntryInput represents input for creating a balanced
// debit/credit pair.
type CreateDoubleEntryInput struct {
	Metadata        map[string]any
	TransactionID   string
	DebitAccountID  string
	CreditAccountID string
	EntityID        string
	Currency        string
	Description     string
	CreatedBy       string
	ReferenceNumber string
	Amount          decimal.Decimal
}

func (in *CreateDoubleEntryInput) validate() error {
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return err
	}

	if in.DebitAccountID == in.CreditAccountID {
		return domain.ErrSameAccount
	}

	for _, id := range []string{in.DebitAccountID, in.CreditAccountID, in.EntityID} {
		if err := domain.ValidateAccountID(id); err != nil {
			return err
		}
	}

	if in.CreatedBy == "" {
		return fmt.Errorf("%w: createdBy", domain.ErrMissingField)
	}

	if in.Currency != "" {
		if err := domain.ValidateCurrency(in.Currency); err != nil {
			return err
		}
	}

	if err := domain.ValidateDescription(in.Description); err != nil {
		return err
	}

	return domain.ValidateMetadata(in.Metadata)
}

// CreateDoubleEntry creates a balanced transaction: one debit and one
// credit entry of equal amount and currency, occupying two consecutive
// chain positions, debit first. On any failure nothing is persisted.
func (uc *LedgerUseCase) CreateDoubleEntry(ctx context.Context, input CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
	// Reject before touching the store
	if err := input.validate(); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = uc.generateTransactionID()
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	head, err := uc.entryRepo.HeadHash(ctx, tx)
	if err != nil {
		return nil, err
	}

	// Truncated to the hash's millisecond precision so the stored value
	// round-trips to exactly what was hashed.
	now := time.Now().UTC().Truncate(time.Millisecond)

	// The pair shares one timestamp; chain order comes from the sequence.
	debit := &domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		TransactionID:   transactionID,
		AccountID:       input.DebitAccountID,
		EntityID:        input.EntityID,
		Type:            domain.EntryTypeDebit,
		Amount:          input.Amount,
		Currency:        currency,
		Description:     input.Description,
		Metadata:        input.Metadata,
		Status:          domain.EntryStatusPending,
		CreatedAt:       now,
		CreatedBy:       input.CreatedBy,
		ReferenceNumber: input.ReferenceNumber,
		PreviousHash:    head,
	}
	debit.Hash = hashchain.Compute(debit, head)

	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	credit := &domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		TransactionID:   transactionID,
		AccountID:       input.CreditAccountID,
		EntityID:        input.EntityID,
		Type:            domain.EntryTypeCredit,
		Amount:          input.Amount,
		Currency:        currency,
		Description:     input.Description,
		Metadata:        input.Metadata,
		Status:          domain.EntryStatusPending,
		CreatedAt:       now,
		CreatedBy:       input.CreatedBy,
		ReferenceNumber: input.ReferenceNumber,
		PreviousHash:    &debit.Hash,
	}
	credit.Hash = hashchain.Compute(credit, &debit.Hash)

	if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.MarkPosted(ctx, tx, transactionID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		uc.recordConflict(err)
		return nil, err
	}

	debit.Status = domain.EntryStatusPosted
	credit.Status = domain.EntryStatusPosted

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		uc.metrics.TransactionAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.TransactionDuration.Observe(time.Since(start).Seconds())
		uc.metrics.EntriesCreated.WithLabelValues(string(domain.EntryTypeDebit)).Inc()
		uc.metrics.EntriesCreated.WithLabelValues(string(domain.EntryTypeCredit)).Inc()
		uc.metrics.ChainHeight.Set(float64(credit.Sequence))
	}

	uc.invalidateBalances(ctx, input.EntityID, input.DebitAccountID, input.CreditAccountID)

	return []*domain.LedgerEntry{debit, credit}, nil
}

// recordConflict counts serialization aborts so retry pressure shows up
// on the dashboard.
func (uc *LedgerUseCase) recordConflict(err error) {
	if uc.metrics != nil && errors.Is(err, domain.ErrTransactionConflict) {
		uc.metrics.WriteConflicts.Inc()
	}
}

// ReverseTransactionInput represents input for reversing a transaction.
type ReverseTransactionInput struct {
	TransactionID string
	Reason        string
	PerformedBy   string
}

// ReverseTransaction offsets every entry of a posted transaction with a
// new flipped entry chained onto the current head, and marks each
// original as reversed exactly once. Reversal entries are created
// already flagged reversed and back-linked to their original, so the
// two legs cancel symmetrically in balance queries. The originals stay
// in the ledger; reversal never deletes. All-or-nothing.
func (uc *LedgerUseCase) ReverseTransaction(ctx context.Context, input ReverseTransactionInput) ([]*domain.LedgerEntry, error) {
	if input.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId", domain.ErrMissingField)
	}

	if input.PerformedBy == "" {
		return nil, fmt.Errorf("%w: performedBy", domain.ErrMissingField)
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	originals, err := uc.entryRepo.GetByTransactionForUpdate(ctx, tx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if len(originals) == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	for _, original := range originals {
		if original.IsReversed {
			return nil, domain.ErrAlreadyReversed
		}
	}

	head, err := uc.entryRepo.HeadHash(ctx, tx)
	if err != nil {
		return nil, err
	}

	reversalID := uc.generateTransactionID()
	reversals := make([]*domain.LedgerEntry, 0, len(originals))

	for _, original := range originals {
		metadata := make(map[string]any, len(original.Metadata)+2)
		for k, v := range original.Metadata {
			metadata[k] = v
		}
		metadata["reversalOf"] = original.ID
		metadata["reversalReason"] = input.Reason

		description := original.Description
		if description == "" {
			description = "Transaction reversed"
		}

		reversal := &domain.LedgerEntry{
			ID:              uc.idGen.Generate(),
			TransactionID:   reversalID,
			AccountID:       original.AccountID,
			EntityID:        original.EntityID,
			Type:            original.Type.Opposite(),
			Amount:          original.Amount,
			Currency:        original.Currency,
			Description:     "REVERSAL: " + description,
			Metadata:        metadata,
			Status:          domain.EntryStatusPosted,
			CreatedAt:       time.Now().UTC().Truncate(time.Millisecond),
			CreatedBy:       input.PerformedBy,
			ReferenceNumber: original.ReferenceNumber,
			PreviousHash:    head,
			IsReversed:      true,
			ReversalEntryID: &original.ID,
		}
		reversal.Hash = hashchain.Compute(reversal, head)

		if err := uc.entryRepo.Create(ctx, tx, reversal); err != nil {
			return nil, err
		}

		if err := uc.entryRepo.MarkReversed(ctx, tx, original.ID, reversal.ID); err != nil {
			return nil, err
		}

		reversals = append(reversals, reversal)

		// The head advances within the loop, so multi-entry reversals
		// stay contiguous in global chain order.
		head = &reversal.Hash
	}

	if err := tx.Commit(ctx); err != nil {
		uc.recordConflict(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsReversed.Inc()
		uc.metrics.TransactionDuration.Observe(time.Since(start).Seconds())
		for _, reversal := range reversals {
			uc.metrics.EntriesCreated.WithLabelValues(string(reversal.Type)).Inc()
		}
		uc.metrics.ChainHeight.Set(float64(reversals[len(reversals)-1].Sequence))
	}

	entityID := originals[0].EntityID
	accounts := make([]string, 0, len(originals))
	for _, original := range originals {
		accounts = append(accounts, original.AccountID)
	}
	uc.invalidateBalances(ctx, entityID, accounts...)

	return reversals, nil
}

// GetTransactionEntries returns every entry of one transaction in chain order.
func (uc *LedgerUseCase) GetTransactionEntries(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	entries, err := uc.entryRepo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return entries, nil
}

func (uc *LedgerUseCase) generateTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), ulid.Make().String()[16:])
}

// invalidateBalances drops cached balances after a committed write.
// Best effort: a failed delete only extends staleness within the TTL.
func (uc *LedgerUseCase) invalidateBalances(ctx context.Context, entityID string, accountIDs ...string) {
	if uc.cache == nil {
		return
	}

	for _, accountID := range accountIDs {
		_ = uc.cache.Delete(ctx, balanceCacheKey(accountID, entityID))
	}
}
