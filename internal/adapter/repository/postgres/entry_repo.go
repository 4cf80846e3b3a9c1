package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

// dbtx covers both pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const entryColumns = `id, seq, transaction_id, account_id, entity_id, type, amount, currency,
	description, metadata, status, created_at, created_by, reference_number,
	hash, previous_hash, is_reversed, reversal_entry_id`

// EntryRepository implements usecase.EntryRepository against PostgreSQL.
// It is the chain accessor: the head, the ordered chain walk, and the
// one permitted post-POSTED mutation all live here.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create persists a new entry inside tx and fills in the sequence the
// store assigned to it.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	var metadata []byte
	if entry.Metadata != nil {
		var err error

		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	err := pgxTx.QueryRow(ctx, `
		INSERT INTO ledger_entries (
			id, transaction_id, account_id, entity_id, type, amount, currency,
			description, metadata, status, created_at, created_by, reference_number,
			hash, previous_hash, is_reversed, reversal_entry_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING seq`,
		entry.ID,
		entry.TransactionID,
		entry.AccountID,
		entry.EntityID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Currency,
		entry.Description,
		metadata,
		string(entry.Status),
		timeToPgTimestamptz(entry.CreatedAt),
		entry.CreatedBy,
		entry.ReferenceNumber,
		entry.Hash,
		entry.PreviousHash,
		entry.IsReversed,
		entry.ReversalEntryID,
	).Scan(&entry.Sequence)

	return mapPgError(err)
}

// MarkPosted flips every PENDING entry of the transaction to POSTED.
func (r *EntryRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, transactionID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE ledger_entries SET status = $1
		WHERE transaction_id = $2 AND status = $3`,
		string(domain.EntryStatusPosted), transactionID, string(domain.EntryStatusPending),
	)

	return mapPgError(err)
}

// MarkReversed performs the single permitted mutation of a posted entry.
// The is_reversed guard makes the update first-writer-wins.
func (r *EntryRepository) MarkReversed(ctx context.Context, tx usecase.Transaction, entryID, reversalEntryID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE ledger_entries SET is_reversed = TRUE, reversal_entry_id = $1
		WHERE id = $2 AND is_reversed = FALSE`,
		reversalEntryID, entryID,
	)
	if err != nil {
		return mapPgError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyReversed
	}

	return nil
}

// HeadHash returns the hash of the most recently chained entry, nil for
// an empty ledger. Runs inside the caller's serializable transaction so
// the head cannot move under the writer that read it without aborting
// one of the two.
func (r *EntryRepository) HeadHash(ctx context.Context, tx usecase.Transaction) (*string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var hash string
	err := pgxTx.QueryRow(ctx,
		`SELECT hash FROM ledger_entries ORDER BY seq DESC LIMIT 1`,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, mapPgError(err)
	}

	return &hash, nil
}

// ListChain returns every entry ascending by sequence, the order in
// which hashes were chained.
func (r *EntryRepository) ListChain(ctx context.Context) ([]*domain.LedgerEntry, error) {
	return r.queryEntries(ctx, r.pool,
		`SELECT `+entryColumns+` FROM ledger_entries ORDER BY seq ASC`)
}

// GetByTransaction retrieves a transaction's entries in chain order.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	return r.queryEntries(ctx, r.pool,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE transaction_id = $1 ORDER BY seq ASC`,
		transactionID)
}

// GetByTransactionForUpdate locks the transaction's entries inside tx.
func (r *EntryRepository) GetByTransactionForUpdate(ctx context.Context, tx usecase.Transaction, transactionID string) ([]*domain.LedgerEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.queryEntries(ctx, pgxTx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE transaction_id = $1 ORDER BY seq ASC FOR UPDATE`,
		transactionID)
}

// List returns one page of entries matching the filter, newest first,
// plus the unpaginated match count.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error) {
	where := ""
	var args []any

	and := func(clause string, arg any) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.AccountID != "" {
		and("account_id = $%d", filter.AccountID)
	}
	if filter.EntityID != "" {
		and("entity_id = $%d", filter.EntityID)
	}
	if filter.TransactionID != "" {
		and("transaction_id = $%d", filter.TransactionID)
	}
	if filter.StartDate != nil {
		and("created_at >= $%d", timeToPgTimestamptz(*filter.StartDate))
	}
	if filter.EndDate != nil {
		and("created_at <= $%d", timeToPgTimestamptz(*filter.EndDate))
	}
	if filter.ExcludeReversed {
		and("is_reversed = $%d", false)
	}

	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, mapPgError(err)
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries` + where +
		fmt.Sprintf(` ORDER BY seq DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	entries, err := r.queryEntries(ctx, r.pool, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// AccountBalance sums POSTED, non-reversed entries for the account,
// credits positive and debits negative, optionally up to asOf.
func (r *EntryRepository) AccountBalance(ctx context.Context, accountID, entityID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND entity_id = $2 AND status = 'POSTED' AND is_reversed = FALSE`
	args := []any{accountID, entityID}

	if asOf != nil {
		query += ` AND created_at <= $3`
		args = append(args, timeToPgTimestamptz(*asOf))
	}

	var balance pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, mapPgError(err)
	}

	return numericToDecimal(balance), nil
}

func (r *EntryRepository) queryEntries(ctx context.Context, db dbtx, query string, args ...any) ([]*domain.LedgerEntry, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, mapPgError(rows.Err())
}
