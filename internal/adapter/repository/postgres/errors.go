package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chainledger/chainledger/internal/domain"
)

// PostgreSQL error codes the ledger cares about.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrUniqueViolation      = "23505"
)

// mapPgError translates store-level failures into the domain taxonomy.
// Serialization failures mean two writers raced for the chain head; the
// aborted one surfaces as a retryable conflict. A unique violation on
// the hash column means the exact same content was already chained.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrSerializationFailure, pgErrDeadlock:
		return domain.ErrTransactionConflict
	case pgErrUniqueViolation:
		if pgErr.ConstraintName == "ledger_entries_hash_key" {
			return domain.ErrHashCollision
		}
	}

	return err
}
