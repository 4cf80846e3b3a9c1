package postgres

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/domain"
)

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		e            domain.LedgerEntry
		entryType    string
		status       string
		amount       pgtype.Numeric
		metadata     []byte
		createdAt    pgtype.Timestamptz
		previousHash *string
		reversalID   *string
	)

	err := row.Scan(
		&e.ID,
		&e.Sequence,
		&e.TransactionID,
		&e.AccountID,
		&e.EntityID,
		&entryType,
		&amount,
		&e.Currency,
		&e.Description,
		&metadata,
		&status,
		&createdAt,
		&e.CreatedBy,
		&e.ReferenceNumber,
		&e.Hash,
		&previousHash,
		&e.IsReversed,
		&reversalID,
	)
	if err != nil {
		return nil, err
	}

	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	e.Amount = numericToDecimal(amount)
	e.CreatedAt = createdAt.Time
	e.PreviousHash = previousHash
	e.ReversalEntryID = reversalID

	if metadata != nil {
		_ = json.Unmarshal(metadata, &e.Metadata)
	}

	return &e, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
