package usecase

import (
	"context"

	"github.com/chainledger/chainledger/internal/domain"
)

// EntryUseCase serves read-only entry queries.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

// ListEntriesResult pairs one page of entries with the unpaginated total.
type ListEntriesResult struct {
	Entries []*domain.LedgerEntry
	Total   int64
}

// ListEntries returns entries matching the filter, newest first, with
// the total match count for pagination.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter domain.EntryFilter) (*ListEntriesResult, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	entries, total, err := uc.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListEntriesResult{
		Entries: entries,
		Total:   total,
	}, nil
}
