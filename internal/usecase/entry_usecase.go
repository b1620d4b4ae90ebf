package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
)

// EntryUseCase handles manual ledger entry operations. Auto-settlement
// entries are created and deleted exclusively by the settlement engine.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	idGen     IDGenerator
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(txManager TransactionManager, entryRepo EntryRepository, idGen IDGenerator) *EntryUseCase {
	return &EntryUseCase{txManager: txManager, entryRepo: entryRepo, idGen: idGen}
}

// CreateEntryInput represents input for creating a manual ledger entry.
type CreateEntryInput struct {
	UserID     string
	LedgerType domain.LedgerType
	Name       string
	Amount     decimal.Decimal
	OccurredAt time.Time
	Category   string
}

// CreateEntry creates a manual ledger entry.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.LedgerEntry, error) {
	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		UserID:          input.UserID,
		LedgerType:      input.LedgerType,
		Name:            input.Name,
		Amount:          input.Amount,
		OccurredAt:      input.OccurredAt,
		Category:        input.Category,
		EntrySource:     domain.EntrySourceManual,
		ReflectedAmount: decimal.Zero,
		SettlementMonth: domain.MonthOf(input.OccurredAt).String(),
		CreatedAt:       now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// DeleteEntry deletes a manual entry. Auto-settlement entries are refused;
// they are only removed by a settlement rollback.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if entry.EntrySource == domain.EntrySourceAutoSettlement {
		return domain.ErrAutoEntryImmutable
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	deleted, err := uc.entryRepo.Delete(ctx, tx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrEntryNotFound
	}

	return tx.Commit(ctx)
}

// ListEntriesByMonth lists a user's entries for one calendar month.
func (uc *EntryUseCase) ListEntriesByMonth(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) ([]*domain.LedgerEntry, error) {
	m, err := validateKey(userID, ledgerType, month)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByMonth(ctx, userID, ledgerType, m.String())
}
