package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
)

// TemplateRepository defines data access for recurring templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.RecurringTemplate) error
	GetByID(ctx context.Context, id string) (*domain.RecurringTemplate, error)
	Update(ctx context.Context, template *domain.RecurringTemplate) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error)
	// ListMonthly returns only cycle=monthly templates, the settlement input set.
	ListMonthly(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error)
	// ListUserIDsWithMonthly returns every user owning at least one monthly template.
	ListUserIDsWithMonthly(ctx context.Context) ([]string, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	// Delete removes an entry by id and reports whether a row was deleted.
	Delete(ctx context.Context, tx Transaction, id string) (bool, error)
	// ExistsAutoForTemplate reports whether an auto-settlement entry already
	// exists for (user, source template, settlement month).
	ExistsAutoForTemplate(ctx context.Context, tx Transaction, userID, templateID, month string) (bool, error)
	ListByMonth(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) ([]*domain.LedgerEntry, error)
}

// AssetRepository defines data access for assets.
type AssetRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error)
	// ListLiquidByUser returns the cash/deposit assets eligible as reflection
	// targets, ordered by valuation date descending then id ascending.
	ListLiquidByUser(ctx context.Context, userID string) ([]*domain.Asset, error)
	// AdjustValue applies a signed delta to an asset's current value.
	AdjustValue(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// SettlementRepository defines data access for settlement records.
type SettlementRepository interface {
	// GetActive returns the status=settled record for the key, or
	// domain.ErrNotSettled when none exists.
	GetActive(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*domain.SettlementRecord, error)
	// Create persists a new settled record. A concurrent winner for the same
	// key surfaces as domain.ErrSettlementConflict.
	Create(ctx context.Context, tx Transaction, record *domain.SettlementRecord) error
	// UpdateStatus flips the record status iff the stored version still
	// matches; a mismatch surfaces as domain.ErrSettlementConflict.
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.SettlementStatus, version int64, updatedAt time.Time) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
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

// SettlementMetrics records settlement outcomes for observability.
type SettlementMetrics interface {
	SettleCompleted(ledgerType string, created, skipped, reflected int, settledAmount decimal.Decimal)
	RollbackCompleted(ledgerType string, deleted int, reversedAmount decimal.Decimal)
	ConflictObserved(ledgerType string)
}
