package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `
	id, user_id, ledger_type, name, amount, occurred_at, category,
	entry_source, reflect_to_liquid_asset, reflected_amount,
	source_template_id, settlement_month, created_at
`

// Create inserts a new ledger entry, inside tx when one is given.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := txOrPool(tx, r.pool).Exec(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.LedgerType),
		entry.Name,
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.OccurredAt),
		entry.Category,
		string(entry.EntrySource),
		entry.ReflectToLiquidAsset,
		decimalToNumeric(entry.ReflectedAmount),
		nullableString(entry.SourceTemplateID),
		entry.SettlementMonth,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// Delete removes an entry by ID and reports whether a row was deleted.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	tag, err := txOrPool(tx, r.pool).Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// ExistsAutoForTemplate reports whether an auto-settlement entry already
// exists for (user, source template, settlement month).
func (r *EntryRepository) ExistsAutoForTemplate(ctx context.Context, tx usecase.Transaction, userID, templateID, month string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE user_id = $1
			  AND source_template_id = $2
			  AND settlement_month = $3
			  AND entry_source = 'auto_settlement'
		)
	`

	var exists bool
	err := txOrPool(tx, r.pool).QueryRow(ctx, query, userID, templateID, month).Scan(&exists)

	return exists, err
}

// ListByMonth retrieves a user's entries for one calendar month.
func (r *EntryRepository) ListByMonth(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND ledger_type = $2 AND settlement_month = $3
		ORDER BY occurred_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID, string(ledgerType), month)
	if err != nil {
		return nil, err
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

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var ledgerType, entrySource string
	var amount, reflectedAmount pgtype.Numeric
	var sourceTemplateID pgtype.Text
	var occurredAt, createdAt pgtype.Timestamptz

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&ledgerType,
		&e.Name,
		&amount,
		&occurredAt,
		&e.Category,
		&entrySource,
		&e.ReflectToLiquidAsset,
		&reflectedAmount,
		&sourceTemplateID,
		&e.SettlementMonth,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.LedgerType = domain.LedgerType(ledgerType)
	e.EntrySource = domain.EntrySource(entrySource)
	e.Amount = numericToDecimal(amount)
	e.ReflectedAmount = numericToDecimal(reflectedAmount)
	e.SourceTemplateID = sourceTemplateID.String
	e.OccurredAt = occurredAt.Time
	e.CreatedAt = createdAt.Time

	return &e, nil
}

func nullableString(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
