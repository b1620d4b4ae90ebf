package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// SettlementRepository implements usecase.SettlementRepository. A partial
// unique index on (user_id, ledger_type, month) WHERE status = 'settled'
// backs the at-most-one-active-record invariant; the insert race loser gets
// a unique violation which surfaces as a settlement conflict.
type SettlementRepository struct {
	pool querier
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return newSettlementRepositoryWithQuerier(pool)
}

func newSettlementRepositoryWithQuerier(pool querier) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// GetActive retrieves the status=settled record for the key.
func (r *SettlementRepository) GetActive(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*domain.SettlementRecord, error) {
	query := `
		SELECT id, user_id, ledger_type, month, status, version,
		       generated_entry_ids, applied_deltas, created_at, updated_at
		FROM settlement_records
		WHERE user_id = $1 AND ledger_type = $2 AND month = $3 AND status = 'settled'
	`

	record, err := scanSettlementRecord(r.pool.QueryRow(ctx, query, userID, string(ledgerType), month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotSettled
		}
		return nil, err
	}

	return record, nil
}

// Create inserts a new settled record within a transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.SettlementRecord) error {
	entryIDs, err := json.Marshal(record.GeneratedEntryIDs)
	if err != nil {
		return err
	}

	deltas, err := json.Marshal(record.AppliedDeltas)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO settlement_records (
			id, user_id, ledger_type, month, status, version,
			generated_entry_ids, applied_deltas, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = txOrPool(tx, r.pool).Exec(ctx, query,
		record.ID,
		record.UserID,
		string(record.LedgerType),
		record.Month,
		string(record.Status),
		record.Version,
		entryIDs,
		deltas,
		timeToPgTimestamptz(record.CreatedAt),
		timeToPgTimestamptz(record.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrSettlementConflict
		}
		return err
	}

	return nil
}

// UpdateStatus flips the record status iff the stored version still matches.
func (r *SettlementRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SettlementStatus, version int64, updatedAt time.Time) error {
	query := `
		UPDATE settlement_records
		SET status = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4
	`

	tag, err := txOrPool(tx, r.pool).Exec(ctx, query, id, string(status), timeToPgTimestamptz(updatedAt), version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementConflict
	}

	return nil
}

func scanSettlementRecord(row pgx.Row) (*domain.SettlementRecord, error) {
	var rec domain.SettlementRecord
	var ledgerType, status string
	var entryIDs, deltas []byte
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&ledgerType,
		&rec.Month,
		&status,
		&rec.Version,
		&entryIDs,
		&deltas,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if entryIDs != nil {
		if err := json.Unmarshal(entryIDs, &rec.GeneratedEntryIDs); err != nil {
			return nil, err
		}
	}
	if deltas != nil {
		if err := json.Unmarshal(deltas, &rec.AppliedDeltas); err != nil {
			return nil, err
		}
	}

	rec.LedgerType = domain.LedgerType(ledgerType)
	rec.Status = domain.SettlementStatus(status)
	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}
