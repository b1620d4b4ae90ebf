package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

const assetColumns = `
	id, user_id, name, category, current_value, valuation_date,
	created_at, updated_at
`

// GetByID retrieves an asset by ID.
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

	asset, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	return asset, nil
}

// ListByUser retrieves a user's assets.
func (r *AssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	return r.list(ctx, query, userID)
}

// ListLiquidByUser retrieves the cash/deposit assets eligible as reflection
// targets, ordered by valuation date descending then id ascending.
func (r *AssetRepository) ListLiquidByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE user_id = $1 AND category IN ('cash', 'deposit')
		ORDER BY valuation_date DESC, id
	`

	return r.list(ctx, query, userID)
}

// AdjustValue applies a signed delta to an asset's current value.
func (r *AssetRepository) AdjustValue(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE assets
		SET current_value = current_value + $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := txOrPool(tx, r.pool).Exec(ctx, query, id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

func (r *AssetRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Asset, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var a domain.Asset
	var category string
	var currentValue pgtype.Numeric
	var valuationDate, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&category,
		&currentValue,
		&valuationDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Category = domain.AssetCategory(category)
	a.CurrentValue = numericToDecimal(currentValue)
	a.ValuationDate = valuationDate.Time
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
