package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneybook-app/moneybook/internal/domain"
)

// TemplateRepository implements usecase.TemplateRepository.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

const templateColumns = `
	id, user_id, ledger_type, name, amount, cycle, billing_day,
	is_fixed_income, is_card_included, reflect_to_liquid_asset,
	investment_target_category, category, owner, created_at, updated_at
`

// Create inserts a new recurring template.
func (r *TemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) error {
	query := `
		INSERT INTO recurring_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		template.ID,
		template.UserID,
		string(template.LedgerType),
		template.Name,
		decimalToNumeric(template.Amount),
		string(template.Cycle),
		template.BillingDay,
		template.IsFixedIncome,
		template.IsCardIncluded,
		template.ReflectToLiquidAsset,
		template.InvestmentTargetCategory,
		template.Category,
		template.Owner,
		timeToPgTimestamptz(template.CreatedAt),
		timeToPgTimestamptz(template.UpdatedAt),
	)

	return err
}

// GetByID retrieves a template by ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*domain.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM recurring_templates WHERE id = $1`

	template, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}

	return template, nil
}

// Update updates a template.
func (r *TemplateRepository) Update(ctx context.Context, template *domain.RecurringTemplate) error {
	query := `
		UPDATE recurring_templates
		SET name = $2, amount = $3, billing_day = $4,
		    is_fixed_income = $5, is_card_included = $6,
		    reflect_to_liquid_asset = $7, category = $8, owner = $9,
		    updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		template.ID,
		template.Name,
		decimalToNumeric(template.Amount),
		template.BillingDay,
		template.IsFixedIncome,
		template.IsCardIncluded,
		template.ReflectToLiquidAsset,
		template.Category,
		template.Owner,
		timeToPgTimestamptz(template.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	return nil
}

// Delete deletes a template by ID.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	return nil
}

// ListByUser retrieves a user's templates for one ledger type.
func (r *TemplateRepository) ListByUser(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE user_id = $1 AND ledger_type = $2
		ORDER BY created_at, id
	`

	return r.list(ctx, query, userID, string(ledgerType))
}

// ListMonthly retrieves the monthly templates that feed the settlement.
func (r *TemplateRepository) ListMonthly(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE user_id = $1 AND ledger_type = $2 AND cycle = 'monthly'
		ORDER BY billing_day, id
	`

	return r.list(ctx, query, userID, string(ledgerType))
}

// ListUserIDsWithMonthly retrieves every user owning at least one monthly
// template. The auto-close worker iterates this set.
func (r *TemplateRepository) ListUserIDsWithMonthly(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM recurring_templates
		WHERE cycle = 'monthly'
		ORDER BY user_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

func (r *TemplateRepository) list(ctx context.Context, query string, args ...any) ([]*domain.RecurringTemplate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.RecurringTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

func scanTemplate(row pgx.Row) (*domain.RecurringTemplate, error) {
	var t domain.RecurringTemplate
	var ledgerType, cycle string
	var amount pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&ledgerType,
		&t.Name,
		&amount,
		&cycle,
		&t.BillingDay,
		&t.IsFixedIncome,
		&t.IsCardIncluded,
		&t.ReflectToLiquidAsset,
		&t.InvestmentTargetCategory,
		&t.Category,
		&t.Owner,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.LedgerType = domain.LedgerType(ledgerType)
	t.Cycle = domain.Cycle(cycle)
	t.Amount = numericToDecimal(amount)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
