package domain

import "errors"

var (
	// Validation errors
	ErrInvalidMonth      = errors.New("month must match YYYY-MM")
	ErrInvalidLedgerType = errors.New("ledger type must be income or expense")
	ErrInvalidUserID     = errors.New("user id is required")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidBillingDay = errors.New("billing day must be between 1 and 31")

	// Settlement errors
	ErrAlreadySettled     = errors.New("month is already settled")
	ErrNotSettled         = errors.New("month is not settled")
	ErrSettlementConflict = errors.New("settlement record was modified concurrently")
	ErrNoLiquidAsset      = errors.New("no liquid asset available for reflection")

	// Store lookup errors
	ErrTemplateNotFound = errors.New("recurring template not found")
	ErrEntryNotFound    = errors.New("ledger entry not found")
	ErrAssetNotFound    = errors.New("asset not found")

	// ErrAutoEntryImmutable guards auto-generated entries from manual
	// deletion; only a settlement rollback may remove them.
	ErrAutoEntryImmutable = errors.New("auto-settlement entries can only be removed by rollback")
)
