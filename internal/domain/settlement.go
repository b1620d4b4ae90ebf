package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the state of a settlement record. A (user, ledger
// type, month) key cycles unsettled -> settled -> rolled_back -> settled;
// Settle and Rollback are the only transitions.
type SettlementStatus string

const (
	SettlementStatusSettled    SettlementStatus = "settled"
	SettlementStatusRolledBack SettlementStatus = "rolled_back"
)

// AppliedDelta records one signed balance mutation exactly as applied, so a
// rollback can reverse it value-for-value regardless of how the target asset
// changed afterwards.
type AppliedDelta struct {
	AssetID string          `json:"asset_id"`
	Delta   decimal.Decimal `json:"delta"`
}

// SettlementRecord tracks one completed close for a (user, ledger type,
// month) key: the exact entries generated and deltas applied. At most one
// record per key is in status settled at any time.
type SettlementRecord struct {
	ID         string
	UserID     string
	LedgerType LedgerType
	Month      string
	Status     SettlementStatus
	// Version is the optimistic-concurrency token; Rollback flips the
	// status only when the stored version still matches.
	Version           int64
	GeneratedEntryIDs []string
	AppliedDeltas     []AppliedDelta
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Active reports whether the record blocks another Settle for its key.
func (r *SettlementRecord) Active() bool {
	return r.Status == SettlementStatusSettled
}

// ReversedAmount is the sum of absolute deltas a rollback of this record
// reverses.
func (r *SettlementRecord) ReversedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.AppliedDeltas {
		total = total.Add(d.Delta.Abs())
	}
	return total
}
