package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySource distinguishes user-recorded entries from those materialized by
// the settlement engine.
type EntrySource string

const (
	EntrySourceManual         EntrySource = "manual"
	EntrySourceAutoSettlement EntrySource = "auto_settlement"
)

// LedgerEntry is a dated, materialized transaction. Auto-settlement entries
// always carry SourceTemplateID and SettlementMonth equal to the month they
// were generated for, even when OccurredAt's day was clamped.
type LedgerEntry struct {
	ID                   string
	UserID               string
	LedgerType           LedgerType
	Name                 string
	Amount               decimal.Decimal
	OccurredAt           time.Time
	Category             string
	EntrySource          EntrySource
	ReflectToLiquidAsset bool
	// ReflectedAmount is the signed amount actually applied to an asset
	// balance, zero when the entry was not reflected.
	ReflectedAmount  decimal.Decimal
	SourceTemplateID string
	SettlementMonth  string
	CreatedAt        time.Time
}

// Validate checks entry fields on create.
func (e *LedgerEntry) Validate() error {
	if e.UserID == "" {
		return ErrInvalidUserID
	}
	if !e.LedgerType.Valid() {
		return ErrInvalidLedgerType
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
