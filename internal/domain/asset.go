package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory classifies an asset. Only liquid categories are settlement
// reflection targets.
type AssetCategory string

const (
	AssetCategoryCash       AssetCategory = "cash"
	AssetCategoryDeposit    AssetCategory = "deposit"
	AssetCategoryStock      AssetCategory = "stock"
	AssetCategoryRealEstate AssetCategory = "real_estate"
	AssetCategoryPension    AssetCategory = "pension"
)

// Liquid reports whether the category holds spendable cash.
func (c AssetCategory) Liquid() bool {
	return c == AssetCategoryCash || c == AssetCategoryDeposit
}

// Asset is a user-owned asset record. The settlement engine mutates
// CurrentValue of liquid assets only.
type Asset struct {
	ID            string
	UserID        string
	Name          string
	Category      AssetCategory
	CurrentValue  decimal.Decimal
	ValuationDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
