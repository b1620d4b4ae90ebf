package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// TemplateResponse represents a recurring template in API responses.
type TemplateResponse struct {
	ID                       string          `json:"id"`
	UserID                   string          `json:"user_id"`
	LedgerType               string          `json:"ledger_type"`
	Name                     string          `json:"name"`
	Amount                   decimal.Decimal `json:"amount"`
	Cycle                    string          `json:"cycle"`
	BillingDay               int             `json:"billing_day"`
	IsFixedIncome            bool            `json:"is_fixed_income"`
	IsCardIncluded           bool            `json:"is_card_included"`
	ReflectToLiquidAsset     bool            `json:"reflect_to_liquid_asset"`
	InvestmentTargetCategory string          `json:"investment_target_category,omitempty"`
	Category                 string          `json:"category"`
	Owner                    string          `json:"owner,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// TemplateFromDomain converts a domain template to a response.
func TemplateFromDomain(t *domain.RecurringTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:                       t.ID,
		UserID:                   t.UserID,
		LedgerType:               string(t.LedgerType),
		Name:                     t.Name,
		Amount:                   t.Amount,
		Cycle:                    string(t.Cycle),
		BillingDay:               t.BillingDay,
		IsFixedIncome:            t.IsFixedIncome,
		IsCardIncluded:           t.IsCardIncluded,
		ReflectToLiquidAsset:     t.ReflectToLiquidAsset,
		InvestmentTargetCategory: t.InvestmentTargetCategory,
		Category:                 t.Category,
		Owner:                    t.Owner,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

// TemplatesFromDomain converts domain templates to responses.
func TemplatesFromDomain(templates []*domain.RecurringTemplate) []*TemplateResponse {
	result := make([]*TemplateResponse, len(templates))
	for i, t := range templates {
		result[i] = TemplateFromDomain(t)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	LedgerType       string          `json:"ledger_type"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	OccurredAt       time.Time       `json:"occurred_at"`
	Category         string          `json:"category"`
	EntrySource      string          `json:"entry_source"`
	ReflectedAmount  decimal.Decimal `json:"reflected_amount"`
	SourceTemplateID string          `json:"source_template_id,omitempty"`
	SettlementMonth  string          `json:"settlement_month"`
	CreatedAt        time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		LedgerType:       string(e.LedgerType),
		Name:             e.Name,
		Amount:           e.Amount,
		OccurredAt:       e.OccurredAt,
		Category:         e.Category,
		EntrySource:      string(e.EntrySource),
		ReflectedAmount:  e.ReflectedAmount,
		SourceTemplateID: e.SourceTemplateID,
		SettlementMonth:  e.SettlementMonth,
		CreatedAt:        e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	ValuationDate time.Time       `json:"valuation_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AssetFromDomain converts a domain asset to a response.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Name:          a.Name,
		Category:      string(a.Category),
		CurrentValue:  a.CurrentValue,
		ValuationDate: a.ValuationDate,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.Asset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// SettlementStatusResponse reports whether a key is settled.
type SettlementStatusResponse struct {
	UserID     string `json:"user_id"`
	LedgerType string `json:"ledger_type"`
	Month      string `json:"month"`
	Settled    bool   `json:"settled"`
}

// SettleResponse represents the outcome of one settle call.
type SettleResponse struct {
	TargetMonth        string          `json:"target_month"`
	CreatedCount       int             `json:"created_count"`
	SkippedCount       int             `json:"skipped_count"`
	ReflectedCount     int             `json:"reflected_count"`
	TotalSettledAmount decimal.Decimal `json:"total_settled_amount"`
}

// SettleFromSummary converts a settle summary to a response.
func SettleFromSummary(s *usecase.SettleSummary) *SettleResponse {
	return &SettleResponse{
		TargetMonth:        s.TargetMonth,
		CreatedCount:       s.CreatedCount,
		SkippedCount:       s.SkippedCount,
		ReflectedCount:     s.ReflectedCount,
		TotalSettledAmount: s.TotalSettledAmount,
	}
}

// RollbackResponse represents the outcome of one rollback call.
type RollbackResponse struct {
	TargetMonth    string          `json:"target_month"`
	DeletedCount   int             `json:"deleted_count"`
	ReversedAmount decimal.Decimal `json:"reversed_amount"`
}

// RollbackFromSummary converts a rollback summary to a response.
func RollbackFromSummary(s *usecase.RollbackSummary) *RollbackResponse {
	return &RollbackResponse{
		TargetMonth:    s.TargetMonth,
		DeletedCount:   s.DeletedCount,
		ReversedAmount: s.ReversedAmount,
	}
}

// ErrorResponse represents an error in API responses. Code is one of
// VALIDATION, ALREADY_SETTLED, NOT_SETTLED, CONFLICT, NOT_FOUND or
// STORAGE_ERROR.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
