package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// SettlementRequest identifies one settlement key. The ledger type comes
// from the URL; user and month come from the body.
type SettlementRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

// CreateTemplateRequest represents a request to create a recurring template.
type CreateTemplateRequest struct {
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
}

// ToUseCaseInput converts to use case input.
func (r *CreateTemplateRequest) ToUseCaseInput() usecase.CreateTemplateInput {
	return usecase.CreateTemplateInput{
		UserID:                   r.UserID,
		LedgerType:               domain.LedgerType(r.LedgerType),
		Name:                     r.Name,
		Amount:                   r.Amount,
		Cycle:                    domain.Cycle(r.Cycle),
		BillingDay:               r.BillingDay,
		IsFixedIncome:            r.IsFixedIncome,
		IsCardIncluded:           r.IsCardIncluded,
		ReflectToLiquidAsset:     r.ReflectToLiquidAsset,
		InvestmentTargetCategory: r.InvestmentTargetCategory,
		Category:                 r.Category,
		Owner:                    r.Owner,
	}
}

// UpdateTemplateRequest represents a request to update a recurring template.
type UpdateTemplateRequest struct {
	Name                 string          `json:"name"`
	Amount               decimal.Decimal `json:"amount"`
	BillingDay           int             `json:"billing_day"`
	IsFixedIncome        bool            `json:"is_fixed_income"`
	IsCardIncluded       bool            `json:"is_card_included"`
	ReflectToLiquidAsset bool            `json:"reflect_to_liquid_asset"`
	Category             string          `json:"category"`
	Owner                string          `json:"owner,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTemplateRequest) ToUseCaseInput(id string) usecase.UpdateTemplateInput {
	return usecase.UpdateTemplateInput{
		ID:                   id,
		Name:                 r.Name,
		Amount:               r.Amount,
		BillingDay:           r.BillingDay,
		IsFixedIncome:        r.IsFixedIncome,
		IsCardIncluded:       r.IsCardIncluded,
		ReflectToLiquidAsset: r.ReflectToLiquidAsset,
		Category:             r.Category,
		Owner:                r.Owner,
	}
}

// CreateEntryRequest represents a request to record a manual ledger entry.
type CreateEntryRequest struct {
	UserID     string          `json:"user_id"`
	LedgerType string          `json:"ledger_type"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
	Category   string          `json:"category"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		UserID:     r.UserID,
		LedgerType: domain.LedgerType(r.LedgerType),
		Name:       r.Name,
		Amount:     r.Amount,
		OccurredAt: r.OccurredAt,
		Category:   r.Category,
	}
}
