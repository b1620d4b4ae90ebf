package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
)

// TemplateUseCase handles recurring template CRUD. It is a thin collaborator
// of the settlement engine; the engine itself only reads templates.
type TemplateUseCase struct {
	templateRepo TemplateRepository
	idGen        IDGenerator
}

// NewTemplateUseCase creates a new TemplateUseCase.
func NewTemplateUseCase(templateRepo TemplateRepository, idGen IDGenerator) *TemplateUseCase {
	return &TemplateUseCase{templateRepo: templateRepo, idGen: idGen}
}

// CreateTemplateInput represents input for creating a recurring template.
type CreateTemplateInput struct {
	UserID                   string
	LedgerType               domain.LedgerType
	Name                     string
	Amount                   decimal.Decimal
	Cycle                    domain.Cycle
	BillingDay               int
	IsFixedIncome            bool
	IsCardIncluded           bool
	ReflectToLiquidAsset     bool
	InvestmentTargetCategory string
	Category                 string
	Owner                    string
}

// CreateTemplate creates a recurring template.
func (uc *TemplateUseCase) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*domain.RecurringTemplate, error) {
	now := time.Now().UTC()
	template := &domain.RecurringTemplate{
		ID:                       uc.idGen.Generate(),
		UserID:                   input.UserID,
		LedgerType:               input.LedgerType,
		Name:                     input.Name,
		Amount:                   input.Amount,
		Cycle:                    input.Cycle,
		BillingDay:               input.BillingDay,
		IsFixedIncome:            input.IsFixedIncome,
		IsCardIncluded:           input.IsCardIncluded,
		ReflectToLiquidAsset:     input.ReflectToLiquidAsset,
		InvestmentTargetCategory: input.InvestmentTargetCategory,
		Category:                 input.Category,
		Owner:                    input.Owner,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// GetTemplate retrieves a template by ID.
func (uc *TemplateUseCase) GetTemplate(ctx context.Context, id string) (*domain.RecurringTemplate, error) {
	return uc.templateRepo.GetByID(ctx, id)
}

// UpdateTemplateInput represents input for updating a recurring template.
// Edits never touch past settlements; only templates live at settlement time
// are settlement inputs.
type UpdateTemplateInput struct {
	ID                   string
	Name                 string
	Amount               decimal.Decimal
	BillingDay           int
	IsFixedIncome        bool
	IsCardIncluded       bool
	ReflectToLiquidAsset bool
	Category             string
	Owner                string
}

// UpdateTemplate updates a recurring template.
func (uc *TemplateUseCase) UpdateTemplate(ctx context.Context, input UpdateTemplateInput) (*domain.RecurringTemplate, error) {
	template, err := uc.templateRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	template.Name = input.Name
	template.Amount = input.Amount
	template.BillingDay = input.BillingDay
	template.IsFixedIncome = input.IsFixedIncome
	template.IsCardIncluded = input.IsCardIncluded
	template.ReflectToLiquidAsset = input.ReflectToLiquidAsset
	template.Category = input.Category
	template.Owner = input.Owner
	template.UpdatedAt = time.Now().UTC()

	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := uc.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// DeleteTemplate deletes a recurring template.
func (uc *TemplateUseCase) DeleteTemplate(ctx context.Context, id string) error {
	return uc.templateRepo.Delete(ctx, id)
}

// ListTemplates lists templates for a user and ledger type.
func (uc *TemplateUseCase) ListTemplates(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if !ledgerType.Valid() {
		return nil, domain.ErrInvalidLedgerType
	}

	return uc.templateRepo.ListByUser(ctx, userID, ledgerType)
}
