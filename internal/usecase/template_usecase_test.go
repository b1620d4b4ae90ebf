package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
	"github.com/moneybook-app/moneybook/internal/usecase/mocks"
)

func TestTemplateUseCase_CreateTemplate(t *testing.T) {
	valid := usecase.CreateTemplateInput{
		UserID:     "user-1",
		LedgerType: domain.LedgerTypeExpense,
		Name:       "rent",
		Amount:     decimal.NewFromInt(800000),
		Cycle:      domain.CycleMonthly,
		BillingDay: 1,
		Category:   "housing",
	}

	t.Run("creates valid template", func(t *testing.T) {
		repo := mocks.NewMockTemplateRepository()
		uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

		created, err := uc.CreateTemplate(context.Background(), valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("expected generated id")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("expected timestamps set")
		}

		stored, err := repo.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("template not stored: %v", err)
		}
		if stored.Name != "rent" {
			t.Errorf("Name = %s, want rent", stored.Name)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(in *usecase.CreateTemplateInput)
			wantErr error
		}{
			{"missing user", func(in *usecase.CreateTemplateInput) { in.UserID = "" }, domain.ErrInvalidUserID},
			{"bad ledger type", func(in *usecase.CreateTemplateInput) { in.LedgerType = "saving" }, domain.ErrInvalidLedgerType},
			{"negative amount", func(in *usecase.CreateTemplateInput) { in.Amount = decimal.NewFromInt(-1) }, domain.ErrInvalidAmount},
			{"billing day zero", func(in *usecase.CreateTemplateInput) { in.BillingDay = 0 }, domain.ErrInvalidBillingDay},
			{"billing day 32", func(in *usecase.CreateTemplateInput) { in.BillingDay = 32 }, domain.ErrInvalidBillingDay},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := mocks.NewMockTemplateRepository()
				uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

				in := valid
				tt.mutate(&in)

				if _, err := uc.CreateTemplate(context.Background(), in); err != tt.wantErr {
					t.Errorf("CreateTemplate() = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		// Placeholders like a paused subscription keep their slot at zero.
		repo := mocks.NewMockTemplateRepository()
		uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

		in := valid
		in.Amount = decimal.Zero

		created, err := uc.CreateTemplate(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created.Amount.IsZero() {
			t.Errorf("Amount = %s, want 0", created.Amount)
		}
	})
}

func TestTemplateUseCase_UpdateTemplate(t *testing.T) {
	seed := func(repo *mocks.MockTemplateRepository) {
		repo.Create(context.Background(), &domain.RecurringTemplate{
			ID:         "tpl-1",
			UserID:     "user-1",
			LedgerType: domain.LedgerTypeExpense,
			Name:       "rent",
			Amount:     decimal.NewFromInt(800000),
			Cycle:      domain.CycleMonthly,
			BillingDay: 1,
		})
	}

	t.Run("updates fields", func(t *testing.T) {
		repo := mocks.NewMockTemplateRepository()
		seed(repo)
		uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

		updated, err := uc.UpdateTemplate(context.Background(), usecase.UpdateTemplateInput{
			ID:         "tpl-1",
			Name:       "rent and utilities",
			Amount:     decimal.NewFromInt(900000),
			BillingDay: 5,
			Category:   "housing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Name != "rent and utilities" || updated.BillingDay != 5 {
			t.Errorf("update not applied: %+v", updated)
		}
		if !updated.Amount.Equal(decimal.NewFromInt(900000)) {
			t.Errorf("Amount = %s, want 900000", updated.Amount)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := mocks.NewMockTemplateRepository()
		uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

		_, err := uc.UpdateTemplate(context.Background(), usecase.UpdateTemplateInput{
			ID:         "missing",
			Name:       "x",
			Amount:     decimal.NewFromInt(1),
			BillingDay: 1,
		})
		if err != domain.ErrTemplateNotFound {
			t.Fatalf("expected ErrTemplateNotFound, got %v", err)
		}
	})

	t.Run("invalid update rejected", func(t *testing.T) {
		repo := mocks.NewMockTemplateRepository()
		seed(repo)
		uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

		_, err := uc.UpdateTemplate(context.Background(), usecase.UpdateTemplateInput{
			ID:         "tpl-1",
			Name:       "rent",
			Amount:     decimal.NewFromInt(800000),
			BillingDay: 40,
		})
		if err != domain.ErrInvalidBillingDay {
			t.Fatalf("expected ErrInvalidBillingDay, got %v", err)
		}
	})
}

func TestTemplateUseCase_ListTemplates(t *testing.T) {
	repo := mocks.NewMockTemplateRepository()
	repo.Create(context.Background(), &domain.RecurringTemplate{
		ID: "tpl-1", UserID: "user-1", LedgerType: domain.LedgerTypeExpense,
		Name: "rent", Amount: decimal.NewFromInt(1), Cycle: domain.CycleMonthly, BillingDay: 1,
	})
	repo.Create(context.Background(), &domain.RecurringTemplate{
		ID: "tpl-2", UserID: "user-1", LedgerType: domain.LedgerTypeIncome,
		Name: "salary", Amount: decimal.NewFromInt(1), Cycle: domain.CycleMonthly, BillingDay: 25,
	})
	uc := usecase.NewTemplateUseCase(repo, mocks.NewMockIDGenerator())

	expenses, err := uc.ListTemplates(context.Background(), "user-1", domain.LedgerTypeExpense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expenses) != 1 || expenses[0].ID != "tpl-1" {
		t.Errorf("expected only tpl-1, got %+v", expenses)
	}

	if _, err := uc.ListTemplates(context.Background(), "", domain.LedgerTypeExpense); err != domain.ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := uc.ListTemplates(context.Background(), "user-1", "saving"); err != domain.ErrInvalidLedgerType {
		t.Errorf("expected ErrInvalidLedgerType, got %v", err)
	}
}
