package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecurringTemplate_EligibleForSettlement(t *testing.T) {
	tests := []struct {
		name     string
		template RecurringTemplate
		want     bool
	}{
		{
			name: "fixed monthly income",
			template: RecurringTemplate{
				LedgerType:    LedgerTypeIncome,
				Cycle:         CycleMonthly,
				IsFixedIncome: true,
			},
			want: true,
		},
		{
			name: "non-fixed monthly income excluded",
			template: RecurringTemplate{
				LedgerType:    LedgerTypeIncome,
				Cycle:         CycleMonthly,
				IsFixedIncome: false,
			},
			want: false,
		},
		{
			name: "monthly expense",
			template: RecurringTemplate{
				LedgerType: LedgerTypeExpense,
				Cycle:      CycleMonthly,
			},
			want: true,
		},
		{
			name: "card-included expense excluded",
			template: RecurringTemplate{
				LedgerType:     LedgerTypeExpense,
				Cycle:          CycleMonthly,
				IsCardIncluded: true,
			},
			want: false,
		},
		{
			name: "yearly template never settles",
			template: RecurringTemplate{
				LedgerType:    LedgerTypeIncome,
				Cycle:         CycleYearly,
				IsFixedIncome: true,
			},
			want: false,
		},
		{
			name: "one-time template never settles",
			template: RecurringTemplate{
				LedgerType: LedgerTypeExpense,
				Cycle:      CycleOneTime,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.template.EligibleForSettlement(); got != tt.want {
				t.Errorf("EligibleForSettlement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecurringTemplate_SettlementDelta(t *testing.T) {
	income := RecurringTemplate{LedgerType: LedgerTypeIncome, Amount: decimal.NewFromInt(3000000)}
	if !income.SettlementDelta().Equal(decimal.NewFromInt(3000000)) {
		t.Errorf("income delta = %s, want 3000000", income.SettlementDelta())
	}

	expense := RecurringTemplate{LedgerType: LedgerTypeExpense, Amount: decimal.NewFromInt(50000)}
	if !expense.SettlementDelta().Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("expense delta = %s, want -50000", expense.SettlementDelta())
	}
}

func TestRecurringTemplate_Validate(t *testing.T) {
	tests := []struct {
		name        string
		template    RecurringTemplate
		expectedErr error
	}{
		{
			name: "valid monthly template",
			template: RecurringTemplate{
				UserID:     "user-1",
				LedgerType: LedgerTypeExpense,
				Amount:     decimal.NewFromInt(100),
				Cycle:      CycleMonthly,
				BillingDay: 15,
			},
		},
		{
			name: "missing user",
			template: RecurringTemplate{
				LedgerType: LedgerTypeExpense,
				Cycle:      CycleMonthly,
				BillingDay: 15,
			},
			expectedErr: ErrInvalidUserID,
		},
		{
			name: "bad ledger type",
			template: RecurringTemplate{
				UserID:     "user-1",
				LedgerType: "saving",
				Cycle:      CycleMonthly,
				BillingDay: 15,
			},
			expectedErr: ErrInvalidLedgerType,
		},
		{
			name: "negative amount",
			template: RecurringTemplate{
				UserID:     "user-1",
				LedgerType: LedgerTypeIncome,
				Amount:     decimal.NewFromInt(-1),
				Cycle:      CycleMonthly,
				BillingDay: 15,
			},
			expectedErr: ErrInvalidAmount,
		},
		{
			name: "billing day out of range",
			template: RecurringTemplate{
				UserID:     "user-1",
				LedgerType: LedgerTypeIncome,
				Cycle:      CycleMonthly,
				BillingDay: 32,
			},
			expectedErr: ErrInvalidBillingDay,
		},
		{
			name: "yearly template needs no billing day",
			template: RecurringTemplate{
				UserID:     "user-1",
				LedgerType: LedgerTypeExpense,
				Cycle:      CycleYearly,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.template.Validate()
			if err != tt.expectedErr {
				t.Errorf("Validate() = %v, want %v", err, tt.expectedErr)
			}
		})
	}
}
