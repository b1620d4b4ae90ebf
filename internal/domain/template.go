package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerType distinguishes the two settlement ledgers.
type LedgerType string

const (
	LedgerTypeIncome  LedgerType = "income"
	LedgerTypeExpense LedgerType = "expense"
)

// Valid reports whether lt is a known ledger type.
func (lt LedgerType) Valid() bool {
	return lt == LedgerTypeIncome || lt == LedgerTypeExpense
}

// Cycle is the recurrence cycle of a template. Only monthly templates are
// settlement inputs.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
	CycleOneTime Cycle = "one_time"
)

// RecurringTemplate is a recurring income/expense definition. Templates are
// created and edited through the CRUD surface; the settlement engine only
// reads a snapshot of them at settlement time.
type RecurringTemplate struct {
	ID                       string
	UserID                   string
	LedgerType               LedgerType
	Name                     string
	Amount                   decimal.Decimal
	Cycle                    Cycle
	BillingDay               int
	IsFixedIncome            bool
	IsCardIncluded           bool
	ReflectToLiquidAsset     bool
	InvestmentTargetCategory string
	Category                 string
	Owner                    string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Validate checks template fields on create/update.
func (t *RecurringTemplate) Validate() error {
	if t.UserID == "" {
		return ErrInvalidUserID
	}
	if !t.LedgerType.Valid() {
		return ErrInvalidLedgerType
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if t.Cycle == CycleMonthly && (t.BillingDay < 1 || t.BillingDay > 31) {
		return ErrInvalidBillingDay
	}
	return nil
}

// EligibleForSettlement reports whether the template is an input to the
// monthly close. Card-included expenses are paid through the manual
// card-quick-entry path and must not be double-counted; incomes settle only
// when marked as fixed income.
func (t *RecurringTemplate) EligibleForSettlement() bool {
	if t.Cycle != CycleMonthly {
		return false
	}

	switch t.LedgerType {
	case LedgerTypeIncome:
		return t.IsFixedIncome
	case LedgerTypeExpense:
		return !t.IsCardIncluded
	default:
		return false
	}
}

// SettlementDelta is the signed cash effect of settling the template:
// positive for income, negative for expense.
func (t *RecurringTemplate) SettlementDelta() decimal.Decimal {
	if t.LedgerType == LedgerTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
