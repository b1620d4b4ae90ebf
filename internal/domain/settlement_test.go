package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlementRecord_Active(t *testing.T) {
	settled := SettlementRecord{Status: SettlementStatusSettled}
	if !settled.Active() {
		t.Error("settled record should be active")
	}

	rolledBack := SettlementRecord{Status: SettlementStatusRolledBack}
	if rolledBack.Active() {
		t.Error("rolled back record should not be active")
	}
}

func TestSettlementRecord_ReversedAmount(t *testing.T) {
	rec := SettlementRecord{
		AppliedDeltas: []AppliedDelta{
			{AssetID: "asset-1", Delta: decimal.NewFromInt(3000000)},
			{AssetID: "asset-1", Delta: decimal.NewFromInt(-50000)},
		},
	}

	if got := rec.ReversedAmount(); !got.Equal(decimal.NewFromInt(3050000)) {
		t.Errorf("ReversedAmount() = %s, want 3050000", got)
	}

	empty := SettlementRecord{}
	if !empty.ReversedAmount().Equal(decimal.Zero) {
		t.Errorf("ReversedAmount() of empty record = %s, want 0", empty.ReversedAmount())
	}
}
