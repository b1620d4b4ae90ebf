package domain

import "time"

// Event types
const (
	EventTypeSettlementSettled    = "settlement.settled"
	EventTypeSettlementRolledBack = "settlement.rolled_back"
)

// Aggregate types
const (
	AggregateTypeSettlement = "settlement"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// SettlementSettledEvent payload
type SettlementSettledEvent struct {
	UserID        string `json:"user_id"`
	LedgerType    string `json:"ledger_type"`
	Month         string `json:"month"`
	CreatedCount  int    `json:"created_count"`
	SettledAmount string `json:"settled_amount"`
}

// SettlementRolledBackEvent payload
type SettlementRolledBackEvent struct {
	UserID         string `json:"user_id"`
	LedgerType     string `json:"ledger_type"`
	Month          string `json:"month"`
	DeletedCount   int    `json:"deleted_count"`
	ReversedAmount string `json:"reversed_amount"`
}
