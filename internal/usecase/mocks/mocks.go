package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// MockTemplateRepository is a mock implementation of TemplateRepository.
type MockTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]*domain.RecurringTemplate

	CreateFunc                 func(ctx context.Context, template *domain.RecurringTemplate) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.RecurringTemplate, error)
	UpdateFunc                 func(ctx context.Context, template *domain.RecurringTemplate) error
	DeleteFunc                 func(ctx context.Context, id string) error
	ListByUserFunc             func(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error)
	ListMonthlyFunc            func(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error)
	ListUserIDsWithMonthlyFunc func(ctx context.Context) ([]string, error)
}

func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{
		templates: make(map[string]*domain.RecurringTemplate),
	}
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, template)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[template.ID] = template
	return nil
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id string) (*domain.RecurringTemplate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTemplateNotFound
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *domain.RecurringTemplate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, template)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[template.ID]; !ok {
		return domain.ErrTemplateNotFound
	}
	m.templates[template.ID] = template
	return nil
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *MockTemplateRepository) ListByUser(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, ledgerType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RecurringTemplate
	for _, t := range m.templates {
		if t.UserID == userID && t.LedgerType == ledgerType {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTemplateRepository) ListMonthly(ctx context.Context, userID string, ledgerType domain.LedgerType) ([]*domain.RecurringTemplate, error) {
	if m.ListMonthlyFunc != nil {
		return m.ListMonthlyFunc(ctx, userID, ledgerType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RecurringTemplate
	for _, t := range m.templates {
		if t.UserID == userID && t.LedgerType == ledgerType && t.Cycle == domain.CycleMonthly {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTemplateRepository) ListUserIDsWithMonthly(ctx context.Context) ([]string, error) {
	if m.ListUserIDsWithMonthlyFunc != nil {
		return m.ListUserIDsWithMonthlyFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, t := range m.templates {
		if t.Cycle == domain.CycleMonthly && !seen[t.UserID] {
			seen[t.UserID] = true
			out = append(out, t.UserID)
		}
	}
	return out, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	DeleteFunc                func(ctx context.Context, tx usecase.Transaction, id string) (bool, error)
	ExistsAutoForTemplateFunc func(ctx context.Context, tx usecase.Transaction, userID, templateID, month string) (bool, error)
	ListByMonthFunc           func(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) ([]*domain.LedgerEntry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func (m *MockEntryRepository) ExistsAutoForTemplate(ctx context.Context, tx usecase.Transaction, userID, templateID, month string) (bool, error) {
	if m.ExistsAutoForTemplateFunc != nil {
		return m.ExistsAutoForTemplateFunc(ctx, tx, userID, templateID, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.UserID == userID &&
			e.EntrySource == domain.EntrySourceAutoSettlement &&
			e.SourceTemplateID == templateID &&
			e.SettlementMonth == month {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEntryRepository) ListByMonth(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) ([]*domain.LedgerEntry, error) {
	if m.ListByMonthFunc != nil {
		return m.ListByMonthFunc(ctx, userID, ledgerType, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.LedgerType == ledgerType && e.SettlementMonth == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// Count returns the number of stored entries.
func (m *MockEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset

	GetByIDFunc          func(ctx context.Context, id string) (*domain.Asset, error)
	ListByUserFunc       func(ctx context.Context, userID string) ([]*domain.Asset, error)
	ListLiquidByUserFunc func(ctx context.Context, userID string) ([]*domain.Asset, error)
	AdjustValueFunc      func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]*domain.Asset),
	}
}

// Add seeds an asset into the mock store.
func (m *MockAssetRepository) Add(asset *domain.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Asset
	for _, a := range m.assets {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAssetRepository) ListLiquidByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if m.ListLiquidByUserFunc != nil {
		return m.ListLiquidByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Asset
	for _, a := range m.assets {
		if a.UserID == userID && a.Category.Liquid() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAssetRepository) AdjustValue(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.AdjustValueFunc != nil {
		return m.AdjustValueFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return domain.ErrAssetNotFound
	}
	a.CurrentValue = a.CurrentValue.Add(delta)
	a.UpdatedAt = updatedAt
	return nil
}

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.SettlementRecord

	GetActiveFunc    func(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*domain.SettlementRecord, error)
	CreateFunc       func(ctx context.Context, tx usecase.Transaction, record *domain.SettlementRecord) error
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.SettlementStatus, version int64, updatedAt time.Time) error
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		records: make(map[string]*domain.SettlementRecord),
	}
}

func (m *MockSettlementRepository) GetActive(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*domain.SettlementRecord, error) {
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx, userID, ledgerType, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.UserID == userID && r.LedgerType == ledgerType && r.Month == month && r.Active() {
			return r, nil
		}
	}
	return nil, domain.ErrNotSettled
}

func (m *MockSettlementRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.SettlementRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == record.UserID && r.LedgerType == record.LedgerType && r.Month == record.Month && r.Active() {
			return domain.ErrSettlementConflict
		}
	}
	m.records[record.ID] = record
	return nil
}

func (m *MockSettlementRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SettlementStatus, version int64, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.Version != version {
		return domain.ErrSettlementConflict
	}
	r.Status = status
	r.Version++
	r.UpdatedAt = updatedAt
	return nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns all stored events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Began []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Began = append(m.Began, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockCache is an in-memory implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

var errCacheMiss = errors.New("cache miss")

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
