package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/domain"
)

const statusCacheTTL = time.Minute

// SettlementUseCase is the recurring ledger settlement engine: it turns
// monthly recurring templates into dated ledger entries, applies their cash
// effect to a liquid asset, and can reverse a close exactly.
type SettlementUseCase struct {
	txManager      TransactionManager
	templateRepo   TemplateRepository
	entryRepo      EntryRepository
	assetRepo      AssetRepository
	settlementRepo SettlementRepository
	outboxRepo     OutboxRepository
	cache          Cache
	metrics        SettlementMetrics
	selector       AssetSelector
	idGen          IDGenerator
}

// SettlementConfig holds the engine's dependencies. Cache, OutboxRepo and
// Metrics are optional; Selector defaults to LatestValuationSelector.
type SettlementConfig struct {
	TxManager      TransactionManager
	TemplateRepo   TemplateRepository
	EntryRepo      EntryRepository
	AssetRepo      AssetRepository
	SettlementRepo SettlementRepository
	OutboxRepo     OutboxRepository
	Cache          Cache
	Metrics        SettlementMetrics
	Selector       AssetSelector
	IDGen          IDGenerator
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(cfg SettlementConfig) *SettlementUseCase {
	if cfg.Selector == nil {
		cfg.Selector = LatestValuationSelector
	}

	return &SettlementUseCase{
		txManager:      cfg.TxManager,
		templateRepo:   cfg.TemplateRepo,
		entryRepo:      cfg.EntryRepo,
		assetRepo:      cfg.AssetRepo,
		settlementRepo: cfg.SettlementRepo,
		outboxRepo:     cfg.OutboxRepo,
		cache:          cfg.Cache,
		metrics:        cfg.Metrics,
		selector:       cfg.Selector,
		idGen:          cfg.IDGen,
	}
}

// SettleSummary reports what one Settle call changed.
type SettleSummary struct {
	TargetMonth        string
	CreatedCount       int
	SkippedCount       int
	ReflectedCount     int
	TotalSettledAmount decimal.Decimal
}

// RollbackSummary reports what one Rollback call reversed.
type RollbackSummary struct {
	TargetMonth    string
	DeletedCount   int
	ReversedAmount decimal.Decimal
}

// CheckSettled reports whether an active settlement record exists for the
// key. Pure read, no side effects beyond a short-lived cache entry.
func (uc *SettlementUseCase) CheckSettled(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (bool, error) {
	m, err := validateKey(userID, ledgerType, month)
	if err != nil {
		return false, err
	}

	cacheKey := statusCacheKey(userID, ledgerType, m)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
			return cached == "1", nil
		}
	}

	settled := true
	if _, err := uc.settlementRepo.GetActive(ctx, userID, ledgerType, m.String()); err != nil {
		if err != domain.ErrNotSettled {
			return false, err
		}
		settled = false
	}

	if uc.cache != nil {
		value := "0"
		if settled {
			value = "1"
		}
		// Cache failures only cost the next caller a store read.
		_ = uc.cache.Set(ctx, cacheKey, value, statusCacheTTL)
	}

	return settled, nil
}

// Settle closes the given month: every eligible monthly template becomes one
// auto-settlement ledger entry, reflecting templates apply their signed
// amount to the selected liquid asset, and a settlement record captures the
// exact effects for later rollback.
//
// Retrying after a crash or timeout is safe: the per-template dedup check
// turns already-materialized templates into skips, so no entry is created
// twice and no balance is double-applied.
func (uc *SettlementUseCase) Settle(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*SettleSummary, error) {
	m, err := validateKey(userID, ledgerType, month)
	if err != nil {
		return nil, err
	}

	if _, err := uc.settlementRepo.GetActive(ctx, userID, ledgerType, m.String()); err == nil {
		return nil, domain.ErrAlreadySettled
	} else if err != domain.ErrNotSettled {
		return nil, err
	}

	templates, err := uc.templateRepo.ListMonthly(ctx, userID, ledgerType)
	if err != nil {
		return nil, err
	}

	eligible := make([]*domain.RecurringTemplate, 0, len(templates))
	for _, t := range templates {
		if t.EligibleForSettlement() {
			eligible = append(eligible, t)
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	summary := &SettleSummary{TargetMonth: m.String(), TotalSettledAmount: decimal.Zero}

	var entryIDs []string
	var deltas []domain.AppliedDelta

	// Resolved at the first non-skipped reflecting template, not up front:
	// a retry in which every reflecting template dedups to a skip must
	// still settle even if the liquid assets are gone.
	var target *domain.Asset

	for _, t := range eligible {
		exists, err := uc.entryRepo.ExistsAutoForTemplate(ctx, tx, userID, t.ID, m.String())
		if err != nil {
			return nil, err
		}
		if exists {
			summary.SkippedCount++
			continue
		}

		entry := &domain.LedgerEntry{
			ID:                   uc.idGen.Generate(),
			UserID:               userID,
			LedgerType:           ledgerType,
			Name:                 t.Name,
			Amount:               t.Amount,
			OccurredAt:           m.Date(t.BillingDay),
			Category:             t.Category,
			EntrySource:          domain.EntrySourceAutoSettlement,
			ReflectToLiquidAsset: t.ReflectToLiquidAsset,
			ReflectedAmount:      decimal.Zero,
			SourceTemplateID:     t.ID,
			SettlementMonth:      m.String(),
			CreatedAt:            now,
		}

		if t.ReflectToLiquidAsset {
			if target == nil {
				liquid, err := uc.assetRepo.ListLiquidByUser(ctx, userID)
				if err != nil {
					return nil, err
				}
				if target = uc.selector(liquid); target == nil {
					return nil, domain.ErrNoLiquidAsset
				}
			}

			delta := t.SettlementDelta()
			if err := uc.assetRepo.AdjustValue(ctx, tx, target.ID, delta, now); err != nil {
				return nil, err
			}

			entry.ReflectedAmount = delta
			deltas = append(deltas, domain.AppliedDelta{AssetID: target.ID, Delta: delta})
			summary.ReflectedCount++
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}

		entryIDs = append(entryIDs, entry.ID)
		summary.CreatedCount++
		summary.TotalSettledAmount = summary.TotalSettledAmount.Add(t.Amount)
	}

	record := &domain.SettlementRecord{
		ID:                uc.idGen.Generate(),
		UserID:            userID,
		LedgerType:        ledgerType,
		Month:             m.String(),
		Status:            domain.SettlementStatusSettled,
		Version:           1,
		GeneratedEntryIDs: entryIDs,
		AppliedDeltas:     deltas,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.settlementRepo.Create(ctx, tx, record); err != nil {
		if err == domain.ErrSettlementConflict && uc.metrics != nil {
			uc.metrics.ConflictObserved(string(ledgerType))
		}
		return nil, err
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   record.ID,
			AggregateType: domain.AggregateTypeSettlement,
			EventType:     domain.EventTypeSettlementSettled,
			Payload: map[string]any{
				"user_id":        userID,
				"ledger_type":    string(ledgerType),
				"month":          m.String(),
				"created_count":  summary.CreatedCount,
				"settled_amount": summary.TotalSettledAmount.String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateStatus(ctx, userID, ledgerType, m)

	if uc.metrics != nil {
		uc.metrics.SettleCompleted(string(ledgerType), summary.CreatedCount, summary.SkippedCount, summary.ReflectedCount, summary.TotalSettledAmount)
	}

	return summary, nil
}

// Rollback exactly reverses a prior Settle: it deletes the recorded entries
// by id and applies the inverse of each recorded delta. It never re-reads
// templates or re-queries entries by month, so template edits and manual
// asset adjustments made after the close are preserved.
func (uc *SettlementUseCase) Rollback(ctx context.Context, userID string, ledgerType domain.LedgerType, month string) (*RollbackSummary, error) {
	m, err := validateKey(userID, ledgerType, month)
	if err != nil {
		return nil, err
	}

	record, err := uc.settlementRepo.GetActive(ctx, userID, ledgerType, m.String())
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	summary := &RollbackSummary{TargetMonth: m.String(), ReversedAmount: decimal.Zero}

	for _, id := range record.GeneratedEntryIDs {
		deleted, err := uc.entryRepo.Delete(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if deleted {
			summary.DeletedCount++
		}
	}

	for _, d := range record.AppliedDeltas {
		if err := uc.assetRepo.AdjustValue(ctx, tx, d.AssetID, d.Delta.Neg(), now); err != nil {
			return nil, err
		}
		summary.ReversedAmount = summary.ReversedAmount.Add(d.Delta.Abs())
	}

	if err := uc.settlementRepo.UpdateStatus(ctx, tx, record.ID, domain.SettlementStatusRolledBack, record.Version, now); err != nil {
		if err == domain.ErrSettlementConflict && uc.metrics != nil {
			uc.metrics.ConflictObserved(string(ledgerType))
		}
		return nil, err
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   record.ID,
			AggregateType: domain.AggregateTypeSettlement,
			EventType:     domain.EventTypeSettlementRolledBack,
			Payload: map[string]any{
				"user_id":         userID,
				"ledger_type":     string(ledgerType),
				"month":           m.String(),
				"deleted_count":   summary.DeletedCount,
				"reversed_amount": summary.ReversedAmount.String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateStatus(ctx, userID, ledgerType, m)

	if uc.metrics != nil {
		uc.metrics.RollbackCompleted(string(ledgerType), summary.DeletedCount, summary.ReversedAmount)
	}

	return summary, nil
}

func (uc *SettlementUseCase) invalidateStatus(ctx context.Context, userID string, ledgerType domain.LedgerType, m domain.Month) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, statusCacheKey(userID, ledgerType, m))
}

func statusCacheKey(userID string, ledgerType domain.LedgerType, m domain.Month) string {
	return "settlement:" + userID + ":" + string(ledgerType) + ":" + m.String()
}

func validateKey(userID string, ledgerType domain.LedgerType, month string) (domain.Month, error) {
	if userID == "" {
		return domain.Month{}, domain.ErrInvalidUserID
	}
	if !ledgerType.Valid() {
		return domain.Month{}, domain.ErrInvalidLedgerType
	}
	return domain.ParseMonth(month)
}
