package usecase

import (
	"github.com/moneybook-app/moneybook/internal/domain"
)

// AssetSelector deterministically picks the reflection target among a user's
// liquid assets. The chosen id is persisted in the settlement record's
// applied deltas, so rollbacks stay correct even if the rule changes later.
type AssetSelector func(assets []*domain.Asset) *domain.Asset

// LatestValuationSelector picks the liquid asset with the most recent
// valuation date, tie-broken by lowest id. Returns nil when assets is empty.
func LatestValuationSelector(assets []*domain.Asset) *domain.Asset {
	var best *domain.Asset
	for _, a := range assets {
		switch {
		case best == nil:
			best = a
		case a.ValuationDate.After(best.ValuationDate):
			best = a
		case a.ValuationDate.Equal(best.ValuationDate) && a.ID < best.ID:
			best = a
		}
	}
	return best
}
