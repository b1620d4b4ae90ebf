package usecase

import (
	"context"

	"github.com/moneybook-app/moneybook/internal/domain"
)

// AssetUseCase exposes the read side of the asset balance store; the only
// writer of liquid balances in this service is the settlement engine.
type AssetUseCase struct {
	assetRepo AssetRepository
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(assetRepo AssetRepository) *AssetUseCase {
	return &AssetUseCase{assetRepo: assetRepo}
}

// GetAsset retrieves an asset by ID.
func (uc *AssetUseCase) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	return uc.assetRepo.GetByID(ctx, id)
}

// ListAssets lists a user's assets.
func (uc *AssetUseCase) ListAssets(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	return uc.assetRepo.ListByUser(ctx, userID)
}

// ListLiquidAssets lists a user's cash and deposit assets in selection order.
func (uc *AssetUseCase) ListLiquidAssets(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	return uc.assetRepo.ListLiquidByUser(ctx, userID)
}
