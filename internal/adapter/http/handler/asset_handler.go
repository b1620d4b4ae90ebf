package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneybook-app/moneybook/internal/adapter/http/dto"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// AssetHandler handles asset HTTP requests.
type AssetHandler struct {
	assetUC *usecase.AssetUseCase
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetUC *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{assetUC: assetUC}
}

// Get retrieves an asset by ID.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeValidation, "missing asset ID")
		return
	}

	asset, err := h.assetUC.GetAsset(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists a user's assets. With liquid=true it returns only the
// cash/deposit assets, in settlement selection order.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	var err error
	var assets []*dto.AssetResponse
	if r.URL.Query().Get("liquid") == "true" {
		liquid, lerr := h.assetUC.ListLiquidAssets(r.Context(), userID)
		err = lerr
		assets = dto.AssetsFromDomain(liquid)
	} else {
		all, lerr := h.assetUC.ListAssets(r.Context(), userID)
		err = lerr
		assets = dto.AssetsFromDomain(all)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assets)
}
