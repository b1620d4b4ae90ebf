package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneybook-app/moneybook/internal/adapter/http/dto"
	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// SettlementHandler handles settlement HTTP requests.
type SettlementHandler struct {
	settlementUC *usecase.SettlementUseCase
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC *usecase.SettlementUseCase) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Status reports whether the month is settled for the key.
func (h *SettlementHandler) Status(w http.ResponseWriter, r *http.Request) {
	ledgerType := domain.LedgerType(chi.URLParam(r, "ledgerType"))
	userID := r.URL.Query().Get("user_id")
	month := r.URL.Query().Get("month")

	settled, err := h.settlementUC.CheckSettled(r.Context(), userID, ledgerType, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementStatusResponse{
		UserID:     userID,
		LedgerType: string(ledgerType),
		Month:      month,
		Settled:    settled,
	})
}

// Settle runs the monthly close for the key.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	ledgerType := domain.LedgerType(chi.URLParam(r, "ledgerType"))

	var req dto.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	summary, err := h.settlementUC.Settle(r.Context(), req.UserID, ledgerType, req.Month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettleFromSummary(summary))
}

// Rollback reverses a prior close for the key.
func (h *SettlementHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	ledgerType := domain.LedgerType(chi.URLParam(r, "ledgerType"))

	var req dto.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	summary, err := h.settlementUC.Rollback(r.Context(), req.UserID, ledgerType, req.Month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RollbackFromSummary(summary))
}
