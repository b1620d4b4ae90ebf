package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moneybook-app/moneybook/internal/adapter/http/dto"
	"github.com/moneybook-app/moneybook/internal/domain"
)

// Error codes returned in API error responses.
const (
	CodeValidation     = "VALIDATION"
	CodeAlreadySettled = "ALREADY_SETTLED"
	CodeNotSettled     = "NOT_SETTLED"
	CodeConflict       = "CONFLICT"
	CodeNotFound       = "NOT_FOUND"
	CodeStorageError   = "STORAGE_ERROR"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with a stable error code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// writeDomainError maps a domain error to its code and HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	code, status := mapDomainError(err)
	writeError(w, status, code, err.Error())
}

// mapDomainError maps domain errors to error codes and HTTP status codes.
func mapDomainError(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidLedgerType),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidBillingDay),
		errors.Is(err, domain.ErrAutoEntryImmutable):
		return CodeValidation, http.StatusBadRequest
	case errors.Is(err, domain.ErrNoLiquidAsset):
		// A store-state problem, not a malformed request: the inputs were
		// valid but no asset can absorb the cash effect.
		return CodeStorageError, http.StatusInternalServerError
	case errors.Is(err, domain.ErrAlreadySettled):
		return CodeAlreadySettled, http.StatusConflict
	case errors.Is(err, domain.ErrSettlementConflict):
		return CodeConflict, http.StatusConflict
	case errors.Is(err, domain.ErrNotSettled):
		return CodeNotSettled, http.StatusNotFound
	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrAssetNotFound):
		return CodeNotFound, http.StatusNotFound
	default:
		return CodeStorageError, http.StatusInternalServerError
	}
}
